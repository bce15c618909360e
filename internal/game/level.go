package game

import (
	"math"
	"math/rand"

	"dreadmaze/internal/maze"
)

// MaxDepth is the deepest level; descending past it wins the run.
const MaxDepth = 10

// levelConfig builds a maze.Config for the given depth. Deeper levels grow
// larger, roomier, and riddled with more pits.
func levelConfig(depth int, rng *rand.Rand) *maze.Config {
	t := float64(depth-1) / float64(MaxDepth-1)

	return &maze.Config{
		Size:           lerpi(25, 45, t),
		RoomCount:      lerpi(3, 8, t),
		RoomMinSize:    2,
		RoomMaxSize:    lerpi(4, 6, t),
		MaxPathLength:  lerpi(20, 40, t),
		Straightness:   1.5,
		MinClusterSize: 4,
		DeadEndPasses:  lerpi(2, 4, t),
		HoleDensity:    0.05 + 0.2*t,
		Rand:           rng,
	}
}

func lerpi(a, b int, t float64) int {
	return int(math.Round(float64(a) + t*float64(b-a)))
}

// placement holds the spawn and interactable positions for one level.
type placement struct {
	SpawnX, SpawnZ     int
	HatchX, HatchZ     int
	LanternX, LanternZ int
}

// placeLevel picks the spawn and the two interactables using the maze's
// distance bands: the hatch lands in the farthest third from the spawn,
// the lantern in the middle third, so every descent means a real trek.
func placeLevel(m *maze.Maze, rng *rand.Rand) placement {
	spawn := m.RandomFloor(rng)
	if spawn == nil {
		panic("game: level maze generated without floor tiles")
	}
	hatch := m.RandomFloorInBand(rng, spawn.X, spawn.Z, maze.BandFarthest)
	lantern := m.RandomFloorInBand(rng, spawn.X, spawn.Z, maze.BandMiddle)
	return placement{
		SpawnX: spawn.X, SpawnZ: spawn.Z,
		HatchX: hatch.X, HatchZ: hatch.Z,
		LanternX: lantern.X, LanternZ: lantern.Z,
	}
}
