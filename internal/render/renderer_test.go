package render

import (
	"math/rand"
	"testing"

	"dreadmaze/internal/maze"

	"github.com/gdamore/tcell/v2"
)

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	ss := tcell.NewSimulationScreen("UTF-8")
	if err := ss.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	ss.SetSize(80, 24)
	return ss
}

func testMaze(t *testing.T) *maze.Maze {
	t.Helper()
	m, err := maze.Generate(&maze.Config{
		Rand:           rand.New(rand.NewSource(7)),
		Size:           20,
		RoomCount:      3,
		RoomMinSize:    2,
		RoomMaxSize:    4,
		MaxPathLength:  15,
		Straightness:   1.5,
		MinClusterSize: 3,
		DeadEndPasses:  2,
		HoleDensity:    0.1,
	})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

// TestDrawFrame smoke-tests a full redraw on a simulation screen and spot
// checks that the centered player cell carries the player glyph.
func TestDrawFrame(t *testing.T) {
	ss := newSimScreen(t)
	m := testMaze(t)

	var px, pz int
	for tile := range m.Grid().TilesOf(maze.TileFloor) {
		px, pz = tile.X, tile.Z
		break
	}

	r := NewRenderer(ss)
	r.DrawFrame(Frame{
		Maze:        m,
		PlayerX:     px,
		PlayerZ:     pz,
		HatchX:      px,
		HatchZ:      pz,
		SightRadius: 3,
		Depth:       1,
		MaxDepth:    10,
	})

	sx, sy, visible := r.camera.WorldToScreen(px, pz)
	if !visible {
		t.Fatal("player cell not visible after centering")
	}
	cells, w, _ := ss.GetContents()
	runes := cells[sy*w+sx].Runes
	if len(runes) == 0 || string(runes) != "🧍" {
		t.Errorf("player cell runes = %q, want the player glyph", string(runes))
	}
}

// Everything beyond the sight radius stays dark.
func TestDrawFrameSightRadius(t *testing.T) {
	ss := newSimScreen(t)
	m := testMaze(t)

	r := NewRenderer(ss)
	r.DrawFrame(Frame{
		Maze:        m,
		PlayerX:     10,
		PlayerZ:     10,
		HatchX:      1,
		HatchZ:      1,
		LanternX:    1,
		LanternZ:    2,
		SightRadius: 2,
		Depth:       1,
		MaxDepth:    10,
	})

	cells, w, h := ss.GetContents()
	for z := 0; z < 20; z++ {
		for x := 0; x < 20; x++ {
			if max(abs(x-10), abs(z-10)) <= 2 {
				continue
			}
			sx, sy, visible := r.camera.WorldToScreen(x, z)
			if !visible || sy >= h-hudRows {
				continue
			}
			c := cells[sy*w+sx]
			if len(c.Runes) > 0 && c.Runes[0] != ' ' {
				t.Fatalf("tile (%d,%d) outside sight drawn as %q", x, z, string(c.Runes))
			}
		}
	}
}

func TestDrawBanner(t *testing.T) {
	ss := newSimScreen(t)
	r := NewRenderer(ss)
	r.DrawBanner([]string{"YOU MADE IT OUT", "press any key"}, tcell.StyleDefault)

	cells, w, h := ss.GetContents()
	found := false
	for i := 0; i < w*h && !found; i++ {
		if len(cells[i].Runes) > 0 && cells[i].Runes[0] == 'Y' {
			found = true
		}
	}
	if !found {
		t.Error("banner text not found on screen")
	}
}
