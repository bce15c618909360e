// Package maze generates fully connected tile mazes of walls, floors, and
// holes, organized into rooms and corridors with controllable loopiness,
// straightness, dead-end length, and hole density. Generation is
// single-threaded and deterministic for a given random source; the
// finished Maze plus its query methods are the package's whole contract
// with the rendering and placement layers.
package maze

import (
	"fmt"
	"math/rand"
	"sort"
)

// Config drives one generation run. All fields are validated before any
// tile is touched.
type Config struct {
	Size           int     // grid side length in tiles, including the wall border
	RoomCount      int     // rooms stamped before path growth
	RoomMinSize    int     // minimum room side length
	RoomMaxSize    int     // maximum room side length
	MaxPathLength  int     // corridor growth stops at this many tiles
	Straightness   float64 // ≥0 bias toward continuing straight; 1 = unbiased
	MinClusterSize int     // clusters smaller than this are erased before connection
	DeadEndPasses  int     // simultaneous dead-end shrink iterations
	HoleDensity    float64 // 0..1 chance of punching a hole at a safe floor tile
	Rand           *rand.Rand
}

func (c *Config) validate() error {
	switch {
	case c.Rand == nil:
		return fmt.Errorf("maze config: Rand must be set")
	case c.Size < 3:
		return fmt.Errorf("maze config: size %d leaves no interior inside the wall border", c.Size)
	case c.RoomCount < 0:
		return fmt.Errorf("maze config: negative room count %d", c.RoomCount)
	case c.MaxPathLength < 1:
		return fmt.Errorf("maze config: max path length %d must be at least 1", c.MaxPathLength)
	case c.Straightness < 0:
		return fmt.Errorf("maze config: straightness %v must not be negative", c.Straightness)
	case c.MinClusterSize < 0:
		return fmt.Errorf("maze config: negative minimum cluster size %d", c.MinClusterSize)
	case c.DeadEndPasses < 0:
		return fmt.Errorf("maze config: negative dead-end pass count %d", c.DeadEndPasses)
	case c.HoleDensity < 0 || c.HoleDensity > 1:
		return fmt.Errorf("maze config: hole density %v outside 0..1", c.HoleDensity)
	}
	if c.RoomCount > 0 {
		if c.RoomMinSize < 1 || c.RoomMinSize > c.RoomMaxSize {
			return fmt.Errorf("maze config: room size bounds %d..%d are invalid", c.RoomMinSize, c.RoomMaxSize)
		}
		if c.RoomMinSize > c.Size-2 {
			return fmt.Errorf("maze config: a %d-tile room cannot fit a size-%d grid inside its wall border", c.RoomMinSize, c.Size)
		}
	}
	return nil
}

// Maze is a fully generated grid plus the query surface consumed by the
// placement and rendering layers. Generate first, then read; a Maze is
// never mutated after Generate returns.
type Maze struct {
	cfg      Config
	grid     *Grid
	clusters clusterSet
	rooms    []Rect
}

// Generate runs the full pipeline: stamp rooms, grow paths until the grid
// saturates, prune small clusters, connect everything, prune any cluster
// the connection phase could not reach, shrink dead ends, punch holes.
// The phase order is fixed.
func Generate(cfg *Config) (*Maze, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	m := &Maze{cfg: *cfg, grid: newGrid(cfg.Size)}
	for range cfg.RoomCount {
		m.rooms = append(m.rooms, m.stampRoom())
	}
	for m.growPath() {
	}
	m.pruneSmall()
	m.connectAll()
	m.pruneDisconnected()
	for range cfg.DeadEndPasses {
		m.shrinkDeadEnds()
	}
	m.punchHoles()
	return m, nil
}

// wallLink is one candidate connection between a specific unordered pair
// of clusters, accumulating every wall tile able to join exactly that
// pair.
type wallLink struct {
	a, b  int
	walls []*Tile
}

// connectAll merges every remaining cluster into one. Each discovered
// pair-link opens exactly one of its candidate walls even when its pair
// has already been merged through another link, so the number of openings
// (and with it the loop count) depends only on the cluster layout entering
// this phase, never on commit order.
func (m *Maze) connectAll() {
	g := m.grid
	var links []*wallLink
	index := make(map[[2]int]*wallLink)
	for t := range g.Interior() {
		if t.Kind != TileWall {
			continue
		}
		var touching []int
		for _, n := range g.Neighbors(t) {
			if !n.Open() {
				continue
			}
			id := m.clusters.find(n.cluster)
			if !containsID(touching, id) {
				touching = append(touching, id)
			}
		}
		if len(touching) < 2 {
			continue
		}
		// A wall between three or more clusters contributes a candidate
		// to every pair it separates.
		for i := 0; i < len(touching); i++ {
			for j := i + 1; j < len(touching); j++ {
				a, b := touching[i], touching[j]
				if a > b {
					a, b = b, a
				}
				key := [2]int{a, b}
				link := index[key]
				if link == nil {
					link = &wallLink{a: a, b: b}
					index[key] = link
					links = append(links, link)
				}
				link.walls = append(link.walls, t)
			}
		}
	}
	// Commit in discovery order; iterating the map here would randomize
	// results across runs of the same seed.
	for _, link := range links {
		m.commitLink(link)
	}
}

// commitLink opens one random candidate wall of the link and merges the
// link's clusters into whichever survivor is biggest, ties keeping the
// lower handle. Forwarding is resolved first: either side may already have
// been absorbed by an earlier commit.
func (m *Maze) commitLink(link *wallLink) {
	a, b := m.clusters.find(link.a), m.clusters.find(link.b)
	target, other := a, b
	if m.clusters.size(b) > m.clusters.size(a) ||
		(m.clusters.size(b) == m.clusters.size(a) && b < a) {
		target, other = b, a
	}
	wall := link.walls[m.cfg.Rand.Intn(len(link.walls))]
	if wall.Kind == TileWall {
		m.clusters.claim(target, wall)
	}
	if other != target {
		m.clusters.merge(target, other)
	}
}

func containsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// pruneSmall erases every cluster below the configured minimum size,
// removing the tiny isolated pockets that would otherwise turn into
// accidental loops during connection.
func (m *Maze) pruneSmall() {
	for _, id := range m.clusters.roots() {
		if m.clusters.size(id) < m.cfg.MinClusterSize {
			m.clusters.drop(id)
		}
	}
}

// pruneDisconnected keeps only the largest cluster. connectAll normally
// leaves exactly one, but a pocket sitting two walls away from everything
// else has no single-wall link and survives it.
func (m *Maze) pruneDisconnected() {
	roots := m.clusters.roots()
	if len(roots) <= 1 {
		return
	}
	largest := roots[0]
	for _, id := range roots[1:] {
		if m.clusters.size(id) > m.clusters.size(largest) {
			largest = id
		}
	}
	for _, id := range roots {
		if id != largest {
			m.clusters.drop(id)
		}
	}
}

// shrinkDeadEnds resets every current dead end to wall in one simultaneous
// sweep, so parallel dead-end corridors shorten in lockstep. A corridor
// that is part of a loop never qualifies and is never eroded.
func (m *Maze) shrinkDeadEnds() {
	var ends []*Tile
	for t := range m.grid.Tiles() {
		if m.grid.IsDeadEnd(t) {
			ends = append(ends, t)
		}
	}
	for _, t := range ends {
		m.clusters.remove(t)
		t.reset()
	}
}

// punchHoles converts floor tiles to holes with HoleDensity probability.
// Only dead ends and open corners qualify, which keeps every hole away
// from tiles whose loss would sever connectivity. Qualification is
// snapshotted before any tile converts, so punching one hole never
// disqualifies another candidate in the same pass.
func (m *Maze) punchHoles() {
	if m.cfg.HoleDensity <= 0 {
		return
	}
	var candidates []*Tile
	for t := range m.grid.Interior() {
		if t.Kind != TileFloor {
			continue
		}
		if m.grid.IsDeadEnd(t) || m.grid.IsOpenCorner(t) {
			candidates = append(candidates, t)
		}
	}
	for _, t := range candidates {
		if m.cfg.Rand.Float64() < m.cfg.HoleDensity {
			t.Kind = TileHole
		}
	}
}

// Grid exposes the generated grid for traversal and per-tile queries.
func (m *Maze) Grid() *Grid {
	return m.grid
}

// Rooms returns the bounds of every stamped room in stamping order.
func (m *Maze) Rooms() []Rect {
	return m.rooms
}

// ClusterCount reports how many live clusters remain. After Generate this
// is 1 whenever any open tile exists.
func (m *Maze) ClusterCount() int {
	return len(m.clusters.roots())
}

// FloorsByDistance returns every interior floor tile ordered by squared
// distance to the reference coordinate. Equal distances order by (z, x) so
// the result is stable across runs.
func (m *Maze) FloorsByDistance(x, z int) []*Tile {
	var tiles []*Tile
	for t := range m.grid.Interior() {
		if t.Kind == TileFloor {
			tiles = append(tiles, t)
		}
	}
	dist := func(t *Tile) int {
		dx, dz := t.X-x, t.Z-z
		return dx*dx + dz*dz
	}
	sort.Slice(tiles, func(i, j int) bool {
		di, dj := dist(tiles[i]), dist(tiles[j])
		if di != dj {
			return di < dj
		}
		if tiles[i].Z != tiles[j].Z {
			return tiles[i].Z < tiles[j].Z
		}
		return tiles[i].X < tiles[j].X
	})
	return tiles
}

// DistanceBand selects a third of the floor tiles by distance rank from a
// reference point.
type DistanceBand uint8

const (
	BandNearest DistanceBand = iota
	BandMiddle
	BandFarthest
)

// RandomFloor returns a uniformly random interior floor tile, or nil when
// the maze has none.
func (m *Maze) RandomFloor(rng *rand.Rand) *Tile {
	var tiles []*Tile
	for t := range m.grid.Interior() {
		if t.Kind == TileFloor {
			tiles = append(tiles, t)
		}
	}
	if len(tiles) == 0 {
		return nil
	}
	return tiles[rng.Intn(len(tiles))]
}

// RandomFloorInBand returns a random floor tile from the requested
// distance band around (x, z), or nil when the maze has no floor at all.
// With fewer than three floor tiles the band collapses to the whole set.
func (m *Maze) RandomFloorInBand(rng *rand.Rand, x, z int, band DistanceBand) *Tile {
	tiles := m.FloorsByDistance(x, z)
	if len(tiles) == 0 {
		return nil
	}
	third := len(tiles) / 3
	var segment []*Tile
	switch band {
	case BandNearest:
		segment = tiles[:third]
	case BandMiddle:
		segment = tiles[third : 2*third]
	default:
		segment = tiles[2*third:]
	}
	if len(segment) == 0 {
		segment = tiles
	}
	return segment[rng.Intn(len(segment))]
}
