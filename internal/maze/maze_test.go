package maze

import (
	"math/rand"
	"strings"
	"testing"
)

func defaultTestConfig(seed int64) *Config {
	return &Config{
		Size:           30,
		RoomCount:      5,
		RoomMinSize:    2,
		RoomMaxSize:    5,
		MaxPathLength:  25,
		Straightness:   1.5,
		MinClusterSize: 3,
		DeadEndPasses:  2,
		HoleDensity:    0.1,
		Rand:           rand.New(rand.NewSource(seed)),
	}
}

// render dumps the grid as one rune per tile for comparisons.
func render(m *Maze) string {
	var b strings.Builder
	for z := 0; z < m.grid.Size; z++ {
		for x := 0; x < m.grid.Size; x++ {
			switch m.grid.KindAt(x, z) {
			case TileWall:
				b.WriteByte('#')
			case TileFloor:
				b.WriteByte('.')
			default:
				b.WriteByte('o')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// reachableFrom flood-fills open tiles via the 4-neighbor rule.
func reachableFrom(g *Grid, start *Tile) map[*Tile]bool {
	visited := map[*Tile]bool{start: true}
	queue := []*Tile{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range g.Neighbors(cur) {
			if n.Open() && !visited[n] {
				visited[n] = true
				queue = append(queue, n)
			}
		}
	}
	return visited
}

// TestGenerateFullyConnected verifies the post-condition that every open
// tile lands in one cluster and is reachable from every other open tile.
func TestGenerateFullyConnected(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		m, err := Generate(defaultTestConfig(seed))
		if err != nil {
			t.Fatalf("seed=%d: %v", seed, err)
		}

		var open []*Tile
		for tile := range m.grid.Tiles() {
			if tile.Open() {
				open = append(open, tile)
			}
		}
		if len(open) == 0 {
			t.Fatalf("seed=%d: generation produced no open tiles", seed)
		}
		if got := m.ClusterCount(); got != 1 {
			t.Errorf("seed=%d: cluster count = %d, want 1", seed, got)
		}

		visited := reachableFrom(m.grid, open[0])
		for _, tile := range open {
			if !visited[tile] {
				t.Errorf("seed=%d: open tile (%d,%d) unreachable", seed, tile.X, tile.Z)
			}
		}
	}
}

func TestBorderStaysWall(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		m, err := Generate(defaultTestConfig(seed))
		if err != nil {
			t.Fatalf("seed=%d: %v", seed, err)
		}
		for tile := range m.grid.Tiles() {
			if m.grid.IsEdge(tile) && tile.Kind != TileWall {
				t.Errorf("seed=%d: border tile (%d,%d) is %v", seed, tile.X, tile.Z, tile.Kind)
			}
		}
	}
}

// TestClusterTileConsistency checks the bidirectional tile↔cluster
// relationship on the finished maze.
func TestClusterTileConsistency(t *testing.T) {
	m, err := Generate(defaultTestConfig(7))
	if err != nil {
		t.Fatal(err)
	}
	for tile := range m.grid.Tiles() {
		if !tile.Open() {
			if tile.cluster != noCluster {
				t.Errorf("wall (%d,%d) references cluster %d", tile.X, tile.Z, tile.cluster)
			}
			continue
		}
		root := m.clusters.find(tile.cluster)
		found := false
		for _, member := range m.clusters.tiles(root) {
			if member == tile {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("open tile (%d,%d) missing from its cluster's members", tile.X, tile.Z)
		}
	}
	for _, id := range m.clusters.roots() {
		for _, member := range m.clusters.tiles(id) {
			if m.clusters.find(member.cluster) != id {
				t.Errorf("member (%d,%d) points at cluster %d, listed under %d",
					member.X, member.Z, member.cluster, id)
			}
		}
	}
}

func TestCarveRoomKeepsExistingFloor(t *testing.T) {
	cfg := defaultTestConfig(1)
	m := &Maze{cfg: *cfg, grid: newGrid(cfg.Size)}
	m.carveRoom(Rect{X1: 3, Z1: 3, X2: 8, Z2: 8})
	m.grid.At(5, 5).Kind = TileHole

	before := 0
	for tile := range m.grid.Tiles() {
		if tile.Open() {
			before++
		}
	}
	// Overlapping stamp: existing floor and the hole must survive.
	m.carveRoom(Rect{X1: 5, Z1: 5, X2: 10, Z2: 10})
	after := 0
	for tile := range m.grid.Tiles() {
		if tile.Open() {
			after++
		}
	}
	if after < before {
		t.Errorf("overlap stamp lost tiles: %d -> %d", before, after)
	}
	if m.grid.KindAt(5, 5) != TileHole {
		t.Error("overlap stamp overwrote an existing hole")
	}
	if got := m.ClusterCount(); got != 1 {
		t.Errorf("overlapping rooms should merge into 1 cluster, got %d", got)
	}
}

func TestCarveRoomAdjacentMerges(t *testing.T) {
	cfg := defaultTestConfig(2)
	m := &Maze{cfg: *cfg, grid: newGrid(cfg.Size)}
	m.carveRoom(Rect{X1: 2, Z1: 2, X2: 4, Z2: 4})
	// Directly adjacent (shares an open edge through the expanded box).
	m.carveRoom(Rect{X1: 5, Z1: 2, X2: 7, Z2: 4})
	if got := m.ClusterCount(); got != 1 {
		t.Errorf("edge-adjacent rooms should merge, got %d clusters", got)
	}
}

func TestCarveRoomDiagonalContactDoesNotMerge(t *testing.T) {
	cfg := defaultTestConfig(3)
	m := &Maze{cfg: *cfg, grid: newGrid(cfg.Size)}
	m.carveRoom(Rect{X1: 2, Z1: 2, X2: 4, Z2: 4})
	// Touches the first room only at the (5,5)/(4,4) diagonal.
	m.carveRoom(Rect{X1: 5, Z1: 5, X2: 7, Z2: 7})
	if got := m.ClusterCount(); got != 2 {
		t.Errorf("diagonal contact must not merge: got %d clusters, want 2", got)
	}
}

// TestPathsAreTrees grows paths on an empty grid and verifies each one is
// loop-free: a connected tile set with n tiles and n-1 adjacencies.
func TestPathsAreTrees(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		cfg := defaultTestConfig(seed)
		cfg.RoomCount = 0
		m := &Maze{cfg: *cfg, grid: newGrid(cfg.Size)}
		for m.growPath() {
		}
		for _, id := range m.clusters.roots() {
			tiles := m.clusters.tiles(id)
			if len(tiles) > cfg.MaxPathLength {
				t.Errorf("seed=%d: path cluster has %d tiles, max is %d",
					seed, len(tiles), cfg.MaxPathLength)
			}
			inPath := make(map[*Tile]bool, len(tiles))
			for _, tile := range tiles {
				inPath[tile] = true
			}
			edges := 0
			for _, tile := range tiles {
				for _, n := range m.grid.Neighbors(tile) {
					if inPath[n] {
						edges++
					}
				}
			}
			edges /= 2 // every adjacency counted from both ends
			if edges != len(tiles)-1 {
				t.Errorf("seed=%d: path cluster has %d tiles but %d internal adjacencies, want %d",
					seed, len(tiles), edges, len(tiles)-1)
			}
		}
	}
}

// TestPathsDoNotTouchEachOther verifies no two distinct path clusters are
// ever 4-adjacent right after growth.
func TestPathsDoNotTouchEachOther(t *testing.T) {
	cfg := defaultTestConfig(11)
	cfg.RoomCount = 0
	m := &Maze{cfg: *cfg, grid: newGrid(cfg.Size)}
	for m.growPath() {
	}
	for tile := range m.grid.Tiles() {
		if !tile.Open() {
			continue
		}
		for _, n := range m.grid.Neighbors(tile) {
			if n.Open() && m.clusters.find(n.cluster) != m.clusters.find(tile.cluster) {
				t.Fatalf("paths touch at (%d,%d)/(%d,%d)", tile.X, tile.Z, n.X, n.Z)
			}
		}
	}
}

// TestSmallGridScenario covers a minimal 10×10 setup: no rooms, short
// paths, no pruning, no holes.
func TestSmallGridScenario(t *testing.T) {
	cfg := &Config{
		Size:          10,
		RoomCount:     0,
		MaxPathLength: 5,
		Straightness:  1,
		Rand:          rand.New(rand.NewSource(42)),
	}
	m, err := Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	open := 0
	for tile := range m.grid.Tiles() {
		if tile.Kind == TileHole {
			t.Errorf("hole at (%d,%d) with density 0", tile.X, tile.Z)
		}
		if tile.Open() {
			open++
		}
	}
	if open == 0 {
		t.Fatal("expected at least one path tile")
	}
	if got := m.ClusterCount(); got != 1 {
		t.Errorf("cluster count = %d, want 1", got)
	}
}

// TestDegenerateGridTerminates covers the 3×3 grid with a single interior
// tile: generation must finish without looping.
func TestDegenerateGridTerminates(t *testing.T) {
	cfg := &Config{
		Size:          3,
		MaxPathLength: 4,
		Straightness:  1,
		Rand:          rand.New(rand.NewSource(1)),
	}
	m, err := Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for tile := range m.grid.Tiles() {
		if m.grid.IsEdge(tile) && tile.Kind != TileWall {
			t.Errorf("border tile (%d,%d) opened on degenerate grid", tile.X, tile.Z)
		}
	}
}

func TestConfigValidation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	base := func() *Config {
		return &Config{Size: 10, MaxPathLength: 5, Straightness: 1, Rand: rng}
	}
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"nil rand", func(c *Config) { c.Rand = nil }},
		{"grid too small", func(c *Config) { c.Size = 2 }},
		{"negative rooms", func(c *Config) { c.RoomCount = -1 }},
		{"inverted room bounds", func(c *Config) { c.RoomCount = 1; c.RoomMinSize = 5; c.RoomMaxSize = 3 }},
		{"room larger than grid", func(c *Config) { c.Size = 3; c.RoomCount = 1; c.RoomMinSize = 2; c.RoomMaxSize = 2 }},
		{"zero path length", func(c *Config) { c.MaxPathLength = 0 }},
		{"negative straightness", func(c *Config) { c.Straightness = -0.5 }},
		{"negative min cluster", func(c *Config) { c.MinClusterSize = -1 }},
		{"negative dead-end passes", func(c *Config) { c.DeadEndPasses = -1 }},
		{"hole density above 1", func(c *Config) { c.HoleDensity = 1.5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(cfg)
			if _, err := Generate(cfg); err == nil {
				t.Error("expected a configuration error")
			}
		})
	}
}

func TestDeadEndShrinkMonotonic(t *testing.T) {
	cfg := defaultTestConfig(5)
	cfg.DeadEndPasses = 0
	cfg.HoleDensity = 0
	m, err := Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	countOpen := func() int {
		n := 0
		for tile := range m.grid.Tiles() {
			if tile.Open() {
				n++
			}
		}
		return n
	}
	countDeadEnds := func() int {
		n := 0
		for tile := range m.grid.Tiles() {
			if m.grid.IsDeadEnd(tile) {
				n++
			}
		}
		return n
	}
	for range 4 {
		openBefore, deadBefore := countOpen(), countDeadEnds()
		m.shrinkDeadEnds()
		openAfter, deadAfter := countOpen(), countDeadEnds()
		if openAfter > openBefore {
			t.Fatalf("shrink pass grew open tiles: %d -> %d", openBefore, openAfter)
		}
		if deadAfter > deadBefore {
			t.Fatalf("shrink pass grew dead ends: %d -> %d", deadBefore, deadAfter)
		}
	}
}

// TestHolesOnlyAtSafeTiles regenerates the hole pass at density 1 and
// checks every hole was a dead end or open corner when punched.
func TestHolesOnlyAtSafeTiles(t *testing.T) {
	cfg := defaultTestConfig(6)
	cfg.HoleDensity = 0
	m, err := Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	qualified := make(map[*Tile]bool)
	for tile := range m.grid.Interior() {
		if tile.Kind == TileFloor && (m.grid.IsDeadEnd(tile) || m.grid.IsOpenCorner(tile)) {
			qualified[tile] = true
		}
	}
	m.cfg.HoleDensity = 1
	m.punchHoles()
	for tile := range m.grid.TilesOf(TileHole) {
		if !qualified[tile] {
			t.Errorf("hole punched at unsafe tile (%d,%d)", tile.X, tile.Z)
		}
	}
}

// TestPunchHolesQualifiesBeforeConverting builds a dead end at (1,1) that
// is also the qualifying diagonal of the open corner at (2,2). Scanned
// live, punching the dead end first would strip the corner's floor
// diagonal and spare it; the snapshot makes both convert at density 1.
func TestPunchHolesQualifiesBeforeConverting(t *testing.T) {
	cfg := &Config{
		Size:          7,
		MaxPathLength: 1,
		Straightness:  1,
		HoleDensity:   1,
		Rand:          rand.New(rand.NewSource(1)),
	}
	m := &Maze{cfg: *cfg, grid: newGrid(cfg.Size)}
	carve(m.grid, &m.clusters,
		[2]int{1, 1},
		[2]int{2, 2}, [2]int{3, 2}, [2]int{2, 3})

	if !m.grid.IsDeadEnd(m.grid.At(1, 1)) {
		t.Fatal("(1,1) should start as a dead end")
	}
	if !m.grid.IsOpenCorner(m.grid.At(2, 2)) {
		t.Fatal("(2,2) should start as an open corner")
	}

	m.punchHoles()
	if m.grid.KindAt(1, 1) != TileHole {
		t.Error("dead end (1,1) not punched at density 1")
	}
	if m.grid.KindAt(2, 2) != TileHole {
		t.Error("punching the dead end must not disqualify the corner sharing its diagonal")
	}
}

func TestSeedReproducibility(t *testing.T) {
	a, err := Generate(defaultTestConfig(99))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(defaultTestConfig(99))
	if err != nil {
		t.Fatal(err)
	}
	if render(a) != render(b) {
		t.Error("same seed produced different grids")
	}
	c, err := Generate(defaultTestConfig(100))
	if err != nil {
		t.Fatal(err)
	}
	if render(a) == render(c) {
		t.Error("different seeds produced identical grids")
	}
}

func TestFloorsByDistanceOrdering(t *testing.T) {
	m, err := Generate(defaultTestConfig(8))
	if err != nil {
		t.Fatal(err)
	}
	refX, refZ := 4, 4
	tiles := m.FloorsByDistance(refX, refZ)
	if len(tiles) == 0 {
		t.Fatal("no floor tiles")
	}
	dist := func(tile *Tile) int {
		dx, dz := tile.X-refX, tile.Z-refZ
		return dx*dx + dz*dz
	}
	for i := 1; i < len(tiles); i++ {
		di, dj := dist(tiles[i-1]), dist(tiles[i])
		if di > dj {
			t.Fatalf("tiles out of order at %d: %d > %d", i, di, dj)
		}
		if di == dj {
			prev, cur := tiles[i-1], tiles[i]
			if prev.Z > cur.Z || (prev.Z == cur.Z && prev.X > cur.X) {
				t.Fatalf("tie at %d not broken by (z,x)", i)
			}
		}
	}
}

func TestRandomFloorInBandOrdering(t *testing.T) {
	m, err := Generate(defaultTestConfig(9))
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(9))
	refX, refZ := 2, 2
	dist := func(tile *Tile) int {
		dx, dz := tile.X-refX, tile.Z-refZ
		return dx*dx + dz*dz
	}
	for range 20 {
		near := m.RandomFloorInBand(rng, refX, refZ, BandNearest)
		mid := m.RandomFloorInBand(rng, refX, refZ, BandMiddle)
		far := m.RandomFloorInBand(rng, refX, refZ, BandFarthest)
		if near == nil || mid == nil || far == nil {
			t.Fatal("bands returned nil on a populated maze")
		}
		if dist(near) > dist(mid) || dist(mid) > dist(far) {
			t.Fatalf("band distances out of order: near=%d mid=%d far=%d",
				dist(near), dist(mid), dist(far))
		}
	}
}

func TestRandomFloor(t *testing.T) {
	m, err := Generate(defaultTestConfig(10))
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(10))
	for range 20 {
		tile := m.RandomFloor(rng)
		if tile == nil {
			t.Fatal("RandomFloor returned nil on a populated maze")
		}
		if tile.Kind != TileFloor {
			t.Errorf("RandomFloor returned a %v tile", tile.Kind)
		}
		if m.grid.IsEdge(tile) {
			t.Errorf("RandomFloor returned border tile (%d,%d)", tile.X, tile.Z)
		}
	}
}
