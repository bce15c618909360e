package maze

import "iter"

// Direction classifies the primary axis of travel between two tiles.
type Direction uint8

const (
	DirNone Direction = iota
	DirLeft
	DirRight
	DirUp
	DirDown
)

// neighborOffsets lists the four axis-aligned offsets in the fixed
// left, right, up, down order used everywhere adjacency matters.
var neighborOffsets = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Grid is the square tile field. The outer ring is permanent wall; all
// generation happens strictly inside it. Rows are indexed by z, columns
// by x.
type Grid struct {
	Size  int
	tiles [][]Tile
}

// newGrid allocates a Size×Size grid filled with wall tiles.
func newGrid(size int) *Grid {
	tiles := make([][]Tile, size)
	for z := range tiles {
		tiles[z] = make([]Tile, size)
		for x := range tiles[z] {
			tiles[z][x] = Tile{X: x, Z: z, Kind: TileWall, cluster: noCluster}
		}
	}
	return &Grid{Size: size, tiles: tiles}
}

// InBounds reports whether (x, z) lies inside the grid.
func (g *Grid) InBounds(x, z int) bool {
	return x >= 0 && x < g.Size && z >= 0 && z < g.Size
}

// At returns a pointer to the tile at (x, z). Panics when (x, z) is out
// of bounds; callers check with InBounds first.
func (g *Grid) At(x, z int) *Tile {
	return &g.tiles[z][x]
}

// KindAt returns the tile type at (x, z).
func (g *Grid) KindAt(x, z int) TileKind {
	return g.tiles[z][x].Kind
}

// IsEdge reports whether t lies on the outer ring, which never stops
// being wall.
func (g *Grid) IsEdge(t *Tile) bool {
	return t.X == 0 || t.Z == 0 || t.X == g.Size-1 || t.Z == g.Size-1
}

// Neighbors returns the in-bounds axis-aligned neighbors of t in a fixed
// left, right, up, down order. Diagonal tiles are never adjacent, which is
// what lets rooms and paths sit diagonally next to each other without
// merging.
func (g *Grid) Neighbors(t *Tile) []*Tile {
	out := make([]*Tile, 0, 4)
	for _, d := range neighborOffsets {
		x, z := t.X+d[0], t.Z+d[1]
		if g.InBounds(x, z) {
			out = append(out, &g.tiles[z][x])
		}
	}
	return out
}

// IsWallArea reports whether t is a pocket fully isolated from existing
// structure: a non-edge wall tile whose whole 4-neighborhood is wall.
func (g *Grid) IsWallArea(t *Tile) bool {
	if t.Kind != TileWall || g.IsEdge(t) {
		return false
	}
	for _, n := range g.Neighbors(t) {
		if n.Kind != TileWall {
			return false
		}
	}
	return true
}

// IsWallAreaAhead reports whether candidate can extend a path growing out
// of base: candidate must be a non-edge wall whose neighbors, apart from
// base itself, are all wall. The step may touch the tile it came from and
// nothing else.
func (g *Grid) IsWallAreaAhead(base, candidate *Tile) bool {
	if candidate.Kind != TileWall || g.IsEdge(candidate) {
		return false
	}
	for _, n := range g.Neighbors(candidate) {
		if n == base {
			continue
		}
		if n.Kind != TileWall {
			return false
		}
	}
	return true
}

// DirectionBetween classifies the primary axis of travel from one tile to
// another using whichever coordinate delta is larger. When |Δx| equals
// |Δz| the z axis wins.
func (g *Grid) DirectionBetween(from, to *Tile) Direction {
	dx, dz := to.X-from.X, to.Z-from.Z
	if dx == 0 && dz == 0 {
		return DirNone
	}
	if abs(dx) > abs(dz) {
		if dx < 0 {
			return DirLeft
		}
		return DirRight
	}
	if dz < 0 {
		return DirUp
	}
	return DirDown
}

// IsDeadEnd reports whether t is an open tile with at most one open
// neighbor.
func (g *Grid) IsDeadEnd(t *Tile) bool {
	if !t.Open() {
		return false
	}
	open := 0
	for _, n := range g.Neighbors(t) {
		if n.Open() {
			open++
		}
	}
	return open <= 1
}

// IsOpenCorner reports whether t is a floor tile sitting on the inside of
// a corner: exactly two wall neighbors, floor opposite each of them, and
// floor diagonally across both walls. Such a tile can be removed without
// severing connectivity, so it is a safe spot for a hole.
func (g *Grid) IsOpenCorner(t *Tile) bool {
	if t.Kind != TileFloor || g.IsEdge(t) {
		return false
	}
	var walls [][2]int
	for _, d := range neighborOffsets {
		if g.tiles[t.Z+d[1]][t.X+d[0]].Kind == TileWall {
			walls = append(walls, d)
		}
	}
	if len(walls) != 2 {
		return false
	}
	// Floor opposite each wall; walls facing each other fail here, which
	// also guarantees the two walls are perpendicular.
	for _, d := range walls {
		if g.tiles[t.Z-d[1]][t.X-d[0]].Kind != TileFloor {
			return false
		}
	}
	// Walking both wall directions in sequence must land on floor.
	diag := g.tiles[t.Z+walls[0][1]+walls[1][1]][t.X+walls[0][0]+walls[1][0]]
	return diag.Kind == TileFloor
}

// Tiles returns every tile in row-major (z, then x) order as a lazy,
// restartable sequence.
func (g *Grid) Tiles() iter.Seq[*Tile] {
	return func(yield func(*Tile) bool) {
		for z := range g.tiles {
			for x := range g.tiles[z] {
				if !yield(&g.tiles[z][x]) {
					return
				}
			}
		}
	}
}

// Interior returns every tile off the outer ring in row-major order.
func (g *Grid) Interior() iter.Seq[*Tile] {
	return func(yield func(*Tile) bool) {
		for z := 1; z < g.Size-1; z++ {
			for x := 1; x < g.Size-1; x++ {
				if !yield(&g.tiles[z][x]) {
					return
				}
			}
		}
	}
}

// TilesOf returns every tile of the given kind in row-major order.
func (g *Grid) TilesOf(kind TileKind) iter.Seq[*Tile] {
	return func(yield func(*Tile) bool) {
		for z := range g.tiles {
			for x := range g.tiles[z] {
				if g.tiles[z][x].Kind != kind {
					continue
				}
				if !yield(&g.tiles[z][x]) {
					return
				}
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
