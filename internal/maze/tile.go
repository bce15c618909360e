package maze

// TileKind identifies the type of a grid tile.
type TileKind uint8

const (
	TileWall TileKind = iota
	TileFloor
	TileHole
)

// noCluster marks a tile owned by no cluster. Only walls carry it.
const noCluster = -1

// Tile is a single grid cell. Its identity is the (X, Z) coordinate; the
// grid allocates every tile exactly once as solid wall and mutates it in
// place for the rest of its life.
type Tile struct {
	X, Z    int
	Kind    TileKind
	cluster int // arena handle, noCluster while the tile is wall
}

// Open reports whether the tile is anything other than solid wall. Holes
// count as open everywhere connectivity matters.
func (t *Tile) Open() bool {
	return t.Kind != TileWall
}

// reset returns the tile to solid wall with no owning cluster.
func (t *Tile) reset() {
	t.Kind = TileWall
	t.cluster = noCluster
}
