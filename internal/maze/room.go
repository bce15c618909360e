package maze

// Rect is an inclusive tile rectangle.
type Rect struct {
	X1, Z1, X2, Z2 int
}

// Center returns the center tile coordinate of the rectangle.
func (r Rect) Center() (int, int) {
	return (r.X1 + r.X2) / 2, (r.Z1 + r.Z2) / 2
}

// Contains reports whether (x, z) lies inside the rectangle.
func (r Rect) Contains(x, z int) bool {
	return x >= r.X1 && x <= r.X2 && z >= r.Z1 && z <= r.Z2
}

// stampRoom picks a random room size within the configured bounds (clamped
// so the room plus a 1-tile wall margin fits the grid), picks a random
// anchor, and carves it. Returns the room's bounds.
func (m *Maze) stampRoom() Rect {
	g, rng := m.grid, m.cfg.Rand
	maxSide := min(m.cfg.RoomMaxSize, g.Size-2)
	w := m.cfg.RoomMinSize + rng.Intn(maxSide-m.cfg.RoomMinSize+1)
	h := m.cfg.RoomMinSize + rng.Intn(maxSide-m.cfg.RoomMinSize+1)
	x0 := 1 + rng.Intn(g.Size-1-w)
	z0 := 1 + rng.Intn(g.Size-1-h)
	room := Rect{X1: x0, Z1: z0, X2: x0 + w - 1, Z2: z0 + h - 1}
	m.carveRoom(room)
	return room
}

// carveRoom merges every cluster the room touches and fills the room's
// wall tiles with floor in the surviving cluster. Tiles that are already
// open stay exactly as they are; stamping only fills gaps.
func (m *Maze) carveRoom(room Rect) {
	target := m.adoptTouchingClusters(room)
	for z := room.Z1; z <= room.Z2; z++ {
		for x := room.X1; x <= room.X2; x++ {
			t := m.grid.At(x, z)
			if t.Kind == TileWall {
				m.clusters.claim(target, t)
			}
		}
	}
}

// adoptTouchingClusters collects every cluster reachable from the room's
// 1-tile-expanded bounding box and merges them into one. The four corners
// of the expanded box are skipped: diagonal contact across a wall corner
// is not walkable, so it must not count as connected. The largest
// collected cluster survives, ties keeping the first found in scan order;
// with no contact at all a fresh cluster is created.
func (m *Maze) adoptTouchingClusters(room Rect) int {
	g := m.grid
	var found []int
	seen := make(map[int]bool)
	for z := room.Z1 - 1; z <= room.Z2+1; z++ {
		for x := room.X1 - 1; x <= room.X2+1; x++ {
			corner := (x == room.X1-1 || x == room.X2+1) &&
				(z == room.Z1-1 || z == room.Z2+1)
			if corner || !g.InBounds(x, z) {
				continue
			}
			t := g.At(x, z)
			if !t.Open() {
				continue
			}
			id := m.clusters.find(t.cluster)
			if !seen[id] {
				seen[id] = true
				found = append(found, id)
			}
		}
	}
	if len(found) == 0 {
		return m.clusters.create()
	}
	target := found[0]
	for _, id := range found[1:] {
		if m.clusters.size(id) > m.clusters.size(target) {
			target = id
		}
	}
	for _, id := range found {
		if id != target {
			m.clusters.merge(target, id)
		}
	}
	return target
}
