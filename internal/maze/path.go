package maze

// growPath carves one non-looping corridor out of an isolated wall pocket,
// up to MaxPathLength tiles long. While growing, a step may touch the tile
// it grew from and nothing else, so a path never brushes existing
// structure or itself. Returns false when the grid holds no isolated
// pocket anymore, signalling that path generation is done.
func (m *Maze) growPath() bool {
	start := m.findPocket()
	if start == nil {
		return false
	}
	g := m.grid
	id := m.clusters.create()
	m.clusters.claim(id, start)

	length := 1
	// usable holds tiles that may still have a valid extension; exhausted
	// tiles are removed and the frontier resumes from the oldest survivor.
	usable := []*Tile{start}
	cur := start
	var prev *Tile
	for length < m.cfg.MaxPathLength {
		var options []*Tile
		for _, n := range g.Neighbors(cur) {
			if g.IsWallAreaAhead(cur, n) {
				options = append(options, n)
			}
		}
		if len(options) == 0 {
			for i, t := range usable {
				if t == cur {
					usable = append(usable[:i], usable[i+1:]...)
					break
				}
			}
			if len(usable) == 0 {
				return true
			}
			cur, prev = usable[0], nil
			continue
		}
		next := m.pickStep(prev, cur, options)
		m.clusters.claim(id, next)
		usable = append(usable, next)
		length++
		prev, cur = cur, next
	}
	return true
}

// pickStep chooses the next path tile. With a known travel direction the
// candidate continuing straight is weighted by Straightness against weight
// 1 for each turn: above 1 favors long straight runs, below 1 favors
// twisty ones, exactly 1 picks uniformly.
func (m *Maze) pickStep(prev, cur *Tile, options []*Tile) *Tile {
	rng := m.cfg.Rand
	if m.cfg.Straightness == 1 || prev == nil {
		return options[rng.Intn(len(options))]
	}
	dir := m.grid.DirectionBetween(prev, cur)
	var straight *Tile
	var turns []*Tile
	for _, t := range options {
		if straight == nil && m.grid.DirectionBetween(cur, t) == dir {
			straight = t
		} else {
			turns = append(turns, t)
		}
	}
	if straight == nil {
		return turns[rng.Intn(len(turns))]
	}
	if len(turns) == 0 {
		return straight
	}
	total := m.cfg.Straightness + float64(len(turns))
	if rng.Float64()*total < m.cfg.Straightness {
		return straight
	}
	return turns[rng.Intn(len(turns))]
}

// findPocket locates a wall-area tile to seed a path: forward from a
// random grid index to the end, then backward from the same index. Returns
// nil when the grid is saturated.
func (m *Maze) findPocket() *Tile {
	g := m.grid
	total := g.Size * g.Size
	start := m.cfg.Rand.Intn(total)
	for i := start; i < total; i++ {
		t := g.At(i%g.Size, i/g.Size)
		if g.IsWallArea(t) {
			return t
		}
	}
	for i := start - 1; i >= 0; i-- {
		t := g.At(i%g.Size, i/g.Size)
		if g.IsWallArea(t) {
			return t
		}
	}
	return nil
}
