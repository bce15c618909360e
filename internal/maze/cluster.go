package maze

// clusterSet is an arena of tile clusters addressed by stable integer
// handles. Merging a cluster away redirects its handle to the survivor
// through a path-compressed parent array, so a handle recorded before any
// number of merges still resolves to the current owner in amortized
// near-constant time. A merged or deleted cluster has a nil member list
// and must never be read for membership again.
type clusterSet struct {
	parent  []int
	members [][]*Tile
}

// create allocates a new empty cluster and returns its handle.
func (cs *clusterSet) create() int {
	id := len(cs.parent)
	cs.parent = append(cs.parent, id)
	cs.members = append(cs.members, []*Tile{})
	return id
}

// find resolves id to its current root handle, compressing the chain it
// walks.
func (cs *clusterSet) find(id int) int {
	for cs.parent[id] != id {
		cs.parent[id] = cs.parent[cs.parent[id]]
		id = cs.parent[id]
	}
	return id
}

// tiles returns the member list of a live root cluster.
func (cs *clusterSet) tiles(id int) []*Tile {
	if cs.parent[id] != id || cs.members[id] == nil {
		panic("maze: reading members of a merged or deleted cluster")
	}
	return cs.members[id]
}

// size returns the member count of a live root cluster.
func (cs *clusterSet) size(id int) int {
	return len(cs.tiles(id))
}

// claim converts t to floor owned by cluster id. id must be a live root.
func (cs *clusterSet) claim(id int, t *Tile) {
	t.Kind = TileFloor
	t.cluster = id
	cs.members[id] = append(cs.members[id], t)
}

// merge absorbs the cluster holding from into the cluster holding into,
// moving every member tile across and redirecting the absorbed handle.
// Returns the surviving root.
func (cs *clusterSet) merge(into, from int) int {
	into, from = cs.find(into), cs.find(from)
	if into == from {
		return into
	}
	for _, t := range cs.members[from] {
		t.cluster = into
	}
	cs.members[into] = append(cs.members[into], cs.members[from]...)
	cs.members[from] = nil
	cs.parent[from] = into
	return into
}

// remove detaches t from whichever cluster currently owns it. The caller
// resets the tile itself.
func (cs *clusterSet) remove(t *Tile) {
	id := cs.find(t.cluster)
	m := cs.members[id]
	for i, other := range m {
		if other == t {
			m[i] = m[len(m)-1]
			cs.members[id] = m[:len(m)-1]
			return
		}
	}
}

// drop deletes a cluster entirely, resetting every member tile to wall and
// draining the member list.
func (cs *clusterSet) drop(id int) {
	id = cs.find(id)
	for _, t := range cs.members[id] {
		t.reset()
	}
	cs.members[id] = nil
}

// roots returns the handles of every live cluster in creation order.
func (cs *clusterSet) roots() []int {
	var out []int
	for id := range cs.parent {
		if cs.parent[id] == id && cs.members[id] != nil {
			out = append(out, id)
		}
	}
	return out
}
