package network

// userNode is one participant in the graph. Neighbors are stored by identity
// so nodes never reference each other directly.
type userNode struct {
	id        int64
	profile   *User
	neighbors map[int64]struct{}
}

func newUserNode(id int64, profile *User) *userNode {
	return &userNode{
		id:        id,
		profile:   profile,
		neighbors: make(map[int64]struct{}),
	}
}

// link records id as a neighbor and reports whether it was newly added.
// A node never links to itself.
func (u *userNode) link(id int64) bool {
	if id == u.id {
		return false
	}
	if _, ok := u.neighbors[id]; ok {
		return false
	}
	u.neighbors[id] = struct{}{}
	return true
}

func (u *userNode) has(id int64) bool {
	_, ok := u.neighbors[id]
	return ok
}

func (u *userNode) degree() int {
	return len(u.neighbors)
}
