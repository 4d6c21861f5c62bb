// Package network holds the in-memory match graph between users.
//
// A Network is an arena of nodes keyed by user identity. Edges are undirected
// and stored as identity sets on both endpoints, so for any two users a and b,
// a lists b as a match exactly when b lists a. A Network is not safe for
// concurrent use; see SyncNetwork for a locked wrapper.
package network

import (
	"slices"

	apperrors "suitemate/backend/pkg/errors"
)

// Network is the graph of matches for the current process.
// It only grows: there is no removal, rebuild a fresh Network instead.
type Network struct {
	nodes map[int64]*userNode
	edges int
}

// New returns an empty network
func New() *Network {
	return &Network{
		nodes: make(map[int64]*userNode),
	}
}

// AddUser creates a node with no matches for u.
// Adding an identity that is already present fails with ErrDuplicateUser and
// leaves the existing node untouched.
func (n *Network) AddUser(u *User) error {
	if u == nil {
		return apperrors.ErrInvalidUser
	}
	if _, ok := n.nodes[u.ID]; ok {
		return apperrors.NewDuplicateUser(u.ID)
	}
	n.nodes[u.ID] = newUserNode(u.ID, u)
	return nil
}

// AddConnection records a symmetric match between u1 and u2.
//
// Endpoints that are not yet in the network are added first, so callers do
// not have to AddUser before connecting. Repeating a connection is a no-op.
// Connecting a user to itself fails with ErrInvalidConnection and leaves the
// network unchanged.
func (n *Network) AddConnection(u1, u2 *User) error {
	if u1 == nil || u2 == nil {
		return apperrors.ErrInvalidUser
	}
	if u1.ID == u2.ID {
		return apperrors.NewInvalidConnection(u1.ID)
	}
	n.connect(n.ensure(u1.ID, u1), n.ensure(u2.ID, u2))
	return nil
}

// CheckConnection reports whether u1 and u2 are both present and matched.
// Unknown users are simply not connected.
func (n *Network) CheckConnection(u1, u2 *User) bool {
	if u1 == nil || u2 == nil {
		return false
	}
	return n.Connected(u1.ID, u2.ID)
}

// Connected is CheckConnection keyed by identity.
func (n *Network) Connected(id1, id2 int64) bool {
	node, ok := n.nodes[id1]
	if !ok {
		return false
	}
	if _, ok := n.nodes[id2]; !ok {
		return false
	}
	return node.has(id2)
}

// GetMatches returns the identities matched with u. The returned set is a
// copy. Unknown users fail with ErrUserNotFound.
func (n *Network) GetMatches(u *User) (map[int64]struct{}, error) {
	if u == nil {
		return nil, apperrors.ErrInvalidUser
	}
	node, ok := n.nodes[u.ID]
	if !ok {
		return nil, apperrors.NewUserNotFound(u.ID)
	}
	matches := make(map[int64]struct{}, node.degree())
	for id := range node.neighbors {
		matches[id] = struct{}{}
	}
	return matches, nil
}

// MatchIDs returns the matches of id in ascending order
func (n *Network) MatchIDs(id int64) ([]int64, error) {
	node, ok := n.nodes[id]
	if !ok {
		return nil, apperrors.NewUserNotFound(id)
	}
	ids := make([]int64, 0, node.degree())
	for neighbor := range node.neighbors {
		ids = append(ids, neighbor)
	}
	slices.Sort(ids)
	return ids, nil
}

// HasUser reports whether id has a node
func (n *Network) HasUser(id int64) bool {
	_, ok := n.nodes[id]
	return ok
}

// Profile returns the profile recorded for id. Nodes created only from an
// identity have no profile until one is supplied.
func (n *Network) Profile(id int64) (*User, bool) {
	node, ok := n.nodes[id]
	if !ok || node.profile == nil {
		return nil, false
	}
	return node.profile, true
}

// Len returns the number of users in the network
func (n *Network) Len() int {
	return len(n.nodes)
}

// EdgeCount returns the number of undirected matches
func (n *Network) EdgeCount() int {
	return n.edges
}

// ensure returns the node for id, creating it when absent. A node without a
// profile adopts the first non-nil one it is referenced with.
func (n *Network) ensure(id int64, profile *User) *userNode {
	node, ok := n.nodes[id]
	if !ok {
		node = newUserNode(id, profile)
		n.nodes[id] = node
		return node
	}
	if node.profile == nil && profile != nil {
		node.profile = profile
	}
	return node
}

func (n *Network) connect(a, b *userNode) {
	if a.link(b.id) {
		b.link(a.id)
		n.edges++
	}
}

func (n *Network) sortedIDs() []int64 {
	ids := make([]int64, 0, len(n.nodes))
	for id := range n.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
