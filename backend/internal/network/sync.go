package network

import "sync"

// SyncNetwork serializes every call on a shared Network behind one lock.
// Use it when a single network outlives a request; request-scoped networks
// do not need it.
type SyncNetwork struct {
	mu  sync.Mutex
	net *Network
}

// NewSync wraps net, or a new empty network when net is nil. The caller must
// not use net directly afterwards.
func NewSync(net *Network) *SyncNetwork {
	if net == nil {
		net = New()
	}
	return &SyncNetwork{net: net}
}

// AddUser is Network.AddUser under the lock
func (s *SyncNetwork) AddUser(u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.net.AddUser(u)
}

// AddConnection is Network.AddConnection under the lock
func (s *SyncNetwork) AddConnection(u1, u2 *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.net.AddConnection(u1, u2)
}

// CheckConnection is Network.CheckConnection under the lock
func (s *SyncNetwork) CheckConnection(u1, u2 *User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.net.CheckConnection(u1, u2)
}

// Connected is Network.Connected under the lock
func (s *SyncNetwork) Connected(id1, id2 int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.net.Connected(id1, id2)
}

// GetMatches returns a copy of u's matches taken under the lock
func (s *SyncNetwork) GetMatches(u *User) (map[int64]struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.net.GetMatches(u)
}

// MatchIDs is Network.MatchIDs under the lock
func (s *SyncNetwork) MatchIDs(id int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.net.MatchIDs(id)
}

// Snapshot renders a consistent view of the network at one instant
func (s *SyncNetwork) Snapshot() *Graph {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.net.Snapshot()
}

// Len returns the number of users
func (s *SyncNetwork) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.net.Len()
}

// EdgeCount returns the number of undirected matches
func (s *SyncNetwork) EdgeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.net.EdgeCount()
}
