package store

import (
	"context"
	"slices"
	"sync"

	"suitemate/backend/internal/network"
	apperrors "suitemate/backend/pkg/errors"
)

// Memory is a process-local store for development and tests. It keeps the
// same contract as Repository: matches are undirected and recording one
// creates bare users for unknown identities.
type Memory struct {
	mu      sync.Mutex
	users   map[int64]network.User
	matches map[network.Edge]struct{}
}

// NewMemory returns an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		users:   make(map[int64]network.User),
		matches: make(map[network.Edge]struct{}),
	}
}

// UpsertUser stores a copy of u, replacing any previous profile
func (m *Memory) UpsertUser(ctx context.Context, u *network.User) error {
	if u == nil {
		return apperrors.ErrInvalidUser
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = *u
	return nil
}

// RecordMatch stores the match once regardless of argument order
func (m *Memory) RecordMatch(ctx context.Context, userID, matchID int64) error {
	if userID == matchID {
		return apperrors.NewInvalidConnection(userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range []int64{userID, matchID} {
		if _, ok := m.users[id]; !ok {
			m.users[id] = network.User{ID: id}
		}
	}
	m.matches[normalize(userID, matchID)] = struct{}{}
	return nil
}

// FetchUser returns a copy of the stored profile
func (m *Memory) FetchUser(ctx context.Context, userID int64) (*network.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, apperrors.NewUserNotFound(userID)
	}
	return &u, nil
}

// LoadUsers returns every user ordered by identity
func (m *Memory) LoadUsers(ctx context.Context) ([]network.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]network.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	slices.SortFunc(users, func(a, b network.User) int {
		return compareInt64(a.ID, b.ID)
	})
	return users, nil
}

// LoadMatches returns every match once, with Source < Target
func (m *Memory) LoadMatches(ctx context.Context) ([]network.Edge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	matches := make([]network.Edge, 0, len(m.matches))
	for e := range m.matches {
		matches = append(matches, e)
	}
	slices.SortFunc(matches, func(a, b network.Edge) int {
		if c := compareInt64(a.Source, b.Source); c != 0 {
			return c
		}
		return compareInt64(a.Target, b.Target)
	})
	return matches, nil
}

// LoadNetwork rebuilds the match graph from the stored users and matches
func (m *Memory) LoadNetwork(ctx context.Context) (*network.Network, error) {
	users, matches, err := loadAll(ctx, m)
	if err != nil {
		return nil, err
	}
	return BuildNetwork(users, matches)
}

func normalize(a, b int64) network.Edge {
	if a > b {
		a, b = b, a
	}
	return network.Edge{Source: a, Target: b}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Close is a no-op; it lets Memory stand in for a Repository
func (m *Memory) Close(ctx context.Context) error {
	return nil
}

// Reset deletes every user and match
func (m *Memory) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = make(map[int64]network.User)
	m.matches = make(map[network.Edge]struct{})
	return nil
}
