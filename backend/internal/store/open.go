package store

import (
	"context"
	"fmt"

	"suitemate/backend/internal/metrics"
	"suitemate/backend/internal/network"
	"suitemate/backend/pkg/config"
)

// Backend is a configured match store
type Backend interface {
	LoadNetwork(ctx context.Context) (*network.Network, error)
	UpsertUser(ctx context.Context, u *network.User) error
	RecordMatch(ctx context.Context, userID, matchID int64) error
	FetchUser(ctx context.Context, userID int64) (*network.User, error)
	Reset(ctx context.Context) error
	Close(ctx context.Context) error
}

// Open returns the backend selected by cfg.StoreBackend. Neo4j backends are
// verified reachable and get their constraints before they are returned.
func Open(ctx context.Context, cfg *config.Config, collector *metrics.Collector) (Backend, error) {
	switch cfg.StoreBackend {
	case config.StoreMemory:
		return NewMemory(), nil
	case config.StoreNeo4j:
		driver, err := Connect(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
		if err != nil {
			return nil, err
		}
		repo := NewRepository(driver, collector)
		if err := repo.EnsureConstraints(ctx); err != nil {
			_ = repo.Close(ctx)
			return nil, err
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
