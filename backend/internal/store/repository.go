// Package store persists users and their matches in Neo4j and rebuilds the
// in-memory match graph from them.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"suitemate/backend/internal/metrics"
	"suitemate/backend/internal/network"
	apperrors "suitemate/backend/pkg/errors"
	"suitemate/backend/pkg/logger"
)

// Repository handles all Neo4j database operations
type Repository struct {
	driver  neo4j.DriverWithContext
	metrics *metrics.Collector
	logger  *zap.Logger
}

// Connect creates a driver for uri and verifies the server is reachable
func Connect(ctx context.Context, uri, user, password string) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, apperrors.NewStoreConnectionFailed(uri, err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, apperrors.NewStoreConnectionFailed(uri, err)
	}
	return driver, nil
}

// NewRepository creates a new match repository. collector may be nil.
func NewRepository(driver neo4j.DriverWithContext, collector *metrics.Collector) *Repository {
	return &Repository{
		driver:  driver,
		metrics: collector,
		logger:  logger.Get(),
	}
}

// Close closes the Neo4j driver connection
func (r *Repository) Close(ctx context.Context) error {
	return r.driver.Close(ctx)
}

// EnsureConstraints creates the uniqueness constraint on user identity
func (r *Repository) EnsureConstraints(ctx context.Context) (err error) {
	defer r.observe("ensure_constraints", time.Now(), &err)

	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `CREATE CONSTRAINT user_id IF NOT EXISTS FOR (u:User) REQUIRE u.id IS UNIQUE`

	if _, err := session.Run(ctx, query, nil); err != nil {
		return apperrors.NewStoreQueryFailed("ensure constraints", err)
	}
	return nil
}

// LoadNetwork rebuilds the match graph from every stored user and match.
// Users and matches are fetched concurrently.
func (r *Repository) LoadNetwork(ctx context.Context) (*network.Network, error) {
	users, matches, err := loadAll(ctx, r)
	if err != nil {
		return nil, err
	}

	net, err := BuildNetwork(users, matches)
	if err != nil {
		return nil, fmt.Errorf("failed to build network: %w", err)
	}

	r.logger.Debug("Loaded match network",
		zap.Int("users", net.Len()),
		zap.Int("matches", net.EdgeCount()),
	)
	return net, nil
}

func (r *Repository) observe(operation string, start time.Time, err *error) {
	r.metrics.ObserveStore(operation, start, *err)
	if *err != nil {
		r.logger.Warn("Store operation failed", zap.String("operation", operation), zap.Error(*err))
	}
}
