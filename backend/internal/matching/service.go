// Package matching answers dashboard queries against the match graph and
// records new matches in both the store and, when one is resident, the
// shared graph.
package matching

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"suitemate/backend/internal/metrics"
	"suitemate/backend/internal/network"
	apperrors "suitemate/backend/pkg/errors"
	"suitemate/backend/pkg/logger"
)

// persistConcurrency bounds parallel store writes during an import
const persistConcurrency = 4

// Store is the persistence the service needs. *store.Repository satisfies it.
type Store interface {
	LoadNetwork(ctx context.Context) (*network.Network, error)
	UpsertUser(ctx context.Context, u *network.User) error
	RecordMatch(ctx context.Context, userID, matchID int64) error
}

type graphReader interface {
	MatchIDs(id int64) ([]int64, error)
	Connected(id1, id2 int64) bool
	Snapshot() *network.Graph
	Len() int
	EdgeCount() int
}

// Service serves match queries in one of two modes. Without a shared network
// every query reads a graph freshly built from the store; concurrent builds
// are coalesced and the result is only read. With a shared network all
// queries and updates go through its lock.
type Service struct {
	store   Store
	shared  *network.SyncNetwork
	builds  singleflight.Group
	metrics *metrics.Collector
	logger  *zap.Logger
}

// NewService creates a service. shared may be nil for request-scoped graphs;
// collector may be nil.
func NewService(store Store, shared *network.SyncNetwork, collector *metrics.Collector) *Service {
	return &Service{
		store:   store,
		shared:  shared,
		metrics: collector,
		logger:  logger.Get(),
	}
}

// LoadShared builds a network from store and wraps it for shared use
func LoadShared(ctx context.Context, store Store) (*network.SyncNetwork, error) {
	net, err := store.LoadNetwork(ctx)
	if err != nil {
		return nil, err
	}
	return network.NewSync(net), nil
}

// Shared reports whether the service holds a resident network
func (s *Service) Shared() bool {
	return s.shared != nil
}

// Matches returns the identities matched with userID in ascending order
func (s *Service) Matches(ctx context.Context, userID int64) ([]int64, error) {
	graph, err := s.reader(ctx)
	if err != nil {
		return nil, err
	}
	return graph.MatchIDs(userID)
}

// Connected reports whether two users are matched. Unknown users are not.
func (s *Service) Connected(ctx context.Context, userID, otherID int64) (bool, error) {
	graph, err := s.reader(ctx)
	if err != nil {
		return false, err
	}
	return graph.Connected(userID, otherID), nil
}

// Graph returns a snapshot of the whole match graph
func (s *Service) Graph(ctx context.Context) (*network.Graph, error) {
	graph, err := s.reader(ctx)
	if err != nil {
		return nil, err
	}
	return graph.Snapshot(), nil
}

// RecordMatch persists a match between u1 and u2 and, in shared mode, adds
// it to the resident network. Invalid pairs are rejected before anything is
// written. Users carrying profile data are upserted first; identity-only
// references leave the stored profile alone.
func (s *Service) RecordMatch(ctx context.Context, u1, u2 *network.User) error {
	if u1 == nil || u2 == nil {
		return apperrors.ErrInvalidUser
	}
	if u1.ID == u2.ID {
		return apperrors.NewInvalidConnection(u1.ID)
	}

	for _, u := range []*network.User{u1, u2} {
		if !hasProfile(u) {
			continue
		}
		if err := s.store.UpsertUser(ctx, u); err != nil {
			return err
		}
	}
	if err := s.store.RecordMatch(ctx, u1.ID, u2.ID); err != nil {
		return err
	}

	if s.shared != nil {
		if err := s.shared.AddConnection(u1, u2); err != nil {
			return err
		}
		s.metrics.SetNetworkSize(s.shared.Len(), s.shared.EdgeCount())
	}
	s.metrics.IncMatchesRecorded(1)

	s.logger.Info("Match recorded",
		zap.Int64("user_id", u1.ID),
		zap.Int64("match_id", u2.ID),
	)
	return nil
}

// Import builds a network from spec, persists its users and matches, and
// returns a snapshot of the imported batch. The batch is validated in full
// before anything is written.
func (s *Service) Import(ctx context.Context, spec *network.BatchSpec, semantics network.Semantics) (*network.Graph, error) {
	if spec == nil {
		return nil, errors.New("batch spec is required")
	}

	imported, err := spec.Build(semantics)
	if err != nil {
		return nil, err
	}
	snapshot := imported.Snapshot()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(persistConcurrency)
	for i := range spec.Users {
		u := &spec.Users[i]
		g.Go(func() error {
			return s.store.UpsertUser(gctx, u)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// users must exist before matches so MERGE does not race on them
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(persistConcurrency)
	for _, edge := range snapshot.Edges {
		g.Go(func() error {
			return s.store.RecordMatch(gctx, edge.Source, edge.Target)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if s.shared != nil {
		if err := s.mergeShared(imported, snapshot); err != nil {
			return nil, err
		}
		s.metrics.SetNetworkSize(s.shared.Len(), s.shared.EdgeCount())
	}
	s.metrics.IncMatchesRecorded(len(snapshot.Edges))

	s.logger.Info("Match batch imported",
		zap.Int("batches", len(spec.Batches)),
		zap.Int("users", snapshot.Stats.TotalNodes),
		zap.Int("matches", snapshot.Stats.TotalEdges),
		zap.Stringer("semantics", semantics),
	)
	return snapshot, nil
}

func (s *Service) mergeShared(imported *network.Network, snapshot *network.Graph) error {
	profile := func(id int64) *network.User {
		if u, ok := imported.Profile(id); ok {
			return u
		}
		return &network.User{ID: id}
	}

	for _, edge := range snapshot.Edges {
		if err := s.shared.AddConnection(profile(edge.Source), profile(edge.Target)); err != nil {
			return err
		}
	}
	for _, node := range snapshot.Nodes {
		if node.Degree > 0 {
			continue
		}
		err := s.shared.AddUser(profile(node.ID))
		var dup *apperrors.ErrDuplicateUser
		if err != nil && !errors.As(err, &dup) {
			return err
		}
	}
	return nil
}

func (s *Service) reader(ctx context.Context) (graphReader, error) {
	if s.shared != nil {
		return s.shared, nil
	}

	v, err, _ := s.builds.Do("network", func() (interface{}, error) {
		start := time.Now()
		// shared by every waiter, so one caller going away must not fail the rest
		net, err := s.store.LoadNetwork(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		s.metrics.ObserveBuild(net.Len(), net.EdgeCount(), time.Since(start))
		return net, nil
	})
	if err != nil {
		s.logger.Error("Failed to build match network", zap.Error(err))
		return nil, err
	}
	return v.(*network.Network), nil
}

// hasProfile reports whether u carries anything beyond its identity
func hasProfile(u *network.User) bool {
	return *u != network.User{ID: u.ID}
}
