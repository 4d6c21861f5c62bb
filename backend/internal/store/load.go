package store

import (
	"context"

	"golang.org/x/sync/errgroup"

	"suitemate/backend/internal/network"
)

type snapshotSource interface {
	LoadUsers(ctx context.Context) ([]network.User, error)
	LoadMatches(ctx context.Context) ([]network.Edge, error)
}

func loadAll(ctx context.Context, src snapshotSource) ([]network.User, []network.Edge, error) {
	var (
		users   []network.User
		matches []network.Edge
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = src.LoadUsers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		matches, err = src.LoadMatches(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return users, matches, nil
}

// BuildNetwork assembles a network from stored users and matches. Every user
// gets a node; matches naming unknown users create bare nodes for them.
func BuildNetwork(users []network.User, matches []network.Edge) (*network.Network, error) {
	net := network.New()
	profiles := make(map[int64]*network.User, len(users))

	for i := range users {
		u := &users[i]
		if err := net.AddUser(u); err != nil {
			return nil, err
		}
		profiles[u.ID] = u
	}

	lookup := func(id int64) *network.User {
		if u, ok := profiles[id]; ok {
			return u
		}
		u := &network.User{ID: id}
		profiles[id] = u
		return u
	}

	for _, m := range matches {
		if err := net.AddConnection(lookup(m.Source), lookup(m.Target)); err != nil {
			return nil, err
		}
	}

	return net, nil
}
