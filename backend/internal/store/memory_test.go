package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suitemate/backend/internal/network"
	apperrors "suitemate/backend/pkg/errors"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()

	t.Run("matches are undirected and deduplicated", func(t *testing.T) {
		m := NewMemory()
		require.NoError(t, m.RecordMatch(ctx, 2, 1))
		require.NoError(t, m.RecordMatch(ctx, 1, 2))
		require.NoError(t, m.RecordMatch(ctx, 3, 1))

		matches, err := m.LoadMatches(ctx)
		require.NoError(t, err)
		assert.Equal(t, []network.Edge{{Source: 1, Target: 2}, {Source: 1, Target: 3}}, matches)
	})

	t.Run("recording a match creates bare users", func(t *testing.T) {
		m := NewMemory()
		require.NoError(t, m.RecordMatch(ctx, 5, 6))

		users, err := m.LoadUsers(ctx)
		require.NoError(t, err)
		assert.Equal(t, []network.User{{ID: 5}, {ID: 6}}, users)
	})

	t.Run("recording a match keeps existing profiles", func(t *testing.T) {
		m := NewMemory()
		require.NoError(t, m.UpsertUser(ctx, &network.User{ID: 5, Name: "Ada"}))
		require.NoError(t, m.RecordMatch(ctx, 5, 6))

		u, err := m.FetchUser(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, "Ada", u.Name)
	})

	t.Run("self match rejected", func(t *testing.T) {
		var invalid *apperrors.ErrInvalidConnection
		assert.ErrorAs(t, NewMemory().RecordMatch(ctx, 1, 1), &invalid)
	})

	t.Run("nil user rejected", func(t *testing.T) {
		assert.ErrorIs(t, NewMemory().UpsertUser(ctx, nil), apperrors.ErrInvalidUser)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := NewMemory().FetchUser(ctx, 9)
		var notFound *apperrors.ErrUserNotFound
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("stored profile is a copy", func(t *testing.T) {
		m := NewMemory()
		u := &network.User{ID: 1, Name: "Ada"}
		require.NoError(t, m.UpsertUser(ctx, u))
		u.Name = "changed"

		got, err := m.FetchUser(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Ada", got.Name)
	})

	t.Run("load network", func(t *testing.T) {
		m := NewMemory()
		require.NoError(t, m.UpsertUser(ctx, &network.User{ID: 1, Name: "Ada"}))
		require.NoError(t, m.UpsertUser(ctx, &network.User{ID: 4}))
		require.NoError(t, m.RecordMatch(ctx, 1, 2))
		require.NoError(t, m.RecordMatch(ctx, 2, 3))

		net, err := m.LoadNetwork(ctx)
		require.NoError(t, err)

		assert.Equal(t, 4, net.Len())
		ids, err := net.MatchIDs(2)
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 3}, ids)
		assert.False(t, net.Connected(1, 3))
	})
}

func TestMemoryReset(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.RecordMatch(ctx, 1, 2))

	require.NoError(t, m.Reset(ctx))

	users, err := m.LoadUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
	matches, err := m.LoadMatches(ctx)
	require.NoError(t, err)
	assert.Empty(t, matches)
}
