package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "suitemate/backend/pkg/errors"
)

func TestCreateNetwork(t *testing.T) {
	t.Run("star semantics connects anchor to members only", func(t *testing.T) {
		net, err := CreateNetwork([]MatchBatch{
			{1: {user(2), user(3)}},
		})
		require.NoError(t, err)

		assert.True(t, net.CheckConnection(user(1), user(2)))
		assert.True(t, net.CheckConnection(user(1), user(3)))
		assert.False(t, net.CheckConnection(user(2), user(3)))
		assert.Equal(t, 2, net.EdgeCount())
	})

	t.Run("empty input yields empty network", func(t *testing.T) {
		net, err := CreateNetwork(nil)
		require.NoError(t, err)
		assert.Zero(t, net.Len())
	})

	t.Run("anchor without members still gets a node", func(t *testing.T) {
		net, err := CreateNetwork([]MatchBatch{{7: nil}})
		require.NoError(t, err)

		matches, err := net.GetMatches(user(7))
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("batches accumulate", func(t *testing.T) {
		net, err := CreateNetwork([]MatchBatch{
			{1: {user(2)}},
			{2: {user(3)}, 4: {user(1)}},
			{1: {user(2)}},
		})
		require.NoError(t, err)

		ids, err := net.MatchIDs(1)
		require.NoError(t, err)
		assert.Equal(t, []int64{2, 4}, ids)

		ids, err = net.MatchIDs(2)
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 3}, ids)
		assert.Equal(t, 3, net.EdgeCount())
	})

	t.Run("member profiles are kept", func(t *testing.T) {
		net, err := CreateNetwork([]MatchBatch{
			{1: {{ID: 2, Name: "Grace"}}},
		})
		require.NoError(t, err)

		profile, ok := net.Profile(2)
		require.True(t, ok)
		assert.Equal(t, "Grace", profile.Name)

		_, ok = net.Profile(1)
		assert.False(t, ok)
	})

	t.Run("anchor listed as its own member fails", func(t *testing.T) {
		net, err := CreateNetwork([]MatchBatch{
			{1: {user(2)}},
			{3: {user(4), user(3)}},
		})

		var invalid *apperrors.ErrInvalidConnection
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, int64(3), invalid.UserID)
		assert.Contains(t, err.Error(), "batch 1 anchor 3")
		assert.Nil(t, net)
	})

	t.Run("nil member fails", func(t *testing.T) {
		_, err := CreateNetwork([]MatchBatch{{1: {nil}}})
		assert.ErrorIs(t, err, apperrors.ErrInvalidUser)
	})
}

func TestCreateNetworkWithClique(t *testing.T) {
	t.Run("members are connected to each other", func(t *testing.T) {
		net, err := CreateNetworkWith([]MatchBatch{
			{1: {user(2), user(3), user(4)}},
		}, Clique)
		require.NoError(t, err)

		for _, pair := range [][2]int64{{1, 2}, {1, 3}, {1, 4}, {2, 3}, {2, 4}, {3, 4}} {
			assert.True(t, net.Connected(pair[0], pair[1]), "%d-%d", pair[0], pair[1])
		}
		assert.Equal(t, 6, net.EdgeCount())
	})

	t.Run("repeated member is not a self match", func(t *testing.T) {
		net, err := CreateNetworkWith([]MatchBatch{
			{1: {user(2), user(2)}},
		}, Clique)
		require.NoError(t, err)

		assert.Equal(t, 1, net.EdgeCount())
		assert.False(t, net.Connected(2, 2))
	})

	t.Run("separate batches stay separate", func(t *testing.T) {
		net, err := CreateNetworkWith([]MatchBatch{
			{1: {user(2), user(3)}},
			{4: {user(5), user(6)}},
		}, Clique)
		require.NoError(t, err)

		assert.True(t, net.Connected(2, 3))
		assert.True(t, net.Connected(5, 6))
		assert.False(t, net.Connected(3, 5))
	})
}

func TestParseSemantics(t *testing.T) {
	tests := []struct {
		in      string
		want    Semantics
		wantErr bool
	}{
		{"", Star, false},
		{"star", Star, false},
		{" Clique ", Clique, false},
		{"mesh", Star, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSemantics(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "star", Star.String())
	assert.Equal(t, "clique", Clique.String())
	assert.Equal(t, "semantics(9)", Semantics(9).String())
}
