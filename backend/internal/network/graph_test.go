package network

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot(t *testing.T) {
	t.Run("empty network", func(t *testing.T) {
		graph := New().Snapshot()

		assert.Empty(t, graph.Nodes)
		assert.Empty(t, graph.Edges)
		require.NotNil(t, graph.Stats)
		assert.Zero(t, graph.Stats.TotalNodes)
	})

	t.Run("edges appear once in ascending order", func(t *testing.T) {
		net := New()
		require.NoError(t, net.AddConnection(user(3), user(1)))
		require.NoError(t, net.AddConnection(user(2), user(1)))
		require.NoError(t, net.AddUser(user(9)))

		graph := net.Snapshot()

		require.Len(t, graph.Nodes, 4)
		assert.Equal(t, int64(1), graph.Nodes[0].ID)
		assert.Equal(t, 2, graph.Nodes[0].Degree)
		assert.Equal(t, []Edge{{Source: 1, Target: 2}, {Source: 1, Target: 3}}, graph.Edges)

		assert.Equal(t, 4, graph.Stats.TotalNodes)
		assert.Equal(t, 2, graph.Stats.TotalEdges)
		assert.Equal(t, 1, graph.Stats.IsolatedNodes)
		assert.Equal(t, 2, graph.Stats.MaxDegree)
	})

	t.Run("profile-less nodes omit profile in JSON", func(t *testing.T) {
		net, err := CreateNetwork([]MatchBatch{{1: {{ID: 2, Name: "Grace"}}}})
		require.NoError(t, err)

		data, err := json.Marshal(net.Snapshot())
		require.NoError(t, err)

		var decoded struct {
			Nodes []map[string]any `json:"nodes"`
		}
		require.NoError(t, json.Unmarshal(data, &decoded))
		require.Len(t, decoded.Nodes, 2)
		assert.NotContains(t, decoded.Nodes[0], "profile")
		assert.Contains(t, decoded.Nodes[1], "profile")
	})
}
