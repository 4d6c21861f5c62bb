package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suitemate/backend/internal/network"
	"suitemate/backend/internal/store"
	apperrors "suitemate/backend/pkg/errors"
)

const batchFile = `
users:
  - id: 1
    name: Ada
    location: Riverside
  - id: 4
    name: Hedy
batches:
  - anchor: 1
    members: [2, 3]
`

func writeBatch(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestBuildCommand(t *testing.T) {
	path := writeBatch(t, batchFile)

	t.Run("star", func(t *testing.T) {
		out, err := run(t, "build", path)
		require.NoError(t, err)

		var graph network.Graph
		require.NoError(t, json.Unmarshal([]byte(out), &graph))
		assert.Equal(t, []network.Edge{{Source: 1, Target: 2}, {Source: 1, Target: 3}}, graph.Edges)
		assert.Equal(t, 4, graph.Stats.TotalNodes)
		assert.Equal(t, "Riverside", graph.Nodes[0].Profile.Location)
	})

	t.Run("clique", func(t *testing.T) {
		out, err := run(t, "build", path, "--clique")
		require.NoError(t, err)

		var graph network.Graph
		require.NoError(t, json.Unmarshal([]byte(out), &graph))
		assert.Len(t, graph.Edges, 3)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := run(t, "build", filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := run(t, "build", writeBatch(t, "groups: []\n"))
		assert.Error(t, err)
	})
}

func TestMatchesCommand(t *testing.T) {
	path := writeBatch(t, batchFile)

	out, err := run(t, "matches", path, "2")
	require.NoError(t, err)
	assert.Contains(t, out, `"user_id": 2`)
	assert.Contains(t, out, "1")

	_, err = run(t, "matches", path, "99")
	var notFound *apperrors.ErrUserNotFound
	assert.ErrorAs(t, err, &notFound)

	_, err = run(t, "matches", path, "two")
	assert.Error(t, err)
}

func TestCheckCommand(t *testing.T) {
	path := writeBatch(t, batchFile)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"check", path, "1", "2"}, "true"},
		{[]string{"check", path, "3", "1"}, "true"},
		{[]string{"check", path, "2", "3"}, "false"},
		{[]string{"check", path, "2", "3", "--clique"}, "true"},
		{[]string{"check", path, "1", "99"}, "false"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args[2:], " "), func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, strings.TrimSpace(out))
		})
	}
}

func TestImportCommand(t *testing.T) {
	mem := store.NewMemory()
	prev := openBackend
	openBackend = func(cmd *cobra.Command) (store.Backend, error) { return mem, nil }
	t.Cleanup(func() { openBackend = prev })

	out, err := run(t, "import", writeBatch(t, batchFile))
	require.NoError(t, err)
	assert.Contains(t, out, `"total_edges": 2`)

	matches, err := mem.LoadMatches(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []network.Edge{{Source: 1, Target: 2}, {Source: 1, Target: 3}}, matches)

	hedy, err := mem.FetchUser(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "Hedy", hedy.Name)
}

func TestImportRejectsSelfMatch(t *testing.T) {
	mem := store.NewMemory()
	prev := openBackend
	openBackend = func(cmd *cobra.Command) (store.Backend, error) { return mem, nil }
	t.Cleanup(func() { openBackend = prev })

	_, err := run(t, "import", writeBatch(t, "batches:\n  - anchor: 7\n    members: [7]\n"))

	var invalid *apperrors.ErrInvalidConnection
	require.ErrorAs(t, err, &invalid)
	users, err := mem.LoadUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}
