package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"suitemate/backend/internal/matching"
	"suitemate/backend/internal/network"
	"suitemate/backend/internal/store"
	"suitemate/backend/pkg/config"
	"suitemate/backend/pkg/logger"
)

// openBackend is swapped in tests to avoid a live store
var openBackend = func(cmd *cobra.Command) (store.Backend, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return store.Open(cmd.Context(), cfg, nil)
}

func newRootCmd() *cobra.Command {
	var clique bool

	rootCmd := &cobra.Command{
		Use:          "matchctl",
		Short:        "Build and inspect roommate match graphs",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVar(&clique, "clique", false, "connect every pair of batch members, not just anchor and member")

	semantics := func() network.Semantics {
		if clique {
			return network.Clique
		}
		return network.Star
	}

	buildCmd := &cobra.Command{
		Use:   "build [batch file]",
		Short: "Print the match graph described by a batch file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			net, err := buildFromFile(args[0], semantics())
			if err != nil {
				return err
			}
			return writeJSON(cmd, net.Snapshot())
		},
	}

	matchesCmd := &cobra.Command{
		Use:   "matches [batch file] [user id]",
		Short: "List the matches of one user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			net, err := buildFromFile(args[0], semantics())
			if err != nil {
				return err
			}
			ids, err := net.MatchIDs(id)
			if err != nil {
				return err
			}
			return writeJSON(cmd, map[string]interface{}{"user_id": id, "matches": ids})
		},
	}

	checkCmd := &cobra.Command{
		Use:   "check [batch file] [user id] [other id]",
		Short: "Report whether two users are matched",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := parseID(args[1])
			if err != nil {
				return err
			}
			b, err := parseID(args[2])
			if err != nil {
				return err
			}
			net, err := buildFromFile(args[0], semantics())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), net.Connected(a, b))
			return nil
		},
	}

	importCmd := &cobra.Command{
		Use:   "import [batch file]",
		Short: "Persist the users and matches of a batch file to the configured store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := readSpec(args[0])
			if err != nil {
				return err
			}

			backend, err := openBackend(cmd)
			if err != nil {
				return err
			}
			defer backend.Close(cmd.Context())

			graph, err := matching.NewService(backend, nil, nil).Import(cmd.Context(), spec, semantics())
			if err != nil {
				return err
			}

			logger.Get().Info("Imported batch file",
				zap.String("file", args[0]),
				zap.Int("users", graph.Stats.TotalNodes),
				zap.Int("matches", graph.Stats.TotalEdges),
			)
			return writeJSON(cmd, graph.Stats)
		},
	}

	rootCmd.AddCommand(buildCmd, matchesCmd, checkCmd, importCmd)
	return rootCmd
}

func readSpec(path string) (*network.BatchSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open batch file: %w", err)
	}
	defer f.Close()
	return network.DecodeBatchSpec(f)
}

func buildFromFile(path string, semantics network.Semantics) (*network.Network, error) {
	spec, err := readSpec(path)
	if err != nil {
		return nil, err
	}
	return spec.Build(semantics)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user id %q", s)
	}
	return id, nil
}

func writeJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
