package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"suitemate/backend/internal/matching"
	"suitemate/backend/internal/network"
	"suitemate/backend/internal/store"
	"suitemate/backend/pkg/config"
	"suitemate/backend/pkg/logger"
)

// demoSpec seeds a small neighborhood for local dashboards
var demoSpec = network.BatchSpec{
	Users: []network.User{
		{ID: 1, Username: "ada", Name: "Ada", Age: 24, Gender: "F", Rent: 900, Location: "Riverside", Noise: 2, Cleanliness: 5, NumRoommates: 2},
		{ID: 2, Username: "grace", Name: "Grace", Age: 27, Gender: "F", Rent: 1000, Location: "Riverside", Noise: 3, Cleanliness: 4, NumRoommates: 2},
		{ID: 3, Username: "barbara", Name: "Barbara", Age: 23, Gender: "F", Pets: true, Rent: 850, Location: "Riverside", Noise: 2, Cleanliness: 4, NumRoommates: 1},
		{ID: 4, Username: "alan", Name: "Alan", Age: 29, Gender: "M", Smoke: true, Rent: 1200, Location: "Downtown", Noise: 4, Guests: true, Cleanliness: 3, NumRoommates: 1},
		{ID: 5, Username: "edsger", Name: "Edsger", Age: 31, Gender: "M", Rent: 1100, Location: "Downtown", Noise: 1, Cleanliness: 5, NumRoommates: 1},
		{ID: 6, Username: "hedy", Name: "Hedy", Age: 26, Gender: "F", GenderPref: true, Rent: 950, Location: "Uptown", Noise: 3, Cleanliness: 3, NumRoommates: 3},
	},
	Batches: []network.BatchEntry{
		{Anchor: 1, Members: []int64{2, 3}},
		{Anchor: 4, Members: []int64{5}},
	},
}

func main() {
	file := flag.String("file", "", "Batch file to seed instead of the built-in demo data")
	clique := flag.Bool("clique", false, "Connect every pair of batch members")
	reset := flag.Bool("reset", false, "Delete all users and matches before seeding")
	skipConfirm := flag.Bool("y", false, "Skip confirmation prompt")
	flag.Parse()

	// Initialize logger
	if err := logger.Init("development"); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting database seeding...")

	if *reset && !*skipConfirm {
		log.Warn("WARNING: This will DELETE ALL users and matches from the store!")
		log.Warn("This action cannot be undone.")
		// Use fmt.Print for user input prompt (needs to go to stdout)
		fmt.Print("Are you sure you want to continue? (yes/no): ")
		var response string
		fmt.Scanln(&response)
		if response != "yes" && response != "y" {
			log.Info("Aborted.")
			os.Exit(0)
		}
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx := context.Background()
	backend, err := store.Open(ctx, cfg, nil)
	if err != nil {
		log.Fatal("Failed to open match store", zap.Error(err))
	}
	defer backend.Close(context.Background())

	if *reset {
		log.Info("Deleting all users and matches...")
		if err := backend.Reset(ctx); err != nil {
			log.Fatal("Failed to reset store", zap.Error(err))
		}
	}

	spec := &demoSpec
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			log.Fatal("Failed to open batch file", zap.Error(err))
		}
		spec, err = network.DecodeBatchSpec(f)
		f.Close()
		if err != nil {
			log.Fatal("Failed to read batch file", zap.Error(err))
		}
	}

	semantics := network.Star
	if *clique {
		semantics = network.Clique
	}

	graph, err := matching.NewService(backend, nil, nil).Import(ctx, spec, semantics)
	if err != nil {
		log.Fatal("Failed to seed matches", zap.Error(err))
	}

	log.Info("Seeding completed successfully",
		zap.Int("users", graph.Stats.TotalNodes),
		zap.Int("matches", graph.Stats.TotalEdges),
		zap.Int("isolated", graph.Stats.IsolatedNodes),
	)
}
