package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"suitemate/backend/internal/api"
	"suitemate/backend/internal/matching"
	"suitemate/backend/internal/metrics"
	"suitemate/backend/internal/network"
	"suitemate/backend/internal/store"
	"suitemate/backend/pkg/config"
	"suitemate/backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}

	// Initialize logger
	if err := logger.Init(cfg.Env); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting match graph server...",
		zap.String("store", cfg.StoreBackend),
		zap.String("network_mode", cfg.NetworkMode),
	)

	ctx := context.Background()

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.NewCollector("suitemate")
	}

	// Initialize store
	backend, err := store.Open(ctx, cfg, collector)
	if err != nil {
		log.Fatal("Failed to open match store", zap.Error(err))
	}
	defer backend.Close(context.Background())

	service, err := newService(ctx, cfg, backend, collector)
	if err != nil {
		log.Fatal("Failed to load match network", zap.Error(err))
	}

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(service, api.Options{
		AllowedOrigin: cfg.CORSAllowedOrigin,
		Metrics:       collector,
	})

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started", zap.String("port", cfg.Port))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

// newService builds the matching service for the configured network mode.
// Shared mode loads the whole graph once, up front.
func newService(ctx context.Context, cfg *config.Config, backend matching.Store, collector *metrics.Collector) (*matching.Service, error) {
	var shared *network.SyncNetwork
	if cfg.SharedNetwork() {
		var err error
		shared, err = matching.LoadShared(ctx, backend)
		if err != nil {
			return nil, err
		}
		collector.SetNetworkSize(shared.Len(), shared.EdgeCount())
		logger.Get().Info("Loaded shared match network",
			zap.Int("users", shared.Len()),
			zap.Int("matches", shared.EdgeCount()),
		)
	}
	return matching.NewService(backend, shared, collector), nil
}
