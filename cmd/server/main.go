package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/loiht2/chess-trainer/config"
	"github.com/loiht2/chess-trainer/handlers"
	"github.com/loiht2/chess-trainer/middleware"
	"github.com/loiht2/chess-trainer/repository"
	"github.com/loiht2/chess-trainer/service"
)

func main() {
	configPath := flag.String("config", getEnvOrDefault("CONFIG_PATH", "config.yaml"),
		"Path to YAML config file (optional). Without a database driver the catalogue is in-memory and starts empty")
	port := flag.String("port", "", "Server port (overrides config)")
	logLevel := flag.String("log-level", "", "debug|info|warn|error (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		// logger is not configured yet
		_, _ = os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *port != "" {
		cfg.Server.Port = *port
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	logger.Info("Starting chess trainer backend", zap.String("driver", cfg.Database.Driver))

	svc, err := newService(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := cfg.Close(); err != nil {
			logger.Warn("Failed to close database", zap.Error(err))
		}
	}()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      newRouter(svc, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return serve(ctx, srv, logger)
}

// newService opens the configured storage and builds the puzzle service
func newService(cfg *config.Config, logger *zap.Logger) (*service.PuzzleService, error) {
	if err := cfg.OpenDatabase(logger); err != nil {
		return nil, err
	}
	if cfg.DB == nil {
		logger.Warn("In-memory storage selected, the puzzle catalogue starts empty",
			zap.String("hint", "set database.driver to sqlite or postgres and run the importer against the same database"))
	}

	puzzles, trainingSets := repository.New(cfg)
	return service.NewPuzzleService(puzzles, trainingSets, logger), nil
}

func newRouter(svc handlers.PuzzleService, logger *zap.Logger) *gin.Engine {
	if logger.Core().Enabled(zap.DebugLevel) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestLogger(logger))

	handlers.NewHandler(svc, logger).Register(router)
	return router
}

// serve runs srv until ctx is cancelled, then shuts down with a 10-second grace period
func serve(ctx context.Context, srv *http.Server, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Server forced to shutdown", zap.Error(err))
	}
	<-errCh
	logger.Info("Server stopped gracefully")
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
