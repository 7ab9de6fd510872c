/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the shift calendar server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env and environment (config.Load)
  2. Apply command-line flag overrides
  3. Open the store (SQLite, or in-memory with -db=memory)
  4. Create tracker and API handler
  5. Configure HTTP router
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (overrides SERVER_PORT, default 8080)
  -db      SQLite database path (overrides DATABASE_PATH)
           Use ":memory:" for a throwaway SQLite database, or
           "memory" for the in-memory store

ENVIRONMENT:
  SERVER_PORT, SERVER_READ_TIMEOUT, SERVER_WRITE_TIMEOUT,
  SERVER_IDLE_TIMEOUT, SERVER_SHUTDOWN_TIMEOUT (seconds)
  DATABASE_PATH
  LOG_LEVEL (debug|info|warn|error), LOG_FORMAT (text|json)
  CORS_ALLOWED_ORIGINS (comma separated)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (SERVER_SHUTDOWN_TIMEOUT)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/shifts.db"

  # Run with in-memory store
  ./server -db=memory

  # Run on different port
  ./server -port=3000

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Environment configuration
  - store/open.go: Store selection
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/warp/shift-calendar/api"
	"github.com/warp/shift-calendar/config"
	"github.com/warp/shift-calendar/store"
	"github.com/warp/shift-calendar/tracker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	// Flags override the environment
	port := flag.String("port", cfg.Server.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.Database.Path, "SQLite database path, or \"memory\"")
	flag.Parse()
	cfg.Server.Port = *port
	cfg.Database.Path = *dbPath

	logger := cfg.NewLogger()

	if err := ensureDataDir(cfg.Database.Path); err != nil {
		logger.WithError(err).Fatal("Failed to create data directory")
	}

	// Initialize store
	repo, err := store.Open(cfg.Database.Path)
	if err != nil {
		logger.WithError(err).WithField("db", cfg.Database.Path).Fatal("Failed to initialize database")
	}
	defer repo.Close()

	// Initialize tracker and handler
	t := tracker.NewFromRepository(repo, tracker.WithLogger(logger))
	handler := api.NewHandler(t, repo, logger)

	// Create router
	router := api.NewRouter(handler, logger, cfg.CORS.AllowedOrigins)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
		IdleTimeout:  cfg.IdleTimeout(),
	}

	// Start server in goroutine
	go func() {
		logger.WithFields(logrus.Fields{
			"port": cfg.Server.Port,
			"db":   cfg.Database.Path,
			"env":  cfg.Environment,
		}).Infof("Server starting on http://localhost:%s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server stopped")
}

// ensureDataDir creates the parent directory of a SQLite file path.
func ensureDataDir(dbPath string) error {
	if dbPath == store.MemoryPath || dbPath == ":memory:" {
		return nil
	}
	dir := filepath.Dir(dbPath)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
