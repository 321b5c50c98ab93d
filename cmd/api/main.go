// Package main is the entry point for the TripMap API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/keepgoing/tripmap/internal/archive"
	"github.com/keepgoing/tripmap/internal/config"
	"github.com/keepgoing/tripmap/internal/handler"
	"github.com/keepgoing/tripmap/internal/middleware"
	"github.com/keepgoing/tripmap/internal/store"
	"github.com/keepgoing/tripmap/internal/trip"
)

// maxBodySize limits request bodies to 1MB — itinerary payloads are small.
const maxBodySize = 1 << 20

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Archive store ----------------------------------------------------
	st, cleanup, err := newStore(cfg)
	if err != nil {
		slog.Error("failed to open archive store", "error", err, "backend", cfg.ArchiveBackend)
		os.Exit(1)
	}
	defer cleanup()
	slog.Info("archive store ready", "backend", cfg.ArchiveBackend)

	// --- Engine -----------------------------------------------------------
	state := trip.NewState(logger)
	arch := archive.New(st, state, logger)
	arch.LoadAll(context.Background())

	// --- Router -----------------------------------------------------------
	// Middleware order: RequestID → RealIP → Logger → Recoverer → CORS → body limit.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodySize))

	srvHandler := handler.NewServer(state, arch, logger)
	r.Mount("/", srvHandler.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	// WriteTimeout is generous because /api/events holds its response open.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// newStore builds the archive persistence backend selected by the config,
// returning the store and a cleanup function for deferred release.
func newStore(cfg config.Config) (archive.Store, func(), error) {
	noop := func() {}
	switch cfg.ArchiveBackend {
	case config.BackendMemory:
		return store.NewMemory(), noop, nil
	case config.BackendFile:
		return store.NewFile(cfg.ArchivePath + ".json"), noop, nil
	case config.BackendDiskv:
		return store.NewDiskv(cfg.ArchivePath), noop, nil
	case config.BackendSQLite:
		s, err := store.NewSQLite(filepath.Clean(cfg.ArchivePath) + ".db")
		if err != nil {
			return nil, noop, err
		}
		return s, func() { s.Close() }, nil
	case config.BackendPostgres:
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		if err := pool.Ping(context.Background()); err != nil {
			pool.Close()
			return nil, noop, err
		}
		return store.NewPostgres(pool), pool.Close, nil
	}
	// config.Load already rejected unknown backends.
	return store.NewMemory(), noop, nil
}
