package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dirkkok101/roguelike-sub009/internal/engine"
	"github.com/dirkkok101/roguelike-sub009/internal/network"
	"github.com/dirkkok101/roguelike-sub009/internal/server"
	"github.com/dirkkok101/roguelike-sub009/internal/storage"
	"github.com/dirkkok101/roguelike-sub009/internal/version"
	"github.com/dirkkok101/roguelike-sub009/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	var (
		configPath string
		seed       string
		addr       string
		verifyID   string
	)
	flag.StringVar(&configPath, "config", "", "Path to YAML config file")
	flag.StringVar(&seed, "seed", "", "Master seed override (empty for random)")
	flag.StringVar(&addr, "addr", "", "Listen address override, e.g. :8080")
	flag.StringVar(&verifyID, "verify", "", "Verify a stored session's replay and exit")
	flag.Parse()

	cfg := engine.DefaultConfig()
	if configPath != "" {
		loaded, err := engine.LoadConfig(configPath)
		if err != nil {
			logger.Log.Fatal("Config error: ", err)
		}
		cfg = loaded
	}
	if seed != "" {
		cfg.Game.Seed = seed
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	logger.Configure(cfg.Log.Level, cfg.Log.Format)

	logger.Log.Info("Starting roguelike replay server...")
	logger.Log.Info(version.String())

	store := openStore(cfg)
	defer func() {
		if err := store.Close(); err != nil {
			logger.Log.WithError(err).Warn("Store close failed")
		}
	}()

	gateway := storage.NewGateway(store)
	service := engine.NewService(cfg, gateway, network.NewBroadcaster())

	// VERIFY MODE: replay one stored session from turn 0, report, exit.
	if verifyID != "" {
		report, err := service.VerifySession(context.Background(), verifyID)
		if err != nil {
			logger.Log.Fatal("Verification failed to run: ", err)
		}
		out, _ := json.MarshalIndent(report, "", "  ")
		os.Stdout.Write(append(out, '\n'))
		if !report.Valid {
			os.Exit(1)
		}
		return
	}

	srv := server.New(service, cfg.Server.Addr)
	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Handler(),
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Log.Infof("Listening on %s", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("Server start error: ", err)
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Warn("HTTP shutdown incomplete")
	}

	// Every running session is persisted before the process exits.
	service.SaveAll(shutdownCtx)

	logger.Log.Info("Done.")
}

// openStore picks the blob store from config. A broken sqlite file is
// not fatal: play continues on the in-memory store and saves just do not
// survive the process.
func openStore(cfg engine.Config) storage.BlobStore {
	if cfg.Storage.Driver != "sqlite" {
		logger.Log.Info("Using in-memory storage")
		return storage.NewMemoryStore()
	}

	store, err := storage.NewSQLiteStore(cfg.Storage.Path)
	if err != nil {
		logger.Log.WithError(err).Warn("SQLite unavailable, falling back to in-memory storage")
		return storage.NewMemoryStore()
	}
	logger.Log.Infof("Using sqlite storage at %s", cfg.Storage.Path)
	return store
}
