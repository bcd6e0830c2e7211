package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/subosito/gotenv"

	"github.com/pomelolabs/pomelo/internal/ai"
	"github.com/pomelolabs/pomelo/internal/api"
	"github.com/pomelolabs/pomelo/internal/config"
	"github.com/pomelolabs/pomelo/internal/ingest"
	"github.com/pomelolabs/pomelo/internal/logging"
	"github.com/pomelolabs/pomelo/internal/sentiment"
	"github.com/pomelolabs/pomelo/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	dataDir := flag.String("data-dir", "./data", "path to data directory")
	flag.Parse()

	logging.Init(slog.LevelInfo)

	// Load .env if present; env vars override config file values.
	_ = gotenv.Load()

	// Load configuration (auto-creates default if missing).
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Ensure data directory exists.
	if err := os.MkdirAll(*dataDir, 0o755); err != nil {
		slog.Error("failed to create data directory", "error", err)
		os.Exit(1)
	}

	// Open database with WAL mode and pragmas.
	db, err := storage.OpenDatabase(filepath.Join(*dataDir, "app.db"))
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run schema migrations.
	if err := storage.RunMigrations(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	store := storage.NewStore(db)

	// Create AI provider (nil if disabled or no API key -- the service
	// reports unavailability to handlers).
	var provider ai.TextGenerator
	if cfg.AI.Enabled && cfg.AI.APIKey != "" {
		provider, err = ai.NewProvider(ai.ProviderConfig{
			Provider: cfg.AI.Provider,
			APIKey:   cfg.AI.APIKey,
			Model:    cfg.AI.Model,
		})
		if err != nil {
			slog.Error("failed to create AI provider", "error", err)
			os.Exit(1)
		}
		slog.Info("AI provider configured", "provider", cfg.AI.Provider, "model", cfg.AI.Model)
	} else {
		slog.Warn("AI generation disabled: no API key configured or ai.enabled is false")
	}
	aiSvc := ai.NewService(provider, cfg.AI.Enabled)

	analyzer := sentiment.NewAnalyzer()
	importer := ingest.NewImporter()

	router := api.NewRouter(store, analyzer, aiSvc, importer, cfg)

	// Bind to localhost only.
	addr := fmt.Sprintf("localhost:%d", cfg.Server.Port)

	slog.Info("starting server", "addr", "http://"+addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
