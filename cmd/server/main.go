package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/aaerminer/internal/api"
	"github.com/dgallion1/aaerminer/internal/config"
	"github.com/dgallion1/aaerminer/internal/depparse"
	"github.com/dgallion1/aaerminer/internal/docindex"
	"github.com/dgallion1/aaerminer/internal/filings"
	"github.com/dgallion1/aaerminer/internal/pipeline"
	"github.com/dgallion1/aaerminer/internal/temporal"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Temporal lookup tables, optionally overridden from YAML.
	tables := temporal.DefaultTables()
	if cfg.TablesPath != "" {
		loaded, err := temporal.LoadTables(cfg.TablesPath)
		if err != nil {
			log.Error("load tables", "path", cfg.TablesPath, "error", err)
			os.Exit(1)
		}
		tables = loaded
	}

	// Initialize clients.
	index := docindex.NewClient(cfg.DocIndexURL, cfg.DocIndexAPIKey)
	parser := depparse.NewClient(cfg.ParserURL, cfg.ParserAPIKey)
	search := filings.NewClient(cfg.FilingsURL, cfg.FilingsAPIKey, cfg.FilingsCacheTTL)

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, tables, parser, search, index, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		parser.Close()
		index.Close()
	}()

	log.Info("starting aaerminer", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
