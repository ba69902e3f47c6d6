package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Aadityav1/EasyToGet-Website/app/api"
	"github.com/Aadityav1/EasyToGet-Website/app/catalog"
	"github.com/Aadityav1/EasyToGet-Website/app/cfg"
	"github.com/Aadityav1/EasyToGet-Website/app/content"
	"github.com/Aadityav1/EasyToGet-Website/app/database"
)

func main() {
	// A .env file in the working directory is optional.
	_ = godotenv.Load()

	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	level := slog.LevelInfo
	if appCfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	slog.Info("Starting EasyToGet server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "path", appCfg.DatabaseURL, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DatabaseURL, "migration_version", version, "dirty", dirty)

	// Reconcile the seed catalog and collapse duplicate urls before the
	// listener binds, so every request sees the settled table.
	seeds, err := catalog.Load()
	if err != nil {
		slog.Error("Failed to load seed catalog", "error", err)
		os.Exit(1)
	}

	repo := database.NewContentRepository(db)

	inserted, updated, err := repo.ReconcileSeeds(seeds)
	if err != nil {
		slog.Error("Seed reconciliation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Seed catalog reconciled", "seeds", len(seeds), "inserted", inserted, "updated", updated)

	removed, err := repo.RemoveDuplicateURLs()
	if err != nil {
		slog.Error("Duplicate removal failed", "error", err)
		os.Exit(1)
	}
	if removed > 0 {
		slog.Info("Removed duplicate content rows", "removed", removed)
	}

	service := content.NewService(repo)
	handler := api.NewHandler(service)
	server := api.NewServer(handler, appCfg.StaticDir)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port, "static_dir", appCfg.StaticDir)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}
}
