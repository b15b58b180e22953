// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shivanand-hulikatti/activity-board/internal/board"
	"github.com/Shivanand-hulikatti/activity-board/internal/client"
	"github.com/Shivanand-hulikatti/activity-board/internal/config"
	"github.com/Shivanand-hulikatti/activity-board/internal/handler"
)

func main() {
	// ── 1. Load configuration ────────────────────────────────────────────
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatalf("load .env: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	// ── 2. Wire up layers ────────────────────────────────────────────────
	api := client.New(cfg.ActivitiesAPI,
		client.WithTimeout(cfg.UpstreamTimeout),
		client.WithLogger(logger),
	)
	activityBoard := board.New(api,
		board.WithLogger(logger),
		board.WithHideDelay(cfg.BannerHideDelay),
	)
	boardHandler := handler.NewBoardHandler(activityBoard, logger)

	// Initial render; a failure leaves the failure sentence in the list.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.UpstreamTimeout)
	if err := activityBoard.Load(ctx); err != nil {
		logger.Warn("initial_catalog_load_failed", "upstream", cfg.ActivitiesAPI, "error", err.Error())
	}
	cancel()

	// ── 3. Start server with graceful shutdown ───────────────────────────
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler.NewRouter(boardHandler, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Run in background goroutine so we can listen for shutdown signal.
	go func() {
		logger.Info("server_listening", "addr", cfg.Addr(), "upstream", cfg.ActivitiesAPI)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server_shutting_down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}
	logger.Info("server_stopped")
}
