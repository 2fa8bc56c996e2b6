// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Jana57473/community-event-portal/internal/clock"
	"github.com/Jana57473/community-event-portal/internal/config"
	"github.com/Jana57473/community-event-portal/internal/handler"
	"github.com/Jana57473/community-event-portal/internal/logger"
	"github.com/Jana57473/community-event-portal/internal/model"
	"github.com/Jana57473/community-event-portal/internal/repository"
	"github.com/Jana57473/community-event-portal/internal/seed"
	"github.com/Jana57473/community-event-portal/internal/service"
	"github.com/Jana57473/community-event-portal/internal/submission"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log, err := logger.New(cfg.Environment)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func() { _ = log.Sync() }()

	// ── 1. Build the in-memory store ─────────────────────────────────────
	clk := clock.System
	var initial []model.Event
	if cfg.SeedEvents {
		initial = seed.Events(clock.Today(clk))
	}
	eventRepo := repository.NewEventRepository(initial...)
	regRepo := repository.NewRegistrationRepository()
	log.Info("Event store ready", zap.Int("events", eventRepo.Len()))

	// ── 2. Wire up layers ────────────────────────────────────────────────
	submitter := submission.NewSimulated(log,
		submission.WithDelay(cfg.SubmitDelay),
		submission.WithFailureRate(cfg.SubmitFailureRate),
		submission.WithClock(clk),
	)
	eventSvc := service.NewEventService(eventRepo, regRepo, service.NewRegistrationCounter(), submitter, clk, log)
	router := handler.NewRouter(
		handler.NewEventHandler(eventSvc, log),
		handler.NewPageHandler(eventSvc, log),
		log,
		cfg.CORSAllowedOrigins,
	)

	// ── 3. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server listening",
			zap.String("address", srv.Addr),
			zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Graceful shutdown failed", zap.Error(err))
	}
	log.Info("Server stopped")
}
