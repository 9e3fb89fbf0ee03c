/**
 * @description
 * This is the main entry point for the console-engine simulator. It is a
 * non-HTTP, long-running process: it boots the in-memory repository, the
 * engine service, the notification hub and the cron sweeps, subscribes a
 * logging consumer to the live feed, and runs until terminated.
 */
package main

import (
	"context"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/transfa/console-engine/internal/app"
	"github.com/transfa/console-engine/internal/config"
	"github.com/transfa/console-engine/internal/domain"
	"github.com/transfa/console-engine/internal/seed"
	"github.com/transfa/console-engine/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Load an optional .env for local development, then the configuration.
	_ = godotenv.Load()
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	generator := seed.NewGenerator(cfg.SeedRandomSeed)
	repo := store.NewMemoryRepository(generator, store.MemoryConfig{
		SeedClients:      cfg.SeedClientCount,
		SeedTransactions: cfg.SeedTransactionCount,
	})

	service := app.NewService(repo, logger, app.Options{
		Latency:                  cfg.SimulatedLatency(),
		SettlementDelay:          cfg.SettlementDelay(),
		SettlementFailurePercent: cfg.SettlementFailurePercent,
	})
	defer service.Close()

	// Warm the stores and log the headline numbers once at boot.
	metrics, err := service.GetDashboardMetrics(context.Background())
	if err != nil {
		logger.Error("failed to compute initial metrics", "error", err)
		os.Exit(1)
	}
	logger.Info("engine seeded",
		"clients", cfg.SeedClientCount,
		"transactions", cfg.SeedTransactionCount,
		"today_volume", metrics.Overview.TodayVolume,
		"success_rate", metrics.Overview.SuccessRate,
	)

	// Live feed: one logging subscriber, the way a dashboard widget would
	// consume it.
	hub := app.NewHub(cfg.NotificationInterval(), logger, rand.New(rand.NewSource(cfg.SeedRandomSeed)))
	unsubscribe := hub.Subscribe(func(ev domain.NotificationEvent) {
		logger.Info("feed event", "type", ev.Type, "id", ev.Data.ID, "message", ev.Data.Message)
	})
	defer unsubscribe()
	defer hub.Close()

	// Background sweeps.
	jobs := app.NewJobs(repo, logger, cfg.TransactionExpiry(), cfg.StuckSettlementAge())
	scheduler := app.NewScheduler(jobs, logger, cfg.ExpirySweepSchedule, cfg.SettlementSweepSchedule)
	scheduler.Start()
	logger.Info("scheduler started")

	// Wait for termination signal to gracefully shut down.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutdown signal received, stopping scheduler")
	stopCtx := scheduler.Stop()
	<-stopCtx.Done()
	logger.Info("engine stopped gracefully")
}
