package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"netmonitor/internal/config"
	"netmonitor/internal/logging"
	"netmonitor/internal/monitor"
	"netmonitor/internal/notify"
	"netmonitor/internal/probe"
	"netmonitor/internal/repo/sqlite"
	"netmonitor/internal/scheduler"
)

func main() {
	once := flag.Bool("once", false, "run one monitoring cycle and exit")
	cleanup := flag.Bool("cleanup", false, "run retention cleanup and exit")
	flag.Parse()

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("no .env file: %v", err)
	}
	cfg := config.FromEnv()

	logger, err := logging.NewLogger(cfg.LogDir, cfg.Debug)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Storage failure at init is the one fault allowed to kill the
	// process; everything past this point degrades instead of exiting.
	store, err := sqlite.New(ctx, cfg.DatabasePath)
	if err != nil {
		logger.Error("storage_init_failed", zap.Error(err))
		os.Exit(1)
	}
	defer store.Close()

	ev := monitor.NewEvaluator(logger,
		probe.NewHTTPProbe(cfg.HTTPTimeout),
		probe.NewPingProbe(cfg.PingCount, cfg.PingTimeout),
	)
	svc := monitor.NewService(logger, store, store, ev, cfg.MaxConcurrent)

	var notifier notify.Notifier
	if s := notify.NewSlack(cfg.SlackWebhook); s != nil {
		notifier = s
	}

	sched := scheduler.New(logger, svc, store, notifier, scheduler.Config{
		Interval:      cfg.CheckInterval,
		CleanupAt:     cfg.CleanupAt,
		RetentionDays: cfg.RetentionDays,
	})

	switch {
	case *cleanup:
		if err := sched.Cleanup(ctx); err != nil {
			logger.Error("cleanup_failed", zap.Error(err))
			os.Exit(1)
		}
	case *once:
		if err := sched.RunOnce(ctx); err != nil {
			logger.Error("cycle_failed", zap.Error(err))
			os.Exit(1)
		}
	default:
		if err := sched.Run(ctx); err != nil {
			logger.Error("scheduler_failed", zap.Error(err))
			os.Exit(1)
		}
	}
	logger.Info("monitor_stopped")
}
