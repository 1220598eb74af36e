package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"conduit/internal/config"
	"conduit/internal/logging"
	"conduit/internal/scheduler"
	"conduit/internal/service"
	"conduit/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	once := flag.Bool("once", false, "run a single reconcile pass and exit")
	flag.Parse()

	logger := logging.New("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = logging.New(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	db, err := postgres.Open(ctx, cfg.Database.DSN(), postgres.PoolConfig{
		MaxOpenConns:    2,
		MaxIdleConns:    1,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to database")

	reconciler := service.NewReconciler(postgres.NewFavoriteStore(db), logger)

	if *once {
		if _, err := reconciler.Reconcile(ctx); err != nil {
			logger.Error("reconcile failed", "error", err)
			os.Exit(1)
		}
		return
	}

	sched := scheduler.NewScheduler(reconciler, cfg.Reconcile.Interval, logger)

	logger.Info("starting favorites reconciler", "interval", cfg.Reconcile.Interval)

	if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("scheduler error", "error", err)
		os.Exit(1)
	}
}
