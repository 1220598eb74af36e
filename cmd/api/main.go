package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"conduit/internal/auth"
	"conduit/internal/config"
	"conduit/internal/httpapi"
	"conduit/internal/logging"
	"conduit/internal/password"
	"conduit/internal/publisher"
	"conduit/internal/service"
	"conduit/internal/storage/postgres"
	"conduit/internal/token"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := logging.New("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = logging.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.Database.DSN(), postgres.PoolConfig{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to database")

	var events service.Publisher
	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			BindingKey: cfg.RabbitMQ.BindingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()
		events = rabbitMQ
	}

	userStore := postgres.NewUserStore(db)
	articleStore := postgres.NewArticleStore(db)
	commentStore := postgres.NewCommentStore(db)
	followStore := postgres.NewFollowStore(db)
	favoriteStore := postgres.NewFavoriteStore(db)
	tagStore := postgres.NewTagStore(db)
	txManager := postgres.NewTransactionManager(db)

	codec := token.New(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	hasher := password.NewBcrypt(cfg.Auth.BcryptCost)

	views := service.NewViews(userStore, articleStore, commentStore, followStore, favoriteStore)
	articles := service.NewArticleService(articleStore, favoriteStore, tagStore, views, txManager, events, logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db.DB, "conduit"),
	)

	server := httpapi.New(httpapi.Services{
		Users:    service.NewUserService(userStore, hasher, codec),
		Profiles: service.NewProfileService(userStore, followStore, views, txManager),
		Reader:   views,
		Writer:   articles,
		Comments: service.NewCommentService(articleStore, commentStore, userStore, views, txManager),
	}, auth.NewGuard(codec), db, registry, httpapi.Config{
		RequestTimeout: cfg.HTTP.RequestTimeout,
	}, logger)

	go func() {
		if err := server.Start(cfg.HTTP.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", "error", err)
	}
}
