package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"restaurante-backend/internal/auth"
	"restaurante-backend/internal/config"
	"restaurante-backend/internal/connections/database"
	"restaurante-backend/internal/connections/rabbitmq"
	"restaurante-backend/internal/httpapi"
	"restaurante-backend/internal/logger"
	"restaurante-backend/internal/notify"
	"restaurante-backend/internal/repository"
	"restaurante-backend/internal/service"
	"restaurante-backend/internal/ws"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	lg := logger.New("restaurante-backend")

	cfg, err := config.Load(*configPath)
	if err != nil {
		lg.Error("config_load_failed", err, nil)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		lg.Error("database_connect_failed", err, nil)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.Bootstrap(ctx, pool); err != nil {
		lg.Error("schema_bootstrap_failed", err, nil)
		os.Exit(1)
	}

	var rmq *rabbitmq.Client
	if cfg.MirrorEnabled() {
		rmq, err = rabbitmq.Dial(cfg.RabbitMQ)
		if err != nil {
			lg.Error("rabbitmq_connect_failed", err, map[string]any{"host": cfg.RabbitMQ.Host})
			os.Exit(1)
		}
		defer rmq.Close()
	}

	ordersRepo := repository.NewOrdersRepository(pool)
	repos := service.Repos{
		Users:      repository.NewUsersRepository(pool),
		Orders:     ordersRepo,
		Carts:      repository.NewCartsRepository(pool),
		Products:   repository.NewProductsRepository(pool),
		Categories: repository.NewCategoriesRepository(pool),
		Tables:     repository.NewTablesRepository(pool),
		Extras:     repository.NewExtrasRepository(pool),
		Reviews:    repository.NewReviewsRepository(pool),
		Favorites:  repository.NewFavoritesRepository(pool),
	}

	registry := ws.NewRegistry(lg)

	var mirror notify.Publisher
	if rmq != nil {
		mirror = rmq
	}
	dispatcher := notify.NewDispatcher(lg, ordersRepo, registry, mirror, cfg.Notifications.Workers, cfg.Notifications.QueueSize)

	tokens := auth.NewManager(cfg.Auth.Secret, cfg.Auth.TokenTTLMinutes)
	svc := service.New(lg, repos, tokens, dispatcher)
	handler := httpapi.NewHandler(lg, svc, tokens, registry, dispatcher, pool, rmq)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return dispatcher.Run(gctx)
	})
	g.Go(func() error {
		return httpapi.Serve(gctx, lg, cfg.Server.Port, handler.Router())
	})

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		lg.Error("server_exited", err, nil)
		os.Exit(1)
	}
	lg.Info("shutdown_complete", nil)
}
