package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/plissemesh/production-backend/internal/orders"
	"github.com/plissemesh/production-backend/internal/shopify"
	"github.com/plissemesh/production-backend/internal/sync"
	"github.com/plissemesh/production-backend/pkg/broadcast"
	"github.com/plissemesh/production-backend/pkg/config"
	"github.com/plissemesh/production-backend/pkg/db"
	"github.com/plissemesh/production-backend/pkg/enums"
	"github.com/plissemesh/production-backend/pkg/logger"
	"github.com/plissemesh/production-backend/pkg/metrics"
	"github.com/plissemesh/production-backend/pkg/migrate"
	"github.com/plissemesh/production-backend/pkg/pubsub"
	"github.com/plissemesh/production-backend/pkg/redis"
)

const lockKeyFormat = "plisse:sync-worker:lock:%s"

func main() {
	logg := logger.New(logger.Options{ServiceName: "sync-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "sync-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	publisher := broadcast.Publisher(broadcast.NoopPublisher{})
	if cfg.GCP.ProjectID != "" {
		pubsubClient, psErr := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub)
		if psErr != nil {
			logg.Error(context.Background(), "failed to bootstrap pub/sub", psErr)
			os.Exit(1)
		}
		defer func() {
			if err := pubsubClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing pub/sub", err)
			}
		}()
		publisher = broadcast.NewPublisher(pubsubClient.OrdersPublisher(), logg)
	} else {
		logg.Warn(context.Background(), "no GCP project configured, production events will not be broadcast")
	}

	ordersService, err := orders.NewService(orders.NewRepository(dbClient.DB()), dbClient, publisher)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	shopifyClient, err := shopify.NewClient(cfg.Shopify, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create shopify client", err)
		os.Exit(1)
	}

	jobMetrics := metrics.NewJobMetrics(prometheus.DefaultRegisterer)

	shopifyJob, err := sync.NewShopifyJob(sync.ShopifyJobParams{
		Client:      shopifyClient,
		Orders:      ordersService,
		Checkpoints: sync.NewCheckpointRepository(dbClient.DB()),
		Stores:      enums.AllStoreKeys(),
		Overlap:     cfg.Sync.Overlap,
		Metrics:     jobMetrics,
		Logger:      logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create shopify sync job", err)
		os.Exit(1)
	}

	lock, err := sync.NewRedisLock(redisClient, lockKey(cfg.App.Env), cfg.Sync.LockTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create sync lock", err)
		os.Exit(1)
	}

	service, err := sync.NewService(sync.ServiceParams{
		Logger:   logg,
		Registry: sync.NewRegistry(shopifyJob),
		Lock:     lock,
		Metrics:  jobMetrics,
		Interval: cfg.Sync.Interval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create sync service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env})
	logg.Info(ctx, "starting sync worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "sync worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "sync worker shutting down gracefully")
}

func lockKey(env string) string {
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf(lockKeyFormat, env)
}
