package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/hanbit-enc/siteops-backend/internal/invoices"
	"github.com/hanbit-enc/siteops-backend/pkg/config"
	"github.com/hanbit-enc/siteops-backend/pkg/db"
	"github.com/hanbit-enc/siteops-backend/pkg/logger"
	"github.com/hanbit-enc/siteops-backend/pkg/migrate"
	"github.com/hanbit-enc/siteops-backend/pkg/pubsub"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "invoice-worker"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "invoice-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		requireResource(ctx, logg, "dev migrations", err)
	}

	pubsubClient, err := pubsub.NewClient(ctx, cfg.GCP, cfg.PubSub, logg)
	requireResource(ctx, logg, "pubsub", err)

	defer func() {
		cleanupErr := multierr.Combine(dbClient.Close(), pubsubClient.Close())
		if cleanupErr != nil {
			logg.Error(ctx, "worker cleanup failed", cleanupErr)
		}
	}()

	invoiceRepo := invoices.NewRepository(dbClient.DB())
	invoiceService, err := invoices.NewService(invoiceRepo)
	requireResource(ctx, logg, "invoice service", err)

	subscription := pubsubClient.InvoiceSubscription()
	if subscription == nil {
		requireResource(ctx, logg, "invoice subscription", errors.New("subscription not configured"))
	}

	consumer, err := invoices.NewConsumer(invoiceService, invoiceRepo, subscription, logg)
	requireResource(ctx, logg, "invoice consumer", err)

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	runCtx = logg.WithFields(runCtx, map[string]any{"env": cfg.App.Env})
	logg.Info(runCtx, "invoice worker ready")

	if err := consumer.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(runCtx, "invoice worker failed", err)
		os.Exit(1)
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, "resource not working: "+resource, err)
	os.Exit(1)
}
