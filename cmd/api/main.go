package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hanbit-enc/siteops-backend/api/routes"
	"github.com/hanbit-enc/siteops-backend/internal/invoices"
	"github.com/hanbit-enc/siteops-backend/internal/ledger"
	"github.com/hanbit-enc/siteops-backend/internal/partners"
	"github.com/hanbit-enc/siteops-backend/internal/payments"
	"github.com/hanbit-enc/siteops-backend/internal/sites"
	"github.com/hanbit-enc/siteops-backend/internal/teams"
	"github.com/hanbit-enc/siteops-backend/internal/workers"
	"github.com/hanbit-enc/siteops-backend/pkg/config"
	"github.com/hanbit-enc/siteops-backend/pkg/db"
	"github.com/hanbit-enc/siteops-backend/pkg/logger"
	"github.com/hanbit-enc/siteops-backend/pkg/metrics"
	"github.com/hanbit-enc/siteops-backend/pkg/migrate"
	"github.com/hanbit-enc/siteops-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(ctx, "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		requireResource(ctx, logg, "dev migrations", err)
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	requireResource(ctx, logg, "redis", err)
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(ctx, "error closing redis", err)
		}
	}()

	partnerRepo := partners.NewRepository(dbClient.DB())
	invoiceRepo := invoices.NewRepository(dbClient.DB())
	paymentRepo := payments.NewRepository(dbClient.DB())
	workerRepo := workers.NewRepository(dbClient.DB())
	teamRepo := teams.NewRepository(dbClient.DB())
	siteRepo := sites.NewRepository(dbClient.DB())

	partnerService, err := partners.NewService(partnerRepo)
	requireResource(ctx, logg, "partner service", err)
	invoiceService, err := invoices.NewService(invoiceRepo)
	requireResource(ctx, logg, "invoice service", err)
	paymentService, err := payments.NewService(paymentRepo)
	requireResource(ctx, logg, "payment service", err)
	workerService, err := workers.NewService(workerRepo)
	requireResource(ctx, logg, "worker service", err)
	teamService, err := teams.NewService(teamRepo)
	requireResource(ctx, logg, "team service", err)
	siteService, err := sites.NewService(siteRepo)
	requireResource(ctx, logg, "site service", err)

	registry := prometheus.NewRegistry()
	ledgerMetrics := metrics.NewLedgerMetrics(registry)

	ledgerEngine, err := ledger.NewEngine(invoiceRepo, paymentRepo, ledgerMetrics)
	requireResource(ctx, logg, "ledger engine", err)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			redisClient,
			registry,
			ledgerEngine,
			partnerService,
			invoiceService,
			paymentService,
			workerService,
			teamService,
			siteService,
		),
	}

	stopCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stopCtx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "api server shutdown failed", err)
		}
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, "resource not working: "+resource, err)
	os.Exit(1)
}
