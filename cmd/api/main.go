package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/batoolapp/lenses-backend/api/routes"
	internalauth "github.com/batoolapp/lenses-backend/internal/auth"
	"github.com/batoolapp/lenses-backend/internal/cart"
	"github.com/batoolapp/lenses-backend/internal/checkout"
	"github.com/batoolapp/lenses-backend/internal/customers"
	"github.com/batoolapp/lenses-backend/internal/invoice"
	"github.com/batoolapp/lenses-backend/internal/orders"
	"github.com/batoolapp/lenses-backend/internal/settings"
	"github.com/batoolapp/lenses-backend/pkg/config"
	"github.com/batoolapp/lenses-backend/pkg/db"
	"github.com/batoolapp/lenses-backend/pkg/logger"
	"github.com/batoolapp/lenses-backend/pkg/metrics"
	"github.com/batoolapp/lenses-backend/pkg/migrate"
	"github.com/batoolapp/lenses-backend/pkg/redis"
	"github.com/batoolapp/lenses-backend/pkg/storage/gcs"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
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

	gcsClient, err := gcs.NewClient(context.Background(), cfg.GCS, cfg.GCP, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap storage", err)
		os.Exit(1)
	}
	defer func() {
		if err := gcsClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing storage", err)
		}
	}()

	customersService, err := customers.NewService(customers.NewRepository(dbClient.DB()), logg, cfg.Store.EmailDomain)
	if err != nil {
		logg.Error(context.Background(), "failed to create customers service", err)
		os.Exit(1)
	}

	ordersRepo := orders.NewRepository(dbClient.DB())
	ordersService, err := orders.NewService(ordersRepo, logg, cfg.Store.WhatsAppCountry)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	settingsService, err := settings.NewService(settings.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create settings service", err)
		os.Exit(1)
	}

	authService, err := internalauth.NewService(internalauth.NewRepository(dbClient.DB()), logg, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	renderer, err := invoice.NewRenderer()
	if err != nil {
		logg.Error(context.Background(), "failed to build invoice renderer", err)
		os.Exit(1)
	}

	carts := cart.NewRegistry()
	sessions := checkout.NewSessions()
	invoices := invoice.NewStore()
	checkoutMetrics := metrics.NewCheckoutMetrics(prometheus.DefaultRegisterer)

	checkoutService, err := checkout.NewService(
		customersService,
		ordersRepo,
		settingsService,
		gcsClient,
		redisClient,
		invoices,
		checkoutMetrics,
		logg,
		cfg.Checkout,
		cfg.Store,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:    cfg,
			Logger:    logg,
			DB:        dbClient,
			Redis:     redisClient,
			GCS:       gcsClient,
			Carts:     carts,
			Sessions:  sessions,
			Invoices:  invoices,
			Renderer:  renderer,
			Checkout:  checkoutService,
			Orders:    ordersService,
			Customers: customersService,
			Settings:  settingsService,
			Auth:      authService,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	}()

	<-shutdown
	logg.Info(ctx, "shutting down api server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(ctx, "graceful shutdown failed", err)
	}
}
