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
	"go.uber.org/multierr"

	"github.com/peasmarket/storefront/api/routes"
	cartsvc "github.com/peasmarket/storefront/internal/cart"
	"github.com/peasmarket/storefront/internal/catalog"
	checkoutclient "github.com/peasmarket/storefront/internal/checkout"
	"github.com/peasmarket/storefront/internal/contact"
	"github.com/peasmarket/storefront/internal/orders"
	"github.com/peasmarket/storefront/pkg/config"
	"github.com/peasmarket/storefront/pkg/logger"
	pkgredis "github.com/peasmarket/storefront/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	catalogRepo, err := catalog.NewRepository(cfg.Catalog.SeedPath)
	if err != nil {
		logg.Error(context.Background(), "failed to load product catalog", err)
		os.Exit(1)
	}

	var (
		redisClient *pkgredis.Client
		redisPinger pkgredis.Pinger
		cartStore   cartsvc.SnapshotStore
	)
	switch cfg.Cart.Driver {
	case config.CartDriverRedis:
		redisClient, err = pkgredis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		redisPinger = redisClient
		cartStore = cartsvc.NewRedisStore(redisClient, cfg.Cart.TTL, logg)
	default:
		cartStore = cartsvc.NewMemoryStore(logg)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	apiBaseURL := cfg.Catalog.APIBaseURL
	if apiBaseURL == "" {
		apiBaseURL = "http://127.0.0.1:" + port
	}

	catalogClient := catalog.NewClient(apiBaseURL, cfg.Catalog.RequestTimeout, logg)
	submitClient := checkoutclient.NewClient(apiBaseURL, cfg.Catalog.RequestTimeout, logg)

	cartService, err := cartsvc.NewService(cartStore, catalogClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	orderService := orders.NewService(logg)
	contactService := contact.NewService(logg)
	registry := prometheus.NewRegistry()

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":         cfg.App.Env,
		"addr":        addr,
		"cart_driver": cfg.Cart.Driver,
		"products":    catalogRepo.Len(),
	})
	logg.Info(ctx, "starting storefront server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			registry,
			redisPinger,
			catalogRepo,
			catalogClient,
			cartService,
			orderService,
			contactService,
			submitClient,
		),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "storefront server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutting down")

		drainCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		closeErr := server.Shutdown(drainCtx)
		if redisClient != nil {
			closeErr = multierr.Append(closeErr, redisClient.Close())
		}
		if closeErr != nil {
			logg.Error(ctx, "shutdown finished with errors", closeErr)
			os.Exit(1)
		}
	}

	logg.Info(ctx, "storefront server stopped")
}
