package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/calmate/storefront/api/routes"
	"github.com/calmate/storefront/internal/autocomplete"
	"github.com/calmate/storefront/internal/cart"
	checkoutsvc "github.com/calmate/storefront/internal/checkout"
	"github.com/calmate/storefront/internal/pricing"
	"github.com/calmate/storefront/internal/profile"
	"github.com/calmate/storefront/pkg/config"
	"github.com/calmate/storefront/pkg/geocode"
	"github.com/calmate/storefront/pkg/logger"
	"github.com/calmate/storefront/pkg/metrics"
	"github.com/calmate/storefront/pkg/orders"
	"github.com/calmate/storefront/pkg/redis"
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
		Console:     cfg.App.IsDev(),
	})

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

	geocoder, err := geocode.NewClient(
		cfg.Geocode.UserAgent,
		geocode.WithBaseURL(cfg.Geocode.BaseURL),
		geocode.WithCountryCode(cfg.Geocode.CountryCode),
		geocode.WithLimit(cfg.Geocode.Limit),
		geocode.WithHTTPClient(&http.Client{Timeout: cfg.Geocode.Timeout}),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to build geocode client", err)
		os.Exit(1)
	}

	orderClient, err := orders.NewClient(
		cfg.Orders.BaseURL,
		cfg.Orders.APIKey,
		orders.WithHTTPClient(&http.Client{Timeout: cfg.Orders.Timeout}),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to build order client", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	cartStats := metrics.NewCartMetrics(registry)
	checkoutStats := metrics.NewCheckoutMetrics(registry)
	autocompleteStats := metrics.NewAutocompleteMetrics(registry)

	cartManager := cart.NewManager(cfg.Session.IdleTTL)
	policy := pricing.Policy{
		FreeShippingThreshold: cfg.Shipping.FreeThreshold,
		BaseShippingCost:      cfg.Shipping.BaseCost,
	}

	profileStore, err := profile.NewStore(redisClient, cfg.Session.ProfileTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to build profile store", err)
		os.Exit(1)
	}

	autocompleteService, err := autocomplete.NewService(
		geocoder,
		logg,
		autocomplete.WithMinQueryLen(cfg.Geocode.MinQueryLen),
		autocomplete.WithDebounce(cfg.Geocode.Debounce),
		autocomplete.WithMetrics(autocompleteStats),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to build autocomplete service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(
		cartManager,
		orderClient,
		profileStore,
		policy,
		logg,
		checkoutsvc.WithSubmitTimeout(cfg.Orders.Timeout),
		checkoutsvc.WithMetrics(checkoutStats),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to build checkout service", err)
		os.Exit(1)
	}

	go purgeIdleSessions(cartManager, cfg.Session.PurgeInterval, logg)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting storefront server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:       cfg,
			Logger:       logg,
			Redis:        redisClient,
			CartManager:  cartManager,
			Policy:       policy,
			Autocomplete: autocompleteService,
			Checkout:     checkoutService,
			CartStats:    cartStats,
			Registry:     registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "storefront server stopped unexpectedly", err)
		os.Exit(1)
	}
}

// purgeIdleSessions drops carts that have sat idle past their TTL.
func purgeIdleSessions(manager *cart.Manager, interval time.Duration, logg *logger.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		if purged := manager.PurgeIdle(); purged > 0 {
			ctx := logg.WithField(context.Background(), "purged", purged)
			logg.Info(ctx, "idle carts evicted")
		}
	}
}
