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
	"go.uber.org/multierr"

	"github.com/imarket-ke/imarket-backend/api/routes"
	"github.com/imarket-ke/imarket-backend/internal/activities"
	"github.com/imarket-ke/imarket-backend/internal/cart"
	"github.com/imarket-ke/imarket-backend/internal/catalog"
	checkoutsvc "github.com/imarket-ke/imarket-backend/internal/checkout"
	"github.com/imarket-ke/imarket-backend/internal/notifications"
	"github.com/imarket-ke/imarket-backend/internal/orders"
	"github.com/imarket-ke/imarket-backend/internal/profile"
	"github.com/imarket-ke/imarket-backend/internal/reviews"
	"github.com/imarket-ke/imarket-backend/pkg/config"
	"github.com/imarket-ke/imarket-backend/pkg/logger"
	"github.com/imarket-ke/imarket-backend/pkg/metrics"
	"github.com/imarket-ke/imarket-backend/pkg/migrate"
	"github.com/imarket-ke/imarket-backend/pkg/storage"
)

const shutdownGrace = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "imarket"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "imarket",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	store, err := openStorage(context.Background(), cfg, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap session storage", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	trackingMetrics := metrics.NewTrackingMetrics(registry)

	cat, err := catalog.Load(context.Background(), cfg.Catalog, logg, trackingMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to load catalog data", err)
		os.Exit(1)
	}

	deps, err := wireServices(cfg, logg, store, cat, trackingMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to wire services", err)
		os.Exit(1)
	}
	deps.Config = cfg
	deps.Logger = logg
	deps.Store = store
	deps.Registry = registry

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
		Addr:    addr,
		Handler: routes.NewRouter(deps),
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stopCtx.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	var closeErr error
	closeErr = multierr.Append(closeErr, server.Shutdown(shutdownCtx))
	deps.Tracker.StopAll()
	closeErr = multierr.Append(closeErr, store.Close())
	if closeErr != nil {
		logg.Error(ctx, "errors during shutdown", closeErr)
		os.Exit(1)
	}
	logg.Info(ctx, "api server stopped")
}

// openStorage selects the session-state backend from config. The gorm
// path covers both sqlite and postgres.
func openStorage(ctx context.Context, cfg *config.Config, logg *logger.Logger) (storage.Store, error) {
	if cfg.Storage.Driver == config.StorageDriverRedis {
		return storage.NewRedis(ctx, cfg.Redis, logg)
	}

	gormStore, err := storage.NewGorm(ctx, cfg.Storage, logg)
	if err != nil {
		return nil, err
	}
	if err := migrate.MaybeRunDev(ctx, cfg, logg, gormStore); err != nil {
		closeErr := gormStore.Close()
		return nil, multierr.Append(err, closeErr)
	}
	return gormStore, nil
}

func wireServices(
	cfg *config.Config,
	logg *logger.Logger,
	store storage.Store,
	cat *catalog.Catalog,
	trackingMetrics *metrics.TrackingMetrics,
) (routes.Deps, error) {
	var deps routes.Deps

	catalogService, err := catalog.NewService(cat, cfg.Listing.MaxSuggestions)
	if err != nil {
		return deps, err
	}
	notificationsService, err := notifications.NewService(store, logg)
	if err != nil {
		return deps, err
	}
	activitiesService, err := activities.NewService(store, logg)
	if err != nil {
		return deps, err
	}
	profileService, err := profile.NewService(store, activitiesService, logg)
	if err != nil {
		return deps, err
	}
	cartService, err := cart.NewService(store, catalogService, logg)
	if err != nil {
		return deps, err
	}
	ordersRepo, err := orders.NewRepository(store, logg)
	if err != nil {
		return deps, err
	}
	ordersService, err := orders.NewService(ordersRepo, notificationsService, activitiesService, logg, trackingMetrics)
	if err != nil {
		return deps, err
	}
	tracker, err := orders.NewTracker(orders.TrackerParams{
		Orders:   ordersService,
		Activity: activitiesService,
		Logger:   logg,
		Metrics:  trackingMetrics,
		Interval: cfg.Tracking.AdvanceInterval,
	})
	if err != nil {
		return deps, err
	}
	checkoutService, err := checkoutsvc.NewService(checkoutsvc.ServiceParams{
		Carts:    cartService,
		Catalog:  catalogService,
		Orders:   ordersService,
		Notify:   notificationsService,
		Activity: activitiesService,
		Logger:   logg,
		Config:   cfg.Checkout,
	})
	if err != nil {
		return deps, err
	}
	reviewsService, err := reviews.NewService(reviews.ServiceParams{
		Store:    store,
		Catalog:  catalogService,
		Orders:   ordersService,
		Profiles: profileService,
		Notify:   notificationsService,
		Activity: activitiesService,
		Logger:   logg,
	})
	if err != nil {
		return deps, err
	}

	deps.Catalog = catalogService
	deps.Cart = cartService
	deps.Checkout = checkoutService
	deps.Orders = ordersService
	deps.Tracker = tracker
	deps.Reviews = reviewsService
	deps.Notifications = notificationsService
	deps.Activities = activitiesService
	deps.Profile = profileService
	return deps, nil
}
