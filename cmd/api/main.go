package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/iceonwheels/storefront-backend/api/routes"
	"github.com/iceonwheels/storefront-backend/internal/auth"
	"github.com/iceonwheels/storefront-backend/internal/cart"
	"github.com/iceonwheels/storefront-backend/internal/checkout"
	"github.com/iceonwheels/storefront-backend/internal/inventory"
	"github.com/iceonwheels/storefront-backend/internal/menu"
	"github.com/iceonwheels/storefront-backend/internal/orders"
	"github.com/iceonwheels/storefront-backend/internal/posters"
	"github.com/iceonwheels/storefront-backend/internal/pricing"
	"github.com/iceonwheels/storefront-backend/internal/promos"
	"github.com/iceonwheels/storefront-backend/internal/receipts"
	"github.com/iceonwheels/storefront-backend/internal/users"
	"github.com/iceonwheels/storefront-backend/pkg/auth/session"
	"github.com/iceonwheels/storefront-backend/pkg/config"
	"github.com/iceonwheels/storefront-backend/pkg/db"
	"github.com/iceonwheels/storefront-backend/pkg/logger"
	"github.com/iceonwheels/storefront-backend/pkg/metrics"
	"github.com/iceonwheels/storefront-backend/pkg/migrate"
	"github.com/iceonwheels/storefront-backend/pkg/printer"
	"github.com/iceonwheels/storefront-backend/pkg/redis"
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
	if err := migrate.MaybeSeedMenu(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to seed menu", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	storeMetrics := metrics.NewStoreMetrics(registry)

	userRepo := users.NewRepository(dbClient.DB())
	menuRepo := menu.NewRepository(dbClient.DB())
	inventoryRepo := inventory.NewRepository(dbClient.DB())
	promoRepo := promos.NewRepository(dbClient.DB())
	posterRepo := posters.NewRepository(dbClient.DB())
	orderRepo := orders.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}
	userService, err := users.NewService(userRepo, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}
	menuService, err := menu.NewService(menuRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create menu service", err)
		os.Exit(1)
	}
	inventoryService, err := inventory.NewService(inventoryRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}
	promoService, err := promos.NewService(promoRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create promos service", err)
		os.Exit(1)
	}
	posterService, err := posters.NewService(posterRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create posters service", err)
		os.Exit(1)
	}

	validator := pricing.NewValidator(promoRepo)
	cartService, err := cart.NewService(menuRepo, validator)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}
	orderService, err := orders.NewService(orderRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}
	checkoutService, err := checkout.NewService(checkout.ServiceParams{
		Cart:      cartService,
		Orders:    orderRepo,
		Menu:      menuRepo,
		Inventory: inventoryRepo,
		Promos:    promoRepo,
		Tx:        dbClient,
		Metrics:   storeMetrics,
		Logger:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	printerConn := printer.NewConnection(printerDialer(cfg))
	receiptService, err := receipts.NewService(
		receipts.NewEncoder(cfg.Store),
		printerConn,
		cfg.Printer.ChunkSize,
		storeMetrics,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create receipts service", err)
		os.Exit(1)
	}
	defer func() {
		if err := printerConn.Disconnect(); err != nil {
			logg.Error(context.Background(), "error releasing printer", err)
		}
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"printer": cfg.Printer.Kind,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			sessionManager,
			storeMetrics,
			registry,
			authService,
			userService,
			menuService,
			inventoryService,
			promoService,
			posterService,
			cartService,
			checkoutService,
			orderService,
			receiptService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

// printerDialer maps the configured printer kind onto a link factory.
// "none" keeps the receipt pipeline exercised without hardware.
func printerDialer(cfg *config.Config) printer.Dialer {
	switch cfg.Printer.Kind {
	case "network":
		return func(ctx context.Context) (printer.Channel, error) {
			channel := printer.NewNetworkChannel(
				cfg.Printer.Address,
				cfg.Printer.ConnectTimeout,
				cfg.Printer.WriteTimeout,
			)
			if err := channel.Connect(ctx); err != nil {
				return nil, err
			}
			return channel, nil
		}
	default:
		return func(context.Context) (printer.Channel, error) {
			return printer.NewNullChannel(), nil
		}
	}
}
