package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dukerupert/sif/internal"
	"github.com/dukerupert/sif/internal/api"
	"github.com/dukerupert/sif/internal/auth"
	"github.com/dukerupert/sif/internal/catalog"
	"github.com/dukerupert/sif/internal/checkout"
	"github.com/dukerupert/sif/internal/handler"
	"github.com/dukerupert/sif/internal/middleware"
	"github.com/dukerupert/sif/internal/payment"
	"github.com/dukerupert/sif/internal/review"
	"github.com/dukerupert/sif/internal/router"
	"github.com/dukerupert/sif/internal/routes"
	"github.com/dukerupert/sif/internal/shipping"
	"github.com/dukerupert/sif/internal/storage"
	"github.com/dukerupert/sif/internal/store"
	"github.com/dukerupert/sif/internal/tax"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// ==========================================================================
	// State store
	// ==========================================================================

	var stateStore storage.Store
	if cfg.StateStore.Provider == "postgres" {
		logger.Info("Connecting to database...")
		sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		defer sqlDB.Close()

		if err := sqlDB.Ping(); err != nil {
			return fmt.Errorf("database ping failed: %w", err)
		}

		logger.Info("Running database migrations...")
		if err := internal.RunMigrations(sqlDB); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		logger.Info("Database migrations completed successfully")

		pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
		if err != nil {
			return fmt.Errorf("failed to create connection pool: %w", err)
		}
		defer pool.Close()

		stateStore = storage.NewPostgresStore(pool)
	} else {
		stateStore, err = storage.NewStore(cfg.StateStore)
		if err != nil {
			return fmt.Errorf("failed to initialize state store: %w", err)
		}
	}
	logger.Info("State store initialized", "provider", cfg.StateStore.Provider)

	// ==========================================================================
	// Backend client and session manager
	// ==========================================================================

	// The client needs the session token and the session manager needs the
	// client, so the token source is late-bound through a captured variable.
	var sessions *auth.Manager
	client := api.NewClient(cfg.Backend.BaseURL, logger, api.WithTokenSource(func() string {
		if sessions == nil {
			return ""
		}
		return sessions.Token()
	}))

	sessions = auth.NewManager(client, stateStore, logger)
	if err := sessions.Restore(ctx); err != nil {
		logger.Warn("Could not restore saved session", "error", err)
	}

	// ==========================================================================
	// Services
	// ==========================================================================

	catalogService := catalog.NewService(client, logger)

	cartStore := store.NewCartStore(ctx, stateStore, cfg.StateStore.SessionID, logger)
	wishlistStore := store.NewWishlistStore(ctx, stateStore, cfg.StateStore.SessionID, logger)

	taxCalculator, err := tax.NewPercentageCalculator(cfg.Checkout.TaxRate)
	if err != nil {
		return fmt.Errorf("failed to initialize tax calculator: %w", err)
	}

	shippingProvider, err := shipping.NewFlatRateProvider(
		cfg.Checkout.ShippingCostCents,
		cfg.Checkout.FreeShippingThresholdCents,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize shipping provider: %w", err)
	}

	var paymentProvider payment.Provider
	switch cfg.Checkout.PaymentProvider {
	case "stripe":
		paymentProvider = payment.NewStripeProvider(cfg.Stripe.SecretKey, logger)
	case "rest":
		paymentProvider = payment.NewRESTProvider(cfg.Backend.BaseURL, logger)
	case "mock":
		paymentProvider = &payment.MockProvider{}
	default:
		return fmt.Errorf("unknown payment provider %q", cfg.Checkout.PaymentProvider)
	}
	logger.Info("Payment provider initialized", "provider", cfg.Checkout.PaymentProvider)

	calculator := checkout.NewCalculator(taxCalculator, shippingProvider)
	checkoutService := checkout.NewService(cartStore, calculator, client, client, paymentProvider, logger)
	reviewService := review.NewService(client, logger)

	// ==========================================================================
	// Middleware and router
	// ==========================================================================

	metrics := middleware.NewMetrics("sif")

	securityConfig := middleware.DefaultSecurityHeadersConfig()
	if cfg.Env == "dev" {
		securityConfig.HSTSMaxAge = 0
	}

	defaultRateLimiter := middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())
	defer defaultRateLimiter.Stop()

	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		metrics.Middleware,
		middleware.SecurityHeaders(securityConfig),
		router.CORS(cfg.AllowedOrigins),
		middleware.MaxBodySize(),
		middleware.Timeout(),
		defaultRateLimiter.Middleware,
		middleware.WithUser(sessions),
		middleware.WithRequestLogger(logger),
		router.Logger(logger),
	)

	routes.Register(r, routes.Deps{
		CatalogHandler:  handler.NewCatalogHandler(catalogService),
		CartHandler:     handler.NewCartHandler(cartStore, catalogService),
		WishlistHandler: handler.NewWishlistHandler(wishlistStore, catalogService, client),
		CheckoutHandler: handler.NewCheckoutHandler(checkoutService),
		OrderHandler:    handler.NewOrderHandler(client),
		AuthHandler:     handler.NewAuthHandler(sessions),
		ReviewHandler:   handler.NewReviewHandler(reviewService),
		MetricsHandler:  metrics.Handler(),
	})

	// ==========================================================================
	// Serve
	// ==========================================================================

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting storefront server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-shutdownCtx.Done():
	}

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
