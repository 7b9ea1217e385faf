package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aroma-kart/internal/config"
	"aroma-kart/internal/database"
	"aroma-kart/internal/handler"
	"aroma-kart/internal/notification"
	"aroma-kart/internal/repository"
	"aroma-kart/internal/router"
	"aroma-kart/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting aroma-kart API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := database.RunMigrations(cfg.Database, logger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Repositories
	productRepo := repository.NewProductRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	counterRepo := repository.NewCounterRepository(pool, logger)
	couponRepo := repository.NewCouponRepository(pool, logger)
	storeRepo := repository.NewStoreRepository(pool, logger)
	reviewRepo := repository.NewReviewRepository(pool, logger)
	adminRepo := repository.NewAdminRepository(pool, logger)
	statsRepo := repository.NewStatsRepository(pool, logger)

	// Push notifications run through a bounded queue so placements never
	// wait on the push gateway.
	var sender notification.Sender
	if cfg.Push.Enabled {
		sender = notification.NewPushSender(cfg.Push.Endpoint, cfg.Push.ServerKey, logger)
	} else {
		sender = notification.NewNopSender()
		logger.Info().Msg("push notifications disabled")
	}
	notifier := notification.NewNotifier(sender, cfg.Push.QueueSize, logger)
	notifier.Start(ctx)
	defer notifier.Close()

	// Services
	orderService := service.NewOrderService(orderRepo, productRepo, counterRepo, couponRepo, adminRepo, notifier, cfg.Store.ID, logger)
	couponService := service.NewCouponService(couponRepo, cfg.Store.ID, logger)
	productService := service.NewProductService(productRepo, reviewRepo, logger)
	reviewService := service.NewReviewService(reviewRepo, productRepo, orderRepo, adminRepo, notifier, logger)
	storeService := service.NewStoreService(storeRepo, couponRepo, cfg.Store.ID, logger)
	adminService := service.NewAdminService(orderRepo, productRepo, reviewRepo, adminRepo, statsRepo, logger)

	// HTTP surface
	mux := router.New(router.Handlers{
		Order:   handler.NewOrderHandler(orderService, logger),
		Product: handler.NewProductHandler(productService, logger),
		Review:  handler.NewReviewHandler(reviewService, logger),
		Store:   handler.NewStoreHandler(storeService, couponService, logger),
		Admin:   handler.NewAdminHandler(adminService, logger),
	}, cfg.Auth.APIKey, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
