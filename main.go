// File: moveline/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"moveline/config"
	"moveline/handlers"
	"moveline/metrics"
	"moveline/routes"
	"moveline/services/gateway"
	"moveline/services/intelligence"
	"moveline/services/order"
	"moveline/services/storage"
	"moveline/utils"
	"moveline/workers"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitSessionCache()
	metrics.RegisterDefault()

	// Photo storage: Cloudinary when configured, local disk otherwise.
	var storageService storage.StorageService
	if config.AppConfig.CloudinaryURL != "" {
		cld, err := storage.NewCloudinaryStorage(config.AppConfig.CloudinaryURL)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize cloudinary storage: %v", err)
		}
		storageService = cld
	} else {
		local, err := storage.NewLocalStorage("uploads", "/uploads")
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize local storage: %v", err)
		}
		storageService = local
	}

	// The simulated gateway stands in for the moving company's backend.
	gw := gateway.NewSimulatedGateway(
		time.Duration(config.AppConfig.GatewayLatencyMs)*time.Millisecond,
		config.AppConfig.GatewayFailureRate,
		logger,
	)
	if key := config.AppConfig.GeminiAPIKey; key != "" {
		analyzer, err := intelligence.NewGeminiAnalyzer(context.Background(), key)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize Gemini analyzer: %v", err)
		}
		gw.Analyzer = analyzer
	}

	var payments *gateway.StripePayments
	if key := config.AppConfig.StripeKey; key != "" {
		payments = gateway.NewStripePayments(key, logger)
	}

	sessionStore := order.NewRedisSessionStore(
		utils.GetSessionCacheClient(),
		time.Duration(config.AppConfig.SessionTTLMinutes)*time.Minute,
	)

	trackingInterval := time.Duration(config.AppConfig.TrackingIntervalSec) * time.Second
	tracker := workers.NewTrackingScheduler(sessionStore, trackingInterval)
	workers.RunTrackingWorker(sessionStore, gw, trackingInterval)

	orderService := &order.DefaultOrderService{
		Store:     sessionStore,
		Gateway:   gw,
		Tracker:   tracker,
		MaxPhotos: config.AppConfig.MaxPhotos,
	}

	orderHandler := handlers.NewOrderHandler(orderService, payments, logger)
	photoHandler := handlers.NewPhotoHandler(orderService, storageService, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	if _, ok := storageService.(*storage.LocalStorage); ok {
		router.Static("/uploads", "uploads")
	}

	routes.RegisterRoutes(router, orderHandler, photoHandler)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
