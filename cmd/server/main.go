package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	goredis "github.com/redis/go-redis/v9"

	"ridebooking/internal/app"
	"ridebooking/internal/auth"
	"ridebooking/internal/config"
	"ridebooking/internal/handler"
	internalRedis "ridebooking/internal/redis"
	"ridebooking/internal/repository"
	"ridebooking/internal/repository/memory"
	"ridebooking/internal/repository/postgres"
	"ridebooking/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s", cfg.NewRelic.AppName)
		}
	}

	var (
		passengerRepo repository.PassengerRepository
		driverRepo    repository.DriverRepository
		rideRepo      repository.RideRepository
		redisClient   *goredis.Client
	)

	switch cfg.Store.Driver {
	case "memory":
		// Everything in-process: no PostgreSQL or Redis needed. The accept
		// race is still resolved correctly by the memory store's
		// compare-and-set.
		passengerRepo = memory.NewPassengerRepository()
		driverRepo = memory.NewDriverRepository()
		rideRepo = memory.NewRideRepository()
		log.Println("Using in-memory store")

	default:
		db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer db.Close()
		log.Println("Connected to PostgreSQL")

		redisClient, err = app.NewRedisClient(ctx, cfg.Redis, nrApp)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
		log.Println("Connected to Redis")

		passengerRepo = postgres.NewPassengerRepository(db)
		driverRepo = postgres.NewDriverRepository(db)
		rideRepo = postgres.NewRideRepository(db)
	}

	// Wire dependencies.
	var lockStore internalRedis.LockStoreInterface
	if redisClient != nil {
		lockStore = internalRedis.NewLockStore(redisClient)
	}

	tokenManager := auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	notificationService := service.NewNotificationService()
	matchingService := service.NewMatchingService(rideRepo)
	rideService := service.NewRideService(rideRepo, passengerRepo, driverRepo, matchingService, lockStore, notificationService)
	queryService := service.NewQueryService(rideRepo, driverRepo, matchingService)
	authService := service.NewAuthService(passengerRepo, driverRepo, tokenManager)

	authHandler := handler.NewAuthHandler(authService)
	rideHandler := handler.NewRideHandler(rideService, queryService)
	driverHandler := handler.NewDriverHandler(rideService, queryService, driverRepo)

	router := app.NewRouter(app.RouterDeps{
		AuthHandler:   authHandler,
		RideHandler:   rideHandler,
		DriverHandler: driverHandler,
		TokenManager:  tokenManager,
		RedisClient:   redisClient,
		NewRelicApp:   nrApp,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
