package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"ridebooking/internal/auth"
	"ridebooking/internal/handler"
	"ridebooking/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler   *handler.AuthHandler
	RideHandler   *handler.RideHandler
	DriverHandler *handler.DriverHandler
	TokenManager  *auth.Manager
	RedisClient   *redis.Client
	NewRelicApp   *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	if deps.RedisClient != nil {
		router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	asPassenger := auth.RequireRole(deps.TokenManager, auth.RolePassenger)
	asDriver := auth.RequireRole(deps.TokenManager, auth.RoleDriver)

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Registration and login.
		passengers := v1.Group("/passengers")
		{
			passengers.POST("/register", deps.AuthHandler.RegisterPassenger)
			passengers.POST("/login", deps.AuthHandler.LoginPassenger)
		}

		// Driver account and work queue.
		drivers := v1.Group("/drivers")
		{
			drivers.POST("/register", deps.AuthHandler.RegisterDriver)
			drivers.POST("/login", deps.AuthHandler.LoginDriver)
			drivers.GET("/requests", asDriver, deps.DriverHandler.GetEligibleRequests)
			drivers.GET("/active", asDriver, deps.DriverHandler.GetActiveRide)
			drivers.POST("/availability", asDriver, deps.DriverHandler.SetAvailability)
		}

		// Ride lifecycle.
		rides := v1.Group("/rides")
		{
			rides.POST("", asPassenger, deps.RideHandler.RequestRide)
			rides.GET("/active", asPassenger, deps.RideHandler.GetActiveRide)
			rides.GET("/history", asPassenger, deps.RideHandler.GetHistory)
			rides.POST("/:id/accept", asDriver, deps.DriverHandler.AcceptRide)
			rides.POST("/:id/start", asDriver, deps.DriverHandler.StartRide)
			rides.POST("/:id/complete", asDriver, deps.DriverHandler.CompleteRide)
		}
	}

	return router
}
