package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"gocab/internal/config"
	"gocab/internal/handlers"
	"gocab/internal/middleware"
	"gocab/internal/repositories/mongodb"
	"gocab/internal/services"
	"gocab/pkg/cache"
	"gocab/pkg/database"
	"gocab/pkg/logger"
	"gocab/pkg/maps"
	"gocab/pkg/sms"
	"gocab/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:      logger.LogLevel(cfg.App.LogLevel),
		Format:     "json",
		Output:     "stdout",
		TimeFormat: time.RFC3339,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.EnsureIndexes(ctx); err != nil {
		appLogger.WithError(err).Warn("Failed to ensure indexes")
	}
	cancel()

	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisCache.Close()

	mapsProvider, err := maps.NewGoogleMapsProvider(cfg.Maps.GoogleMaps.APIKey, cfg.Maps.Region, cfg.Maps.MaxSuggestResults)
	if err != nil {
		log.Fatalf("Failed to initialize maps provider: %v", err)
	}

	smsProvider := newSMSProvider(cfg, appLogger)

	// Services
	cacheService := services.NewCacheService(redisCache)
	sessionService := services.NewSessionService(cacheService, cfg.Security.JWTSecret, appLogger)
	fareService := services.NewFareService()
	lifecycleService := services.NewLifecycleService()
	suggestionService := services.NewSuggestionService(mapsProvider, cfg.Maps.SuggestDebounce, appLogger)

	// Repositories
	bookingRepo := mongodb.NewBookingRepository(db.Database, cacheService)
	requestRepo := mongodb.NewBookingRequestRepository(db.Database)
	assignmentRepo := mongodb.NewAssignmentRepository(db.Database)
	rateCardRepo := mongodb.NewRateCardRepository(db.Database, cacheService)

	searchService := services.NewSearchService(rateCardRepo, mapsProvider, fareService, cacheService, cfg.Maps.RouteCacheTTL, appLogger)
	bookingService := services.NewBookingService(bookingRepo, requestRepo, assignmentRepo, lifecycleService, smsProvider, cfg.SMS.DefaultFrom, appLogger)

	// Handlers
	searchHandler := handlers.NewSearchHandler(searchService)
	locationHandler := handlers.NewLocationHandler(suggestionService)
	bookingHandler := handlers.NewBookingHandler(bookingService, searchService)
	authHandler := handlers.NewAuthHandler(sessionService, cacheService)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(appLogger))
	router.Use(middleware.RateLimitMiddleware(cacheService, cfg.Security.RateLimitPerMinute))

	v1 := router.Group("/api/v1")
	{
		routes.SetupAuthRoutes(v1, authHandler, sessionService)
		routes.SetupSearchRoutes(v1, searchHandler, locationHandler, sessionService)
		routes.SetupBookingRoutes(v1, bookingHandler, sessionService, cfg.Security.OperatorAPIKey)
	}

	router.GET("/health", func(c *gin.Context) {
		status := "healthy"
		code := http.StatusOK
		if err := db.Ping(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":  status,
			"version": cfg.App.Version,
		})
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	appLogger.WithField("addr", addr).Info("Server starting")
	if err := router.Run(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func newSMSProvider(cfg *config.Config, appLogger *logger.Logger) sms.Provider {
	switch cfg.SMS.Provider {
	case "aws":
		provider, err := sms.NewAWSSNSProvider(cfg.SMS.AWS.Region)
		if err != nil {
			appLogger.WithError(err).Warn("AWS SNS unavailable, SMS disabled")
			return nil
		}
		return provider
	case "twilio":
		return sms.NewTwilioProvider(cfg.SMS.Twilio.AccountSID, cfg.SMS.Twilio.AuthToken, cfg.SMS.Twilio.FromNumber)
	default:
		return nil
	}
}
