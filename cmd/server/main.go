package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/staynest/service-rental/internal/application"
	"github.com/staynest/service-rental/internal/config"
	bookingDomain "github.com/staynest/service-rental/internal/domain/booking"
	rentalEvents "github.com/staynest/service-rental/internal/events"
	"github.com/staynest/service-rental/internal/handler"
	"github.com/staynest/service-rental/internal/platform/auth"
	"github.com/staynest/service-rental/internal/platform/cache"
	"github.com/staynest/service-rental/internal/platform/database"
	"github.com/staynest/service-rental/internal/platform/health"
	"github.com/staynest/service-rental/internal/platform/kafka"
	"github.com/staynest/service-rental/internal/platform/logger"
	"github.com/staynest/service-rental/internal/platform/middleware"
	"github.com/staynest/service-rental/internal/repository"
)

// approvedStayExclusion keeps approved bookings free of date overlaps at
// the database level, regardless of what the application checks first.
const approvedStayExclusion = `
CREATE EXTENSION IF NOT EXISTS btree_gist;
ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_no_approved_overlap;
ALTER TABLE bookings ADD CONSTRAINT bookings_no_approved_overlap
    EXCLUDE USING gist (
        property_id WITH =,
        daterange(start_date, end_date) WITH &&
    ) WHERE (status = 'approved');
`

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-rental")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-rental",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(
			&repository.UserModel{},
			&repository.PropertyModel{},
			&repository.BookingModel{},
			&repository.ReviewModel{},
		); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		if err := db.Exec(approvedStayExclusion).Error; err != nil {
			log.Fatal("failed to install booking exclusion constraint", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		dbURL := cfg.DBConfig.DatabaseURL()
		if err := database.RunMigrations(dbURL, "migrations", log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Connect to Redis
	redisClient, err := cache.Connect(cfg.RedisConfig)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(
		cfg.JWTConfig.Secret,
		cfg.JWTConfig.AccessTTL,
		cfg.JWTConfig.RefreshTTL,
	)

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	// Initialize repositories
	userRepo := repository.NewGormUserRepository(db)
	propertyRepo := repository.NewGormPropertyRepository(db)
	bookingRepo := repository.NewGormBookingRepository(db)
	reviewRepo := repository.NewGormReviewRepository(db)
	ratingCache := repository.NewRedisRatingCache(redisClient)

	// Initialize application services
	clock := clockwork.NewRealClock()
	pricing := bookingDomain.NewNightlyRatePricing()

	authService := application.NewAuthService(userRepo, jwtManager, log)
	propertyService := application.NewPropertyService(propertyRepo, log)
	bookingService := application.NewBookingService(
		bookingRepo,
		propertyRepo,
		pricing,
		kafkaProducer,
		clock,
		log,
	)
	reviewService := application.NewReviewService(
		reviewRepo,
		bookingRepo,
		propertyRepo,
		ratingCache,
		kafkaProducer,
		clock,
		log,
	)

	// Initialize and start the rating projector in a goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	groupID := cfg.KafkaConfig.GroupPrefix + ".rating-projector"
	ratingProjector := rentalEvents.NewRatingProjector(
		cfg.KafkaConfig.Brokers,
		groupID,
		reviewRepo,
		ratingCache,
		log,
	)
	defer func() { _ = ratingProjector.Close() }()

	go func() {
		log.Info("starting rating projector")
		if err := ratingProjector.Start(ctx); err != nil && err != context.Canceled {
			log.Error("rating projector error", zap.Error(err))
		}
	}()

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	propertyHandler := handler.NewPropertyHandler(propertyService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	adminBookingHandler := handler.NewAdminBookingHandler(bookingService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, redisClient, "service-rental")
	healthHandler.RegisterRoutes(router)

	// Register routes
	authHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	propertyHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	bookingHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	reviewHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	adminBookingHandler.RegisterRoutes(&router.RouterGroup, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-rental...")

	// Cancel the projector context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-rental stopped")
}
