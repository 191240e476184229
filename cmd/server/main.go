package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/azurestay/booking-backend/internal/config"
	"github.com/azurestay/booking-backend/internal/database"
	"github.com/azurestay/booking-backend/internal/handlers"
	"github.com/azurestay/booking-backend/internal/middleware"
	"github.com/azurestay/booking-backend/internal/models"
	"github.com/azurestay/booking-backend/internal/services"
	"github.com/azurestay/booking-backend/pkg/jwt"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting AzureStay Booking Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize Redis for the booking draft store
	logger.Info("Connecting to Redis...")
	redisClient, err := database.NewRedisClient(cfg.Redis)
	if err != nil {
		logger.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	logger.Info("Redis connection established")

	// Initialize repositories
	userRepo := database.NewUserRepository(db)
	refreshTokenRepo := database.NewRefreshTokenRepository(db)
	roomRepo := database.NewRoomRepository(db)
	extraRepo := database.NewExtraRepository(db)
	promoRepo := database.NewPromoCodeRepository(db)
	bookingRepo := database.NewBookingRepository(db)
	paymentRepo := database.NewPaymentRepository(db)
	reviewRepo := database.NewReviewRepository(db)
	draftStore := database.NewRedisDraftStore(redisClient, cfg.Booking.DraftTTL)

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	auditService := services.NewAuditService(db, cfg.Security.EnableAuditLog)
	rateLimitService := services.NewRateLimitService(db)
	pricingEngine := services.NewPricingEngine(cfg.Pricing)
	authService := services.NewAuthService(
		userRepo,
		refreshTokenRepo,
		jwtService,
		auditService,
		cfg.Security.BcryptCost,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
		logger,
	)
	draftService := services.NewDraftService(draftStore, roomRepo, extraRepo, promoRepo, pricingEngine, logger)
	bookingService := services.NewBookingService(
		bookingRepo,
		paymentRepo,
		roomRepo,
		promoRepo,
		draftStore,
		pricingEngine,
		auditService,
		cfg.Pricing.Currency,
		logger,
	)
	searchService := services.NewSearchService(roomRepo, logger)
	reviewService := services.NewReviewService(reviewRepo, bookingRepo, logger)
	adminService := services.NewAdminService(userRepo, roomRepo, bookingRepo, reviewRepo, promoRepo, logger)
	logger.Info("Services initialized")

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, rateLimitService, auditService, logger)
	roomHandler := handlers.NewRoomHandler(roomRepo, extraRepo, searchService, reviewService)
	draftHandler := handlers.NewDraftHandler(draftService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	adminHandler := handlers.NewAdminHandler(adminService, bookingService, reviewService, auditService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	// CORS configuration
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Authentication routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)

			protected := auth.Group("")
			protected.Use(middleware.AuthMiddleware(jwtService))
			{
				protected.POST("/logout", authHandler.Logout)
				protected.POST("/logout-all", authHandler.LogoutAll)
			}
		}

		// User profile routes (protected)
		user := v1.Group("/user")
		user.Use(middleware.AuthMiddleware(jwtService))
		{
			user.GET("/profile", authHandler.GetProfile)
			user.PUT("/profile", authHandler.UpdateProfile)
			user.GET("/activity", authHandler.GetActivity)
		}

		// Room catalog routes (public)
		rooms := v1.Group("/rooms")
		{
			rooms.GET("", roomHandler.ListRooms)
			rooms.GET("/featured", roomHandler.GetFeaturedRooms)
			rooms.GET("/search", roomHandler.Search)
			rooms.GET("/:id", roomHandler.GetRoom)

			roomsProtected := rooms.Group("")
			roomsProtected.Use(middleware.AuthMiddleware(jwtService))
			{
				roomsProtected.POST("/:id/reviews", roomHandler.CreateReview)
			}
		}

		// Extras catalog (public)
		v1.GET("/extras", roomHandler.ListExtras)

		// Booking draft routes (protected)
		draft := v1.Group("/booking/draft")
		draft.Use(middleware.AuthMiddleware(jwtService))
		{
			draft.GET("", draftHandler.GetDraft)
			draft.DELETE("", draftHandler.ClearDraft)
			draft.PUT("/room", draftHandler.SelectRoom)
			draft.PUT("/dates", draftHandler.SetDates)
			draft.POST("/extras", draftHandler.AddExtra)
			draft.PUT("/extras/:id", draftHandler.UpdateExtraQuantity)
			draft.DELETE("/extras/:id", draftHandler.RemoveExtra)
			draft.PUT("/guest", draftHandler.SetGuestInfo)
			draft.POST("/promo", draftHandler.ApplyPromo)
			draft.DELETE("/promo", draftHandler.ClearPromo)
			draft.PUT("/step", draftHandler.SetStep)
			draft.POST("/step/next", draftHandler.NextStep)
			draft.POST("/step/previous", draftHandler.PreviousStep)
		}

		// Checkout and customer bookings (protected)
		booking := v1.Group("")
		booking.Use(middleware.AuthMiddleware(jwtService))
		{
			booking.POST("/booking/checkout", bookingHandler.Checkout)
			booking.GET("/bookings", bookingHandler.ListMyBookings)
			booking.GET("/bookings/:id", bookingHandler.GetBooking)
			booking.POST("/bookings/:id/cancel", bookingHandler.CancelBooking)
		}

		// Manager console routes (manager or admin)
		manager := v1.Group("/manager")
		manager.Use(middleware.AuthMiddleware(jwtService), middleware.RequireManager())
		{
			manager.GET("/dashboard", adminHandler.GetDashboard)
			manager.GET("/bookings", adminHandler.ListBookings)
			manager.PUT("/bookings/:id/status", adminHandler.UpdateBookingStatus)
			manager.GET("/today", adminHandler.GetTodayActivity)
		}

		// Admin console routes (admin only)
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(jwtService), middleware.RequireAdmin())
		{
			admin.GET("/dashboard", adminHandler.GetDashboard)
			admin.GET("/users", adminHandler.ListUsers)
			admin.PUT("/users/:id", adminHandler.UpdateUser)
			admin.POST("/rooms", adminHandler.CreateRoom)
			admin.PUT("/rooms/:id", adminHandler.UpdateRoom)
			admin.DELETE("/rooms/:id", adminHandler.DeleteRoom)
			admin.GET("/promo-codes", adminHandler.ListPromoCodes)
			admin.GET("/audit-logs", adminHandler.GetAuditLog)
			admin.GET("/reviews/pending", adminHandler.ListPendingReviews)
			admin.PUT("/reviews/:id", adminHandler.ModerateReview)
		}

		// Front desk routes (any staff role)
		frontDesk := v1.Group("/front-desk")
		frontDesk.Use(
			middleware.AuthMiddleware(jwtService),
			middleware.RequireRoles(models.RoleStaff, models.RoleManager, models.RoleAdmin),
		)
		{
			frontDesk.GET("/today", adminHandler.GetTodayActivity)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency_ms": latency.Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}

		if userCtx, exists := middleware.GetUserContext(c); exists {
			fields["user_id"] = userCtx.UserID
			fields["role"] = userCtx.Role
		}

		entry := logger.WithFields(fields)

		status := c.Writer.Status()
		switch {
		case len(c.Errors) > 0:
			entry.WithField("errors", c.Errors.String()).Error("Request failed with errors")
		case status >= 500:
			entry.Error("Request completed with server error")
		case status >= 400:
			entry.Warn("Request completed with client error")
		default:
			entry.Info("Request completed successfully")
		}
	}
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unhealthy",
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  "healthy",
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
