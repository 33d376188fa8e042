package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/iremtulu/tekneturum-0/internal/config"
	"github.com/iremtulu/tekneturum-0/internal/database"
	"github.com/iremtulu/tekneturum-0/internal/handlers"
	"github.com/iremtulu/tekneturum-0/internal/middleware"
	"github.com/iremtulu/tekneturum-0/internal/services"
	"github.com/iremtulu/tekneturum-0/pkg/jwt"
	"github.com/iremtulu/tekneturum-0/pkg/validator"
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

	logger.Info("Starting TekneTurum booking backend")
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

	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize repositories
	tourRepo := database.NewTourRepository(db)
	deletedTourRepo := database.NewDeletedTourRepository(db)
	bookingRepo := database.NewBookingRepository(db)
	cancelledBookingRepo := database.NewCancelledBookingRepository(db)
	paymentRepo := database.NewPaymentRepository(db)
	notificationRepo := database.NewNotificationRepository(db)
	userRepo := database.NewUserRepository(db)
	adminRepo := database.NewAdminRepository(db)

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	phoneValidator := validator.NewPhoneValidator()

	authService := services.NewAuthService(userRepo, adminRepo, jwtService, cfg.Security.BcryptCost, logger)
	notificationService := services.NewNotificationService(notificationRepo, logger)
	availabilityService := services.NewAvailabilityService(bookingRepo)
	pricing := services.NewPricing()
	checkoutStore := services.NewCheckoutStore(cfg.Checkout.TTL)

	if cfg.Payment.Mode == "production" {
		logger.Info("Payment gateway in production mode")
	} else {
		logger.Info("Payment gateway in development mode (charges are simulated)")
	}
	gateway := services.NewIyzicoService(&cfg.Payment, logger)

	bookingService := services.NewBookingService(
		bookingRepo,
		cancelledBookingRepo,
		paymentRepo,
		tourRepo,
		availabilityService,
		pricing,
		checkoutStore,
		gateway,
		notificationService,
		phoneValidator,
		cfg.Payment.Currency,
		logger,
	)
	tourService := services.NewTourService(tourRepo, deletedTourRepo, bookingRepo, bookingService, logger)
	revenueService := services.NewRevenueService(bookingRepo, paymentRepo, tourRepo, userRepo)

	logger.Info("Services initialized")

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	tourHandler := handlers.NewTourHandler(tourService, availabilityService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	accountHandler := handlers.NewAccountHandler(authService, notificationService)
	adminHandler := handlers.NewAdminHandler(tourService, bookingService, revenueService, authService, notificationService)

	// Initialize Gin router
	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	if cfg.Security.EnableRequestLog {
		router.Use(requestLogger(logger))
	}

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
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/admin/register", authHandler.RegisterAdmin)
			auth.POST("/admin/login", authHandler.LoginAdmin)
		}

		// Public catalog and availability
		v1.GET("/tours", tourHandler.ListTours)
		v1.GET("/tours/:id", tourHandler.GetTour)
		v1.GET("/availability", tourHandler.CheckAvailability)
		v1.GET("/booking-dates", tourHandler.BookingDates)

		// Customer routes (protected)
		customer := v1.Group("")
		customer.Use(middleware.AuthMiddleware(jwtService))
		customer.Use(middleware.RequireRole(services.RoleUser))
		{
			bookings := customer.Group("/bookings")
			{
				bookings.POST("/reserve", bookingHandler.Reserve)
				bookings.GET("/checkout/:token", bookingHandler.Checkout)
				bookings.POST("/checkout/:token/pay", bookingHandler.Pay)
				bookings.GET("", bookingHandler.MyBookings)
				bookings.GET("/cancelled", bookingHandler.MyCancelledBookings)
				bookings.GET("/:id", bookingHandler.GetBooking)
				bookings.POST("/:id/cancellation-request", bookingHandler.RequestCancellation)
				bookings.DELETE("/:id/cancellation-request", bookingHandler.WithdrawCancellation)
				bookings.POST("/:id/update-request", bookingHandler.RequestUpdate)
			}

			account := customer.Group("/account")
			{
				account.GET("/profile", accountHandler.GetProfile)
				account.PUT("/profile", accountHandler.UpdateProfile)
				account.GET("/notifications", accountHandler.Notifications)
				account.POST("/notifications/:id/read", accountHandler.MarkNotificationRead)
			}
		}

		// Admin routes (protected)
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(jwtService))
		admin.Use(middleware.RequireRole(services.RoleAdmin))
		{
			admin.GET("/dashboard", adminHandler.Dashboard)

			admin.GET("/revenue", adminHandler.RevenueSummary)
			admin.GET("/revenue/monthly", adminHandler.RevenueSeries)
			admin.GET("/revenue/details", adminHandler.RevenueDetails)
			admin.GET("/revenue/categories", adminHandler.RevenueByCategory)

			admin.POST("/tours", adminHandler.CreateTour)
			admin.PUT("/tours/:id", adminHandler.UpdateTour)
			admin.DELETE("/tours/:id", adminHandler.DeleteTour)
			admin.GET("/tours/deleted", adminHandler.DeletedTours)
			admin.POST("/tours/deleted/:id/restore", adminHandler.RestoreTour)

			admin.GET("/bookings", adminHandler.ListBookings)
			admin.GET("/bookings/cancelled", adminHandler.ListCancelledBookings)
			admin.GET("/bookings/:id", adminHandler.GetBooking)
			admin.DELETE("/bookings/:id", adminHandler.CancelBooking)

			admin.GET("/cancellation-requests", adminHandler.CancellationRequests)
			admin.POST("/cancellation-requests/:id/approve", adminHandler.ApproveCancellation)
			admin.POST("/cancellation-requests/:id/reject", adminHandler.RejectCancellation)

			admin.GET("/update-requests", adminHandler.UpdateRequests)
			admin.POST("/update-requests/:id/approve", adminHandler.ApproveUpdate)
			admin.POST("/update-requests/:id/reject", adminHandler.RejectUpdate)

			admin.GET("/users", adminHandler.ListUsers)

			admin.GET("/notifications", adminHandler.Notifications)
			admin.POST("/notifications/:id/read", adminHandler.MarkNotificationRead)

			admin.GET("/profile", adminHandler.GetProfile)
			admin.PUT("/profile", adminHandler.UpdateProfile)
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

	// Graceful shutdown with timeout
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

		if account, exists := middleware.GetAccountContext(c); exists {
			fields["account_id"] = account.AccountID
			fields["role"] = account.Role
		}

		entry := logger.WithFields(fields)

		if len(c.Errors) > 0 {
			for i, err := range c.Errors {
				entry = entry.WithField(fmt.Sprintf("error_%d", i), err.Error())
			}
			entry.Error("Request failed with errors")
		} else {
			status := c.Writer.Status()
			if status >= 500 {
				entry.Error("Request completed with server error")
			} else if status >= 400 {
				entry.Warn("Request completed with client error")
			} else {
				entry.Info("Request completed successfully")
			}
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
