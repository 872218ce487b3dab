// Package server
//
// @title Surface Planner Gateway API
// @version 1.0
// @description Marketing site and customer dashboard gateway
// @host localhost:8080
// @BasePath /
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"regexp"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/surfaceplanner/surfaced/internal/config"
	"github.com/surfaceplanner/surfaced/internal/gate"
	"github.com/surfaceplanner/surfaced/internal/mailer"
	"github.com/surfaceplanner/surfaced/internal/models"
	"github.com/surfaceplanner/surfaced/internal/proxy"
	"github.com/surfaceplanner/surfaced/internal/session"
	"github.com/surfaceplanner/surfaced/internal/submissions"
)

// publicPaths are the routes that never require a session
var publicPaths = []string{"/", "/faqs", "/terms", "/auth/login", "/auth/signup"}

// phonePattern accepts digits with common separators and an optional
// leading plus
var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ().-]{5,19}$`)

// Server represents the HTTP gateway
type Server struct {
	router      *gin.Engine
	db          *gorm.DB
	config      *config.Config
	logger      zerolog.Logger
	sessions    *session.Manager
	relay       *proxy.Relay
	mail        mailer.Sender
	submissions *submissions.Service
	sweeper     *cron.Cron
	version     string
}

// New creates a new gateway instance
func New(cfg *config.Config, zlog zerolog.Logger, version string) (*Server, error) {
	// Initialize the local submission-log database
	db, err := initDatabase(cfg, zlog)
	if err != nil {
		return nil, err
	}

	// Run database migrations
	if err := models.AutoMigrate(db); err != nil {
		return nil, err
	}

	// Session manager for the signed session cookie
	sessions, err := session.NewManager(cfg.Session.Secret, cfg.Session.TTL, cfg.Session.RefreshWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sessions: %w", err)
	}

	// Upstream relay with a bounded per-request timeout
	relay := proxy.New(cfg.Backend.BaseURL, cfg.Backend.Timeout, zlog)

	// SMTP mailer for the contact and booking forms
	mail, err := mailer.New(cfg.SMTP, zlog)
	if err != nil {
		return nil, err
	}

	// Submission log and its retention sweeper
	subs := submissions.NewService(db, zlog)
	sweeper, err := subs.StartRetentionSweeper(cfg.Database.RetentionCron, cfg.Database.RetentionDays)
	if err != nil {
		return nil, err
	}

	server := &Server{
		db:          db,
		config:      cfg,
		logger:      zlog,
		sessions:    sessions,
		relay:       relay,
		mail:        mail,
		submissions: subs,
		sweeper:     sweeper,
		version:     version,
	}

	// Setup router
	server.setupRouter()

	return server, nil
}

// initDatabase initializes the database connection with production settings
func initDatabase(cfg *config.Config, zlog zerolog.Logger) (*gorm.DB, error) {
	const (
		maxOpenConns    = 4
		maxIdleConns    = 2
		connMaxLifetime = 300 * time.Second
		busyTimeout     = 5000 // 5 seconds
	)

	// Open database connection
	db, err := gorm.Open(sqlite.Open(cfg.Database.URL), &gorm.Config{
		Logger: logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			logger.Config{
				LogLevel:                  logger.Error,
				IgnoreRecordNotFoundError: true,
				SlowThreshold:             200 * time.Millisecond,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Get underlying sql.DB to configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	// Test the connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// WAL mode must be set first for concurrent readers during sweeps
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		fmt.Sprintf("PRAGMA busy_timeout=%d", busyTimeout),
		"PRAGMA foreign_keys=1",
	}

	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			zlog.Warn().Str("pragma", pragma).Err(err).Msg("Failed to apply pragma")
		}
	}

	return db, nil
}

// gateConfig builds the auth-gate configuration for dashboard pages
func (s *Server) gateConfig() gate.Config {
	return gate.Config{
		LoginPath:   "/auth/login",
		PublicPaths: publicPaths,
		ClientRole:  s.config.Session.ClientRole,
	}
}

// setupRouter configures the Gin router with routes and middleware
func (s *Server) setupRouter() {
	// Set Gin mode based on environment
	gin.SetMode(gin.ReleaseMode)

	// Register custom validators used by the form binding tags
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		})
	}

	s.router = gin.New()

	// Add middleware
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())

	// CORS middleware
	s.router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{s.config.HTTP.AllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Server-rendered pages
	s.router.SetHTMLTemplate(pageTemplates)

	// Health check endpoint (no auth required)
	s.router.GET("/health", s.healthCheck)

	// Marketing pages (no auth required)
	s.router.GET("/", s.homePage)
	s.router.GET("/faqs", s.faqsPage)
	s.router.GET("/terms", s.termsPage)

	// Login flow (no auth required)
	s.router.GET("/auth/login", s.loginPage)
	s.router.POST("/auth/login", s.login)
	s.router.POST("/auth/logout", s.logout)

	// Form-to-email endpoints (no auth required; marketing forms)
	s.router.POST("/api/email", s.sendContactEmail)
	s.router.POST("/api/cresmail", s.sendBookingEmail)

	// Customer dashboard pages (auth gate with login redirect)
	dashboard := s.router.Group("/dashboard")
	dashboard.Use(PageGateMiddleware(s.gateConfig(), s.sessions, s.logger))
	{
		dashboard.GET("", s.dashboardPage)
	}

	// Authenticated API routes (session required, client role)
	api := s.router.Group("/api")
	api.Use(SessionAuthMiddleware(s.sessions, s.logger))
	api.Use(RequireRole(s.config.Session.ClientRole, s.logger))
	{
		// Notification proxy
		api.PATCH("/notifications/:id/read", s.markNotificationRead)
		api.PATCH("/notifications/mark-all-read", s.markAllNotificationsRead)

		// Booking proxy
		api.GET("/bookings", s.listBookings)
		api.POST("/bookings", s.createBooking)
	}

	// Operator endpoints (admin only)
	admin := s.router.Group("/api/admin")
	admin.Use(SessionAuthMiddleware(s.sessions, s.logger))
	admin.Use(RequireRole(s.config.Session.AdminRole, s.logger))
	{
		admin.GET("/submissions", s.listSubmissions)
	}
}

// loggingMiddleware creates a custom logging middleware using zerolog
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start)

		s.logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("HTTP request")
	}
}

// @Router /health [get]
// @Success 200 {object} map[string]interface{}
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "online",
		"timestamp": time.Now().UTC(),
		"service":   "surfaced",
	})
}

// GetDB returns the database connection
func (s *Server) GetDB() *gorm.DB {
	return s.db
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := s.config.HTTP.Addr

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Create HTTP server with production timeouts
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		ReadHeaderTimeout: 30 * time.Second,
		IdleTimeout:       300 * time.Second,
	}

	// Start server in goroutine
	go func() {
		s.logger.Info().Str("addr", addr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error().Err(err).Msg("HTTP server error")
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	s.logger.Info().Msg("Received shutdown signal, shutting down gracefully...")

	// Stop the retention sweeper
	if s.sweeper != nil {
		s.sweeper.Stop()
		s.logger.Info().Msg("Retention sweeper stopped")
	}

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	s.logger.Info().Msg("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error().Err(err).Msg("Error shutting down HTTP server")
		return err
	}

	s.logger.Info().Msg("Server shutdown complete")

	// Close database connection to flush WAL writes
	if sqlDB, err := s.db.DB(); err == nil {
		s.logger.Info().Msg("Closing database connection...")
		if err := sqlDB.Close(); err != nil {
			s.logger.Error().Err(err).Msg("Error closing database")
		}
	}

	return nil
}
