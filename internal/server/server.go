// file: internal/server/server.go
// version: 1.0.0
// guid: 0c0dc423-f2f1-4504-b3eb-a0568e1f41ba

// Package server exposes the aid panel HTTP API.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/acikyardim/yardim-paneli/internal/cache"
	"github.com/acikyardim/yardim-paneli/internal/config"
	"github.com/acikyardim/yardim-paneli/internal/database"
	"github.com/acikyardim/yardim-paneli/internal/messaging"
	"github.com/acikyardim/yardim-paneli/internal/metrics"
	"github.com/acikyardim/yardim-paneli/internal/server/middleware"
)

// Server wires the store, the message dispatcher and the HTTP router.
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	store      database.Store
	dispatcher *messaging.Dispatcher
	limiter    *middleware.WindowLimiter
	statsCache *cache.Cache[DashboardStats]
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultServerConfig returns the configured port with standard timeouts.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:         strconv.Itoa(config.AppConfig.Port),
		Host:         "0.0.0.0",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// NewServer creates a server around the given store and dispatcher.
func NewServer(store database.Store, dispatcher *messaging.Dispatcher) *Server {
	router := gin.Default()

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(middleware.MaxRequestBodySize(1<<20, 16<<20))

	// Register metrics (idempotent)
	metrics.Register()

	s := &Server{
		router:     router,
		store:      store,
		dispatcher: dispatcher,
		limiter:    middleware.NewWindowLimiter(config.AppConfig.RateLimitMax, config.AppConfig.RateLimitWindow),
		statsCache: cache.New[DashboardStats](30 * time.Second),
	}

	s.setupRoutes()

	return s
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains it.
func (s *Server) Start(cfg ServerConfig) error {
	s.httpServer = &http.Server{
		Addr:           fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler:        s.router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: 1 << 20, // 1MB
	}

	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Housekeeping: drop expired sessions and rate-limit windows, refresh
	// entity gauges.
	done := make(chan struct{})
	ticker := time.NewTicker(time.Minute)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.housekeeping()
			case <-done:
				return
			}
		}
	}()

	<-quit
	close(done)

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("Server exited")
	return nil
}

func (s *Server) housekeeping() {
	if removed, err := s.store.DeleteExpiredSessions(time.Now().UTC()); err != nil {
		log.Printf("[WARN] session cleanup failed: %v", err)
	} else if removed > 0 {
		log.Printf("[INFO] removed %d expired sessions", removed)
	}
	s.limiter.Sweep()
	s.statsCache.Sweep()

	orgID := config.AppConfig.DefaultOrgID
	if n, err := s.store.CountBeneficiaries(orgID); err == nil {
		metrics.SetBeneficiaries(n)
	}
	if n, err := s.store.CountDonations(orgID); err == nil {
		metrics.SetDonations(n)
	}
}

// setupRoutes configures all the routes.
func (s *Server) setupRoutes() {
	// Prometheus metrics endpoint (standard path)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.router.GET("/health", s.healthCheck)

	api := s.router.Group("/api")
	api.Use(s.limiter.Middleware())

	// Auth routes: login and setup stay outside session auth.
	auth := api.Group("/auth")
	{
		auth.POST("/setup", s.setupFirstAdmin)
		auth.POST("/login", s.login)
		auth.POST("/logout", middleware.RequireAuth(s.store), s.logout)
		auth.GET("/me", middleware.RequireAuth(s.store), s.currentUser)
	}

	protected := api.Group("")
	protected.Use(middleware.RequireAuth(s.store))

	beneficiaries := protected.Group("/beneficiaries")
	{
		beneficiaries.GET("", middleware.RequireResourcePermission("beneficiaries", "read"), s.listBeneficiaries)
		beneficiaries.GET("/search", middleware.RequireResourcePermission("beneficiaries", "read"), s.searchBeneficiaries)
		beneficiaries.GET("/suggestions", middleware.RequireResourcePermission("beneficiaries", "read"), s.suggestBeneficiaries)
		beneficiaries.GET("/:id", middleware.RequireResourcePermission("beneficiaries", "read"), s.getBeneficiary)
		beneficiaries.POST("", middleware.RequireResourcePermission("beneficiaries", "create"), s.createBeneficiary)
		beneficiaries.POST("/import", middleware.RequireResourcePermission("beneficiaries", "create"), s.importBeneficiaries)
		beneficiaries.PUT("/:id", middleware.RequireResourcePermission("beneficiaries", "update"), s.updateBeneficiary)
		beneficiaries.DELETE("/:id", middleware.RequireResourcePermission("beneficiaries", "delete"), s.deleteBeneficiary)
	}

	donations := protected.Group("/donations")
	{
		donations.GET("", middleware.RequireResourcePermission("donations", "read"), s.listDonations)
		donations.GET("/search", middleware.RequireResourcePermission("donations", "read"), s.searchDonations)
		donations.GET("/:id", middleware.RequireResourcePermission("donations", "read"), s.getDonation)
		donations.POST("", middleware.RequireResourcePermission("donations", "create"), s.createDonation)
		donations.PUT("/:id", middleware.RequireResourcePermission("donations", "update"), s.updateDonation)
		donations.DELETE("/:id", middleware.RequireResourcePermission("donations", "delete"), s.deleteDonation)
		donations.POST("/:id/approve", middleware.RequirePermission("approve_applications"), s.approveDonation)
		donations.POST("/:id/reject", middleware.RequirePermission("approve_applications"), s.rejectDonation)
	}

	users := protected.Group("/users")
	{
		users.GET("", middleware.RequireResourcePermission("users", "read"), s.listUsers)
		users.POST("", middleware.RequireResourcePermission("users", "create"), s.createUser)
		users.PUT("/:id", middleware.RequireResourcePermission("users", "update"), s.updateUser)
		users.DELETE("/:id", middleware.RequireResourcePermission("users", "delete"), s.deleteUser)
	}

	messages := protected.Group("/messages")
	{
		messages.GET("", middleware.RequireResourcePermission("messages", "read"), s.listMessages)
		messages.POST("/sms", middleware.RequireResourcePermission("messages", "create"), s.sendSMS)
		messages.POST("/email", middleware.RequireResourcePermission("messages", "create"), s.sendEmail)
		messages.POST("/bulk-sms", middleware.RequireResourcePermission("messages", "create"), s.sendBulkSMS)
	}

	protected.GET("/activity", middleware.RequireResourcePermission("reports", "read"), s.listActivity)
	protected.GET("/dashboard/stats", middleware.RequireResourcePermission("reports", "read"), s.dashboardStats)
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// orgForRequest picks the org scope: the authenticated user's org, or the
// configured default during first-run bootstrap.
func (s *Server) orgForRequest(c *gin.Context) string {
	if user, ok := middleware.CurrentUser(c); ok && user.OrgID != "" {
		return user.OrgID
	}
	return config.AppConfig.DefaultOrgID
}
