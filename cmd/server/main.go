package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/proxylink/proxylink-api/internal/config"
	"github.com/proxylink/proxylink-api/internal/dao"
	"github.com/proxylink/proxylink-api/internal/router"
	"github.com/proxylink/proxylink-api/internal/service"
	"github.com/proxylink/proxylink-api/internal/store"
)

// Version information (set by build script)
var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	// Set Gin to release mode by default (can be overridden by GIN_MODE env var)
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	logger.WithFields(logrus.Fields{
		"version":    version,
		"build_date": buildDate,
	}).Info("Starting ProxyLink API Server...")

	// Load configuration
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	// Set log level from config
	if level, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
		logger.SetLevel(level)
	}

	logger.WithField("log_level", logger.GetLevel().String()).Info("Configuration loaded successfully")

	// Connect to the document store
	connectCtx, cancel := context.WithTimeout(context.Background(), cfg.Database.Document.ConnectTimeout)
	st, err := store.Connect(connectCtx, &cfg.Database.Document, logger)
	cancel()
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to document store")
	}

	healthCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = st.HealthCheck(healthCtx)
	cancel()
	if err != nil {
		logger.WithError(err).Fatal("Document store health check failed")
	}

	logger.Info("Document store connection established successfully")

	// Initialize DAOs
	requestDAO := dao.NewRequestDAO(st)
	logDAO := dao.NewRequestLogDAO(st)
	tenantDAO := dao.NewTenantDAO(st)

	logger.Info("DAOs initialized successfully")

	// Initialize services
	logService := service.NewRequestLogService(logDAO, logger)
	requestService := service.NewRequestService(requestDAO, tenantDAO, logService, logger)
	tenantService := service.NewTenantService(tenantDAO, requestDAO, logDAO, logger)
	statsService := service.NewStatsService(requestDAO, logDAO, tenantDAO, logger)

	logger.Info("Services initialized successfully")

	// Setup router
	ginRouter := router.SetupRouter(cfg, st, requestService, logService, tenantService, statsService)

	// Configure HTTP server
	serverAddr := cfg.Server.GetServerAddress()
	server := &http.Server{
		Addr:           serverAddr,
		Handler:        ginRouter,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	// Start server in a goroutine
	go func() {
		logger.WithFields(logrus.Fields{
			"hostname": cfg.Server.Hostname,
			"port":     cfg.Server.Port,
			"addr":     serverAddr,
		}).Info("Starting HTTP server...")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	logger.WithField("address", serverAddr).Info("Server is running")

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Fatal("Server forced to shutdown")
	}

	if err := st.Close(shutdownCtx); err != nil {
		logger.WithError(err).Error("Failed to close document store connection")
	}

	logger.Info("Server exited gracefully")
}
