package router

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/proxylink/proxylink-api/internal/config"
	"github.com/proxylink/proxylink-api/internal/handlers"
	"github.com/proxylink/proxylink-api/internal/models"
	"github.com/proxylink/proxylink-api/internal/service"
	"github.com/proxylink/proxylink-api/internal/store"
	"github.com/proxylink/proxylink-api/internal/utils"
)

// SetupRouter configures all API routes
func SetupRouter(
	cfg *config.Config,
	st *store.Store,
	requestService *service.RequestService,
	logService *service.RequestLogService,
	tenantService *service.TenantService,
	statsService *service.StatsService,
) *gin.Engine {
	router := gin.Default()

	if cfg.CORS.Enabled {
		router.Use(corsMiddleware(&cfg.CORS))
	}

	// Global middleware to extract the acting identity and set context
	router.Use(func(c *gin.Context) {
		email := c.GetHeader("actor-email")
		if email != "" {
			utils.SetContextValue(c, "actor", &models.ChangedBy{
				Email:      email,
				TenantType: c.GetHeader("actor-tenant-type"),
				TenantID:   c.GetHeader("actor-tenant-id"),
			})
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		if err := st.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Create handlers
	requestHandler := handlers.NewRequestHandler(requestService, logService)
	tenantHandler := handlers.NewTenantHandler(tenantService)
	statsHandler := handlers.NewStatsHandler(statsService)

	// API v1 routes
	v1 := router.Group("/api/v1")
	if cfg.Security.IsBasicAuthEnabled() {
		v1.Use(basicAuthMiddleware(&cfg.Security))
	}
	{
		// Tenant routes
		v1.POST("/tenants", tenantHandler.CreateTenant)
		v1.GET("/tenants", tenantHandler.ListTenants)
		v1.GET("/tenants/:id", tenantHandler.GetTenant)
		v1.PATCH("/tenants/:id", tenantHandler.UpdateTenant)
		v1.DELETE("/tenants/:id", tenantHandler.DeleteTenant)
		v1.GET("/tenants/:id/connected", tenantHandler.ConnectedTenants)

		// Request routes
		requests := v1.Group("/requests")
		{
			requests.POST("", requestHandler.CreateRequest)
			requests.GET("", requestHandler.SearchRequests)
			requests.POST("/bulk", requestHandler.BulkUpload)
			requests.GET("/:id", requestHandler.GetRequest)
			requests.PATCH("/:id", requestHandler.UpdateRequest)
			requests.GET("/:id/log", requestHandler.GetRequestLog)
		}

		// Statistics routes
		v1.POST("/stats", statsHandler.CalculateStats)
	}

	return router
}

func corsMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && originAllowed(origin, cfg.AllowedOrigins) {
			c.Header("Access-Control-Allow-Origin", origin)
			if cfg.AllowCredentials {
				c.Header("Access-Control-Allow-Credentials", "true")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.Header("Access-Control-Allow-Methods", strings.Join(cfg.AllowedMethods, ", "))
			c.Header("Access-Control-Allow-Headers", strings.Join(cfg.AllowedHeaders, ", "))
			if cfg.MaxAge > 0 {
				c.Header("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
			}
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func originAllowed(origin string, allowed []string) bool {
	for _, candidate := range allowed {
		if candidate == "*" || candidate == origin {
			return true
		}
	}
	return false
}

func basicAuthMiddleware(security *config.SecurityConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok || !security.ValidateUser(username, password) {
			c.Header("WWW-Authenticate", `Basic realm="proxylink"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Code:    models.ErrCodeUnauthorized,
				Message: "Authentication required",
			})
			return
		}
		c.Next()
	}
}
