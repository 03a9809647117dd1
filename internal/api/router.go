package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/revenuereports/internal/api/handlers"
	"github.com/jafarshop/revenuereports/internal/api/middleware"
	"github.com/jafarshop/revenuereports/internal/config"
	"github.com/jafarshop/revenuereports/internal/service"
	"github.com/jafarshop/revenuereports/internal/shopify"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, client *shopify.Client, reports *service.ReportService, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(loggingMiddleware(logger))

	// Root: friendly response so GET / returns 200 instead of 404
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Revenue Reports API",
			"endpoints": []string{
				"GET /health",
				"GET /api/customers",
				"GET /api/orders",
				"POST /api/report",
				"GET /api/debug/orders/:id",
				"GET /api/debug/orders/:id/metafields",
				"GET /api/debug/orders/:id/fulfillments",
				"GET /api/debug/customers/:id/orders",
			},
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	apiRoutes := router.Group("/api")
	{
		apiRoutes.GET("/customers", handlers.HandleListCustomers(client, logger))
		apiRoutes.GET("/orders", handlers.HandleListOrders(reports, logger))
		apiRoutes.POST("/report", handlers.HandleGenerateReport(reports, logger))

		// Raw upstream passthroughs for diagnosing metafield/fulfillment shapes
		debugRoutes := apiRoutes.Group("/debug")
		{
			debugRoutes.GET("/orders/:id", handlers.HandleDebugOrder(client, logger))
			debugRoutes.GET("/orders/:id/metafields", handlers.HandleDebugOrderMetafields(client, logger))
			debugRoutes.GET("/orders/:id/fulfillments", handlers.HandleDebugOrderFulfillments(client, logger))
			debugRoutes.GET("/customers/:id/orders", handlers.HandleDebugCustomerOrders(client, logger))
		}
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.String("request_id", middleware.GetRequestID(c)),
		)
	}
}
