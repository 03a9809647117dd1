package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/revenuereports/internal/shopify"
)

// Debug endpoints expose raw upstream query results for diagnostics. No
// aggregation, the GraphQL data object is returned as-is.

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a positive integer"})
		return 0, false
	}
	return id, true
}

// HandleDebugOrder handles GET /api/debug/orders/:id
func HandleDebugOrder(client *shopify.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := parseIDParam(c)
		if !ok {
			return
		}
		variables := map[string]interface{}{"id": shopify.OrderGID(orderID)}
		resp, err := client.Execute(c.Request.Context(), shopify.OrderNodeQuery, variables)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", resp.Data)
	}
}

// HandleDebugOrderMetafields handles GET /api/debug/orders/:id/metafields
func HandleDebugOrderMetafields(client *shopify.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := parseIDParam(c)
		if !ok {
			return
		}
		variables := map[string]interface{}{"id": shopify.OrderGID(orderID)}
		resp, err := client.Execute(c.Request.Context(), shopify.OrderMetafieldsQuery, variables)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", resp.Data)
	}
}

// HandleDebugOrderFulfillments handles GET /api/debug/orders/:id/fulfillments
func HandleDebugOrderFulfillments(client *shopify.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := parseIDParam(c)
		if !ok {
			return
		}
		variables := map[string]interface{}{"id": shopify.OrderGID(orderID)}
		resp, err := client.Execute(c.Request.Context(), shopify.OrderFulfillmentsQuery, variables)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", resp.Data)
	}
}

// HandleDebugCustomerOrders handles GET /api/debug/customers/:id/orders
func HandleDebugCustomerOrders(client *shopify.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := parseIDParam(c)
		if !ok {
			return
		}
		// Search query must be a string literal in the document
		query := fmt.Sprintf(shopify.CustomerOrdersQueryTemplate, fmt.Sprintf("customer_id:%d", customerID))
		resp, err := client.Execute(c.Request.Context(), query, nil)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", resp.Data)
	}
}
