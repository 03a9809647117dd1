package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/revenuereports/internal/shopify"
)

// HandleListCustomers handles GET /api/customers?since_id=
// Returns a single upstream page of 250; the caller drives further
// pagination via since_id.
func HandleListCustomers(client *shopify.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sinceID int64
		if raw := c.Query("since_id"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "since_id must be a non-negative integer"})
				return
			}
			sinceID = id
		}

		customers, err := client.ListCustomers(c.Request.Context(), sinceID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"customers": customers,
			"count":     len(customers),
			"hasMore":   len(customers) == shopify.PageSize,
		})
	}
}
