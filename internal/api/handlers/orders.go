package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/revenuereports/internal/service"
)

// HandleListOrders handles GET /api/orders?start=&end=&customerId=
// Auto-paginates upstream up to the safety ceiling and returns all fulfilled
// orders in the window.
func HandleListOrders(reports *service.ReportService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start, end, err := service.ParseDateRange(c.Query("start"), c.Query("end"))
		if err != nil {
			respondError(c, logger, err)
			return
		}

		var customerID int64
		if raw := c.Query("customerId"); raw != "" {
			id, parseErr := strconv.ParseInt(raw, 10, 64)
			if parseErr != nil || id <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "customerId must be a positive integer"})
				return
			}
			customerID = id
		}

		orders, err := reports.FetchOrders(c.Request.Context(), start, end, customerID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		resp := gin.H{
			"orders": orders,
			"count":  len(orders),
			"dateRange": gin.H{
				"start": start,
				"end":   end,
			},
		}
		if customerID > 0 {
			resp["customerId"] = customerID
		}
		c.JSON(http.StatusOK, resp)
	}
}
