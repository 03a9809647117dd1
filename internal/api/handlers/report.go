package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/revenuereports/internal/service"
)

// ReportRequest is the POST /api/report body
type ReportRequest struct {
	Start      string `json:"start"`
	End        string `json:"end"`
	Metric     string `json:"metric"`
	CustomerID string `json:"customerId,omitempty"`
}

// HandleGenerateReport handles POST /api/report. All input validation
// happens before the first upstream call.
func HandleGenerateReport(reports *service.ReportService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ReportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		params, err := service.ParseReportParams(req.Start, req.End, req.Metric, req.CustomerID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		report, err := reports.GenerateReport(c.Request.Context(), params)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, report)
	}
}
