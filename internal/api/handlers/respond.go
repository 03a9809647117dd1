package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/jafarshop/revenuereports/pkg/errors"
)

// respondError maps service errors to HTTP responses: validation errors are
// 400, upstream failures propagate the upstream status and payload (500 when
// no status was received), anything else is a plain 500.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var vErr *apperrors.ErrValidation
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
		return
	}

	var uErr *apperrors.UpstreamError
	if errors.As(err, &uErr) {
		status := uErr.StatusCode
		if status < 400 {
			status = http.StatusInternalServerError
		}
		logger.Error("Upstream call failed", zap.Int("upstream_status", uErr.StatusCode), zap.Error(err))
		body := gin.H{"error": "upstream request failed"}
		if len(uErr.Payload) > 0 {
			if json.Valid(uErr.Payload) {
				body["upstream"] = json.RawMessage(uErr.Payload)
			} else {
				body["upstream"] = string(uErr.Payload)
			}
		} else if uErr.Message != "" {
			body["upstream"] = uErr.Message
		}
		c.JSON(status, body)
		return
	}

	logger.Error("Request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
