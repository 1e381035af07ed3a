package handlers

import (
	"errors"
	"net/http"

	"shineops/services/analytics"
	"shineops/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AnalyticsHandler serves the dashboard's period comparison metrics.
type AnalyticsHandler struct {
	Service analytics.AnalyticsService
}

// NewAnalyticsHandler creates an AnalyticsHandler.
func NewAnalyticsHandler(svc analytics.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{Service: svc}
}

// SummaryHandler handles GET /api/analytics/summary?start=&end=. The window
// is [start, end); metric changes with no data in either period come back
// with a null percentage rather than 0.
func (h *AnalyticsHandler) SummaryHandler(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing window", "expected ?start=YYYY-MM-DD&end=YYYY-MM-DD")
		return
	}

	summary, err := h.Service.Summary(c.Request.Context(), start, end)
	if err != nil {
		if errors.Is(err, analytics.ErrInvalidWindow) {
			utils.JSONError(c, http.StatusBadRequest, "Invalid window", err.Error())
			return
		}
		utils.GetLogger().Error("Analytics summary failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute analytics summary"})
		return
	}
	c.JSON(http.StatusOK, summary)
}
