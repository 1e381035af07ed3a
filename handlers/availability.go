package handlers

import (
	"errors"
	"net/http"

	"shineops/models"
	"shineops/services/scheduling"
	"shineops/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvailabilityHandler serves slot lookups for both the public funnel's
// date/time step and the operator calendar.
type AvailabilityHandler struct {
	Engine scheduling.AvailabilityEngine
}

// NewAvailabilityHandler creates an AvailabilityHandler.
func NewAvailabilityHandler(engine scheduling.AvailabilityEngine) *AvailabilityHandler {
	return &AvailabilityHandler{Engine: engine}
}

// SlotsHandler handles GET /api/availability?date=YYYY-MM-DD. Store read
// failures fail soft: the customer sees zero slots, indistinguishable from a
// fully booked day, and the error is logged.
func (h *AvailabilityHandler) SlotsHandler(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing date", "expected ?date=YYYY-MM-DD")
		return
	}

	slots, err := h.Engine.SlotsForDate(c.Request.Context(), date)
	if err != nil {
		if errors.Is(err, scheduling.ErrInvalidDate) {
			utils.JSONError(c, http.StatusBadRequest, "Invalid date", err.Error())
			return
		}
		utils.GetLogger().Error("Slot lookup failed", zap.String("date", date), zap.Error(err))
		slots = []models.Slot{}
	}

	c.JSON(http.StatusOK, gin.H{"date": date, "slots": slots})
}
