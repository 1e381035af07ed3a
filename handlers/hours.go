package handlers

import (
	"net/http"

	blockedDayRepo "shineops/database/repository/blockedday"
	hoursRepo "shineops/database/repository/hours"
	"shineops/models"
	"shineops/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HoursHandler serves the operator's working-hours and blocked-day settings.
type HoursHandler struct {
	Hours       hoursRepo.HoursRepository
	BlockedDays blockedDayRepo.BlockedDayRepository
}

// NewHoursHandler creates a HoursHandler.
func NewHoursHandler(hours hoursRepo.HoursRepository, blocked blockedDayRepo.BlockedDayRepository) *HoursHandler {
	return &HoursHandler{Hours: hours, BlockedDays: blocked}
}

// GetHoursHandler handles GET /api/hours.
func (h *HoursHandler) GetHoursHandler(c *gin.Context) {
	rows, err := h.Hours.GetAll(c.Request.Context())
	if err != nil {
		utils.GetLogger().Error("Failed to fetch business hours", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch business hours"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"hours": rows})
}

// SetHoursHandler handles PUT /api/hours: upserts the weekday rows.
func (h *HoursHandler) SetHoursHandler(c *gin.Context) {
	var input struct {
		Hours []models.BusinessHours `json:"hours" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid hours", err.Error())
		return
	}

	if err := h.Hours.Upsert(c.Request.Context(), input.Hours); err != nil {
		utils.GetLogger().Error("Failed to update business hours", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update business hours"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"hours": input.Hours})
}

// ListBlockedDaysHandler handles GET /api/blocked-days.
func (h *HoursHandler) ListBlockedDaysHandler(c *gin.Context) {
	days, err := h.BlockedDays.List(c.Request.Context())
	if err != nil {
		utils.GetLogger().Error("Failed to fetch blocked days", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch blocked days"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"blockedDays": days})
}

// ToggleBlockedDayHandler handles POST /api/blocked-days/toggle. The toggle
// is idempotent pair-wise: toggling a date on then off restores the exact
// availability that existed before.
func (h *HoursHandler) ToggleBlockedDayHandler(c *gin.Context) {
	var input struct {
		Date   string `json:"date" binding:"required"`
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid blocked day", err.Error())
		return
	}

	blocked, err := h.BlockedDays.Toggle(c.Request.Context(), input.Date, input.Reason)
	if err != nil {
		utils.GetLogger().Error("Failed to toggle blocked day", zap.String("date", input.Date), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle blocked day"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": input.Date, "blocked": blocked})
}
