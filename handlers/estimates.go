package handlers

import (
	"errors"
	"net/http"

	estimateRepo "shineops/database/repository/estimate"
	"shineops/models"
	"shineops/services/estimates"
	"shineops/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EstimatesHandler serves the operator's estimate management.
type EstimatesHandler struct {
	Service estimates.EstimateService
}

// NewEstimatesHandler creates an EstimatesHandler.
func NewEstimatesHandler(svc estimates.EstimateService) *EstimatesHandler {
	return &EstimatesHandler{Service: svc}
}

func estimateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, estimateRepo.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Estimate not found", err.Error())
	case errors.Is(err, estimates.ErrNotConvertible):
		utils.JSONError(c, http.StatusConflict, "Estimate cannot be converted", err.Error())
	default:
		utils.GetLogger().Error("Estimate request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process estimate request"})
	}
}

// ListHandler handles GET /api/estimates.
func (h *EstimatesHandler) ListHandler(c *gin.Context) {
	list, err := h.Service.List(c.Request.Context())
	if err != nil {
		estimateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"estimates": list})
}

// GetHandler handles GET /api/estimates/:id.
func (h *EstimatesHandler) GetHandler(c *gin.Context) {
	est, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		estimateError(c, err)
		return
	}
	c.JSON(http.StatusOK, est)
}

// CreateHandler handles POST /api/estimates.
func (h *EstimatesHandler) CreateHandler(c *gin.Context) {
	var input models.Estimate
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid estimate", err.Error())
		return
	}

	est, err := h.Service.Create(c.Request.Context(), input)
	if err != nil {
		estimateError(c, err)
		return
	}
	c.JSON(http.StatusCreated, est)
}

// UpdateHandler handles PATCH /api/estimates/:id.
func (h *EstimatesHandler) UpdateHandler(c *gin.Context) {
	var input models.Estimate
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid estimate", err.Error())
		return
	}
	input.ID = c.Param("id")

	est, err := h.Service.Update(c.Request.Context(), input)
	if err != nil {
		estimateError(c, err)
		return
	}
	c.JSON(http.StatusOK, est)
}

// DeleteHandler handles DELETE /api/estimates/:id.
func (h *EstimatesHandler) DeleteHandler(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		estimateError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateStatusHandler handles PUT /api/estimates/:id/status.
func (h *EstimatesHandler) UpdateStatusHandler(c *gin.Context) {
	var input struct {
		Status models.EstimateStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid status", err.Error())
		return
	}

	est, err := h.Service.UpdateStatus(c.Request.Context(), c.Param("id"), input.Status)
	if err != nil {
		estimateError(c, err)
		return
	}
	c.JSON(http.StatusOK, est)
}

// ConvertHandler handles POST /api/estimates/:id/convert.
func (h *EstimatesHandler) ConvertHandler(c *gin.Context) {
	var input struct {
		Date            string `json:"date" binding:"required"`
		Time            string `json:"time" binding:"required"`
		DurationMinutes int    `json:"durationMinutes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid conversion request", err.Error())
		return
	}

	booking, err := h.Service.ConvertToBooking(c.Request.Context(), c.Param("id"), input.Date, input.Time, input.DurationMinutes)
	if err != nil {
		estimateError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}
