package handlers

import (
	"errors"
	"net/http"

	bookingRepo "shineops/database/repository/booking"
	"shineops/models"
	"shineops/services/jobs"
	"shineops/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JobsHandler serves the operator's calendar and kanban views over the same
// bookings collection the public funnel writes to.
type JobsHandler struct {
	Service jobs.JobService
}

// NewJobsHandler creates a JobsHandler.
func NewJobsHandler(svc jobs.JobService) *JobsHandler {
	return &JobsHandler{Service: svc}
}

func jobError(c *gin.Context, err error) {
	if errors.Is(err, bookingRepo.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Booking not found", err.Error())
		return
	}
	utils.GetLogger().Error("Booking request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process booking request"})
}

// ListHandler handles GET /api/bookings. ?date=YYYY-MM-DD scopes to one day.
func (h *JobsHandler) ListHandler(c *gin.Context) {
	var (
		bookings []models.Booking
		err      error
	)
	if date := c.Query("date"); date != "" {
		bookings, err = h.Service.ListByDate(c.Request.Context(), date)
	} else {
		bookings, err = h.Service.List(c.Request.Context())
	}
	if err != nil {
		jobError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GetHandler handles GET /api/bookings/:id.
func (h *JobsHandler) GetHandler(c *gin.Context) {
	booking, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		jobError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// CreateHandler handles POST /api/bookings: manual booking by the operator.
func (h *JobsHandler) CreateHandler(c *gin.Context) {
	var input models.Booking
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking", err.Error())
		return
	}

	booking, err := h.Service.Create(c.Request.Context(), input)
	if err != nil {
		jobError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// UpdateHandler handles PATCH /api/bookings/:id.
func (h *JobsHandler) UpdateHandler(c *gin.Context) {
	var input models.Booking
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking", err.Error())
		return
	}
	input.ID = c.Param("id")

	if err := h.Service.Update(c.Request.Context(), input); err != nil {
		jobError(c, err)
		return
	}
	c.JSON(http.StatusOK, input)
}

// DeleteHandler handles DELETE /api/bookings/:id. Hard delete, explicit
// operator action only.
func (h *JobsHandler) DeleteHandler(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		jobError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateStatusHandler handles PUT /api/bookings/:id/status. Any known status
// is accepted from any current status.
func (h *JobsHandler) UpdateStatusHandler(c *gin.Context) {
	var input struct {
		Status models.BookingStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid status", err.Error())
		return
	}
	if !models.ValidStatus(input.Status) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid status", string(input.Status))
		return
	}

	if err := h.Service.UpdateStatus(c.Request.Context(), c.Param("id"), input.Status); err != nil {
		jobError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "status": input.Status})
}

// KanbanHandler handles GET /api/kanban: bookings grouped by board column.
func (h *JobsHandler) KanbanHandler(c *gin.Context) {
	board, err := h.Service.KanbanBoard(c.Request.Context())
	if err != nil {
		jobError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

// MoveCardHandler handles PUT /api/kanban/move: a drag-and-drop column move,
// which is a plain status write. The client applies the move optimistically
// and rolls back its local state when this request fails.
func (h *JobsHandler) MoveCardHandler(c *gin.Context) {
	var input struct {
		BookingID string            `json:"bookingId" binding:"required"`
		Column    jobs.KanbanColumn `json:"column" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid move", err.Error())
		return
	}

	if err := h.Service.MoveCard(c.Request.Context(), input.BookingID, input.Column); err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			jobError(c, err)
			return
		}
		utils.JSONError(c, http.StatusBadRequest, "Invalid move", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookingId": input.BookingID, "column": input.Column})
}

// SetChecklistHandler handles PUT /api/bookings/:id/checklist.
func (h *JobsHandler) SetChecklistHandler(c *gin.Context) {
	var input struct {
		Checklist []models.ChecklistItem `json:"checklist"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid checklist", err.Error())
		return
	}

	if err := h.Service.SetChecklist(c.Request.Context(), c.Param("id"), input.Checklist); err != nil {
		jobError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "checklist": input.Checklist})
}

// ToggleChecklistItemHandler handles PUT /api/bookings/:id/checklist/toggle.
func (h *JobsHandler) ToggleChecklistItemHandler(c *gin.Context) {
	var input struct {
		Index int `json:"index"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid checklist item", err.Error())
		return
	}

	booking, err := h.Service.ToggleChecklistItem(c.Request.Context(), c.Param("id"), input.Index)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			jobError(c, err)
			return
		}
		utils.JSONError(c, http.StatusBadRequest, "Invalid checklist item", err.Error())
		return
	}
	c.JSON(http.StatusOK, booking)
}
