package handlers

import (
	"errors"
	"net/http"

	"shineops/models"
	"shineops/services/funnel"
	"shineops/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// sessionHeader carries the funnel session token between step renders.
const sessionHeader = "X-Session-ID"

// FunnelHandler serves the public multi-step booking flow.
type FunnelHandler struct {
	Service funnel.FunnelService
}

// NewFunnelHandler creates a FunnelHandler.
func NewFunnelHandler(svc funnel.FunnelService) *FunnelHandler {
	return &FunnelHandler{Service: svc}
}

// sessionID extracts the session token from the request.
func sessionID(c *gin.Context) string {
	return c.GetHeader(sessionHeader)
}

// funnelError maps funnel service errors onto HTTP statuses. A slot
// conflict sends the customer back to the date/time step with the session
// otherwise intact.
func funnelError(c *gin.Context, err error) {
	var validationErr *funnel.ValidationError
	var stepErr *funnel.StepLockedError

	switch {
	case errors.As(err, &validationErr), errors.As(err, &stepErr):
		utils.JSONError(c, http.StatusBadRequest, "Invalid selection", err.Error())
	case errors.Is(err, funnel.ErrSlotTaken):
		c.JSON(http.StatusConflict, gin.H{
			"error":        "This time is no longer available, please pick another.",
			"returnToStep": models.StepSchedule,
		})
	case errors.Is(err, funnel.ErrSessionNotFound):
		utils.JSONError(c, http.StatusNotFound, "Booking session not found or expired", "start the booking flow again")
	default:
		utils.GetLogger().Error("Funnel request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong, please try again."})
	}
}

// StartHandler handles POST /book.
func (h *FunnelHandler) StartHandler(c *gin.Context) {
	var input struct {
		ServiceID string `json:"serviceId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	sess, err := h.Service.Start(c.Request.Context(), input.ServiceID)
	if err != nil {
		funnelError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

// GetHandler handles GET /book: the current session, for resuming any step.
func (h *FunnelHandler) GetHandler(c *gin.Context) {
	sess, err := h.Service.Get(c.Request.Context(), sessionID(c))
	if err != nil {
		funnelError(c, err)
		return
	}

	quote, err := h.Service.Quote(c.Request.Context(), sess)
	if err != nil {
		funnelError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": sess, "quote": quote})
}

// SetVehiclesHandler handles POST /book/vehicle.
func (h *FunnelHandler) SetVehiclesHandler(c *gin.Context) {
	var input struct {
		Vehicles []models.Vehicle `json:"vehicles"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	sess, err := h.Service.SetVehicles(c.Request.Context(), sessionID(c), input.Vehicles)
	if err != nil {
		funnelError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// SetOptionsHandler handles POST /book/options.
func (h *FunnelHandler) SetOptionsHandler(c *gin.Context) {
	var input struct {
		Options map[string]models.OptionSelection `json:"options"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	sess, err := h.Service.SetOptions(c.Request.Context(), sessionID(c), input.Options)
	if err != nil {
		funnelError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// SetAddOnsHandler handles POST /book/add-ons.
func (h *FunnelHandler) SetAddOnsHandler(c *gin.Context) {
	var input struct {
		AddOnIDs []string `json:"addOnIds"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	sess, err := h.Service.SetAddOns(c.Request.Context(), sessionID(c), input.AddOnIDs)
	if err != nil {
		funnelError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// SetScheduleHandler handles POST /book/booking.
func (h *FunnelHandler) SetScheduleHandler(c *gin.Context) {
	var input struct {
		Date string `json:"date" binding:"required"`
		Time string `json:"time"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	sess, err := h.Service.SetSchedule(c.Request.Context(), sessionID(c), input.Date, input.Time)
	if err != nil {
		funnelError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// CheckoutHandler handles POST /book/checkout.
func (h *FunnelHandler) CheckoutHandler(c *gin.Context) {
	var input models.CustomerDetails
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	booking, err := h.Service.Checkout(c.Request.Context(), sessionID(c), input)
	if err != nil {
		funnelError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// AbandonHandler handles DELETE /book. Abandoning performs no cleanup beyond
// discarding the session.
func (h *FunnelHandler) AbandonHandler(c *gin.Context) {
	if err := h.Service.Abandon(c.Request.Context(), sessionID(c)); err != nil {
		funnelError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
