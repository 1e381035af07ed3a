package handlers

import (
	"errors"
	"net/http"

	catalogRepo "shineops/database/repository/catalog"
	"shineops/models"
	"shineops/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler serves the service catalogue: reads for the funnel's
// pricing inputs, writes for the operator's content management.
type CatalogHandler struct {
	Repo catalogRepo.CatalogRepository
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(repo catalogRepo.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{Repo: repo}
}

func catalogError(c *gin.Context, err error) {
	if errors.Is(err, catalogRepo.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
		return
	}
	utils.GetLogger().Error("Catalog request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process catalog request"})
}

// ListServicesHandler handles GET /api/services.
func (h *CatalogHandler) ListServicesHandler(c *gin.Context) {
	services, err := h.Repo.ListServices(c.Request.Context())
	if err != nil {
		catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// GetServiceHandler handles GET /api/services/:id.
func (h *CatalogHandler) GetServiceHandler(c *gin.Context) {
	svc, err := h.Repo.GetServiceByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// CreateServiceHandler handles POST /api/services.
func (h *CatalogHandler) CreateServiceHandler(c *gin.Context) {
	var input models.Service
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid service", err.Error())
		return
	}

	id, err := h.Repo.CreateService(c.Request.Context(), input)
	if err != nil {
		catalogError(c, err)
		return
	}
	input.ID = id
	c.JSON(http.StatusCreated, input)
}

// UpdateServiceHandler handles PATCH /api/services/:id.
func (h *CatalogHandler) UpdateServiceHandler(c *gin.Context) {
	var input models.Service
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid service", err.Error())
		return
	}
	input.ID = c.Param("id")

	if err := h.Repo.UpdateService(c.Request.Context(), input); err != nil {
		catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, input)
}

// DeleteServiceHandler handles DELETE /api/services/:id.
func (h *CatalogHandler) DeleteServiceHandler(c *gin.Context) {
	if err := h.Repo.DeleteService(c.Request.Context(), c.Param("id")); err != nil {
		catalogError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListAddOnsHandler handles GET /api/services/:id/add-ons.
func (h *CatalogHandler) ListAddOnsHandler(c *gin.Context) {
	addOns, err := h.Repo.ListAddOns(c.Request.Context(), c.Param("id"))
	if err != nil {
		catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"addOns": addOns})
}

// CreateAddOnHandler handles POST /api/services/:id/add-ons.
func (h *CatalogHandler) CreateAddOnHandler(c *gin.Context) {
	var input models.AddOn
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid add-on", err.Error())
		return
	}
	input.ServiceID = c.Param("id")

	id, err := h.Repo.CreateAddOn(c.Request.Context(), input)
	if err != nil {
		catalogError(c, err)
		return
	}
	input.ID = id
	c.JSON(http.StatusCreated, input)
}

// DeleteAddOnHandler handles DELETE /api/add-ons/:id.
func (h *CatalogHandler) DeleteAddOnHandler(c *gin.Context) {
	if err := h.Repo.DeleteAddOn(c.Request.Context(), c.Param("id")); err != nil {
		catalogError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
