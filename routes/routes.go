package routes

import (
	"time"

	"shineops/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// OperatorHandlers groups the operator-facing endpoint handlers.
type OperatorHandlers struct {
	Jobs         *handlers.JobsHandler
	Hours        *handlers.HoursHandler
	Analytics    *handlers.AnalyticsHandler
	Estimates    *handlers.EstimatesHandler
	Catalog      *handlers.CatalogHandler
	Availability *handlers.AvailabilityHandler
}

// RegisterOperatorRoutes registers the dashboard API. The calendar and jobs
// views operate on the same bookings collection as the public funnel.
func RegisterOperatorRoutes(r *gin.Engine, oh *OperatorHandlers) {
	api := r.Group("/api")
	{
		api.GET("/bookings", oh.Jobs.ListHandler)
		api.POST("/bookings", oh.Jobs.CreateHandler)
		api.GET("/bookings/:id", oh.Jobs.GetHandler)
		api.PATCH("/bookings/:id", oh.Jobs.UpdateHandler)
		api.DELETE("/bookings/:id", oh.Jobs.DeleteHandler)
		api.PUT("/bookings/:id/status", oh.Jobs.UpdateStatusHandler)
		api.PUT("/bookings/:id/checklist", oh.Jobs.SetChecklistHandler)
		api.PUT("/bookings/:id/checklist/toggle", oh.Jobs.ToggleChecklistItemHandler)

		api.GET("/kanban", oh.Jobs.KanbanHandler)
		api.PUT("/kanban/move", oh.Jobs.MoveCardHandler)

		api.GET("/availability", oh.Availability.SlotsHandler)

		api.GET("/hours", oh.Hours.GetHoursHandler)
		api.PUT("/hours", oh.Hours.SetHoursHandler)
		api.GET("/blocked-days", oh.Hours.ListBlockedDaysHandler)
		api.POST("/blocked-days/toggle", oh.Hours.ToggleBlockedDayHandler)

		api.GET("/analytics/summary", oh.Analytics.SummaryHandler)

		api.GET("/estimates", oh.Estimates.ListHandler)
		api.POST("/estimates", oh.Estimates.CreateHandler)
		api.GET("/estimates/:id", oh.Estimates.GetHandler)
		api.PATCH("/estimates/:id", oh.Estimates.UpdateHandler)
		api.DELETE("/estimates/:id", oh.Estimates.DeleteHandler)
		api.PUT("/estimates/:id/status", oh.Estimates.UpdateStatusHandler)
		api.POST("/estimates/:id/convert", oh.Estimates.ConvertHandler)

		api.GET("/services", oh.Catalog.ListServicesHandler)
		api.POST("/services", oh.Catalog.CreateServiceHandler)
		api.GET("/services/:id", oh.Catalog.GetServiceHandler)
		api.PATCH("/services/:id", oh.Catalog.UpdateServiceHandler)
		api.DELETE("/services/:id", oh.Catalog.DeleteServiceHandler)
		api.GET("/services/:id/add-ons", oh.Catalog.ListAddOnsHandler)
		api.POST("/services/:id/add-ons", oh.Catalog.CreateAddOnHandler)
		api.DELETE("/add-ons/:id", oh.Catalog.DeleteAddOnHandler)
	}
}

// RegisterHealthRoute registers the health endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// SetupRouter configures CORS and registers all route groups.
func SetupRouter(r *gin.Engine, fh *handlers.FunnelHandler, oh *OperatorHandlers) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Session-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterFunnelRoutes(r, fh, oh.Availability)
	RegisterOperatorRoutes(r, oh)
	RegisterHealthRoute(r)
}
