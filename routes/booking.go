package routes

import (
	"shineops/handlers"
	"shineops/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterFunnelRoutes registers the public multi-step booking flow. Every
// step reads and writes the shared funnel session via the X-Session-ID
// header; the group is rate limited per client IP.
func RegisterFunnelRoutes(r *gin.Engine, fh *handlers.FunnelHandler, ah *handlers.AvailabilityHandler) {
	book := r.Group("/book")
	book.Use(middleware.RateLimitMiddleware())
	{
		book.POST("", fh.StartHandler)   // Step 1: choose service, open session
		book.GET("", fh.GetHandler)      // Resume: session + running quote
		book.DELETE("", fh.AbandonHandler)

		book.POST("/vehicle", fh.SetVehiclesHandler)  // Step 2
		book.POST("/options", fh.SetOptionsHandler)   // Step 3 (skipped when the service has no option groups)
		book.POST("/add-ons", fh.SetAddOnsHandler)    // Step 4

		book.GET("/booking/slots", ah.SlotsHandler)   // Step 5: availability for a date
		book.POST("/booking", fh.SetScheduleHandler)  // Step 5: choose date/time
		book.POST("/checkout", fh.CheckoutHandler)    // Step 6: submit
	}
}
