package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shineops/config"
	"shineops/cron"
	"shineops/database"
	blockedDayRepo "shineops/database/repository/blockedday"
	bookingRepo "shineops/database/repository/booking"
	catalogRepo "shineops/database/repository/catalog"
	estimateRepo "shineops/database/repository/estimate"
	hoursRepo "shineops/database/repository/hours"
	"shineops/handlers"
	"shineops/routes"
	"shineops/services/analytics"
	"shineops/services/estimates"
	"shineops/services/funnel"
	"shineops/services/jobs"
	"shineops/services/notification"
	"shineops/services/scheduling"
	"shineops/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitFunnelCache()

	// Background worker consuming notification dispatch tasks.
	cron.InitDispatchWorker()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	hours := hoursRepo.NewMongoHoursRepo()
	blockedDays := blockedDayRepo.NewMongoBlockedDayRepo()
	bookings := bookingRepo.NewMongoBookingRepo()
	catalog := catalogRepo.NewMongoCatalogRepo()
	estimatesStore := estimateRepo.NewMongoEstimateRepo()

	// services.
	engine := &scheduling.DefaultAvailabilityEngine{
		Hours:           hours,
		BlockedDays:     blockedDays,
		Bookings:        bookings,
		IntervalMinutes: config.AppConfig.SlotIntervalMinutes,
	}
	dispatcher := notification.NewAsynqDispatcher()
	defer dispatcher.Close()

	sessionTTL := time.Duration(config.AppConfig.FunnelSessionTTLMinutes) * time.Minute
	funnelSvc := &funnel.DefaultFunnelService{
		Store:      funnel.NewRedisSessionStore(utils.GetFunnelCacheClient(), sessionTTL),
		Catalog:    catalog,
		Bookings:   bookings,
		Engine:     engine,
		Dispatcher: dispatcher,
		TaxRate:    config.AppConfig.TaxRate,
	}
	jobSvc := &jobs.DefaultJobService{Repo: bookings}
	analyticsSvc := &analytics.DefaultAnalyticsService{Repo: bookings}
	estimateSvc := &estimates.DefaultEstimateService{
		Repo:       estimatesStore,
		Bookings:   bookings,
		Dispatcher: dispatcher,
	}

	// handlers.
	funnelHandler := handlers.NewFunnelHandler(funnelSvc)
	operatorHandlers := &routes.OperatorHandlers{
		Jobs:         handlers.NewJobsHandler(jobSvc),
		Hours:        handlers.NewHoursHandler(hours, blockedDays),
		Analytics:    handlers.NewAnalyticsHandler(analyticsSvc),
		Estimates:    handlers.NewEstimatesHandler(estimateSvc),
		Catalog:      handlers.NewCatalogHandler(catalog),
		Availability: handlers.NewAvailabilityHandler(engine),
	}

	routes.SetupRouter(router, funnelHandler, operatorHandlers)

	utils.StartHealthMonitor(utils.GetFunnelCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
