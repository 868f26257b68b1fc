// File: hively/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hively/config"
	"hively/cron"
	"hively/database"
	reservationRepo "hively/database/repository/reservation"
	userRepoPkg "hively/database/repository/user"
	workspaceRepoPkg "hively/database/repository/workspace"
	"hively/handlers"
	"hively/middleware"
	"hively/routes"
	"hively/services/booking"
	"hively/services/user"
	"hively/services/workspace"
	"hively/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	wsRepo := workspaceRepoPkg.NewMongoWorkspaceRepo()
	resRepo := reservationRepo.NewMongoReservationRepo()
	usrRepo := userRepoPkg.NewMongoUserRepo()

	// services.
	userService := &user.DefaultUserService{
		Repo:      usrRepo,
		AuthCache: utils.GetAuthCacheClient(),
	}
	workspaceService := &workspace.DefaultWorkspaceService{
		Repo:  wsRepo,
		Cache: utils.GetCacheClient(),
	}
	bookingService := &booking.DefaultBookingService{
		Reservations: resRepo,
		Workspaces:   wsRepo,
	}

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		User:      handlers.NewUserHandler(userService),
		Workspace: handlers.NewWorkspaceHandler(workspaceService),
		Booking:   handlers.NewBookingHandler(bookingService, logger),
		AuthCache: utils.GetAuthCacheClient(),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background workers.
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	cron.StartCompletionSweeper(workerCtx, bookingService)
	utils.StartHealthMonitor(database.MongoClient, utils.GetCacheClient(), utils.GetAuthCacheClient())

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
	stopWorkers()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
