package routes

import (
	"net/http"
	"time"

	"hively/handlers"
	"hively/middleware"
	"hively/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// HandlerBundle collects the handlers wired up in main.
type HandlerBundle struct {
	User      *handlers.UserHandler
	Workspace *handlers.WorkspaceHandler
	Booking   *handlers.BookingHandler
	AuthCache *redis.Client
}

// RegisterUserRoutes registers identity endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.User.Register)
		api.POST("/login", hb.User.Login)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware(hb.AuthCache))
		api.GET("/me", hb.User.Me)
		api.POST("/logout", hb.User.Logout)
	}
}

// RegisterWorkspaceRoutes registers catalog endpoints. Reads are public;
// writes require an admin token.
func RegisterWorkspaceRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/workspaces")
	{
		api.GET("", hb.Workspace.ListWorkspaces)
		api.GET("/:id", hb.Workspace.GetWorkspace)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.AuthCache), middleware.RequireAdmin())
		protected.POST("", hb.Workspace.CreateWorkspace)
		protected.PUT("/:id", hb.Workspace.UpdateWorkspace)
		protected.DELETE("/:id", hb.Workspace.ArchiveWorkspace)
	}
}

// RegisterBookingRoutes registers the reservation engine's endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/reservations")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.AuthCache))
		api.POST("/availability", hb.Booking.CheckAvailability)
		api.POST("", hb.Booking.CreateReservation)
		api.GET("", hb.Booking.ListReservations)
		api.POST("/:id/cancel", hb.Booking.CancelReservation)
		api.PUT("/:id/reschedule", hb.Booking.RescheduleReservation)
		api.GET("/recommendations", hb.Booking.Recommendations)

		admin := api.Group("")
		admin.Use(middleware.RequireAdmin())
		admin.POST("/:id/confirm", hb.Booking.ConfirmReservation)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterUserRoutes(r, hb)
	RegisterWorkspaceRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterHealthRoute(r)
}
