package routes

import (
	"time"

	"rideshare/handlers"
	"rideshare/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers sign-up, sign-in and profile endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.RegisterUserHandler)
		api.POST("/login", hb.AuthenticateUserHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.SessionAuthMiddleware(hb.Sessions))
		api.POST("/logout", hb.LogoutHandler)
		api.GET("/me", hb.GetProfileHandler)
		api.PUT("/me", hb.UpdateSettingsHandler)
	}
}

// RegisterRideRoutes registers ride sharing, search and seat booking.
func RegisterRideRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/rides")
	{
		api.Use(middleware.SessionAuthMiddleware(hb.Sessions))
		api.GET("", hb.ListBookableHandler)
		api.GET("/search", hb.SearchRidesHandler)
		api.GET("/mine", hb.ListMyRidesHandler)
		api.POST("", hb.ShareRideHandler)
		api.GET("/:id", hb.GetRideHandler)
		api.DELETE("/:id", hb.CancelRideHandler)
		api.GET("/:id/bookings", hb.RideBookingsHandler)
		api.POST("/:id/bookings", hb.BookRideHandler)
	}
}

// RegisterBookingRoutes registers booking cancellation and history.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.SessionAuthMiddleware(hb.Sessions))
		api.GET("/history", hb.BookingHistoryHandler)
		api.DELETE("/:id", hb.CancelBookingHandler)
	}
}

// RegisterNotificationRoutes registers the inbox and its websocket stream.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.SessionAuthMiddleware(hb.Sessions))
		api.GET("", hb.ListNotificationsHandler)
		api.PATCH("/:id/read", hb.MarkReadHandler)
	}
	r.GET("/ws/notifications", middleware.SessionAuthMiddleware(hb.Sessions), hb.NotificationStream)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterUserRoutes(r, hb)
	RegisterRideRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
