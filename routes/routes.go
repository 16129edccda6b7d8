package routes

import (
	"time"

	"slotwise/handlers"
	"slotwise/middleware"
	"slotwise/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers the public health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.Health)
}

// RegisterServiceRoutes sets up services, availability templates and slots.
func RegisterServiceRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	services := api.Group("/services")
	{
		services.POST("", middleware.RequireRole(utils.RoleProvider), hb.Availability.CreateService)
		services.GET("/:id/availability", hb.Availability.GetTemplate)
		services.PUT("/:id/availability", middleware.RequireRole(utils.RoleProvider), hb.Availability.ReplaceTemplate)
		services.GET("/:id/slots", hb.Availability.GetSlots)
	}
}

// RegisterReservationRoutes sets up the booking lifecycle endpoints.
func RegisterReservationRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	reservations := api.Group("/reservations")
	{
		reservations.POST("", middleware.RequireRole(utils.RoleUser), hb.Reservations.CreateReservation)
		reservations.GET("", hb.Reservations.ListReservations)
		reservations.GET("/:id", hb.Reservations.GetReservation)
		reservations.DELETE("/:id", middleware.RequireRole(utils.RoleUser, utils.RoleAdmin), hb.Reservations.DeleteReservation)

		provider := reservations.Group("/:id")
		provider.Use(middleware.RequireRole(utils.RoleProvider))
		provider.PATCH("/status", hb.Reservations.UpdateStatus)
		provider.PATCH("/progress", hb.Reservations.UpdateProgress)
		provider.POST("/arrival", hb.Reservations.RecordArrival)
	}
}

// RegisterProviderRoutes sets up read-only provider endpoints.
func RegisterProviderRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	providers := api.Group("/providers")
	{
		providers.GET("/:id/services", hb.Availability.ListProviderServices)
		providers.GET("/:id/tier", hb.Tiers.GetTier)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)

	api := r.Group("/api")
	api.Use(middleware.JWTAuthMiddleware())
	RegisterServiceRoutes(api, hb)
	RegisterReservationRoutes(api, hb)
	RegisterProviderRoutes(api, hb)
}
