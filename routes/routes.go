package routes

import (
	"net/http"
	"time"

	"slotbook/handlers"
	"slotbook/middleware"
	"slotbook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers login/logout endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/login", hb.Auth.LoginHandler)

		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("/logout", hb.Auth.LogoutHandler)
	}
}

// RegisterUserRoutes registers account endpoints. Reads require
// authentication; mutations require the admin role.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("/me", hb.Users.GetMeHandler)
		api.GET("/id/:id", hb.Users.GetUserByIDHandler)

		admin := api.Group("")
		admin.Use(middleware.AdminOnlyMiddleware())
		admin.GET("", hb.Users.ListUsersHandler)
		admin.POST("", hb.Users.CreateUserHandler)
		admin.PUT("/:id", hb.Users.UpdateUserHandler)
		admin.DELETE("/:id", hb.Users.DeleteUserHandler)
	}
}

// RegisterScheduleRoutes registers the weekly grid endpoint.
func RegisterScheduleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/schedule")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("/week", hb.Schedule.GetWeekHandler)
	}
}

// RegisterReservationRoutes registers the reservation lifecycle endpoints.
func RegisterReservationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reservations")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("", hb.Reservations.ListReservationsHandler)
		api.GET("/mine", hb.Reservations.MyReservationsHandler)
		api.POST("", hb.Reservations.CreateReservationHandler)
		api.PUT("/:id", hb.Reservations.UpdateReservationHandler)
		api.DELETE("/:id", hb.Reservations.DeleteReservationHandler)
	}
}

// RegisterCatalogRoutes registers slot catalog and track endpoints. Listing
// is open to authenticated users; catalog mutations are admin only.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	slots := r.Group("/api/creneaux")
	{
		slots.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		slots.GET("", hb.Catalog.ListSlotsHandler)

		admin := slots.Group("")
		admin.Use(middleware.AdminOnlyMiddleware())
		admin.POST("", hb.Catalog.CreateSlotHandler)
		admin.DELETE("/:id", hb.Catalog.DeleteSlotHandler)
	}

	tracks := r.Group("/api/filieres")
	{
		tracks.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		tracks.GET("", hb.Catalog.ListTracksHandler)

		admin := tracks.Group("")
		admin.Use(middleware.AdminOnlyMiddleware())
		admin.POST("", hb.Catalog.CreateTrackHandler)
		admin.DELETE("/:id", hb.Catalog.DeleteTrackHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterScheduleRoutes(r, hb)
	RegisterReservationRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterHealthRoute(r)
}
