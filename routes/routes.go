package routes

import (
	"time"

	userRepo "meetblock/database/repository/user"
	"meetblock/handlers"
	"meetblock/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSConfig returns the CORS policy applied to all routes.
func NewCORSConfig() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowAllOrigins = true
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-User-ID"}
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE"}
	cfg.MaxAge = 12 * time.Hour
	return cfg
}

// RegisterTimeBlockRoutes registers scheduling endpoints.
func RegisterTimeBlockRoutes(r *gin.Engine, h *handlers.TimeBlockHandler, users userRepo.UserRepository) {
	api := r.Group("/api/timeblocks")
	api.Use(middleware.IdentityMiddleware(users))
	{
		api.GET("", h.ListTimeBlocks)
		api.GET("/occurred", h.ListOccurred)
		api.GET("/met/check", h.ListNeedingMetResponse)
		api.GET("/unclaimed/:userId", h.ListUnclaimed)
		api.GET("/requests/sent", h.ListSentRequests)
		api.GET("/requests/received", h.ListReceivedRequests)
		api.GET("/upcoming", h.ListUpcoming)
		api.GET("/stats/:userId", h.GetStats)
		api.GET("/access/:userId", h.GetCalendarAccess)
		api.GET("/availability/:userId", h.GetOpenAvailability)

		api.PUT("", h.CreateTimeBlock)
		api.DELETE("/:timeBlockId", h.DeleteTimeBlock)
		api.PATCH("/request/:timeBlockId", h.RequestTimeBlock)
		api.PATCH("/unsend/:timeBlockId", h.UnsendRequest)
		api.PATCH("/respond/:timeBlockId", h.RespondToRequest)
		api.PATCH("/cancel/:timeBlockId", h.CancelMeeting)
		api.PATCH("/met/:timeBlockId", h.MarkMeetingMet)
	}
}

// RegisterUserRoutes registers the user-resolution boundary endpoints.
func RegisterUserRoutes(r *gin.Engine, h *handlers.UserHandler) {
	api := r.Group("/api/users")
	{
		api.POST("", h.CreateUser)
		api.GET("/id/:id", h.GetUserByID)
	}
}

// RegisterNotificationRoutes registers in-app notification endpoints.
func RegisterNotificationRoutes(r *gin.Engine, h *handlers.NotificationHandler, users userRepo.UserRepository) {
	api := r.Group("/api/notifications")
	api.Use(middleware.IdentityMiddleware(users))
	{
		api.GET("", h.ListNotifications)
		api.PATCH("/read/:id", h.MarkNotificationRead)
	}
}
