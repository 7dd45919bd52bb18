package handlers

import (
	"net/http"

	notificationRepo "meetblock/database/repository/notification"
	"meetblock/middleware"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// NotificationHandler serves the caller's in-app notifications.
type NotificationHandler struct {
	Repo notificationRepo.NotificationRepository
}

// NewNotificationHandler constructs a NotificationHandler.
func NewNotificationHandler(repo notificationRepo.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{Repo: repo}
}

// ListNotifications returns the caller's notifications, newest first.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	notifications, err := h.Repo.FindByUser(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list notifications", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// MarkNotificationRead marks one of the caller's notifications as read.
func (h *NotificationHandler) MarkNotificationRead(c *gin.Context) {
	err := h.Repo.MarkRead(c.Request.Context(), c.Param("id"), middleware.CallerID(c))
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification does not exist"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark notification read", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read."})
}
