package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rooming-app/rooming/internal/models"
)

// GetNotifications returns the user's notifications, newest first
// GET /api/v1/notifications
func (h *Handlers) GetNotifications(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
		return
	}
	currentUser := user.(*models.User)

	notifications := h.notify.List(c.Request.Context(), currentUser.ID)

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"unread":        h.notify.UnreadCount(c.Request.Context(), currentUser.ID),
		"meta": gin.H{
			"count": len(notifications),
		},
	})
}

// GetUnreadCount returns just the unread badge count
// GET /api/v1/notifications/unread-count
func (h *Handlers) GetUnreadCount(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
		return
	}
	currentUser := user.(*models.User)

	c.JSON(http.StatusOK, gin.H{
		"unread": h.notify.UnreadCount(c.Request.Context(), currentUser.ID),
	})
}

// MarkNotificationRead marks one notification as read
// POST /api/v1/notifications/:id/read
func (h *Handlers) MarkNotificationRead(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
		return
	}
	currentUser := user.(*models.User)

	if err := h.notify.MarkRead(c.Request.Context(), currentUser.ID, c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_mark_read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// MarkAllNotificationsRead marks every notification as read
// POST /api/v1/notifications/read-all
func (h *Handlers) MarkAllNotificationsRead(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
		return
	}
	currentUser := user.(*models.User)

	if err := h.notify.MarkAllRead(c.Request.Context(), currentUser.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_mark_read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "all_notifications_marked_read",
	})
}
