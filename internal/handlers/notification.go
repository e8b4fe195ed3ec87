package handlers

import (
	"net/http"

	"forumx/internal/db"
	"forumx/internal/models"
	"forumx/internal/utils"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct{}

func NewNotificationHandler() *NotificationHandler {
	return &NotificationHandler{}
}

const notificationsShown = 15

// List returns the caller's latest notifications with sender info.
func (h *NotificationHandler) List(c *gin.Context) {
	user := currentUser(c)

	var notifications []models.Notification
	db.DB.Preload("Sender").
		Where("recipient_id = ?", user.ID).
		Order("created_at DESC").
		Limit(notificationsShown).
		Find(&notifications)

	var unread int64
	db.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", user.ID, false).
		Count(&unread)

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"unread_count":  unread,
	})
}

// MarkRead marks one of the caller's notifications read. Scoping by
// recipient in the WHERE clause keeps other users' rows untouchable.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	user := currentUser(c)
	notifID := utils.StringToInt(c.Param("id"))

	result := db.DB.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", notifID, user.ID).
		Update("is_read", true)
	if result.Error != nil {
		jsonError(c, http.StatusInternalServerError, "update failed")
		return
	}
	if result.RowsAffected == 0 {
		notFoundJSON(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "marked read"})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	user := currentUser(c)

	err := db.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", user.ID, false).
		Update("is_read", true).Error
	if err != nil {
		jsonError(c, http.StatusInternalServerError, "update failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "all marked read"})
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	notifID := utils.StringToInt(c.Param("id"))

	result := db.DB.
		Where("id = ? AND recipient_id = ?", notifID, user.ID).
		Delete(&models.Notification{})
	if result.Error != nil {
		jsonError(c, http.StatusInternalServerError, "delete failed")
		return
	}
	if result.RowsAffected == 0 {
		notFoundJSON(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (h *NotificationHandler) Clear(c *gin.Context) {
	user := currentUser(c)

	err := db.DB.
		Where("recipient_id = ?", user.ID).
		Delete(&models.Notification{}).Error
	if err != nil {
		jsonError(c, http.StatusInternalServerError, "delete failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "cleared"})
}
