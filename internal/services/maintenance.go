package services

import (
	"log"
	"time"

	"forumx/internal/db"
	"forumx/internal/models"

	"github.com/robfig/cron/v3"
)

// notificationRetention is how long read notifications are kept.
const notificationRetention = 30 * 24 * time.Hour

// StartMaintenance schedules the nightly housekeeping job.
func StartMaintenance() *cron.Cron {
	c := cron.New()
	if _, err := c.AddFunc("30 3 * * *", PruneReadNotifications); err != nil {
		log.Fatalf("Failed to schedule maintenance: %v", err)
	}
	c.Start()
	return c
}

// PruneReadNotifications deletes read notifications past retention.
func PruneReadNotifications() {
	cutoff := time.Now().Add(-notificationRetention)
	result := db.DB.Where("is_read = ? AND created_at < ?", true, cutoff).
		Delete(&models.Notification{})
	if result.Error != nil {
		log.Printf("Failed to prune notifications: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Pruned %d read notifications", result.RowsAffected)
	}
}
