package services

import (
	"log"
	"sync"

	"forumx/internal/db"
	"forumx/internal/models"
)

// Notifier is a best-effort side channel: notifications are queued and
// persisted by a background worker, detached from the action that
// triggered them. A comment succeeds even when its notification fails.
type Notifier struct {
	queue chan models.Notification
}

var (
	notifier     *Notifier
	notifierOnce sync.Once
)

// GetNotifier returns the singleton and starts its worker on first use.
func GetNotifier() *Notifier {
	notifierOnce.Do(func() {
		notifier = &Notifier{
			queue: make(chan models.Notification, 1000),
		}
		go notifier.worker()
	})
	return notifier
}

// ShouldNotify suppresses self-notification for every type but system.
func ShouldNotify(recipientID, senderID uint, typ models.NotificationType) bool {
	if recipientID == senderID && typ != models.NotificationTypeSystem {
		return false
	}
	return true
}

// Notify enqueues a notification. Never blocks and never reports an
// error to the caller; a full queue drops the notification with a log
// line.
func (n *Notifier) Notify(recipientID, senderID uint, typ models.NotificationType, postID *uint, message, linkURL string) {
	if !ShouldNotify(recipientID, senderID, typ) {
		return
	}

	item := models.Notification{
		RecipientID: recipientID,
		SenderID:    senderID,
		Type:        typ,
		PostID:      postID,
		Message:     message,
		LinkURL:     linkURL,
	}

	select {
	case n.queue <- item:
	default:
		log.Printf("notification queue full, dropping %s for user %d", typ, recipientID)
	}
}

func (n *Notifier) worker() {
	for item := range n.queue {
		if err := db.DB.Create(&item).Error; err != nil {
			log.Printf("Failed to create notification: %v", err)
		}
	}
}
