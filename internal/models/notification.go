package models

import (
	"time"
)

type NotificationType string

const (
	NotificationTypeComment   NotificationType = "comment"
	NotificationTypeRqPending NotificationType = "rq_pending"
	NotificationTypeRqFinish  NotificationType = "rq_finish"
	NotificationTypeSystem    NotificationType = "system"
)

// Notification is a directed edge from sender to recipient with a
// precomposed message. Self-notification is suppressed for every type
// except system.
type Notification struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	RecipientID uint             `gorm:"not null;index" json:"recipient_id"`
	Recipient   User             `gorm:"foreignKey:RecipientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"recipient"`
	SenderID    uint             `gorm:"index" json:"sender_id"`
	Sender      User             `gorm:"foreignKey:SenderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"sender"`
	Type        NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	PostID      *uint            `gorm:"index" json:"post_id"`
	Message     string           `gorm:"type:text;not null" json:"message"`
	LinkURL     string           `json:"link_url"`
	IsRead      bool             `gorm:"default:false;index" json:"is_read"`
	CreatedAt   time.Time        `json:"created_at"`
}
