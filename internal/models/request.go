package models

import (
	"time"
)

type RequestStatus string

const (
	RequestOpen     RequestStatus = "open"
	RequestPending  RequestStatus = "pending"
	RequestFinished RequestStatus = "finished"
)

// ContentRequest is a three-state workflow: any non-owner may move an
// open request to pending by supplying a post; only the requester may
// move pending to finished.
type ContentRequest struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	RequesterID uint          `gorm:"not null;index" json:"requester_id"`
	Requester   User          `gorm:"foreignKey:RequesterID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"requester"`
	Message     string        `gorm:"type:text;not null" json:"message"`
	Status      RequestStatus `gorm:"type:varchar(10);default:'open';index" json:"status"`
	FulfillerID *uint         `gorm:"index" json:"fulfiller_id"`
	Fulfiller   *User         `gorm:"foreignKey:FulfillerID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"fulfiller"`
	PostID      *uint         `gorm:"index" json:"post_id"`
	Post        *Post         `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"post"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
