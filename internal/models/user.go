package models

import (
	"time"
)

type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Username   string    `gorm:"uniqueIndex;size:40;not null" json:"username"`
	Email      string    `gorm:"uniqueIndex;not null" json:"email"`
	Password   string    `gorm:"not null" json:"-"` // bcrypt hash
	Bio        string    `gorm:"size:200" json:"bio"`
	ProfilePic string    `json:"profile_pic"`
	BgPic      string    `json:"bg_pic"`
	IsAdmin    bool      `gorm:"default:false" json:"is_admin"`
	IsBanned   bool      `gorm:"default:false" json:"is_banned"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Currency holds a user's balance counter. Created alongside the user
// row at registration, credited when a content request they fulfilled
// is finished.
type Currency struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Balance   int       `gorm:"default:0" json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
