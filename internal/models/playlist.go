package models

import (
	"time"
)

// Playlist is a user-curated collection of posts. Only the owner may
// mutate it; public playlists are readable by anyone.
type Playlist struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	IsPublic  bool      `gorm:"default:false" json:"is_public"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ItemCount int `gorm:"-" json:"item_count"`
}

type PlaylistItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PlaylistID uint      `gorm:"not null;index;uniqueIndex:idx_playlist_post" json:"playlist_id"`
	PostID     uint      `gorm:"not null;index;uniqueIndex:idx_playlist_post" json:"post_id"`
	Post       Post      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"post"`
	CreatedAt  time.Time `json:"created_at"`
}
