package models

import (
	"time"
)

// Forum is a category tag. Forums sharing a header are displayed as one
// group on the categories page.
type Forum struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"` // creator
	Title     string    `gorm:"not null" json:"title"`
	Header    string    `gorm:"size:60;index" json:"header"`
	Bio       string    `gorm:"size:200" json:"bio"`
	OrderBy   int       `gorm:"default:0" json:"order_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostCategory is the posts×forums bridge. The (post_id, forum_id) pair
// is unique.
type PostCategory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index;uniqueIndex:idx_post_forum" json:"post_id"`
	ForumID   uint      `gorm:"not null;index;uniqueIndex:idx_post_forum" json:"forum_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (PostCategory) TableName() string {
	return "post_categories"
}
