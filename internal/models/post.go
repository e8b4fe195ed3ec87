package models

import (
	"time"
)

type PostStatus int

// The old schema overloaded a single "deleted" flag for both drafts and
// removed posts. Kept as a tagged status instead.
const (
	PostPublished PostStatus = 0
	PostDraft     PostStatus = 1
	PostRemoved   PostStatus = 2
)

const MaxImagesPerPost = 5

type Post struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	User      User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Title     string     `gorm:"not null" json:"title"`
	Content   string     `gorm:"type:text" json:"content"`
	URL       string     `json:"url"` // Optional external link
	Status    PostStatus `gorm:"default:0;index" json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Images     []PostImage `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"images"`
	Categories []Forum     `gorm:"many2many:post_categories;" json:"categories"`

	// Filled by queries, not stored
	CommentCount int `gorm:"-" json:"comment_count"`
	Upvotes      int `gorm:"-" json:"upvotes"`
	Downvotes    int `gorm:"-" json:"downvotes"`
}

// PostImage rows are insertion-ordered; the first one doubles as the
// feed thumbnail. At most MaxImagesPerPost per post.
type PostImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	ImageURL  string    `gorm:"not null" json:"image_url"`
	PublicID  string    `gorm:"size:100" json:"public_id"` // remote asset handle for destroy
	CreatedAt time.Time `json:"created_at"`
}
