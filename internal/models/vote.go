package models

import (
	"time"
)

// PostVote holds one vote per (user, post). VoteType is +1 or -1;
// un-voting deletes the row rather than zeroing it.
type PostVote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_user_post_vote" json:"user_id"`
	PostID    uint      `gorm:"not null;index;uniqueIndex:idx_user_post_vote" json:"post_id"`
	VoteType  int       `gorm:"not null" json:"vote_type"`
	CreatedAt time.Time `json:"created_at"`
}
