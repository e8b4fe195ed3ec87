package handlers

import (
	"errors"
	"net/http"

	"forumx/internal/db"
	"forumx/internal/models"
	"forumx/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type VoteHandler struct{}

func NewVoteHandler() *VoteHandler {
	return &VoteHandler{}
}

// voteAction is what the toggle decided to do with the existing row.
type voteAction int

const (
	voteInsert voteAction = iota
	voteRemove
	voteSwitch
)

// resolveVote implements the three-way toggle: no existing vote
// inserts, a repeat of the same direction removes, and the opposite
// direction switches.
func resolveVote(existing *int, requested int) (voteAction, string) {
	if existing == nil {
		if requested == 1 {
			return voteInsert, "upvoted"
		}
		return voteInsert, "downvoted"
	}
	if *existing == requested {
		return voteRemove, "vote removed"
	}
	if requested == 1 {
		return voteSwitch, "changed to upvote"
	}
	return voteSwitch, "changed to downvote"
}

// Vote handles POST /api/post/:id/vote with form value vote=up|down.
// Responds with the action taken and the fresh counts.
func (h *VoteHandler) Vote(c *gin.Context) {
	user := currentUser(c)
	if user.IsBanned {
		jsonError(c, http.StatusForbidden, "your account is banned")
		return
	}

	postID := utils.StringToInt(c.Param("id"))

	requested := 0
	switch c.PostForm("vote") {
	case "up":
		requested = 1
	case "down":
		requested = -1
	default:
		jsonError(c, http.StatusBadRequest, "vote must be up or down")
		return
	}

	var post models.Post
	if err := db.DB.First(&post, postID).Error; err != nil {
		notFoundJSON(c)
		return
	}
	if !canViewPost(&post, user) {
		notFoundJSON(c)
		return
	}

	var message string
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var current models.PostVote
		err := tx.Where("user_id = ? AND post_id = ?", user.ID, post.ID).First(&current).Error

		var existing *int
		if err == nil {
			existing = &current.VoteType
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		action, msg := resolveVote(existing, requested)
		message = msg

		switch action {
		case voteInsert:
			return tx.Create(&models.PostVote{
				UserID:   user.ID,
				PostID:   post.ID,
				VoteType: requested,
			}).Error
		case voteRemove:
			return tx.Delete(&current).Error
		default:
			return tx.Model(&current).Update("vote_type", requested).Error
		}
	})
	if err != nil {
		jsonError(c, http.StatusInternalServerError, "vote failed")
		return
	}

	var upvotes, downvotes int64
	db.DB.Model(&models.PostVote{}).Where("post_id = ? AND vote_type = 1", post.ID).Count(&upvotes)
	db.DB.Model(&models.PostVote{}).Where("post_id = ? AND vote_type = -1", post.ID).Count(&downvotes)

	c.JSON(http.StatusOK, gin.H{
		"message":   message,
		"upvotes":   upvotes,
		"downvotes": downvotes,
	})
}
