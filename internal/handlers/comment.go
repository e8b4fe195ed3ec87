package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"forumx/internal/db"
	"forumx/internal/models"
	"forumx/internal/services"
	"forumx/internal/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct{}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{}
}

const commentPreviewLen = 12

// commentPreview truncates a comment for the notification message.
func commentPreview(content string) string {
	runes := []rune(content)
	if len(runes) <= commentPreviewLen {
		return content
	}
	return string(runes[:commentPreviewLen]) + "..."
}

// Create adds a comment to a published post and notifies its author.
// The notification is best-effort; the comment stands either way.
func (h *CommentHandler) Create(c *gin.Context) {
	user := currentUser(c)
	if user.IsBanned {
		RenderError(c, http.StatusForbidden, "Your account is banned")
		return
	}

	postID := utils.StringToInt(c.Param("id"))
	content := strings.TrimSpace(c.PostForm("content"))
	if content == "" {
		setFlash(c, "Comment cannot be empty")
		c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", postID))
		return
	}

	var post models.Post
	if err := db.DB.First(&post, postID).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}
	if !canViewPost(&post, user) {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}

	comment := models.Comment{
		PostID:  post.ID,
		UserID:  user.ID,
		Content: content,
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not save comment")
		return
	}

	pid := post.ID
	services.GetNotifier().Notify(
		post.UserID,
		user.ID,
		models.NotificationTypeComment,
		&pid,
		fmt.Sprintf("%s commented on your post: %s", user.Username, commentPreview(content)),
		fmt.Sprintf("/post/%d", post.ID),
	)

	c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", post.ID))
}

// Delete removes the caller's own comment; admins may remove any.
func (h *CommentHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	commentID := utils.StringToInt(c.Param("id"))

	var comment models.Comment
	if err := db.DB.First(&comment, commentID).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Comment not found")
		return
	}
	if comment.UserID != user.ID && !user.IsAdmin {
		RenderError(c, http.StatusForbidden, "You cannot delete this comment")
		return
	}

	if err := db.DB.Delete(&comment).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not delete comment")
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", comment.PostID))
}
