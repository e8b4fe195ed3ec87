package handlers

import (
	"fmt"
	"net/http"

	"forumx/internal/db"
	"forumx/internal/models"
	"forumx/internal/services"
	"forumx/internal/utils"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct{}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

// Users lists accounts for the moderation page.
func (h *AdminHandler) Users(c *gin.Context) {
	page, offset := pageParams(c, 50)

	var total int64
	db.DB.Model(&models.User{}).Count(&total)

	var users []models.User
	db.DB.Order("created_at DESC").Limit(50).Offset(offset).Find(&users)

	Render(c, http.StatusOK, "admin/users.html", gin.H{
		"Title":       "Users",
		"Users":       users,
		"CurrentPage": page,
		"TotalPages":  totalPages(total, 50),
		"Flash":       takeFlash(c),
	})
}

// ResetPassword sets a user's password to a supplied value. Used for
// manual account recovery.
func (h *AdminHandler) ResetPassword(c *gin.Context) {
	userID := utils.StringToInt(c.Param("id"))

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		RenderError(c, http.StatusNotFound, "User not found")
		return
	}

	newPassword := c.PostForm("new_password")
	if err := utils.ValidatePassword(newPassword); err != nil {
		setFlash(c, err.Error())
		c.Redirect(http.StatusFound, "/admin/users")
		return
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not reset password")
		return
	}
	if err := db.DB.Model(&user).Update("password", hash).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not reset password")
		return
	}

	setFlash(c, fmt.Sprintf("Password reset for %s", user.Username))
	c.Redirect(http.StatusFound, "/admin/users")
}

// ToggleBan flips a user's banned flag. Admin accounts cannot be
// banned.
func (h *AdminHandler) ToggleBan(c *gin.Context) {
	userID := utils.StringToInt(c.Param("id"))

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		RenderError(c, http.StatusNotFound, "User not found")
		return
	}
	if user.IsAdmin {
		RenderError(c, http.StatusBadRequest, "Admin accounts cannot be banned")
		return
	}

	if err := db.DB.Model(&user).Update("is_banned", !user.IsBanned).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not update user")
		return
	}

	action := "banned"
	if user.IsBanned {
		action = "unbanned"
	}
	setFlash(c, fmt.Sprintf("%s %s", user.Username, action))
	c.Redirect(http.StatusFound, "/admin/users")
}

// RemovePost takes a post down for moderation and tells its author via
// a system notification (which does fire even if an admin removes
// their own post).
func (h *AdminHandler) RemovePost(c *gin.Context) {
	admin := currentUser(c)
	postID := utils.StringToInt(c.Param("id"))

	var post models.Post
	if err := db.DB.First(&post, postID).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}

	if err := db.DB.Model(&post).Update("status", models.PostRemoved).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not remove post")
		return
	}

	pid := post.ID
	services.GetNotifier().Notify(
		post.UserID,
		admin.ID,
		models.NotificationTypeSystem,
		&pid,
		fmt.Sprintf("Your post %q was removed by a moderator", post.Title),
		"",
	)

	invalidateHomeFeed()
	setFlash(c, "Post removed")
	c.Redirect(http.StatusFound, "/")
}
