package handlers

import (
	"io"
	"net/http"
	"strings"

	"forumx/internal/db"
	"forumx/internal/models"
	"forumx/internal/services"
	"forumx/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	media *services.MediaStore
}

func NewUserHandler() *UserHandler {
	return &UserHandler{
		media: services.NewMediaStore(),
	}
}

// Profile is a user's public page: their published posts and public
// playlists. The owner additionally sees drafts.
func (h *UserHandler) Profile(c *gin.Context) {
	viewer := currentUser(c)
	userID := utils.StringToInt(c.Param("id"))

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		RenderError(c, http.StatusNotFound, "User not found")
		return
	}

	isOwner := viewer != nil && (viewer.ID == user.ID || viewer.IsAdmin)

	page, offset := pageParams(c, postsPerPage)

	statuses := []models.PostStatus{models.PostPublished}
	if isOwner {
		statuses = append(statuses, models.PostDraft)
	}

	var total int64
	db.DB.Model(&models.Post{}).
		Where("user_id = ? AND status IN ?", user.ID, statuses).
		Count(&total)

	var posts []models.Post
	db.DB.Preload("Images").Preload("Categories").
		Where("user_id = ? AND status IN ?", user.ID, statuses).
		Order("created_at DESC").
		Limit(postsPerPage).
		Offset(offset).
		Find(&posts)
	fillCommentCounts(posts)

	playlistQuery := db.DB.Where("user_id = ?", user.ID)
	if !isOwner {
		playlistQuery = playlistQuery.Where("is_public = ?", true)
	}
	var playlists []models.Playlist
	playlistQuery.Order("created_at DESC").Find(&playlists)

	Render(c, http.StatusOK, "user/profile.html", gin.H{
		"Title":       user.Username,
		"ProfileUser": user,
		"Posts":       posts,
		"Playlists":   playlists,
		"IsOwner":     isOwner,
		"CurrentPage": page,
		"TotalPages":  totalPages(total, postsPerPage),
	})
}

// Dashboard is the settings page with the caller's balance.
func (h *UserHandler) Dashboard(c *gin.Context) {
	user := currentUser(c)

	var currency models.Currency
	db.DB.Where("user_id = ?", user.ID).First(&currency)

	Render(c, http.StatusOK, "user/dashboard.html", gin.H{
		"Title":   "Dashboard",
		"Balance": currency.Balance,
		"Flash":   takeFlash(c),
	})
}

// UpdateSettings edits bio and, when all three password fields agree,
// the password. Blank fields keep the stored values.
func (h *UserHandler) UpdateSettings(c *gin.Context) {
	user := currentUser(c)

	if bio, ok := c.GetPostForm("bio"); ok {
		user.Bio = strings.TrimSpace(bio)
	}

	oldPassword := c.PostForm("old_password")
	newPassword := c.PostForm("new_password")
	confirm := c.PostForm("confirm_password")

	if oldPassword != "" || newPassword != "" || confirm != "" {
		if !utils.CheckPasswordHash(oldPassword, user.Password) {
			setFlash(c, "Current password is incorrect")
			c.Redirect(http.StatusFound, "/dashboard")
			return
		}
		if newPassword != confirm {
			setFlash(c, "New passwords do not match")
			c.Redirect(http.StatusFound, "/dashboard")
			return
		}
		if err := utils.ValidatePassword(newPassword); err != nil {
			setFlash(c, err.Error())
			c.Redirect(http.StatusFound, "/dashboard")
			return
		}
		hash, err := utils.HashPassword(newPassword)
		if err != nil {
			RenderError(c, http.StatusInternalServerError, "Could not update password")
			return
		}
		user.Password = hash
	}

	if err := db.DB.Save(user).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not save settings")
		return
	}

	setFlash(c, "Settings saved")
	c.Redirect(http.StatusFound, "/dashboard")
}

// UpdateAvatar replaces the profile or background picture. The form
// field name picks which.
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	user := currentUser(c)

	field := c.PostForm("field")
	if field != "profile_pic" && field != "bg_pic" {
		RenderError(c, http.StatusBadRequest, "Unknown picture field")
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		RenderError(c, http.StatusBadRequest, "No image provided")
		return
	}
	file, err := header.Open()
	if err != nil {
		RenderError(c, http.StatusBadRequest, "Could not read image")
		return
	}
	raw, err := io.ReadAll(file)
	file.Close()
	if err != nil {
		RenderError(c, http.StatusBadRequest, "Could not read image")
		return
	}

	compressed, err := services.CompressImage(raw)
	if err != nil {
		RenderError(c, http.StatusBadRequest, "Unsupported image format")
		return
	}

	result, err := h.media.Upload(compressed, header.Filename)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Upload failed")
		return
	}

	if err := db.DB.Model(user).Update(field, result.SecureURL).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not save picture")
		return
	}

	setFlash(c, "Picture updated")
	c.Redirect(http.StatusFound, "/dashboard")
}
