package handlers

import (
	"net/http"
	"strings"

	"forumx/internal/db"
	"forumx/internal/models"
	"forumx/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PlaylistHandler struct{}

func NewPlaylistHandler() *PlaylistHandler {
	return &PlaylistHandler{}
}

// List shows the caller's own playlists with item counts.
func (h *PlaylistHandler) List(c *gin.Context) {
	user := currentUser(c)

	var playlists []models.Playlist
	db.DB.Where("user_id = ?", user.ID).Order("created_at DESC").Find(&playlists)

	for i := range playlists {
		var count int64
		db.DB.Model(&models.PlaylistItem{}).
			Where("playlist_id = ?", playlists[i].ID).
			Count(&count)
		playlists[i].ItemCount = int(count)
	}

	Render(c, http.StatusOK, "playlist/list.html", gin.H{
		"Title":     "My playlists",
		"Playlists": playlists,
		"Flash":     takeFlash(c),
	})
}

func (h *PlaylistHandler) Create(c *gin.Context) {
	user := currentUser(c)
	if user.IsBanned {
		RenderError(c, http.StatusForbidden, "Your account is banned")
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		setFlash(c, "Playlist name is required")
		c.Redirect(http.StatusFound, "/playlists")
		return
	}

	playlist := models.Playlist{
		UserID:   user.ID,
		Name:     name,
		IsPublic: c.PostForm("is_public") == "1",
	}
	if err := db.DB.Create(&playlist).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not create playlist")
		return
	}

	c.Redirect(http.StatusFound, "/playlists")
}

// View renders a playlist's posts. Private playlists are only visible
// to their owner; outsiders get the same 404 as a missing one.
func (h *PlaylistHandler) View(c *gin.Context) {
	viewer := currentUser(c)
	playlistID := utils.StringToInt(c.Param("id"))

	var playlist models.Playlist
	if err := db.DB.Preload("User").First(&playlist, playlistID).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Playlist not found")
		return
	}

	isOwner := viewer != nil && viewer.ID == playlist.UserID
	if !playlist.IsPublic && !isOwner {
		RenderError(c, http.StatusNotFound, "Playlist not found")
		return
	}

	var items []models.PlaylistItem
	db.DB.Preload("Post").Preload("Post.User").Preload("Post.Images").
		Where("playlist_id = ?", playlist.ID).
		Order("created_at DESC").
		Find(&items)

	// Removed posts stay in the table but are not shown.
	posts := make([]models.Post, 0, len(items))
	for _, item := range items {
		if item.Post.Status == models.PostPublished {
			posts = append(posts, item.Post)
		}
	}
	fillCommentCounts(posts)

	Render(c, http.StatusOK, "playlist/view.html", gin.H{
		"Title":    playlist.Name,
		"Playlist": playlist,
		"Posts":    posts,
		"IsOwner":  isOwner,
	})
}

// Toggle adds a post to the playlist or removes it if already present.
// JSON response reports which happened plus the new count.
func (h *PlaylistHandler) Toggle(c *gin.Context) {
	user := currentUser(c)
	if user.IsBanned {
		jsonError(c, http.StatusForbidden, "your account is banned")
		return
	}
	playlistID := utils.StringToInt(c.Param("id"))
	postID := utils.StringToInt(c.PostForm("post_id"))

	var playlist models.Playlist
	if err := db.DB.First(&playlist, playlistID).Error; err != nil {
		notFoundJSON(c)
		return
	}
	if playlist.UserID != user.ID {
		jsonError(c, http.StatusForbidden, "not your playlist")
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

	status := "added"
	var existing models.PlaylistItem
	err := db.DB.Where("playlist_id = ? AND post_id = ?", playlist.ID, post.ID).First(&existing).Error
	if err == nil {
		if err := db.DB.Delete(&existing).Error; err != nil {
			jsonError(c, http.StatusInternalServerError, "toggle failed")
			return
		}
		status = "removed"
	} else {
		item := models.PlaylistItem{PlaylistID: playlist.ID, PostID: post.ID}
		if err := db.DB.Create(&item).Error; err != nil {
			jsonError(c, http.StatusInternalServerError, "toggle failed")
			return
		}
	}

	var count int64
	db.DB.Model(&models.PlaylistItem{}).Where("playlist_id = ?", playlist.ID).Count(&count)

	c.JSON(http.StatusOK, gin.H{
		"status":     status,
		"item_count": count,
	})
}

// TogglePrivacy flips a playlist between public and private.
func (h *PlaylistHandler) TogglePrivacy(c *gin.Context) {
	user := currentUser(c)
	playlistID := utils.StringToInt(c.Param("id"))

	var playlist models.Playlist
	if err := db.DB.Where("id = ? AND user_id = ?", playlistID, user.ID).First(&playlist).Error; err != nil {
		notFoundJSON(c)
		return
	}

	playlist.IsPublic = !playlist.IsPublic
	if err := db.DB.Model(&playlist).Update("is_public", playlist.IsPublic).Error; err != nil {
		jsonError(c, http.StatusInternalServerError, "update failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_public": playlist.IsPublic})
}

// Delete removes a playlist and its items.
func (h *PlaylistHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	playlistID := utils.StringToInt(c.Param("id"))

	var playlist models.Playlist
	if err := db.DB.Where("id = ? AND user_id = ?", playlistID, user.ID).First(&playlist).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Playlist not found")
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", playlist.ID).Delete(&models.PlaylistItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&playlist).Error
	})
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not delete playlist")
		return
	}

	c.Redirect(http.StatusFound, "/playlists")
}
