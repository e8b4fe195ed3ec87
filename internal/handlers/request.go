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

type RequestHandler struct{}

func NewRequestHandler() *RequestHandler {
	return &RequestHandler{}
}

// List shows all content requests, open first, newest within status.
func (h *RequestHandler) List(c *gin.Context) {
	var requests []models.ContentRequest
	db.DB.Preload("Requester").Preload("Fulfiller").Preload("Post").
		Order("CASE status WHEN 'open' THEN 0 WHEN 'pending' THEN 1 ELSE 2 END, created_at DESC").
		Find(&requests)

	Render(c, http.StatusOK, "request/list.html", gin.H{
		"Title":    "Requests",
		"Requests": requests,
		"Flash":    takeFlash(c),
	})
}

func (h *RequestHandler) Create(c *gin.Context) {
	user := currentUser(c)
	if user.IsBanned {
		RenderError(c, http.StatusForbidden, "Your account is banned")
		return
	}

	message := strings.TrimSpace(c.PostForm("message"))
	if message == "" {
		setFlash(c, "Request message is required")
		c.Redirect(http.StatusFound, "/requests")
		return
	}

	request := models.ContentRequest{
		RequesterID: user.ID,
		Message:     message,
		Status:      models.RequestOpen,
	}
	if err := db.DB.Create(&request).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not create request")
		return
	}

	c.Redirect(http.StatusFound, "/requests")
}

// Fulfill moves an open request to pending. The fulfiller supplies a
// post by id or URL; the requester is notified. Requesters cannot
// fulfill their own request.
func (h *RequestHandler) Fulfill(c *gin.Context) {
	user := currentUser(c)
	if user.IsBanned {
		RenderError(c, http.StatusForbidden, "Your account is banned")
		return
	}

	requestID := utils.StringToInt(c.Param("id"))

	var request models.ContentRequest
	if err := db.DB.First(&request, requestID).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Request not found")
		return
	}
	if request.Status != models.RequestOpen {
		setFlash(c, "This request is no longer open")
		c.Redirect(http.StatusFound, "/requests")
		return
	}
	if request.RequesterID == user.ID {
		RenderError(c, http.StatusBadRequest, "You cannot fulfill your own request")
		return
	}

	postID, err := utils.ExtractTrailingID(strings.TrimSpace(c.PostForm("post_ref")))
	if err != nil {
		RenderError(c, http.StatusBadRequest, "Provide a post link or id")
		return
	}

	var post models.Post
	if err := db.DB.First(&post, postID).Error; err != nil || post.Status != models.PostPublished {
		setFlash(c, "That post does not exist")
		c.Redirect(http.StatusFound, "/requests")
		return
	}

	fulfillerID := user.ID
	pid := post.ID
	updates := map[string]interface{}{
		"status":       models.RequestPending,
		"fulfiller_id": fulfillerID,
		"post_id":      pid,
	}
	// Status guard in WHERE so two fulfillers racing cannot both win.
	result := db.DB.Model(&models.ContentRequest{}).
		Where("id = ? AND status = ?", request.ID, models.RequestOpen).
		Updates(updates)
	if result.Error != nil || result.RowsAffected == 0 {
		setFlash(c, "This request is no longer open")
		c.Redirect(http.StatusFound, "/requests")
		return
	}

	services.GetNotifier().Notify(
		request.RequesterID,
		user.ID,
		models.NotificationTypeRqPending,
		&pid,
		fmt.Sprintf("%s answered your request with a post", user.Username),
		fmt.Sprintf("/post/%d", post.ID),
	)

	setFlash(c, "Request marked pending")
	c.Redirect(http.StatusFound, "/requests")
}

// Finish lets the requester accept a pending fulfillment. The
// fulfiller is notified and credited.
func (h *RequestHandler) Finish(c *gin.Context) {
	user := currentUser(c)
	requestID := utils.StringToInt(c.Param("id"))

	var request models.ContentRequest
	if err := db.DB.First(&request, requestID).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Request not found")
		return
	}
	if request.RequesterID != user.ID {
		RenderError(c, http.StatusForbidden, "Only the requester can finish a request")
		return
	}
	if request.Status != models.RequestPending || request.FulfillerID == nil {
		setFlash(c, "This request is not pending")
		c.Redirect(http.StatusFound, "/requests")
		return
	}

	result := db.DB.Model(&models.ContentRequest{}).
		Where("id = ? AND status = ?", request.ID, models.RequestPending).
		Update("status", models.RequestFinished)
	if result.Error != nil || result.RowsAffected == 0 {
		setFlash(c, "This request is not pending")
		c.Redirect(http.StatusFound, "/requests")
		return
	}

	services.GetNotifier().Notify(
		*request.FulfillerID,
		user.ID,
		models.NotificationTypeRqFinish,
		request.PostID,
		fmt.Sprintf("%s accepted your fulfillment", user.Username),
		"/requests",
	)
	services.AdjustBalanceAsync(*request.FulfillerID, services.RewardRequestFulfilled)

	setFlash(c, "Request finished")
	c.Redirect(http.StatusFound, "/requests")
}

// Delete removes the caller's own open request.
func (h *RequestHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	requestID := utils.StringToInt(c.Param("id"))

	result := db.DB.
		Where("id = ? AND requester_id = ? AND status = ?", requestID, user.ID, models.RequestOpen).
		Delete(&models.ContentRequest{})
	if result.Error != nil {
		RenderError(c, http.StatusInternalServerError, "Could not delete request")
		return
	}
	if result.RowsAffected == 0 {
		RenderError(c, http.StatusForbidden, "Only open requests you created can be deleted")
		return
	}

	c.Redirect(http.StatusFound, "/requests")
}
