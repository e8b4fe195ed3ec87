package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"forumx/internal/db"
	"forumx/internal/models"
	"forumx/internal/utils"

	"github.com/gin-gonic/gin"
)

type ForumHandler struct{}

func NewForumHandler() *ForumHandler {
	return &ForumHandler{}
}

// ForumSummary is a forum plus its display stats for the categories
// page.
type ForumSummary struct {
	models.Forum
	PostCount  int64
	LatestPost *models.Post
	TopPosters []models.User
}

// ForumGroup is one header band on the categories page.
type ForumGroup struct {
	Header string
	Forums []ForumSummary
}

// GroupForumsByHeader buckets summaries under their header, keeping
// headers in first-seen order and forums in their given order. An
// empty header falls under "Other".
func GroupForumsByHeader(forums []ForumSummary) []ForumGroup {
	index := make(map[string]int)
	var groups []ForumGroup
	for _, f := range forums {
		header := f.Header
		if header == "" {
			header = "Other"
		}
		i, ok := index[header]
		if !ok {
			i = len(groups)
			index[header] = i
			groups = append(groups, ForumGroup{Header: header})
		}
		groups[i].Forums = append(groups[i].Forums, f)
	}
	return groups
}

// Categories renders every forum grouped by header with post counts,
// the latest post, and the most active contributors per forum.
func (h *ForumHandler) Categories(c *gin.Context) {
	var forums []models.Forum
	db.DB.Order("header ASC, order_by ASC, title ASC").Find(&forums)

	summaries := make([]ForumSummary, 0, len(forums))
	for _, forum := range forums {
		summary := ForumSummary{Forum: forum}

		db.DB.Model(&models.PostCategory{}).
			Joins("JOIN posts ON posts.id = post_categories.post_id").
			Where("post_categories.forum_id = ? AND posts.status = ?", forum.ID, models.PostPublished).
			Count(&summary.PostCount)

		var latest models.Post
		err := db.DB.Preload("User").
			Joins("JOIN post_categories pc ON pc.post_id = posts.id").
			Where("pc.forum_id = ? AND posts.status = ?", forum.ID, models.PostPublished).
			Order("posts.created_at DESC").
			First(&latest).Error
		if err == nil {
			summary.LatestPost = &latest
		}

		db.DB.Model(&models.User{}).
			Joins("JOIN posts ON posts.user_id = users.id").
			Joins("JOIN post_categories pc ON pc.post_id = posts.id").
			Where("pc.forum_id = ? AND posts.status = ?", forum.ID, models.PostPublished).
			Group("users.id").
			Order("COUNT(posts.id) DESC").
			Limit(3).
			Find(&summary.TopPosters)

		summaries = append(summaries, summary)
	}

	Render(c, http.StatusOK, "forum/categories.html", gin.H{
		"Title":  "Categories",
		"Groups": GroupForumsByHeader(summaries),
		"Flash":  takeFlash(c),
	})
}

// ListByForum shows the published posts tagged with one forum.
func (h *ForumHandler) ListByForum(c *gin.Context) {
	forumID := utils.StringToInt(c.Param("id"))

	var forum models.Forum
	if err := db.DB.First(&forum, forumID).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Category not found")
		return
	}

	page, offset := pageParams(c, postsPerPage)

	base := db.DB.Model(&models.Post{}).
		Joins("JOIN post_categories pc ON pc.post_id = posts.id").
		Where("pc.forum_id = ? AND posts.status = ?", forum.ID, models.PostPublished)

	var total int64
	base.Count(&total)

	var posts []models.Post
	db.DB.Preload("User").Preload("Images").Preload("Categories").
		Joins("JOIN post_categories pc ON pc.post_id = posts.id").
		Where("pc.forum_id = ? AND posts.status = ?", forum.ID, models.PostPublished).
		Order("posts.created_at DESC").
		Limit(postsPerPage).
		Offset(offset).
		Find(&posts)

	fillCommentCounts(posts)

	Render(c, http.StatusOK, "forum/list.html", gin.H{
		"Title":       forum.Title,
		"Forum":       forum,
		"Posts":       posts,
		"CurrentPage": page,
		"TotalPages":  totalPages(total, postsPerPage),
	})
}

func (h *ForumHandler) ShowCreate(c *gin.Context) {
	var headers []string
	db.DB.Model(&models.Forum{}).
		Distinct("header").
		Where("header <> ''").
		Order("header ASC").
		Pluck("header", &headers)

	Render(c, http.StatusOK, "forum/create.html", gin.H{
		"Title":   "New category",
		"Headers": headers,
	})
}

// Create adds a forum from the contribute form.
func (h *ForumHandler) Create(c *gin.Context) {
	user := currentUser(c)
	if user.IsBanned {
		RenderError(c, http.StatusForbidden, "Your account is banned")
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	header := strings.TrimSpace(c.PostForm("header"))
	if title == "" || header == "" {
		RenderError(c, http.StatusBadRequest, "Title and header are required")
		return
	}

	forum := models.Forum{
		UserID: user.ID,
		Title:  title,
		Header: header,
		Bio:    strings.TrimSpace(c.PostForm("bio")),
	}
	if err := db.DB.Create(&forum).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not create category")
		return
	}

	setFlash(c, fmt.Sprintf("Category %q created", forum.Title))
	c.Redirect(http.StatusFound, "/categories")
}

// CreateAPI is the JSON variant used by the tag picker on the post
// form.
func (h *ForumHandler) CreateAPI(c *gin.Context) {
	user := currentUser(c)
	if user.IsBanned {
		jsonError(c, http.StatusForbidden, "your account is banned")
		return
	}

	var input struct {
		Title  string `json:"title" binding:"required"`
		Header string `json:"header" binding:"required"`
		Bio    string `json:"bio"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		jsonError(c, http.StatusBadRequest, "title and header are required")
		return
	}

	forum := models.Forum{
		UserID: user.ID,
		Title:  strings.TrimSpace(input.Title),
		Header: strings.TrimSpace(input.Header),
		Bio:    strings.TrimSpace(input.Bio),
	}
	if forum.Title == "" {
		jsonError(c, http.StatusBadRequest, "title is required")
		return
	}
	if err := db.DB.Create(&forum).Error; err != nil {
		jsonError(c, http.StatusInternalServerError, "could not create category")
		return
	}

	c.JSON(http.StatusCreated, forum)
}
