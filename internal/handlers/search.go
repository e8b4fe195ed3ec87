package handlers

import (
	"net/http"
	"strings"

	"forumx/internal/db"
	"forumx/internal/models"
	"forumx/internal/search"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct{}

func NewSearchHandler() *SearchHandler {
	return &SearchHandler{}
}

// searchScopes falls back to both columns when the query names no
// scope. A caller who explicitly supplies scopes keeps them as-is, even
// if none of them is recognized.
func searchScopes(raw []string) []string {
	if len(raw) == 0 {
		return []string{search.ScopeTitle, search.ScopeContent}
	}
	return raw
}

// Search runs the combined text + category filter over published
// posts. Query params: q, scope (repeatable: title, content),
// forum_id (repeatable), mode (any|all).
func (h *SearchHandler) Search(c *gin.Context) {
	term := strings.TrimSpace(c.Query("q"))
	scopes := searchScopes(c.QueryArray("scope"))
	forumIDs := parseForumIDs(c.QueryArray("forum_id"))
	mode := search.ParseMode(c.Query("mode"))

	filter := new(search.Filter)
	filter.WithText(term, scopes).WithCategories(forumIDs, mode)

	page, offset := pageParams(c, postsPerPage)

	base := db.DB.Model(&models.Post{}).Where("status = ?", models.PostPublished)
	var total int64
	filter.Apply(base).Count(&total)

	var posts []models.Post
	query := db.DB.Preload("User").Preload("Images").Preload("Categories").
		Where("status = ?", models.PostPublished)
	filter.Apply(query).
		Order("created_at DESC").
		Limit(postsPerPage).
		Offset(offset).
		Find(&posts)

	fillCommentCounts(posts)

	var forums []models.Forum
	db.DB.Order("header ASC, order_by ASC, title ASC").Find(&forums)

	Render(c, http.StatusOK, "search.html", gin.H{
		"Title":          "Search",
		"Posts":          posts,
		"Forums":         forums,
		"Query":          term,
		"SelectedScopes": scopes,
		"SelectedForums": forumIDs,
		"Mode":           string(mode),
		"CurrentPage":    page,
		"TotalPages":     totalPages(total, postsPerPage),
		"TotalResults":   total,
	})
}
