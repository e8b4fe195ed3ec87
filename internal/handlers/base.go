package handlers

import (
	"net/http"
	"strconv"

	"forumx/internal/middleware"
	"forumx/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Render injects common variables like the current user before
// rendering a page.
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	if user, exists := c.Get(middleware.CheckUserKey); exists {
		obj["CurrentUser"] = user
		if count, ok := c.Get(middleware.UnreadCountKey); ok {
			obj["UnreadCount"] = int(count.(int64))
		} else {
			obj["UnreadCount"] = 0
		}
	}

	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// RenderError renders the shared error page.
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message})
}

// currentUser returns the DB-resolved caller, or nil when anonymous.
func currentUser(c *gin.Context) *models.User {
	if u, exists := c.Get(middleware.CheckUserKey); exists {
		return u.(*models.User)
	}
	return nil
}

// setFlash stores a one-shot message shown on the next rendered page.
func setFlash(c *gin.Context, message string) {
	session := sessions.Default(c)
	session.Set("flash", message)
	_ = session.Save()
}

// takeFlash pops the pending flash message, if any.
func takeFlash(c *gin.Context) string {
	session := sessions.Default(c)
	raw := session.Get("flash")
	if raw == nil {
		return ""
	}
	session.Delete("flash")
	_ = session.Save()
	message, _ := raw.(string)
	return message
}

// pageParams reads ?page= with the given page size and returns
// (page, offset).
func pageParams(c *gin.Context, perPage int) (int, int) {
	page := 1
	if p := c.Query("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			page = pageNum
		}
	}
	return page, (page - 1) * perPage
}

// totalPages never reports less than one page.
func totalPages(total int64, perPage int) int {
	pages := int((total + int64(perPage) - 1) / int64(perPage))
	if pages == 0 {
		pages = 1
	}
	return pages
}

func jsonError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

func notFoundJSON(c *gin.Context) {
	jsonError(c, http.StatusNotFound, "not found")
}
