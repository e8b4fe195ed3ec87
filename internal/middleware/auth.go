package middleware

import (
	"net/http"

	"forumx/internal/db"
	"forumx/internal/models"
	"forumx/internal/utils"

	"github.com/gin-gonic/gin"
)

const CheckUserKey = "user"
const UnreadCountKey = "unread_count"

// TokenCookie is the session cookie name.
const TokenCookie = "token"

// LoadUser verifies the session token and resolves the caller fresh
// from the database. Any token failure leaves the request anonymous.
// Role and ban flags come from the user row, never from token claims.
func LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(TokenCookie)
		if err == nil && raw != "" {
			if claims, err := utils.ParseToken(raw); err == nil {
				var user models.User
				if db.DB.First(&user, claims.UserID).Error == nil {
					c.Set(CheckUserKey, &user)

					var count int64
					db.DB.Model(&models.Notification{}).
						Where("recipient_id = ? AND is_read = ?", user.ID, false).
						Count(&count)
					c.Set(UnreadCountKey, count)
				}
			}
		}
		c.Next()
	}
}

// AuthRequired ensures a user is logged in
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); !exists {
			c.Redirect(http.StatusFound, "/auth/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminRequired gates admin routes on the DB-resolved user row.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, exists := c.Get(CheckUserKey)
		if !exists {
			c.Redirect(http.StatusFound, "/auth/login")
			c.Abort()
			return
		}
		if !u.(*models.User).IsAdmin {
			c.Status(http.StatusForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RedirectIfAuthenticated sends logged-in users away from the login and
// register pages.
func RedirectIfAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); exists {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}
