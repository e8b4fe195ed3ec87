package handlers

import (
	"errors"
	"net/http"
	"os"

	"forumx/internal/db"
	"forumx/internal/middleware"
	"forumx/internal/models"
	"forumx/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	Render(c, http.StatusOK, "auth/register.html", gin.H{"Flash": takeFlash(c)})
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "auth/login.html", gin.H{"Flash": takeFlash(c)})
}

// setTokenCookie issues the signed 30-day session cookie.
func setTokenCookie(c *gin.Context, user *models.User) error {
	token, err := utils.GenerateToken(user.ID, user.Username)
	if err != nil {
		return err
	}
	secure := os.Getenv("COOKIE_SECURE") == "1"
	c.SetCookie(middleware.TokenCookie, token, int(utils.TokenTTL.Seconds()), "/", "", secure, true)
	return nil
}

func (h *AuthHandler) Register(c *gin.Context) {
	username := utils.NormalizeUsername(c.PostForm("username"))
	email := utils.NormalizeEmail(c.PostForm("email"))
	password := c.PostForm("password")

	if username == "" || email == "" || password == "" {
		Render(c, http.StatusBadRequest, "auth/register.html", gin.H{
			"Error": "Username, email, and password are required",
		})
		return
	}

	if err := utils.ValidatePassword(password); err != nil {
		Render(c, http.StatusBadRequest, "auth/register.html", gin.H{
			"Error":    "Password must be between 7 and 20 characters",
			"Username": username,
			"Email":    email,
		})
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Error creating user")
		return
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: hash,
	}

	// User row and balance counter are created together.
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.Currency{UserID: user.ID}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Render(c, http.StatusBadRequest, "auth/register.html", gin.H{
				"Error": "Username or email already exists",
			})
			return
		}
		RenderError(c, http.StatusInternalServerError, "Error creating user")
		return
	}

	if err := setTokenCookie(c, &user); err != nil {
		RenderError(c, http.StatusInternalServerError, "Error signing in")
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Login(c *gin.Context) {
	username := utils.NormalizeUsername(c.PostForm("username"))
	password := c.PostForm("password")

	if username == "" || password == "" {
		Render(c, http.StatusBadRequest, "auth/login.html", gin.H{
			"Error": "Username and password are required",
		})
		return
	}

	// Identical message for unknown user and wrong password.
	var user models.User
	if err := db.DB.Where("username = ?", username).First(&user).Error; err != nil {
		Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{
			"Error": "Invalid username or password",
		})
		return
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{
			"Error": "Invalid username or password",
		})
		return
	}

	if user.IsBanned {
		Render(c, http.StatusForbidden, "auth/login.html", gin.H{
			"Error": "This account has been banned",
		})
		return
	}

	if err := setTokenCookie(c, &user); err != nil {
		RenderError(c, http.StatusInternalServerError, "Error signing in")
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/auth/login")
}
