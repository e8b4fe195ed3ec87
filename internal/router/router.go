package router

import (
	"forumx/internal/handlers"
	"forumx/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	postHandler := handlers.NewPostHandler()
	commentHandler := handlers.NewCommentHandler()
	voteHandler := handlers.NewVoteHandler()
	forumHandler := handlers.NewForumHandler()
	searchHandler := handlers.NewSearchHandler()
	userHandler := handlers.NewUserHandler()
	playlistHandler := handlers.NewPlaylistHandler()
	notificationHandler := handlers.NewNotificationHandler()
	requestHandler := handlers.NewRequestHandler()
	imageHandler := handlers.NewImageHandler()
	adminHandler := handlers.NewAdminHandler()

	// Public routes
	r.GET("/", postHandler.Home)                  // home feed
	r.GET("/search", searchHandler.Search)        // search page
	r.GET("/post/:id", postHandler.Detail)        // post detail
	r.GET("/categories", forumHandler.Categories) // categories grouped by header
	r.GET("/forum/:id", forumHandler.ListByForum) // posts under a category
	r.GET("/user/:id", userHandler.Profile)       // user profile
	r.GET("/playlist/:id", playlistHandler.View)  // playlist view (public or owner)
	r.GET("/img/:id", imageHandler.Serve)         // image proxy with resize

	auth := r.Group("/auth")
	{
		auth.GET("/register", middleware.RedirectIfAuthenticated(), authHandler.ShowRegister)
		auth.POST("/register", authHandler.Register)
		auth.GET("/login", middleware.RedirectIfAuthenticated(), authHandler.ShowLogin)
		auth.POST("/login", authHandler.Login)
		auth.GET("/logout", authHandler.Logout)
	}

	// Protected routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/submit", postHandler.ShowCreate)  // new post form
		authorized.POST("/submit", postHandler.Create)     // create post
		authorized.GET("/post/:id/edit", postHandler.ShowEdit)
		authorized.POST("/post/:id/edit", postHandler.Edit)
		authorized.POST("/post/:id/images", postHandler.AddImages)               // append images
		authorized.POST("/post/image/:imageId/replace", postHandler.ReplaceImage) // swap one image
		authorized.DELETE("/post/:id", postHandler.Delete)                        // soft delete

		authorized.POST("/post/:id/comment", commentHandler.Create)
		authorized.DELETE("/comment/:id", commentHandler.Delete)

		authorized.GET("/contribute", forumHandler.ShowCreate) // new category form
		authorized.POST("/contribute", forumHandler.Create)

		authorized.GET("/playlists", playlistHandler.List)
		authorized.POST("/playlists", playlistHandler.Create)
		authorized.DELETE("/playlist/:id", playlistHandler.Delete)

		authorized.GET("/requests", requestHandler.List)
		authorized.POST("/requests", requestHandler.Create)
		authorized.POST("/requests/:id/fulfill", requestHandler.Fulfill) // open -> pending
		authorized.POST("/requests/:id/finish", requestHandler.Finish)   // pending -> finished
		authorized.DELETE("/requests/:id", requestHandler.Delete)
	}

	// Dashboard routes
	dashboard := r.Group("/dashboard")
	dashboard.Use(middleware.AuthRequired())
	{
		dashboard.GET("", userHandler.Dashboard)
		dashboard.POST("/settings", userHandler.UpdateSettings)
		dashboard.POST("/avatar", userHandler.UpdateAvatar)
	}

	// JSON API routes
	api := r.Group("/api")
	api.Use(middleware.AuthRequired())
	{
		api.POST("/post/:id/vote", voteHandler.Vote)                   // three-way vote toggle
		api.POST("/playlist/:id/toggle", playlistHandler.Toggle)       // add/remove a post
		api.POST("/playlist/:id/privacy", playlistHandler.TogglePrivacy)
		api.POST("/forums", forumHandler.CreateAPI) // tag picker quick-create

		api.GET("/notifications", notificationHandler.List)
		api.POST("/notifications/:id/read", notificationHandler.MarkRead)
		api.POST("/notifications/read-all", notificationHandler.MarkAllRead)
		api.DELETE("/notifications/:id", notificationHandler.Delete)
		api.DELETE("/notifications", notificationHandler.Clear)
	}

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.GET("/users", adminHandler.Users)
		admin.POST("/users/:id/reset-password", adminHandler.ResetPassword)
		admin.POST("/users/:id/toggle-ban", adminHandler.ToggleBan)
		admin.POST("/posts/:id/remove", adminHandler.RemovePost)
	}
}
