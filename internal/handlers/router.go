package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/kanban-board-api/internal/constants"
	"github.com/yukikurage/kanban-board-api/internal/middleware"
)

// RouterDeps holds everything the HTTP surface is built from.
type RouterDeps struct {
	Logger       *slog.Logger
	SessionStore sessions.Store
	// AuthLimiter guards signup and login; nil disables it.
	AuthLimiter *middleware.RateLimiter
	// Metrics is mounted at /metrics when set.
	Metrics http.Handler

	Auth         *AuthHandler
	Board        *BoardHandler
	Comment      *CommentHandler
	Notification *NotificationHandler
	User         *UserHandler
}

// NewRouter builds the gin engine with every API route.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if deps.Logger != nil {
		r.Use(middleware.RequestLogger(deps.Logger))
	}
	r.Use(sessions.Sessions(constants.SessionCookieName, deps.SessionStore))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Kanban Board API is running",
		})
	})
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics))
	}

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		if deps.AuthLimiter != nil {
			auth.Use(deps.AuthLimiter.Middleware())
		}
		{
			auth.POST("/signup", deps.Auth.Signup)
			auth.POST("/login", deps.Auth.Login)
			auth.POST("/logout", deps.Auth.Logout)
			auth.GET("/me", middleware.RequireAuth(), deps.Auth.GetCurrentUser)
		}

		// Board routes address the board by owner in the query or body
		boards := api.Group("/boards")
		{
			boards.GET("", deps.Board.GetBoard)
			boards.PUT("", deps.Board.UpdateBoard)
			boards.POST("/columns", deps.Board.AddColumn)
			boards.DELETE("/columns", deps.Board.DeleteColumn)
			boards.POST("/tasks", deps.Board.AddTask)
			boards.PUT("/tasks", deps.Board.UpdateTask)
			boards.DELETE("/tasks", deps.Board.DeleteTask)
			boards.POST("/tasks/generate", deps.Board.GenerateTasks)
			boards.POST("/clear", deps.Board.ClearBoard)
			boards.POST("/cleanup-comments", deps.Board.CleanupComments)
		}

		tasks := api.Group("/tasks")
		{
			tasks.GET("/:taskId/comments", deps.Comment.ListComments)
			tasks.POST("/:taskId/comments", deps.Comment.AddComment)
		}

		// Notification routes (user-id header or session)
		notifications := api.Group("/notifications")
		{
			notifications.GET("", middleware.RequireUser(), deps.Notification.ListNotifications)
			notifications.PATCH("/mark-all-read", middleware.RequireUser(), deps.Notification.MarkAllRead)
			notifications.PATCH("/:id/read", deps.Notification.MarkRead)
		}

		users := api.Group("/users")
		users.Use(middleware.RequireUser())
		{
			users.GET("/group-members", deps.User.GroupMembers)
		}
	}

	return r
}
