// Package routes mounts the HTTP surface under /api/v1.
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emreakn/researchdesk/internal/app/controllers"
	"github.com/emreakn/researchdesk/internal/app/models"
	"github.com/emreakn/researchdesk/internal/middleware"
	"github.com/emreakn/researchdesk/internal/pkg/auth"
)

// Setup registers every route on the engine.
func Setup(router *gin.Engine, ctrl *controllers.Controllers, jwtService *auth.JWTService, uploadsPath string) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Stored attachments are served directly
	router.Static("/uploads", uploadsPath)

	v1 := router.Group("/api/v1")

	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", ctrl.Auth.Register)
		authGroup.POST("/login", ctrl.Auth.Login)
		authGroup.GET("/user", middleware.JWTAuth(jwtService), ctrl.Auth.CurrentUser)
	}

	protected := v1.Group("")
	protected.Use(middleware.JWTAuth(jwtService))
	{
		protected.POST("/summarize", ctrl.Summarize.Summarize)

		posts := protected.Group("/posts")
		{
			posts.POST("", ctrl.Post.CreatePost)
			posts.GET("", ctrl.Post.GetPosts)
			posts.GET("/:id", ctrl.Post.GetPost)
			posts.PUT("/:id", ctrl.Post.UpdatePost)
			posts.POST("/:id/reactions", ctrl.Post.AddReaction)
			posts.DELETE("/:id/reactions/:type", ctrl.Post.RemoveReaction)
			posts.POST("/:id/comments", ctrl.Post.AddComment)
		}

		// Lives outside /posts so the author segment cannot collide with a post id
		protected.GET("/users/:userId/posts", ctrl.Post.GetPostsByUser)

		fundManager := protected.Group("/fund-manager")
		fundManager.Use(middleware.RoleRequired(models.RoleFundManager))
		{
			fundManager.POST("/posts/:id/like", ctrl.FundManager.LikePost)
			fundManager.DELETE("/posts/:id/like", ctrl.FundManager.UnlikePost)
			fundManager.GET("/liked-posts", ctrl.FundManager.GetLikedPosts)
		}

		interviews := protected.Group("/interviews")
		{
			interviews.POST("", ctrl.Interview.CreateInterview)
			interviews.GET("", ctrl.Interview.GetInterviews)
		}
	}
}
