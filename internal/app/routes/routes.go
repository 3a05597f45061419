package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stackit/stackit/internal/app/controllers"
	"github.com/stackit/stackit/internal/app/models/dto"
	"github.com/stackit/stackit/internal/middleware"
	"github.com/stackit/stackit/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	questionController *controllers.QuestionController,
	answerController *controllers.AnswerController,
	voteController *controllers.VoteController,
	postController *controllers.PostController,
	notificationController *controllers.NotificationController,
	adminController *controllers.AdminController,
	chatController *controllers.ChatController,
	authMiddleware *middleware.AuthMiddleware,
	wsHub *websocket.Hub,
	lgr zerolog.Logger,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Public read routes ---
	// Questions and the community feed are browsable without an account
	questions := v1.Group("/questions")
	{
		questions.GET("", questionController.GetQuestions)
		questions.GET("/:id", questionController.GetQuestionByID)
	}

	posts := v1.Group("/posts")
	{
		posts.GET("", postController.GetPosts)
		posts.GET("/:id", postController.GetPostByID)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Session and profile
		authProtected := authenticated.Group("/auth")
		{
			authProtected.POST("/logout", authController.Logout)
			authProtected.GET("/me", authController.GetMe)
			authProtected.PUT("/me", authController.UpdateProfile)
		}

		// Question authoring and voting
		questionsProtected := authenticated.Group("/questions")
		{
			questionsProtected.POST("", questionController.CreateQuestion)
			questionsProtected.PUT("/:id", questionController.UpdateQuestion)
			questionsProtected.DELETE("/:id", questionController.DeleteQuestion)

			questionsProtected.POST("/:id/vote", voteController.VoteQuestion)
			questionsProtected.GET("/:id/vote", voteController.GetQuestionVoteStatus)

			questionsProtected.POST("/:id/answers", answerController.CreateAnswer)
			questionsProtected.POST("/:id/answers/:answerId/accept", answerController.AcceptAnswer)
		}

		// Answer authoring and voting
		answersProtected := authenticated.Group("/answers")
		{
			answersProtected.PUT("/:id", answerController.UpdateAnswer)
			answersProtected.DELETE("/:id", answerController.DeleteAnswer)

			answersProtected.POST("/:id/vote", voteController.VoteAnswer)
			answersProtected.GET("/:id/vote", voteController.GetAnswerVoteStatus)
		}

		// Community feed authoring and reactions
		postsProtected := authenticated.Group("/posts")
		{
			postsProtected.POST("", postController.CreatePost)
			postsProtected.PUT("/:id", postController.UpdatePost)
			postsProtected.DELETE("/:id", postController.DeletePost)

			postsProtected.POST("/:id/like", postController.ToggleLike)
			postsProtected.POST("/:id/comments", postController.AddComment)
			postsProtected.POST("/:id/share", postController.SharePost)
		}

		// Notifications
		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", notificationController.GetNotifications)
			notifications.GET("/unread-count", notificationController.GetUnreadCount)
			notifications.PUT("/read-all", notificationController.MarkAllRead)
			notifications.PUT("/:id/read", notificationController.MarkRead)
			notifications.DELETE("/:id", notificationController.DeleteNotification)
		}

		// AI assistant
		authenticated.POST("/chat", chatController.Ask)

		// WebSocket notification push. JWTAuth accepts a token query
		// parameter here because browsers cannot set headers on upgrade
		// requests.
		authenticated.GET("/ws", websocket.ServeWS(wsHub, lgr))

		// Admin-only routes
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.AdminRequired())
		{
			admin.GET("/users", adminController.GetUsers)
			admin.DELETE("/users/:id", adminController.DeleteUser)
			admin.PUT("/users/:id/admin", adminController.ToggleAdmin)

			admin.DELETE("/questions/:id", adminController.DeleteQuestion)
			admin.DELETE("/answers/:id", adminController.DeleteAnswer)
			admin.DELETE("/posts/:id", adminController.DeletePost)

			admin.GET("/analytics", adminController.GetAnalytics)
			admin.GET("/logs", adminController.GetLogs)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})

	// Swagger routes are set up in bootstrap.go already
}
