package router

import (
	"github.com/gin-gonic/gin"
	"github.com/ikkim/camping-backend/config"
	"github.com/ikkim/camping-backend/internal/app/controller"
	"github.com/ikkim/camping-backend/internal/metrics"
	"github.com/ikkim/camping-backend/internal/middleware"
)

type Router struct {
	boardController   *controller.BoardController
	commentController *controller.CommentController
	reviewController  *controller.ReviewController
	memberController  *controller.MemberController
	uploadController  *controller.UploadController
	identity          *middleware.IdentityMiddleware
	config            *config.Config
}

func NewRouter(
	boardController *controller.BoardController,
	commentController *controller.CommentController,
	reviewController *controller.ReviewController,
	memberController *controller.MemberController,
	uploadController *controller.UploadController,
	identity *middleware.IdentityMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		boardController:   boardController,
		commentController: commentController,
		reviewController:  reviewController,
		memberController:  memberController,
		uploadController:  uploadController,
		identity:          identity,
		config:            cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))
	router.Use(r.identity.Identify())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Camping API is running",
		})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	auth := r.identity.RequireMember()

	v1 := router.Group("/api/v1")
	{
		boards := v1.Group("/boards")
		{
			boards.GET("", r.boardController.ListByCategory)
			boards.GET("/top", r.boardController.GetTopBoards)
			boards.GET("/search", r.boardController.Search)
			boards.GET("/:id", r.boardController.GetDetail)
			boards.POST("", auth, r.boardController.CreateBoard)
			boards.PUT("/:id", auth, r.boardController.UpdateBoard)
			boards.DELETE("/:id", auth, r.boardController.DeleteBoard)
			boards.POST("/:id/like", auth, r.boardController.LikeBoard)
			boards.DELETE("/:id/like", auth, r.boardController.UnlikeBoard)

			boards.GET("/:id/comments", r.commentController.ListComments)
			boards.POST("/:id/comments", auth, r.commentController.CreateComment)
		}

		comments := v1.Group("/comments")
		comments.Use(auth)
		{
			comments.DELETE("/:commentId", r.commentController.DeleteComment)
		}

		reviews := v1.Group("/reviews")
		{
			reviews.GET("", r.reviewController.ListReviews)
			reviews.GET("/summary", r.reviewController.GetSummary)
			reviews.POST("", auth, r.reviewController.AddReview)
			reviews.PUT("/:id", auth, r.reviewController.UpdateReview)
			reviews.DELETE("/:id", auth, r.reviewController.DeleteReview)
		}

		members := v1.Group("/members")
		{
			members.POST("", auth, r.memberController.Register)
			members.GET("/me", auth, r.memberController.GetMe)
			members.GET("/me/reviews", auth, r.reviewController.ListMyReviews)
			members.GET("/rank", r.memberController.GetRanking)
			members.GET("/rank/weekly", r.memberController.GetWeeklyRanking)
		}

		uploads := v1.Group("/uploads")
		uploads.Use(auth)
		{
			uploads.POST("/presigned-url", r.uploadController.GeneratePresignedURL)
		}
	}

	// 내부 배치/운영 도구 전용. 게이트웨이에서 외부 노출을 막는다.
	internal := router.Group("/internal")
	{
		internal.PUT("/boards/:id/rank", r.boardController.UpdateRank)
		internal.DELETE("/reviews/:id", r.reviewController.RemoveReview)
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
