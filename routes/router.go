package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/feedstack/feedstack/config"
	"github.com/feedstack/feedstack/controllers"
	"github.com/feedstack/feedstack/middleware"
	"github.com/feedstack/feedstack/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog())
	r.Use(middleware.Recovery())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	userController := controllers.NewUserController(db)
	postController := controllers.NewPostController(db)
	commentController := controllers.NewCommentController(db)
	likeController := controllers.NewLikeController(db)

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit())

	users := api.Group("/users")
	users.GET("", userController.List)
	users.POST("", userController.Create)
	users.GET("/:id", userController.Get)
	users.PUT("/:id", userController.Update)
	users.DELETE("/:id", userController.Delete)
	users.GET("/:id/posts", postController.ListByAuthor)
	users.GET("/:id/comments", commentController.ListByAuthor)
	users.GET("/:id/likes", likeController.ListByUser)

	// Point lookups live under the singular prefix to keep the tree free
	// of parameter conflicts.
	api.GET("/user/by-username/:username", userController.GetByUsername)
	api.GET("/user/by-email/:email", userController.GetByEmail)

	posts := api.Group("/posts")
	posts.GET("", postController.List)
	posts.POST("", postController.Create)
	posts.GET("/:id", postController.Get)
	posts.PUT("/:id", postController.Update)
	posts.DELETE("/:id", postController.Delete)
	posts.POST("/:id/publish", postController.SetPublished)
	posts.GET("/:id/comments", commentController.ListByPost)
	posts.POST("/:id/comments", commentController.CreateOnPost)
	posts.POST("/:id/like", likeController.Toggle)
	posts.PUT("/:id/like", likeController.Like)
	posts.DELETE("/:id/like", likeController.Unlike)
	posts.GET("/:id/like/status", likeController.Status)
	posts.GET("/:id/likes", likeController.ListByPost)
	posts.GET("/:id/likes/count", likeController.Count)

	api.GET("/feed", postController.Feed)

	comments := api.Group("/comments")
	comments.GET("/:id", commentController.Get)
	comments.PUT("/:id", commentController.Update)
	comments.DELETE("/:id", commentController.Delete)
	comments.POST("/:id/replies", commentController.CreateReply)
	comments.GET("/:id/replies/count", commentController.CountReplies)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, "route not found")
	})

	return r
}
