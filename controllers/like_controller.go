package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/feedstack/feedstack/services"
	"github.com/feedstack/feedstack/utils"
)

// LikeController manages the like relation between users and posts.
type LikeController struct {
	likes *services.LikeService
}

// NewLikeController creates a new LikeController instance.
func NewLikeController(db *gorm.DB) *LikeController {
	return &LikeController{likes: services.NewLikeService(db)}
}

type likeRequest struct {
	UserID uint `json:"userId" binding:"required"`
}

// Toggle flips the like state and reports the resulting state.
func (l *LikeController) Toggle(ctx *gin.Context) {
	postID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req likeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "userId is required")
		return
	}

	result, err := l.likes.Toggle(req.UserID, postID)
	if err != nil {
		serviceError(ctx, err, "post")
		return
	}
	utils.InvalidateByPrefix("cache:post:detail:" + ctx.Param("id"))
	utils.Success(ctx, result)
}

// Like creates the like outright; liking a post twice is a conflict.
func (l *LikeController) Like(ctx *gin.Context) {
	postID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req likeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "userId is required")
		return
	}

	like, err := l.likes.Like(req.UserID, postID)
	if err != nil {
		serviceError(ctx, err, "post")
		return
	}
	utils.InvalidateByPrefix("cache:post:detail:" + ctx.Param("id"))
	utils.Created(ctx, like)
}

// Unlike removes the like. Unliking a post that was never liked succeeds.
func (l *LikeController) Unlike(ctx *gin.Context) {
	postID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req likeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "userId is required")
		return
	}

	if err := l.likes.Unlike(req.UserID, postID); err != nil {
		serviceError(ctx, err, "post")
		return
	}
	utils.InvalidateByPrefix("cache:post:detail:" + ctx.Param("id"))
	utils.Message(ctx, "post unliked")
}

// Status reports whether the given user has liked the post.
func (l *LikeController) Status(ctx *gin.Context) {
	postID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	raw := ctx.Query("userId")
	userID, err := strconv.ParseUint(raw, 10, 32)
	if raw == "" || err != nil || userID == 0 {
		utils.Error(ctx, http.StatusBadRequest, "userId is required")
		return
	}

	liked, err := l.likes.HasLiked(uint(userID), postID)
	if err != nil {
		serviceError(ctx, err, "post")
		return
	}
	utils.Success(ctx, gin.H{"liked": liked})
}

// ListByPost returns the likes on a post with the liking users embedded.
func (l *LikeController) ListByPost(ctx *gin.Context) {
	postID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	likes, meta, err := l.likes.GetByPost(postID, parsePagination(ctx, defaultLikePageSize))
	if err != nil {
		serviceError(ctx, err, "likes")
		return
	}
	utils.SuccessList(ctx, likes, meta)
}

// ListByUser returns a user's likes with the liked posts embedded.
func (l *LikeController) ListByUser(ctx *gin.Context) {
	userID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	likes, meta, err := l.likes.GetByUser(userID, parsePagination(ctx, defaultLikePageSize))
	if err != nil {
		serviceError(ctx, err, "likes")
		return
	}
	utils.SuccessList(ctx, likes, meta)
}

// Count returns the number of likes on a post.
func (l *LikeController) Count(ctx *gin.Context) {
	postID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	count, err := l.likes.CountByPost(postID)
	if err != nil {
		serviceError(ctx, err, "post")
		return
	}
	utils.Success(ctx, gin.H{"count": count})
}
