package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/feedstack/feedstack/models"
	"github.com/feedstack/feedstack/services"
	"github.com/feedstack/feedstack/utils"
)

// CommentController manages post comments and their one level of nested
// replies.
type CommentController struct {
	comments *services.CommentService
}

// NewCommentController creates a new CommentController instance.
func NewCommentController(db *gorm.DB) *CommentController {
	return &CommentController{comments: services.NewCommentService(db)}
}

// CreateOnPost adds a top-level comment to a post.
func (c *CommentController) CreateOnPost(ctx *gin.Context) {
	postID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req struct {
		Content  string `json:"content" binding:"required"`
		AuthorID uint   `json:"authorId" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "content and authorId are required")
		return
	}
	content := utils.Sanitize(req.Content)
	if content == "" {
		utils.Error(ctx, http.StatusBadRequest, "content cannot be empty")
		return
	}

	comment := models.Comment{
		PostID:   postID,
		AuthorID: req.AuthorID,
		Content:  content,
	}
	if err := c.comments.Create(&comment); err != nil {
		serviceError(ctx, err, "post")
		return
	}

	utils.InvalidateByPrefix("cache:post:detail:" + ctx.Param("id"))
	utils.Created(ctx, comment)
}

// CreateReply adds a reply under an existing comment. The reply lands on
// the parent's post no matter what the caller sends.
func (c *CommentController) CreateReply(ctx *gin.Context) {
	parentID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req struct {
		Content  string `json:"content" binding:"required"`
		AuthorID uint   `json:"authorId" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "content and authorId are required")
		return
	}
	content := utils.Sanitize(req.Content)
	if content == "" {
		utils.Error(ctx, http.StatusBadRequest, "content cannot be empty")
		return
	}

	reply := models.Comment{
		AuthorID: req.AuthorID,
		Content:  content,
	}
	if err := c.comments.CreateReply(parentID, &reply); err != nil {
		serviceError(ctx, err, "comment")
		return
	}

	utils.InvalidateByPrefix("cache:post:detail:" + strconv.Itoa(int(reply.PostID)))
	utils.Created(ctx, reply)
}

// ListByPost returns a post's top-level comments, newest first, each with
// its replies oldest first.
func (c *CommentController) ListByPost(ctx *gin.Context) {
	postID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	comments, meta, err := c.comments.GetByPost(postID, parsePagination(ctx, defaultCommentPageSize))
	if err != nil {
		serviceError(ctx, err, "comments")
		return
	}
	utils.SuccessList(ctx, comments, meta)
}

// ListByAuthor returns all comments by one user, any nesting level.
func (c *CommentController) ListByAuthor(ctx *gin.Context) {
	authorID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	comments, meta, err := c.comments.GetByAuthor(authorID, parsePagination(ctx, defaultCommentPageSize))
	if err != nil {
		serviceError(ctx, err, "comments")
		return
	}
	utils.SuccessList(ctx, comments, meta)
}

// Get returns a comment with its author and replies.
func (c *CommentController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	comment, err := c.comments.GetByID(id)
	if err != nil {
		serviceError(ctx, err, "comment")
		return
	}
	utils.Success(ctx, comment)
}

// Update replaces a comment's content.
func (c *CommentController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "content is required")
		return
	}
	content := utils.Sanitize(req.Content)
	if content == "" {
		utils.Error(ctx, http.StatusBadRequest, "content cannot be empty")
		return
	}

	comment, err := c.comments.Update(id, content)
	if err != nil {
		serviceError(ctx, err, "comment")
		return
	}
	utils.InvalidateByPrefix("cache:post:detail:" + strconv.Itoa(int(comment.PostID)))
	utils.Success(ctx, comment)
}

// Delete removes a comment and its replies.
func (c *CommentController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	// Look up the post first so the detail cache can be dropped; a
	// missing comment still deletes cleanly.
	comment, err := c.comments.GetByID(id)
	if err != nil && !errors.Is(err, services.ErrNotFound) {
		serviceError(ctx, err, "comment")
		return
	}

	if err := c.comments.Delete(id); err != nil {
		serviceError(ctx, err, "comment")
		return
	}
	if comment != nil {
		utils.InvalidateByPrefix("cache:post:detail:" + strconv.Itoa(int(comment.PostID)))
	}
	utils.Message(ctx, "comment deleted")
}

// CountReplies returns the number of direct replies under a comment.
func (c *CommentController) CountReplies(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	count, err := c.comments.CountReplies(id)
	if err != nil {
		serviceError(ctx, err, "comment")
		return
	}
	utils.Success(ctx, gin.H{"count": count})
}
