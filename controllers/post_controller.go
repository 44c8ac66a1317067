package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/feedstack/feedstack/models"
	"github.com/feedstack/feedstack/services"
	"github.com/feedstack/feedstack/utils"
)

// PostController manages CRUD operations for posts.
type PostController struct {
	posts *services.PostService
}

// NewPostController creates a new PostController instance.
func NewPostController(db *gorm.DB) *PostController {
	return &PostController{posts: services.NewPostService(db)}
}

// Create inserts a new post.
func (p *PostController) Create(ctx *gin.Context) {
	var req struct {
		Title     string `json:"title" binding:"required,min=1"`
		Content   string `json:"content" binding:"required"`
		AuthorID  uint   `json:"authorId" binding:"required"`
		ImageURL  string `json:"image_url"`
		Published bool   `json:"published"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "title, content and authorId are required")
		return
	}

	title := strings.TrimSpace(utils.Sanitize(req.Title))
	if title == "" {
		utils.Error(ctx, http.StatusBadRequest, "title cannot be empty")
		return
	}

	post := models.Post{
		Title:     title,
		Content:   utils.Sanitize(req.Content),
		AuthorID:  req.AuthorID,
		ImageURL:  req.ImageURL,
		Published: req.Published,
	}
	if err := p.posts.Create(&post); err != nil {
		serviceError(ctx, err, "author")
		return
	}

	utils.InvalidateByPrefix("cache:posts:list:")
	utils.Created(ctx, post)
}

// List returns paginated posts with combinable filters: authorId,
// published, and a case-insensitive search over title and content.
func (p *PostController) List(ctx *gin.Context) {
	p.list(ctx, services.PostFilters{Search: strings.TrimSpace(ctx.Query("search"))}, false)
}

// Feed returns published posts only.
func (p *PostController) Feed(ctx *gin.Context) {
	p.list(ctx, services.PostFilters{Search: strings.TrimSpace(ctx.Query("search"))}, true)
}

func (p *PostController) list(ctx *gin.Context, filters services.PostFilters, feedOnly bool) {
	pagination := parsePagination(ctx, defaultPostPageSize)

	if raw := ctx.Query("authorId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, "invalid authorId")
			return
		}
		authorID := uint(id)
		filters.AuthorID = &authorID
	}
	if raw := ctx.Query("published"); raw != "" && !feedOnly {
		published, err := strconv.ParseBool(raw)
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, "invalid published flag")
			return
		}
		filters.Published = &published
	}

	// Cache filter-keyed pages, but skip search results to avoid cache
	// key explosion.
	cacheKey := ""
	if filters.Search == "" {
		cacheKey = listCacheKey(pagination, filters, feedOnly)
		if b, ok := utils.CacheGetBytes(cacheKey); ok {
			ctx.Data(http.StatusOK, "application/json", b)
			return
		}
	}

	var (
		posts []models.Post
		meta  services.Meta
		err   error
	)
	if feedOnly {
		posts, meta, err = p.posts.GetFeed(pagination, filters)
	} else {
		posts, meta, err = p.posts.GetAll(pagination, filters)
	}
	if err != nil {
		serviceError(ctx, err, "posts")
		return
	}

	if cacheKey != "" {
		utils.CacheSetJSON(cacheKey, utils.JSONResponse{Success: true, Data: posts, Meta: meta}, time.Hour)
	}
	utils.SuccessList(ctx, posts, meta)
}

func listCacheKey(p services.Pagination, f services.PostFilters, feedOnly bool) string {
	author := ""
	if f.AuthorID != nil {
		author = strconv.Itoa(int(*f.AuthorID))
	}
	published := ""
	if feedOnly {
		published = "true"
	} else if f.Published != nil {
		published = strconv.FormatBool(*f.Published)
	}
	return fmt.Sprintf("cache:posts:list:author=%s:published=%s:page=%d:limit=%d", author, published, p.Page, p.Limit)
}

// ListByAuthor returns one user's posts, newest first.
func (p *PostController) ListByAuthor(ctx *gin.Context) {
	authorID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	posts, meta, err := p.posts.GetAll(parsePagination(ctx, defaultPostPageSize), services.PostFilters{AuthorID: &authorID})
	if err != nil {
		serviceError(ctx, err, "posts")
		return
	}
	utils.SuccessList(ctx, posts, meta)
}

// Get returns a fully hydrated post: author, threaded comments, likes and
// counts.
func (p *PostController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	cacheKey := "cache:post:detail:" + ctx.Param("id")
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	post, err := p.posts.GetByID(id)
	if err != nil {
		serviceError(ctx, err, "post")
		return
	}
	utils.CacheSetJSON(cacheKey, utils.JSONResponse{Success: true, Data: post}, time.Hour)
	utils.Success(ctx, post)
}

// Update applies a partial update to a post.
func (p *PostController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req struct {
		Title     *string `json:"title" binding:"omitempty,min=1"`
		Content   *string `json:"content"`
		ImageURL  *string `json:"image_url"`
		Published *bool   `json:"published"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.Title != nil {
		clean := strings.TrimSpace(utils.Sanitize(*req.Title))
		if clean == "" {
			utils.Error(ctx, http.StatusBadRequest, "title cannot be empty")
			return
		}
		req.Title = &clean
	}
	if req.Content != nil {
		clean := utils.Sanitize(*req.Content)
		req.Content = &clean
	}

	post, err := p.posts.Update(id, services.PostUpdate{
		Title:     req.Title,
		Content:   req.Content,
		ImageURL:  req.ImageURL,
		Published: req.Published,
	})
	if err != nil {
		serviceError(ctx, err, "post")
		return
	}

	p.invalidatePost(ctx.Param("id"))
	utils.Success(ctx, post)
}

// SetPublished flips only the published flag.
func (p *PostController) SetPublished(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req struct {
		Published *bool `json:"published" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "published is required")
		return
	}

	post, err := p.posts.SetPublished(id, *req.Published)
	if err != nil {
		serviceError(ctx, err, "post")
		return
	}
	p.invalidatePost(ctx.Param("id"))
	utils.Success(ctx, post)
}

// Delete removes a post along with its comments and likes.
func (p *PostController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := p.posts.Delete(id); err != nil {
		serviceError(ctx, err, "post")
		return
	}
	p.invalidatePost(ctx.Param("id"))
	utils.Message(ctx, "post deleted")
}

func (p *PostController) invalidatePost(id string) {
	utils.InvalidateByPrefix("cache:posts:list:")
	utils.InvalidateByPrefix("cache:post:detail:" + id)
}
