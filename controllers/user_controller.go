package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/feedstack/feedstack/models"
	"github.com/feedstack/feedstack/services"
	"github.com/feedstack/feedstack/utils"
)

// UserController manages CRUD operations for users.
type UserController struct {
	users *services.UserService
}

// NewUserController creates a new UserController instance.
func NewUserController(db *gorm.DB) *UserController {
	return &UserController{users: services.NewUserService(db)}
}

// List returns paginated users, newest first.
func (u *UserController) List(ctx *gin.Context) {
	users, meta, err := u.users.GetAll(parsePagination(ctx, defaultUserPageSize))
	if err != nil {
		serviceError(ctx, err, "users")
		return
	}
	utils.SuccessList(ctx, users, meta)
}

// Create registers a new user.
func (u *UserController) Create(ctx *gin.Context) {
	var req struct {
		Email     string `json:"email" binding:"required,email"`
		Username  string `json:"username" binding:"required,min=1"`
		Name      string `json:"name"`
		AvatarURL string `json:"avatar_url"`
		Bio       string `json:"bio"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "email and username are required")
		return
	}

	user := models.User{
		Email:     req.Email,
		Username:  req.Username,
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
		Bio:       utils.Sanitize(req.Bio),
	}
	if err := u.users.Create(&user); err != nil {
		serviceError(ctx, err, "user")
		return
	}
	utils.Created(ctx, user)
}

// Get returns a single user by id.
func (u *UserController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	user, err := u.users.GetByID(id)
	if err != nil {
		serviceError(ctx, err, "user")
		return
	}
	utils.Success(ctx, user)
}

// GetByUsername returns a single user by username.
func (u *UserController) GetByUsername(ctx *gin.Context) {
	user, err := u.users.GetByUsername(ctx.Param("username"))
	if err != nil {
		serviceError(ctx, err, "user")
		return
	}
	utils.Success(ctx, user)
}

// GetByEmail returns a single user by email.
func (u *UserController) GetByEmail(ctx *gin.Context) {
	user, err := u.users.GetByEmail(ctx.Param("email"))
	if err != nil {
		serviceError(ctx, err, "user")
		return
	}
	utils.Success(ctx, user)
}

// Update applies a partial update to a user.
func (u *UserController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req struct {
		Email     *string `json:"email" binding:"omitempty,email"`
		Username  *string `json:"username" binding:"omitempty,min=1"`
		Name      *string `json:"name"`
		AvatarURL *string `json:"avatar_url"`
		Bio       *string `json:"bio"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.Bio != nil {
		clean := utils.Sanitize(*req.Bio)
		req.Bio = &clean
	}

	user, err := u.users.Update(id, services.UserUpdate{
		Email:     req.Email,
		Username:  req.Username,
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
		Bio:       req.Bio,
	})
	if err != nil {
		serviceError(ctx, err, "user")
		return
	}
	utils.Success(ctx, user)
}

// Delete removes a user and, through the schema cascade, everything the
// user wrote or liked.
func (u *UserController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := u.users.Delete(id); err != nil {
		serviceError(ctx, err, "user")
		return
	}
	utils.InvalidateByPrefix("cache:posts:list:")
	utils.Message(ctx, "user deleted")
}
