package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/feedstack/feedstack/services"
	"github.com/feedstack/feedstack/utils"
)

// Per-entity default page sizes.
const (
	defaultUserPageSize    = 10
	defaultPostPageSize    = 10
	defaultCommentPageSize = 20
	defaultLikePageSize    = 50
)

func parsePagination(ctx *gin.Context, defaultLimit int) services.Pagination {
	page, _ := strconv.Atoi(ctx.Query("page"))
	limit, _ := strconv.Atoi(ctx.Query("limit"))
	return services.NewPagination(page, limit, defaultLimit)
}

// parseID reads a positive integer path parameter, replying 400 on garbage.
func parseID(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		utils.Error(ctx, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// serviceError maps service-layer errors onto HTTP status codes. Anything
// outside the known taxonomy is logged and returned as a generic 500.
func serviceError(ctx *gin.Context, err error, entity string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, entity+" not found")
	case errors.Is(err, services.ErrEmailTaken):
		utils.Error(ctx, http.StatusConflict, "Email already in use")
	case errors.Is(err, services.ErrUsernameTaken):
		utils.Error(ctx, http.StatusConflict, "Username already in use")
	case errors.Is(err, services.ErrAlreadyLiked):
		utils.Error(ctx, http.StatusConflict, "Post already liked")
	default:
		if utils.Sugar != nil {
			utils.Sugar.Errorw("store failure",
				"entity", entity,
				"path", ctx.Request.URL.Path,
				"error", err,
			)
		}
		utils.Error(ctx, http.StatusInternalServerError, "internal server error")
	}
}
