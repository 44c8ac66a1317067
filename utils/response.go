package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSONResponse is the uniform envelope every endpoint returns.
type JSONResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Success returns a 200 with the given payload.
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, JSONResponse{Success: true, Data: data})
}

// Created returns a 201 with the given payload.
func Created(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusCreated, JSONResponse{Success: true, Data: data})
}

// SuccessList returns a 200 with one page of results and its meta block.
func SuccessList(ctx *gin.Context, data interface{}, meta interface{}) {
	ctx.JSON(http.StatusOK, JSONResponse{Success: true, Data: data, Meta: meta})
}

// Message returns a 200 carrying only a human-readable message.
func Message(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusOK, JSONResponse{Success: true, Message: message})
}

// Error returns an error envelope with the given status.
func Error(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, JSONResponse{Success: false, Error: message})
}
