package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"journify/services"

	"github.com/gin-gonic/gin"
)

const (
	codeInvalidID          = "invalid_id"
	codeInvalidRequest     = "invalid_request"
	codeNotFound           = "not_found"
	codeUnsupportedDoc     = "unsupported_document"
	codeStorageUnavailable = "storage_unavailable"
	codeInternal           = "internal_error"
)

func abortWithError(ctx *gin.Context, status int, code, message string) {
	ctx.AbortWithStatusJSON(status, gin.H{"code": code, "error": message})
}

// respondError maps service errors to a status and a stable code. The
// underlying error is logged, never sent to the client.
func respondError(ctx *gin.Context, err error, resource string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		abortWithError(ctx, http.StatusNotFound, codeNotFound, resource+" not found")
	case errors.Is(err, services.ErrInvalidInput):
		abortWithError(ctx, http.StatusBadRequest, codeInvalidRequest, err.Error())
	case errors.Is(err, services.ErrStorageUnavailable), errors.Is(err, services.ErrConstraintViolation):
		log.Printf("%s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, err)
		abortWithError(ctx, http.StatusInternalServerError, codeStorageUnavailable, "storage unavailable")
	default:
		log.Printf("%s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, err)
		abortWithError(ctx, http.StatusInternalServerError, codeInternal, "internal error")
	}
}

// paramID parses the positive integer path parameter name, answering 400
// when it is not one.
func paramID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		abortWithError(ctx, http.StatusBadRequest, codeInvalidID, name+" must be a positive integer")
		return 0, false
	}
	return uint(id), true
}
