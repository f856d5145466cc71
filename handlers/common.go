package handlers

import (
	"drive/acl"
	"drive/quota"
	"drive/share"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Error string `json:"error"`
}

var (
	// Predefined errors
	OKResponse       = Response{}
	NopeResponse     = Response{"nope"}
	DBError1Response = Response{"DB Error 1"}
	DBError2Response = Response{"DB Error 2"}
)

// AbortWithError maps core errors to HTTP statuses
func AbortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, acl.ErrNotFound):
		c.JSON(http.StatusNotFound, Response{err.Error()})
	case errors.Is(err, acl.ErrForbidden):
		c.JSON(http.StatusForbidden, Response{err.Error()})
	case errors.Is(err, quota.ErrQuotaExceeded):
		c.JSON(http.StatusInsufficientStorage, Response{err.Error()})
	case errors.Is(err, share.ErrExpired), errors.Is(err, share.ErrInvalid):
		c.JSON(http.StatusGone, Response{err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, Response{err.Error()})
	}
}
