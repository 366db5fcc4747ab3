package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KaushikNaik2/Schedulix/internal/api/middleware"
	"github.com/KaushikNaik2/Schedulix/internal/dto"
	"github.com/KaushikNaik2/Schedulix/pkg/response"
)

// MustGetUserID reads the authenticated user id set by JWTAuth.
// On false a 401 has already been written and the caller should return.
func MustGetUserID(c *gin.Context) (string, bool) {
	return mustGetString(c, middleware.ContextUserID)
}

// MustGetRole reads the authenticated role
func MustGetRole(c *gin.Context) (string, bool) {
	return mustGetString(c, middleware.ContextRole)
}

// MustGetToken reads the token id and expiry of the current request
func MustGetToken(c *gin.Context) (string, time.Time, bool) {
	jti, ok := mustGetString(c, middleware.ContextTokenID)
	if !ok {
		return "", time.Time{}, false
	}
	exp, ok := c.Get(middleware.ContextTokenExp)
	if !ok {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", time.Time{}, false
	}
	t, ok := exp.(time.Time)
	if !ok {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", time.Time{}, false
	}
	return jti, t, true
}

func mustGetString(c *gin.Context, key string) (string, bool) {
	v, exists := c.Get(key)
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// pathID binds the :id segment as a UUID. A malformed id cannot name any row,
// so it is answered as not found; on false the 404 has been written.
func pathID(c *gin.Context, notFoundCode int, message string) (string, bool) {
	var p dto.IDParam
	if err := c.ShouldBindUri(&p); err != nil {
		response.NotFound(c, notFoundCode, message)
		return "", false
	}
	return p.ID, true
}

// bodyTooLarge reports whether err came from an http.MaxBytesReader limit
func bodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
