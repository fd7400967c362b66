package handler

import (
	"github.com/autospa/autospa-api/internal/application/session"
	"github.com/autospa/autospa-api/internal/presentation/http/dto/response"
	"github.com/autospa/autospa-api/internal/presentation/http/middleware"
	"github.com/autospa/autospa-api/internal/presentation/http/validation"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentSession returns the caller's session, writing a 401 when there is none
func currentSession(c *gin.Context) (*session.Session, bool) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return nil, false
	}
	return sess, true
}

// bindJSON binds the request body, writing a 422 with field errors or a 400
// for malformed input
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if fields := validation.FieldErrors(err); fields != nil {
			response.ValidationError(c, fields)
		} else {
			response.BadRequest(c, "Invalid request body")
		}
		return false
	}
	return true
}

func bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		if fields := validation.FieldErrors(err); fields != nil {
			response.ValidationError(c, fields)
		} else {
			response.BadRequest(c, "Invalid query parameters")
		}
		return false
	}
	return true
}

// uuidParam parses a path parameter as a UUID
func uuidParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// wantsCursor reports whether the caller asked for cursor pagination
func wantsCursor(c *gin.Context) bool {
	return c.Query("cursor") != "" || c.Query("limit") != ""
}
