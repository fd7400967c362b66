package middleware

import (
	"errors"
	"strings"

	"github.com/autospa/autospa-api/internal/application/session"
	"github.com/autospa/autospa-api/internal/presentation/http/dto/response"
	"github.com/autospa/autospa-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionKey is the gin context key holding the *session.Session
const SessionKey = "session"

// AuthMiddleware turns a bearer access token into a session. The session is
// stored on the gin context and on the request context.
func AuthMiddleware(jwtManager *utils.JWTManager, revocations *session.Revocations) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				response.Unauthorized(c, "Token has expired")
			} else {
				response.Unauthorized(c, "Invalid or expired token")
			}
			c.Abort()
			return
		}

		sess := session.New(claims, revocations)
		if !sess.IsAuthenticated() {
			response.Unauthorized(c, "Session has ended, please sign in again")
			c.Abort()
			return
		}

		c.Set(SessionKey, sess)
		c.Request = c.Request.WithContext(session.WithSession(c.Request.Context(), sess))

		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// CurrentSession returns the session set by AuthMiddleware
func CurrentSession(c *gin.Context) (*session.Session, bool) {
	v, exists := c.Get(SessionKey)
	if !exists {
		return nil, false
	}
	sess, ok := v.(*session.Session)
	return sess, ok && sess.IsAuthenticated()
}

// RequirePermission creates a middleware that requires a specific permission
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := CurrentSession(c)
		if !ok {
			response.Unauthorized(c, "Sign in required")
			c.Abort()
			return
		}
		if !sess.Can(permission) {
			response.Forbidden(c, "You do not have permission to perform this action")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole creates a middleware that requires one of roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := CurrentSession(c)
		if !ok {
			response.Unauthorized(c, "Sign in required")
			c.Abort()
			return
		}
		for _, role := range roles {
			if sess.Role() == role {
				c.Next()
				return
			}
		}
		response.Forbidden(c, "Insufficient role privileges")
		c.Abort()
	}
}
