package middleware

import (
	"log"
	"time"

	"github.com/autospa/autospa-api/internal/application/session"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LoggerMiddleware logs one line per request and tags the request with an id
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		short := requestID
		if len(short) > 8 {
			short = short[:8]
		}
		user := "-"
		if sess, ok := session.FromContext(c.Request.Context()); ok {
			user = sess.Email()
		}

		log.Printf("[%s] %s %s | %d | %v | %s | %s",
			short,
			c.Request.Method,
			path,
			c.Writer.Status(),
			time.Since(start),
			c.ClientIP(),
			user,
		)

		for _, e := range c.Errors {
			log.Printf("[%s] error: %v", short, e.Err)
		}
	}
}
