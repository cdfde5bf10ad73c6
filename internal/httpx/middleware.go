package httpx

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MikeMC777/khattak-mart/internal/auth"
	"github.com/MikeMC777/khattak-mart/internal/result"
)

const ridKey = "rid"

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(ridKey, rid)
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Next()
	}
}

// Logger writes one line per request once the handler chain has finished.
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		fields := []zap.Field{
			zap.String("rid", c.GetString(ridKey)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("dur", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			logger.Error("http", fields...)
		default:
			logger.Info("http", fields...)
		}
	}
}

// RequireAdmin rejects requests without a live session cookie.
func RequireAdmin(sessions *auth.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, err := c.Cookie(auth.CookieName)
		if err != nil || !sessions.Valid(tok) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, result.Fail[any]("Unauthorized"))
			return
		}
		c.Next()
	}
}
