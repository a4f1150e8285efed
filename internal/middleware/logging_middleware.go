// internal/middleware/logging_middleware.go
package middleware

import (
	"time"

	"tour-admin/internal/pkg/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggingMiddleware writes one access log line per request.
func LoggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if id, ok := GetIdentityID(c); ok {
			fields = append(fields, zap.Int64("identity_id", id))
		}
		if jti, ok := GetJTI(c); ok {
			fields = append(fields, zap.String("jti", jti))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		level := zapcore.InfoLevel
		switch {
		case status >= 500:
			level = zapcore.ErrorLevel
		case status >= 400:
			level = zapcore.WarnLevel
		}
		logger.Check(level, "http request").Write(fields...)
	}
}

// SessionTeardown gives each request a flag that gateway calls can raise when
// the backend rejects the session credential.
func SessionTeardown() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, _ := session.WithTeardown(c.Request.Context())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
