package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"studybuddy/internal/util"
)

// RequestLogger logs one line per request, at warn level for 4xx and error level for 5xx
func RequestLogger(log *util.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		fields := []interface{}{
			"method", strings.ToUpper(c.Request.Method),
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", c.GetString("request_id"),
		}

		var err error
		if last := c.Errors.Last(); last != nil {
			err = last
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", err, fields...)
		case status >= 400:
			log.Warn("HTTP request", err, fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}
