package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	loggerKey       = "logger"
	RequestIDHeader = "X-Request-Id"
)

// WithLogger attaches a request-scoped entry to the context and logs each
// request once it completes.
func WithLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header(RequestIDHeader, requestID)

		c.Set(loggerKey, logger.WithFields(logrus.Fields{
			"request-id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
		}))

		c.Next()

		status := c.Writer.Status()
		fields := Logger(c).WithFields(logrus.Fields{
			"status-code": status,
			"duration":    time.Since(start),
			"ip":          c.ClientIP(),
		})
		if len(c.Errors) > 0 {
			fields = fields.WithField("errors", c.Errors.String())
		}
		switch {
		case status >= 500:
			fields.Error("request completed")
		case status >= 400:
			fields.Warn("request completed")
		default:
			fields.Info("request completed")
		}
	}
}

// Logger returns the request-scoped entry, or the standard logger outside
// of WithLogger.
func Logger(c *gin.Context) *logrus.Entry {
	if v, ok := c.Get(loggerKey); ok {
		if entry, ok := v.(*logrus.Entry); ok {
			return entry
		}
	}
	return logrus.NewEntry(logrus.StandardLogger())
}
