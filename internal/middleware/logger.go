package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/multiblog/internal/metrics"
	"github.com/sirupsen/logrus"
)

// Logger logs every request through logrus and records its duration.
// m may be nil.
func Logger(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()

		if m != nil {
			m.RequestDuration.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Observe(latency.Seconds())
		}

		entry := logrus.WithFields(logrus.Fields{
			"status_code": status,
			"latency":     latency,
			"client_ip":   c.ClientIP(),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       route,
		})
		if len(c.Errors) > 0 {
			entry.WithField("error", c.Errors.String()).Warn("HTTP Request")
			return
		}
		entry.Info("HTTP Request")
	}
}
