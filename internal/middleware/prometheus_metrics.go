package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rooming-app/rooming/internal/metrics"
)

// MetricsMiddleware collects HTTP metrics for Prometheus
func MetricsMiddleware() gin.HandlerFunc {
	m := metrics.Get()

	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		duration := time.Since(startTime).Seconds()
		method := c.Request.Method
		// Route template (e.g. /api/v1/posts/:id) keeps label cardinality bounded.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		statusStr := strconv.Itoa(c.Writer.Status())

		m.HTTPRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, path, statusStr).Observe(duration)

		if c.Writer.Status() >= 500 {
			m.ErrorsTotal.WithLabelValues("server_error", path).Inc()
		}
	}
}

// RecordRateLimitExceeded records rate limiting events
func RecordRateLimitExceeded(endpoint, method string) {
	metrics.Get().RateLimitExceededTotal.WithLabelValues(endpoint, method).Inc()
}

// RecordFeedGeneration records feed build latency
func RecordFeedGeneration(feedType string, duration time.Duration) {
	metrics.Get().FeedGenerationTime.WithLabelValues(feedType).Observe(duration.Seconds())
}
