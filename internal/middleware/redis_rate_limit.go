package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rooming-app/rooming/internal/kv"
	"github.com/rooming-app/rooming/internal/logger"
)

// RedisRateLimitMiddleware creates a distributed rate limiter backed by
// Redis, so the limit holds across multiple instances. Pass a nil client
// to disable limiting (memory-store deployments, tests).
func RedisRateLimitMiddleware(client *kv.Redis, maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		key := fmt.Sprintf("rate-limit-%s", clientIP)
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		count, err := client.Incr(ctx, key)
		if err != nil {
			// A broken limiter must not open the API up; reject instead.
			logger.Log.Error("Rate limit check failed, rejecting request",
				logger.WithIP(clientIP),
				zap.Error(err),
			)
			c.JSON(503, gin.H{"error": "service_unavailable"})
			c.Abort()
			return
		}

		if count == 1 {
			if err := client.Expire(ctx, key, window); err != nil {
				logger.Log.Warn("Failed to set rate limit expiration",
					logger.WithIP(clientIP),
					zap.Error(err),
				)
			}
		}

		if count > int64(maxRequests) {
			logger.Log.Warn("Rate limit exceeded",
				logger.WithIP(clientIP),
				zap.Int("max_requests", maxRequests),
				zap.Int64("current_requests", count),
			)
			RecordRateLimitExceeded(c.FullPath(), c.Request.Method)
			c.JSON(429, gin.H{
				"error":       "rate_limit_exceeded",
				"retry_after": window.Seconds(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
