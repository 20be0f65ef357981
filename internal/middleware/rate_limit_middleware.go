package middleware

import (
	"fmt"
	"net/http"
	"time"

	"gocab/internal/services"
	"gocab/internal/utils"

	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware caps requests per client IP over a one minute window.
// Redis errors fail open; losing rate limiting is better than losing traffic.
func RateLimitMiddleware(cache services.CacheService, limit int) gin.HandlerFunc {
	window := time.Minute

	return func(c *gin.Context) {
		if limit <= 0 || cache == nil {
			c.Next()
			return
		}

		key := utils.CacheRateLimitPrefix + c.ClientIP()

		count, err := cache.Increment(c.Request.Context(), key)
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			cache.SetExpire(c.Request.Context(), key, window)
		}

		if count > int64(limit) {
			retryAfter := window
			if ttl, err := cache.GetTTL(c.Request.Context(), key); err == nil && ttl > 0 {
				retryAfter = ttl
			}
			c.Header("Retry-After", fmt.Sprintf("%.0f", retryAfter.Seconds()))
			utils.ErrorResponse(c, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests")
			c.Abort()
			return
		}

		c.Next()
	}
}
