package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window limiter per IP, method and route. It is a
// no-op when Redis is not configured.
func RateLimiter(maxRequests int, window time.Duration) gin.HandlerFunc {
	return rateLimiter(func() *redis.Client { return config.RedisClient }, maxRequests, window)
}

func rateLimiter(client func() *redis.Client, maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		rdb := client()
		if rdb == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = c.Request.URL.Path
		}
		key := "rl:" + c.ClientIP() + ":" + c.Request.Method + ":" + endpoint

		// INCR and the first-hit EXPIRE go out together; the TTL is the
		// stable reset time for the window.
		var incr *redis.IntCmd
		var ttl *redis.DurationCmd
		_, err := rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
			incr = p.Incr(ctx, key)
			p.ExpireNX(ctx, key, window)
			ttl = p.PTTL(ctx, key)
			return nil
		})
		if err != nil {
			config.Log.Warn("[rate-limit] redis unavailable, allowing request", "key", key, "error", err)
			c.Next()
			return
		}

		count := incr.Val()
		resetIn := ttl.Val()
		if resetIn < 0 {
			resetIn = window
		}
		resetAt := time.Now().Add(resetIn)

		remaining := maxRequests - int(count)
		if remaining < 0 {
			remaining = 0
		}

		rate := &models.RateLimiter{
			Limit:          maxRequests,
			Remaining:      remaining,
			ResetAt:        resetAt,
			ResetInSeconds: int(resetIn.Round(time.Second).Seconds()),
		}
		c.Set("rateLimiter", rate)

		if int(count) > maxRequests {
			c.Header("Retry-After", strconv.Itoa(rate.ResetInSeconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ApiResponse{
				Message: "Too many requests",
				Error:   true,
				Rate:    rate,
			})
			return
		}

		c.Next()
	}
}
