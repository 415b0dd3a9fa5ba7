package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"loginapp/internal/cache"
)

const sharedLimitTimeout = 250 * time.Millisecond

// SharedRateLimit allows at most limit requests per client IP per window,
// counted in Redis so the budget holds across instances. Redis errors let the
// request through. A non-positive limit disables the check.
func SharedRateLimit(counter cache.Counter, name string, limit int, window time.Duration) gin.HandlerFunc {
	if window <= 0 {
		window = time.Minute
	}
	return func(c *gin.Context) {
		if counter == nil || limit <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), sharedLimitTimeout)
		defer cancel()

		count, err := counter.Incr(ctx, name+":ip:"+c.ClientIP(), window)
		if err != nil {
			log.Warn().Err(err).Msg("shared rate limit unavailable")
			c.Next()
			return
		}

		if count > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}

		c.Next()
	}
}
