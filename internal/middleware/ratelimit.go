package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/feedloop/feedloop/internal/modules/serializer"
	"github.com/feedloop/feedloop/internal/pkg/ratelimit"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimit throttles a route group with a fixed-window counter keyed by
// client IP and path. The limiter is best effort: on limiter errors the
// request proceeds rather than locking out all clients.
func RateLimit(limiter ratelimit.Limiter, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP() + ":" + c.FullPath()

		res, err := limiter.Check(c.Request.Context(), key)
		if err != nil {
			log.Sugar().Warnw("rate limit check failed", "key", key, "err", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		if !res.Allowed {
			retry := int(time.Until(res.ResetTime).Seconds())
			if retry < 1 {
				retry = 1
			}
			c.Header("Retry-After", strconv.Itoa(retry))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, serializer.RateLimitErr())
			return
		}
		c.Next()
	}
}
