package middleware

import (
	"net/http"
	"time"

	"siack/internal/models"

	"github.com/gin-gonic/gin"
	limit "github.com/yangxikun/gin-limit-by-key"
	"golang.org/x/time/rate"
)

// limiterTTL is how long an idle client's limiter is kept.
const limiterTTL = time.Hour

// RateLimit throttles each client IP to perSecond requests with the given burst.
func RateLimit(perSecond float64, burst int) gin.HandlerFunc {
	return limit.NewRateLimiter(func(c *gin.Context) string {
		return c.ClientIP()
	}, func(c *gin.Context) (*rate.Limiter, time.Duration) {
		return rate.NewLimiter(rate.Limit(perSecond), burst), limiterTTL
	}, func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, models.APIResponse{
			StatusCode: http.StatusTooManyRequests,
			Message:    "too many requests",
		})
	})
}
