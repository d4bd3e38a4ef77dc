package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimitMiddleware - ограничение частоты запросов по IP клиента.
// rate задается в формате limiter, например "100-M".
func RateLimitMiddleware(rate string, log *logrus.Logger) (gin.HandlerFunc, error) {
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", rate, err)
	}

	instance := limiter.New(memory.NewStore(), parsed)

	return mgin.NewMiddleware(instance,
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			log.WithField("client_ip", c.ClientIP()).Warn("Rate limit exceeded")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
		}),
		// При сбое хранилища запрос обслуживается без ограничения
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			log.WithError(err).Error("Rate limiter store failed")
			c.Next()
		}),
	), nil
}
