package middlewares

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RateLimit ограничивает частоту запросов. Ключ лимита: id текущего пользователя, а если его нет, IP клиента.
// При ошибке лимитера запрос пропускается.
func RateLimit(limiter RateLimiter, l *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if userID := CurrentUserID(c); userID != 0 {
			key = "user:" + strconv.FormatInt(userID, 10)
		}

		allowed, err := limiter.Allow(c, key)
		if err != nil {
			if l != nil {
				l.WithError(err).WithField("key", key).Warn("rate limiter unavailable")
			}
			c.Next()
			return
		}

		if !allowed {
			retryAfter := int(math.Ceil(limiter.Window().Seconds()))
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		c.Next()
	}
}
