package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/fsdevblog/usdt-exchange/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	ExternalUserIDHeader = "X-External-User-ID"
	CurrentUserIDKey     = "currentUserID"

	resolveTimeout = 3 * time.Second
)

// UserRequired определяет текущего пользователя по заголовку ExternalUserIDHeader и записывает его id в
// контекст (поле CurrentUserIDKey). Без заголовка запрос отклоняется с 401, незарегистрированный
// пользователь получает 403.
func UserRequired(resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		externalID := strings.TrimSpace(c.GetHeader(ExternalUserIDHeader))
		if externalID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "external user id required"})
			return
		}

		ctx, cancel := context.WithTimeout(c, resolveTimeout)
		defer cancel()

		user, err := resolver.FindByExternalID(ctx, externalID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotRegistered) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "user not registered"})
				_ = c.Error(err).SetType(gin.ErrorTypePrivate)
				return
			}
			_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
			return
		}

		c.Set(CurrentUserIDKey, user.ID)
		c.Next()
	}
}

// CurrentUserID берет из контекста gin ID текущего юзера. Если значения нет, вернется 0.
func CurrentUserID(c *gin.Context) int64 {
	userID, exist := c.Get(CurrentUserIDKey)
	if !exist {
		return 0
	}
	id, ok := userID.(int64)
	if !ok {
		return 0
	}
	return id
}
