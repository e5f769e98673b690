package middlewares

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"github.com/fsdevblog/usdt-exchange/internal/domain"
)

// UserResolver находит зарегистрированного пользователя по идентификатору в чат-платформе.
type UserResolver interface {
	FindByExternalID(ctx context.Context, externalID string) (*domain.User, error)
}

type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Window() time.Duration
}

type RequestObserver interface {
	ObserveRequest(method, route string, status int, latency time.Duration)
}
