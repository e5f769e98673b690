package pricing

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/fsdevblog/usdt-exchange/internal/domain"
	"github.com/shopspring/decimal"
)

// Client источник котировок.
type Client interface {
	SimplePrice(ctx context.Context, asset string, vsCurrency string) (decimal.Decimal, error)
}

// Metrics принимает результат каждого запроса курса.
type Metrics interface {
	ObserveFetch(pair domain.Pair, outcome string)
}
