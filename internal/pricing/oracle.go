// Package pricing получает текущий курс криптовалюты к фиатной валюте.
package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fsdevblog/usdt-exchange/internal/domain"
	"github.com/fsdevblog/usdt-exchange/internal/money"
	"github.com/shopspring/decimal"
)

// Результаты запроса курса для Metrics.
const (
	OutcomeOK          = "ok"
	OutcomeFallback    = "fallback"
	OutcomeUnavailable = "unavailable"
)

var errNonPositiveRate = errors.New("non-positive rate")

// Config настройки резервного расчета курса. По умолчанию резервный расчет выключен.
type Config struct {
	// FallbackEnabled включает расчет курса через опорную валюту, если прямой курс недоступен.
	FallbackEnabled bool
	// Anchor опорная валюта, курс к которой запрашивается у источника (обычно USD).
	Anchor money.Currency
	// AnchorToTargetRate курс опорной валюты к целевой, задается оператором.
	AnchorToTargetRate decimal.Decimal
}

func (c Config) validate() error {
	if !c.FallbackEnabled {
		return nil
	}
	if c.Anchor == "" {
		return errors.New("fallback anchor currency is empty")
	}
	if !c.AnchorToTargetRate.IsPositive() {
		return fmt.Errorf("fallback anchor rate must be positive, got %s", c.AnchorToTargetRate)
	}
	return nil
}

type NopMetrics struct{}

func (NopMetrics) ObserveFetch(domain.Pair, string) {}

// Oracle запрашивает курс у Client. Кэша и изменяемого состояния нет, каждый вызов FetchRate делает запрос.
type Oracle struct {
	client  Client
	cfg     Config
	metrics Metrics
	now     func() time.Time
}

func NewOracle(client Client, cfg Config, metrics Metrics) (*Oracle, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("pricing config: %s", err.Error())
	}
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &Oracle{
		client:  client,
		cfg:     cfg,
		metrics: metrics,
		now:     time.Now,
	}, nil
}

// FetchRate возвращает стоимость 1 единицы pair.Crypto в pair.Fiat с точностью фиатной суммы.
//
// Алгоритм работы:
//  1. Запрашивается прямой курс pair.Asset/pair.Fiat.
//  2. Если прямой курс недоступен и включен резервный расчет, запрашивается курс к опорной валюте
//     (квантуется до 6 знаков) и умножается на AnchorToTargetRate. Источник котировки PriceSourceAnchorFallback.
//  3. Любая неудача (сеть, статус, формат ответа, отсутствие курса, неположительный курс, таймаут)
//     возвращается ошибкой, оборачивающей domain.ErrPriceUnavailable.
func (o *Oracle) FetchRate(ctx context.Context, pair domain.Pair) (*domain.PriceQuote, error) {
	direct, err := o.fetch(ctx, pair.Asset, pair.Fiat, money.Places[money.Fiat]())
	if err == nil {
		o.metrics.ObserveFetch(pair, OutcomeOK)
		return &domain.PriceQuote{
			Pair:      pair,
			Rate:      money.New[money.Fiat](direct, pair.Fiat),
			Source:    domain.PriceSourceDirect,
			FetchedAt: o.now(),
		}, nil
	}

	if !o.cfg.FallbackEnabled {
		o.metrics.ObserveFetch(pair, OutcomeUnavailable)
		return nil, fmt.Errorf("%w: %s/%s: %s", domain.ErrPriceUnavailable, pair.Asset, pair.Fiat, err.Error())
	}

	anchorRate, anchorErr := o.fetch(ctx, pair.Asset, o.cfg.Anchor, money.Places[money.Crypto]())
	if anchorErr != nil {
		o.metrics.ObserveFetch(pair, OutcomeUnavailable)
		return nil, fmt.Errorf(
			"%w: %s/%s: %s; fallback via %s: %s",
			domain.ErrPriceUnavailable, pair.Asset, pair.Fiat, err.Error(), o.cfg.Anchor, anchorErr.Error(),
		)
	}

	rate := money.New[money.Fiat](anchorRate.Mul(o.cfg.AnchorToTargetRate), pair.Fiat)
	if !rate.IsPositive() {
		o.metrics.ObserveFetch(pair, OutcomeUnavailable)
		return nil, fmt.Errorf("%w: %s/%s: fallback rate %s", domain.ErrPriceUnavailable, pair.Asset, pair.Fiat, rate)
	}

	o.metrics.ObserveFetch(pair, OutcomeFallback)
	return &domain.PriceQuote{
		Pair:      pair,
		Rate:      rate,
		Source:    domain.PriceSourceAnchorFallback,
		FetchedAt: o.now(),
	}, nil
}

// fetch запрашивает курс и квантует его до places знаков. Курс, который после квантования не положителен,
// считается недоступным.
func (o *Oracle) fetch(ctx context.Context, asset string, vs money.Currency, places int32) (decimal.Decimal, error) {
	raw, err := o.client.SimplePrice(ctx, asset, string(vs))
	if err != nil {
		return decimal.Zero, err //nolint:wrapcheck
	}
	rate := money.Quantize(raw, places)
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s", errNonPositiveRate, raw)
	}
	return rate, nil
}
