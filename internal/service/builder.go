package service

import (
	"context"
	"fmt"

	"github.com/fsdevblog/usdt-exchange/internal/domain"
	"github.com/fsdevblog/usdt-exchange/internal/money"
)

// OrderBuilder рассчитывает заявку по пользовательскому вводу: получает котировку, считает комиссию
// и суммы обеих сторон. Ничего не сохраняет.
type OrderBuilder struct {
	oracle PriceOracle
	fees   FeeEngine
	pair   domain.Pair
}

func NewOrderBuilder(oracle PriceOracle, fees FeeEngine, pair domain.Pair) *OrderBuilder {
	return &OrderBuilder{
		oracle: oracle,
		fees:   fees,
		pair:   pair,
	}
}

// BuildBuyOrder рассчитывает заявку на покупку криптовалюты на сумму rawSpendFiat в фиатной валюте.
//
// Алгоритм работы:
//  1. Разбирает ввод. Некорректный ввод возвращает domain.ErrInvalidInput без обращения к источнику курса.
//  2. Получает котировку (domain.ErrPriceUnavailable, если курс недоступен).
//  3. gross = spend / rate с точностью 8 знаков, комиссия считается от gross.
//  4. net = gross - fee. Если net после округления до 6 знаков не положителен, возвращает domain.ErrAmountTooSmall.
//
// Сохраняемые суммы: crypto = net (6 знаков), fiat = spend (2 знака), commission = fee (6 знаков).
func (b *OrderBuilder) BuildBuyOrder(ctx context.Context, rawSpendFiat string) (*domain.OrderCandidate, error) {
	spendValue, parseErr := money.ParsePositive(rawSpendFiat)
	if parseErr != nil {
		return nil, fmt.Errorf("build buy order: %w: %s", domain.ErrInvalidInput, parseErr.Error())
	}
	spend := money.New[money.Fiat](spendValue, b.pair.Fiat)
	if !spend.IsPositive() {
		return nil, fmt.Errorf("build buy order: %w: %q rounds to zero", domain.ErrInvalidInput, rawSpendFiat)
	}

	quote, quoteErr := b.oracle.FetchRate(ctx, b.pair)
	if quoteErr != nil {
		return nil, fmt.Errorf("build buy order: %w", quoteErr)
	}

	gross := money.New[money.Fine](
		spend.Decimal().DivRound(quote.Rate.Decimal(), money.Places[money.Fine]()),
		b.pair.Crypto,
	)

	fee, rate, feeErr := b.fees.ComputeFee(gross)
	if feeErr != nil {
		return nil, fmt.Errorf("build buy order: %w", feeErr)
	}

	net := money.New[money.Crypto](gross.Decimal().Sub(fee.Decimal()), b.pair.Crypto)
	if !net.IsPositive() {
		return nil, fmt.Errorf("build buy order: %w: net %s after fee %s", domain.ErrAmountTooSmall, net, fee)
	}

	return &domain.OrderCandidate{
		Side:           domain.OrderSideBuy,
		CryptoAmount:   net,
		FiatAmount:     spend,
		Commission:     fee,
		GrossCrypto:    gross,
		CommissionRate: rate,
		Quote:          *quote,
	}, nil
}

// BuildSellOrder рассчитывает заявку на продажу rawSellCrypto единиц криптовалюты.
//
// Алгоритм работы:
//  1. Разбирает ввод (domain.ErrInvalidInput).
//  2. Получает котировку (domain.ErrPriceUnavailable).
//  3. Считает комиссию от gross. Если gross - fee не положителен, возвращает domain.ErrAmountTooSmall.
//  4. fiat = gross * rate с точностью 2 знака.
//
// Сохраняемые суммы: crypto = gross (6 знаков), fiat (2 знака), commission = fee (6 знаков).
func (b *OrderBuilder) BuildSellOrder(ctx context.Context, rawSellCrypto string) (*domain.OrderCandidate, error) {
	grossValue, parseErr := money.ParsePositive(rawSellCrypto)
	if parseErr != nil {
		return nil, fmt.Errorf("build sell order: %w: %s", domain.ErrInvalidInput, parseErr.Error())
	}
	gross := money.New[money.Fine](grossValue, b.pair.Crypto)
	if !gross.IsPositive() {
		return nil, fmt.Errorf("build sell order: %w: %q rounds to zero", domain.ErrInvalidInput, rawSellCrypto)
	}

	quote, quoteErr := b.oracle.FetchRate(ctx, b.pair)
	if quoteErr != nil {
		return nil, fmt.Errorf("build sell order: %w", quoteErr)
	}

	fee, rate, feeErr := b.fees.ComputeFee(gross)
	if feeErr != nil {
		return nil, fmt.Errorf("build sell order: %w", feeErr)
	}
	if !gross.Decimal().Sub(fee.Decimal()).IsPositive() {
		return nil, fmt.Errorf("build sell order: %w: fee %s eats %s", domain.ErrAmountTooSmall, fee, gross)
	}

	crypto := money.Rescale[money.Crypto](gross)
	fiat := money.New[money.Fiat](gross.Decimal().Mul(quote.Rate.Decimal()), b.pair.Fiat)
	if !crypto.IsPositive() || !fiat.IsPositive() {
		return nil, fmt.Errorf("build sell order: %w: %s is worth %s", domain.ErrAmountTooSmall, gross, fiat)
	}

	return &domain.OrderCandidate{
		Side:           domain.OrderSideSell,
		CryptoAmount:   crypto,
		FiatAmount:     fiat,
		Commission:     fee,
		GrossCrypto:    gross,
		CommissionRate: rate,
		Quote:          *quote,
	}, nil
}
