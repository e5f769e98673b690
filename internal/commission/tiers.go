package commission

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/fsdevblog/usdt-exchange/internal/domain"
	"github.com/shopspring/decimal"
)

// tiersFile формат файла шкалы комиссий. Суммы и ставки задаются строками, чтобы не терять точность:
//
//	[[tiers]]
//	min  = "0"
//	max  = "10000"
//	rate = "0.025"
//
//	[[tiers]]
//	min  = "10000"
//	rate = "0.015"   # без max - неограниченный диапазон
type tiersFile struct {
	Tiers []struct {
		Min  string `toml:"min"`
		Max  string `toml:"max"`
		Rate string `toml:"rate"`
	} `toml:"tiers"`
}

// LoadTiersFile читает шкалу комиссий из TOML файла. Шкала не проверяется, проверку выполняет NewEngine.
func LoadTiersFile(path string) ([]domain.CommissionTier, error) {
	var f tiersFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("decode commission file %s: %s", path, err.Error())
	}
	return parseTiers(f)
}

// ParseTiers разбирает шкалу комиссий из TOML строки.
func ParseTiers(data string) ([]domain.CommissionTier, error) {
	var f tiersFile
	if _, err := toml.Decode(data, &f); err != nil {
		return nil, fmt.Errorf("decode commission tiers: %s", err.Error())
	}
	return parseTiers(f)
}

func parseTiers(f tiersFile) ([]domain.CommissionTier, error) {
	tiers := make([]domain.CommissionTier, len(f.Tiers))
	for i, raw := range f.Tiers {
		minAmount, minErr := decimal.NewFromString(raw.Min)
		if minErr != nil {
			return nil, fmt.Errorf("%w: tier #%d min %q", ErrInvalidTiers, i, raw.Min)
		}
		rate, rateErr := decimal.NewFromString(raw.Rate)
		if rateErr != nil {
			return nil, fmt.Errorf("%w: tier #%d rate %q", ErrInvalidTiers, i, raw.Rate)
		}
		tier := domain.CommissionTier{MinAmount: minAmount, Rate: rate}
		if raw.Max == "" {
			tier.Unbounded = true
		} else {
			maxAmount, maxErr := decimal.NewFromString(raw.Max)
			if maxErr != nil {
				return nil, fmt.Errorf("%w: tier #%d max %q", ErrInvalidTiers, i, raw.Max)
			}
			tier.MaxAmount = maxAmount
		}
		tiers[i] = tier
	}
	return tiers, nil
}
