package pricing

import (
	"errors"
	"testing"
	"time"

	"github.com/fsdevblog/usdt-exchange/internal/domain"
	"github.com/fsdevblog/usdt-exchange/internal/money"
	"github.com/fsdevblog/usdt-exchange/internal/pricing/mocks"
	"github.com/fsdevblog/usdt-exchange/internal/transport/coingecko"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type OracleTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	mockClient  *mocks.MockClient
	mockMetrics *mocks.MockMetrics
	fixedNow    time.Time
}

func TestOracleSuite(t *testing.T) {
	suite.Run(t, new(OracleTestSuite))
}

func (s *OracleTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClient = mocks.NewMockClient(s.mockCtrl)
	s.mockMetrics = mocks.NewMockMetrics(s.mockCtrl)
	s.fixedNow = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
}

func (s *OracleTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *OracleTestSuite) newOracle(cfg Config) *Oracle {
	o, err := NewOracle(s.mockClient, cfg, s.mockMetrics)
	s.Require().NoError(err)
	o.now = func() time.Time { return s.fixedNow }
	return o
}

func fallbackConfig() Config {
	return Config{
		FallbackEnabled:    true,
		Anchor:             money.USD,
		AnchorToTargetRate: decimal.NewFromInt(600_000),
	}
}

func (s *OracleTestSuite) TestFetchRate_Direct() {
	s.mockClient.EXPECT().
		SimplePrice(gomock.Any(), "tether", "IRR").
		Return(decimal.RequireFromString("1200000.005"), nil)
	s.mockMetrics.EXPECT().ObserveFetch(domain.PairUSDTIRR, OutcomeOK)

	quote, err := s.newOracle(Config{}).FetchRate(s.T().Context(), domain.PairUSDTIRR)
	s.Require().NoError(err)
	s.Equal("1200000.01", quote.Rate.Fixed())
	s.Equal(money.IRR, quote.Rate.Currency())
	s.Equal(domain.PriceSourceDirect, quote.Source)
	s.Equal(domain.PairUSDTIRR, quote.Pair)
	s.Equal(s.fixedNow, quote.FetchedAt)
}

func (s *OracleTestSuite) TestFetchRate_Unavailable() {
	cases := []struct {
		name string
		rate decimal.Decimal
		err  error
	}{
		{name: "status error", err: coingecko.NewStatusCodeError(500)},
		{name: "missing field", err: coingecko.ErrRateNotFound},
		{name: "network", err: errors.New("dial tcp: connection refused")},
		{name: "zero rate", rate: decimal.Zero},
		{name: "negative rate", rate: decimal.NewFromInt(-1)},
		{name: "rate rounds to zero", rate: decimal.RequireFromString("0.004")},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			s.mockClient.EXPECT().SimplePrice(gomock.Any(), "tether", "IRR").Return(t.rate, t.err)
			s.mockMetrics.EXPECT().ObserveFetch(domain.PairUSDTIRR, OutcomeUnavailable)

			quote, err := s.newOracle(Config{}).FetchRate(s.T().Context(), domain.PairUSDTIRR)
			s.Require().ErrorIs(err, domain.ErrPriceUnavailable)
			s.Nil(quote)
		})
	}
}

func (s *OracleTestSuite) TestFetchRate_Fallback() {
	gomock.InOrder(
		s.mockClient.EXPECT().
			SimplePrice(gomock.Any(), "tether", "IRR").
			Return(decimal.Zero, coingecko.ErrRateNotFound),
		s.mockClient.EXPECT().
			SimplePrice(gomock.Any(), "tether", "USD").
			Return(decimal.RequireFromString("1.0001234"), nil),
	)
	s.mockMetrics.EXPECT().ObserveFetch(domain.PairUSDTIRR, OutcomeFallback)

	quote, err := s.newOracle(fallbackConfig()).FetchRate(s.T().Context(), domain.PairUSDTIRR)
	s.Require().NoError(err)
	// 1.000123 * 600000
	s.Equal("600073.80", quote.Rate.Fixed())
	s.Equal(domain.PriceSourceAnchorFallback, quote.Source)
}

func (s *OracleTestSuite) TestFetchRate_FallbackAlsoFails() {
	s.mockClient.EXPECT().
		SimplePrice(gomock.Any(), "tether", "IRR").
		Return(decimal.Zero, coingecko.NewStatusCodeError(502))
	s.mockClient.EXPECT().
		SimplePrice(gomock.Any(), "tether", "USD").
		Return(decimal.Zero, coingecko.NewStatusCodeError(502))
	s.mockMetrics.EXPECT().ObserveFetch(domain.PairUSDTIRR, OutcomeUnavailable)

	_, err := s.newOracle(fallbackConfig()).FetchRate(s.T().Context(), domain.PairUSDTIRR)
	s.Require().ErrorIs(err, domain.ErrPriceUnavailable)
}

func (s *OracleTestSuite) TestFetchRate_DirectPreferredOverFallback() {
	s.mockClient.EXPECT().
		SimplePrice(gomock.Any(), "tether", "IRR").
		Return(decimal.NewFromInt(1_200_000), nil)
	s.mockMetrics.EXPECT().ObserveFetch(domain.PairUSDTIRR, OutcomeOK)

	quote, err := s.newOracle(fallbackConfig()).FetchRate(s.T().Context(), domain.PairUSDTIRR)
	s.Require().NoError(err)
	s.Equal(domain.PriceSourceDirect, quote.Source)
}

func (s *OracleTestSuite) TestNewOracle_InvalidConfig() {
	_, err := NewOracle(s.mockClient, Config{FallbackEnabled: true, Anchor: money.USD}, nil)
	s.Require().Error(err)

	_, err = NewOracle(s.mockClient, Config{
		FallbackEnabled:    true,
		AnchorToTargetRate: decimal.NewFromInt(1),
	}, nil)
	s.Require().Error(err)

	o, err := NewOracle(s.mockClient, Config{}, nil)
	s.Require().NoError(err)
	s.IsType(NopMetrics{}, o.metrics)
}
