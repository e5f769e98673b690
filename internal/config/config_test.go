package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) TestFlagsDefaults() {
	conf, err := load([]string{"-d", "postgres://localhost/exchange"})
	s.Require().NoError(err)

	s.Equal("localhost:8080", conf.RunAddress)
	s.Equal("postgres://localhost/exchange", conf.DatabaseDSN)
	s.Equal("internal/db/migrations", conf.MigrationsDir)
	s.Equal("https://api.coingecko.com/api/v3", conf.PriceSourceURL)
	s.Equal(10*time.Second, conf.PriceTimeout)
	s.Equal(10, conf.RateLimit)
	s.Equal(time.Minute, conf.RateLimitWindow)
	s.False(conf.FallbackEnabled)
	s.Empty(conf.RedisAddr)
}

func (s *ConfigTestSuite) TestEnvOverridesFlags() {
	s.T().Setenv("RUN_ADDRESS", ":9090")
	s.T().Setenv("DATABASE_URI", "postgres://env/exchange")
	s.T().Setenv("PRICE_FALLBACK_ENABLED", "true")
	s.T().Setenv("PRICE_ANCHOR_RATE", "600000")
	s.T().Setenv("PRICE_TIMEOUT", "5s")

	conf, err := load([]string{"-a", ":8081", "-d", "postgres://flag/exchange", "-r", "localhost:6379"})
	s.Require().NoError(err)

	s.Equal(":9090", conf.RunAddress)
	s.Equal("postgres://env/exchange", conf.DatabaseDSN)
	s.Equal("localhost:6379", conf.RedisAddr)
	s.True(conf.FallbackEnabled)
	s.Equal("600000", conf.AnchorToTargetRate.String())
	s.Equal("USD", conf.AnchorCurrency)
	s.Equal(5*time.Second, conf.PriceTimeout)
}

func (s *ConfigTestSuite) TestValidation() {
	cases := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{name: "no dsn"},
		{
			name: "fallback without anchor rate",
			env:  map[string]string{"PRICE_FALLBACK_ENABLED": "true"},
			args: []string{"-d", "postgres://localhost/exchange"},
		},
		{
			name: "non-positive timeout",
			env:  map[string]string{"PRICE_TIMEOUT": "0s"},
			args: []string{"-d", "postgres://localhost/exchange"},
		},
		{
			name: "zero rate limit with redis",
			env:  map[string]string{"RATE_LIMIT": "0"},
			args: []string{"-d", "postgres://localhost/exchange", "-r", "localhost:6379"},
		},
		{
			name: "unknown flag",
			args: []string{"-x"},
		},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			for k, v := range tc.env {
				s.T().Setenv(k, v)
			}
			_, err := load(tc.args)
			s.Error(err)
		})
	}
}
