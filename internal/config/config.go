package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	RunAddress     string `env:"RUN_ADDRESS"`
	DatabaseDSN    string `env:"DATABASE_URI"`
	MigrationsDir  string `env:"MIGRATIONS_DIR"`
	PriceSourceURL string `env:"PRICE_SOURCE_URL"`
	CommissionFile string `env:"COMMISSION_FILE"`
	RedisAddr      string `env:"REDIS_ADDR"`

	PriceTimeout       time.Duration   `env:"PRICE_TIMEOUT"          envDefault:"10s"`
	// FallbackEnabled разрешает расчет курса через якорную валюту, если прямой курс недоступен.
	FallbackEnabled    bool            `env:"PRICE_FALLBACK_ENABLED" envDefault:"false"`
	AnchorCurrency     string          `env:"PRICE_ANCHOR_CURRENCY"  envDefault:"USD"`
	AnchorToTargetRate decimal.Decimal `env:"PRICE_ANCHOR_RATE"`
	RedisPassword      string          `env:"REDIS_PASSWORD"`
	RateLimit          int             `env:"RATE_LIMIT"             envDefault:"10"`
	RateLimitWindow    time.Duration   `env:"RATE_LIMIT_WINDOW"      envDefault:"1m"`
}

// LoadConfig читает .env (если файл есть), переменные окружения и флаги. Переменные окружения имеют приоритет
// над флагами.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func MustLoadConfig() *Config {
	config, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return config
}

func load(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %s", err.Error())
	}

	var flagsConfig, envConfig Config

	if envParseErr := env.Parse(&envConfig); envParseErr != nil {
		return nil, fmt.Errorf("parse env config: %s", envParseErr.Error())
	}

	if flagsErr := loadFlags(&flagsConfig, args); flagsErr != nil {
		return nil, flagsErr
	}

	conf := mergeConfig(&envConfig, &flagsConfig)
	if err := conf.validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func loadFlags(flagConfig *Config, args []string) error {
	fs := flag.NewFlagSet("exchange", flag.ContinueOnError)
	fs.StringVar(&flagConfig.RunAddress, "a", "localhost:8080", "Run address in format host:port")
	fs.StringVar(&flagConfig.DatabaseDSN, "d", "", "Database DSN")
	fs.StringVar(&flagConfig.MigrationsDir, "m", "internal/db/migrations", "Database migrations directory")
	fs.StringVar(&flagConfig.PriceSourceURL, "p", "https://api.coingecko.com/api/v3", "Price source base URL")
	fs.StringVar(&flagConfig.CommissionFile, "c", "", "Commission tiers TOML file, default tiers if empty")
	fs.StringVar(&flagConfig.RedisAddr, "r", "", "Redis address, rate limiting is off if empty")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}

// mergeConfig строковые поля берутся из окружения, а если они пустые, из флагов. Остальные поля задаются
// только окружением.
func mergeConfig(envConfig, flagsConfig *Config) *Config {
	merged := *envConfig
	merged.RunAddress = defaultIfBlank(envConfig.RunAddress, flagsConfig.RunAddress)
	merged.DatabaseDSN = defaultIfBlank(envConfig.DatabaseDSN, flagsConfig.DatabaseDSN)
	merged.MigrationsDir = defaultIfBlank(envConfig.MigrationsDir, flagsConfig.MigrationsDir)
	merged.PriceSourceURL = defaultIfBlank(envConfig.PriceSourceURL, flagsConfig.PriceSourceURL)
	merged.CommissionFile = defaultIfBlank(envConfig.CommissionFile, flagsConfig.CommissionFile)
	merged.RedisAddr = defaultIfBlank(envConfig.RedisAddr, flagsConfig.RedisAddr)
	return &merged
}

func (c *Config) validate() error {
	if c.DatabaseDSN == "" {
		return errors.New("database DSN is not set")
	}
	if c.PriceTimeout <= 0 {
		return fmt.Errorf("price timeout must be positive, got %s", c.PriceTimeout)
	}
	if c.FallbackEnabled && !c.AnchorToTargetRate.IsPositive() {
		return errors.New("price fallback is enabled but PRICE_ANCHOR_RATE is not a positive number")
	}
	if c.RedisAddr != "" && (c.RateLimit <= 0 || c.RateLimitWindow <= 0) {
		return errors.New("rate limit and its window must be positive")
	}
	return nil
}

func defaultIfBlank(value string, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
