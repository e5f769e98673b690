package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsdevblog/usdt-exchange/internal/cache/redis"
	"github.com/fsdevblog/usdt-exchange/internal/commission"
	"github.com/fsdevblog/usdt-exchange/internal/config"
	"github.com/fsdevblog/usdt-exchange/internal/domain"
	"github.com/fsdevblog/usdt-exchange/internal/metrics"
	"github.com/fsdevblog/usdt-exchange/internal/money"
	"github.com/fsdevblog/usdt-exchange/internal/pricing"
	"github.com/fsdevblog/usdt-exchange/internal/repository/pgrepo"
	"github.com/fsdevblog/usdt-exchange/internal/repository/repoargs"
	"github.com/fsdevblog/usdt-exchange/internal/service"
	"github.com/fsdevblog/usdt-exchange/internal/transport/api"
	"github.com/fsdevblog/usdt-exchange/internal/transport/api/middlewares"
	"github.com/fsdevblog/usdt-exchange/internal/transport/coingecko"
	"github.com/fsdevblog/usdt-exchange/pkg/uow"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	// driver for migration applying postgres.
	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	// driver to get migrations from files (*.sql in our case).
	_ "github.com/golang-migrate/migrate/v4/source/file" //nolint:revive
)

const shutdownTimeout = 10 * time.Second

var (
	_ service.UserRepository        = (*pgrepo.UserRepository)(nil)
	_ service.OrderRepository       = (*pgrepo.OrderRepository)(nil)
	_ service.TransactionRepository = (*pgrepo.TransactionRepository)(nil)
	_ middlewares.RateLimiter       = (*redis.RateLimiter)(nil)
	_ middlewares.RequestObserver   = (*metrics.Metrics)(nil)
	_ pricing.Metrics               = (*metrics.Metrics)(nil)
)

type App struct {
	Config *config.Config
	Logger *logrus.Logger
}

func New(conf *config.Config, l *logrus.Logger) *App {
	return &App{
		Config: conf,
		Logger: l,
	}
}

// Run поднимает зависимости и http сервер и работает до SIGINT/SIGTERM или ошибки сервера.
func (a *App) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.WithFields(logrus.Fields{
		"runAddress":      a.Config.RunAddress,
		"priceSource":     a.Config.PriceSourceURL,
		"commissionFile":  a.Config.CommissionFile,
		"fallbackEnabled": a.Config.FallbackEnabled,
		"rateLimited":     a.Config.RedisAddr != "",
	}).Info("starting app")

	fees, feesErr := loadCommission(a.Config.CommissionFile)
	if feesErr != nil {
		return fmt.Errorf("app run: %s", feesErr.Error())
	}

	conn, connErr := pgrepo.Connect(notifyCtx, pgrepo.ConnectArgs{
		DSN:           a.Config.DatabaseDSN,
		MigrationsDir: a.Config.MigrationsDir,
	}, a.Logger)
	if connErr != nil {
		return fmt.Errorf("app run: %s", connErr.Error())
	}
	defer conn.Close()

	unitOfWork, uowErr := initUOW(conn)
	if uowErr != nil {
		return fmt.Errorf("app run: %s", uowErr.Error())
	}

	appMetrics := metrics.New()
	oracle, oracleErr := pricing.NewOracle(
		coingecko.New(a.Config.PriceSourceURL, a.Config.PriceTimeout),
		pricing.Config{
			FallbackEnabled:    a.Config.FallbackEnabled,
			Anchor:             money.Currency(a.Config.AnchorCurrency),
			AnchorToTargetRate: a.Config.AnchorToTargetRate,
		},
		appMetrics,
	)
	if oracleErr != nil {
		return fmt.Errorf("app run: %s", oracleErr.Error())
	}

	services, sErr := service.Factory(unitOfWork, oracle, fees, domain.PairUSDTIRR)
	if sErr != nil {
		return fmt.Errorf("app run: %s", sErr.Error())
	}

	routerArgs := api.RouterArgs{
		Logger:             a.Logger,
		UserService:        services.UserService,
		ExchangeService:    services.ExchangeService,
		TransactionService: services.TransactionService,
		Metrics:            appMetrics,
		MetricsHandler:     appMetrics.Handler(),
	}

	if a.Config.RedisAddr != "" {
		redisClient, redisErr := redis.New(notifyCtx, redis.ClientConfig{
			Addr:     a.Config.RedisAddr,
			Password: a.Config.RedisPassword,
		})
		if redisErr != nil {
			return fmt.Errorf("app run: %s", redisErr.Error())
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				a.Logger.WithError(err).Warn("close redis client")
			}
		}()
		routerArgs.RateLimiter = redis.NewRateLimiter(redisClient, a.Config.RateLimit, a.Config.RateLimitWindow)
	}

	router, routerErr := api.New(routerArgs)
	if routerErr != nil {
		return fmt.Errorf("app run: %s", routerErr.Error())
	}

	return serve(notifyCtx, &http.Server{
		Addr:              a.Config.RunAddress,
		Handler:           router,
		ReadHeaderTimeout: api.DefaultServiceTimeout,
	}, a.Logger)
}

// serve запускает сервер и останавливает его при отмене ctx. Возвращает nil при штатной остановке.
func serve(ctx context.Context, srv *http.Server, l *logrus.Logger) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		l.WithField("address", srv.Addr).Info("http server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		l.Info("http server stopped")
		return nil
	})

	return g.Wait() //nolint:wrapcheck
}

// loadCommission шкала комиссий из TOML файла или шкала по умолчанию, если путь пустой.
func loadCommission(path string) (*commission.Engine, error) {
	tiers := commission.DefaultTiers()
	if path != "" {
		fileTiers, err := commission.LoadTiersFile(path)
		if err != nil {
			return nil, fmt.Errorf("load commission tiers: %w", err)
		}
		tiers = fileTiers
	}
	engine, err := commission.NewEngine(tiers)
	if err != nil {
		return nil, fmt.Errorf("load commission tiers: %w", err)
	}
	return engine, nil
}

func initUOW(conn uow.Beginner) (*uow.UnitOfWork, error) {
	unitOfWork := uow.NewUnitOfWork(conn)

	factories := map[repoargs.RepositoryName]uow.RepositoryFactory{
		repoargs.UserRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewUserRepository(dbtx)
		},
		repoargs.OrderRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewOrderRepository(dbtx)
		},
		repoargs.TransactionRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewTransactionRepository(dbtx)
		},
	}

	for name, factory := range factories {
		if regErr := unitOfWork.Register(uow.RepositoryName(name), factory); regErr != nil {
			return nil, fmt.Errorf("init UOW: %s", regErr.Error())
		}
	}

	return unitOfWork, nil
}
