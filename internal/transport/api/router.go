package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/fsdevblog/usdt-exchange/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	DefaultServiceTimeout = 3 * time.Second
	// PriceServiceTimeout операции с запросом котировки. Клиент источника котировок ограничен своим таймаутом.
	PriceServiceTimeout = 12 * time.Second

	maxExternalIDBytes = 64
)

const (
	RouteGroup              = "/api"
	UsersRoute              = "/users"
	PriceRoute              = "/price"
	CommissionRoute         = "/commission"
	OrdersRoute             = "/orders"
	BuyOrderRoute           = "/orders/buy"
	SellOrderRoute          = "/orders/sell"
	CancelOrderRoute        = "/orders/:id/cancel"
	TransactionsRoute       = "/transactions"
	TransactionRoute        = "/transactions/:id"
	ConfirmTransactionRoute = "/transactions/:id/confirm"
	DisputeTransactionRoute = "/transactions/:id/dispute"
	CancelTransactionRoute  = "/transactions/:id/cancel"
	MetricsRoute            = "/metrics"
)

type RouterArgs struct {
	Logger             *logrus.Logger
	UserService        UserServicer
	ExchangeService    ExchangeServicer
	TransactionService TransactionServicer
	// RateLimiter ограничивает размещение заявок. nil отключает ограничение.
	RateLimiter middlewares.RateLimiter
	// Metrics необязательный сборщик метрик запросов.
	Metrics        middlewares.RequestObserver
	MetricsHandler http.Handler
}

func New(args RouterArgs) (*gin.Engine, error) {
	if err := registerValidators(); err != nil {
		return nil, fmt.Errorf("new router: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	if args.Metrics != nil {
		r.Use(middlewares.Metrics(args.Metrics))
	}
	r.Use(middlewares.Errors())

	if args.MetricsHandler != nil {
		r.GET(MetricsRoute, gin.WrapH(args.MetricsHandler))
	}

	usersHandler := NewUsersHandler(args.UserService)
	quotesHandler := NewQuotesHandler(args.ExchangeService)
	ordersHandler := NewOrdersHandler(args.ExchangeService)
	txHandler := NewTransactionsHandler(args.TransactionService)

	rateLimit := func(c *gin.Context) { c.Next() }
	if args.RateLimiter != nil {
		rateLimit = middlewares.RateLimit(args.RateLimiter, args.Logger)
	}

	api := r.Group(RouteGroup)

	api.POST(UsersRoute, usersHandler.Register)
	api.GET(PriceRoute, quotesHandler.Price)
	api.GET(CommissionRoute, quotesHandler.Commission)

	// вызываются матчером, а не пользователем.
	api.POST(TransactionsRoute, txHandler.Open)
	api.GET(TransactionRoute, txHandler.Show)

	// ниже все роуты группы требуют зарегистрированного пользователя.
	user := api.Group("", middlewares.UserRequired(args.UserService))
	user.POST(BuyOrderRoute, rateLimit, ordersHandler.Buy)
	user.POST(SellOrderRoute, rateLimit, ordersHandler.Sell)
	user.GET(OrdersRoute, ordersHandler.Index)
	user.POST(CancelOrderRoute, ordersHandler.Cancel)
	user.POST(ConfirmTransactionRoute, txHandler.Confirm)
	user.POST(DisputeTransactionRoute, txHandler.Dispute)
	user.POST(CancelTransactionRoute, txHandler.Cancel)

	return r, nil
}
