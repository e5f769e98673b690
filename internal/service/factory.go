package service

import (
	"fmt"

	"github.com/fsdevblog/usdt-exchange/internal/domain"
	"github.com/fsdevblog/usdt-exchange/pkg/uow"
)

type AppServices struct {
	UserService        *UserService
	OrderService       *OrderService
	TransactionService *TransactionService
	ExchangeService    *ExchangeService
}

func Factory(unitOfWork uow.UOW, oracle PriceOracle, fees FeeEngine, pair domain.Pair) (*AppServices, error) {
	userService, userServiceErr := NewUserService(unitOfWork)
	if userServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", userServiceErr.Error())
	}

	orderService, orderServiceErr := NewOrderService(unitOfWork)
	if orderServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", orderServiceErr.Error())
	}

	transactionService, transactionServiceErr := NewTransactionService(unitOfWork, orderService)
	if transactionServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", transactionServiceErr.Error())
	}

	builder := NewOrderBuilder(oracle, fees, pair)

	return &AppServices{
		UserService:        userService,
		OrderService:       orderService,
		TransactionService: transactionService,
		ExchangeService:    NewExchangeService(builder, orderService, transactionService, fees, oracle, pair),
	}, nil
}
