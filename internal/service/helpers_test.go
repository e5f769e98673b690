package service

import (
	"context"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/fsdevblog/usdt-exchange/internal/domain"
	"github.com/fsdevblog/usdt-exchange/internal/money"
	"github.com/fsdevblog/usdt-exchange/pkg/uow"
	uowmocks "github.com/fsdevblog/usdt-exchange/pkg/uow/mocks"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
)

// fakeOrder заявка со случайными суммами.
func fakeOrder(id, userID int64, side domain.OrderSide, status domain.OrderStatus) *domain.Order {
	crypto := decimal.NewFromFloat(gofakeit.Float64Range(1, 1000))
	return &domain.Order{
		ID:           id,
		CreatedAt:    gofakeit.PastDate(),
		UpdatedAt:    time.Now(),
		UserID:       userID,
		Side:         side,
		CryptoAmount: money.New[money.Crypto](crypto, money.USDT),
		FiatAmount:   money.New[money.Fiat](crypto.Mul(decimal.NewFromInt(1_200_000)), money.IRR),
		Commission:   money.New[money.Crypto](crypto.Mul(decimal.RequireFromString("0.025")), money.USDT),
		Status:       status,
	}
}

// expectDo настраивает mockUOW.Do на выполнение fn с mockTX, как это делает настоящая транзакция.
func expectDo(mockUOW *uowmocks.MockUOW, mockTX *uowmocks.MockTX) *gomock.Call {
	return mockUOW.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, mockTX)
		})
}
