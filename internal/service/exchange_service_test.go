package service

import (
	"errors"
	"testing"
	"time"

	"github.com/fsdevblog/usdt-exchange/internal/commission"
	"github.com/fsdevblog/usdt-exchange/internal/domain"
	"github.com/fsdevblog/usdt-exchange/internal/repository/repoargs"
	"github.com/fsdevblog/usdt-exchange/internal/service/mocks"
	"github.com/fsdevblog/usdt-exchange/pkg/uow"
	uowmocks "github.com/fsdevblog/usdt-exchange/pkg/uow/mocks"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

type ExchangeServiceTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockUOW       *uowmocks.MockUOW
	mockTX        *uowmocks.MockTX
	mockOrderRepo *mocks.MockOrderRepository
	mockTxRepo    *mocks.MockTransactionRepository
	mockOracle    *mocks.MockPriceOracle
	exchange      *ExchangeService
}

func TestExchangeServiceSuite(t *testing.T) {
	suite.Run(t, new(ExchangeServiceTestSuite))
}

func (s *ExchangeServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockTX = uowmocks.NewMockTX(s.mockCtrl)
	s.mockOrderRepo = mocks.NewMockOrderRepository(s.mockCtrl)
	s.mockTxRepo = mocks.NewMockTransactionRepository(s.mockCtrl)
	s.mockOracle = mocks.NewMockPriceOracle(s.mockCtrl)

	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.OrderRepoName)).
		Return(s.mockOrderRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.TransactionRepoName)).
		Return(s.mockTxRepo, nil).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.OrderRepoName)).
		Return(s.mockOrderRepo, nil).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.TransactionRepoName)).
		Return(s.mockTxRepo, nil).AnyTimes()

	orders, err := NewOrderService(s.mockUOW)
	s.Require().NoError(err)
	transactions, err := NewTransactionService(s.mockUOW, orders)
	s.Require().NoError(err)
	transactions.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

	fees := commission.MustNewEngine(commission.DefaultTiers())
	builder := NewOrderBuilder(s.mockOracle, fees, domain.PairUSDTIRR)
	s.exchange = NewExchangeService(builder, orders, transactions, fees, s.mockOracle, domain.PairUSDTIRR)
}

func (s *ExchangeServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *ExchangeServiceTestSuite) TestQuoteCommission() {
	preview, err := s.exchange.QuoteCommission("20000")
	s.Require().NoError(err)
	s.Equal("300.000000", preview.Fee.Fixed())
	s.Equal("19700.000000", preview.NetForSeller.Fixed())
	s.Equal("0.015", preview.Rate.String())

	_, err = s.exchange.QuoteCommission("twenty")
	s.Require().ErrorIs(err, domain.ErrInvalidInput)
}

func (s *ExchangeServiceTestSuite) TestQuotePrice() {
	s.mockOracle.EXPECT().FetchRate(gomock.Any(), domain.PairUSDTIRR).Return(quoteAt("1200000"), nil)
	quote, err := s.exchange.QuotePrice(s.T().Context())
	s.Require().NoError(err)
	s.Equal("1200000.00", quote.Rate.Fixed())

	s.mockOracle.EXPECT().FetchRate(gomock.Any(), domain.PairUSDTIRR).Return(nil, domain.ErrPriceUnavailable)
	_, err = s.exchange.QuotePrice(s.T().Context())
	s.Require().ErrorIs(err, domain.ErrPriceUnavailable)
}

func (s *ExchangeServiceTestSuite) TestPlaceSellOrder() {
	s.mockOracle.EXPECT().FetchRate(gomock.Any(), domain.PairUSDTIRR).Return(quoteAt("1200000"), nil)
	s.mockOrderRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, args repoargs.CreateOrder) (*domain.Order, error) {
			s.Equal(int64(42), args.UserID)
			s.Equal(domain.OrderSideSell, args.Side)
			s.Equal("5.000000", args.CryptoAmount.Fixed())
			s.Equal("6000000.00", args.FiatAmount.Fixed())
			s.Equal("0.125000", args.Commission.Fixed())
			return &domain.Order{
				ID:           1,
				UserID:       args.UserID,
				Side:         args.Side,
				CryptoAmount: args.CryptoAmount,
				FiatAmount:   args.FiatAmount,
				Commission:   args.Commission,
				Status:       domain.OrderStatusPending,
			}, nil
		})

	placed, err := s.exchange.PlaceSellOrder(s.T().Context(), 42, "5")
	s.Require().NoError(err)
	s.Equal(int64(1), placed.Order.ID)
	s.Equal(domain.OrderStatusPending, placed.Order.Status)
	s.Equal("5.00000000", placed.Candidate.GrossCrypto.Fixed())
}

// TestPlace_PriceUnavailable ни покупка, ни продажа не сохраняются без котировки.
func (s *ExchangeServiceTestSuite) TestPlace_PriceUnavailable() {
	unavailable := errors.Join(domain.ErrPriceUnavailable, errors.New("i/o timeout"))
	s.mockOracle.EXPECT().FetchRate(gomock.Any(), gomock.Any()).Return(nil, unavailable).Times(2)
	s.mockOrderRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	_, buyErr := s.exchange.PlaceBuyOrder(s.T().Context(), 42, "50000000")
	s.Require().ErrorIs(buyErr, domain.ErrPriceUnavailable)

	_, sellErr := s.exchange.PlaceSellOrder(s.T().Context(), 42, "5")
	s.Require().ErrorIs(sellErr, domain.ErrPriceUnavailable)
}

func (s *ExchangeServiceTestSuite) TestCancelOrder() {
	own := fakeOrder(1, 42, domain.OrderSideBuy, domain.OrderStatusPending)
	cancelled := *own
	cancelled.Status = domain.OrderStatusCancelled

	s.mockOrderRepo.EXPECT().FindByID(gomock.Any(), int64(1)).Return(own, nil)
	s.mockOrderRepo.EXPECT().UpdateStatus(gomock.Any(), repoargs.UpdateOrderStatus{
		ID:   1,
		From: domain.OrderStatusPending,
		To:   domain.OrderStatusCancelled,
	}).Return(&cancelled, nil)

	got, err := s.exchange.CancelOrder(s.T().Context(), 42, 1)
	s.Require().NoError(err)
	s.Equal(domain.OrderStatusCancelled, got.Status)
}

func (s *ExchangeServiceTestSuite) TestCancelOrder_Foreign() {
	s.mockOrderRepo.EXPECT().FindByID(gomock.Any(), int64(1)).
		Return(fakeOrder(1, 7, domain.OrderSideBuy, domain.OrderStatusPending), nil)

	_, err := s.exchange.CancelOrder(s.T().Context(), 42, 1)
	s.Require().ErrorIs(err, domain.ErrOwnerConflict)
}

func (s *ExchangeServiceTestSuite) TestCancelOrder_NotFound() {
	s.mockOrderRepo.EXPECT().FindByID(gomock.Any(), int64(9)).Return(nil, domain.ErrRecordNotFound)

	_, err := s.exchange.CancelOrder(s.T().Context(), 42, 9)
	s.Require().ErrorIs(err, domain.ErrRecordNotFound)
}

// TestCancelOrder_MatchedMeanwhile заявка стала matched между чтением и отменой: одна она не отменяется.
func (s *ExchangeServiceTestSuite) TestCancelOrder_MatchedMeanwhile() {
	s.mockOrderRepo.EXPECT().FindByID(gomock.Any(), int64(1)).
		Return(fakeOrder(1, 42, domain.OrderSideBuy, domain.OrderStatusPending), nil)
	s.mockOrderRepo.EXPECT().UpdateStatus(gomock.Any(), repoargs.UpdateOrderStatus{
		ID:   1,
		From: domain.OrderStatusPending,
		To:   domain.OrderStatusCancelled,
	}).Return(nil, domain.ErrRecordNotFound)

	_, err := s.exchange.CancelOrder(s.T().Context(), 42, 1)
	s.Require().ErrorIs(err, domain.ErrInvalidTransition)
}

// expectOrderCancel сведенная заявка id отменяется внутри транзакции.
func (s *ExchangeServiceTestSuite) expectOrderCancel(order *domain.Order) {
	cancelled := *order
	cancelled.Status = domain.OrderStatusCancelled
	s.mockOrderRepo.EXPECT().FindByID(gomock.Any(), order.ID).Return(order, nil)
	s.mockOrderRepo.EXPECT().UpdateStatus(gomock.Any(), repoargs.UpdateOrderStatus{
		ID:   order.ID,
		From: domain.OrderStatusMatched,
		To:   domain.OrderStatusCancelled,
	}).Return(&cancelled, nil)
}

// TestCancelOrder_Matched отмена сведенной заявки закрывает сделку и встречную заявку, после чего
// сделку нельзя ни отменить повторно, ни подтвердить.
func (s *ExchangeServiceTestSuite) TestCancelOrder_Matched() {
	buy := fakeOrder(1, 10, domain.OrderSideBuy, domain.OrderStatusMatched)
	sell := fakeOrder(2, 20, domain.OrderSideSell, domain.OrderStatusMatched)
	open := &domain.Transaction{
		ID:          100,
		BuyOrderID:  1,
		SellOrderID: 2,
		Status:      domain.TransactionStatusPendingConfirmation,
	}
	var stored domain.Transaction

	s.mockOrderRepo.EXPECT().FindByID(gomock.Any(), int64(2)).Return(sell, nil)
	expectDo(s.mockUOW, s.mockTX).Times(3)
	s.mockTxRepo.EXPECT().FindOpenByOrderID(gomock.Any(), int64(2)).Return(open, nil)
	s.mockTxRepo.EXPECT().Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, args repoargs.UpdateTransaction) (*domain.Transaction, error) {
			s.Equal(domain.TransactionStatusPendingConfirmation, args.ExpectedStatus)
			stored = args.Transaction
			return &stored, nil
		})
	s.expectOrderCancel(buy)
	s.expectOrderCancel(sell)

	got, err := s.exchange.CancelOrder(s.T().Context(), 20, 2)
	s.Require().NoError(err)
	s.Equal(int64(2), got.ID)
	s.Equal(domain.OrderStatusCancelled, got.Status)
	s.Equal(domain.TransactionStatusCancelled, stored.Status)

	s.mockTxRepo.EXPECT().FindByID(gomock.Any(), int64(100)).
		DoAndReturn(func(_ any, _ int64) (*domain.Transaction, error) {
			t := stored
			return &t, nil
		}).Times(2)

	_, cancelErr := s.exchange.transactions.Cancel(s.T().Context(), 100)
	s.Require().ErrorIs(cancelErr, domain.ErrInvalidTransition)
	_, confirmErr := s.exchange.transactions.ConfirmBySeller(s.T().Context(), 100)
	s.Require().ErrorIs(confirmErr, domain.ErrInvalidTransition)
}

func (s *ExchangeServiceTestSuite) TestCancelOrder_MatchedAfterConfirmation() {
	confirmedAt := time.Date(2025, 3, 1, 11, 0, 0, 0, time.UTC)
	s.mockOrderRepo.EXPECT().FindByID(gomock.Any(), int64(2)).
		Return(fakeOrder(2, 20, domain.OrderSideSell, domain.OrderStatusMatched), nil)
	expectDo(s.mockUOW, s.mockTX)
	s.mockTxRepo.EXPECT().FindOpenByOrderID(gomock.Any(), int64(2)).Return(&domain.Transaction{
		ID:               100,
		BuyOrderID:       1,
		SellOrderID:      2,
		Status:           domain.TransactionStatusBuyerConfirmed,
		BuyerConfirmedAt: &confirmedAt,
	}, nil)
	s.mockTxRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)
	s.mockOrderRepo.EXPECT().UpdateStatus(gomock.Any(), gomock.Any()).Times(0)

	_, err := s.exchange.CancelOrder(s.T().Context(), 20, 2)
	s.Require().ErrorIs(err, domain.ErrInvalidTransition)
}

// TestCancelOrder_MatchedWithoutOpenTransaction по сделке открыт спор: заявка заморожена.
func (s *ExchangeServiceTestSuite) TestCancelOrder_MatchedWithoutOpenTransaction() {
	s.mockOrderRepo.EXPECT().FindByID(gomock.Any(), int64(2)).
		Return(fakeOrder(2, 20, domain.OrderSideSell, domain.OrderStatusMatched), nil)
	expectDo(s.mockUOW, s.mockTX)
	s.mockTxRepo.EXPECT().FindOpenByOrderID(gomock.Any(), int64(2)).Return(nil, domain.ErrRecordNotFound)
	s.mockOrderRepo.EXPECT().UpdateStatus(gomock.Any(), gomock.Any()).Times(0)

	_, err := s.exchange.CancelOrder(s.T().Context(), 20, 2)
	s.Require().ErrorIs(err, domain.ErrInvalidTransition)
}
