package api

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fsdevblog/usdt-exchange/internal/domain"
	"github.com/fsdevblog/usdt-exchange/internal/logger"
	"github.com/fsdevblog/usdt-exchange/internal/money"
	"github.com/fsdevblog/usdt-exchange/internal/transport/api/mocks"
	"github.com/fsdevblog/usdt-exchange/internal/transport/api/testutils"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const testExternalID = "tg-100"

// handlerSuite общая настройка роутера с моками сервисов.
type handlerSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockUserSvc     *mocks.MockUserServicer
	mockExchangeSvc *mocks.MockExchangeServicer
	mockTxSvc       *mocks.MockTransactionServicer
	router          *gin.Engine
}

func (s *handlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUserSvc = mocks.NewMockUserServicer(s.mockCtrl)
	s.mockExchangeSvc = mocks.NewMockExchangeServicer(s.mockCtrl)
	s.mockTxSvc = mocks.NewMockTransactionServicer(s.mockCtrl)

	router, err := New(RouterArgs{
		Logger:             logger.New(io.Discard),
		UserService:        s.mockUserSvc,
		ExchangeService:    s.mockExchangeSvc,
		TransactionService: s.mockTxSvc,
	})
	s.Require().NoError(err)
	s.router = router
}

func (s *handlerSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

// do выполняет запрос и возвращает статус и тело ответа.
func (s *handlerSuite) do(method, url, body string, opts ...func(*testutils.RequestOptions)) (int, string) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
		opts = append(opts, testutils.WithJSON())
	}
	resp := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: method,
		URL:    url,
		Body:   reader,
	}, opts...)

	respBody, readErr := testutils.ReadBody(resp)
	s.Require().NoError(readErr)
	return resp.StatusCode, respBody
}

// asUser добавляет заголовок пользователя и ожидает его разрешение в id.
func (s *handlerSuite) asUser(userID int64) func(*testutils.RequestOptions) {
	s.mockUserSvc.EXPECT().
		FindByExternalID(gomock.Any(), testExternalID).
		Return(&domain.User{ID: userID, ExternalID: testExternalID}, nil)
	return testutils.WithExternalUser(testExternalID)
}

var fixedTime = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func testOrder(id, userID int64, side domain.OrderSide, status domain.OrderStatus) *domain.Order {
	return &domain.Order{
		ID:           id,
		CreatedAt:    fixedTime,
		UpdatedAt:    fixedTime,
		UserID:       userID,
		Side:         side,
		CryptoAmount: money.New[money.Crypto](decimal.RequireFromString("40.625"), money.USDT),
		FiatAmount:   money.New[money.Fiat](decimal.RequireFromString("50000000"), money.IRR),
		Commission:   money.New[money.Crypto](decimal.RequireFromString("1.041667"), money.USDT),
		Status:       status,
	}
}

func (s *handlerSuite) assertStatus(want, got int, body string) {
	s.Equal(want, got, "unexpected status %d (%s), body: %s", got, http.StatusText(got), body)
}
