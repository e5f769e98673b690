package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/fsdevblog/usdt-exchange/internal/domain"
	"github.com/fsdevblog/usdt-exchange/internal/service"
	"github.com/fsdevblog/usdt-exchange/internal/transport/api/testutils"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

type TransactionsHandlerTestSuite struct {
	handlerSuite
}

func TestTransactionsHandlerSuite(t *testing.T) {
	suite.Run(t, new(TransactionsHandlerTestSuite))
}

func testTransaction(status domain.TransactionStatus) *domain.Transaction {
	return &domain.Transaction{
		ID:          7,
		CreatedAt:   fixedTime,
		UpdatedAt:   fixedTime,
		BuyOrderID:  1,
		SellOrderID: 2,
		Status:      status,
	}
}

func (s *TransactionsHandlerTestSuite) TestOpen() {
	url := RouteGroup + TransactionsRoute

	s.Run("opened", func() {
		s.mockTxSvc.EXPECT().Open(gomock.Any(), int64(1), int64(2)).
			Return(testTransaction(domain.TransactionStatusPendingConfirmation), nil)

		status, body := s.do(http.MethodPost, url, `{"buy_order_id":1,"sell_order_id":2}`)
		s.assertStatus(http.StatusCreated, status, body)
		s.JSONEq(`{
			"id": 7, "buy_order_id": 1, "sell_order_id": 2, "status": "pending_confirmation",
			"created_at": "2026-01-02T03:04:05Z", "updated_at": "2026-01-02T03:04:05Z"
		}`, body)
	})

	s.Run("same order twice", func() {
		status, body := s.do(http.MethodPost, url, `{"buy_order_id":1,"sell_order_id":1}`)
		s.assertStatus(http.StatusUnprocessableEntity, status, body)
		s.Contains(body, "sell_order_id")
	})

	s.Run("order already matched", func() {
		s.mockTxSvc.EXPECT().Open(gomock.Any(), int64(1), int64(2)).
			Return(nil, domain.NewInvalidTransitionError(domain.EntityOrder, 1, "matched", "matched"))

		status, body := s.do(http.MethodPost, url, `{"buy_order_id":1,"sell_order_id":2}`)
		s.assertStatus(http.StatusConflict, status, body)
		s.Contains(body, "cannot move from matched to matched")
	})
}

func (s *TransactionsHandlerTestSuite) TestShow() {
	s.mockTxSvc.EXPECT().FindByID(gomock.Any(), int64(7)).
		Return(testTransaction(domain.TransactionStatusBuyerConfirmed), nil)
	s.mockTxSvc.EXPECT().FindByID(gomock.Any(), int64(8)).
		Return(nil, fmt.Errorf("find transaction: %w", domain.ErrRecordNotFound))

	status, body := s.do(http.MethodGet, RouteGroup+"/transactions/7", "")
	s.assertStatus(http.StatusOK, status, body)
	s.Contains(body, `"status":"buyer_confirmed"`)

	status, body = s.do(http.MethodGet, RouteGroup+"/transactions/8", "")
	s.assertStatus(http.StatusNotFound, status, body)
	s.JSONEq(`{"error":"not found"}`, body)
}

func (s *TransactionsHandlerTestSuite) TestConfirm() {
	url := RouteGroup + "/transactions/7/confirm"

	s.Run("buyer", func() {
		confirmed := testTransaction(domain.TransactionStatusBuyerConfirmed)
		confirmed.BuyerConfirmedAt = &fixedTime
		s.mockTxSvc.EXPECT().CheckParticipant(gomock.Any(), int64(7), int64(10), service.PartyBuyer).Return(nil)
		s.mockTxSvc.EXPECT().Confirm(gomock.Any(), int64(7), service.PartyBuyer).Return(confirmed, nil)

		status, body := s.do(http.MethodPost, url, `{"party":"buyer"}`, s.asUser(10))
		s.assertStatus(http.StatusOK, status, body)
		s.Contains(body, `"buyer_confirmed_at":"2026-01-02T03:04:05Z"`)
	})

	s.Run("seller completes", func() {
		completed := testTransaction(domain.TransactionStatusCompleted)
		s.mockTxSvc.EXPECT().CheckParticipant(gomock.Any(), int64(7), int64(20), service.PartySeller).Return(nil)
		s.mockTxSvc.EXPECT().Confirm(gomock.Any(), int64(7), service.PartySeller).Return(completed, nil)

		status, body := s.do(http.MethodPost, url, `{"party":"seller"}`, s.asUser(20))
		s.assertStatus(http.StatusOK, status, body)
		s.Contains(body, `"status":"completed"`)
	})

	s.Run("confirming for the other party", func() {
		s.mockTxSvc.EXPECT().CheckParticipant(gomock.Any(), int64(7), int64(10), service.PartySeller).
			Return(fmt.Errorf("transaction 7, user 10: %w", domain.ErrOwnerConflict))

		status, body := s.do(http.MethodPost, url, `{"party":"seller"}`, s.asUser(10))
		s.assertStatus(http.StatusForbidden, status, body)
	})

	s.Run("without user", func() {
		status, body := s.do(http.MethodPost, url, `{"party":"buyer"}`)
		s.assertStatus(http.StatusUnauthorized, status, body)
	})

	s.Run("unknown party", func() {
		status, body := s.do(http.MethodPost, url, `{"party":"arbiter"}`, s.asUser(10))
		s.assertStatus(http.StatusUnprocessableEntity, status, body)
	})

	s.Run("terminal transaction", func() {
		s.mockTxSvc.EXPECT().CheckParticipant(gomock.Any(), int64(7), int64(10), service.PartyBuyer).Return(nil)
		s.mockTxSvc.EXPECT().Confirm(gomock.Any(), int64(7), service.PartyBuyer).
			Return(nil, domain.NewInvalidTransitionError(domain.EntityTransaction, 7, "cancelled", "buyer_confirmed"))

		status, body := s.do(http.MethodPost, url, `{"party":"buyer"}`, s.asUser(10))
		s.assertStatus(http.StatusConflict, status, body)
	})
}

func (s *TransactionsHandlerTestSuite) TestDispute() {
	url := RouteGroup + "/transactions/7/dispute"

	s.Run("disputed", func() {
		disputed := testTransaction(domain.TransactionStatusDisputed)
		disputed.DisputeReason = "payment not received"
		s.mockTxSvc.EXPECT().CheckParticipant(gomock.Any(), int64(7), int64(20), service.Party("")).Return(nil)
		s.mockTxSvc.EXPECT().RaiseDispute(gomock.Any(), int64(7), "payment not received").Return(disputed, nil)

		status, body := s.do(http.MethodPost, url, `{"reason":"payment not received"}`, s.asUser(20))
		s.assertStatus(http.StatusOK, status, body)
		s.Contains(body, `"dispute_reason":"payment not received"`)
	})

	s.Run("stranger", func() {
		s.mockTxSvc.EXPECT().CheckParticipant(gomock.Any(), int64(7), int64(30), service.Party("")).
			Return(domain.ErrOwnerConflict)

		status, body := s.do(http.MethodPost, url, `{"reason":"payment not received"}`, s.asUser(30))
		s.assertStatus(http.StatusForbidden, status, body)
	})

	s.Run("reason required", func() {
		status, body := s.do(http.MethodPost, url, `{}`, s.asUser(20))
		s.assertStatus(http.StatusUnprocessableEntity, status, body)
	})

	s.Run("reason too long in bytes", func() {
		status, body := s.do(http.MethodPost, url,
			`{"reason":"`+testutils.GenerateOverBytesUnderRunes(300)+`"}`, s.asUser(20))
		s.assertStatus(http.StatusUnprocessableEntity, status, body)
	})
}

func (s *TransactionsHandlerTestSuite) TestCancel() {
	s.mockTxSvc.EXPECT().CheckParticipant(gomock.Any(), int64(7), int64(10), service.Party("")).Return(nil)
	s.mockTxSvc.EXPECT().Cancel(gomock.Any(), int64(7)).
		Return(testTransaction(domain.TransactionStatusCancelled), nil)
	s.mockTxSvc.EXPECT().CheckParticipant(gomock.Any(), int64(9), int64(10), service.Party("")).Return(nil)
	s.mockTxSvc.EXPECT().Cancel(gomock.Any(), int64(9)).
		Return(nil, domain.NewInvalidTransitionError(domain.EntityTransaction, 9, "buyer_confirmed", "cancelled"))
	s.mockTxSvc.EXPECT().CheckParticipant(gomock.Any(), int64(11), int64(10), service.Party("")).
		Return(fmt.Errorf("check participant of transaction 11: %w", domain.ErrRecordNotFound))

	status, body := s.do(http.MethodPost, RouteGroup+"/transactions/7/cancel", "", s.asUser(10))
	s.assertStatus(http.StatusOK, status, body)

	status, body = s.do(http.MethodPost, RouteGroup+"/transactions/9/cancel", "", s.asUser(10))
	s.assertStatus(http.StatusConflict, status, body)

	status, body = s.do(http.MethodPost, RouteGroup+"/transactions/11/cancel", "", s.asUser(10))
	s.assertStatus(http.StatusNotFound, status, body)
}
