package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type TransactionTestSuite struct {
	suite.Suite
	now time.Time
}

func TestTransactionSuite(t *testing.T) {
	suite.Run(t, new(TransactionTestSuite))
}

func (s *TransactionTestSuite) SetupTest() {
	s.now = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
}

func (s *TransactionTestSuite) newTx() *Transaction {
	return &Transaction{
		ID:          1,
		BuyOrderID:  10,
		SellOrderID: 20,
		Status:      TransactionStatusPendingConfirmation,
	}
}

func (s *TransactionTestSuite) TestConfirm_BuyerThenSeller() {
	tx := s.newTx()

	changed, err := tx.ConfirmBuyer(s.now)
	s.Require().NoError(err)
	s.True(changed)
	s.Equal(TransactionStatusBuyerConfirmed, tx.Status)
	s.Nil(tx.CompletedAt)

	later := s.now.Add(time.Minute)
	changed, err = tx.ConfirmSeller(later)
	s.Require().NoError(err)
	s.True(changed)
	s.Equal(TransactionStatusCompleted, tx.Status)
	s.Require().NotNil(tx.CompletedAt)
	s.Equal(later, *tx.CompletedAt)
}

func (s *TransactionTestSuite) TestConfirm_SellerThenBuyer() {
	tx := s.newTx()

	_, err := tx.ConfirmSeller(s.now)
	s.Require().NoError(err)
	s.Equal(TransactionStatusSellerConfirmed, tx.Status)

	_, err = tx.ConfirmBuyer(s.now)
	s.Require().NoError(err)
	s.Equal(TransactionStatusCompleted, tx.Status)
	s.NotNil(tx.CompletedAt)
}

func (s *TransactionTestSuite) TestConfirm_Idempotent() {
	tx := s.newTx()

	_, err := tx.ConfirmBuyer(s.now)
	s.Require().NoError(err)
	first := *tx

	changed, err := tx.ConfirmBuyer(s.now.Add(time.Hour))
	s.Require().NoError(err)
	s.False(changed)
	s.Equal(first, *tx)
}

func (s *TransactionTestSuite) TestDispute() {
	tx := s.newTx()
	_, _ = tx.ConfirmBuyer(s.now)

	s.Require().NoError(tx.Dispute(s.now, "payment not received"))
	s.Equal(TransactionStatusDisputed, tx.Status)
	s.Equal("payment not received", tx.DisputeReason)

	err := tx.Dispute(s.now, "again")
	s.Require().ErrorIs(err, ErrInvalidTransition)

	_, err = tx.ConfirmSeller(s.now)
	s.Require().ErrorIs(err, ErrInvalidTransition)
}

func (s *TransactionTestSuite) TestCancel() {
	tx := s.newTx()
	s.Require().NoError(tx.Cancel(s.now))
	s.Equal(TransactionStatusCancelled, tx.Status)

	confirmed := s.newTx()
	_, _ = confirmed.ConfirmSeller(s.now)

	err := confirmed.Cancel(s.now)
	var transitionErr *InvalidTransitionError
	s.Require().ErrorAs(err, &transitionErr)
	s.Equal(string(TransactionStatusSellerConfirmed), transitionErr.From)
	s.Equal(string(TransactionStatusCancelled), transitionErr.To)
}
