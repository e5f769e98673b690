package api

import (
	"context"
	"net/http"
	"time"

	"github.com/fsdevblog/usdt-exchange/internal/domain"
	"github.com/fsdevblog/usdt-exchange/internal/service"
	"github.com/fsdevblog/usdt-exchange/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
)

type TransactionsHandler struct {
	txService TransactionServicer
}

func NewTransactionsHandler(txService TransactionServicer) *TransactionsHandler {
	return &TransactionsHandler{txService: txService}
}

type TransactionResponse struct {
	ID                int64                    `json:"id"`
	BuyOrderID        int64                    `json:"buy_order_id"`
	SellOrderID       int64                    `json:"sell_order_id"`
	Status            domain.TransactionStatus `json:"status"`
	BuyerConfirmedAt  *time.Time               `json:"buyer_confirmed_at,omitempty"`
	SellerConfirmedAt *time.Time               `json:"seller_confirmed_at,omitempty"`
	CompletedAt       *time.Time               `json:"completed_at,omitempty"`
	DisputeReason     string                   `json:"dispute_reason,omitempty"`
	CreatedAt         time.Time                `json:"created_at"`
	UpdatedAt         time.Time                `json:"updated_at"`
}

func newTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                t.ID,
		BuyOrderID:        t.BuyOrderID,
		SellOrderID:       t.SellOrderID,
		Status:            t.Status,
		BuyerConfirmedAt:  t.BuyerConfirmedAt,
		SellerConfirmedAt: t.SellerConfirmedAt,
		CompletedAt:       t.CompletedAt,
		DisputeReason:     t.DisputeReason,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

type OpenTransactionParams struct {
	BuyOrderID  int64 `binding:"required,gt=0"                     json:"buy_order_id"`
	SellOrderID int64 `binding:"required,gt=0,nefield=BuyOrderID" json:"sell_order_id"`
}

// Open POST RouteGroup + TransactionsRoute. Точка входа для внешнего матчера: сводит две заявки в сделку.
func (h *TransactionsHandler) Open(c *gin.Context) {
	var params OpenTransactionParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	t, err := h.txService.Open(ctx, params.BuyOrderID, params.SellOrderID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newTransactionResponse(t))
}

// Show GET RouteGroup + TransactionRoute.
func (h *TransactionsHandler) Show(c *gin.Context) {
	h.handle(c, func(ctx context.Context, id int64) (*domain.Transaction, error) {
		return h.txService.FindByID(ctx, id)
	})
}

type ConfirmParams struct {
	Party service.Party `binding:"required,oneof=buyer seller" json:"party"`
}

// Confirm POST RouteGroup + ConfirmTransactionRoute. Подтверждать может только владелец заявки стороны party.
// Повторное подтверждение той же стороной не ошибка.
func (h *TransactionsHandler) Confirm(c *gin.Context) {
	var params ConfirmParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}
	h.handleAsParticipant(c, params.Party, func(ctx context.Context, id int64) (*domain.Transaction, error) {
		return h.txService.Confirm(ctx, id, params.Party)
	})
}

type DisputeParams struct {
	Reason string `binding:"required,max_bytes=1024" json:"reason"`
}

// Dispute POST RouteGroup + DisputeTransactionRoute.
func (h *TransactionsHandler) Dispute(c *gin.Context) {
	var params DisputeParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}
	h.handleAsParticipant(c, "", func(ctx context.Context, id int64) (*domain.Transaction, error) {
		return h.txService.RaiseDispute(ctx, id, params.Reason)
	})
}

// Cancel POST RouteGroup + CancelTransactionRoute.
func (h *TransactionsHandler) Cancel(c *gin.Context) {
	h.handleAsParticipant(c, "", h.txService.Cancel)
}

// handleAsParticipant выполняет fn, если текущий пользователь участвует в сделке на стороне party
// (пустая party означает любую сторону).
func (h *TransactionsHandler) handleAsParticipant(
	c *gin.Context,
	party service.Party,
	fn func(ctx context.Context, id int64) (*domain.Transaction, error),
) {
	userID := middlewares.CurrentUserID(c)
	h.handle(c, func(ctx context.Context, id int64) (*domain.Transaction, error) {
		if err := h.txService.CheckParticipant(ctx, id, userID, party); err != nil {
			return nil, err //nolint:wrapcheck
		}
		return fn(ctx, id)
	})
}

func (h *TransactionsHandler) handle(
	c *gin.Context,
	fn func(ctx context.Context, id int64) (*domain.Transaction, error),
) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	t, err := fn(ctx, id)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTransactionResponse(t))
}
