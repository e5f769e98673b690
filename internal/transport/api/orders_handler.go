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

type OrdersHandler struct {
	exchange ExchangeServicer
}

func NewOrdersHandler(exchange ExchangeServicer) *OrdersHandler {
	return &OrdersHandler{exchange: exchange}
}

type PlaceOrderParams struct {
	Amount string `binding:"required,max_bytes=64,amount" json:"amount"`
}

type OrderResponse struct {
	ID             int64              `json:"id"`
	Side           domain.OrderSide   `json:"side"`
	Status         domain.OrderStatus `json:"status"`
	CryptoAmount   string             `json:"crypto_amount"`
	CryptoCurrency string             `json:"crypto_currency"`
	FiatAmount     string             `json:"fiat_amount"`
	FiatCurrency   string             `json:"fiat_currency"`
	Commission     string             `json:"commission"`
	MatchedOrderID *int64             `json:"matched_order_id,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// PlacedOrderResponse сохраненная заявка и расчет, по которому она создана.
type PlacedOrderResponse struct {
	Order          OrderResponse `json:"order"`
	GrossCrypto    string        `json:"gross_crypto"`
	CommissionRate string        `json:"commission_rate"`
	Rate           string        `json:"rate"`
	RateSource     string        `json:"rate_source"`
}

func newOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		ID:             o.ID,
		Side:           o.Side,
		Status:         o.Status,
		CryptoAmount:   o.CryptoAmount.Fixed(),
		CryptoCurrency: string(o.CryptoAmount.Currency()),
		FiatAmount:     o.FiatAmount.Fixed(),
		FiatCurrency:   string(o.FiatAmount.Currency()),
		Commission:     o.Commission.Fixed(),
		MatchedOrderID: o.MatchedOrderID,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

// Buy POST RouteGroup + BuyOrderRoute. amount сумма в фиатной валюте.
func (h *OrdersHandler) Buy(c *gin.Context) {
	h.place(c, h.exchange.PlaceBuyOrder)
}

// Sell POST RouteGroup + SellOrderRoute. amount сумма в криптовалюте.
func (h *OrdersHandler) Sell(c *gin.Context) {
	h.place(c, h.exchange.PlaceSellOrder)
}

type placeFunc func(ctx context.Context, userID int64, rawAmount string) (*service.PlacedOrder, error)

func (h *OrdersHandler) place(c *gin.Context, placeFn placeFunc) {
	var params PlaceOrderParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}

	ctx, cancel := context.WithTimeout(c, PriceServiceTimeout)
	defer cancel()

	placed, err := placeFn(ctx, middlewares.CurrentUserID(c), params.Amount)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, PlacedOrderResponse{
		Order:          newOrderResponse(placed.Order),
		GrossCrypto:    placed.Candidate.GrossCrypto.Fixed(),
		CommissionRate: placed.Candidate.CommissionRate.String(),
		Rate:           placed.Candidate.Quote.Rate.Fixed(),
		RateSource:     string(placed.Candidate.Quote.Source),
	})
}

type OrdersQuery struct {
	Active bool `form:"active"`
}

// Index GET RouteGroup + OrdersRoute?active=true.
func (h *OrdersHandler) Index(c *gin.Context) {
	var query OrdersQuery
	if bindErr := c.ShouldBindQuery(&query); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	orders, err := h.exchange.ListOrders(ctx, middlewares.CurrentUserID(c), query.Active)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	if len(orders) == 0 {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}

	response := make([]OrderResponse, len(orders))
	for i := range orders {
		response[i] = newOrderResponse(&orders[i])
	}
	c.JSON(http.StatusOK, response)
}

// Cancel POST RouteGroup + CancelOrderRoute.
func (h *OrdersHandler) Cancel(c *gin.Context) {
	orderID, ok := idParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	order, err := h.exchange.CancelOrder(ctx, middlewares.CurrentUserID(c), orderID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newOrderResponse(order))
}
