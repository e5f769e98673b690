package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type QuotesHandler struct {
	exchange ExchangeServicer
}

func NewQuotesHandler(exchange ExchangeServicer) *QuotesHandler {
	return &QuotesHandler{exchange: exchange}
}

type PriceResponse struct {
	Crypto    string    `json:"crypto"`
	Fiat      string    `json:"fiat"`
	Rate      string    `json:"rate"`
	Source    string    `json:"source"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Price GET RouteGroup + PriceRoute.
func (h *QuotesHandler) Price(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, PriceServiceTimeout)
	defer cancel()

	quote, err := h.exchange.QuotePrice(ctx)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, PriceResponse{
		Crypto:    string(quote.Pair.Crypto),
		Fiat:      string(quote.Pair.Fiat),
		Rate:      quote.Rate.Fixed(),
		Source:    string(quote.Source),
		FetchedAt: quote.FetchedAt,
	})
}

type CommissionQuery struct {
	Amount string `binding:"required,max_bytes=64,amount" form:"amount" json:"amount"`
}

type CommissionResponse struct {
	Amount       string `json:"amount"`
	Rate         string `json:"rate"`
	Fee          string `json:"fee"`
	NetForSeller string `json:"net_for_seller"`
}

// Commission GET RouteGroup + CommissionRoute?amount=. Расчет комиссии за продажу суммы в криптовалюте.
func (h *QuotesHandler) Commission(c *gin.Context) {
	var query CommissionQuery
	if bindErr := c.ShouldBindQuery(&query); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}

	preview, err := h.exchange.QuoteCommission(query.Amount)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, CommissionResponse{
		Amount:       preview.Amount.Fixed(),
		Rate:         preview.Rate.String(),
		Fee:          preview.Fee.Fixed(),
		NetForSeller: preview.NetForSeller.Fixed(),
	})
}
