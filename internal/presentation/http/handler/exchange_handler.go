package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"carwash-api/internal/application/service"
	"carwash-api/internal/presentation/http/dto/response"
	"carwash-api/pkg/apperror"
	"carwash-api/pkg/exchange"
)

// ExchangeHandler exposes the live VES reference rate
type ExchangeHandler struct {
	rates service.RateSource
}

// NewExchangeHandler creates a new exchange rate handler
func NewExchangeHandler(rates service.RateSource) *ExchangeHandler {
	return &ExchangeHandler{rates: rates}
}

// Rate handles fetching the current reference rates. Public: the cashier UI
// and the client portal both poll it.
func (h *ExchangeHandler) Rate(c *gin.Context) {
	rates, err := h.rates.Rates(c.Request.Context())
	if err != nil {
		if errors.Is(err, exchange.ErrUnavailable) {
			response.Error(c, apperror.NewRateUnavailableError())
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Exchange rate retrieved successfully", rates)
}
