package handler

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/visago/visa-assistant/internal/core/ports"
)

type CurrencyHandler struct {
	service ports.CurrencyService
}

func NewCurrencyHandler(service ports.CurrencyService) *CurrencyHandler {
	return &CurrencyHandler{service: service}
}

// Convert handles GET /currency/convert.
//
// @Summary      Convert an amount
// @Tags         currency
// @Produce      json
// @Param        amount  query     number  true  "Amount"
// @Param        from    query     string  true  "Source currency"
// @Param        to      query     string  true  "Target currency"
// @Success      200     {object}  convertResponse
// @Failure      400     {object}  errorResponse
// @Router       /currency/convert [get]
func (h *CurrencyHandler) Convert(c echo.Context) error {
	amount, err := strconv.ParseFloat(c.QueryParam("amount"), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return echo.NewHTTPError(http.StatusBadRequest, "amount must be a number")
	}
	from := strings.ToUpper(strings.TrimSpace(c.QueryParam("from")))
	to := strings.ToUpper(strings.TrimSpace(c.QueryParam("to")))
	if from == "" || to == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "from and to are required")
	}

	return c.JSON(http.StatusOK, convertResponse{
		Amount: amount,
		From:   from,
		To:     to,
		Result: h.service.Convert(amount, from, to),
	})
}

// List handles GET /currency.
//
// @Summary      List known currencies
// @Tags         currency
// @Produce      json
// @Success      200  {object}  currenciesResponse
// @Router       /currency [get]
func (h *CurrencyHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, currenciesResponse{Currencies: h.service.Currencies()})
}
