package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/visago/visa-assistant/internal/core/ports"
)

type CountryHandler struct {
	service ports.CountryService
}

func NewCountryHandler(service ports.CountryService) *CountryHandler {
	return &CountryHandler{service: service}
}

// List handles GET /countries.
//
// @Summary      List destination countries
// @Tags         countries
// @Produce      json
// @Param        q       query     string  false  "Name or code contains"
// @Param        region  query     string  false  "Region, case-insensitive"
// @Success      200     {array}   domain.Country
// @Failure      503     {object}  errorResponse
// @Router       /countries [get]
func (h *CountryHandler) List(c echo.Context) error {
	countries, err := h.service.List(c.Request().Context(), ports.CountryFilter{
		Query:  c.QueryParam("q"),
		Region: c.QueryParam("region"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, countries)
}

// Get handles GET /countries/:code.
//
// @Summary      Get a country
// @Tags         countries
// @Produce      json
// @Param        code  path      string  true  "ISO 3166 alpha-2 code"
// @Success      200   {object}  domain.Country
// @Failure      404   {object}  errorResponse
// @Router       /countries/{code} [get]
func (h *CountryHandler) Get(c echo.Context) error {
	country, err := h.service.Get(c.Request().Context(), c.Param("code"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, country)
}
