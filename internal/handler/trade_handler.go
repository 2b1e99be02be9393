package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"campusnotes/internal/errors"
	"campusnotes/internal/service"
)

// TradeHandler handles trade (branch) endpoints.
type TradeHandler struct {
	svc service.TradeService
}

// NewTradeHandler creates a new trade handler.
func NewTradeHandler(svc service.TradeService) *TradeHandler {
	return &TradeHandler{svc: svc}
}

// CreateTradeRequest represents a trade creation request.
type CreateTradeRequest struct {
	TradeCode string `json:"tradeCode" validate:"required,min=2,max=5,alpha"`
	TradeName string `json:"tradeName" validate:"required,min=2,max=100"`
}

// ListTrades godoc
// @Summary List all trades
// @Tags trades
// @Produce json
// @Success 200 {array} model.Trade
// @Failure 500 {object} errors.ErrorResponse
// @Router /trades [get]
func (h *TradeHandler) ListTrades(c echo.Context) error {
	trades, err := h.svc.List(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, trades)
}

// CreateTrade godoc
// @Summary Create a trade (admin)
// @Tags trades
// @Accept json
// @Produce json
// @Param request body CreateTradeRequest true "Trade data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /trades [post]
func (h *TradeHandler) CreateTrade(c echo.Context) error {
	var req CreateTradeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Trade code and trade name are required.")
	}

	trade, err := h.svc.Create(c.Request().Context(), req.TradeCode, req.TradeName)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Trade inserted successfully!",
		"trade":   trade,
	})
}
