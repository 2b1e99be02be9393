package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"campusnotes/internal/errors"
	"campusnotes/internal/repository"
	"campusnotes/internal/service"
)

// SubjectHandler handles subject endpoints.
type SubjectHandler struct {
	svc service.SubjectService
}

// NewSubjectHandler creates a new subject handler.
func NewSubjectHandler(svc service.SubjectService) *SubjectHandler {
	return &SubjectHandler{svc: svc}
}

// CreateSubjectRequest represents a subject creation request.
type CreateSubjectRequest struct {
	Code     string `json:"code" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Trades   []uint `json:"trades" validate:"required,min=1"`
	Semester int    `json:"semester" validate:"required,min=1,max=8"`
}

// ListSubjects godoc
// @Summary List subjects, optionally filtered by trade and semester
// @Tags subjects
// @Produce json
// @Param trade query int false "Trade id"
// @Param semester query int false "Semester (1-8)"
// @Success 200 {array} model.Subject
// @Failure 500 {object} errors.ErrorResponse
// @Router /subjects [get]
func (h *SubjectHandler) ListSubjects(c echo.Context) error {
	var filter repository.SubjectFilter
	if v := c.QueryParam("trade"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			filter.TradeID = uint(id)
		}
	}
	if v := c.QueryParam("semester"); v != "" {
		if sem, err := strconv.Atoi(v); err == nil {
			filter.Semester = sem
		}
	}

	subjects, err := h.svc.List(c.Request().Context(), filter)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, subjects)
}

// CreateSubject godoc
// @Summary Create a subject linked to one or more trades (admin)
// @Tags subjects
// @Accept json
// @Produce json
// @Param request body CreateSubjectRequest true "Subject data"
// @Success 201 {object} model.Subject
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /subjects [post]
func (h *SubjectHandler) CreateSubject(c echo.Context) error {
	var req CreateSubjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Code, name, at least one trade, and semester are required")
	}

	subject, err := h.svc.Create(c.Request().Context(), req.Code, req.Name, req.Trades, req.Semester)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, subject)
}
