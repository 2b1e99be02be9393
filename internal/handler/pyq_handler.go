package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"campusnotes/internal/errors"
	"campusnotes/internal/middleware"
	"campusnotes/internal/repository"
	"campusnotes/internal/service"
)

// PYQHandler handles previous-year question paper endpoints.
type PYQHandler struct {
	svc service.PYQService
}

// NewPYQHandler creates a new PYQ handler.
func NewPYQHandler(svc service.PYQService) *PYQHandler {
	return &PYQHandler{svc: svc}
}

// UploadPYQRequest represents the multipart fields of a PYQ upload.
type UploadPYQRequest struct {
	Title    string `form:"title" validate:"required,min=3,max=100"`
	Trade    uint   `form:"trade" validate:"required"`
	Subject  uint   `form:"subject" validate:"required"`
	Semester int    `form:"semester" validate:"required,min=1,max=8"`
	Year     int    `form:"year"`
}

// ListPYQs godoc
// @Summary List PYQs filtered by trade, subject, and semester
// @Tags pyqs
// @Produce json
// @Param trade query int false "Trade id"
// @Param subject query int false "Subject id"
// @Param semester query int false "Semester (1-8)"
// @Success 200 {array} model.PYQ
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /pyqs [get]
func (h *PYQHandler) ListPYQs(c echo.Context) error {
	var filter repository.ResourceFilter
	if v := c.QueryParam("trade"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			filter.TradeID = uint(id)
		}
	}
	if v := c.QueryParam("subject"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			filter.SubjectID = uint(id)
		}
	}
	if v := c.QueryParam("semester"); v != "" {
		if sem, err := strconv.Atoi(v); err == nil {
			filter.Semester = sem
		}
	}

	pyqs, err := h.svc.List(c.Request().Context(), filter)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, pyqs)
}

// UploadPYQ godoc
// @Summary Upload a PYQ (PDF or JPEG)
// @Tags pyqs
// @Accept mpfd
// @Produce json
// @Param title formData string true "Title (3-100 chars)"
// @Param trade formData int true "Trade id"
// @Param subject formData int true "Subject id"
// @Param semester formData int true "Semester (1-8)"
// @Param year formData int false "Exam year"
// @Param file formData file true "PDF or JPEG"
// @Success 201 {object} model.PYQ
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /pyqs/upload [post]
func (h *PYQHandler) UploadPYQ(c echo.Context) error {
	var req UploadPYQRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Title (3-100 chars), trade, subject, and semester (1-8) are required.")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "File is required.")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "File is required.")
	}
	defer file.Close()

	identity, _ := middleware.IdentityFrom(c)

	pyq, err := h.svc.Upload(c.Request().Context(), service.UploadInput{
		Title:       req.Title,
		TradeID:     req.Trade,
		SubjectID:   req.Subject,
		Semester:    req.Semester,
		Year:        req.Year,
		ContentType: fileHeader.Header.Get("Content-Type"),
		File:        file,
		UploadedBy:  identity.UserID,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, pyq)
}

// DeletePYQ godoc
// @Summary Delete a PYQ (admin, requires verification code)
// @Tags pyqs
// @Accept json
// @Produce json
// @Param id path int true "PYQ id"
// @Param request body DeleteRequest true "Admin verification code"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /pyqs/{id} [delete]
func (h *PYQHandler) DeletePYQ(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid pyq id")
	}

	var req DeleteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.svc.Delete(c.Request().Context(), uint(id), req.AdminCode); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "PYQ deleted successfully.",
	})
}
