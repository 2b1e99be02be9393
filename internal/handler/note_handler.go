package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"campusnotes/internal/errors"
	"campusnotes/internal/middleware"
	"campusnotes/internal/service"
)

// NoteHandler handles note endpoints.
type NoteHandler struct {
	svc service.NoteService
}

// NewNoteHandler creates a new note handler.
func NewNoteHandler(svc service.NoteService) *NoteHandler {
	return &NoteHandler{svc: svc}
}

// UploadNoteRequest represents the multipart fields of a note upload.
type UploadNoteRequest struct {
	Title    string `form:"title" validate:"required,min=3,max=100"`
	Trade    uint   `form:"trade" validate:"required"`
	Subject  uint   `form:"subject" validate:"required"`
	Semester int    `form:"semester" validate:"required,min=1,max=8"`
}

// DeleteRequest carries the admin verification code for deletions.
type DeleteRequest struct {
	AdminCode string `json:"adminCode"`
}

// ListNotes godoc
// @Summary List notes filtered by trade code and semester
// @Tags notes
// @Produce json
// @Param tradeCode query string false "Trade code (e.g. GCS)"
// @Param semester query int false "Semester (1-8)"
// @Success 200 {array} model.Note
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /notes [get]
func (h *NoteHandler) ListNotes(c echo.Context) error {
	tradeCode := c.QueryParam("tradeCode")
	semester := 0
	if v := c.QueryParam("semester"); v != "" {
		if sem, err := strconv.Atoi(v); err == nil {
			semester = sem
		}
	}

	notes, err := h.svc.List(c.Request().Context(), tradeCode, semester)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, notes)
}

// UploadNote godoc
// @Summary Upload a note (PDF or JPEG)
// @Tags notes
// @Accept mpfd
// @Produce json
// @Param title formData string true "Title (3-100 chars)"
// @Param trade formData int true "Trade id"
// @Param subject formData int true "Subject id"
// @Param semester formData int true "Semester (1-8)"
// @Param file formData file true "PDF or JPEG"
// @Success 201 {object} model.Note
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /notes/upload [post]
func (h *NoteHandler) UploadNote(c echo.Context) error {
	var req UploadNoteRequest
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

	note, err := h.svc.Upload(c.Request().Context(), service.UploadInput{
		Title:       req.Title,
		TradeID:     req.Trade,
		SubjectID:   req.Subject,
		Semester:    req.Semester,
		ContentType: fileHeader.Header.Get("Content-Type"),
		File:        file,
		UploadedBy:  identity.UserID,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, note)
}

// DeleteNote godoc
// @Summary Delete a note (admin, requires verification code)
// @Tags notes
// @Accept json
// @Produce json
// @Param id path int true "Note id"
// @Param request body DeleteRequest true "Admin verification code"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /notes/{id} [delete]
func (h *NoteHandler) DeleteNote(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid note id")
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
		"message": "Note deleted successfully.",
	})
}
