package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrTradeExists is returned when a trade code is already taken.
	ErrTradeExists = errors.New("trade code already exists")
	// ErrTradeNotFound is returned when a trade is not found.
	ErrTradeNotFound = errors.New("trade not found")
	// ErrSubjectNotFound is returned when a subject is not found.
	ErrSubjectNotFound = errors.New("subject not found")
	// ErrResourceNotFound is returned when a note or PYQ is not found.
	ErrResourceNotFound = errors.New("resource not found")
	// ErrUnsupportedFileType is returned when an upload is neither PDF nor JPEG.
	ErrUnsupportedFileType = errors.New("only PDF and JPEG files are allowed")
	// ErrInvalidAdminCode is returned when the deletion verification code is wrong.
	ErrInvalidAdminCode = errors.New("invalid admin verification code")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrTradeExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "TRADE_EXISTS")
	case errors.Is(err, ErrTradeNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TRADE_NOT_FOUND")
	case errors.Is(err, ErrSubjectNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "SUBJECT_NOT_FOUND")
	case errors.Is(err, ErrResourceNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "RESOURCE_NOT_FOUND")
	case errors.Is(err, ErrUnsupportedFileType):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "UNSUPPORTED_FILE_TYPE")
	case errors.Is(err, ErrInvalidAdminCode):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_ADMIN_CODE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
