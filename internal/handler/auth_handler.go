package handler

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"campusnotes/internal/auth"
	"campusnotes/internal/errors"
	"campusnotes/internal/middleware"
	"campusnotes/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService   service.AuthService
	sessionSecret string
	sessionTTL    time.Duration
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, sessionSecret string, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		sessionSecret: sessionSecret,
		sessionTTL:    sessionTTL,
	}
}

// SignupRequest represents a signup request.
type SignupRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"`
}

// VerifyOTPRequest represents an OTP verification request.
type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required"`
	OTP   string `json:"otp" validate:"required,len=6"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest represents a forgot-password request.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required"`
}

// ResetPasswordRequest represents a password reset request.
type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required"`
	OTP         string `json:"otp" validate:"required,len=6"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// TokenResponse carries a bearer token and optionally the public user.
type TokenResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user,omitempty"`
}

// Signup godoc
// @Summary Register a new account (unverified until OTP check)
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup data"
// @Success 201 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Username, email, and password are required.")
	}

	_, err := h.authService.Signup(c.Request().Context(), req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		return h.mapAuthError(err, "failed to register user", "SIGNUP_FAILED")
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"message": "User registered. Check your email for the verification code.",
	})
}

// VerifyOTP godoc
// @Summary Verify the emailed passcode and activate the account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body VerifyOTPRequest true "Email and 6-digit code"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/verify-otp [post]
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "OTP must be exactly 6 characters.")
	}

	token, err := h.authService.VerifyOTP(c.Request().Context(), req.Email, req.OTP)
	if err != nil {
		return h.mapAuthError(err, "failed to verify account", "VERIFY_FAILED")
	}

	return c.JSON(http.StatusOK, TokenResponse{Token: token})
}

// Login godoc
// @Summary Authenticate and receive a bearer token plus a session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required.")
	}

	token, user, session, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return h.mapAuthError(err, "failed to login", "LOGIN_FAILED")
	}

	c.SetCookie(&http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    auth.SignSessionID(h.sessionSecret, session.ID),
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, TokenResponse{Token: token, User: user.Public()})
}

// Logout godoc
// @Summary Revoke the presented token and destroy the session
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token := middleware.BearerToken(c)

	var sessionID string
	if cookie, err := c.Cookie(auth.SessionCookieName); err == nil {
		if id, ok := auth.VerifySessionID(h.sessionSecret, cookie.Value); ok {
			sessionID = id
		}
	}

	if err := h.authService.Logout(c.Request().Context(), token, sessionID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to logout",
			Code:  "LOGOUT_FAILED",
		})
	}

	// Expire the cookie regardless of whether a session existed.
	c.SetCookie(&http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Logged out successfully",
	})
}

// ForgotPassword godoc
// @Summary Email a fresh passcode for resetting the password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Account email"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Email is required.")
	}

	if err := h.authService.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return h.mapAuthError(err, "failed to send reset code", "FORGOT_FAILED")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "A reset code has been sent to your email.",
	})
}

// ResetPassword godoc
// @Summary Replace the password after verifying the emailed passcode
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Email, code, and new password"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Email, OTP, and new password are required.")
	}

	if err := h.authService.ResetPassword(c.Request().Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		return h.mapAuthError(err, "failed to reset password", "RESET_FAILED")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Password reset successfully.",
	})
}

// mapAuthError translates auth service sentinels to HTTP errors; anything
// unrecognized becomes a generic 500 carrying the given message, never the
// internal error text.
func (h *AuthHandler) mapAuthError(err error, fallbackMsg, fallbackCode string) error {
	var policyErr *auth.PolicyError
	switch {
	case stderrors.As(err, &policyErr):
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: policyErr.Error(),
			Code:  "VALIDATION_FAILED",
		})
	case stderrors.Is(err, service.ErrUserAlreadyExists):
		return echo.NewHTTPError(http.StatusConflict, errors.ErrorResponse{
			Error: "User or email already exists.",
			Code:  "USER_ALREADY_EXISTS",
		})
	case stderrors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "Invalid credentials.",
			Code:  "INVALID_CREDENTIALS",
		})
	case stderrors.Is(err, service.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
			Error: "No account found for that email.",
			Code:  "USER_NOT_FOUND",
		})
	case stderrors.Is(err, service.ErrAlreadyVerified):
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "Account is already verified.",
			Code:  "ALREADY_VERIFIED",
		})
	case stderrors.Is(err, service.ErrInvalidOTP):
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "Invalid or expired verification code.",
			Code:  "INVALID_OTP",
		})
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: fallbackMsg,
			Code:  fallbackCode,
		})
	}
}
