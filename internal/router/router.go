package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"campusnotes/internal/auth"
	"campusnotes/internal/config"
	"campusnotes/internal/handler"
	"campusnotes/internal/model"
	appmw "campusnotes/internal/middleware"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	sessions auth.SessionStore,
	jwtService *auth.JWTService,
	revocations auth.RevocationList,
	authHandler *handler.AuthHandler,
	tradeHandler *handler.TradeHandler,
	subjectHandler *handler.SubjectHandler,
	noteHandler *handler.NoteHandler,
	pyqHandler *handler.PYQHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.ClientOrigin},
		AllowCredentials: true,
	}))
	// Fixed-window per-IP limit, matching the original deployment's
	// 100 requests / 15 min in spirit if not in exact arithmetic.
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(10))))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/verify-otp", authHandler.VerifyOTP)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.POST("/auth/forgot-password", authHandler.ForgotPassword)
	api.POST("/auth/reset-password", authHandler.ResetPassword)

	// Dropdown data is public; mutation is admin-only.
	api.GET("/trades", tradeHandler.ListTrades)
	api.GET("/subjects", subjectHandler.ListSubjects)

	// Guarded routes: identity resolved from session or bearer token before
	// any handler runs.
	guard := appmw.Guard(sessions, jwtService, revocations, cfg.SessionSecret)
	secured := api.Group("", guard)

	member := appmw.RequireRole(model.RoleStudent, model.RoleAdmin)
	admin := appmw.RequireRole(model.RoleAdmin)

	secured.POST("/trades", tradeHandler.CreateTrade, admin)
	secured.POST("/subjects", subjectHandler.CreateSubject, admin)

	secured.GET("/notes", noteHandler.ListNotes, member)
	secured.POST("/notes/upload", noteHandler.UploadNote, member)
	secured.DELETE("/notes/:id", noteHandler.DeleteNote, admin)

	secured.GET("/pyqs", pyqHandler.ListPYQs, member)
	secured.POST("/pyqs/upload", pyqHandler.UploadPYQ, member)
	secured.DELETE("/pyqs/:id", pyqHandler.DeletePYQ, admin)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
