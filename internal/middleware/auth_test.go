package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusnotes/internal/auth"
)

const sessionSecret = "session-secret"

type guardFixture struct {
	sessions    *auth.MemorySessionStore
	jwtService  *auth.JWTService
	revocations *auth.MemoryRevocationList
	guard       echo.MiddlewareFunc
}

func newGuardFixture() *guardFixture {
	sessions := auth.NewMemorySessionStore(time.Hour)
	jwtService := auth.NewJWTService("jwt-secret", time.Hour)
	revocations := auth.NewMemoryRevocationList()
	return &guardFixture{
		sessions:    sessions,
		jwtService:  jwtService,
		revocations: revocations,
		guard:       Guard(sessions, jwtService, revocations, sessionSecret),
	}
}

// runGuard sends one request through the guard chain and reports the handler's
// view of the caller identity.
func runGuard(t *testing.T, f *guardFixture, configure func(req *http.Request)) (*httptest.ResponseRecorder, *auth.Identity) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	configure(req)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *auth.Identity
	handler := f.guard(func(c echo.Context) error {
		if identity, ok := IdentityFrom(c); ok {
			seen = &identity
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, seen
}

func TestGuard_NoCredentials(t *testing.T) {
	f := newGuardFixture()

	rec, seen := runGuard(t, f, func(req *http.Request) {})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "No token provided")
	assert.Nil(t, seen)
}

func TestGuard_ValidBearerToken(t *testing.T) {
	f := newGuardFixture()

	token, err := f.jwtService.GenerateToken(7, "alice", "12345@sliet.ac.in", "student")
	require.NoError(t, err)

	rec, seen := runGuard(t, f, func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, uint(7), seen.UserID)
	assert.Equal(t, "student", seen.Role)
}

func TestGuard_RevokedToken(t *testing.T) {
	f := newGuardFixture()

	token, err := f.jwtService.GenerateToken(7, "alice", "12345@sliet.ac.in", "student")
	require.NoError(t, err)
	require.NoError(t, f.revocations.Add(context.Background(), token))

	rec, seen := runGuard(t, f, func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token expired or user logged out")
	assert.Nil(t, seen)
}

func TestGuard_InvalidToken(t *testing.T) {
	f := newGuardFixture()

	rec, _ := runGuard(t, f, func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-token")
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid token")
}

func TestGuard_ExpiredToken(t *testing.T) {
	f := newGuardFixture()

	expired := auth.NewJWTService("jwt-secret", -time.Minute)
	token, err := expired.GenerateToken(7, "alice", "12345@sliet.ac.in", "student")
	require.NoError(t, err)

	rec, _ := runGuard(t, f, func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid token")
}

func TestGuard_SessionCookie(t *testing.T) {
	f := newGuardFixture()

	session, err := f.sessions.Create(auth.Identity{UserID: 7, Username: "alice", Role: "student"})
	require.NoError(t, err)

	rec, seen := runGuard(t, f, func(req *http.Request) {
		req.AddCookie(&http.Cookie{
			Name:  auth.SessionCookieName,
			Value: auth.SignSessionID(sessionSecret, session.ID),
		})
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, uint(7), seen.UserID)
}

func TestGuard_TamperedSessionCookieFallsThrough(t *testing.T) {
	f := newGuardFixture()

	session, err := f.sessions.Create(auth.Identity{UserID: 7})
	require.NoError(t, err)

	// An unsigned session id must not resolve, and with no bearer token the
	// request is rejected.
	rec, seen := runGuard(t, f, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: session.ID})
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, seen)
}

func TestGuard_DestroyedSessionFallsBackToBearer(t *testing.T) {
	f := newGuardFixture()

	session, err := f.sessions.Create(auth.Identity{UserID: 7})
	require.NoError(t, err)
	f.sessions.Destroy(session.ID)

	token, err := f.jwtService.GenerateToken(7, "alice", "12345@sliet.ac.in", "student")
	require.NoError(t, err)

	rec, seen := runGuard(t, f, func(req *http.Request) {
		req.AddCookie(&http.Cookie{
			Name:  auth.SessionCookieName,
			Value: auth.SignSessionID(sessionSecret, session.ID),
		})
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, uint(7), seen.UserID)
}

func TestRequireRole(t *testing.T) {
	e := echo.New()

	run := func(identity *auth.Identity, roles ...string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodDelete, "/api/notes/1", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if identity != nil {
			c.Set(identityKey, *identity)
		}

		handler := RequireRole(roles...)(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		if err := handler(c); err != nil {
			e.HTTPErrorHandler(err, c)
		}
		return rec
	}

	t.Run("allowed role passes", func(t *testing.T) {
		rec := run(&auth.Identity{UserID: 1, Role: "admin"}, "admin")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("disallowed role is forbidden", func(t *testing.T) {
		rec := run(&auth.Identity{UserID: 1, Role: "student"}, "admin")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing identity is unauthorized", func(t *testing.T) {
		rec := run(nil, "admin")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
