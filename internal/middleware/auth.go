// Package middleware holds the request guards run before route handlers.
package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"campusnotes/internal/auth"
)

// identityKey is the context key the guard stores the caller identity under.
const identityKey = "identity"

// Guard resolves the caller's identity before any downstream handler runs.
//
// Resolution order: the session cookie first, then the Authorization bearer
// token (signature, expiry, and revocation all checked). A request that
// yields no identity is rejected with 401 and never reaches the handler.
func Guard(
	sessions auth.SessionStore,
	jwtService *auth.JWTService,
	revocations auth.RevocationList,
	sessionSecret string,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if identity, ok := resolveSession(c, sessions, sessionSecret); ok {
				c.Set(identityKey, identity)
				return next(c)
			}

			token := BearerToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "No token provided")
			}

			revoked, err := revocations.Contains(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
			}
			if revoked {
				return echo.NewHTTPError(http.StatusUnauthorized, "Token expired or user logged out")
			}

			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			c.Set(identityKey, auth.Identity{
				UserID:   claims.UserID,
				Username: claims.Username,
				Email:    claims.Email,
				Role:     claims.Role,
			})
			return next(c)
		}
	}
}

func resolveSession(c echo.Context, sessions auth.SessionStore, secret string) (auth.Identity, bool) {
	cookie, err := c.Cookie(auth.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return auth.Identity{}, false
	}
	id, ok := auth.VerifySessionID(secret, cookie.Value)
	if !ok {
		return auth.Identity{}, false
	}
	session, ok := sessions.Get(id)
	if !ok {
		return auth.Identity{}, false
	}
	return session.Identity, true
}

// BearerToken extracts the raw token from the Authorization header, or "".
func BearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimPrefix(header, prefix)
}

// IdentityFrom returns the identity the guard attached to the request.
func IdentityFrom(c echo.Context) (auth.Identity, bool) {
	identity, ok := c.Get(identityKey).(auth.Identity)
	return identity, ok
}

// RequireRole rejects callers whose role is not in the allow-list. It must
// run after Guard.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "No token provided")
			}
			if _, ok := allowed[identity.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}
			return next(c)
		}
	}
}
