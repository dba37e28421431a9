package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/shortnote/note-system/internal/core/domain"
	"github.com/shortnote/note-system/internal/session"
)

// CurrentUserKey is the echo context key under which the guards store the
// authenticated domain.SessionUser.
const CurrentUserKey = "current_user"

// CurrentUser extracts the authenticated user injected by RequireUser or
// BearerAuth. The bool is false when no guard ran on this route.
func CurrentUser(c echo.Context) (domain.SessionUser, bool) {
	user, ok := c.Get(CurrentUserKey).(domain.SessionUser)
	return user, ok
}

// RequireUser guards the browser surface: requests without an authenticated
// session are sent to the login page with an error notice.
func RequireUser(sm *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := sm.Current(c)
			if !ok {
				session.Flash(c, session.SeverityError, "Please log in.")
				return c.Redirect(http.StatusSeeOther, "/login")
			}

			c.Set(CurrentUserKey, user)
			return next(c)
		}
	}
}

// BearerAuth guards the JSON API: it validates the HS256 bearer token and
// injects the user identity from its claims.
func BearerAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			id, _ := claims["sub"].(string)
			name, _ := claims["name"].(string)
			if id == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing subject")
			}

			c.Set(CurrentUserKey, domain.SessionUser{ID: id, Name: name})
			return next(c)
		}
	}
}
