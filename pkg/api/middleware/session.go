package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Keerthan22-sys/Instigar/pkg/auth"
	"github.com/Keerthan22-sys/Instigar/pkg/models"
	"github.com/Keerthan22-sys/Instigar/pkg/session"
)

// Context keys set by SessionMiddleware.
const (
	ContextToken    = "token"
	ContextSession  = "session"
	ContextUsername = "username"
)

// SessionMiddleware extracts the bearer token, rejects tokens that are
// visibly expired, and resolves the gateway session. The upstream
// service verifies the token signature on every proxied call; the
// gateway only inspects claims.
func SessionMiddleware(sessions *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := auth.ExtractBearer(c.Request().Header.Get("Authorization"))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
					Error:   "missing_token",
					Message: "Authorization header must be 'Bearer {token}'",
				})
			}

			info, err := auth.Inspect(token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
					Error:   "invalid_token",
					Message: err.Error(),
				})
			}

			sess, ok := sessions.Get(token)
			if !ok {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
					Error:   "session_expired",
					Message: "No active session for this token. Please log in again.",
				})
			}

			c.Set(ContextToken, token)
			c.Set(ContextSession, sess)
			c.Set(ContextUsername, info.Username)

			return next(c)
		}
	}
}

// SessionFromContext returns the session resolved by SessionMiddleware.
func SessionFromContext(c echo.Context) *session.Session {
	sess, _ := c.Get(ContextSession).(*session.Session)
	return sess
}

// TokenFromContext returns the bearer token resolved by SessionMiddleware.
func TokenFromContext(c echo.Context) string {
	token, _ := c.Get(ContextToken).(string)
	return token
}
