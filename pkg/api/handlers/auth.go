package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Keerthan22-sys/Instigar/pkg/api/errors"
	apimw "github.com/Keerthan22-sys/Instigar/pkg/api/middleware"
	"github.com/Keerthan22-sys/Instigar/pkg/metrics"
	"github.com/Keerthan22-sys/Instigar/pkg/models"
	"github.com/Keerthan22-sys/Instigar/pkg/session"
	"github.com/Keerthan22-sys/Instigar/pkg/upstream"
)

// AuthHandler proxies authentication to the upstream API and manages
// gateway sessions for the tokens it issues.
type AuthHandler struct {
	upstream  *upstream.Client
	sessions  *session.Manager
	metrics   *metrics.Metrics
	validator *validator.Validate
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(up *upstream.Client, sessions *session.Manager, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{
		upstream:  up,
		sessions:  sessions,
		metrics:   m,
		validator: validator.New(),
	}
}

// Login forwards credentials upstream and, on success, registers a
// gateway session keyed by the returned token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	resp, err := h.upstream.Login(ctx, req)
	if err != nil {
		h.metrics.LoginAttempts.WithLabelValues("failed").Inc()
		if upstream.IsUnauthorized(err) {
			return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Error:   "invalid_credentials",
				Message: "Invalid username or password.",
			})
		}
		return errors.UpstreamError(c, err)
	}

	username := resp.Username
	if username == "" {
		username = req.Username
	}
	h.createSession(resp.Token, username)
	h.metrics.LoginAttempts.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, models.AuthResponse{
		Token:    resp.Token,
		Username: username,
	})
}

// Register creates an account upstream. When the upstream responds with
// a token the user is logged in immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	resp, err := h.upstream.Register(ctx, req)
	if err != nil {
		return errors.UpstreamError(c, err)
	}

	username := resp.Username
	if username == "" {
		username = req.Username
	}
	if resp.Token != "" {
		h.createSession(resp.Token, username)
	}

	return c.JSON(http.StatusCreated, models.AuthResponse{
		Token:    resp.Token,
		Username: username,
	})
}

// Logout drops the gateway session. The upstream token itself stays
// valid until it expires; the gateway only forgets it.
func (h *AuthHandler) Logout(c echo.Context) error {
	token := apimw.TokenFromContext(c)
	h.sessions.Delete(token)
	h.metrics.ActiveSessions.Set(float64(h.sessions.Count()))

	return c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: "Logged out",
	})
}

func (h *AuthHandler) createSession(token, username string) {
	h.sessions.Create(token, username, h.upstream)
	h.metrics.ActiveSessions.Set(float64(h.sessions.Count()))
}
