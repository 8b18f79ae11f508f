package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Keerthan22-sys/Instigar/pkg/api/errors"
	"github.com/Keerthan22-sys/Instigar/pkg/models"
	"github.com/Keerthan22-sys/Instigar/pkg/prefs"
)

// PrefsHandler serves the user-extensible assignee and channel sets.
type PrefsHandler struct {
	assignees *prefs.Service
	channels  *prefs.Service
	validator *validator.Validate
}

// NewPrefsHandler creates a new prefs handler
func NewPrefsHandler(assignees, channels *prefs.Service) *PrefsHandler {
	return &PrefsHandler{
		assignees: assignees,
		channels:  channels,
		validator: validator.New(),
	}
}

// ListAssignees returns the merged default and custom assignee options.
func (h *PrefsHandler) ListAssignees(c echo.Context) error {
	return h.list(c, h.assignees)
}

// AddAssignee adds a custom assignee option.
func (h *PrefsHandler) AddAssignee(c echo.Context) error {
	return h.add(c, h.assignees)
}

// RemoveAssignee removes a custom assignee option by value.
func (h *PrefsHandler) RemoveAssignee(c echo.Context) error {
	return h.remove(c, h.assignees)
}

// ListChannels returns the merged default and custom channel options.
func (h *PrefsHandler) ListChannels(c echo.Context) error {
	return h.list(c, h.channels)
}

// AddChannel adds a custom channel option.
func (h *PrefsHandler) AddChannel(c echo.Context) error {
	return h.add(c, h.channels)
}

// RemoveChannel removes a custom channel option by value.
func (h *PrefsHandler) RemoveChannel(c echo.Context) error {
	return h.remove(c, h.channels)
}

func (h *PrefsHandler) list(c echo.Context, svc *prefs.Service) error {
	options, err := svc.List(c.Request().Context())
	if err != nil {
		return errors.InternalError(c, err)
	}
	return c.JSON(http.StatusOK, map[string][]prefs.Option{"data": options})
}

func (h *PrefsHandler) add(c echo.Context, svc *prefs.Service) error {
	var req models.AddOptionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	option, err := svc.Add(c.Request().Context(), req.Name)
	switch {
	case err == nil:
		return c.JSON(http.StatusCreated, option)
	case stderrors.Is(err, prefs.ErrEmptyName):
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
	case stderrors.Is(err, prefs.ErrAlreadyExists):
		return c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "already_exists",
			Message: err.Error(),
		})
	default:
		return errors.InternalError(c, err)
	}
}

func (h *PrefsHandler) remove(c echo.Context, svc *prefs.Service) error {
	value := c.Param("value")

	err := svc.Remove(c.Request().Context(), value)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, models.SuccessResponse{
			Success: true,
			Message: "Option removed",
		})
	case stderrors.Is(err, prefs.ErrImmutableDefault):
		return c.JSON(http.StatusForbidden, models.ErrorResponse{
			Error:   "immutable_default",
			Message: err.Error(),
		})
	case stderrors.Is(err, prefs.ErrNotFound):
		return errors.NotFoundError(c, "option")
	default:
		return errors.InternalError(c, err)
	}
}
