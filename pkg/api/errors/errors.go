package errors

import (
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Keerthan22-sys/Instigar/pkg/models"
	"github.com/Keerthan22-sys/Instigar/pkg/upstream"
)

// ValidationError returns a 400 with per-field messages when err carries
// validator details, and a generic message otherwise.
func ValidationError(c echo.Context, err error) error {
	log.Printf("[VALIDATION ERROR] Path: %s, Error: %v", c.Request().URL.Path, err)

	resp := models.ErrorResponse{
		Error:   "validation_error",
		Message: "Invalid request data. Please check your input and try again.",
	}

	var verrs validator.ValidationErrors
	if ok := asValidationErrors(err, &verrs); ok {
		resp.Fields = make(map[string]string, len(verrs))
		for _, fe := range verrs {
			resp.Fields[fieldName(fe)] = fieldMessage(fe)
		}
	}

	return c.JSON(http.StatusBadRequest, resp)
}

// UpstreamError maps a failed upstream call to this service's response:
// 401 and 403 keep their meaning, anything else surfaces the upstream
// status and body text as a bad-gateway error.
func UpstreamError(c echo.Context, err error) error {
	log.Printf("[UPSTREAM ERROR] Path: %s, Error: %v", c.Request().URL.Path, err)

	switch {
	case upstream.IsUnauthorized(err):
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "unauthorized",
			Message: "Your session is no longer valid. Please log in again.",
		})
	case upstream.IsForbidden(err):
		return c.JSON(http.StatusForbidden, models.ErrorResponse{
			Error:   "forbidden",
			Message: "You do not have permission to perform this action.",
		})
	case upstream.IsNotFound(err):
		return c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "The requested resource was not found.",
		})
	default:
		return c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "upstream_error",
			Message: err.Error(),
		})
	}
}

// UnauthorizedError returns a generic unauthorized error
func UnauthorizedError(c echo.Context, message string) error {
	if message == "" {
		message = "You are not authorized to access this resource."
	}
	return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
		Error:   "unauthorized",
		Message: message,
	})
}

// NotFoundError returns a generic not found error
func NotFoundError(c echo.Context, resource string) error {
	return c.JSON(http.StatusNotFound, models.ErrorResponse{
		Error:   "not_found",
		Message: "The requested resource was not found.",
	})
}

// InternalError returns a generic internal server error
func InternalError(c echo.Context, err error) error {
	log.Printf("[INTERNAL ERROR] Path: %s, Error: %v", c.Request().URL.Path, err)

	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred. Please try again later.",
	})
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return false
	}
	*target = verrs
	return true
}

func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return "request"
	}
	// JSON field names are lowerCamelCase.
	return strings.ToLower(name[:1]) + name[1:]
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "This field is required."
	case "email":
		return "Please enter a valid email address."
	case "min":
		return "Value is too short."
	case "oneof":
		return "Value must be one of: " + fe.Param()
	default:
		return "Invalid value."
	}
}
