package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// Error types
const (
	ErrorTypeValidation   = "https://smartsplit.app/errors/validation"
	ErrorTypeUnauthorized = "https://smartsplit.app/errors/unauthorized"
	ErrorTypeForbidden    = "https://smartsplit.app/errors/forbidden"
	ErrorTypeNotFound     = "https://smartsplit.app/errors/not-found"
	ErrorTypeConflict     = "https://smartsplit.app/errors/conflict"
	ErrorTypeRateLimit    = "https://smartsplit.app/errors/rate-limit"
	ErrorTypeInternal     = "https://smartsplit.app/errors/internal"
)

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string) error {
	return problem(c, http.StatusBadRequest, ErrorTypeValidation, "Validation Error", detail)
}

// NewUnauthorizedError creates an unauthorized error response
func NewUnauthorizedError(c echo.Context, detail string) error {
	return problem(c, http.StatusUnauthorized, ErrorTypeUnauthorized, "Unauthorized", detail)
}

// NewForbiddenError creates a forbidden error response
func NewForbiddenError(c echo.Context, detail string) error {
	return problem(c, http.StatusForbidden, ErrorTypeForbidden, "Forbidden", detail)
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return problem(c, http.StatusNotFound, ErrorTypeNotFound, "Not Found", detail)
}

// NewConflictError creates a conflict error response
func NewConflictError(c echo.Context, detail string) error {
	return problem(c, http.StatusConflict, ErrorTypeConflict, "Conflict", detail)
}

// NewRateLimitError creates a rate limit error response with a Retry-After
// header so the caller knows when to back off until.
func NewRateLimitError(c echo.Context, retryAfterSeconds int) error {
	c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
	return problem(c, http.StatusTooManyRequests, ErrorTypeRateLimit, "Rate Limit Exceeded",
		"Too many requests. Please retry after "+strconv.Itoa(retryAfterSeconds)+" seconds.")
}

// NewInternalError creates an internal error response. Internal detail is
// never forwarded to the caller, only logged server-side.
func NewInternalError(c echo.Context, detail string) error {
	return problem(c, http.StatusInternalServerError, ErrorTypeInternal, "Internal Server Error", detail)
}

func problem(c echo.Context, status int, errType, title, detail string) error {
	return c.JSON(status, ProblemDetails{
		Type:     errType,
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}
