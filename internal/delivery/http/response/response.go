// Package response writes the wire-level JSON bodies. The shapes are flat and
// part of the API contract; clients match on the exact keys and strings.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"

	domainerrors "guidemyai/internal/domain/errors"
)

// ErrorBody is the generic failure shape: {"error": "..."}.
type ErrorBody struct {
	Error string `json:"error"`
}

// UnauthorizedBody is the authenticator's 401 shape.
type UnauthorizedBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// InvalidGrantBody is the authorization-handoff failure shape.
type InvalidGrantBody struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// Error writes {"error": message} with the given status.
func Error(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, ErrorBody{Error: message})
}

// Unauthorized writes the authenticator's 401 body.
func Unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, UnauthorizedBody{
		Error:   "unauthorized",
		Message: "No valid session or token found",
	})
}

// InvalidRequest writes the handoff's 400 body for malformed requests.
func InvalidRequest(c echo.Context, description string) error {
	return c.JSON(http.StatusBadRequest, InvalidGrantBody{
		Error:            "invalid_request",
		ErrorDescription: description,
	})
}

// InvalidGrant writes the handoff's 401 body.
func InvalidGrant(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, InvalidGrantBody{
		Error:            "invalid_grant",
		ErrorDescription: "Invalid credentials",
	})
}

// InternalError writes the generic 500 body. Details stay in the logs.
func InternalError(c echo.Context) error {
	return Error(c, http.StatusInternalServerError, "internal server error")
}

// FromAppError maps an AppError onto its wire shape. The unauthorized,
// invalid_grant and forbidden codes have dedicated two-field bodies;
// everything else is the flat {"error": message} form.
func FromAppError(c echo.Context, appErr domainerrors.AppError) error {
	switch appErr.ErrorCode() {
	case "unauthorized":
		return Unauthorized(c)
	case "invalid_grant":
		return InvalidGrant(c)
	case "forbidden":
		return c.JSON(http.StatusForbidden, UnauthorizedBody{
			Error:   "forbidden",
			Message: appErr.Message(),
		})
	default:
		return Error(c, appErr.HTTPCode(), appErr.Message())
	}
}
