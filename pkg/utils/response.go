package utils

import (
	"errors"
	"net/http"

	"laundry-booking/internal/models"

	"github.com/labstack/echo/v4"
)

// RespondWithJSON writes v as the JSON response body.
func RespondWithJSON(c echo.Context, code int, v interface{}) error {
	return c.JSON(code, v)
}

// RespondWithError writes a JSON error body with the given message.
func RespondWithError(c echo.Context, code int, message string) error {
	return c.JSON(code, models.ErrorResponse{Message: message})
}

// HandleServiceError maps service-layer sentinel errors onto HTTP
// status codes. Anything unrecognized is a backend failure: logged and
// surfaced as a generic retry-prompting message.
func HandleServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return RespondWithError(c, http.StatusNotFound, "Resource not found")
	case errors.Is(err, models.ErrConflict):
		return RespondWithError(c, http.StatusConflict, "Resource already exists")
	case errors.Is(err, models.ErrInvalidCredentials):
		return RespondWithError(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, models.ErrForbidden):
		return RespondWithError(c, http.StatusForbidden, "You are not allowed to perform this action")
	case errors.Is(err, models.ErrInvalidStateTransition):
		return RespondWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrProfileIncomplete):
		return RespondWithError(c, http.StatusUnprocessableEntity, models.ErrProfileIncomplete.Error())
	case errors.Is(err, models.ErrInvalidToken):
		return RespondWithError(c, http.StatusUnauthorized, models.ErrInvalidToken.Error())
	case errors.Is(err, models.ErrUnknownServiceType),
		errors.Is(err, models.ErrInvalidPickupDate):
		return RespondWithError(c, http.StatusBadRequest, err.Error())
	default:
		c.Logger().Errorf("unhandled service error: %v", err)
		return RespondWithError(c, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
}
