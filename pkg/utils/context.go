package utils

import (
	"net/http"

	"laundry-booking/internal/models"

	"github.com/labstack/echo/v4"
)

// ExtractUserInfo pulls the authenticated identity out of the request
// context, where the JWT middleware placed it. Returns an already-sent
// HTTP error when the context carries no identity.
func ExtractUserInfo(c echo.Context) (userID, role string, err error) {
	userID, _ = c.Get("userID").(string)
	role, _ = c.Get("userRole").(string)
	if userID == "" {
		return "", "", RespondWithError(c, http.StatusUnauthorized, "Missing or invalid authentication")
	}
	if role == "" {
		role = models.RoleCustomer
	}
	return userID, role, nil
}
