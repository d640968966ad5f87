package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ourshelves/bookswap/internal/model"
)

// respondError maps domain errors onto the contractual status codes
// and a structured {"message": ...} body. Anything unrecognized is
// logged and reported as a bare 500.
func respondError(c echo.Context, err error) error {
	var status int
	switch {
	case errors.Is(err, model.ErrorMissingFields),
		errors.Is(err, model.ErrorInvalidCoordinates),
		errors.Is(err, model.ErrorDuplicateEmail),
		errors.Is(err, model.ErrorDuplicateISBN):
		status = http.StatusBadRequest
	case errors.Is(err, model.ErrorInvalidCredentials),
		errors.Is(err, model.ErrorInvalidToken),
		errors.Is(err, model.ErrorNoPendingSetup),
		errors.Is(err, model.ErrorNoPendingLogin),
		errors.Is(err, model.ErrorUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, model.ErrorUserNotFound),
		errors.Is(err, model.ErrorBookNotFound):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrorCatalogUnavailable):
		status = http.StatusInternalServerError
	default:
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal server error"})
	}

	return c.JSON(status, echo.Map{"message": err.Error()})
}
