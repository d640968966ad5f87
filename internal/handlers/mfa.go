package handlers

import (
	"bytes"
	"errors"
	"image/png"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ourshelves/bookswap/internal/model"
)

const qrImageSize = 200

// MFASetup returns the provisioning QR for the pending subject's
// secret, generating the secret on first call.
func MFASetup(authService AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		key, err := authService.BeginMFASetup(c.Request().Context(), sessionToken(c))
		if err != nil {
			return respondError(c, err)
		}

		img, err := key.Image(qrImageSize, qrImageSize)
		if err != nil {
			return respondError(c, err)
		}

		buf := bytes.Buffer{}
		if err := png.Encode(&buf, img); err != nil {
			return respondError(c, err)
		}

		return c.Blob(http.StatusOK, "image/png", buf.Bytes())
	}
}

func MFAVerify(authService AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := mfaRequest{}
		if err := c.Bind(&req); err != nil {
			return respondError(c, model.ErrorMissingFields)
		}

		token := sessionToken(c)
		if err := authService.ConfirmMFASetup(c.Request().Context(), token, req.Token); err != nil {
			if errors.Is(err, model.ErrorInvalidToken) {
				// a bad code during enrollment is the caller's input
				// problem, not an authorization failure
				authFailures.WithLabelValues("setup").Inc()
				return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
			}
			return respondError(c, err)
		}

		authSuccesses.WithLabelValues("setup").Inc()
		return c.JSON(http.StatusOK, echo.Map{"message": "MFA enabled"})
	}
}
