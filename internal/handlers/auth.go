package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pquerna/otp"

	"github.com/ourshelves/bookswap/internal/model"
)

type AuthService interface {
	Register(ctx context.Context, token string, params *model.CreateUserParams) (*model.User, error)
	Login(ctx context.Context, token, email, password string) (bool, error)
	SubmitLoginCode(ctx context.Context, token, code string) error
	BeginMFASetup(ctx context.Context, token string) (*otp.Key, error)
	ConfirmMFASetup(ctx context.Context, token, code string) error
	Profile(ctx context.Context, token string) (*model.User, error)
	Logout(ctx context.Context, token string) error
}

func Register(authService AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &model.CreateUserParams{}
		if err := c.Bind(params); err != nil {
			return respondError(c, model.ErrorMissingFields)
		}

		token := sessionToken(c)
		user, err := authService.Register(c.Request().Context(), token, params)
		if err != nil {
			return respondError(c, err)
		}

		return c.JSON(http.StatusCreated, echo.Map{
			"message": "User registered successfully",
			"user_id": user.ID,
		})
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Login(authService AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		login := loginRequest{}
		if err := c.Bind(&login); err != nil {
			return respondError(c, model.ErrorMissingFields)
		}

		token := sessionToken(c)
		mfaRequired, err := authService.Login(c.Request().Context(), token, login.Email, login.Password)
		if err != nil {
			if errors.Is(err, model.ErrorInvalidCredentials) {
				authFailures.WithLabelValues("password").Inc()
			}
			return respondError(c, err)
		}

		authSuccesses.WithLabelValues("password").Inc()
		return c.JSON(http.StatusOK, echo.Map{
			"message":      "Login successful",
			"mfa_required": mfaRequired,
		})
	}
}

type mfaRequest struct {
	Token string `json:"token"`
}

func SubmitLoginCode(authService AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := mfaRequest{}
		if err := c.Bind(&req); err != nil {
			return respondError(c, model.ErrorMissingFields)
		}

		token := sessionToken(c)
		if err := authService.SubmitLoginCode(c.Request().Context(), token, req.Token); err != nil {
			if errors.Is(err, model.ErrorInvalidToken) {
				authFailures.WithLabelValues("totp").Inc()
			}
			return respondError(c, err)
		}

		authSuccesses.WithLabelValues("totp").Inc()
		return c.JSON(http.StatusOK, echo.Map{"message": "Login successful"})
	}
}

func Profile(authService AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := authService.Profile(c.Request().Context(), sessionToken(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, user)
	}
}

func Logout(authService AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := authService.Logout(c.Request().Context(), sessionToken(c)); err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "Logged out"})
	}
}
