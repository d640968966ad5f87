package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ourshelves/bookswap/internal/model"
)

type BookService interface {
	Lookup(ctx context.Context, isbn string) (*model.BookInfo, error)
	Add(ctx context.Context, params *model.CreateBookParams) (*model.Book, error)
}

func LookupBook(bookService BookService) echo.HandlerFunc {
	return func(c echo.Context) error {
		isbn := c.QueryParam("isbn")
		if isbn == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "ISBN is required"})
		}

		info, err := bookService.Lookup(c.Request().Context(), isbn)
		if err != nil {
			return respondError(c, err)
		}

		return c.JSON(http.StatusOK, info)
	}
}

func AddBook(bookService BookService) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &model.CreateBookParams{}
		if err := c.Bind(params); err != nil {
			return respondError(c, model.ErrorMissingFields)
		}

		book, err := bookService.Add(c.Request().Context(), params)
		if err != nil {
			return respondError(c, err)
		}

		return c.JSON(http.StatusCreated, echo.Map{
			"message": "Book added successfully",
			"book_id": book.ID,
		})
	}
}

// OnboardingInfo serves the static getting-started payload shown to
// new clients.
func OnboardingInfo() echo.HandlerFunc {
	payload := echo.Map{
		"service": "bookswap",
		"welcome": "Swap books with readers near you.",
		"steps": []echo.Map{
			{"step": 1, "title": "Create an account", "description": "Register with your email, a password and your location."},
			{"step": 2, "title": "Secure your account", "description": "Scan the setup QR with an authenticator app and confirm a code to enable MFA."},
			{"step": 3, "title": "Shelve your books", "description": "Look up titles by ISBN and add the ones you want to swap."},
		},
	}
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, payload)
	}
}
