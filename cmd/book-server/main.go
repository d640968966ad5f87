package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/nrednav/cuid2"

	"github.com/ourshelves/bookswap/internal/boot"
	"github.com/ourshelves/bookswap/internal/catalog"
	"github.com/ourshelves/bookswap/internal/handlers"
	"github.com/ourshelves/bookswap/internal/service/book"
	"github.com/ourshelves/bookswap/internal/store"
)

type config struct {
	*boot.Config
	bookService handlers.BookService
	books       *store.BookStore
}

func newConfig(bootConfig *boot.Config) *config {
	books, err := store.NewBookStore(bootConfig)
	if err != nil {
		log.Fatalf("creating book store: %+v", err)
	}

	bookService := book.New(books, catalog.New(bootConfig.Catalog.BaseURL))

	return &config{bootConfig, bookService, books}
}

func main() {
	bootConfig, err := boot.Load()
	if err != nil {
		log.Fatalf("boot: %+v", err)
	}

	config := newConfig(bootConfig)
	defer config.books.Close()

	server := echo.New()
	server.Use(middleware.BodyLimit("1M"))
	server.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string {
			return cuid2.Generate()
		},
	}))
	server.Use(echoprometheus.NewMiddleware("bookswap_book"))
	server.Use(middleware.Recover())

	server.Logger.SetLevel(log.INFO)

	headers := []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization}
	server.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{config.Server.Origins},
		AllowHeaders:     headers,
		AllowCredentials: true,
	}))

	server.GET("/lookup", handlers.LookupBook(config.bookService))
	server.POST("/books/add", handlers.AddBook(config.bookService))
	server.GET("/onboarding-info", handlers.OnboardingInfo())

	go func() {
		metrics := echo.New()
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(config.Server.BookMetricsAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	go func() {
		if err := server.Start(config.Server.BookAddr); err != nil && err != http.ErrServerClosed {
			server.Logger.Fatal("shutting down the server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		server.Logger.Fatal(err)
	}
}
