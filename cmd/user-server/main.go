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
	"github.com/ourshelves/bookswap/internal/handlers"
	"github.com/ourshelves/bookswap/internal/service/auth"
	"github.com/ourshelves/bookswap/internal/store"
)

type config struct {
	*boot.Config
	authService handlers.AuthService
	users       *store.UserStore
	sessions    store.SessionStore
}

func newConfig(bootConfig *boot.Config) *config {
	users, err := store.NewUserStore(bootConfig)
	if err != nil {
		log.Fatalf("creating user store: %+v", err)
	}

	sessions, err := store.NewSessionStore(bootConfig)
	if err != nil {
		log.Fatalf("creating session store: %+v", err)
	}

	authService := auth.New(bootConfig, users, sessions)

	return &config{bootConfig, authService, users, sessions}
}

func main() {
	bootConfig, err := boot.Load()
	if err != nil {
		log.Fatalf("boot: %+v", err)
	}

	config := newConfig(bootConfig)
	defer config.users.Close()
	defer config.sessions.Close()

	server := echo.New()
	server.Use(middleware.BodyLimit("1M"))
	server.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string {
			return cuid2.Generate()
		},
	}))
	server.Use(echoprometheus.NewMiddleware("bookswap_user"))
	server.Use(middleware.Recover())

	server.Logger.SetLevel(log.INFO)

	headers := []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization}
	server.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{config.Server.Origins},
		AllowHeaders:     headers,
		AllowCredentials: true,
	}))

	server.POST("/register", handlers.Register(config.authService))
	server.POST("/login", handlers.Login(config.authService))
	server.POST("/login/mfa", handlers.SubmitLoginCode(config.authService))
	server.GET("/mfa/setup", handlers.MFASetup(config.authService))
	server.POST("/mfa/verify", handlers.MFAVerify(config.authService))
	server.GET("/profile", handlers.Profile(config.authService))
	server.POST("/logout", handlers.Logout(config.authService))

	go func() {
		metrics := echo.New()
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(config.Server.UserMetricsAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	go func() {
		if err := server.Start(config.Server.UserAddr); err != nil && err != http.ErrServerClosed {
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
