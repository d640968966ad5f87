package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ourshelves/bookswap/internal/model"
)

const sessionCookieName = "bookswap_session"

// sessionToken returns the opaque token identifying this client's
// session, minting one (and setting the cookie) on first contact. The
// token itself carries no state; all markers live server-side.
func sessionToken(c echo.Context) string {
	if cookie, err := c.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	token := model.CreateID()
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return token
}
