package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-kiezmap/session"
)

// sessionState resolves the caller's session from its cookie, starting a new one when needed,
// and refreshes the cookie.
func sessionState(c *gin.Context, sessions *session.Store) *session.State {
	id, _ := c.Cookie(session.CookieName)
	id, st := sessions.Get(id)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, id, int(sessions.TTL().Seconds()), "/", "", false, true)
	return st
}
