package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/visits"
)

// cookieSession keeps the visit marker in a browser-session cookie: no
// Max-Age, so it is gone when the browser session ends. Any value counts.
type cookieSession struct {
	c *gin.Context
}

func (s cookieSession) Counted() bool {
	_, err := s.c.Cookie(visits.SessionMarker)
	return err == nil
}

func (s cookieSession) MarkCounted() {
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(visits.SessionMarker, "1", 0, "/", "", s.c.Request.TLS != nil, true)
}
