// internal/middleware/session.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/library-shop/internal/services"
)

const (
	SessionHeader = "X-Session-ID"
	SessionCookie = "session_id"

	sessionKey = "session"
)

type SessionOptions struct {
	MaxAge int
	Secure bool
}

// SessionRequired attaches the shopper session to the request. The id comes from the
// X-Session-ID header or the session_id cookie; unknown or missing ids get a new session
// whose id is returned in both.
func SessionRequired(store *services.SessionStore, opts SessionOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(SessionHeader))
		if id == "" {
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				id = cookie
			}
		}

		session, created := store.GetOrCreate(id)
		if created {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, session.ID, opts.MaxAge, "/", "", opts.Secure, true)
		}
		c.Header(SessionHeader, session.ID)

		c.Set("session_id", session.ID)
		c.Set(sessionKey, session)
		c.Next()
	}
}

// GetSession returns the session attached by SessionRequired.
func GetSession(c *gin.Context) (*services.Session, bool) {
	value, exists := c.Get(sessionKey)
	if !exists {
		return nil, false
	}
	session, ok := value.(*services.Session)
	return session, ok
}
