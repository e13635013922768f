// internal/middleware/session.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionHeader lets API clients without cookies carry their cart session.
const SessionHeader = "X-Session-ID"

const sessionMaxAge = 30 * 24 * 60 * 60

// Session assigns every browser a cart session id, kept in a cookie.
func Session(cookieName string, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			id, _ = c.Cookie(cookieName)
		}

		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cookieName, id, sessionMaxAge, "/", "", secure, true)
		}

		c.Set("session_id", id)
		c.Header(SessionHeader, id)
		c.Next()
	}
}
