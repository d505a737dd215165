package session

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CookieName identifies the browser session.
const CookieName = "minishop_session"

const contextKey = "session_id"

// Flash is a one-shot message shown on the next page render. It is the
// server-rendered stand-in for a blocking alert.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Store keeps per-session UI state: queued flash messages and whether the
// product creation form is open.
type Store interface {
	AddFlash(ctx context.Context, sid string, f Flash) error
	ConsumeFlashes(ctx context.Context, sid string) ([]Flash, error)
	SetFormOpen(ctx context.Context, sid string, open bool) error
	FormOpen(ctx context.Context, sid string) (bool, error)
}

// EnsureSession issues a session cookie on first contact and stashes the
// session id in the gin context.
func EnsureSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(CookieName)
		if err != nil || sid == "" {
			sid = uuid.NewString()
			c.SetCookie(CookieName, sid, 30*24*60*60, "/", "", false, true)
		}
		c.Set(contextKey, sid)
		c.Next()
	}
}

// ID returns the session id for the current request.
func ID(c *gin.Context) string {
	if v, exists := c.Get(contextKey); exists {
		if sid, ok := v.(string); ok {
			return sid
		}
	}
	// No middleware ran; fall back to the cookie so handlers still work.
	if sid, err := c.Cookie(CookieName); err == nil {
		return sid
	}
	return ""
}
