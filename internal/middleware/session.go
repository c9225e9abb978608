package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/siblingk/chatbot-sub001/internal/service"
	"github.com/siblingk/chatbot-sub001/internal/session"
)

const (
	SessionIDKey    = "sessionID"
	SessionStoreKey = "sessionStore"
)

// Session resolves the visitor's session id, creating one when absent, and
// exposes both the id and the backing store to downstream handlers.
func Session(sessions *service.SessionService, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := session.NewCookieStore(c, secure)
		c.Set(SessionStoreKey, store)
		c.Set(SessionIDKey, sessions.SessionID(store))
		c.Next()
	}
}

// SessionID extracts the resolved session id from the request context.
func SessionID(c *gin.Context) string {
	id, ok := c.Get(SessionIDKey)
	if !ok {
		return ""
	}
	return id.(string)
}

// Store extracts the visitor's session store from the request context.
func Store(c *gin.Context) session.Store {
	s, ok := c.Get(SessionStoreKey)
	if !ok {
		return nil
	}
	return s.(session.Store)
}
