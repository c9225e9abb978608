package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieStore adapts Store onto the request/response cookies of one HTTP
// exchange. Values written during the request shadow the request cookie so
// a read-after-write within the same exchange observes the new value.
type CookieStore struct {
	c       *gin.Context
	secure  bool
	written map[string]string
	cleared map[string]bool
}

func NewCookieStore(c *gin.Context, secure bool) *CookieStore {
	c.SetSameSite(http.SameSiteStrictMode)
	return &CookieStore{
		c:       c,
		secure:  secure,
		written: make(map[string]string),
		cleared: make(map[string]bool),
	}
}

func (s *CookieStore) Get(name string) (string, bool) {
	if s.cleared[name] {
		return "", false
	}
	if v, ok := s.written[name]; ok {
		return v, true
	}
	v, err := s.c.Cookie(name)
	if err != nil || v == "" {
		return "", false
	}
	return v, true
}

func (s *CookieStore) Set(name, value string, ttl time.Duration) {
	s.c.SetCookie(name, value, int(ttl.Seconds()), "/", "", s.secure, true)
	s.written[name] = value
	delete(s.cleared, name)
}

func (s *CookieStore) Clear(name string) {
	s.c.SetCookie(name, "", -1, "/", "", s.secure, true)
	s.cleared[name] = true
	delete(s.written, name)
}
