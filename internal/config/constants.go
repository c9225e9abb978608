package config

import "time"

const (
	// Session cookies
	SessionCookie  = "sk_session"
	MessagesCookie = "sk_messages"
	SessionTTL     = 7 * 24 * time.Hour

	// External chat webhook
	RelayTimeout      = 8 * time.Second
	RelayRetries      = 1
	RelayRetryBackoff = 500 * time.Millisecond

	// Rate limits (per minute, per session)
	RateLimitPerMinute = 20

	// Stale rate-limit window cleanup
	RateLimitCleanup = 60 * time.Second

	// Owner notification send timeout
	NotifyTimeout = 10 * time.Second

	// HTTP server
	ReadHeaderTimeout = 5 * time.Second
	ShutdownTimeout   = 10 * time.Second
)
