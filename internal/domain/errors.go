package domain

import "errors"

var (
	ErrLeadNotFound        = errors.New("lead not found")
	ErrNoAuthenticatedUser = errors.New("no authenticated user")
	ErrInvalidStatus       = errors.New("invalid chat status")
	ErrOptionNotFound      = errors.New("dashboard option not found")
	ErrRelayUnavailable    = errors.New("chat relay unavailable")
	ErrRelayStatus         = errors.New("chat relay returned error status")
	ErrRateLimited         = errors.New("too many requests")
)
