package ripple_errors

import (
	"errors"
	"time"
)

// Common errors
var (
	ErrUnauthenticated   = errors.New("not authenticated")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrRemoteService     = errors.New("remote service failure")
	ErrRateLimited       = errors.New("rate limited")
)

// NowPtr returns a pointer to current time
func NowPtr() *time.Time {
	now := time.Now()
	return &now
}
