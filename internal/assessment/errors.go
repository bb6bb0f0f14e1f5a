package assessment

import (
	"fmt"
	"time"
)

// ErrUnauthorized indicates the server rejected the session token.
type ErrUnauthorized struct {
	Err error
}

func (e *ErrUnauthorized) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unauthorized: %v", e.Err)
	}
	return "unauthorized"
}

func (e *ErrUnauthorized) Unwrap() error { return e.Err }

// ErrRateLimit indicates the server returned 429.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrUnavailable indicates the assessment server is down or unreachable.
type ErrUnavailable struct {
	Err error
}

func (e *ErrUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("assessment server unavailable: %v", e.Err)
	}
	return "assessment server unavailable"
}

func (e *ErrUnavailable) Unwrap() error { return e.Err }

// ErrInvalidPayload indicates the server returned a body that does not
// conform to the expected schema.
type ErrInvalidPayload struct {
	Body []byte
	Err  error
}

func (e *ErrInvalidPayload) Error() string {
	return fmt.Sprintf("invalid server payload: %v", e.Err)
}

func (e *ErrInvalidPayload) Unwrap() error { return e.Err }

// ErrVersionMismatch indicates the server speaks an incompatible API major
// version.
type ErrVersionMismatch struct {
	Client string
	Server string
}

func (e *ErrVersionMismatch) Error() string {
	return fmt.Sprintf("incompatible API version: client %s, server %s", e.Client, e.Server)
}
