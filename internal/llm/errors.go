package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

// ErrEmptyPrompt is returned when a request is missing its system role or
// user prompt.
var ErrEmptyPrompt = errors.New("system role and prompt must be non-empty")

// ErrRateLimit indicates the provider returned a rate limit or quota error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrAuthentication indicates the provider rejected the credential, or no
// credential was configured.
type ErrAuthentication struct {
	Err error
}

func (e *ErrAuthentication) Error() string {
	return fmt.Sprintf("LLM authentication rejected: %v", e.Err)
}

func (e *ErrAuthentication) Unwrap() error { return e.Err }

// ErrNetwork indicates the provider could not be reached.
type ErrNetwork struct {
	Err error
}

func (e *ErrNetwork) Error() string {
	return fmt.Sprintf("LLM provider unreachable: %v", e.Err)
}

func (e *ErrNetwork) Unwrap() error { return e.Err }

// ErrTimeout indicates the request did not complete before its deadline.
type ErrTimeout struct {
	Err error
}

func (e *ErrTimeout) Error() string {
	return fmt.Sprintf("LLM request timed out: %v", e.Err)
}

func (e *ErrTimeout) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the provider answered but the envelope held
// nothing usable (no choices, no text block).
type ErrInvalidResponse struct {
	Content string
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or failed in a way
// that could not be classified further.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrBadRequest indicates the vendor rejected the request itself (400, 404,
// 422 and other 4xx statuses). Sending it again cannot succeed.
type ErrBadRequest struct {
	Status int
	Err    error
}

func (e *ErrBadRequest) Error() string {
	return fmt.Sprintf("LLM request rejected (status %d): %v", e.Status, e.Err)
}

func (e *ErrBadRequest) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates the response was truncated because it
// hit the MaxTokens limit.
type ErrMaxTokensExceeded struct {
	Content string
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// Kind is the coarse classification of a provider failure.
type Kind string

const (
	KindNetwork         Kind = "network"
	KindAuth            Kind = "auth"
	KindRateLimit       Kind = "rate_limit"
	KindTimeout         Kind = "timeout"
	KindInvalidResponse Kind = "invalid_response"
	KindBadRequest      Kind = "bad_request"
	KindUnknown         Kind = "unknown"
)

// Classify maps any error returned from a Provider to its Kind.
func Classify(err error) Kind {
	var (
		rl      *ErrRateLimit
		auth    *ErrAuthentication
		netErr  *ErrNetwork
		timeout *ErrTimeout
		inv     *ErrInvalidResponse
		maxTok  *ErrMaxTokensExceeded
		badReq  *ErrBadRequest
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &timeout), errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.As(err, &auth):
		return KindAuth
	case errors.As(err, &rl):
		return KindRateLimit
	case errors.As(err, &netErr):
		return KindNetwork
	case errors.As(err, &inv), errors.As(err, &maxTok):
		return KindInvalidResponse
	case errors.As(err, &badReq):
		return KindBadRequest
	default:
		return KindUnknown
	}
}

// classifyTransport maps transport-level failures (DNS, refused connections,
// deadlines) to typed errors. Returns nil when err is not a transport error.
func classifyTransport(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &ErrTimeout{Err: err}
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return &ErrTimeout{Err: err}
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &ErrNetwork{Err: err}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return &ErrNetwork{Err: err}
	}
	return nil
}

// mapStatus classifies an HTTP status returned by a vendor API.
func mapStatus(status int, err error) error {
	switch {
	case status == 401 || status == 403:
		return &ErrAuthentication{Err: err}
	case status == 429:
		return &ErrRateLimit{Err: err}
	case status == 408 || status == 504:
		return &ErrTimeout{Err: err}
	case status >= 400 && status < 500:
		return &ErrBadRequest{Status: status, Err: err}
	default:
		return &ErrProviderUnavailable{Err: err}
	}
}
