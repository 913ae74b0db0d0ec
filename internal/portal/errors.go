package portal

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTransport tags failures where no interpretable response arrived:
	// connection errors, timeouts, unreadable bodies.
	ErrTransport = errors.New("transport error")
	// ErrServer tags responses the server rejected with a structured detail.
	ErrServer = errors.New("server error")
	// ErrUnauthorized tags 401 responses so callers can prompt for a fresh login.
	ErrUnauthorized = errors.New("not authenticated")
)

// Fallback messages shown when no structured detail is available. Raw
// transport internals (dial strings, URLs, goroutine dumps) never reach the
// user.
const (
	transportFailureMessage = "Could not reach the onboarding portal. Check your connection and try again."
	genericFailureMessage   = "Something went wrong. Please try again."
)

// APIError describes a response the server answered with an error status and
// a structured detail body.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Detail) == "" {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Detail)
}

// Reason converts a portal error into user-facing text. Priority order:
// structured server detail, then a generic transport message, then a fixed
// fallback.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Detail) != "" {
		return apiErr.Detail
	}
	if errors.Is(err, ErrTransport) {
		return transportFailureMessage
	}
	return genericFailureMessage
}
