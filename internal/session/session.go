package session

import (
	"context"
	"strings"
	"time"

	"onboard/internal/onboarding"
)

// Session is the locally persisted authentication state plus the cached
// user record last reported by the server. The cache is read-only from the
// client's perspective and refreshed after mutating actions.
type Session struct {
	Token       string            `json:"token"`
	UserID      string            `json:"user_id"`
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Role        string            `json:"role"`
	Status      onboarding.Status `json:"status"`
	RefreshedAt time.Time         `json:"refreshed_at"`
}

// Active reports whether the session carries a usable token.
func (s *Session) Active() bool {
	return s != nil && strings.TrimSpace(s.Token) != ""
}

// Provider adapts a session to the portal client's TokenProvider interface.
type Provider struct {
	session *Session
}

// NewProvider wraps a loaded session for injection into the portal client.
func NewProvider(s *Session) *Provider {
	return &Provider{session: s}
}

// Token returns the session's bearer token.
func (p *Provider) Token(ctx context.Context) (string, error) {
	if p == nil || p.session == nil {
		return "", nil
	}
	return p.session.Token, nil
}
