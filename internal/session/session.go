// Package session owns the bearer-token lifecycle: login starts a session,
// logout ends it, and every outgoing upstream call reads the token fresh so a
// logout mid-flight is observed immediately instead of at the next restart.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fitsight/fitsight/internal/fitapi"
)

// Session holds one account's bearer token with an explicit
// login -> active -> logout lifecycle. The zero value is a logged-out
// session; use New.
type Session struct {
	mu    sync.RWMutex
	token string

	// now is overridable in tests.
	now func() time.Time
}

// New creates a logged-out session.
func New() *Session {
	return &Session{now: time.Now}
}

// Begin activates the session with a freshly issued token.
func (s *Session) Begin(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// End logs the session out. In-flight requests that have already read the
// token finish; anything issued afterwards fails with ErrNoSession.
func (s *Session) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// Active reports whether a token is held. It does not check expiry.
func (s *Session) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Token implements fitapi.TokenSource. It rejects expired tokens locally with
// a distinct auth error so the caller can force re-authentication without a
// doomed round trip.
func (s *Session) Token(_ context.Context) (string, error) {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()

	if token == "" {
		return "", fitapi.ErrNoSession
	}
	if expired(token, s.now()) {
		return "", &fitapi.AuthError{Detail: "access token has expired"}
	}
	return token, nil
}

// tokenKey is the context key for a request-scoped bearer token.
type tokenKey struct{}

// WithToken returns a context carrying a request-scoped bearer token. The
// gateway's auth middleware puts the presented token here so one upstream
// client can serve many users.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// ContextSource is a fitapi.TokenSource that reads the bearer token from the
// request context.
type ContextSource struct {
	// Now is overridable in tests; defaults to time.Now.
	Now func() time.Time
}

// Token implements fitapi.TokenSource.
func (c *ContextSource) Token(ctx context.Context) (string, error) {
	token, ok := ctx.Value(tokenKey{}).(string)
	if !ok || token == "" {
		return "", fitapi.ErrNoSession
	}

	now := time.Now()
	if c.Now != nil {
		now = c.Now()
	}
	if expired(token, now) {
		return "", &fitapi.AuthError{Detail: "access token has expired"}
	}
	return token, nil
}

// expired reports whether the token's exp claim is in the past. The upstream
// API owns the signature, so the claim is read without verification; a token
// that does not parse as a JWT is passed through for the upstream to judge.
func expired(token string, now time.Time) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
