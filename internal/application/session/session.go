// Package session carries the signed-in user through a request. A Session is
// built from verified token claims by the auth middleware and read back with
// FromContext.
package session

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/autospa/autospa-api/pkg/utils"
	"github.com/google/uuid"
)

// ErrNoSession is returned by Logout on an anonymous session
var ErrNoSession = errors.New("session: not signed in")

// Session is the authentication state of one caller
type Session struct {
	userID      uuid.UUID
	email       string
	name        string
	role        string
	permissions []string
	tokenID     string
	expiresAt   time.Time
	revocations *Revocations
}

// New builds a session from validated access token claims
func New(claims *utils.JWTClaims, revocations *Revocations) *Session {
	s := &Session{
		userID:      claims.UserID,
		email:       claims.Email,
		name:        claims.Name,
		role:        claims.Role,
		permissions: slices.Clone(claims.Permissions),
		tokenID:     claims.TokenID(),
		revocations: revocations,
	}
	if claims.ExpiresAt != nil {
		s.expiresAt = claims.ExpiresAt.Time
	}
	return s
}

// IsAuthenticated is false for a nil session, an expired token or one that
// has been logged out
func (s *Session) IsAuthenticated() bool {
	if s == nil || s.userID == uuid.Nil {
		return false
	}
	if !s.expiresAt.IsZero() && time.Now().After(s.expiresAt) {
		return false
	}
	return s.revocations == nil || !s.revocations.IsRevoked(s.tokenID)
}

// Role is "admin" or "staff"; empty when not authenticated
func (s *Session) Role() string {
	if !s.IsAuthenticated() {
		return ""
	}
	return s.role
}

// Can reports whether the session holds permission
func (s *Session) Can(permission string) bool {
	return s.IsAuthenticated() && slices.Contains(s.permissions, permission)
}

func (s *Session) UserID() uuid.UUID {
	if s == nil {
		return uuid.Nil
	}
	return s.userID
}

func (s *Session) Email() string { return s.email }

func (s *Session) Name() string { return s.name }

func (s *Session) TokenID() string { return s.tokenID }

func (s *Session) Permissions() []string { return slices.Clone(s.permissions) }

// Logout ends the session. The token stays revoked until it would have
// expired anyway.
func (s *Session) Logout(ctx context.Context) error {
	if !s.IsAuthenticated() {
		return ErrNoSession
	}
	if s.revocations == nil {
		return nil
	}
	return s.revocations.Revoke(ctx, s.tokenID, s.expiresAt)
}

type contextKey struct{}

// WithSession attaches s to ctx
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session set by the auth middleware
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok && s.IsAuthenticated()
}
