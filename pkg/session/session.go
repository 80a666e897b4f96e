// Package session stores portal authentication state for the CLI.
//
// A session pairs a bearer token with the portal it came from. The file
// store keeps one session per portal host under ~/.config/kintree/sessions
// so the fetch and serve commands can authenticate without re-prompting.
package session

import (
	"context"
	"fmt"
	"time"
)

// User identifies the portal account a session belongs to.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Session stores portal authentication data.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	PortalURL string    `json:"portal_url"`
	User      *User     `json:"user,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// IsExpired returns true if the session has expired.
// A zero ExpiresAt means the token does not expire client-side.
func (s *Session) IsExpired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// UserID returns a storage-compatible account identifier.
// Format: "portal:{id}" to namespace cache keys per account.
func (s *Session) UserID() string {
	if s == nil || s.User == nil {
		return ""
	}
	return fmt.Sprintf("portal:%s", s.User.ID)
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist or has expired.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, session *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, sessionID string) error
}

// DefaultTTL is the default session duration.
const DefaultTTL = 30 * 24 * time.Hour

// New creates a session for a portal token.
func New(token, portalURL string, user *User, ttl time.Duration) *Session {
	now := time.Now()
	s := &Session{
		Token:     token,
		PortalURL: portalURL,
		User:      user,
		CreatedAt: now,
	}
	if ttl > 0 {
		s.ExpiresAt = now.Add(ttl)
	}
	return s
}
