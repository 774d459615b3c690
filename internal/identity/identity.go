// Package identity wraps the auth backend behind a single gateway contract.
// Two variants exist: a live gateway backed by the user store, and an
// in-memory gateway used when no backend is configured. Nothing outside this
// package may branch on which variant is active.
package identity

import (
	"context"
	"errors"

	"togetherbikes/internal/domain"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotConfirmed  = errors.New("email address not confirmed")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidToken       = errors.New("invalid session token")
	ErrTokenExpired       = errors.New("session token has expired")
)

// Profile carries the optional metadata collected at sign-up
type Profile struct {
	FullName string
	Phone    string
}

// Session is an authenticated identity handle
type Session struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// EventType classifies auth-state transitions
type EventType string

const (
	// EventInitial is delivered once to every new subscriber
	EventInitial EventType = "INITIAL"
	// EventSignedIn fires exactly once per successful sign-in or sign-up
	EventSignedIn EventType = "SIGNED_IN"
	// EventSignedOut fires exactly once per sign-out
	EventSignedOut EventType = "SIGNED_OUT"
)

// Event describes one auth-state transition. ProfileID identifies the
// browser profile the transition happened on, so listeners can reconcile
// that profile's locally accumulated state.
type Event struct {
	Type      EventType
	Session   *Session
	ProfileID string
}

// Gateway is the identity provider contract.
type Gateway interface {
	// Session resolves a bearer token to its session, or ErrInvalidToken /
	// ErrTokenExpired.
	Session(ctx context.Context, token string) (*Session, error)

	// SignIn authenticates by email and password.
	SignIn(ctx context.Context, profileID, email, password string) (*Session, error)

	// SignUp registers a new account and signs it in.
	SignUp(ctx context.Context, profileID, email, password string, profile Profile) (*Session, error)

	// SignOut invalidates the session held by the given token.
	SignOut(ctx context.Context, profileID, token string) error

	// Subscribe registers a listener for auth-state transitions. The
	// listener receives an immediate EventInitial, then one event per
	// transition. The returned func unsubscribes.
	Subscribe(fn func(Event)) func()
}

type contextKey int

const sessionKey contextKey = iota

// WithSession attaches an authenticated session to the context.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// SessionFromContext returns the session attached to the context, or nil for
// guests.
func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionKey).(*Session)
	return sess
}
