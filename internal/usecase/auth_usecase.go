// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"guidemyai/internal/domain/entity"
)

// --- Input DTOs ---

// SignUpInput defines the data required to register a new account.
type SignUpInput struct {
	Name     string
	Email    string
	Password string
}

// SignInInput defines the data required for a password login.
type SignInInput struct {
	Email    string
	Password string
}

// GoogleSignInInput carries the authorization-code callback parameters.
type GoogleSignInInput struct {
	Code  string
	State string
}

// --- Output DTOs ---

// SessionOutput returns the session issued by a successful signup or signin.
type SessionOutput struct {
	User    *entity.User
	Session *entity.Session
}

// SessionState classifies the outcome of a session lookup.
type SessionState int

const (
	// SessionFound means the token resolved to a live session.
	SessionFound SessionState = iota

	// SessionAbsent means the token is unknown or the session expired.
	SessionAbsent

	// SessionUnavailable means storage failed and nothing is known about the
	// token. Callers decide whether that is fatal; the request authenticator
	// treats it as absent.
	SessionUnavailable
)

// SessionLookup is the explicit three-state result of GetSession.
type SessionLookup struct {
	State   SessionState
	User    *entity.User
	Session *entity.Session
	Err     error // set only when State is SessionUnavailable
}

// AuthUsecase is the credential and session service. Browser handlers, API
// handlers and the request authenticator all depend on this interface and
// never on its storage.
type AuthUsecase interface {
	// SignUp creates a user with an email credential and issues a session.
	SignUp(ctx context.Context, input SignUpInput) (*SessionOutput, error)

	// SignIn verifies a password login and issues a session. Unknown email and
	// wrong password are indistinguishable to the caller.
	SignIn(ctx context.Context, input SignInInput) (*SessionOutput, error)

	// GetSession resolves an opaque session token.
	GetSession(ctx context.Context, token string) SessionLookup

	// SignOut deletes the session for a token. Unknown tokens are a no-op.
	SignOut(ctx context.Context, token string) error

	// PurgeExpiredSessions removes every session past its expiry. Runs on a
	// timer; expired tokens are also dropped lazily on lookup.
	PurgeExpiredSessions(ctx context.Context) error

	// ValidateToken reports whether a token resolves to a live session.
	ValidateToken(ctx context.Context, token string) (bool, error)

	// ResolveBearer maps a bearer token to the owning user id.
	ResolveBearer(ctx context.Context, token string) (uuid.UUID, error)

	// GoogleAuthURL builds the Google authorization redirect with fresh state.
	GoogleAuthURL() string

	// SignInWithGoogle exchanges an authorization code, provisioning the user
	// on first sign-in, and issues a session.
	SignInWithGoogle(ctx context.Context, input GoogleSignInInput) (*SessionOutput, error)
}
