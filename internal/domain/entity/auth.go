package entity

import (
	"time"

	"github.com/google/uuid"
)

// Provider names for Credential records.
const (
	ProviderEmail  = "email"
	ProviderGoogle = "google"
)

// Credential represents a single way of logging in. A user's email/password is
// one record; a linked Google account is another.
type Credential struct {
	ID             uuid.UUID // The unique ID for this specific credential record.
	UserID         uuid.UUID // Links this credential to the User it belongs to.
	Provider       string    // "email" or "google".
	ProviderUserID string    // The email address, or the provider's subject claim.
	PasswordHash   string    // bcrypt hash, only set when Provider is "email".
	CreatedAt      time.Time
}

// Session is an authenticated login. The token is opaque: browser clients carry
// it inside a signed cookie, API clients present it raw as a bearer token, and
// either way the server resolves it with a single lookup by token. Tokens are
// looked up, never enumerated.
type Session struct {
	ID        uuid.UUID // The unique ID for this session record.
	UserID    uuid.UUID // Links this session to the User it belongs to.
	Token     string    // Opaque random token, unique per session.
	ExpiresAt time.Time // The time when this session becomes invalid.
	CreatedAt time.Time
}

// Expired reports whether the session is past its expiry at the given instant.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
