package repository

import (
	"context"
	"errors"

	"guidemyai/internal/domain/entity"
)

// Session lookup errors.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

// SessionRepository persists sessions. The same table serves browser sessions
// and bearer tokens: both resolve a single token to its owning user.
type SessionRepository interface {
	// Create persists a new session.
	Create(ctx context.Context, session *entity.Session) error

	// FindByToken retrieves a session by its opaque token. Expired sessions
	// report ErrSessionExpired.
	FindByToken(ctx context.Context, token string) (*entity.Session, error)

	// DeleteByToken removes a single session. Deleting a missing token is not
	// an error.
	DeleteByToken(ctx context.Context, token string) error

	// DeleteExpired removes all sessions past their expiry.
	DeleteExpired(ctx context.Context) error
}
