// Package repository persists intake sessions.
package repository

import (
	"context"
	"time"

	"salesdesk_backend/internal/intake/domain"

	"github.com/google/uuid"
)

const (
	sessionNotFoundMsg = "intake session not found"
	sessionConflictMsg = "intake session was changed by another request"
)

// DefaultTTL is how long an idle session survives.
const DefaultTTL = 72 * time.Hour

// Store loads and saves sessions. Save refreshes the expiry and is a
// compare-and-set on Session.Version: the stored version must equal the
// caller's (zero for a session not stored yet), otherwise it returns a
// Conflict error. On success the caller's Version is incremented.
type Store interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id uuid.UUID) error
}
