package usecase

import (
	"context"

	"github.com/DmtrPpl/vat-bot/internal/domain"
)

// SessionRepository defines access to per-session ledgers and settings.
// Sessions are created lazily on first use; a reset clears the ledger but
// keeps the settings. Entries for one session are appended by a single
// caller at a time; sessions themselves are independent.
type SessionRepository interface {
	// GetOrCreate returns a snapshot of the session, creating it with the
	// given default settings when it does not exist yet.
	GetOrCreate(ctx context.Context, key string, defaults domain.Settings) (*domain.Session, error)
	AppendEntries(ctx context.Context, key string, entries []*domain.Entry) error
	ClearLedger(ctx context.Context, key string) error
	UpdateSettings(ctx context.Context, key string, settings domain.Settings) error
}

// IDGenerator generates unique entry IDs.
type IDGenerator interface {
	Generate() string
}
