// Package memory keeps sessions in process memory. This is the reference
// store: a restart loses every ledger, by design of the data model.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/DmtrPpl/vat-bot/internal/domain"
	"github.com/DmtrPpl/vat-bot/internal/infrastructure/metrics"
)

// SessionRepository implements usecase.SessionRepository with a mutex-
// guarded map. Cross-session calls are safe concurrently; per-session
// appends are expected from a single caller at a time.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

// New creates an empty SessionRepository.
func New() *SessionRepository {
	return &SessionRepository{
		sessions: make(map[string]*domain.Session),
	}
}

// GetOrCreate returns a snapshot of the session, creating it lazily.
func (r *SessionRepository) GetOrCreate(ctx context.Context, key string, defaults domain.Settings) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[key]
	if !ok {
		now := time.Now().UTC()
		session = &domain.Session{
			Key:       key,
			Settings:  defaults,
			CreatedAt: now,
			UpdatedAt: now,
		}
		r.sessions[key] = session
		metrics.SessionsCreated.Inc()
	}
	return snapshot(session), nil
}

// AppendEntries appends entries to the session's ledger in order.
func (r *SessionRepository) AppendEntries(ctx context.Context, key string, entries []*domain.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[key]
	if !ok {
		return domain.ErrSessionNotFound
	}
	session.Ledger = append(session.Ledger, entries...)
	session.UpdatedAt = time.Now().UTC()
	return nil
}

// ClearLedger removes all entries. Settings are retained.
func (r *SessionRepository) ClearLedger(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[key]
	if !ok {
		return domain.ErrSessionNotFound
	}
	session.Ledger = nil
	session.UpdatedAt = time.Now().UTC()
	return nil
}

// UpdateSettings replaces the session's settings.
func (r *SessionRepository) UpdateSettings(ctx context.Context, key string, settings domain.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[key]
	if !ok {
		return domain.ErrSessionNotFound
	}
	session.Settings = settings
	session.UpdatedAt = time.Now().UTC()
	return nil
}

// snapshot copies the session so callers cannot mutate shared state. The
// entries themselves are immutable and shared by pointer.
func snapshot(s *domain.Session) *domain.Session {
	copied := *s
	copied.Ledger = make([]*domain.Entry, len(s.Ledger))
	copy(copied.Ledger, s.Ledger)
	return &copied
}
