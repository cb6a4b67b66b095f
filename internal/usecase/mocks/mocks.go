// Package mocks provides test doubles for the usecase interfaces.
package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/DmtrPpl/vat-bot/internal/domain"
)

// MockSessionRepository is a mock implementation of SessionRepository
// backed by an in-memory map. Individual methods can be overridden via
// the Func fields.
type MockSessionRepository struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session

	GetOrCreateFunc    func(ctx context.Context, key string, defaults domain.Settings) (*domain.Session, error)
	AppendEntriesFunc  func(ctx context.Context, key string, entries []*domain.Entry) error
	ClearLedgerFunc    func(ctx context.Context, key string) error
	UpdateSettingsFunc func(ctx context.Context, key string, settings domain.Settings) error
}

func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{
		sessions: make(map[string]*domain.Session),
	}
}

func (m *MockSessionRepository) GetOrCreate(ctx context.Context, key string, defaults domain.Settings) (*domain.Session, error) {
	if m.GetOrCreateFunc != nil {
		return m.GetOrCreateFunc(ctx, key, defaults)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[key]
	if !ok {
		now := time.Now().UTC()
		s = &domain.Session{Key: key, Settings: defaults, CreatedAt: now, UpdatedAt: now}
		m.sessions[key] = s
	}
	copied := *s
	copied.Ledger = append([]*domain.Entry(nil), s.Ledger...)
	return &copied, nil
}

func (m *MockSessionRepository) AppendEntries(ctx context.Context, key string, entries []*domain.Entry) error {
	if m.AppendEntriesFunc != nil {
		return m.AppendEntriesFunc(ctx, key, entries)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[key]
	if !ok {
		return domain.ErrSessionNotFound
	}
	s.Ledger = append(s.Ledger, entries...)
	return nil
}

func (m *MockSessionRepository) ClearLedger(ctx context.Context, key string) error {
	if m.ClearLedgerFunc != nil {
		return m.ClearLedgerFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[key]
	if !ok {
		return domain.ErrSessionNotFound
	}
	s.Ledger = nil
	return nil
}

func (m *MockSessionRepository) UpdateSettings(ctx context.Context, key string, settings domain.Settings) error {
	if m.UpdateSettingsFunc != nil {
		return m.UpdateSettingsFunc(ctx, key, settings)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[key]
	if !ok {
		return domain.ErrSessionNotFound
	}
	s.Settings = settings
	return nil
}

// MockIDGenerator generates deterministic sequential IDs.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("entry-%d", m.counter)
}
