// Package redis stores sessions as JSON blobs in Redis, one key per
// session. It is an optional backend selected by REDIS_URL; the data
// model is the same as the in-memory store's.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/DmtrPpl/vat-bot/internal/domain"
	"github.com/DmtrPpl/vat-bot/internal/infrastructure/metrics"
)

// SessionRepository implements usecase.SessionRepository on Redis.
// Appends are read-modify-write; the bot serializes writes per session,
// so no cross-process locking is attempted.
type SessionRepository struct {
	client *redis.Client
	prefix string
	ttl    time.Duration // 0 keeps sessions forever
}

// New creates a SessionRepository.
func New(client *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		client: client,
		prefix: "session:",
		ttl:    ttl,
	}
}

type entryRecord struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Date          string          `json:"date"`
	Currency      string          `json:"currency"`
	Net           decimal.Decimal `json:"net"`
	VAT           decimal.Decimal `json:"vat"`
	Gross         decimal.Decimal `json:"gross"`
	VATCollected  decimal.Decimal `json:"vat_collected"`
	VATDeductible decimal.Decimal `json:"vat_deductible"`
	CreatedAt     time.Time       `json:"created_at"`
}

type sessionRecord struct {
	Key             string          `json:"key"`
	Ledger          []entryRecord   `json:"ledger"`
	DefaultCurrency string          `json:"default_currency"`
	VATRatePercent  decimal.Decimal `json:"vat_rate_percent"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// GetOrCreate returns the stored session, creating it lazily.
func (r *SessionRepository) GetOrCreate(ctx context.Context, key string, defaults domain.Settings) (*domain.Session, error) {
	record, err := r.load(ctx, key)
	if err == nil {
		return recordToDomain(record), nil
	}
	if !errors.Is(err, domain.ErrSessionNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	record = &sessionRecord{
		Key:             key,
		DefaultCurrency: defaults.DefaultCurrency,
		VATRatePercent:  defaults.VATRatePercent,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := r.save(ctx, key, record); err != nil {
		return nil, err
	}
	metrics.SessionsCreated.Inc()
	return recordToDomain(record), nil
}

// AppendEntries appends entries to the stored ledger in order.
func (r *SessionRepository) AppendEntries(ctx context.Context, key string, entries []*domain.Entry) error {
	record, err := r.load(ctx, key)
	if err != nil {
		return err
	}
	for _, e := range entries {
		record.Ledger = append(record.Ledger, entryToRecord(e))
	}
	record.UpdatedAt = time.Now().UTC()
	return r.save(ctx, key, record)
}

// ClearLedger removes all entries. Settings are retained.
func (r *SessionRepository) ClearLedger(ctx context.Context, key string) error {
	record, err := r.load(ctx, key)
	if err != nil {
		return err
	}
	record.Ledger = nil
	record.UpdatedAt = time.Now().UTC()
	return r.save(ctx, key, record)
}

// UpdateSettings replaces the stored settings.
func (r *SessionRepository) UpdateSettings(ctx context.Context, key string, settings domain.Settings) error {
	record, err := r.load(ctx, key)
	if err != nil {
		return err
	}
	record.DefaultCurrency = settings.DefaultCurrency
	record.VATRatePercent = settings.VATRatePercent
	record.UpdatedAt = time.Now().UTC()
	return r.save(ctx, key, record)
}

func (r *SessionRepository) load(ctx context.Context, key string) (*sessionRecord, error) {
	raw, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var record sessionRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &record, nil
}

func (r *SessionRepository) save(ctx context.Context, key string, record *sessionRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.client.Set(ctx, r.prefix+key, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func entryToRecord(e *domain.Entry) entryRecord {
	return entryRecord{
		ID:            e.ID,
		Type:          string(e.Type),
		Category:      string(e.Category),
		Description:   e.Description,
		Date:          e.Date,
		Currency:      e.Currency,
		Net:           e.Net,
		VAT:           e.VAT,
		Gross:         e.Gross,
		VATCollected:  e.VATCollected,
		VATDeductible: e.VATDeductible,
		CreatedAt:     e.CreatedAt,
	}
}

func recordToDomain(record *sessionRecord) *domain.Session {
	session := &domain.Session{
		Key: record.Key,
		Settings: domain.Settings{
			DefaultCurrency: record.DefaultCurrency,
			VATRatePercent:  record.VATRatePercent,
		},
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
	for i := range record.Ledger {
		rec := record.Ledger[i]
		session.Ledger = append(session.Ledger, &domain.Entry{
			ID:            rec.ID,
			Type:          domain.EntryType(rec.Type),
			Category:      domain.Category(rec.Category),
			Description:   rec.Description,
			Date:          rec.Date,
			Currency:      rec.Currency,
			Net:           rec.Net,
			VAT:           rec.VAT,
			Gross:         rec.Gross,
			VATCollected:  rec.VATCollected,
			VATDeductible: rec.VATDeductible,
			CreatedAt:     rec.CreatedAt,
		})
	}
	return session
}
