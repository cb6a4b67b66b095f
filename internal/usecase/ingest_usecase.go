package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/DmtrPpl/vat-bot/internal/classifier"
	"github.com/DmtrPpl/vat-bot/internal/domain"
	"github.com/DmtrPpl/vat-bot/internal/infrastructure/metrics"
	"github.com/DmtrPpl/vat-bot/internal/parser"
	"github.com/DmtrPpl/vat-bot/internal/vat"
)

const (
	monthLayout = "2006-01"
	yearLayout  = "2006"
)

// IngestUseCase turns raw message text into ledger entries. Lines are
// processed strictly in input order; the classifier call is the only
// suspension point and is made at most once per line.
type IngestUseCase struct {
	sessions   SessionRepository
	classifier classifier.Classifier
	idGen      IDGenerator
	defaults   domain.Settings
	log        zerolog.Logger

	// now is swapped out in tests.
	now func() time.Time
}

// NewIngestUseCase creates a new IngestUseCase.
func NewIngestUseCase(sessions SessionRepository, cls classifier.Classifier, idGen IDGenerator, defaults domain.Settings, log zerolog.Logger) *IngestUseCase {
	return &IngestUseCase{
		sessions:   sessions,
		classifier: cls,
		idGen:      idGen,
		defaults:   defaults,
		log:        log.With().Str("component", "ingest").Logger(),
		now:        time.Now,
	}
}

// IngestResult is what one handled message produces. Entries is empty when
// no line parsed; the caller answers that with a format hint, not an
// error.
type IngestResult struct {
	Entries     []*domain.Entry
	MonthPeriod string
	YearPeriod  string
	Month       domain.PeriodSummary
	Year        domain.PeriodSummary
}

// Ingest tokenizes text and appends one entry per parsed line to the
// session's ledger, in input order. Entries appended before a storage
// failure on a later line stay appended.
func (uc *IngestUseCase) Ingest(ctx context.Context, sessionKey, text string) (*IngestResult, error) {
	session, err := uc.sessions.GetOrCreate(ctx, sessionKey, uc.defaults)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	now := uc.now().UTC()
	result := &IngestResult{
		MonthPeriod: now.Format(monthLayout),
		YearPeriod:  now.Format(yearLayout),
	}

	lines := parser.Tokenize(text)
	if len(lines) == 0 {
		metrics.MessagesIngested.WithLabelValues("empty").Inc()
		return result, nil
	}

	ledger := session.Ledger
	for _, line := range lines {
		entry := uc.buildEntry(ctx, line, session.Settings, now)
		if err := uc.sessions.AppendEntries(ctx, sessionKey, []*domain.Entry{entry}); err != nil {
			return nil, fmt.Errorf("append entry: %w", err)
		}
		metrics.EntriesCreated.WithLabelValues(string(entry.Type)).Inc()
		result.Entries = append(result.Entries, entry)
		ledger = append(ledger, entry)

		uc.log.Info().
			Str("session", sessionKey).
			Str("entry_id", entry.ID).
			Str("type", string(entry.Type)).
			Str("category", string(entry.Category)).
			Str("gross", entry.Gross.String()).
			Msg("entry created")
	}
	metrics.MessagesIngested.WithLabelValues("entries").Inc()

	result.Month = domain.PeriodTotals(ledger, result.MonthPeriod)
	result.Year = domain.PeriodTotals(ledger, result.YearPeriod)
	return result, nil
}

// buildEntry runs one provisional line through classification, resolution
// and the triplet calculation. It cannot fail: every degradation path
// falls back to defaults.
func (uc *IngestUseCase) buildEntry(ctx context.Context, line parser.Line, settings domain.Settings, now time.Time) *domain.Entry {
	currency := line.Currency
	if currency == "" {
		currency = settings.DefaultCurrency
	}

	res := uc.classifier.Classify(ctx, classifier.Request{
		RawLine:        line.Raw,
		Currency:       currency,
		VATRatePercent: settings.VATRatePercent,
	})
	resolved := Resolve(line, res)

	// An explicit date typed into the line wins over the classifier's.
	date, ok := parser.ExtractDate(line.FreeText)
	if !ok {
		date = parser.NormalizeDate(resolved.Date, now)
	}

	triplet := vat.Compute(line.Amount, resolved.AmountType, settings.VATRatePercent, resolved.VATApplicable)

	entry := &domain.Entry{
		ID:            uc.idGen.Generate(),
		Type:          line.Type,
		Category:      resolved.Category,
		Description:   resolved.Description,
		Date:          date,
		Currency:      currency,
		Net:           triplet.Net,
		VAT:           triplet.VAT,
		Gross:         triplet.Gross,
		VATCollected:  decimal.Zero,
		VATDeductible: decimal.Zero,
		CreatedAt:     now,
	}
	if line.Type == domain.EntryTypeIncome {
		entry.VATCollected = triplet.VAT
	} else {
		entry.VATDeductible = triplet.VAT
	}
	return entry
}
