package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DmtrPpl/vat-bot/internal/domain"
)

var maxVATRate = decimal.NewFromInt(100)

// ReportUseCase serves summary queries and session commands.
type ReportUseCase struct {
	sessions SessionRepository
	defaults domain.Settings

	now func() time.Time
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(sessions SessionRepository, defaults domain.Settings) *ReportUseCase {
	return &ReportUseCase{
		sessions: sessions,
		defaults: defaults,
		now:      time.Now,
	}
}

// BalanceReport carries the current month and year summaries.
type BalanceReport struct {
	MonthPeriod string
	YearPeriod  string
	Month       domain.PeriodSummary
	Year        domain.PeriodSummary
	Settings    domain.Settings
}

// Balance returns totals for the current month and year.
func (uc *ReportUseCase) Balance(ctx context.Context, key string) (*BalanceReport, error) {
	session, err := uc.sessions.GetOrCreate(ctx, key, uc.defaults)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	now := uc.now().UTC()
	report := &BalanceReport{
		MonthPeriod: now.Format(monthLayout),
		YearPeriod:  now.Format(yearLayout),
		Settings:    session.Settings,
	}
	report.Month = domain.PeriodTotals(session.Ledger, report.MonthPeriod)
	report.Year = domain.PeriodTotals(session.Ledger, report.YearPeriod)
	return report, nil
}

// Month returns totals for a YYYY-MM period. A malformed period falls back
// to the current month instead of failing.
func (uc *ReportUseCase) Month(ctx context.Context, key, period string) (string, domain.PeriodSummary, error) {
	if !domain.ValidMonthPeriod(period) {
		period = uc.now().UTC().Format(monthLayout)
	}
	session, err := uc.sessions.GetOrCreate(ctx, key, uc.defaults)
	if err != nil {
		return "", domain.PeriodSummary{}, fmt.Errorf("get session: %w", err)
	}
	return period, domain.PeriodTotals(session.Ledger, period), nil
}

// Year returns totals for a YYYY period. A malformed period falls back to
// the current year instead of failing.
func (uc *ReportUseCase) Year(ctx context.Context, key, period string) (string, domain.PeriodSummary, error) {
	if !domain.ValidYearPeriod(period) {
		period = uc.now().UTC().Format(yearLayout)
	}
	session, err := uc.sessions.GetOrCreate(ctx, key, uc.defaults)
	if err != nil {
		return "", domain.PeriodSummary{}, fmt.Errorf("get session: %w", err)
	}
	return period, domain.PeriodTotals(session.Ledger, period), nil
}

// Reset clears the session's ledger. Settings are retained.
func (uc *ReportUseCase) Reset(ctx context.Context, key string) error {
	if _, err := uc.sessions.GetOrCreate(ctx, key, uc.defaults); err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	return uc.sessions.ClearLedger(ctx, key)
}

// SetVATRate updates the session's VAT rate percentage.
func (uc *ReportUseCase) SetVATRate(ctx context.Context, key string, rate decimal.Decimal) (domain.Settings, error) {
	if rate.IsNegative() || rate.GreaterThan(maxVATRate) {
		return domain.Settings{}, domain.ErrInvalidVATRate
	}
	session, err := uc.sessions.GetOrCreate(ctx, key, uc.defaults)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("get session: %w", err)
	}
	settings := session.Settings
	settings.VATRatePercent = rate
	if err := uc.sessions.UpdateSettings(ctx, key, settings); err != nil {
		return domain.Settings{}, fmt.Errorf("update settings: %w", err)
	}
	return settings, nil
}

// SetCurrency updates the session's default currency code.
func (uc *ReportUseCase) SetCurrency(ctx context.Context, key, code string) (domain.Settings, error) {
	if !domain.ValidCurrency(code) {
		return domain.Settings{}, domain.ErrInvalidCurrency
	}
	session, err := uc.sessions.GetOrCreate(ctx, key, uc.defaults)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("get session: %w", err)
	}
	settings := session.Settings
	settings.DefaultCurrency = strings.ToUpper(code)
	if err := uc.sessions.UpdateSettings(ctx, key, settings); err != nil {
		return domain.Settings{}, fmt.Errorf("update settings: %w", err)
	}
	return settings, nil
}
