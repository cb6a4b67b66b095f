package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/DmtrPpl/vat-bot/internal/domain"
	"github.com/DmtrPpl/vat-bot/internal/usecase"
)

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
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

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
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

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// SummaryResponse represents period totals in API responses.
type SummaryResponse struct {
	Period       string          `json:"period"`
	IncomeGross  decimal.Decimal `json:"income_gross"`
	ExpenseGross decimal.Decimal `json:"expense_gross"`
	IncomeVAT    decimal.Decimal `json:"income_vat"`
	ExpenseVAT   decimal.Decimal `json:"expense_vat"`
	ProfitGross  decimal.Decimal `json:"profit_gross"`
	VATDue       decimal.Decimal `json:"vat_due"`
	NetAfterVAT  decimal.Decimal `json:"net_after_vat"`
}

// SummaryFromDomain converts a period summary to a response.
func SummaryFromDomain(period string, s domain.PeriodSummary) SummaryResponse {
	return SummaryResponse{
		Period:       period,
		IncomeGross:  s.IncomeGross,
		ExpenseGross: s.ExpenseGross,
		IncomeVAT:    s.IncomeVAT,
		ExpenseVAT:   s.ExpenseVAT,
		ProfitGross:  s.ProfitGross,
		VATDue:       s.VATDue,
		NetAfterVAT:  s.NetAfterVAT,
	}
}

// IngestResponse is the result of ingesting one message. Hint is set when
// no line parsed.
type IngestResponse struct {
	Entries []*EntryResponse `json:"entries"`
	Month   *SummaryResponse `json:"month,omitempty"`
	Year    *SummaryResponse `json:"year,omitempty"`
	Hint    string           `json:"hint,omitempty"`
}

// IngestResponseFromResult converts an ingest result to a response.
func IngestResponseFromResult(result *usecase.IngestResult) IngestResponse {
	resp := IngestResponse{
		Entries: EntriesFromDomain(result.Entries),
	}
	if len(result.Entries) == 0 {
		resp.Hint = "no transaction lines found; lines must start with + or - and an amount"
		return resp
	}
	month := SummaryFromDomain(result.MonthPeriod, result.Month)
	year := SummaryFromDomain(result.YearPeriod, result.Year)
	resp.Month = &month
	resp.Year = &year
	return resp
}

// BalanceResponse carries the current month and year summaries.
type BalanceResponse struct {
	Month SummaryResponse `json:"month"`
	Year  SummaryResponse `json:"year"`
}
