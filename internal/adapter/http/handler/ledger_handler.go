package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/DmtrPpl/vat-bot/internal/adapter/http/dto"
	"github.com/DmtrPpl/vat-bot/internal/domain"
	"github.com/DmtrPpl/vat-bot/internal/usecase"
)

// IngestService defines the ingestion behavior needed by LedgerHandler.
type IngestService interface {
	Ingest(ctx context.Context, sessionKey, text string) (*usecase.IngestResult, error)
}

// ReportService defines the query behavior needed by LedgerHandler.
type ReportService interface {
	Balance(ctx context.Context, key string) (*usecase.BalanceReport, error)
	Month(ctx context.Context, key, period string) (string, domain.PeriodSummary, error)
	Year(ctx context.Context, key, period string) (string, domain.PeriodSummary, error)
	Reset(ctx context.Context, key string) error
}

// LedgerHandler exposes the bookkeeping core over REST, for the CLI and
// operations tooling. The Telegram webhook is the primary transport.
type LedgerHandler struct {
	ingest IngestService
	report ReportService
}

// NewLedgerHandler creates a LedgerHandler.
func NewLedgerHandler(ingest IngestService, report ReportService) *LedgerHandler {
	return &LedgerHandler{ingest: ingest, report: report}
}

// IngestMessage ingests one free-text message into the session's ledger.
func (h *LedgerHandler) IngestMessage(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		writeError(w, http.StatusBadRequest, "missing session key", "")
		return
	}

	var req dto.IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.ingest.Ingest(r.Context(), key, req.Text)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to ingest message", err.Error())
		return
	}

	status := http.StatusCreated
	if len(result.Entries) == 0 {
		status = http.StatusOK
	}
	writeJSON(w, status, dto.IngestResponseFromResult(result))
}

// Summary returns totals for the period query parameter: YYYY-MM for a
// month, YYYY for a year, empty for current month plus current year.
func (h *LedgerHandler) Summary(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		writeError(w, http.StatusBadRequest, "missing session key", "")
		return
	}

	period := r.URL.Query().Get("period")
	switch {
	case domain.ValidMonthPeriod(period):
		period, summary, err := h.report.Month(r.Context(), key, period)
		if err != nil {
			writeError(w, mapDomainError(err), "failed to compute summary", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, dto.SummaryFromDomain(period, summary))
	case domain.ValidYearPeriod(period):
		period, summary, err := h.report.Year(r.Context(), key, period)
		if err != nil {
			writeError(w, mapDomainError(err), "failed to compute summary", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, dto.SummaryFromDomain(period, summary))
	default:
		report, err := h.report.Balance(r.Context(), key)
		if err != nil {
			writeError(w, mapDomainError(err), "failed to compute summary", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, dto.BalanceResponse{
			Month: dto.SummaryFromDomain(report.MonthPeriod, report.Month),
			Year:  dto.SummaryFromDomain(report.YearPeriod, report.Year),
		})
	}
}

// Reset clears the session's ledger. Settings are retained.
func (h *LedgerHandler) Reset(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		writeError(w, http.StatusBadRequest, "missing session key", "")
		return
	}

	if err := h.report.Reset(r.Context(), key); err != nil {
		writeError(w, mapDomainError(err), "failed to reset session", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
