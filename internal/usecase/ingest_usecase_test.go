package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/DmtrPpl/vat-bot/internal/classifier"
	"github.com/DmtrPpl/vat-bot/internal/domain"
	"github.com/DmtrPpl/vat-bot/internal/usecase/mocks"
)

var testDefaults = domain.Settings{
	DefaultCurrency: "UAH",
	VATRatePercent:  decimal.NewFromInt(20),
}

var testNow = time.Date(2025, 8, 29, 10, 0, 0, 0, time.UTC)

func newTestIngest(repo *mocks.MockSessionRepository, cls classifier.Classifier) *IngestUseCase {
	uc := NewIngestUseCase(repo, cls, mocks.NewMockIDGenerator(), testDefaults, zerolog.Nop())
	uc.now = func() time.Time { return testNow }
	return uc
}

func TestIngest_IncomeWithVATCue(t *testing.T) {
	repo := mocks.NewMockSessionRepository()
	uc := newTestIngest(repo, classifier.Noop{})

	result, err := uc.Ingest(context.Background(), "chat-1", "+1000 eur з ПДВ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(result.Entries))
	}

	e := result.Entries[0]
	if e.Type != domain.EntryTypeIncome {
		t.Errorf("expected income, got %s", e.Type)
	}
	if e.Currency != "EUR" {
		t.Errorf("expected EUR, got %q", e.Currency)
	}
	if !e.Gross.Equal(decimal.RequireFromString("1000")) {
		t.Errorf("expected gross 1000, got %s", e.Gross)
	}
	if !e.VAT.Equal(decimal.RequireFromString("166.67")) {
		t.Errorf("expected VAT 166.67, got %s", e.VAT)
	}
	if !e.Net.Equal(decimal.RequireFromString("833.33")) {
		t.Errorf("expected net 833.33, got %s", e.Net)
	}
	if !e.VATCollected.Equal(e.VAT) {
		t.Errorf("expected VAT collected %s, got %s", e.VAT, e.VATCollected)
	}
	if !e.VATDeductible.IsZero() {
		t.Errorf("expected zero VAT deductible, got %s", e.VATDeductible)
	}
	if e.Date != "2025-08-29" {
		t.Errorf("expected today's date, got %q", e.Date)
	}
}

func TestIngest_ExpenseWithoutVATCue(t *testing.T) {
	repo := mocks.NewMockSessionRepository()
	uc := newTestIngest(repo, classifier.Noop{})

	result, err := uc.Ingest(context.Background(), "chat-1", "-200 internet без ПДВ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(result.Entries))
	}

	e := result.Entries[0]
	if e.Type != domain.EntryTypeExpense {
		t.Errorf("expected expense, got %s", e.Type)
	}
	if e.Currency != "UAH" {
		t.Errorf("expected default currency UAH, got %q", e.Currency)
	}
	if !e.Net.Equal(decimal.RequireFromString("200")) || !e.Gross.Equal(decimal.RequireFromString("200")) {
		t.Errorf("expected net=gross=200, got net %s gross %s", e.Net, e.Gross)
	}
	if !e.VAT.IsZero() || !e.VATDeductible.IsZero() {
		t.Errorf("expected zero VAT, got vat %s deductible %s", e.VAT, e.VATDeductible)
	}
}

func TestIngest_MultiLineSummaries(t *testing.T) {
	repo := mocks.NewMockSessionRepository()
	uc := newTestIngest(repo, classifier.Noop{})

	result, err := uc.Ingest(context.Background(), "chat-1", "+1000 eur з ПДВ\n-200 internet без ПДВ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result.Entries))
	}

	if result.MonthPeriod != "2025-08" || result.YearPeriod != "2025" {
		t.Fatalf("unexpected periods %q / %q", result.MonthPeriod, result.YearPeriod)
	}
	if !result.Month.IncomeGross.Equal(decimal.RequireFromString("1000")) {
		t.Errorf("expected month income gross 1000, got %s", result.Month.IncomeGross)
	}
	if !result.Month.ExpenseGross.Equal(decimal.RequireFromString("200")) {
		t.Errorf("expected month expense gross 200, got %s", result.Month.ExpenseGross)
	}
	if !result.Month.VATDue.Equal(decimal.RequireFromString("166.67")) {
		t.Errorf("expected month VAT due 166.67, got %s", result.Month.VATDue)
	}
	if !result.Year.IncomeGross.Equal(result.Month.IncomeGross) {
		t.Errorf("expected year income to match month for a fresh ledger, got %s", result.Year.IncomeGross)
	}
}

func TestIngest_NoParsableLines(t *testing.T) {
	repo := mocks.NewMockSessionRepository()
	uc := newTestIngest(repo, classifier.Noop{})

	result, err := uc.Ingest(context.Background(), "chat-1", "просто текст без транзакцій")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(result.Entries))
	}

	// Nothing was appended to the ledger.
	session, err := repo.GetOrCreate(context.Background(), "chat-1", testDefaults)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(session.Ledger) != 0 {
		t.Fatalf("expected empty ledger, got %d entries", len(session.Ledger))
	}
}

func TestIngest_ExplicitDateInText(t *testing.T) {
	repo := mocks.NewMockSessionRepository()
	uc := newTestIngest(repo, classifier.Noop{})

	result, err := uc.Ingest(context.Background(), "chat-1", "-500 rent 15.03.2025")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(result.Entries))
	}
	if result.Entries[0].Date != "2025-03-15" {
		t.Errorf("expected 2025-03-15, got %q", result.Entries[0].Date)
	}
}

func TestIngest_ClassifierFieldsUsed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cls := mocks.NewMockClassifier(ctrl)
	applicable := false
	cls.EXPECT().Classify(gomock.Any(), gomock.Any()).Return(classifier.Result{
		Available: true,
		Fields: classifier.Fields{
			AmountType:    "net",
			VATApplicable: &applicable,
			Category:      "tax",
			Description:   "single tax payment",
		},
	})

	repo := mocks.NewMockSessionRepository()
	uc := newTestIngest(repo, cls)

	result, err := uc.Ingest(context.Background(), "chat-1", "-1500 єдиний податок")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(result.Entries))
	}

	e := result.Entries[0]
	if e.Category != domain.CategoryTax {
		t.Errorf("expected category tax, got %s", e.Category)
	}
	if e.Description != "single tax payment" {
		t.Errorf("unexpected description %q", e.Description)
	}
	if !e.VAT.IsZero() {
		t.Errorf("expected zero VAT, got %s", e.VAT)
	}
	if !e.Gross.Equal(decimal.RequireFromString("1500")) {
		t.Errorf("expected gross 1500, got %s", e.Gross)
	}
}

func TestIngest_CueOverridesClassifier(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cls := mocks.NewMockClassifier(ctrl)
	applicable := true
	cls.EXPECT().Classify(gomock.Any(), gomock.Any()).Return(classifier.Result{
		Available: true,
		Fields: classifier.Fields{
			AmountType:    "gross",
			VATApplicable: &applicable,
		},
	})

	repo := mocks.NewMockSessionRepository()
	uc := newTestIngest(repo, cls)

	result, err := uc.Ingest(context.Background(), "chat-1", "-200 hosting без ПДВ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e := result.Entries[0]
	if !e.VAT.IsZero() {
		t.Errorf("expected cue to win, got VAT %s", e.VAT)
	}
	if !e.Gross.Equal(decimal.RequireFromString("200")) {
		t.Errorf("expected gross 200, got %s", e.Gross)
	}
}

func TestIngest_EarlierEntriesSurviveLaterFailure(t *testing.T) {
	repo := mocks.NewMockSessionRepository()
	appended := 0
	repo.AppendEntriesFunc = func(ctx context.Context, key string, entries []*domain.Entry) error {
		appended++
		if appended > 1 {
			return errors.New("storage gone")
		}
		return nil
	}
	uc := newTestIngest(repo, classifier.Noop{})

	_, err := uc.Ingest(context.Background(), "chat-1", "+100 sales\n-50 rent")
	if err == nil {
		t.Fatal("expected error from second append")
	}
	if appended != 2 {
		t.Fatalf("expected 2 append attempts, got %d", appended)
	}
}

func TestIngest_SessionFailure(t *testing.T) {
	repo := mocks.NewMockSessionRepository()
	repo.GetOrCreateFunc = func(ctx context.Context, key string, defaults domain.Settings) (*domain.Session, error) {
		return nil, errors.New("redis down")
	}
	uc := newTestIngest(repo, classifier.Noop{})

	if _, err := uc.Ingest(context.Background(), "chat-1", "+100"); err == nil {
		t.Fatal("expected error")
	}
}
