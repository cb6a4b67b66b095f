package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PeriodSummary holds the reduced totals for a slice of the ledger. It is
// derived on demand and never stored.
type PeriodSummary struct {
	IncomeGross  decimal.Decimal
	ExpenseGross decimal.Decimal
	IncomeVAT    decimal.Decimal
	ExpenseVAT   decimal.Decimal
	ProfitGross  decimal.Decimal
	VATDue       decimal.Decimal
	NetAfterVAT  decimal.Decimal
}

// Totals reduces entries to summary totals in a single pass. Gross amounts
// go into income/expense buckets by entry type, VAT collected and
// deductible into the VAT buckets. Everything is rounded to 2 decimals.
func Totals(entries []*Entry) PeriodSummary {
	var s PeriodSummary
	s.IncomeGross = decimal.Zero
	s.ExpenseGross = decimal.Zero
	s.IncomeVAT = decimal.Zero
	s.ExpenseVAT = decimal.Zero

	for _, e := range entries {
		switch e.Type {
		case EntryTypeIncome:
			s.IncomeGross = s.IncomeGross.Add(e.Gross)
			s.IncomeVAT = s.IncomeVAT.Add(e.VATCollected)
		case EntryTypeExpense:
			s.ExpenseGross = s.ExpenseGross.Add(e.Gross)
			s.ExpenseVAT = s.ExpenseVAT.Add(e.VATDeductible)
		}
	}

	s.IncomeGross = s.IncomeGross.Round(2)
	s.ExpenseGross = s.ExpenseGross.Round(2)
	s.IncomeVAT = s.IncomeVAT.Round(2)
	s.ExpenseVAT = s.ExpenseVAT.Round(2)
	s.ProfitGross = s.IncomeGross.Sub(s.ExpenseGross)
	s.VATDue = s.IncomeVAT.Sub(s.ExpenseVAT)
	s.NetAfterVAT = s.ProfitGross.Sub(s.VATDue)

	return s
}

// PeriodTotals filters entries by a YYYY or YYYY-MM date prefix and
// reduces the remainder. Filtering is stateless and re-derived per call,
// so overlapping period queries never double-count.
func PeriodTotals(entries []*Entry, period string) PeriodSummary {
	filtered := make([]*Entry, 0, len(entries))
	for _, e := range entries {
		if strings.HasPrefix(e.Date, period) {
			filtered = append(filtered, e)
		}
	}
	return Totals(filtered)
}
