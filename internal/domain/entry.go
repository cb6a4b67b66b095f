package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType distinguishes money coming in from money going out.
type EntryType string

const (
	EntryTypeIncome  EntryType = "income"
	EntryTypeExpense EntryType = "expense"
)

// AmountType says whether a typed amount already includes VAT.
type AmountType string

const (
	AmountTypeNet     AmountType = "net"
	AmountTypeGross   AmountType = "gross"
	AmountTypeUnknown AmountType = "unknown"
)

// Entry is a single accounting entry. Once appended to a ledger it is
// never mutated or removed individually, only cleared in bulk by a reset.
type Entry struct {
	ID            string
	Type          EntryType
	Category      Category
	Description   string
	Date          string // YYYY-MM-DD
	Currency      string
	Net           decimal.Decimal
	VAT           decimal.Decimal
	Gross         decimal.Decimal
	VATCollected  decimal.Decimal // nonzero only for income entries
	VATDeductible decimal.Decimal // nonzero only for expense entries with VAT
	CreatedAt     time.Time
}
