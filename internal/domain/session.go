package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings holds per-session bookkeeping preferences. A ledger reset
// leaves them untouched.
type Settings struct {
	DefaultCurrency string
	VATRatePercent  decimal.Decimal
}

// Session is one isolated ledger plus settings, keyed by the originating
// chat. Entries appear in ingestion order and are never reordered.
type Session struct {
	Key       string
	Ledger    []*Entry
	Settings  Settings
	CreatedAt time.Time
	UpdatedAt time.Time
}
