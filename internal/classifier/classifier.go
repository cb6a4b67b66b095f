// Package classifier decides how a free-text bookkeeping line should be
// booked: whether the typed amount is net or gross, whether VAT applies,
// and which category and description fit.
package classifier

import (
	"context"

	"github.com/shopspring/decimal"
)

// Request is the per-line classification input.
type Request struct {
	RawLine        string
	Currency       string
	VATRatePercent decimal.Decimal
}

// Fields are the classifier's best-effort answers. Any field may be empty
// or absent; the resolver treats empty fields as unknown.
type Fields struct {
	Type          string `json:"type"`
	AmountType    string `json:"amount_type"`
	VATApplicable *bool  `json:"vat_applicable"`
	Category      string `json:"category"`
	Description   string `json:"description"`
	Date          string `json:"date"`
}

// Result is a tagged classification outcome. When Available is false the
// resolver treats every field as unknown and falls through to defaults.
type Result struct {
	Available bool
	Fields    Fields
}

// Unavailable is the Result used when the classifier cannot contribute.
var Unavailable = Result{}

// Classifier turns one raw bookkeeping line into best-effort fields. It
// never fails: implementations downgrade any error to Unavailable.
type Classifier interface {
	Classify(ctx context.Context, req Request) Result
}

// Noop is a Classifier that always reports Unavailable. Used when no
// OpenAI key is configured.
type Noop struct{}

// Classify implements Classifier.
func (Noop) Classify(context.Context, Request) Result { return Unavailable }
