package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/DmtrPpl/vat-bot/internal/domain"
)

// Line is a provisional transaction produced from one line of raw input.
// It is consumed by the ingest pipeline and then discarded.
type Line struct {
	Type     domain.EntryType
	Amount   decimal.Decimal
	Currency string // upper-cased 3-letter code, empty when absent
	FreeText string
	Raw      string
}

// lineRe matches a leading sign, an amount with optional grouping spaces
// and a comma or dot decimal part, and an optional 3-letter currency token
// ending at a word boundary. The remainder stays verbatim as free text.
var lineRe = regexp.MustCompile(`^([+-])\s*(\d[\d ]*(?:[.,]\d+)?)(?:\s*([A-Za-z]{3})\b)?\s*(.*)$`)

// Tokenize splits raw multi-line input into provisional lines. Empty lines
// and lines without a leading sign and amount are dropped without error;
// an empty result means the message carried no transactions.
func Tokenize(text string) []Line {
	var lines []Line
	for _, raw := range strings.Split(text, "\n") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		m := lineRe.FindStringSubmatch(raw)
		if m == nil {
			continue
		}

		typ := domain.EntryTypeIncome
		if m[1] == "-" {
			typ = domain.EntryTypeExpense
		}

		lines = append(lines, Line{
			Type:     typ,
			Amount:   parseAmount(m[2]),
			Currency: strings.ToUpper(m[3]),
			FreeText: strings.TrimSpace(m[4]),
			Raw:      raw,
		})
	}
	return lines
}

// parseAmount normalizes "1 234,56" style input. An unparseable amount
// counts as zero so the entry is still produced.
func parseAmount(s string) decimal.Decimal {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
