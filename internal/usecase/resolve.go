package usecase

import (
	"github.com/DmtrPpl/vat-bot/internal/classifier"
	"github.com/DmtrPpl/vat-bot/internal/domain"
	"github.com/DmtrPpl/vat-bot/internal/parser"
)

// Resolution is the final per-line classification after merging explicit
// cues, classifier output and type-based defaults.
type Resolution struct {
	AmountType    domain.AmountType
	VATApplicable bool
	Category      domain.Category
	Description   string
	Date          string // empty when neither text nor classifier named one
}

// Resolve merges the three classification sources in strict precedence
// order: an explicit "with VAT" / "without VAT" cue in the typed line
// beats the classifier, which beats the type-based defaults. The
// tokenizer's sign already fixed the entry type, so the classifier's own
// type field is ignored.
func Resolve(line parser.Line, res classifier.Result) Resolution {
	var (
		amountType  = domain.AmountTypeUnknown
		applicable  *bool
		category    string
		description string
		date        string
	)

	if res.Available {
		switch domain.AmountType(res.Fields.AmountType) {
		case domain.AmountTypeNet:
			amountType = domain.AmountTypeNet
		case domain.AmountTypeGross:
			amountType = domain.AmountTypeGross
		}
		applicable = res.Fields.VATApplicable
		category = res.Fields.Category
		description = res.Fields.Description
		date = res.Fields.Date
	}

	// Explicit cues override everything the classifier said.
	switch classifier.DetectCue(line.Raw) {
	case classifier.CueWithoutVAT:
		applicable = boolPtr(false)
		amountType = domain.AmountTypeNet
	case classifier.CueWithVAT:
		applicable = boolPtr(true)
		amountType = domain.AmountTypeGross
	}

	if applicable == nil {
		applicable = boolPtr(true)
	}
	if amountType == domain.AmountTypeUnknown {
		if line.Type == domain.EntryTypeExpense && !*applicable {
			amountType = domain.AmountTypeNet
		} else {
			amountType = domain.AmountTypeGross
		}
	}
	if description == "" {
		description = line.FreeText
	}

	return Resolution{
		AmountType:    amountType,
		VATApplicable: *applicable,
		Category:      domain.ParseCategory(category),
		Description:   description,
		Date:          date,
	}
}

func boolPtr(b bool) *bool { return &b }
