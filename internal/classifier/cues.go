package classifier

import "strings"

// Cue is an explicit VAT instruction typed into the line itself. Cues
// override whatever the classifier or the defaults would decide.
type Cue int

const (
	CueNone Cue = iota
	CueWithVAT
	CueWithoutVAT
)

var (
	withoutVATCues = []string{"без пдв", "без ндс", "without vat", "no vat", "no-vat"}
	withVATCues    = []string{"з пдв", "с ндс", "with vat", "incl vat", "incl. vat"}
)

// DetectCue looks for "with VAT" / "without VAT" phrasing, Ukrainian,
// Russian or English, anywhere in the text. The negative phrasings are
// checked first because "with vat" is a substring of "without vat".
func DetectCue(text string) Cue {
	t := strings.ToLower(text)
	for _, cue := range withoutVATCues {
		if strings.Contains(t, cue) {
			return CueWithoutVAT
		}
	}
	for _, cue := range withVATCues {
		if strings.Contains(t, cue) {
			return CueWithVAT
		}
	}
	return CueNone
}
