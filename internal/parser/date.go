package parser

import (
	"regexp"
	"time"
)

const dateLayout = "2006-01-02"

var (
	isoDateRe    = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	dottedDateRe = regexp.MustCompile(`\b(\d{2})\.(\d{2})\.(\d{4})\b`)
)

// ExtractDate scans text for an explicit date, ISO YYYY-MM-DD first, then
// day-first DD.MM.YYYY reordered to ISO. The first real calendar date
// wins.
func ExtractDate(text string) (string, bool) {
	for _, m := range isoDateRe.FindAllString(text, -1) {
		if isCalendarDate(m) {
			return m, true
		}
	}
	for _, m := range dottedDateRe.FindAllStringSubmatch(text, -1) {
		s := m[3] + "-" + m[2] + "-" + m[1]
		if isCalendarDate(s) {
			return s, true
		}
	}
	return "", false
}

// NormalizeDate returns s when it is already a canonical calendar date and
// now's date otherwise. It never fails.
func NormalizeDate(s string, now time.Time) string {
	if isCalendarDate(s) {
		return s
	}
	return now.Format(dateLayout)
}

func isCalendarDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}
