package domain

import "regexp"

var (
	monthPeriodRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
	yearPeriodRe  = regexp.MustCompile(`^\d{4}$`)
	currencyRe    = regexp.MustCompile(`^[A-Za-z]{3}$`)
)

// ValidMonthPeriod reports whether s is a YYYY-MM period.
func ValidMonthPeriod(s string) bool {
	return monthPeriodRe.MatchString(s)
}

// ValidYearPeriod reports whether s is a YYYY period.
func ValidYearPeriod(s string) bool {
	return yearPeriodRe.MatchString(s)
}

// ValidCurrency reports whether s is a 3-letter currency code.
func ValidCurrency(s string) bool {
	return currencyRe.MatchString(s)
}
