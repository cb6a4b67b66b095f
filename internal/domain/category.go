package domain

import "strings"

// Category is one of the fixed bookkeeping categories.
type Category string

const (
	CategorySales     Category = "sales"
	CategoryServices  Category = "services"
	CategoryHardware  Category = "hardware"
	CategorySoftware  Category = "software"
	CategoryRent      Category = "rent"
	CategoryTransport Category = "transport"
	CategoryInternet  Category = "internet"
	CategoryTax       Category = "tax"
	CategoryOther     Category = "other"
)

var categories = map[Category]struct{}{
	CategorySales:     {},
	CategoryServices:  {},
	CategoryHardware:  {},
	CategorySoftware:  {},
	CategoryRent:      {},
	CategoryTransport: {},
	CategoryInternet:  {},
	CategoryTax:       {},
	CategoryOther:     {},
}

// ParseCategory maps free-form classifier output onto the closed category
// set, falling back to CategoryOther.
func ParseCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := categories[c]; ok {
		return c
	}
	return CategoryOther
}
