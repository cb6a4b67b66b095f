package domain

import "errors"

var (
	// Session errors
	ErrSessionNotFound = errors.New("session not found")

	// Settings errors
	ErrInvalidVATRate  = errors.New("VAT rate must be between 0 and 100")
	ErrInvalidCurrency = errors.New("currency must be a 3-letter code")
)
