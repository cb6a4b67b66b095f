// Package vat holds the net/VAT/gross conversion arithmetic.
package vat

import (
	"github.com/shopspring/decimal"

	"github.com/DmtrPpl/vat-bot/internal/domain"
)

// Triplet is the net/VAT/gross decomposition of one amount.
type Triplet struct {
	Net   decimal.Decimal
	VAT   decimal.Decimal
	Gross decimal.Decimal
}

var oneHundred = decimal.NewFromInt(100)

// Compute converts a typed amount into a triplet under ratePercent. All
// parts are rounded to 2 decimal places, half away from zero, and Gross
// always equals Net plus VAT.
//
// When VAT is not applicable or the rate is zero or negative, the amount
// passes through unchanged regardless of amountType.
func Compute(amount decimal.Decimal, amountType domain.AmountType, ratePercent decimal.Decimal, applicable bool) Triplet {
	amount = amount.Round(2)

	if !applicable || ratePercent.LessThanOrEqual(decimal.Zero) {
		return Triplet{Net: amount, VAT: decimal.Zero, Gross: amount}
	}

	if amountType == domain.AmountTypeNet {
		v := amount.Mul(ratePercent).Div(oneHundred).Round(2)
		return Triplet{Net: amount, VAT: v, Gross: amount.Add(v)}
	}

	// Gross-typed: peel the VAT portion out of the amount.
	net := amount.Mul(oneHundred).Div(oneHundred.Add(ratePercent)).Round(2)
	return Triplet{Net: net, VAT: amount.Sub(net), Gross: amount}
}
