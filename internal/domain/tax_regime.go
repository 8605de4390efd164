package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxRegime holds the rates and statutory values used to price a transfer.
// All rates are fractions (0.02 = 2%).
type TaxRegime struct {
	StampTaxRate     decimal.Decimal // Impuesto de Sellos, on the taxable base
	TransferTaxRate  decimal.Decimal // ITI, on the local price
	NotarialFeeRate  decimal.Decimal // Honorarios, on the local price
	VATRate          decimal.Decimal // IVA, on the notarial fee
	ContributionRate decimal.Decimal // Aportes notariales, on the notarial fee

	// DefaultExemptionThreshold applies when a request carries no threshold
	DefaultExemptionThreshold decimal.Decimal

	// TransferTaxCutoff: assets acquired strictly before this date pay transfer tax
	TransferTaxCutoff time.Time
}

// DefaultTaxRegime returns the Buenos Aires province regime
func DefaultTaxRegime() TaxRegime {
	return TaxRegime{
		StampTaxRate:              decimal.RequireFromString("0.02"),
		TransferTaxRate:           decimal.RequireFromString("0.015"),
		NotarialFeeRate:           decimal.RequireFromString("0.02"),
		VATRate:                   decimal.RequireFromString("0.21"),
		ContributionRate:          decimal.RequireFromString("0.15"),
		DefaultExemptionThreshold: decimal.NewFromInt(90_000_000),
		TransferTaxCutoff:         time.Date(2018, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}
