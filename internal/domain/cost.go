package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Currency represents the currency a price is quoted in
type Currency string

const (
	CurrencyARS Currency = "ARS"
	CurrencyUSD Currency = "USD"
	CurrencyUVA Currency = "UVA" // inflation-indexed unit, converted like a foreign currency
)

// IsLocal reports whether amounts in c need no conversion
func (c Currency) IsLocal() bool {
	return c == CurrencyARS
}

// IsKnown reports whether c is one of the supported currencies
func (c Currency) IsKnown() bool {
	return c == CurrencyARS || c == CurrencyUSD || c == CurrencyUVA
}

// CostCalculationRequest holds the inputs needed to price a property transfer
type CostCalculationRequest struct {
	Price           decimal.Decimal
	Currency        Currency
	ExchangeRate    decimal.Decimal // ARS per unit of Currency. Ignored for ARS.
	AcquisitionDate time.Time       // When the seller originally acquired the asset
	IsUniqueHome    bool            // Seller's sole dwelling
	FiscalValuation decimal.Decimal // Government-assessed value, floor for the taxable base

	// ExemptionThreshold overrides the regime default when not nil
	ExemptionThreshold *decimal.Decimal
}

// Validate is the strict check callers run before pricing.
// The calculator itself never rejects input.
func (r *CostCalculationRequest) Validate() error {
	if r.Price.LessThanOrEqual(decimal.Zero) {
		return errors.New("price must be positive")
	}

	if !r.Currency.IsKnown() {
		return errors.New("invalid currency: must be ARS, USD or UVA")
	}

	if !r.Currency.IsLocal() && r.ExchangeRate.LessThanOrEqual(decimal.Zero) {
		return errors.New("exchange rate must be positive for foreign currency")
	}

	if r.AcquisitionDate.IsZero() {
		return errors.New("acquisition date is required")
	}

	if r.FiscalValuation.LessThan(decimal.Zero) {
		return errors.New("fiscal valuation must not be negative")
	}

	if r.ExemptionThreshold != nil && r.ExemptionThreshold.LessThanOrEqual(decimal.Zero) {
		return errors.New("exemption threshold must be positive")
	}

	return nil
}

// CostDetail is the per-line breakdown of a cost calculation
type CostDetail struct {
	StampTax             decimal.Decimal
	TransferTax          decimal.Decimal
	NotarialFee          decimal.Decimal
	VAT                  decimal.Decimal
	NotarialContribution decimal.Decimal
}

// Sum adds every line of the breakdown
func (d CostDetail) Sum() decimal.Decimal {
	return decimal.Sum(d.StampTax, d.TransferTax, d.NotarialFee, d.VAT, d.NotarialContribution)
}

// CostCalculationResult is the output of a cost calculation.
// Every amount is rounded to cents.
type CostCalculationResult struct {
	BaseAmountLocal decimal.Decimal
	Detail          CostDetail
	TotalLocal      decimal.Decimal  // Always equals Detail.Sum()
	TotalForeign    *decimal.Decimal // Set only when the request currency was not local
}
