package cost_calculator

import (
	"github.com/shopspring/decimal"
	"github.com/simaogato/notaryflow-backend/internal/domain"
)

// cents is the number of decimal places every amount is rounded to
const cents = 2

// ComputeCosts prices a property transfer under the given regime.
//
// Logic:
//  1. Convert the price to ARS (price × exchange rate for foreign currencies)
//  2. Taxable base = max(local price, fiscal valuation)
//  3. Stamp tax on the base; unique homes pay only on the excess over the exemption threshold
//  4. Transfer tax on the local price, only for assets acquired before the regime cutoff
//  5. Notarial fee on the local price, VAT and contribution on the fee
//  6. Each line is rounded to cents before it is summed into the total
//
// The function is total: it never fails and never panics. Input checks belong to
// CostCalculationRequest.Validate. A non-positive exchange rate on a foreign currency
// prices the transfer at zero and leaves TotalForeign unset.
func ComputeCosts(req domain.CostCalculationRequest, regime domain.TaxRegime) domain.CostCalculationResult {
	foreign := !req.Currency.IsLocal()
	rateUsable := req.ExchangeRate.GreaterThan(decimal.Zero)

	// Step 1: local price
	priceLocal := req.Price
	if foreign {
		priceLocal = decimal.Zero
		if rateUsable {
			priceLocal = req.Price.Mul(req.ExchangeRate)
		}
	}

	// Step 2: taxable base
	base := decimal.Max(priceLocal, req.FiscalValuation)

	threshold := regime.DefaultExemptionThreshold
	if req.ExemptionThreshold != nil {
		threshold = *req.ExemptionThreshold
	}

	// Steps 3-5
	stampTax := stampTax(base, threshold, req.IsUniqueHome, regime.StampTaxRate)

	transferTax := decimal.Zero
	if domain.DateOf(req.AcquisitionDate).Before(domain.DateOf(regime.TransferTaxCutoff)) {
		transferTax = priceLocal.Mul(regime.TransferTaxRate)
	}

	notarialFee := priceLocal.Mul(regime.NotarialFeeRate)

	detail := domain.CostDetail{
		StampTax:             stampTax.Round(cents),
		TransferTax:          transferTax.Round(cents),
		NotarialFee:          notarialFee.Round(cents),
		VAT:                  notarialFee.Mul(regime.VATRate).Round(cents),
		NotarialContribution: notarialFee.Mul(regime.ContributionRate).Round(cents),
	}

	result := domain.CostCalculationResult{
		BaseAmountLocal: base.Round(cents),
		Detail:          detail,
		TotalLocal:      detail.Sum(),
	}

	if foreign && rateUsable {
		totalForeign := result.TotalLocal.Div(req.ExchangeRate).Round(cents)
		result.TotalForeign = &totalForeign
	}

	return result
}

// stampTax applies the stamp rate. Unique homes are taxed at the margin above
// the threshold; every other transfer pays on the full base.
func stampTax(base, threshold decimal.Decimal, isUniqueHome bool, rate decimal.Decimal) decimal.Decimal {
	if !isUniqueHome {
		return base.Mul(rate)
	}
	if base.LessThanOrEqual(threshold) {
		return decimal.Zero
	}
	return base.Sub(threshold).Mul(rate)
}
