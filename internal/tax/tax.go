// Package tax computes the GST split for a bill. The policy is a flat 18%
// GST on all categories, divided equally into 9% CGST and 9% SGST for
// intra-state sales.
package tax

import (
	"math"

	"finvoice/internal/domain"
)

// GST policy constants. TotalRatePct is the combined CGST+SGST percentage;
// HalfRatePct is what appears on the printed invoice per tax line.
const (
	TotalRatePct = 18.0
	HalfRatePct  = 9.0
)

// Compute derives the tax breakdown for an asset cost. It is a total
// function: any cost and category yield a result, with a zero breakdown for
// non-positive costs. The category parameter is kept for the historical
// category-dependent policy; the current policy ignores it.
func Compute(assetCost float64, assetCategory string) domain.TaxBreakdown {
	_ = assetCategory

	if assetCost <= 0 || math.IsNaN(assetCost) || math.IsInf(assetCost, 0) {
		return domain.TaxBreakdown{TaxRate: HalfRatePct}
	}

	rate := assetCost / (1 + TotalRatePct/100)
	half := (assetCost - rate) / 2
	totalTax := half * 2
	taxable := assetCost - totalTax

	return domain.TaxBreakdown{
		Rate:           round2(rate),
		CGST:           round2(half),
		SGST:           round2(half),
		TaxableValue:   round2(taxable),
		TaxRate:        HalfRatePct,
		TotalTaxAmount: round2(totalTax),
	}
}

// round2 rounds half-up to two decimal places. Rounding happens once, at the
// edge, so intermediate values keep full precision.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
