package tax_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"finvoice/internal/tax"
)

func TestCompute_StandardBreakdown(t *testing.T) {
	b := tax.Compute(10000, "Electronics")

	assert.Equal(t, 8474.58, b.Rate)
	assert.Equal(t, 762.71, b.CGST)
	assert.Equal(t, 762.71, b.SGST)
	assert.Equal(t, 1525.42, b.TotalTaxAmount)
	assert.Equal(t, 8474.58, b.TaxableValue)
	assert.Equal(t, 9.0, b.TaxRate)
}

func TestCompute_HalvesAreEqual(t *testing.T) {
	for _, cost := range []float64{1, 99.99, 18999, 45999, 1234567.89} {
		b := tax.Compute(cost, "Electronics")
		assert.Equal(t, b.CGST, b.SGST, "cost %v", cost)
		assert.InDelta(t, b.CGST+b.SGST, b.TotalTaxAmount, 0.011, "cost %v", cost)
		assert.InDelta(t, cost, b.Rate+b.TotalTaxAmount, 0.011, "cost %v", cost)
	}
}

func TestCompute_CategoryIgnored(t *testing.T) {
	assert.Equal(t, tax.Compute(25000, "Electronics"), tax.Compute(25000, "Furniture"))
}

func TestCompute_NonPositiveCost(t *testing.T) {
	for _, cost := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		b := tax.Compute(cost, "Electronics")
		assert.Zero(t, b.Rate)
		assert.Zero(t, b.CGST)
		assert.Zero(t, b.SGST)
		assert.Zero(t, b.TotalTaxAmount)
		assert.Equal(t, 9.0, b.TaxRate)
	}
}
