package render_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finvoice/internal/domain"
	"finvoice/internal/render"
)

func TestHTMLRenderer_Render(t *testing.T) {
	bill := &domain.Bill{
		InvoiceNumber:    "INV-100",
		CustomerName:     "John Doe",
		CustomerAddress:  "12 MG Road Bengaluru 560001",
		Manufacturer:     "Samsung",
		AssetCategory:    "Electronics",
		Model:            "Galaxy M34 5G",
		IMEISerialNumber: "356789012345678",
		AssetCost:        18999,
		TaxDetails: domain.TaxBreakdown{
			Rate:           16100.85,
			CGST:           1449.08,
			SGST:           1449.08,
			TaxableValue:   16100.85,
			TaxRate:        9,
			TotalTaxAmount: 2898.15,
		},
		AmountInWords:    "Eighteen Thousands Nine Hundred And Ninety Nine Rupees Only",
		TaxAmountInWords: "Two Thousands Eight Hundred And Ninety Eight Rupees And Fifteen Paise",
		HDBFinance:       true,
		CreatedAt:        time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
	}

	out, err := render.NewHTMLRenderer().Render(context.Background(), bill)
	require.NoError(t, err)
	assert.Equal(t, "text/html", out.MimeType)
	assert.Equal(t, "html", out.Ext)

	html := string(out.Bytes)
	assert.Contains(t, html, "TAX INVOICE")
	assert.Contains(t, html, "INV-100")
	assert.Contains(t, html, "John Doe")
	assert.Contains(t, html, "15/03/2026")
	assert.Contains(t, html, "HDB Financial Services")
	assert.Contains(t, html, "18,999")
	assert.Contains(t, html, "1,449.08")
	assert.Contains(t, html, "Eighteen Thousands Nine Hundred And Ninety Nine Rupees Only")
}

func TestHTMLRenderer_NoFinancierTag(t *testing.T) {
	bill := &domain.Bill{InvoiceNumber: "INV-101", CreatedAt: time.Now()}

	out, err := render.NewHTMLRenderer().Render(context.Background(), bill)
	require.NoError(t, err)
	assert.NotContains(t, string(out.Bytes), "Financed By:")
}
