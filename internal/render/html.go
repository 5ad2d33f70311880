package render

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"finvoice/internal/domain"
	"finvoice/internal/money"
	"finvoice/internal/port"
)

// invoiceTemplate is the fixed-layout tax invoice. The layout holds GST
// breakdown rows, the amount-in-words footer and the financier tag line.
const invoiceTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Tax Invoice {{.Bill.InvoiceNumber}}</title>
<style>
  body { font-family: Arial, sans-serif; font-size: 12px; color: #111; margin: 24px; }
  .header { text-align: center; border-bottom: 2px solid #111; padding-bottom: 8px; }
  .header h1 { margin: 0; font-size: 18px; letter-spacing: 2px; }
  table { width: 100%; border-collapse: collapse; margin-top: 12px; }
  th, td { border: 1px solid #444; padding: 6px 8px; text-align: left; }
  th { background: #eee; }
  .amount { text-align: right; }
  .words { margin-top: 12px; font-style: italic; }
  .meta { display: flex; justify-content: space-between; margin-top: 8px; }
  .footer { margin-top: 32px; text-align: right; }
</style>
</head>
<body>
  <div class="header">
    <h1>TAX INVOICE</h1>
  </div>
  <div class="meta">
    <div>
      <strong>Invoice No:</strong> {{.Bill.InvoiceNumber}}<br>
      <strong>Date:</strong> {{.Date}}
    </div>
    <div>
      {{if .FinancierTag}}<strong>Financed By:</strong> {{.FinancierTag}}{{end}}
    </div>
  </div>
  <table>
    <tr><th colspan="2">Billed To</th></tr>
    <tr><td><strong>Customer</strong></td><td>{{.Bill.CustomerName}}</td></tr>
    <tr><td><strong>Address</strong></td><td>{{.Bill.CustomerAddress}}</td></tr>
  </table>
  <table>
    <tr>
      <th>Description</th>
      <th>Manufacturer</th>
      <th>Model</th>
      <th>IMEI / Serial No</th>
      <th class="amount">Amount</th>
    </tr>
    <tr>
      <td>{{.Bill.AssetCategory}}</td>
      <td>{{.Bill.Manufacturer}}</td>
      <td>{{.Bill.Model}}</td>
      <td>{{.Bill.IMEISerialNumber}}</td>
      <td class="amount">{{inr .Bill.TaxDetails.Rate}}</td>
    </tr>
  </table>
  <table>
    <tr><th>Tax</th><th class="amount">Rate</th><th class="amount">Amount</th></tr>
    <tr><td>CGST</td><td class="amount">{{printf "%.0f" .Bill.TaxDetails.TaxRate}}%</td><td class="amount">{{inr .Bill.TaxDetails.CGST}}</td></tr>
    <tr><td>SGST</td><td class="amount">{{printf "%.0f" .Bill.TaxDetails.TaxRate}}%</td><td class="amount">{{inr .Bill.TaxDetails.SGST}}</td></tr>
    <tr><td colspan="2"><strong>Total Tax</strong></td><td class="amount">{{inr .Bill.TaxDetails.TotalTaxAmount}}</td></tr>
    <tr><td colspan="2"><strong>Grand Total</strong></td><td class="amount"><strong>{{inr .Bill.AssetCost}}</strong></td></tr>
  </table>
  <div class="words">
    <strong>Amount in Words:</strong> {{.Bill.AmountInWords}}<br>
    <strong>Tax Amount in Words:</strong> {{.Bill.TaxAmountInWords}}
  </div>
  {{if .Bill.Notes}}<div class="words"><strong>Notes:</strong> {{.Bill.Notes}}</div>{{end}}
  <div class="footer">
    <p>Authorised Signatory</p>
  </div>
</body>
</html>`

type htmlRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer creates a DocumentRenderer that emits a self-contained
// HTML invoice. It is the fallback when PDF conversion is unavailable.
func NewHTMLRenderer() port.DocumentRenderer {
	tmpl := template.Must(template.New("invoice").
		Funcs(template.FuncMap{"inr": money.FormatINR}).
		Parse(invoiceTemplate))
	return &htmlRenderer{tmpl: tmpl}
}

func (r *htmlRenderer) Render(ctx context.Context, bill *domain.Bill) (*port.RenderOutput, error) {
	html, err := r.renderHTML(bill)
	if err != nil {
		return nil, err
	}
	return &port.RenderOutput{
		Bytes:    html,
		MimeType: "text/html",
		Ext:      "html",
	}, nil
}

func (r *htmlRenderer) renderHTML(bill *domain.Bill) ([]byte, error) {
	data := struct {
		Bill         *domain.Bill
		Date         string
		FinancierTag string
	}{
		Bill:         bill,
		Date:         bill.CreatedAt.Format("02/01/2006"),
		FinancierTag: financierTag(bill),
	}
	if data.Bill.CreatedAt.IsZero() {
		data.Date = time.Now().Format("02/01/2006")
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("invoice template: %w", err)
	}
	return buf.Bytes(), nil
}

func financierTag(bill *domain.Bill) string {
	switch {
	case bill.HDBFinance:
		return "HDB Financial Services"
	case bill.TVSFinance:
		return "TVS Credit"
	case bill.BajajFinance:
		return "Bajaj Finance"
	case bill.PoonawallaFinance:
		return "Poonawalla Fincorp"
	}
	return ""
}
