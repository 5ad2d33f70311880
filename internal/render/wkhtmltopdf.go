package render

import (
	"bytes"
	"context"
	"log"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"

	"finvoice/internal/domain"
	"finvoice/internal/port"
)

type pdfRenderer struct {
	html *htmlRenderer
}

// NewPDFRenderer creates a DocumentRenderer that converts the HTML invoice
// to PDF with wkhtmltopdf. binPath overrides the binary location when the
// tool is not on PATH.
func NewPDFRenderer(binPath string) port.DocumentRenderer {
	if binPath != "" {
		wkhtmltopdf.SetPath(binPath)
	}
	html := NewHTMLRenderer().(*htmlRenderer)
	return &pdfRenderer{html: html}
}

func (r *pdfRenderer) Render(ctx context.Context, bill *domain.Bill) (*port.RenderOutput, error) {
	html, err := r.html.renderHTML(bill)
	if err != nil {
		return nil, err
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		log.Printf("wkhtmltopdf unavailable: %v", err)
		return nil, domain.ErrRenderFailed
	}

	pdfg.MarginTop.Set(10)
	pdfg.MarginBottom.Set(10)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(html))
	page.DisableExternalLinks.Set(true)
	pdfg.AddPage(page)

	if err := pdfg.CreateContext(ctx); err != nil {
		log.Printf("wkhtmltopdf create: %v", err)
		return nil, domain.ErrRenderFailed
	}
	if len(pdfg.Bytes()) == 0 {
		return nil, domain.ErrRenderFailed
	}

	return &port.RenderOutput{
		Bytes:    pdfg.Bytes(),
		MimeType: "application/pdf",
		Ext:      "pdf",
	}, nil
}
