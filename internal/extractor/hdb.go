package extractor

import (
	"regexp"
	"strings"

	"finvoice/internal/domain"
)

var (
	hdbCustomerRe = regexp.MustCompile(`(?i)to our Customer\s+(.+?)\s+\. Pursuant`)
	hdbBrandRe    = regexp.MustCompile(`(?i)Product Brand\s*:\s*(\S+)`)
	hdbAddressRe  = regexp.MustCompile(`(?i)Customer Address\s*:\s*([\s\S]*?\d{6})`)
)

// extractHDB handles HDB Financial Services delivery orders. The letter is a
// prose document, so most fields sit between fixed label pairs rather than on
// their own lines. Asset category is not printed anywhere; HDB only finances
// consumer electronics through this channel.
func extractHDB(text string) domain.ExtractionResult {
	res := domain.ExtractionResult{
		Financier:     domain.FinancierHDB,
		HDBFinance:    true,
		AssetCategory: "Electronics",
	}

	res.CustomerName = firstGroup(hdbCustomerRe, text)
	res.Manufacturer = firstGroup(hdbBrandRe, text)
	res.Model = between(text, "Product Model :", "Scheme Code & EMI")
	res.AssetCost = amountAfter(text, "A. Product Cost")
	res.CustomerAddress = firstGroup(hdbAddressRe, text)

	// Serial number sits between the "Serial Number" column header and the
	// following "Model Number" header; often blank, in which case the
	// operator keys it in manually.
	if start := strings.Index(text, "Serial Number"); start != -1 {
		after := text[start+len("Serial Number"):]
		if end := strings.Index(after, "Model Number"); end != -1 {
			res.IMEISerialNumber = strings.TrimSpace(after[:end])
		}
	}

	return res
}
