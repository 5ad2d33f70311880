package extractor

import (
	"regexp"
	"strings"

	"finvoice/internal/domain"
)

var (
	genCustomerRe     = regexp.MustCompile(`(?i)Customer Name:?[ \t]*([A-Za-z]+(?:[ \t]+[A-Za-z]+){0,2})`)
	genManufacturerRe = regexp.MustCompile(`(?i)Manufacturer:?[ \t]*([^ \t\n]+)`)
	genAddressRe      = regexp.MustCompile(`(?i)(?:Customer )?Address:?[ \t]*([\s\S]*?\d{6})`)
	genCategoryRe     = regexp.MustCompile(`(?i)Asset Category:?[ \t]*([A-Za-z\s]+?)\s*(?:Sub-Category|Variant|\bModel\b|\bSerial Number\b|\bAsset Cost\b|$)`)
	genModelRe        = regexp.MustCompile(`(?i)Model:?\s*([^\n\r]+?)\s*(?:Asset Category|[\n\r])`)
	genSerialRe       = regexp.MustCompile(`(?i)Serial Number:?[ \t]*([^ \t\n]+)`)
	genCostRe         = regexp.MustCompile(`(?i)A\. Asset Cost[^\d]*(\d{1,3}(?:,\d{3})*(?:\.\d{1,2})?)`)
	genAddrPrefixRe   = regexp.MustCompile(`(?i)^(?:Customer )?Address:?[ \t]*`)
	genNameSuffixRe   = regexp.MustCompile(`\s+Customer$`)
)

// extractGeneric is the fallback routine for documents with no recognized
// financier marker: plain "Label: value" scraping with pin-code bounded
// addresses.
func extractGeneric(text string) domain.ExtractionResult {
	res := domain.ExtractionResult{Financier: domain.FinancierGeneric}

	name := firstGroup(genCustomerRe, text)
	res.CustomerName = strings.TrimSpace(genNameSuffixRe.ReplaceAllString(name, ""))

	res.Manufacturer = firstGroup(genManufacturerRe, text)

	address := firstGroup(genAddressRe, text)
	// A doubled label ("Customer Address: Address: ...") shows up in some
	// templates; drop the repeated prefix.
	res.CustomerAddress = strings.TrimSpace(genAddrPrefixRe.ReplaceAllString(address, ""))

	res.AssetCategory = normalizeCategory(firstGroup(genCategoryRe, text))
	res.Model = normalizeModel(firstGroup(genModelRe, text))
	res.IMEISerialNumber = firstGroup(genSerialRe, text)

	if raw := firstGroup(genCostRe, text); raw != "" {
		res.AssetCost = parseAmount(raw)
	}

	return res
}
