package extractor

import (
	"regexp"

	"finvoice/internal/domain"
)

var (
	bajajCustomerRe = regexp.MustCompile(`(?i)Customer Name\s*:?\s*([A-Za-z]+(?:[ \t]+[A-Za-z]+){0,3})`)
	bajajBrandRe    = regexp.MustCompile(`(?i)(?:Manufacturer|Brand)\s*:?\s*(\S+)`)
	bajajCategoryRe = regexp.MustCompile(`(?i)Asset Category\s*:?\s*([A-Za-z\s]+?)\s*(?:Manufacturer|Brand|Model|Serial|Total Asset Cost|$)`)
	bajajModelRe    = regexp.MustCompile(`(?i)Model\s*(?:No|Number)?\.?\s*:?\s*([^\n\r]+?)\s*(?:Serial|IMEI|Total Asset Cost|EMI|[\n\r]|$)`)
	bajajSerialRe   = regexp.MustCompile(`(?i)(?:IMEI|Serial)\s*(?:No|Number)\.?\s*:?\s*([^\s]+)`)
	bajajAddrLabel  = regexp.MustCompile(`(?i)Customer Address\s*:?`)
)

// extractBajaj handles Bajaj Finserv EMI approval letters.
func extractBajaj(text string) domain.ExtractionResult {
	res := domain.ExtractionResult{
		Financier:    domain.FinancierBajaj,
		BajajFinance: true,
	}

	res.CustomerName = firstGroup(bajajCustomerRe, text)
	res.Manufacturer = firstGroup(bajajBrandRe, text)

	category := firstGroup(bajajCategoryRe, text)
	if category == "" {
		category = between(text, "Asset Category", "Model")
	}
	res.AssetCategory = normalizeCategory(category)

	res.Model = normalizeModel(firstGroup(bajajModelRe, text))
	res.IMEISerialNumber = firstGroup(bajajSerialRe, text)
	res.CustomerAddress = addressUntil(text, bajajAddrLabel)

	res.AssetCost = amountAfter(text, "Total Asset Cost")
	if res.AssetCost == 0 {
		res.AssetCost = amountAfter(text, "Asset Cost")
	}

	return res
}
