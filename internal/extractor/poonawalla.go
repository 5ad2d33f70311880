package extractor

import (
	"regexp"

	"finvoice/internal/domain"
)

var (
	poonCustomerRe = regexp.MustCompile(`(?i)Customer Name\s*:?\s*([A-Za-z]+(?:[ \t]+[A-Za-z]+){0,3})`)
	poonBrandRe    = regexp.MustCompile(`(?i)(?:Brand|Make)\s*:?\s*(\S+)`)
	poonCategoryRe = regexp.MustCompile(`(?i)Product Category\s*:?\s*([A-Za-z\s]+?)\s*(?:Brand|Make|Model|Serial|Product Cost|$)`)
	poonModelRe    = regexp.MustCompile(`(?i)Model\s*:?\s*([^\n\r]+?)\s*(?:Serial|IMEI|Product Cost|[\n\r]|$)`)
	poonSerialRe   = regexp.MustCompile(`(?i)(?:IMEI|Serial)\s*(?:No|Number)\.?\s*:?\s*([^\s]+)`)
	poonAddrLabel  = regexp.MustCompile(`(?i)(?:Customer|Delivery) Address\s*:?`)
)

// extractPoonawalla handles Poonawalla Fincorp sanction letters. The template
// labels the asset as "Product" rather than "Asset", hence the category and
// cost anchors.
func extractPoonawalla(text string) domain.ExtractionResult {
	res := domain.ExtractionResult{
		Financier:         domain.FinancierPoonawalla,
		PoonawallaFinance: true,
	}

	res.CustomerName = firstGroup(poonCustomerRe, text)
	res.Manufacturer = firstGroup(poonBrandRe, text)

	category := firstGroup(poonCategoryRe, text)
	if category == "" {
		category = between(text, "Product Category", "Model")
	}
	res.AssetCategory = normalizeCategory(category)

	res.Model = normalizeModel(firstGroup(poonModelRe, text))
	res.IMEISerialNumber = firstGroup(poonSerialRe, text)
	res.CustomerAddress = addressUntil(text, poonAddrLabel)

	res.AssetCost = amountAfter(text, "Product Cost")
	if res.AssetCost == 0 {
		res.AssetCost = amountAfter(text, "Asset Cost")
	}

	return res
}
