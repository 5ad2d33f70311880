package extractor

import (
	"regexp"

	"finvoice/internal/domain"
)

var (
	cholaCustomerRe = regexp.MustCompile(`(?i)Customer Name\s*:?\s*([A-Za-z]+(?:[ \t]+[A-Za-z]+){0,3})`)
	cholaMakeRe     = regexp.MustCompile(`(?i)(?:Make|Brand)\s*:?\s*(\S+)`)
	cholaCategoryRe = regexp.MustCompile(`(?i)Asset Category\s*:?\s*([A-Za-z\s]+?)\s*(?:Make|Model|Serial|Asset Cost|$)`)
	cholaModelRe    = regexp.MustCompile(`(?i)Model\s*:?\s*([^\n\r]+?)\s*(?:Serial|IMEI|Asset Cost|[\n\r]|$)`)
	cholaSerialRe   = regexp.MustCompile(`(?i)(?:IMEI|Serial)\s*(?:No|Number)\.?\s*:?\s*([^\s]+)`)
	cholaAddrLabel  = regexp.MustCompile(`(?i)Customer Address\s*:?`)
)

// extractChola handles Cholamandalam approval letters: tabular "Label :
// value" pairs with the delivery address in a free-text block.
func extractChola(text string) domain.ExtractionResult {
	res := domain.ExtractionResult{Financier: domain.FinancierChola}

	res.CustomerName = firstGroup(cholaCustomerRe, text)
	res.Manufacturer = firstGroup(cholaMakeRe, text)

	category := firstGroup(cholaCategoryRe, text)
	if category == "" {
		category = between(text, "Asset Category", "Model")
	}
	res.AssetCategory = normalizeCategory(category)

	model := firstGroup(cholaModelRe, text)
	if model == "" {
		model = betweenEarliest(text, "Model", "Serial", "IMEI", "Asset Cost")
	}
	res.Model = normalizeModel(model)

	res.IMEISerialNumber = firstGroup(cholaSerialRe, text)
	res.CustomerAddress = addressUntil(text, cholaAddrLabel)

	res.AssetCost = amountAfter(text, "Asset Cost")
	if res.AssetCost == 0 {
		res.AssetCost = amountAfter(text, "Grand Total")
	}

	return res
}
