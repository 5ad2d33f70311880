package extractor

import (
	"regexp"

	"finvoice/internal/domain"
)

var (
	tvsCustomerRe = regexp.MustCompile(`(?i)Customer Name\s*:?\s*([A-Za-z]+(?:[ \t]+[A-Za-z]+){0,3})`)
	tvsBrandRe    = regexp.MustCompile(`(?i)(?:Product Make|Brand)\s*:?\s*(\S+)`)
	tvsCategoryRe = regexp.MustCompile(`(?i)(?:Product|Asset) Category\s*:?\s*([A-Za-z\s]+?)\s*(?:Product Make|Brand|Model|Serial|Invoice Value|$)`)
	tvsModelRe    = regexp.MustCompile(`(?i)(?:Product )?Model\s*:?\s*([^\n\r]+?)\s*(?:Serial|IMEI|Invoice Value|Scheme|[\n\r]|$)`)
	tvsSerialRe   = regexp.MustCompile(`(?i)(?:IMEI\s*/\s*)?Serial\s*(?:No|Number)\.?\s*:?\s*([^\s]+)`)
	tvsAddrLabel  = regexp.MustCompile(`(?i)(?:Customer|Delivery) Address\s*:?`)
)

// extractTVS handles TVS Credit delivery advice notes.
func extractTVS(text string) domain.ExtractionResult {
	res := domain.ExtractionResult{
		Financier:  domain.FinancierTVS,
		TVSFinance: true,
	}

	res.CustomerName = firstGroup(tvsCustomerRe, text)
	res.Manufacturer = firstGroup(tvsBrandRe, text)
	res.AssetCategory = normalizeCategory(firstGroup(tvsCategoryRe, text))

	model := firstGroup(tvsModelRe, text)
	if model == "" {
		model = betweenEarliest(text, "Product Model", "Serial", "IMEI", "Invoice Value")
	}
	res.Model = normalizeModel(model)

	res.IMEISerialNumber = firstGroup(tvsSerialRe, text)
	res.CustomerAddress = addressUntil(text, tvsAddrLabel)

	res.AssetCost = amountAfter(text, "Invoice Value")
	if res.AssetCost == 0 {
		res.AssetCost = amountAfter(text, "Asset Cost")
	}

	return res
}
