package extractor

import (
	"regexp"
	"strings"

	"finvoice/internal/domain"
)

// idfcNameTag is appended to extracted IDFC customer names so later stages
// can recognize an IDFC record without re-scanning the source text.
const idfcNameTag = " [IDFC FIRST BANK]"

// idfcAddressIntro is the fixed paragraph that precedes the delivery address
// block in IDFC approval letters.
const idfcAddressIntro = "The required formalities with the customer have been completed and hence we request you to collect the down payment and only deliver the product at the following address post device validation is completed and final DA is received."

var (
	idfcCustomerRe = regexp.MustCompile(`(?i)loan application of (.+?) has been approved for`)
	idfcCategoryRe = regexp.MustCompile(`(?i)Asset Category:?[ \t]*([A-Za-z\s]+?)\s*(?:D\s*Model Number|Model Number|Serial Number|Asset Cost|$)`)
	idfcModelRe    = regexp.MustCompile(`(?i)Model Number:?[ \t]*([^\n\r]+?)\s*(?:Scheme Name|Serial Number|Asset Category|Asset Cost|[\n\r]|$)`)
	idfcSerialRe   = regexp.MustCompile(`(?i)Serial Number:?[ \t]*([^ \t\n]+)`)
	idfcCostRe     = regexp.MustCompile(`(?i)Cost Of Product[\s:]*([\d,\.]+)`)
	idfcAddrLabel  = regexp.MustCompile(`(?i)Customer Address:?`)
)

// extractIDFC handles IDFC FIRST Bank approval letters. The letter renders
// field labels and values on one run of text, so adjacent labels routinely
// bleed into captures; the category and model rules carry cleanup and an
// index-scan fallback for when the anchored pattern misses.
func extractIDFC(text string) domain.ExtractionResult {
	res := domain.ExtractionResult{Financier: domain.FinancierIDFC}

	if name := firstGroup(idfcCustomerRe, text); name != "" {
		res.CustomerName = name + idfcNameTag
	}

	// Asset category: anchored rule first, raw scan between the literal
	// labels second. Either path strips bleed-through and overlong tails.
	category := firstGroup(idfcCategoryRe, text)
	if category == "" {
		category = between(text, "Asset Category", "Model Number")
	}
	res.AssetCategory = normalizeCategory(category)

	// The letter never names the manufacturer; left for operator review.
	res.Manufacturer = ""

	// The address block follows a fixed request paragraph. Bound it at the
	// earliest terminator phrase so sign-off boilerplate stays out.
	addrScope := text
	if i := strings.Index(text, idfcAddressIntro); i != -1 {
		addrScope = text[i:]
	}
	res.CustomerAddress = addressUntil(addrScope, idfcAddrLabel)

	model := firstGroup(idfcModelRe, text)
	if model == "" {
		model = idfcModelFallback(text)
	}
	res.Model = normalizeModel(model)

	res.IMEISerialNumber = firstGroup(idfcSerialRe, text)

	if raw := firstGroup(idfcCostRe, text); raw != "" {
		res.AssetCost = parseAmount(raw)
	}

	return res
}

// idfcModelFallback scans between the "Model Number" label and whichever of
// the next expected labels occurs first.
func idfcModelFallback(text string) string {
	start := strings.Index(text, "Model Number")
	if start == -1 {
		return ""
	}
	rest := text[start+len("Model Number"):]

	end := -1
	for _, label := range []string{"Scheme Name", "Serial Number"} {
		if i := strings.Index(rest, label); i != -1 && (end == -1 || i < end) {
			end = i
		}
	}
	if end == -1 {
		return ""
	}
	return strings.TrimSpace(rest[:end])
}
