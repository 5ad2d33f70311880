// Package extractor turns the raw text of a financier approval letter into a
// flat field set. Each known financier has its own extraction routine built
// from anchored rules; a generic routine covers unrecognized layouts. The
// package is pure: no I/O, no panics, and every field independently defaults
// to its zero value when no rule matches.
package extractor

import (
	"strings"

	"finvoice/internal/domain"
)

// financierMarker pairs a financier with the phrases that identify its
// template. Markers are checked in declaration order; the first hit wins.
type financierMarker struct {
	financier domain.Financier
	phrases   []string
	foldCase  bool
}

var markers = []financierMarker{
	{financier: domain.FinancierHDB, phrases: []string{"HDB FINANCIAL SERVICES"}},
	{financier: domain.FinancierIDFC, phrases: []string{"IDFC FIRST Bank"}},
	{financier: domain.FinancierChola, phrases: []string{"CHOLA", "Chola"}},
	{financier: domain.FinancierTVS, phrases: []string{"TVS CREDIT"}, foldCase: true},
	{financier: domain.FinancierBajaj, phrases: []string{"BAJAJ", "Bajaj"}},
	{financier: domain.FinancierPoonawalla, phrases: []string{"POONAWALLA", "Poonawalla"}},
}

// Classify scans rawText for financier marker phrases in priority order and
// returns the matching financier, or FinancierGeneric when none match.
func Classify(rawText string) domain.Financier {
	lower := strings.ToLower(rawText)
	for _, m := range markers {
		for _, p := range m.phrases {
			if m.foldCase {
				if strings.Contains(lower, strings.ToLower(p)) {
					return m.financier
				}
			} else if strings.Contains(rawText, p) {
				return m.financier
			}
		}
	}
	return domain.FinancierGeneric
}

// Extract classifies rawText and applies the matching financier routine.
// Routines are mutually exclusive branches; exactly one runs per document.
func Extract(rawText string) domain.ExtractionResult {
	switch Classify(rawText) {
	case domain.FinancierHDB:
		return extractHDB(rawText)
	case domain.FinancierIDFC:
		return extractIDFC(rawText)
	case domain.FinancierChola:
		return extractChola(rawText)
	case domain.FinancierTVS:
		return extractTVS(rawText)
	case domain.FinancierBajaj:
		return extractBajaj(rawText)
	case domain.FinancierPoonawalla:
		return extractPoonawalla(rawText)
	default:
		return extractGeneric(rawText)
	}
}
