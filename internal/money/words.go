// Package money holds the shared currency helpers: the Indian-numbering
// amount-in-words converter and the en-IN digit-grouping formatter. Both the
// assembly path and the document renderer use this package, so a stored bill
// and its preview can never disagree.
package money

import (
	"math"
	"strings"
)

var (
	ones  = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}
	teens = []string{"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
	tens  = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
)

// ToWords spells out a rupee amount in the Indian numbering system
// (crore/lakh/thousand), with a paise clause when the fractional part is
// non-zero. Zero yields "Zero Rupees Only"; negative or non-finite input
// yields the empty string.
func ToWords(amount float64) string {
	if amount == 0 {
		return "Zero Rupees Only"
	}
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return ""
	}

	totalPaise := int64(math.Round(amount * 100))
	rupees := totalPaise / 100
	paise := int(totalPaise % 100)

	var parts []string
	appendUnit := func(n int64, singular, plural string) {
		if n == 0 {
			return
		}
		unit := plural
		if n == 1 {
			unit = singular
		}
		parts = append(parts, belowThousand(int(n))+" "+unit)
	}

	crores := rupees / 10_000_000
	rupees %= 10_000_000
	appendUnit(crores, "Crore", "Crores")

	lakhs := rupees / 100_000
	rupees %= 100_000
	appendUnit(lakhs, "Lakh", "Lakhs")

	thousands := rupees / 1_000
	rupees %= 1_000
	appendUnit(thousands, "Thousand", "Thousands")

	if rupees > 0 {
		parts = append(parts, belowThousand(int(rupees)))
	}

	rupeesPart := strings.Join(parts, " ")
	if rupeesPart != "" {
		rupeesPart += " Rupees"
	}

	paisePart := ""
	if paise > 0 {
		paisePart = belowThousand(paise) + " Paise"
	}

	switch {
	case rupeesPart != "" && paisePart != "":
		return rupeesPart + " And " + paisePart
	case rupeesPart != "":
		return rupeesPart + " Only"
	case paisePart != "":
		return paisePart + " Only"
	default:
		return "Zero Rupees Only"
	}
}

// belowThousand renders 0-999 with the "Hundred And" joiner for the 100s
// case.
func belowThousand(n int) string {
	if n <= 0 || n > 999 {
		return ""
	}
	if n < 100 {
		return belowHundred(n)
	}
	h := ones[n/100] + " Hundred"
	if rem := n % 100; rem > 0 {
		return h + " And " + belowHundred(rem)
	}
	return h
}

func belowHundred(n int) string {
	switch {
	case n < 10:
		return ones[n]
	case n < 20:
		return teens[n-10]
	default:
		s := tens[n/10]
		if n%10 > 0 {
			s += " " + ones[n%10]
		}
		return s
	}
}
