package extractor

import (
	"regexp"
	"strconv"
	"strings"
)

// firstGroup returns the first capture group of re in text, trimmed, or ""
// when the pattern does not match.
func firstGroup(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// between returns the trimmed substring between the end of the start anchor
// and the next occurrence of the end anchor. Empty when either anchor is
// missing or the anchors are out of order.
func between(text, start, end string) string {
	s := strings.Index(text, start)
	if s == -1 {
		return ""
	}
	from := s + len(start)
	e := strings.Index(text[from:], end)
	if e == -1 {
		return ""
	}
	return strings.TrimSpace(text[from : from+e])
}

// betweenEarliest returns the trimmed substring between the start anchor and
// the earliest of the given end anchors. When no end anchor occurs after
// start, the rest of the text is returned.
func betweenEarliest(text, start string, ends ...string) string {
	s := strings.Index(text, start)
	if s == -1 {
		return ""
	}
	from := s + len(start)
	rest := text[from:]
	cut := len(rest)
	for _, end := range ends {
		if i := strings.Index(rest, end); i != -1 && i < cut {
			cut = i
		}
	}
	return strings.TrimSpace(rest[:cut])
}

// amountAfter scans forward from the first occurrence of label, skips to the
// first digit, and reads a comma/decimal number. Returns 0 when the label or
// a number is missing.
func amountAfter(text, label string) float64 {
	idx := strings.Index(text, label)
	if idx == -1 {
		return 0
	}
	i := idx + len(label)
	for i < len(text) && (text[i] < '0' || text[i] > '9') {
		i++
	}
	var b strings.Builder
	for i < len(text) {
		c := text[i]
		if (c >= '0' && c <= '9') || c == ',' || c == '.' {
			b.WriteByte(c)
			i++
			continue
		}
		break
	}
	return parseAmount(b.String())
}

// parseAmount parses a formatted rupee amount ("1,23,456.78") into a float.
// Malformed input yields 0, never an error.
func parseAmount(s string) float64 {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(strings.TrimSpace(s), ".")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// Address terminators, tried in order; the earliest occurring one bounds the
// captured address.
var addressTerminators = []string{"Thanking you", "Contact", "\n\n"}

// addressUntil takes everything after the first occurrence of the labelRe
// match up to the earliest address terminator, or end of text.
func addressUntil(text string, labelRe *regexp.Regexp) string {
	loc := labelRe.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	rest := text[loc[1]:]
	cut := len(rest)
	for _, term := range addressTerminators {
		if i := indexFold(rest, term); i != -1 && i < cut {
			cut = i
		}
	}
	return strings.TrimSpace(rest[:cut])
}

func indexFold(s, substr string) int {
	return strings.Index(strings.ToLower(s), strings.ToLower(substr))
}

const (
	maxCategoryLen = 20
	maxModelLen    = 30
)

// TruncateCategory cuts an overlong asset category down to its first two
// words. A capture past the length cap means the next field's label bled
// into the match. Exported so bill assembly can re-apply the rule to records
// that did not pass through the extractor.
func TruncateCategory(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxCategoryLen {
		words := strings.Fields(s)
		if len(words) > 2 {
			words = words[:2]
		}
		s = strings.Join(words, " ")
	}
	return s
}

// TruncateModel is the model counterpart: first three words when overlong.
func TruncateModel(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxModelLen {
		words := strings.Fields(s)
		if len(words) > 3 {
			words = words[:3]
		}
		s = strings.Join(words, " ")
	}
	return s
}

// normalizeCategory cleans label bleed-through out of an extracted asset
// category: a stray trailing 'D' left over from the adjacent "Model Number"
// label is stripped, then the overlong truncation applies.
func normalizeCategory(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "D") {
		s = strings.TrimSpace(s[:len(s)-1])
	}
	return TruncateCategory(s)
}

// normalizeModel is the model counterpart with a stray trailing 'E'.
func normalizeModel(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "E") {
		s = strings.TrimSpace(s[:len(s)-1])
	}
	return TruncateModel(s)
}
