package money

import (
	"fmt"
	"math"
	"strconv"
)

// FormatINR formats an amount with Indian digit grouping ("12,34,567.89"):
// the last three integer digits form one group, every two digits after that
// form another. Paise are printed only when non-zero.
func FormatINR(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return ""
	}

	neg := amount < 0
	totalPaise := int64(math.Round(math.Abs(amount) * 100))
	rupees := totalPaise / 100
	paise := totalPaise % 100

	grouped := groupIndian(strconv.FormatInt(rupees, 10))
	if neg {
		grouped = "-" + grouped
	}
	if paise > 0 {
		return fmt.Sprintf("%s.%02d", grouped, paise)
	}
	return grouped
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	groups = append(groups, tail)

	out := groups[0]
	for _, g := range groups[1:] {
		out += "," + g
	}
	return out
}
