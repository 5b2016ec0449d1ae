package utils

import (
	"fmt"
	"math"
	"strings"
)

// FormatINR formats a rupee value with Indian digit grouping.
// Example: 1234567.5 -> "₹12,34,567.50"
func FormatINR(amount float64) string {
	neg := amount < 0
	amount = math.Abs(amount)

	whole := int64(amount)
	paise := int64(math.Round((amount - float64(whole)) * 100))
	if paise == 100 {
		whole++
		paise = 0
	}

	digits := fmt.Sprintf("%d", whole)
	// Indian grouping: last three digits, then pairs.
	var groups []string
	if len(digits) > 3 {
		head := digits[:len(digits)-3]
		groups = append(groups, digits[len(digits)-3:])
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
	} else {
		groups = []string{digits}
	}

	out := fmt.Sprintf("₹%s.%02d", strings.Join(groups, ","), paise)
	if neg {
		return "-" + out
	}
	return out
}

// FormatLakh renders a rupee value in lakhs, the unit used on KPI strips.
// Example: 2350000 -> "₹23.5L"
func FormatLakh(amount float64) string {
	return fmt.Sprintf("₹%.1fL", amount/100000)
}
