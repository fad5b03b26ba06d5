package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatPeso renders an amount as "₱1,234.00" for report lines.
func FormatPeso(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	fixed := amount.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	return fmt.Sprintf("%s₱%s.%s", sign, groupThousands(whole), frac)
}

// FormatPesoASCII is FormatPeso with a "PHP " prefix for outputs that cannot
// render the peso sign (core PDF fonts are cp1252).
func FormatPesoASCII(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	fixed := amount.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	return fmt.Sprintf("%sPHP %s.%s", sign, groupThousands(whole), frac)
}

// ParsePesoToDecimal parses "₱1,234.50", "PHP 1234.5" or plain numbers.
func ParsePesoToDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "₱")
	s = strings.TrimPrefix(strings.ToUpper(s), "PHP")
	replacer := strings.NewReplacer(",", "", " ", "")
	s = replacer.Replace(strings.TrimSpace(s))
	if s == "" {
		return decimal.Zero, fmt.Errorf("invalid peso amount")
	}
	return decimal.NewFromString(s)
}

func groupThousands(whole string) string {
	if len(whole) <= 3 {
		return whole
	}
	var out strings.Builder
	for i, c := range whole {
		if i != 0 && (len(whole)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String()
}

// FormatPercent renders a percentage share as "NN%" trimming a trailing
// ".00" so whole percentages stay compact in report lines.
func FormatPercent(pct decimal.Decimal) string {
	fixed := pct.StringFixed(2)
	fixed = strings.TrimSuffix(fixed, ".00")
	return fixed + "%"
}
