package format

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Fixed renders value rounded half away from zero to places decimals (e.g., "0.3142").
// Non-finite values are rendered as "NaN", "+Inf" or "-Inf".
func Fixed(value float64, places int32) string {
	if s, ok := nonFinite(value); ok {
		return s
	}
	return decimal.NewFromFloat(value).StringFixed(places)
}

// Grouped renders value like Fixed but with thousands separators (e.g., "-1,234.5000").
func Grouped(value float64, places int32) string {
	if s, ok := nonFinite(value); ok {
		return s
	}
	d := decimal.NewFromFloat(value)
	sign := ""
	if d.IsNegative() && !d.Round(places).IsZero() {
		sign = "-"
	}
	return sign + groupDigits(d.Abs().StringFixed(places))
}

func groupDigits(formatted string) string {
	intPart, decPart, hasDec := strings.Cut(formatted, ".")

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	if !hasDec {
		return intPart
	}
	return intPart + "." + decPart
}

func nonFinite(value float64) (string, bool) {
	switch {
	case math.IsNaN(value):
		return "NaN", true
	case math.IsInf(value, 1):
		return "+Inf", true
	case math.IsInf(value, -1):
		return "-Inf", true
	}
	return "", false
}
