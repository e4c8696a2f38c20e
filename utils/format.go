package utils

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Money renders an amount with two decimal places. Aggregation happens on
// unrounded floats; this is the only place figures are rounded.
func Money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Round2 rounds v to two decimal places, half away from zero.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
