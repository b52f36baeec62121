// Package format renders market figures the way the dashboard displays them.
package format

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var (
	billion = decimal.NewFromInt(1_000_000_000)
	million = decimal.NewFromInt(1_000_000)
)

// Currency formats a USD amount: $1,234.57
func Currency(v decimal.Decimal) string {
	sign := ""
	if v.IsNegative() {
		sign = "-"
		v = v.Abs()
	}
	return sign + "$" + groupThousands(v.StringFixed(2))
}

// Percentage formats a percent value with two decimals: -3.46%
func Percentage(v decimal.Decimal) string {
	return v.StringFixed(2) + "%"
}

// LargeNumber abbreviates market caps and volumes.
// Values from one billion up render as $X.YB, smaller ones as whole millions.
func LargeNumber(v decimal.Decimal) string {
	if v.GreaterThanOrEqual(billion) {
		return "$" + v.Div(billion).StringFixed(1) + "B"
	}
	return "$" + v.Div(million).StringFixed(0) + "M"
}

// Count formats an integer with thousands separators
func Count(n int64) string {
	return humanize.Comma(n)
}

// Amount formats a decimal with thousands separators, trimming trailing zeros
func Amount(v decimal.Decimal) string {
	sign := ""
	if v.IsNegative() {
		sign = "-"
		v = v.Abs()
	}
	return sign + groupThousands(v.String())
}

// groupThousands inserts separators into the integer part of a plain
// decimal string ("1234567.89" -> "1,234,567.89")
func groupThousands(s string) string {
	intPart, frac, hasFrac := strings.Cut(s, ".")
	n, err := decimal.NewFromString(intPart)
	if err != nil || !n.IsInteger() {
		return s
	}
	out := humanize.BigComma(n.BigInt())
	if hasFrac {
		out += "." + frac
	}
	return out
}
