package analysis

import (
	"fmt"
	"math"
)

// FormatLargeNumber renders a dollar amount with a T/B/M/K suffix chosen
// by absolute magnitude, two decimals, sign preserved
func FormatLargeNumber(value *float64) *string {
	if value == nil {
		return nil
	}

	v := *value
	abs := math.Abs(v)

	var s string
	switch {
	case abs >= 1e12:
		s = fmt.Sprintf("$%.2fT", v/1e12)
	case abs >= 1e9:
		s = fmt.Sprintf("$%.2fB", v/1e9)
	case abs >= 1e6:
		s = fmt.Sprintf("$%.2fM", v/1e6)
	case abs >= 1e3:
		s = fmt.Sprintf("$%.2fK", v/1e3)
	default:
		s = fmt.Sprintf("$%.2f", v)
	}

	return &s
}

// ToPercent converts a fractional metric to percentage points rounded
// to two decimals
func ToPercent(value *float64) *float64 {
	if value == nil {
		return nil
	}

	percent := math.Round(*value*100*100) / 100
	return &percent
}

// FormatPriceTarget renders the analyst mean target with upside or
// downside relative to the current price. Positive changes carry an
// explicit "+". With no usable current price only the target is shown.
func FormatPriceTarget(target, price *float64) *string {
	if target == nil {
		return nil
	}

	if price != nil && *price > 0 {
		change := ((*target - *price) / *price) * 100
		sign := ""
		if change > 0 {
			sign = "+"
		}
		s := fmt.Sprintf("$%.2f (%s%.1f%%)", *target, sign, change)
		return &s
	}

	s := fmt.Sprintf("$%.2f", *target)
	return &s
}

// NetCash derives cash minus debt, formatted. Absent if either operand
// is missing — never coerced to zero.
func NetCash(totalCash, totalDebt *float64) *string {
	if totalCash == nil || totalDebt == nil {
		return nil
	}

	net := *totalCash - *totalDebt
	return FormatLargeNumber(&net)
}
