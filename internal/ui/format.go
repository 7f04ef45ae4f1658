package ui

import "fmt"

// FormatGrams renders a weight in grams with two decimals, e.g. "30.00 g".
func FormatGrams(g float64) string {
	return fmt.Sprintf("%.2f g", g)
}

// FormatMoney renders a value in dollars with two decimals, e.g. "$20.00".
func FormatMoney(v float64) string {
	if v < 0 {
		return fmt.Sprintf("-$%.2f", -v)
	}
	return fmt.Sprintf("$%.2f", v)
}

// FormatOptionalGrams renders a weight or "-" when unknown.
func FormatOptionalGrams(g *float64) string {
	if g == nil {
		return "-"
	}
	return FormatGrams(*g)
}

// FormatOptionalMoney renders a price or "-" when unknown.
func FormatOptionalMoney(v *float64) string {
	if v == nil {
		return "-"
	}
	return FormatMoney(*v)
}
