// Package services provides the progress report pipeline: data assembly,
// pagination, document numbering and PDF/Excel rendering.
package services

import (
	"fmt"
	"math"
	"strings"
)

// Dash substitutes the em-dash placeholder for blank optional fields.
func Dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}

// FormatPercent renders a percentage value. Whole numbers are formatted
// without decimals; fractional values get 2 decimal places.
func FormatPercent(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f%%", v)
	}
	return fmt.Sprintf("%.2f%%", v)
}

// FormatWeight renders a weight value without the percent sign.
func FormatWeight(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

// Indent prefixes a name with two spaces per hierarchy level for display.
func Indent(name string, level int) string {
	return strings.Repeat("  ", level) + name
}
