// Package charts renders analytics series as terminal graphics. Every
// chart takes its value labels from a single Formatter instead of
// carrying its own formatting variant.
package charts

import "fmt"

// Formatter turns a chart value into its display label.
type Formatter func(v float64) string

// FormatTheta renders an ability value with two decimal places.
func FormatTheta(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// FormatPercent renders a 0-1 fraction as a percentage.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.0f%%", v*100)
}

// FormatCount renders an integral count.
func FormatCount(v float64) string {
	return fmt.Sprintf("%.0f", v)
}
