package core

import (
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencySymbol prefixes every currency value.
const CurrencySymbol = "₹"

// Magnitude thresholds for scaled formatting.
const (
	Thousand = 1_000
	Million  = 1_000_000
	Lakh     = 100_000
	Crore    = 10_000_000
)

// scale is one step of a piecewise magnitude format.
type scale struct {
	threshold float64
	format    string
}

// Ordered largest first; the first threshold met wins.
var (
	countScales = []scale{
		{Million, "%.1fM"},
		{Thousand, "%.1fK"},
	}
	currencyScales = []scale{
		{Crore, CurrencySymbol + "%.1f Cr"},
		{Lakh, CurrencySymbol + "%.1f L"},
	}
)

var groupedPrinter = message.NewPrinter(language.English)

// applyScale formats v with the largest matching scale.
func applyScale(v float64, scales []scale) (string, bool) {
	for _, s := range scales {
		if v >= s.threshold {
			return fmt.Sprintf(s.format, v/s.threshold), true
		}
	}
	return "", false
}

// FormatCount renders a magnitude as 999, 1.5K or 2.5M.
func FormatCount(v float64) string {
	if s, ok := applyScale(v, countScales); ok {
		return s
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatCurrency renders an amount in rupees using the Lakh/Crore convention.
// Amounts below one lakh are rounded to whole rupees.
func FormatCurrency(v float64) string {
	if s, ok := applyScale(v, currencyScales); ok {
		return s
	}
	return fmt.Sprintf(CurrencySymbol+"%.0f", v)
}

// FormatLakh renders an amount in lakh regardless of magnitude.
func FormatLakh(v float64) string {
	return fmt.Sprintf(CurrencySymbol+"%.1f L", v/Lakh)
}

// FormatThousands renders a magnitude in thousands regardless of size.
func FormatThousands(v float64) string {
	return fmt.Sprintf("%.1fK", v/Thousand)
}

// FormatGrouped renders an integer with digit grouping (12,345).
func FormatGrouped(n int64) string {
	return groupedPrinter.Sprintf("%d", n)
}

// FormatUnit renders v with fixed decimals followed by a unit.
func FormatUnit(v float64, places int, unit string) string {
	return strconv.FormatFloat(v, 'f', places, 64) + " " + unit
}

// TimeAgo renders the time elapsed since ts.
// Returns the placeholder when ts is not a valid timestamp.
func TimeAgo(ts any, now time.Time) string {
	t, ok := ToSafeDate(ts)
	if !ok {
		return Placeholder
	}

	elapsed := now.Sub(t)
	if elapsed < 0 {
		elapsed = 0
	}

	mins := int64(elapsed / time.Minute)
	hours := int64(elapsed / time.Hour)
	days := int64(elapsed / (24 * time.Hour))

	switch {
	case mins < 60:
		return fmt.Sprintf("%d min ago", mins)
	case hours < 24:
		return fmt.Sprintf("%d %s ago", hours, plural(hours, "hour"))
	default:
		return fmt.Sprintf("%d %s ago", days, plural(days, "day"))
	}
}

func plural(n int64, unit string) string {
	if n > 1 {
		return unit + "s"
	}
	return unit
}
