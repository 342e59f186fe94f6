package pages

import (
	"strconv"
	"strings"

	"github.com/JonMunkholm/civicdash/internal/core"
)

// Stat card variants.
const (
	variantPrimary     = "primary"
	variantAccent      = "accent"
	variantSuccess     = "success"
	variantWarning     = "warning"
	variantDestructive = "destructive"
	variantInfo        = "info"
)

func itoa(n int) string {
	return strconv.Itoa(n)
}

// plain renders a number the way it arrived, without scaling.
func plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// textOr returns the field's text, or fallback when it is missing or empty.
func textOr(e core.Entity, key, fallback string) string {
	if s, ok := e.String(key); ok && s != "" {
		return s
	}
	return fallback
}

// statusOr classifies the lower-cased field, or fallback when it is missing.
func statusOr(e core.Entity, key, fallback string) *core.Status {
	s := core.ClassifyStatus(strings.ToLower(textOr(e, key, fallback)))
	return &s
}

func intPtr(n int) *int {
	return &n
}
