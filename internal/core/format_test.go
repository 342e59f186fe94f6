package core

import (
	"testing"
	"time"
)

func TestFormatCount(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0, "0"},
		{999, "999"},
		{12.5, "12.5"},
		{1000, "1.0K"},
		{1500, "1.5K"},
		{12345, "12.3K"},
		{999999, "1000.0K"},
		{1_000_000, "1.0M"},
		{2_500_000, "2.5M"},
	}

	for _, tt := range tests {
		if got := FormatCount(tt.input); got != tt.want {
			t.Errorf("FormatCount(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0, "₹0"},
		{50000, "₹50000"},
		{99999.6, "₹100000"},
		{100000, "₹1.0 L"},
		{150000, "₹1.5 L"},
		{9_990_000, "₹99.9 L"},
		{10_000_000, "₹1.0 Cr"},
		{25_000_000, "₹2.5 Cr"},
	}

	for _, tt := range tests {
		if got := FormatCurrency(tt.input); got != tt.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFixedScaleFormats(t *testing.T) {
	if got := FormatLakh(50000); got != "₹0.5 L" {
		t.Errorf("FormatLakh(50000) = %q, want %q", got, "₹0.5 L")
	}
	if got := FormatLakh(0); got != "₹0.0 L" {
		t.Errorf("FormatLakh(0) = %q, want %q", got, "₹0.0 L")
	}
	if got := FormatThousands(2500); got != "2.5K" {
		t.Errorf("FormatThousands(2500) = %q, want %q", got, "2.5K")
	}
	if got := FormatThousands(120); got != "0.1K" {
		t.Errorf("FormatThousands(120) = %q, want %q", got, "0.1K")
	}
	if got := FormatUnit(42.25, 1, "km"); got != "42.2 km" && got != "42.3 km" {
		t.Errorf("FormatUnit(42.25) = %q, want 42.2 km or 42.3 km", got)
	}
	if got := FormatUnit(10, 1, "km"); got != "10.0 km" {
		t.Errorf("FormatUnit(10) = %q, want %q", got, "10.0 km")
	}
}

func TestFormatGrouped(t *testing.T) {
	tests := []struct {
		input int64
		want  string
	}{
		{0, "0"},
		{999, "999"},
		{1234, "1,234"},
		{1234567, "1,234,567"},
	}

	for _, tt := range tests {
		if got := FormatGrouped(tt.input); got != tt.want {
			t.Errorf("FormatGrouped(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input any
		want  string
	}{
		{name: "just now", input: "2024-06-01T12:00:00Z", want: "0 min ago"},
		{name: "minutes", input: "2024-06-01T11:15:30Z", want: "44 min ago"},
		{name: "one hour", input: "2024-06-01T10:59:00Z", want: "1 hour ago"},
		{name: "hours", input: "2024-06-01T02:00:00Z", want: "10 hours ago"},
		{name: "one day", input: "2024-05-31T11:00:00Z", want: "1 day ago"},
		{name: "days", input: "2024-05-20T12:00:00Z", want: "12 days ago"},
		{name: "future clamps", input: "2024-06-02T12:00:00Z", want: "0 min ago"},
		{name: "invalid", input: "soon", want: "N/A"},
		{name: "missing", input: nil, want: "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TimeAgo(tt.input, now); got != tt.want {
				t.Errorf("TimeAgo(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
