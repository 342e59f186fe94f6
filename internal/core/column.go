package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicateColumn is returned when two columns in a set share a key.
	ErrDuplicateColumn = errors.New("duplicate column key")

	// ErrEmptyColumnKey is returned for a column without a key.
	ErrEmptyColumnKey = errors.New("empty column key")
)

// CellKind selects how a cell is presented.
type CellKind string

const (
	CellText    CellKind = "text"
	CellBadge   CellKind = "badge"
	CellSnippet CellKind = "snippet" // Single line, clamped
	CellAction  CellKind = "action"  // Nested control; must not trigger the row click
)

// Cell is one render-ready table cell.
type Cell struct {
	Kind    CellKind `json:"kind"`
	Text    string   `json:"text"`
	Status  *Status  `json:"status,omitempty"`
	Href    string   `json:"href,omitempty"`
	Method  string   `json:"method,omitempty"`
	Confirm string   `json:"confirm,omitempty"`
	Class   string   `json:"class,omitempty"`
}

// TextCell returns a plain text cell.
func TextCell(text string) Cell {
	return Cell{Kind: CellText, Text: text}
}

// SnippetCell returns a single-line clamped text cell.
func SnippetCell(text string) Cell {
	return Cell{Kind: CellSnippet, Text: text}
}

// BadgeCell returns a status badge for the given status text.
func BadgeCell(status string) Cell {
	s := ClassifyStatus(status)
	return Cell{Kind: CellBadge, Text: s.Label, Status: &s}
}

// ActionCell returns an interactive control targeting href with method.
// confirm, when set, is shown to the user before the request is issued.
func ActionCell(label, method, href, confirm string) Cell {
	return Cell{Kind: CellAction, Text: label, Method: method, Href: href, Confirm: confirm}
}

// RenderFunc computes a cell from an entity.
// It must be free of side effects. A returned error or a panic makes the
// renderer fall back to the raw field value.
type RenderFunc func(e Entity) (Cell, error)

// Column declares how one field is shown across all rows of a table.
type Column struct {
	Key       string     // Field name, unique within a set
	Header    string     // Column heading
	Render    RenderFunc // Optional; default shows the raw field
	ClassName string     // Optional style hint
}

// ColumnSet is an ordered set of columns for one entity shape.
type ColumnSet []Column

// NewColumnSet validates and returns a column set.
func NewColumnSet(cols ...Column) (ColumnSet, error) {
	seen := make(map[string]bool, len(cols))
	for i, c := range cols {
		key := strings.TrimSpace(c.Key)
		if key == "" {
			return nil, fmt.Errorf("column %d: %w", i, ErrEmptyColumnKey)
		}
		if seen[key] {
			return nil, fmt.Errorf("column %q: %w", key, ErrDuplicateColumn)
		}
		seen[key] = true
	}
	return ColumnSet(cols), nil
}

// MustColumns is like NewColumnSet but panics on an invalid set.
// Use for column sets declared at package level.
func MustColumns(cols ...Column) ColumnSet {
	set, err := NewColumnSet(cols...)
	if err != nil {
		panic(fmt.Sprintf("invalid column set: %v", err))
	}
	return set
}

// Keys returns the column keys in order.
func (s ColumnSet) Keys() []string {
	keys := make([]string, len(s))
	for i, c := range s {
		keys[i] = c.Key
	}
	return keys
}

// DefaultCell is the cell shown when a column has no renderer.
func DefaultCell(e Entity, key string) Cell {
	v, _ := e.Get(key)
	return TextCell(DisplayValue(v))
}

// ----------------------------------------------------------------------------
// Column builders
// ----------------------------------------------------------------------------

// Decimal shows a numeric field with fixed decimal places.
func Decimal(key, header string, places int, placeholder string) Column {
	return Column{
		Key:    key,
		Header: header,
		Render: func(e Entity) (Cell, error) {
			v, ok := e.Get(key)
			if !ok {
				return TextCell(placeholder), nil
			}
			return TextCell(FormatDecimal(v, places, placeholder)), nil
		},
	}
}

// Currency shows a numeric field as rupees with two decimal places.
func Currency(key, header string) Column {
	return Column{
		Key:    key,
		Header: header,
		Render: func(e Entity) (Cell, error) {
			v, _ := e.Get(key)
			return TextCell(CurrencySymbol + FormatDecimal(v, 2, "0.00")), nil
		},
	}
}

// Date shows a timestamp field as a calendar date.
func Date(key, header string) Column {
	return Column{
		Key:    key,
		Header: header,
		Render: func(e Entity) (Cell, error) {
			v, _ := e.Get(key)
			return TextCell(FormatDate(v, Placeholder)), nil
		},
	}
}

// DateTime shows a timestamp field with its time of day.
func DateTime(key, header string) Column {
	return Column{
		Key:    key,
		Header: header,
		Render: func(e Entity) (Cell, error) {
			v, _ := e.Get(key)
			return TextCell(FormatDateTime(v, Placeholder)), nil
		},
	}
}

// StatusBadge shows a status field as a lower-cased badge.
// fallback is used when the field is missing or empty.
func StatusBadge(key, header, fallback string) Column {
	return Column{
		Key:    key,
		Header: header,
		Render: func(e Entity) (Cell, error) {
			s, ok := e.String(key)
			if !ok || s == "" {
				return BadgeCell(fallback), nil
			}
			return BadgeCell(strings.ToLower(s)), nil
		},
	}
}

// FlagBadge shows a boolean-ish field as an active/inactive badge.
// In strict mode only true and 1 count as active; otherwise any truthy value does.
func FlagBadge(key, header string, strict bool) Column {
	return Column{
		Key:    key,
		Header: header,
		Render: func(e Entity) (Cell, error) {
			v, _ := e.Get(key)
			active := IsTruthy(v)
			if strict {
				active = IsFlagSet(v)
			}
			if active {
				return BadgeCell("active"), nil
			}
			return BadgeCell("inactive"), nil
		},
	}
}

// Snippet shows a long text field clamped to one line.
func Snippet(key, header string) Column {
	return Column{
		Key:    key,
		Header: header,
		Render: func(e Entity) (Cell, error) {
			s, ok := e.String(key)
			if !ok || s == "" {
				return SnippetCell(Placeholder), nil
			}
			return SnippetCell(s), nil
		},
	}
}
