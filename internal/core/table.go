package core

import (
	"fmt"
	"log/slog"
	"strconv"
)

// DefaultEmptyMessage is shown when a table has no rows.
const DefaultEmptyMessage = "No data available"

// TableState indicates which of the three table presentations applies.
type TableState string

const (
	StateLoading TableState = "loading"
	StateEmpty   TableState = "empty"
	StateRows    TableState = "rows"
)

// TableOptions controls a single render pass.
type TableOptions struct {
	IsLoading    bool
	EmptyMessage string // Defaults to DefaultEmptyMessage

	// OnRowClick is invoked with each entity and returns the target the row
	// navigates to when clicked. An empty result leaves the row inert.
	OnRowClick func(Entity) string

	// Logger receives cell isolation warnings. Defaults to slog.Default().
	Logger *slog.Logger
}

// Header is one rendered column heading.
type Header struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	ClassName string `json:"className,omitempty"`
}

// Row is one rendered entity.
type Row struct {
	Key    string `json:"key"`
	Link   string `json:"link,omitempty"`
	Cells  []Cell `json:"cells"`
	Entity Entity `json:"-"`
}

// Table is the render-ready output of RenderTable.
type Table struct {
	State        TableState `json:"state"`
	EmptyMessage string     `json:"emptyMessage,omitempty"`
	Headers      []Header   `json:"headers"`
	Rows         []Row      `json:"rows"`
	Failures     int        `json:"failures"` // Cells that fell back to the raw value
}

// RenderTable renders data as rows using the given columns.
//
// columns may be a ColumnSet or []Column and data any decoded collection;
// other inputs are treated as empty. Every cell is evaluated behind its own
// failure boundary: a failing renderer degrades that cell to the raw field
// value and leaves the rest of the table intact.
func RenderTable(columns any, data any, opts TableOptions) Table {
	cols := normalizeColumns(columns)
	rows := NormalizeCollection(data)

	table := Table{
		Headers: make([]Header, len(cols)),
		Rows:    []Row{},
	}
	for i, c := range cols {
		table.Headers[i] = Header{Key: c.Key, Label: c.Header, ClassName: c.ClassName}
	}

	if opts.IsLoading {
		table.State = StateLoading
		return table
	}

	if len(rows) == 0 {
		table.State = StateEmpty
		table.EmptyMessage = opts.EmptyMessage
		if table.EmptyMessage == "" {
			table.EmptyMessage = DefaultEmptyMessage
		}
		return table
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	table.State = StateRows
	table.Rows = make([]Row, len(rows))
	for i, entity := range rows {
		row := Row{
			Key:    rowKey(entity, i),
			Entity: entity,
			Cells:  make([]Cell, len(cols)),
		}
		if opts.OnRowClick != nil {
			row.Link = opts.OnRowClick(entity)
		}

		for j, col := range cols {
			cell, err := EvaluateCell(col, entity)
			if err != nil {
				logger.Warn("column render failed, showing raw value",
					"column", col.Key,
					"row", row.Key,
					"error", err,
				)
				cell = DefaultCell(entity, col.Key)
				table.Failures++
			}
			row.Cells[j] = cell
		}
		table.Rows[i] = row
	}

	return table
}

// EvaluateCell computes one cell, converting a renderer panic into an error.
// Columns without a renderer always succeed with the default cell.
func EvaluateCell(col Column, e Entity) (cell Cell, err error) {
	if col.Render == nil {
		return DefaultCell(e, col.Key), nil
	}

	defer func() {
		if r := recover(); r != nil {
			cell = Cell{}
			err = fmt.Errorf("render %q: panic: %v", col.Key, r)
		}
	}()

	cell, err = col.Render(e)
	if err != nil {
		return Cell{}, fmt.Errorf("render %q: %w", col.Key, err)
	}
	if cell.Kind == "" {
		cell.Kind = CellText
	}
	return cell, nil
}

// rowKey returns the entity id, or the positional index within this pass.
func rowKey(e Entity, index int) string {
	if v, ok := e.Get("id"); ok {
		if s, ok := scalarString(v); ok && s != "" {
			return s
		}
	}
	return strconv.Itoa(index)
}

// normalizeColumns accepts the column shapes callers pass.
func normalizeColumns(columns any) ColumnSet {
	switch c := columns.(type) {
	case ColumnSet:
		return c
	case []Column:
		return ColumnSet(c)
	default:
		return ColumnSet{}
	}
}
