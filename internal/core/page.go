package core

import (
	"log/slog"
	"time"
)

// Resource is one REST collection (or object) a page needs.
type Resource struct {
	Key    string // Dataset key: "complaints"
	Path   string // Backend path: "/complaints"
	Single bool   // Endpoint returns one object rather than a paged array
}

// Dataset holds the decoded bodies of the resources fetched for a page.
// Values are kept raw so the renderer performs its own normalization.
type Dataset struct {
	Values    map[string]any
	Errors    map[string]error
	FetchedAt time.Time // Reference time for relative timestamps
}

// NewDataset returns an empty dataset.
func NewDataset() Dataset {
	return Dataset{
		Values: make(map[string]any),
		Errors: make(map[string]error),
	}
}

// Set stores the decoded body for key.
func (d Dataset) Set(key string, v any) {
	d.Values[key] = v
}

// Fail records a fetch failure for key.
func (d Dataset) Fail(key string, err error) {
	d.Errors[key] = err
}

// Raw returns the decoded body for key, or nil.
func (d Dataset) Raw(key string) any {
	if d.Values == nil {
		return nil
	}
	return d.Values[key]
}

// Collection returns key normalized to a collection.
func (d Dataset) Collection(key string) Collection {
	return NormalizeCollection(d.Raw(key))
}

// Object returns key normalized to a single entity.
func (d Dataset) Object(key string) Entity {
	return NormalizeEntity(d.Raw(key))
}

// Now returns FetchedAt, or the current time when the dataset was built by hand.
func (d Dataset) Now() time.Time {
	if d.FetchedAt.IsZero() {
		return time.Now()
	}
	return d.FetchedAt
}

// Loaded reports whether key was fetched without error.
func (d Dataset) Loaded(key string) bool {
	if d.Values == nil {
		return false
	}
	_, ok := d.Values[key]
	return ok && d.Errors[key] == nil
}

// PageInfo contains display information about a page.
type PageInfo struct {
	Key      string `json:"key"`      // Unique identifier and route: "transport"
	Title    string `json:"title"`    // Header title: "Transport"
	Subtitle string `json:"subtitle"` // Header subtitle
	Order    int    `json:"order"`    // Sidebar position
	Icon     string `json:"icon"`     // Sidebar glyph
}

// StatCard is one summary statistic shown above a page's tables.
type StatCard struct {
	Title    string `json:"title"`
	Value    string `json:"value"`
	Subtitle string `json:"subtitle,omitempty"`
	Variant  string `json:"variant"` // default, primary, accent, success, warning, destructive, info
}

// PanelItem is one entry of a summary panel.
type PanelItem struct {
	Title   string  `json:"title"`
	Detail  string  `json:"detail,omitempty"`
	Status  *Status `json:"status,omitempty"`
	Meta    string  `json:"meta,omitempty"`
	Count   *int    `json:"count,omitempty"`
	Variant string  `json:"variant,omitempty"`
}

// Panel is a titled list shown alongside the stat cards.
type Panel struct {
	Title        string      `json:"title"`
	EmptyMessage string      `json:"emptyMessage,omitempty"`
	Items        []PanelItem `json:"items"`
}

// PageDefinition contains everything needed to render a page summary.
type PageDefinition struct {
	Info      PageInfo
	Resources []Resource

	// Summarize computes the page's stat cards. It must be pure.
	Summarize func(Dataset) []StatCard

	// Panels computes optional summary lists. It must be pure.
	Panels func(Dataset) []Panel
}

// ViewInfo contains display information about a table view.
type ViewInfo struct {
	Key   string `json:"key"`   // Unique identifier: "electricity_bills"
	Page  string `json:"page"`  // Owning page key
	Label string `json:"label"` // Tab label: "Electricity Bills"
	Order int    `json:"order"` // Tab position within the page
}

// ViewDefinition describes one table on a page.
type ViewDefinition struct {
	Info         ViewInfo
	Resource     string // Dataset key rendered when Source is nil
	EmptyMessage string

	// Source selects the raw collection to render. Defaults to Raw(Resource).
	Source func(Dataset) any

	// Columns builds the column set. It receives the dataset so columns can
	// join against other collections of the page.
	Columns func(Dataset) ColumnSet

	// RowLink returns the click target for a row, or "".
	RowLink func(Entity) string
}

// RenderView renders a view against a fetched dataset.
func RenderView(def ViewDefinition, ds Dataset, logger *slog.Logger) Table {
	var raw any
	if def.Source != nil {
		raw = def.Source(ds)
	} else {
		raw = ds.Raw(def.Resource)
	}

	var cols ColumnSet
	if def.Columns != nil {
		cols = def.Columns(ds)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return RenderTable(cols, raw, TableOptions{
		EmptyMessage: def.EmptyMessage,
		OnRowClick:   def.RowLink,
		Logger:       logger.With("view", def.Info.Key),
	})
}

// LoadingView returns the placeholder table shown before a view's data arrives.
func LoadingView(def ViewDefinition) Table {
	var cols ColumnSet
	if def.Columns != nil {
		cols = def.Columns(NewDataset())
	}
	return RenderTable(cols, nil, TableOptions{IsLoading: true})
}

// SummarizePage computes the stat cards for a page.
func SummarizePage(def PageDefinition, ds Dataset) []StatCard {
	if def.Summarize == nil {
		return nil
	}
	return def.Summarize(ds)
}

// PagePanels computes the summary panels for a page.
func PagePanels(def PageDefinition, ds Dataset) []Panel {
	if def.Panels == nil {
		return nil
	}
	return def.Panels(ds)
}

// ResourcesFor returns the resources a view needs: its page's resources.
func ResourcesFor(view ViewDefinition) []Resource {
	page, ok := GetPage(view.Info.Page)
	if !ok {
		return nil
	}
	return page.Resources
}
