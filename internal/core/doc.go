// Package core provides the rendering and metrics engine behind the dashboard.
//
// This package turns raw resource collections fetched from the municipal
// services backend into render-ready tables and summary statistics. It has no
// HTTP or HTML dependencies and never mutates its inputs: every function is a
// pure transform invoked fresh on each render.
//
// # Architecture
//
// The package is organized around several key concepts:
//
//   - Safe Accessor: [ToSafeNumber], [ToSafeDate] and [DisplayValue] coerce
//     untyped JSON values without ever failing.
//   - Column Descriptors: a [ColumnSet] declares how each field of an entity is
//     extracted and formatted.
//   - Table Renderer: [RenderTable] evaluates every cell behind its own failure
//     boundary so one bad record or formatter cannot blank a table.
//   - Status Classification: [ClassifyStatus] maps free text to a fixed set of
//     visual categories.
//   - Metrics: counting, summation and scaled formatting reducers used by page
//     summaries.
//
// # Page Registry
//
// Pages and their tables are registered at init time using [RegisterPage] and
// [RegisterView]:
//
//	core.RegisterView(core.ViewDefinition{
//	    Info:     core.ViewInfo{Key: "routes", Page: "transport", Label: "Routes"},
//	    Resource: "routes",
//	    Columns: func(core.Dataset) core.ColumnSet {
//	        return core.MustColumns(
//	            core.Column{Key: "route_id", Header: "Route ID"},
//	            core.Decimal("distance_km", "Distance (km)", 2, "N/A"),
//	        )
//	    },
//	})
//
// # Error Handling
//
// Data problems are never surfaced as errors: missing fields render as "N/A",
// non-numeric values sum as 0, and unknown statuses classify as info.
// Transport failures from the fetch layer are mapped to user-friendly
// messages using [MapError]:
//
//   - API001-API006: Backend errors (unreachable, timeout, HTTP status)
//   - VIEW001-VIEW002: Unknown pages or tables
//   - SET001: Invalid settings
package core
