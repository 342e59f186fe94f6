package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/civicdash/internal/core"
)

// loadingRows is the number of skeleton rows shown while a view loads.
const loadingRows = 3

// actionMethods are the htmx verbs an action cell may issue.
var actionMethods = map[string]bool{
	"get": true, "post": true, "put": true, "patch": true, "delete": true,
}

// ViewID returns the DOM id of the section holding a view.
func ViewID(viewKey string) string {
	return "view-" + viewKey
}

// Views renders the tab strip and one section per view. The first view is
// shown; the rest are hidden until their tab is picked.
func Views(views []core.ViewInfo, tables []core.Table) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(views) == 0 {
			return nil
		}
		p := &printer{w: w}

		if len(views) > 1 {
			p.raw(`<div class="tabs" role="tablist">`)
			for i, v := range views {
				p.raw(`<button type="button" role="tab"`)
				p.attr("class", classes("tab", activeClass(i == 0)))
				p.attr("data-tab", ViewID(v.Key))
				p.raw(`>`)
				p.text(v.Label)
				p.raw(`</button>`)
			}
			p.raw(`</div>`)
		}

		for i, v := range views {
			var t core.Table
			if i < len(tables) {
				t = tables[i]
			}
			p.render(ctx, viewSection(v, t, i > 0))
		}
		return p.err
	})
}

// View renders a single view section, as returned to htmx after loading
// or after a row action. Notices are shown above the table.
func View(info core.ViewInfo, t core.Table, notices ...core.UserMessage) templ.Component {
	return viewSection(info, t, false, notices...)
}

func viewSection(info core.ViewInfo, t core.Table, hidden bool, notices ...core.UserMessage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.raw(`<section class="view"`)
		p.attr("id", ViewID(info.Key))
		p.attr("data-view", info.Key)
		if hidden {
			p.raw(` hidden`)
		}
		if t.State == core.StateLoading {
			p.attr("hx-get", "/views/"+info.Key)
			p.raw(` hx-trigger="load" hx-swap="outerHTML"`)
		}
		p.raw(`><h2 class="view-title">`)
		p.text(info.Label)
		p.raw(`</h2>`)
		for _, n := range notices {
			p.render(ctx, ErrorAlert(n.Message, n.Action, n.Code))
		}
		p.render(ctx, Table(t))
		p.raw(`</section>`)
		return p.err
	})
}

// Table renders a table in its loading, empty or rows state.
func Table(t core.Table) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		span := itoa(max(1, len(t.Headers)))

		p.raw(`<div class="table-wrap"><table`)
		p.attr("data-state", string(t.State))
		if t.Failures > 0 {
			p.attr("data-failures", itoa(t.Failures))
		}
		p.raw(`><thead><tr>`)
		for _, h := range t.Headers {
			p.raw(`<th`)
			p.attr("class", h.ClassName)
			p.raw(`>`)
			p.text(h.Label)
			p.raw(`</th>`)
		}
		p.raw(`</tr></thead><tbody>`)

		switch t.State {
		case core.StateLoading:
			for i := 0; i < loadingRows; i++ {
				p.raw(`<tr class="skeleton"><td colspan="`, span, `"><span class="shimmer"></span></td></tr>`)
			}
		case core.StateEmpty:
			msg := t.EmptyMessage
			if msg == "" {
				msg = core.DefaultEmptyMessage
			}
			p.raw(`<tr><td class="empty" colspan="`, span, `">`)
			p.text(msg)
			p.raw(`</td></tr>`)
		default:
			for _, row := range t.Rows {
				p.render(ctx, tableRow(row))
			}
		}

		p.raw(`</tbody></table></div>`)
		return p.err
	})
}

func tableRow(row core.Row) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.raw(`<tr`)
		p.attr("data-key", row.Key)
		if row.Link != "" {
			p.raw(` class="clickable"`)
			p.href("data-href", row.Link)
		}
		p.raw(`>`)
		for _, cell := range row.Cells {
			p.render(ctx, tableCell(cell))
		}
		p.raw(`</tr>`)
		return p.err
	})
}

func tableCell(cell core.Cell) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.raw(`<td`)
		p.attr("class", cell.Class)
		p.raw(`>`)

		switch cell.Kind {
		case core.CellBadge:
			status := core.ClassifyStatus(cell.Text)
			if cell.Status != nil {
				status = *cell.Status
			}
			p.render(ctx, badge(status))
		case core.CellSnippet:
			p.raw(`<span class="snippet"`)
			p.attr("title", cell.Text)
			p.raw(`>`)
			p.text(cell.Text)
			p.raw(`</span>`)
		case core.CellAction:
			p.render(ctx, actionButton(cell))
		default:
			p.text(cell.Text)
		}

		p.raw(`</td>`)
		return p.err
	})
}

// actionButton issues the cell's request through htmx and swaps the
// enclosing view with the response. Clicks never reach the row.
func actionButton(cell core.Cell) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		method := strings.ToLower(cell.Method)
		if !actionMethods[method] {
			method = "post"
		}

		p := &printer{w: w}
		p.raw(`<button type="button" class="btn-action"`)
		p.href("hx-"+method, cell.Href)
		p.attr("hx-confirm", cell.Confirm)
		p.raw(` hx-target="closest section.view" hx-swap="outerHTML"`)
		p.raw(` onclick="event.stopPropagation()">`)
		p.text(cell.Text)
		p.raw(`</button>`)
		return p.err
	})
}
