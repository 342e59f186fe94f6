package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/civicdash/internal/core"
)

// htmxSrc is the htmx build loaded by every page.
const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// NavItem is one sidebar link.
type NavItem struct {
	Label  string
	Href   string
	Icon   string
	Active bool
}

// Nav is the sidebar shown on every page.
type Nav struct {
	AppTitle string
	Items    []NavItem
}

// Layout wraps body in the document shell with the sidebar and page header.
func Layout(nav Nav, title, subtitle string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.raw(`<!doctype html><html lang="en"><head><meta charset="utf-8">`)
		p.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		p.raw(`<title>`)
		p.text(title + " | " + nav.AppTitle)
		p.raw(`</title><link rel="stylesheet" href="/static/app.css">`)
		p.raw(`<script src="`, htmxSrc, `"></script>`)
		p.raw(`<script src="/static/app.js" defer></script></head><body>`)

		p.render(ctx, sidebar(nav))

		p.raw(`<main class="content"><header class="page-header"><h1>`)
		p.text(title)
		p.raw(`</h1>`)
		if subtitle != "" {
			p.raw(`<p class="subtitle">`)
			p.text(subtitle)
			p.raw(`</p>`)
		}
		p.raw(`</header>`)
		p.render(ctx, body)
		p.raw(`</main></body></html>`)
		return p.err
	})
}

func sidebar(nav Nav) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.raw(`<aside class="sidebar"><div class="brand">`)
		p.text(nav.AppTitle)
		p.raw(`</div><nav>`)
		for _, item := range nav.Items {
			p.raw(`<a`)
			p.href("href", item.Href)
			p.attr("class", classes("nav-link", activeClass(item.Active)))
			if item.Active {
				p.raw(` aria-current="page"`)
			}
			p.raw(`><span class="icon"`)
			p.attr("data-icon", item.Icon)
			p.raw(`></span>`)
			p.text(item.Label)
			p.raw(`</a>`)
		}
		p.raw(`</nav></aside>`)
		return p.err
	})
}

func activeClass(active bool) string {
	if active {
		return "active"
	}
	return ""
}

// PageBody is the summary block followed by the page's views.
func PageBody(summary SummaryData, views []core.ViewInfo, tables []core.Table) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.render(ctx, Summary(summary))
		p.render(ctx, Views(views, tables))
		return p.err
	})
}
