package templates

import (
	"context"
	"io"
	"time"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/civicdash/internal/core"
)

// SummaryData is the stat card and panel block at the top of a page.
type SummaryData struct {
	Page    string
	Refresh time.Duration // Re-poll interval; zero disables polling
	Cards   []core.StatCard
	Panels  []core.Panel
	Notices []core.UserMessage // Resources that failed to load
}

// Summary renders the page summary. It replaces itself on every poll.
func Summary(data SummaryData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.raw(`<section id="summary" class="summary"`)
		if data.Refresh > 0 {
			p.attr("hx-get", "/pages/"+data.Page+"/summary")
			p.attr("hx-trigger", "every "+itoa(int(data.Refresh/time.Second))+"s")
			p.raw(` hx-swap="outerHTML"`)
		}
		p.raw(`>`)

		for _, n := range data.Notices {
			p.render(ctx, ErrorAlert(n.Message, n.Action, n.Code))
		}

		if len(data.Cards) > 0 {
			p.raw(`<div class="stat-grid">`)
			for _, card := range data.Cards {
				p.render(ctx, StatCard(card))
			}
			p.raw(`</div>`)
		}

		if len(data.Panels) > 0 {
			p.raw(`<div class="panel-grid">`)
			for _, panel := range data.Panels {
				p.render(ctx, Panel(panel))
			}
			p.raw(`</div>`)
		}

		p.raw(`</section>`)
		return p.err
	})
}

// StatCard renders one summary statistic.
func StatCard(card core.StatCard) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		variant := card.Variant
		if variant == "" {
			variant = "default"
		}

		p := &printer{w: w}
		p.raw(`<div`)
		p.attr("class", "stat-card stat-"+variant)
		p.raw(`><p class="stat-title">`)
		p.text(card.Title)
		p.raw(`</p><p class="stat-value">`)
		p.text(card.Value)
		p.raw(`</p>`)
		if card.Subtitle != "" {
			p.raw(`<p class="stat-subtitle">`)
			p.text(card.Subtitle)
			p.raw(`</p>`)
		}
		p.raw(`</div>`)
		return p.err
	})
}

// Panel renders a titled list.
func Panel(panel core.Panel) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.raw(`<div class="panel"><h3>`)
		p.text(panel.Title)
		p.raw(`</h3>`)

		if len(panel.Items) == 0 {
			msg := panel.EmptyMessage
			if msg == "" {
				msg = core.DefaultEmptyMessage
			}
			p.raw(`<p class="empty">`)
			p.text(msg)
			p.raw(`</p></div>`)
			return p.err
		}

		p.raw(`<ul>`)
		for _, item := range panel.Items {
			p.raw(`<li`)
			itemVariant := ""
			if item.Variant != "" {
				itemVariant = "item-" + item.Variant
			}
			p.attr("class", classes("panel-item", itemVariant))
			p.raw(`><div class="item-body"><p class="item-title">`)
			p.text(item.Title)
			p.raw(`</p>`)
			if item.Detail != "" {
				p.raw(`<p class="item-detail">`)
				p.text(item.Detail)
				p.raw(`</p>`)
			}
			p.raw(`</div><div class="item-aside">`)
			if item.Status != nil {
				p.render(ctx, badge(*item.Status))
			}
			if item.Count != nil {
				p.raw(`<span class="count">`, itoa(*item.Count), `</span>`)
			}
			if item.Meta != "" {
				p.raw(`<span class="meta">`)
				p.text(item.Meta)
				p.raw(`</span>`)
			}
			p.raw(`</div></li>`)
		}
		p.raw(`</ul></div>`)
		return p.err
	})
}

func badge(s core.Status) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.raw(`<span`)
		p.attr("class", "badge "+s.Style())
		p.attr("data-status", string(s.Category))
		p.raw(`>`)
		p.text(s.Label)
		p.raw(`</span>`)
		return p.err
	})
}
