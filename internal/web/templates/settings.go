package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/civicdash/internal/core"
)

// SettingsData is the state of the settings form.
type SettingsData struct {
	BaseURL    string // URL currently in effect for this browser
	DefaultURL string // Server-configured URL
	Overridden bool   // BaseURL comes from the browser override
	Allowed    []string
}

// Settings renders the API configuration form.
func Settings(data SettingsData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.raw(`<div class="settings"><div class="card"><h2>API Configuration</h2>`)
		p.raw(`<p class="muted">Connect to your Smart City Management backend API</p>`)
		p.raw(`<form method="post" action="/settings" hx-post="/settings" hx-target="#connection-status" hx-swap="innerHTML">`)
		p.raw(`<label for="api_base_url">API Base URL</label>`)
		p.raw(`<input id="api_base_url" name="api_base_url" type="url" required list="allowed_base_urls"`)
		p.attr("value", data.BaseURL)
		p.attr("placeholder", data.DefaultURL)
		p.raw(`><datalist id="allowed_base_urls">`)
		for _, u := range append([]string{data.DefaultURL}, data.Allowed...) {
			p.raw(`<option`)
			p.attr("value", u)
			p.raw(`></option>`)
		}
		p.raw(`</datalist><p class="muted">Default: `)
		p.text(data.DefaultURL)
		if data.Overridden {
			p.raw(` (overridden in this browser)`)
		}
		p.raw(`</p><div class="actions">`)
		p.raw(`<button type="submit" class="btn-primary">Save</button>`)
		p.raw(`<button type="button" class="btn" hx-post="/settings/test" hx-include="closest form" hx-target="#connection-status" hx-swap="innerHTML">Test Connection</button>`)
		p.raw(`</div></form><div id="connection-status" aria-live="polite"></div></div>`)

		p.raw(`<div class="card"><h2>API Documentation</h2><p class="muted">Interactive documentation served by the backend.</p>`)
		p.raw(`<a class="btn" target="_blank" rel="noopener"`)
		p.href("href", data.BaseURL+"/docs")
		p.raw(`>Open API Docs</a></div></div>`)
		return p.err
	})
}

// ConnectionStatus renders the outcome of a connection test.
func ConnectionStatus(baseURL string, err error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err != nil {
			msg := core.MapError(err)
			return ErrorAlert(msg.Message, msg.Action, msg.Code).Render(ctx, w)
		}
		p := &printer{w: w}
		p.raw(`<div class="alert alert-success" role="status">Connected to `)
		p.text(baseURL)
		p.raw(`</div>`)
		return p.err
	})
}
