package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// ErrorAlert renders a user-facing error with its support code.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.raw(`<div class="alert alert-error" role="alert"><p class="alert-message">`)
		p.text(message)
		if code != "" {
			p.raw(` <span class="code">(`)
			p.text(code)
			p.raw(`)</span>`)
		}
		p.raw(`</p>`)
		if action != "" {
			p.raw(`<p class="alert-action">`)
			p.text(action)
			p.raw(`</p>`)
		}
		p.raw(`</div>`)
		return p.err
	})
}
