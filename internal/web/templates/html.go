// Package templates holds the templ components the web layer renders.
//
// Components are built with templ.ComponentFunc and write escaped HTML
// directly. Every component renders from values prepared by the handlers;
// none of them fetch or compute data.
package templates

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// printer writes HTML fragments and remembers the first write error.
type printer struct {
	w   io.Writer
	err error
}

// raw writes trusted markup.
func (p *printer) raw(parts ...string) {
	for _, s := range parts {
		if p.err != nil {
			return
		}
		_, p.err = io.WriteString(p.w, s)
	}
}

// text writes escaped text. The result is safe inside quoted attributes.
func (p *printer) text(s string) {
	p.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with value escaped. Empty values are skipped.
func (p *printer) attr(name, value string) {
	if value == "" {
		return
	}
	p.raw(" ", name, `="`)
	p.text(value)
	p.raw(`"`)
}

// href writes a sanitized URL attribute.
func (p *printer) href(name, url string) {
	p.attr(name, string(templ.URL(url)))
}

// render renders a child component into the same writer.
func (p *printer) render(ctx context.Context, c templ.Component) {
	if p.err != nil || c == nil {
		return
	}
	p.err = c.Render(ctx, p.w)
}

// classes joins non-empty class names.
func classes(names ...string) string {
	out := names[:0:0]
	for _, n := range names {
		if n != "" {
			out = append(out, n)
		}
	}
	return strings.Join(out, " ")
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
