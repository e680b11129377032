package templates

import (
	"context"

	"github.com/a-h/templ"
)

// ErrorAlert renders a dismissible error with its support code.
func ErrorAlert(message, action, code string) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<div class="alert alert-danger" role="alert"><strong>`)
		h.text(message)
		h.raw(`</strong>`)
		if action != "" {
			h.raw(` `)
			h.text(action)
		}
		if code != "" {
			h.raw(` <small class="text-muted">(Code: `)
			h.text(code)
			h.raw(`)</small>`)
		}
		h.raw(`</div>`)
	})
}

// Notice renders an informational message. Empty messages render nothing.
func Notice(kind, message string) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		if message == "" {
			return
		}
		if kind == "" {
			kind = "info"
		}
		h.raw(`<div class="alert alert-`)
		h.text(kind)
		h.raw(`" role="status">`)
		h.text(message)
		h.raw(`</div>`)
	})
}
