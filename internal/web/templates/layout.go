package templates

import (
	"context"

	"github.com/a-h/templ"
)

const (
	htmxScript   = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"
	bootstrapCSS = "https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css"
)

// htmxConfig makes htmx swap error responses too, so validation and API
// failures render in place instead of being dropped.
const htmxConfig = `{"responseHandling":[{"code":"204","swap":false},{"code":"[23]..","swap":true},{"code":"[45]..","swap":true,"error":true}]}`

// Layout is the page shell: head, navbar and an alerts region that error
// partials are retargeted into.
func Layout(title string, body templ.Component) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<meta name="htmx-config" content="`)
		h.text(htmxConfig)
		h.raw(`"><title>`)
		h.text(title)
		h.raw(`</title><link rel="stylesheet" href="` + bootstrapCSS + `">`)
		h.raw(`<script src="` + htmxScript + `" defer></script></head>`)
		h.raw(`<body class="bg-light">`)
		h.raw(`<nav class="navbar navbar-dark bg-dark mb-4"><div class="container"><a class="navbar-brand" href="/">Product Catalog</a></div></nav>`)
		h.raw(`<main class="container"><div id="alerts"></div>`)
		h.render(ctx, body)
		h.raw(`</main></body></html>`)
	})
}
