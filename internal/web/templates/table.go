package templates

import (
	"context"
	"strconv"

	"github.com/JonMunkholm/catalog-admin/internal/catalog"
	"github.com/JonMunkholm/catalog-admin/internal/core"
	"github.com/a-h/templ"
)

// TableView is everything the product table needs to render.
type TableView struct {
	Page      core.Page
	PageSizes []int
	Loaded    bool              // a load has succeeded at least once
	LoadError *core.UserMessage // most recent load failure, if any
}

// ProductsPage is the full table page.
func ProductsPage(vm TableView, create FormView) templ.Component {
	return Layout("Products", Group(
		Toolbar(vm, create),
		ProductTable(vm),
		component(func(_ context.Context, h *htmlWriter) {
			h.raw(`<div id="detail" class="mt-4"></div>`)
		}),
	))
}

// Toolbar renders search, page size, reload, export and the create form.
func Toolbar(vm TableView, create FormView) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<div class="d-flex flex-wrap gap-2 align-items-center mb-3">`)

		h.raw(`<form method="post" action="/products/table/search" hx-post="/products/table/search" hx-trigger="input changed delay:300ms from:find input, submit" hx-target="#product-table" hx-swap="outerHTML" class="flex-grow-1">`)
		h.raw(`<input type="search" name="search" class="form-control" placeholder="Search by title" value="`)
		h.text(vm.Page.Query.SearchText)
		h.raw(`"></form>`)

		if len(vm.PageSizes) > 0 {
			h.raw(`<form method="post" action="/products/table/page-size" hx-post="/products/table/page-size" hx-trigger="change" hx-target="#product-table" hx-swap="outerHTML">`)
			h.raw(`<select name="pageSize" class="form-select" aria-label="Rows per page">`)
			for _, n := range vm.PageSizes {
				h.printf(`<option value="%d"`, n)
				if n == vm.Page.PageSize {
					h.raw(` selected`)
				}
				h.printf(`>%d per page</option>`, n)
			}
			h.raw(`</select><noscript><button class="btn btn-outline-secondary">Apply</button></noscript></form>`)
		}

		postButton(h, "/products/reload", "#product-table", "Reload", "btn btn-outline-secondary", false)
		h.raw(`<a class="btn btn-outline-primary" href="/export.csv">Export page</a>`)
		h.raw(`</div>`)

		h.raw(`<details class="mb-3"`)
		if create.Errors != nil || create.Alert != nil {
			h.raw(` open`)
		}
		h.raw(`><summary class="btn btn-primary">New product</summary><div class="card card-body mt-2">`)
		h.render(ctx, ProductForm(create))
		h.raw(`</div></details>`)
	})
}

// ProductTable renders the table partial that HTMX swaps in place.
func ProductTable(vm TableView) templ.Component {
	return productTable(vm, false)
}

// ProductTableOOB renders the table for an out-of-band swap alongside
// another response.
func ProductTableOOB(vm TableView) templ.Component {
	return productTable(vm, true)
}

func productTable(vm TableView, oob bool) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		page := vm.Page

		h.raw(`<div id="product-table"`)
		if oob {
			h.raw(` hx-swap-oob="true"`)
		}
		h.raw(`>`)

		if vm.LoadError != nil && vm.Loaded {
			h.raw(`<div class="alert alert-warning d-flex justify-content-between align-items-center">`)
			h.raw(`<span>Reload failed: `)
			h.text(vm.LoadError.Message)
			h.raw(`. Showing the previously loaded products.</span>`)
			postButton(h, "/products/reload", "#product-table", "Retry", "btn btn-sm btn-warning", false)
			h.raw(`</div>`)
		}

		h.raw(`<div class="table-responsive"><table class="table table-hover align-middle bg-white">`)
		h.raw(`<thead class="table-light"><tr><th scope="col">ID</th><th scope="col">Image</th>`)
		sortHeader(h, page.Sort, core.SortTitle, "Title")
		sortHeader(h, page.Sort, core.SortPrice, "Price")
		h.raw(`<th scope="col">Category</th><th scope="col"></th></tr></thead><tbody>`)

		switch {
		case vm.LoadError != nil && !vm.Loaded:
			h.raw(`<tr><td colspan="6" class="text-center py-5 text-danger"><p class="mb-1"><strong>Could not load products.</strong></p><p class="small">`)
			h.text(vm.LoadError.Message)
			if vm.LoadError.Detail != "" {
				h.raw(`: `)
				h.text(vm.LoadError.Detail)
			}
			h.raw(` <span class="text-muted">(Code: `)
			h.text(vm.LoadError.Code)
			h.raw(`)</span></p>`)
			postButton(h, "/products/reload", "#product-table", "Try again", "btn btn-primary mt-2", false)
			h.raw(`</td></tr>`)
		case !vm.Loaded:
			h.raw(`<tr><td colspan="6" class="text-center py-5 text-muted">The catalog has not been loaded yet.`)
			postButton(h, "/products/reload", "#product-table", "Load now", "btn btn-link", false)
			h.raw(`</td></tr>`)
		case len(page.Items) == 0:
			h.raw(`<tr><td colspan="6" class="text-center py-5 text-muted">No products found</td></tr>`)
		default:
			for _, p := range page.Items {
				productRow(h, p)
			}
		}
		h.raw(`</tbody></table></div>`)

		pagination(h, page)
		h.raw(`</div>`)
	})
}

func sortHeader(h *htmlWriter, sort core.SortToggle, field core.SortField, label string) {
	indicator := "↕"
	switch sort.State(field) {
	case core.SortAsc:
		indicator = "↑"
	case core.SortDesc:
		indicator = "↓"
	}

	h.raw(`<th scope="col">`)
	postButton(h, "/products/table/sort/"+field.String(), "#product-table", label+" "+indicator, "btn btn-link p-0 text-decoration-none text-reset fw-semibold", false)
	h.raw(`</th>`)
}

func productRow(h *htmlWriter, p catalog.Product) {
	id := strconv.Itoa(p.ID)

	h.raw(`<tr><td>`)
	h.text(id)
	h.raw(`</td><td>`)
	if thumb := p.Thumbnail(); thumb != "" {
		h.raw(`<img src="`)
		h.url(thumb)
		h.raw(`" alt="" width="48" height="48" class="rounded object-fit-cover" loading="lazy">`)
	}
	h.raw(`</td><td>`)
	h.text(p.Title)
	h.raw(`</td><td>`)
	h.text(FormatPrice(p))
	h.raw(`</td><td>`)
	h.text(p.CategoryName())
	h.raw(`</td><td class="text-end"><a class="btn btn-sm btn-outline-secondary" href="/products/`)
	h.text(id)
	h.raw(`" hx-get="/products/`)
	h.text(id)
	h.raw(`" hx-target="#detail" hx-swap="innerHTML">View / edit</a></td></tr>`)
}

func pagination(h *htmlWriter, page core.Page) {
	h.raw(`<div class="d-flex justify-content-between align-items-center">`)
	h.printf(`<small class="text-muted">Showing %d–%d of %d products</small>`, page.StartItem, page.EndItem, page.TotalCount)

	if page.PageCount > 1 {
		h.raw(`<ul class="pagination mb-0">`)
		pageItem(h, "/products/table/page/prev", "‹", !page.HasPrev, false)
		for _, link := range page.Links {
			if link.Ellipsis {
				h.raw(`<li class="page-item disabled"><span class="page-link">…</span></li>`)
				continue
			}
			pageItem(h, "/products/table/page/"+strconv.Itoa(link.Number), strconv.Itoa(link.Number), false, link.Active)
		}
		pageItem(h, "/products/table/page/next", "›", !page.HasNext, false)
		h.raw(`</ul>`)
	}
	h.raw(`</div>`)
}

func pageItem(h *htmlWriter, action, label string, disabled, active bool) {
	class := "page-item"
	if disabled {
		class += " disabled"
	}
	if active {
		class += " active"
	}
	h.raw(`<li class="` + class + `">`)
	postButton(h, action, "#product-table", label, "page-link", disabled)
	h.raw(`</li>`)
}

// postButton renders a one-button form that posts to action, swapping the
// response into target under HTMX and falling back to a plain POST.
func postButton(h *htmlWriter, action, target, label, class string, disabled bool) {
	h.raw(`<form method="post" class="d-inline" action="`)
	h.text(action)
	h.raw(`" hx-post="`)
	h.text(action)
	h.raw(`" hx-target="`)
	h.text(target)
	h.raw(`" hx-swap="outerHTML"><button type="submit" class="`)
	h.text(class)
	h.raw(`"`)
	if disabled {
		h.raw(` disabled`)
	}
	h.raw(`>`)
	h.text(label)
	h.raw(`</button></form>`)
}

// FormatPrice renders a price with two decimals.
func FormatPrice(p catalog.Product) string {
	return "$" + p.Price.StringFixed(2)
}
