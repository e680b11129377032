package templates

import (
	"context"
	"strconv"

	"github.com/JonMunkholm/catalog-admin/internal/catalog"
	"github.com/JonMunkholm/catalog-admin/internal/core"
	"github.com/a-h/templ"
)

// Form wrapper ids. Form responses are swapped into these elements.
const (
	CreateFormID = "create-form"
	EditFormID   = "edit-form"
)

// FormView describes a create or edit form and its last submission.
type FormView struct {
	ID     string // wrapper element id, CreateFormID or EditFormID
	Action string // POST target
	Submit string // button label
	Values core.ProductForm
	Errors *core.FormError   // per-field validation failures
	Alert  *core.UserMessage // remote failure shown above the fields
	Notice string            // success message
	OOB    bool              // render for an out-of-band swap
}

// CreateForm returns an empty create form.
func CreateForm() FormView {
	return FormView{ID: CreateFormID, Action: "/products", Submit: "Create product"}
}

// EditFormFor returns an empty edit form for product id.
func EditFormFor(id int) FormView {
	return FormView{ID: EditFormID, Action: "/products/" + strconv.Itoa(id), Submit: "Save changes"}
}

// EditForm returns an edit form prefilled from p.
func EditForm(p catalog.Product) FormView {
	f := EditFormFor(p.ID)
	f.Values = core.FormFromProduct(p)
	return f
}

// ProductForm renders a create or edit form.
func ProductForm(f FormView) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<div id="`)
		h.text(f.ID)
		h.raw(`"`)
		if f.OOB {
			h.raw(` hx-swap-oob="true"`)
		}
		h.raw(`>`)

		if f.Alert != nil {
			h.render(ctx, ErrorAlert(alertText(*f.Alert), f.Alert.Action, f.Alert.Code))
		}
		h.render(ctx, Notice("success", f.Notice))

		h.raw(`<form method="post" action="`)
		h.text(f.Action)
		h.raw(`" hx-post="`)
		h.text(f.Action)
		h.raw(`" hx-target="#`)
		h.text(f.ID)
		h.raw(`" hx-swap="outerHTML" hx-disabled-elt="find button" novalidate>`)

		formField(h, f, "title", "Title", "text", f.Values.Title)
		formField(h, f, "price", "Price", "text", f.Values.Price)
		formField(h, f, "categoryId", "Category ID", "number", f.Values.CategoryID)
		formField(h, f, "images", "Image URLs (comma-separated)", "text", f.Values.Images)

		h.raw(`<div class="mb-3"><label class="form-label" for="`)
		h.text(f.ID + "-description")
		h.raw(`">Description</label><textarea class="form-control" rows="3" name="description" id="`)
		h.text(f.ID + "-description")
		h.raw(`">`)
		h.text(f.Values.Description)
		h.raw(`</textarea></div>`)

		h.raw(`<button type="submit" class="btn btn-primary">`)
		h.text(f.Submit)
		h.raw(`</button></form></div>`)
	})
}

func formField(h *htmlWriter, f FormView, name, label, kind, value string) {
	id := f.ID + "-" + name
	var msg string
	if f.Errors != nil {
		msg = f.Errors.Field(name)
	}

	h.raw(`<div class="mb-3"><label class="form-label" for="`)
	h.text(id)
	h.raw(`">`)
	h.text(label)
	h.raw(`</label><input class="form-control`)
	if msg != "" {
		h.raw(` is-invalid`)
	}
	h.raw(`" type="`)
	h.text(kind)
	h.raw(`" name="`)
	h.text(name)
	h.raw(`" id="`)
	h.text(id)
	h.raw(`" value="`)
	h.text(value)
	h.raw(`">`)
	if msg != "" {
		h.raw(`<div class="invalid-feedback">`)
		h.text(label + " " + msg)
		h.raw(`</div>`)
	}
	h.raw(`</div>`)
}

func alertText(m core.UserMessage) string {
	if m.Detail == "" {
		return m.Message
	}
	return m.Message + ": " + m.Detail
}

// DetailView is the detail panel for a single product.
type DetailView struct {
	Product catalog.Product
	Edit    FormView
}

// ProductDetail renders the detail panel with its edit form.
func ProductDetail(vm DetailView) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		p := vm.Product

		h.raw(`<div class="card" id="product-detail"><div class="card-body"><div class="row g-4"><div class="col-md-5">`)
		if len(p.Images) == 0 {
			h.raw(`<div class="bg-secondary-subtle rounded p-5 text-center text-muted">No images</div>`)
		}
		for i, img := range p.Images {
			h.raw(`<img class="img-fluid rounded mb-2" src="`)
			h.url(img)
			h.printf(`" alt="Image %d of %d">`, i+1, len(p.Images))
		}
		h.raw(`</div><div class="col-md-7">`)

		h.raw(`<h2 class="h4">`)
		h.text(p.Title)
		h.raw(`</h2><p class="fs-5 fw-semibold">`)
		h.text(FormatPrice(p))
		h.raw(`</p><dl class="row small">`)
		detailRow(h, "ID", strconv.Itoa(p.ID))
		detailRow(h, "Category", p.CategoryName())
		detailRow(h, "Images", strconv.Itoa(len(p.Images)))
		h.raw(`</dl><p>`)
		h.text(p.Description)
		h.raw(`</p><hr>`)

		h.render(ctx, ProductForm(vm.Edit))
		h.raw(`</div></div></div></div>`)
	})
}

func detailRow(h *htmlWriter, label, value string) {
	h.raw(`<dt class="col-sm-3">`)
	h.text(label)
	h.raw(`</dt><dd class="col-sm-9">`)
	if value == "" {
		h.raw(`<span class="text-muted">None</span>`)
	} else {
		h.text(value)
	}
	h.raw(`</dd>`)
}

// DetailPage renders a product detail panel as a standalone page, for
// requests made without HTMX.
func DetailPage(vm DetailView) templ.Component {
	return Layout(vm.Product.Title, Group(
		component(func(_ context.Context, h *htmlWriter) {
			h.raw(`<p><a href="/">&larr; Back to products</a></p>`)
		}),
		ProductDetail(vm),
	))
}

// ErrorPage renders a full page around an error alert.
func ErrorPage(m core.UserMessage) templ.Component {
	return Layout("Error", Group(
		ErrorAlert(alertText(m), m.Action, m.Code),
		component(func(_ context.Context, h *htmlWriter) {
			h.raw(`<p><a href="/">&larr; Back to products</a></p>`)
		}),
	))
}
