package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JonMunkholm/catalog-admin/internal/core"
	"github.com/JonMunkholm/catalog-admin/internal/logging"
	"github.com/JonMunkholm/catalog-admin/internal/web/templates"
	"github.com/a-h/templ"
)

// handleProductDetail renders the detail panel of one loaded product.
func (s *Server) handleProductDetail(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	p, err := s.service.Find(id)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	vm := templates.DetailView{Product: p, Edit: templates.EditForm(p)}
	if isHTMX(r) {
		render(w, r, http.StatusOK, templates.ProductDetail(vm))
		return
	}
	render(w, r, http.StatusOK, templates.DetailPage(vm))
}

// handleCreateProduct submits the create form.
//
// On success the table is swapped with the new product on top and the
// create form is reset out of band. On failure the form is re-rendered with
// the submitted values and the error, so nothing the user typed is lost.
func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := WithRequestMetadata(r.Context(), r)

	form, err := parseProductForm(w, r)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	res, err := s.service.ApplyCreate(ctx, form)
	if err != nil {
		view := templates.CreateForm()
		view.Values = form
		s.respondFormError(w, r, view, err, func(f templates.FormView) templ.Component {
			return templates.ProductsPage(s.tableView(s.service.View()), f)
		})
		return
	}

	if !isHTMX(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	fresh := templates.CreateForm()
	fresh.OOB = true
	fresh.Notice = fmt.Sprintf("Created %q with ID %d.", res.Product.Title, res.Product.ID)

	w.Header().Set("HX-Retarget", "#product-table")
	w.Header().Set("HX-Reswap", "outerHTML")
	render(w, r, http.StatusOK, templates.Group(
		templates.ProductTable(s.tableView(res.Page)),
		templates.ProductForm(fresh),
	))
}

// handleEditProduct submits the edit form of one product.
//
// On success the detail panel is re-rendered from the server's record and
// the table is refreshed out of band.
func (s *Server) handleEditProduct(w http.ResponseWriter, r *http.Request) {
	ctx := WithRequestMetadata(r.Context(), r)

	id, err := productID(r)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	form, err := parseProductForm(w, r)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	res, err := s.service.ApplyEdit(ctx, id, form)
	if err != nil {
		view := templates.EditFormFor(id)
		view.Values = form
		s.respondFormError(w, r, view, err, func(f templates.FormView) templ.Component {
			p, findErr := s.service.Find(id)
			if findErr != nil {
				return templates.ErrorPage(core.MapError(err))
			}
			return templates.DetailPage(templates.DetailView{Product: p, Edit: f})
		})
		return
	}

	if !isHTMX(r) {
		http.Redirect(w, r, fmt.Sprintf("/products/%d", id), http.StatusSeeOther)
		return
	}

	edit := templates.EditForm(res.Product)
	edit.Notice = "Saved."
	if !res.Applied {
		edit.Notice = "Saved, but this product is no longer in the loaded catalog. Reload to see the current list."
	}

	w.Header().Set("HX-Retarget", "#detail")
	w.Header().Set("HX-Reswap", "innerHTML")
	render(w, r, http.StatusOK, templates.Group(
		templates.ProductDetail(templates.DetailView{Product: res.Product, Edit: edit}),
		templates.ProductTableOOB(s.tableView(res.Page)),
	))
}

// respondFormError re-renders a form after a failed submission.
//
// HTMX requests get the form partial in place with field errors or an alert.
// JSON requests get the usual error body. Plain form posts get the whole
// page built by fullPage around the failed form.
func (s *Server) respondFormError(w http.ResponseWriter, r *http.Request, view templates.FormView, err error, fullPage func(templates.FormView) templ.Component) {
	status := statusFor(err)

	if wantsJSON(r) {
		respondError(w, r, err, status)
		return
	}

	var formErr *core.FormError
	if errors.As(err, &formErr) {
		view.Errors = formErr
	} else {
		msg := core.MapError(err)
		view.Alert = &msg
	}

	logging.FromContext(r.Context()).Warn("form submission failed",
		"path", r.URL.Path,
		"status", status,
		"error", err.Error(),
	)

	if isHTMX(r) {
		render(w, r, status, templates.ProductForm(view))
		return
	}
	render(w, r, status, fullPage(view))
}
