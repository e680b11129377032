// Package web provides HTTP handlers for the catalog admin.
// This file contains shared utilities and helper functions used across handlers.
package web

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/catalog-admin/internal/core"
	"github.com/JonMunkholm/catalog-admin/internal/logging"
	"github.com/JonMunkholm/catalog-admin/internal/web/templates"
	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
)

// maxBodySize bounds JSON and form bodies.
const maxBodySize = 1 << 20

// render buffers c and writes it with status, so a render failure can still
// produce a clean 500.
func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		logging.FromContext(r.Context()).Error("render failed", "path", r.URL.Path, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// tableView builds the table view model for page.
func (s *Server) tableView(page core.Page) templates.TableView {
	vm := templates.TableView{
		Page:      page,
		PageSizes: s.service.PageSizes(),
		Loaded:    s.service.Status().Loaded,
	}
	if err := s.service.LoadErr(); err != nil {
		msg := core.MapError(err)
		vm.LoadError = &msg
	}
	return vm
}

// respondTable answers a table command: the table partial for HTMX, a
// redirect back to the page otherwise.
func (s *Server) respondTable(w http.ResponseWriter, r *http.Request, page core.Page) {
	if !isHTMX(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	render(w, r, http.StatusOK, templates.ProductTable(s.tableView(page)))
}

// productID parses the {id} URL parameter.
func productID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, malformed("invalid product id %q", raw)
	}
	return id, nil
}

// parseProductForm reads a ProductForm from a JSON body or form values.
func parseProductForm(w http.ResponseWriter, r *http.Request) (core.ProductForm, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	if wantsJSON(r) {
		var form core.ProductForm
		if err := decodeJSON(r.Body, &form); err != nil {
			return core.ProductForm{}, err
		}
		return form, nil
	}

	if err := r.ParseForm(); err != nil {
		return core.ProductForm{}, malformed("parse form: %v", err)
	}
	return core.ProductForm{
		Title:       r.PostForm.Get("title"),
		Price:       r.PostForm.Get("price"),
		Description: r.PostForm.Get("description"),
		CategoryID:  r.PostForm.Get("categoryId"),
		Images:      r.PostForm.Get("images"),
	}, nil
}

// decodeJSON decodes exactly one JSON value from body into v.
func decodeJSON(body io.Reader, v any) error {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return malformed("decode json: %v", err)
	}
	return nil
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}
