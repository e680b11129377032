package web

import (
	"net/http"
	"strconv"

	"github.com/JonMunkholm/catalog-admin/internal/core"
	"github.com/JonMunkholm/catalog-admin/internal/logging"
	"github.com/JonMunkholm/catalog-admin/internal/web/templates"
	"github.com/go-chi/chi/v5"
)

// handleIndex renders the products page.
//
// Query parameters are applied before rendering, so links like
// /?search=shirt&pageSize=20&sort=price&dir=desc&page=2 work: search,
// pageSize, sort with dir (asc by default, sort=none switches it off) and
// page, in that order. Every parameter sets a value rather than stepping a
// toggle, so reloading the same URL shows the same view.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := s.service.View()

	if q.Has("search") {
		page = s.service.SetSearch(q.Get("search"))
	}
	if raw := q.Get("pageSize"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, r, malformed("page size %q", raw), http.StatusBadRequest)
			return
		}
		if page, err = s.service.SetPageSize(n); err != nil {
			respondError(w, r, err, statusFor(err))
			return
		}
	}
	if raw := q.Get("sort"); raw != "" {
		field, err := core.ParseSortField(raw)
		if err != nil {
			respondError(w, r, err, statusFor(err))
			return
		}
		dir, err := core.ParseSortDirection(q.Get("dir"))
		if err != nil {
			respondError(w, r, err, statusFor(err))
			return
		}
		page = s.service.SetSort(field, dir)
	}
	if q.Has("page") {
		page = s.service.GoToPage(parseIntParam(r, "page", 1))
	}

	render(w, r, http.StatusOK, templates.ProductsPage(s.tableView(page), templates.CreateForm()))
}

// handleTable renders the current table partial.
func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, templates.ProductTable(s.tableView(s.service.View())))
}

// handleSearch applies new search text.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, r, malformed("parse form: %v", err), http.StatusBadRequest)
		return
	}
	s.respondTable(w, r, s.service.SetSearch(r.PostForm.Get("search")))
}

// handlePageSize changes the number of rows per page.
func (s *Server) handlePageSize(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, r, malformed("parse form: %v", err), http.StatusBadRequest)
		return
	}

	raw := r.PostForm.Get("pageSize")
	n, err := strconv.Atoi(raw)
	if err != nil {
		respondError(w, r, malformed("page size %q", raw), http.StatusBadRequest)
		return
	}

	page, err := s.service.SetPageSize(n)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	s.respondTable(w, r, page)
}

// handleSort advances the sort toggle of one column.
func (s *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	field, err := core.ParseSortField(chi.URLParam(r, "field"))
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	s.respondTable(w, r, s.service.ToggleSort(field))
}

// handlePage navigates to a page number, or to the next or previous page.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "page")

	var page core.Page
	switch raw {
	case "next":
		page = s.service.NextPage()
	case "prev":
		page = s.service.PrevPage()
	default:
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, r, malformed("page %q", raw), http.StatusBadRequest)
			return
		}
		page = s.service.GoToPage(n)
	}
	s.respondTable(w, r, page)
}

// handleReload fetches the full catalog again.
//
// A failed reload is not an error response for the table: the table itself
// shows the failure (an error row when nothing is loaded, a banner above
// the previous products otherwise) with a retry button.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	ctx := WithRequestMetadata(r.Context(), r)

	page, err := s.service.Load(ctx)
	if err != nil {
		logging.FromContext(ctx).Warn("catalog reload failed", "error", err, "code", core.MapError(err).Code)
	}
	s.respondTable(w, r, page)
}
