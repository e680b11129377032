package web

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/catalog-admin/internal/core"
	"github.com/JonMunkholm/catalog-admin/internal/logging"
)

// handleExportCSV downloads the visible page as CSV.
// The file is built in memory first so an error can still be reported with
// a proper status.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	export, err := s.service.ExportCSV(&buf)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	logging.FromContext(r.Context()).Info("csv exported",
		"page", export.Page,
		"rows", export.Rows,
		"filename", export.Filename,
	)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

// handleStatus reports load state and outstanding submissions.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Status())
}

// handleAPIListProducts returns the current page of the table.
func (s *Server) handleAPIListProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.View())
}

// handleAPIGetProduct returns one product from the loaded catalog.
func (s *Server) handleAPIGetProduct(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, http.StatusOK, p)
}

// handleAPICreateProduct creates a product from a JSON ProductForm.
func (s *Server) handleAPICreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := WithRequestMetadata(r.Context(), r)

	form, err := parseProductForm(w, r)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	res, err := s.service.ApplyCreate(ctx, form)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/products/%d", res.Product.ID))
	writeJSON(w, http.StatusCreated, res)
}

// handleAPIEditProduct replaces a product from a JSON ProductForm.
func (s *Server) handleAPIEditProduct(w http.ResponseWriter, r *http.Request) {
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
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleAPICommand runs one table command and returns the resulting page.
func (s *Server) handleAPICommand(w http.ResponseWriter, r *http.Request) {
	ctx := WithRequestMetadata(r.Context(), r)
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var cmd core.Command
	if err := decodeJSON(r.Body, &cmd); err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	out, err := s.service.Dispatch(ctx, cmd)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, out)
}
