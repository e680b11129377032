package web

import (
	"errors"
	"net/http"

	"github.com/JonMunkholm/catalog-admin/internal/audit"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

var errAuditUnavailable = errors.New("audit trail is not readable")

// handleAuditLog returns the most recent audit entries, newest first.
func (s *Server) handleAuditLog(w http.ResponseWriter, r *http.Request) {
	lister, ok := s.service.Recorder().(audit.Lister)
	if !ok {
		respondError(w, r, errAuditUnavailable, http.StatusNotImplemented)
		return
	}

	limit := min(parseIntParam(r, "limit", defaultAuditLimit), maxAuditLimit)

	entries, err := lister.Recent(r.Context(), limit)
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []audit.Entry{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"entries": entries,
		"limit":   limit,
	})
}
