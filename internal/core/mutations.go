package core

import (
	"context"
	"errors"
	"time"

	"github.com/JonMunkholm/catalog-admin/internal/audit"
	"github.com/JonMunkholm/catalog-admin/internal/catalog"
	"github.com/JonMunkholm/catalog-admin/internal/logging"
)

// Result is the outcome of a successful create or edit.
type Result struct {
	// Product is the server's canonical record.
	Product catalog.Product `json:"product"`

	// Applied is false when an edit succeeded remotely but the product was
	// no longer in the local list, so nothing was replaced.
	Applied bool `json:"applied"`

	// Page is the pipeline output after the change.
	Page Page `json:"page"`
}

// ApplyEdit validates form, sends it as a full replacement for product id
// and, on success, replaces the local entry with the server's response.
//
// If no local entry has that id (it disappeared in a reload while the call
// was outstanding) the edit still counts as a success; Result.Applied is
// false and local state is unchanged. On any failure local state is left
// untouched.
func (s *Service) ApplyEdit(ctx context.Context, id int, form ProductForm) (Result, error) {
	logger := logging.WithFields(ctx, "op", "edit", "product_id", id)

	input, err := form.Parse()
	if err != nil {
		s.metrics.ObserveMutation("edit", "invalid")
		return Result{}, err
	}

	key := editFormKey(id)
	if !s.inflight.TryAcquire(key) {
		s.metrics.ObserveMutation("edit", "rejected")
		return Result{}, ErrSubmissionInFlight
	}
	defer s.inflight.Release(key)

	start := time.Now()
	updated, err := s.client.Update(ctx, id, input)
	elapsed := time.Since(start)
	s.metrics.ObserveAPICall("update", err, elapsed)

	entry := audit.Entry{
		Action:    audit.ActionUpdate,
		ProductID: id,
		Title:     input.Title,
		Price:     input.Price.String(),
		Duration:  elapsed.Milliseconds(),
	}

	if err != nil {
		logger.Warn("product update failed", "error", err, "duration_ms", elapsed.Milliseconds())
		s.metrics.ObserveMutation("edit", "failure")
		s.recordFailure(ctx, entry, err)
		return Result{}, err
	}

	// The path id picks the local entry; the response replaces it verbatim.
	if updated.ID != id {
		logger.Warn("update response id differs from request", "response_id", updated.ID)
	}

	var applied bool
	page, _ := s.update(func(st *State) error {
		applied = st.ReplaceProduct(id, updated)
		return nil
	})

	entry.Outcome = audit.OutcomeSuccess
	if !applied {
		entry.Outcome = audit.OutcomeNoop
		logger.Warn("updated product is no longer in the local catalog")
	}
	s.metrics.ObserveMutation("edit", string(entry.Outcome))
	s.record(ctx, entry)

	logger.Info("product updated", "applied", applied, "duration_ms", elapsed.Milliseconds())
	return Result{Product: updated, Applied: applied, Page: page}, nil
}

// ApplyCreate validates form, substitutes the placeholder image when no
// images were given, creates the product remotely and, on success, prepends
// the returned record (with its new id) to the local list.
func (s *Service) ApplyCreate(ctx context.Context, form ProductForm) (Result, error) {
	logger := logging.WithFields(ctx, "op", "create")

	input, err := form.ParseForCreate(s.placeholder)
	if err != nil {
		s.metrics.ObserveMutation("create", "invalid")
		return Result{}, err
	}

	if !s.inflight.TryAcquire(createFormKey) {
		s.metrics.ObserveMutation("create", "rejected")
		return Result{}, ErrSubmissionInFlight
	}
	defer s.inflight.Release(createFormKey)

	start := time.Now()
	created, err := s.client.Create(ctx, input)
	elapsed := time.Since(start)
	s.metrics.ObserveAPICall("create", err, elapsed)

	entry := audit.Entry{
		Action:   audit.ActionCreate,
		Title:    input.Title,
		Price:    input.Price.String(),
		Duration: elapsed.Milliseconds(),
	}

	if err != nil {
		logger.Warn("product create failed", "error", err, "duration_ms", elapsed.Milliseconds())
		s.metrics.ObserveMutation("create", "failure")
		s.recordFailure(ctx, entry, err)
		return Result{}, err
	}

	var count int
	page, _ := s.update(func(st *State) error {
		st.PrependProduct(created)
		count = st.Len()
		return nil
	})
	s.metrics.SetProducts(count)

	entry.Outcome = audit.OutcomeSuccess
	entry.ProductID = created.ID
	s.metrics.ObserveMutation("create", string(entry.Outcome))
	s.record(ctx, entry)

	logger.Info("product created", "product_id", created.ID, "duration_ms", elapsed.Milliseconds())
	return Result{Product: created, Applied: true, Page: page}, nil
}

func (s *Service) recordFailure(ctx context.Context, e audit.Entry, err error) {
	e.Outcome = audit.OutcomeFailure
	e.ErrorCode = MapError(err).Code
	e.Error = err.Error()
	s.record(ctx, e)
}

// IsRemoteFailure reports whether err came from the catalog API rather
// than from local form validation or the in-flight guard.
func IsRemoteFailure(err error) bool {
	return errors.Is(err, catalog.ErrNetwork) ||
		errors.Is(err, catalog.ErrParse) ||
		errors.Is(err, catalog.ErrValidation)
}
