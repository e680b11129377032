package core

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/JonMunkholm/catalog-admin/internal/catalog"
)

// DefaultPageSize is the number of rows shown per page when none is configured.
const DefaultPageSize = 10

// ErrInvalidPageSize is returned when a page size is not positive or not
// one of the configured choices.
var ErrInvalidPageSize = errors.New("invalid page size")

// Query is the current list query: search text and sort.
type Query struct {
	SearchText    string        `json:"searchText"` // lowercased, trimmed
	SortField     SortField     `json:"sortField"`
	SortDirection SortDirection `json:"sortDirection"` // meaningful only when SortField != SortNone
}

// State is the in-memory catalog: the full unfiltered product list plus the
// current query and pagination. It is the single source of truth for the UI.
//
// State is not safe for concurrent use; Service serializes access to it.
// Every mutation goes through a named method, and each method re-clamps the
// current page so it never points past the last page of the filtered list.
type State struct {
	products []catalog.Product
	search   string
	sort     SortToggle
	page     int
	pageSize int

	loaded   bool
	loadedAt time.Time
	loadErr  error
}

// NewState creates an empty state on page 1.
func NewState(pageSize int) *State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &State{page: 1, pageSize: pageSize}
}

// Products returns a copy of the full product list in its stored order.
func (s *State) Products() []catalog.Product {
	return slices.Clone(s.products)
}

// Len returns the size of the unfiltered product list.
func (s *State) Len() int {
	return len(s.products)
}

// Query returns the current search and sort parameters.
func (s *State) Query() Query {
	field, dir := s.sort.Active()
	return Query{SearchText: s.search, SortField: field, SortDirection: dir}
}

// Sort returns the per-field toggle state.
func (s *State) Sort() SortToggle {
	return s.sort
}

// Page returns the current 1-based page.
func (s *State) Page() int {
	return s.page
}

// PageSize returns the number of rows per page.
func (s *State) PageSize() int {
	return s.pageSize
}

// Loaded reports whether a bulk load has succeeded at least once.
func (s *State) Loaded() bool {
	return s.loaded
}

// LoadedAt returns the time of the last successful load.
func (s *State) LoadedAt() time.Time {
	return s.loadedAt
}

// LoadErr returns the error of the most recent load, or nil if it succeeded.
func (s *State) LoadErr() error {
	return s.loadErr
}

// ReplaceAll swaps in a freshly loaded product list.
func (s *State) ReplaceAll(products []catalog.Product, at time.Time) {
	s.products = slices.Clone(products)
	s.loaded = true
	s.loadedAt = at
	s.loadErr = nil
	s.clamp()
}

// FailLoad records a failed load. The product list is left untouched.
func (s *State) FailLoad(err error) {
	s.loadErr = err
}

// SetSearch sets the search text and returns to page 1.
func (s *State) SetSearch(text string) {
	s.search = strings.ToLower(strings.TrimSpace(text))
	s.page = 1
	s.clamp()
}

// SetPageSize changes the page size and returns to page 1.
func (s *State) SetPageSize(n int) error {
	if n <= 0 {
		return ErrInvalidPageSize
	}
	s.pageSize = n
	s.page = 1
	s.clamp()
	return nil
}

// ToggleSort activates field in the sort toggle and returns to page 1.
func (s *State) ToggleSort(field SortField) {
	s.sort = s.sort.Activate(field)
	s.page = 1
	s.clamp()
}

// SetSort sorts by field in direction dir and returns to page 1.
// SortNone switches sorting off. Unlike ToggleSort it is idempotent.
func (s *State) SetSort(field SortField, dir SortDirection) {
	s.sort = s.sort.Set(field, dir)
	s.page = 1
	s.clamp()
}

// SetPage moves to page n, clamped into the valid range.
// Search and sort are preserved.
func (s *State) SetPage(n int) {
	s.page = n
	s.clamp()
}

// NextPage moves forward one page if there is one.
func (s *State) NextPage() {
	s.SetPage(s.page + 1)
}

// PrevPage moves back one page if there is one.
func (s *State) PrevPage() {
	s.SetPage(s.page - 1)
}

// Find returns the product with the given id.
func (s *State) Find(id int) (catalog.Product, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return catalog.Product{}, false
	}
	return s.products[i], true
}

// ReplaceProduct replaces the entry with the given id by p, as is and in
// place. It reports whether a matching entry existed.
func (s *State) ReplaceProduct(id int, p catalog.Product) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.products[i] = p
	s.clamp()
	return true
}

// PrependProduct adds p to the front of the list.
func (s *State) PrependProduct(p catalog.Product) {
	s.products = slices.Insert(s.products, 0, p)
	s.clamp()
}

func (s *State) indexOf(id int) int {
	return slices.IndexFunc(s.products, func(p catalog.Product) bool {
		return p.ID == id
	})
}

// pageCount returns the number of pages of the filtered list (at least 1).
func (s *State) pageCount() int {
	return pageCountFor(countMatches(s.products, s.search), s.pageSize)
}

// clamp keeps page within [1, pageCount].
func (s *State) clamp() {
	if last := s.pageCount(); s.page > last {
		s.page = last
	}
	if s.page < 1 {
		s.page = 1
	}
}
