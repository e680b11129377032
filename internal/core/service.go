package core

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/JonMunkholm/catalog-admin/internal/audit"
	"github.com/JonMunkholm/catalog-admin/internal/catalog"
	"github.com/JonMunkholm/catalog-admin/internal/logging"
	"github.com/JonMunkholm/catalog-admin/internal/metrics"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/language"
)

// ErrProductNotFound is returned when an id is not in the loaded catalog.
var ErrProductNotFound = errors.New("product not found")

// DefaultPageSizes are the page sizes offered by the page-size selector.
var DefaultPageSizes = []int{5, 10, 20, 50}

// CatalogClient is the remote catalog API as seen by the service.
// Satisfied by *catalog.Client.
type CatalogClient interface {
	ListAll(ctx context.Context) ([]catalog.Product, error)
	Update(ctx context.Context, id int, input catalog.ProductInput) (catalog.Product, error)
	Create(ctx context.Context, input catalog.ProductInput) (catalog.Product, error)
}

// Options configures a Service. The zero value is usable.
type Options struct {
	PageSize         int          // initial page size (default DefaultPageSize)
	PageSizes        []int        // allowed page sizes; empty allows any positive size
	PlaceholderImage string       // substituted when a new product has no images
	Language         language.Tag // collation for title sorting (default English)
	Recorder         audit.Recorder
	Metrics          *metrics.Metrics
	Now              func() time.Time
}

// Service is the single coordinator that owns the catalog state.
//
// Every command runs its state step to completion under one lock, so no two
// state changes or pipeline runs interleave. Remote calls are made outside
// the lock; their results are applied in a second locked step.
type Service struct {
	client      CatalogClient
	recorder    audit.Recorder
	metrics     *metrics.Metrics
	pipeline    Pipeline
	pageSizes   []int
	placeholder string
	now         func() time.Time

	mu    sync.Mutex
	state *State

	loads    singleflight.Group
	inflight *InFlight
}

// NewService creates a service with an empty catalog. Call Load to populate it.
func NewService(client CatalogClient, opts Options) *Service {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.PlaceholderImage == "" {
		opts.PlaceholderImage = DefaultPlaceholderImage
	}
	if opts.Language == language.Und {
		opts.Language = language.English
	}
	if opts.Recorder == nil {
		opts.Recorder = audit.NewMemory(audit.DefaultMemoryCapacity)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Service{
		client:      client,
		recorder:    opts.Recorder,
		metrics:     opts.Metrics,
		pipeline:    NewPipeline(opts.Language),
		pageSizes:   slices.Clone(opts.PageSizes),
		placeholder: opts.PlaceholderImage,
		now:         opts.Now,
		state:       NewState(opts.PageSize),
		inflight:    NewInFlight(),
	}
}

// PageSizes returns the allowed page sizes (nil when any size is allowed).
func (s *Service) PageSizes() []int {
	return slices.Clone(s.pageSizes)
}

// PlaceholderImage returns the image substituted for image-less creates.
func (s *Service) PlaceholderImage() string {
	return s.placeholder
}

// Recorder returns the audit recorder.
func (s *Service) Recorder() audit.Recorder {
	return s.recorder
}

// update runs fn against the state and then the pipeline, under the lock.
func (s *Service) update(fn func(st *State) error) (Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s.state); err != nil {
		return s.pipeline.Compute(s.state), err
	}
	return s.pipeline.Compute(s.state), nil
}

// View runs the pipeline over the current state.
func (s *Service) View() Page {
	page, _ := s.update(func(*State) error { return nil })
	return page
}

// SetSearch applies new search text and returns to page 1.
func (s *Service) SetSearch(text string) Page {
	page, _ := s.update(func(st *State) error {
		st.SetSearch(text)
		return nil
	})
	return page
}

// SetPageSize changes the page size and returns to page 1.
func (s *Service) SetPageSize(n int) (Page, error) {
	return s.update(func(st *State) error {
		if len(s.pageSizes) > 0 && !slices.Contains(s.pageSizes, n) {
			return fmt.Errorf("%w: %d", ErrInvalidPageSize, n)
		}
		return st.SetPageSize(n)
	})
}

// ToggleSort activates a sort column and returns to page 1.
func (s *Service) ToggleSort(field SortField) Page {
	page, _ := s.update(func(st *State) error {
		st.ToggleSort(field)
		return nil
	})
	return page
}

// SetSort sorts by an explicit field and direction and returns to page 1.
func (s *Service) SetSort(field SortField, dir SortDirection) Page {
	page, _ := s.update(func(st *State) error {
		st.SetSort(field, dir)
		return nil
	})
	return page
}

// GoToPage jumps to page n, clamped into range.
func (s *Service) GoToPage(n int) Page {
	page, _ := s.update(func(st *State) error {
		st.SetPage(n)
		return nil
	})
	return page
}

// NextPage moves forward one page.
func (s *Service) NextPage() Page {
	page, _ := s.update(func(st *State) error {
		st.NextPage()
		return nil
	})
	return page
}

// PrevPage moves back one page.
func (s *Service) PrevPage() Page {
	page, _ := s.update(func(st *State) error {
		st.PrevPage()
		return nil
	})
	return page
}

// Find returns a product from the loaded catalog.
func (s *Service) Find(id int) (catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.state.Find(id)
	if !ok {
		return catalog.Product{}, fmt.Errorf("%w: id %d", ErrProductNotFound, id)
	}
	return p, nil
}

// Load fetches the full catalog and replaces the local product list.
//
// Concurrent calls share a single round trip. A failed load leaves the
// product list as it was and records the error, which Status reports so the
// UI can offer a retry.
func (s *Service) Load(ctx context.Context) (Page, error) {
	// The shared call must not die with whichever caller started it.
	loadCtx := context.WithoutCancel(ctx)

	_, err, _ := s.loads.Do("load", func() (any, error) {
		return nil, s.load(loadCtx)
	})
	return s.View(), err
}

func (s *Service) load(ctx context.Context) error {
	logger := logging.FromContext(ctx)
	start := time.Now()

	products, err := s.client.ListAll(ctx)
	elapsed := time.Since(start)
	s.metrics.ObserveAPICall("list", err, elapsed)

	entry := audit.Entry{Action: audit.ActionLoad, Duration: elapsed.Milliseconds()}

	s.mu.Lock()
	if err != nil {
		s.state.FailLoad(err)
	} else {
		s.state.ReplaceAll(products, s.now())
	}
	count := s.state.Len()
	s.mu.Unlock()

	if err != nil {
		logger.Error("catalog load failed", "error", err, "duration_ms", elapsed.Milliseconds())
		entry.Outcome = audit.OutcomeFailure
		entry.ErrorCode = MapError(err).Code
		entry.Error = err.Error()
		s.record(ctx, entry)
		return fmt.Errorf("load catalog: %w", err)
	}

	s.metrics.SetProducts(count)
	logger.Info("catalog loaded", "products", len(products), "duration_ms", elapsed.Milliseconds())
	entry.Outcome = audit.OutcomeSuccess
	entry.Count = len(products)
	s.record(ctx, entry)
	return nil
}

// Status summarizes the service for health checks and the UI.
type Status struct {
	Loaded    bool           `json:"loaded"`
	LoadedAt  time.Time      `json:"loadedAt,omitzero"`
	LoadError string         `json:"loadError,omitempty"`
	Products  int            `json:"products"`
	InFlight  InFlightStatus `json:"inFlight"`
}

// Status returns the current load state and outstanding submissions.
func (s *Service) Status() Status {
	s.mu.Lock()
	st := Status{
		Loaded:   s.state.Loaded(),
		LoadedAt: s.state.LoadedAt(),
		Products: s.state.Len(),
	}
	if err := s.state.LoadErr(); err != nil {
		st.LoadError = err.Error()
	}
	s.mu.Unlock()

	st.InFlight = s.inflight.Status()
	return st
}

// LoadErr returns the error of the most recent load, or nil.
func (s *Service) LoadErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.LoadErr()
}

// WaitForSubmissions blocks until outstanding create/edit calls finish or
// ctx is done. Used during graceful shutdown.
func (s *Service) WaitForSubmissions(ctx context.Context) error {
	return s.inflight.WaitForDrain(ctx)
}

// SubmissionsInFlight returns the number of outstanding create/edit calls.
func (s *Service) SubmissionsInFlight() int {
	return s.inflight.ActiveCount()
}

func (s *Service) record(ctx context.Context, e audit.Entry) {
	if err := s.recorder.Record(ctx, e); err != nil {
		logging.FromContext(ctx).Warn("audit record failed", "action", e.Action, "error", err)
	}
}
