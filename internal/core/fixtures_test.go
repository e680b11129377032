package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/JonMunkholm/catalog-admin/internal/catalog"
	"github.com/shopspring/decimal"
)

var fixedTime = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func product(id int, title, price string) catalog.Product {
	return catalog.Product{
		ID:       id,
		Title:    title,
		Price:    decimal.RequireFromString(price),
		Category: &catalog.Category{ID: 1, Name: "Clothes"},
		Images:   []string{fmt.Sprintf("https://img.example/%d.png", id)},
	}
}

// numberedProducts returns n products titled "Item 01".."Item n" with
// prices equal to their id.
func numberedProducts(n int) []catalog.Product {
	out := make([]catalog.Product, n)
	for i := range out {
		id := i + 1
		out[i] = product(id, fmt.Sprintf("Item %02d", id), fmt.Sprint(id))
	}
	return out
}

func stateWith(products []catalog.Product, pageSize int) *State {
	s := NewState(pageSize)
	s.ReplaceAll(products, fixedTime)
	return s
}

func ids(products []catalog.Product) []int {
	out := make([]int, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

// fakeClient is an in-memory CatalogClient. Set the *Err fields to make the
// matching call fail, and block to hold calls until the channel is closed.
type fakeClient struct {
	mu sync.Mutex

	products []catalog.Product
	listErr  error

	updateResp catalog.Product
	updateErr  error
	createResp catalog.Product
	createErr  error

	block   chan struct{}
	started chan struct{}

	listCalls   int
	updateCalls int
	createCalls int
	lastInput   catalog.ProductInput
}

func (f *fakeClient) wait(ctx context.Context) error {
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.block == nil {
		return nil
	}
	select {
	case <-f.block:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeClient) ListAll(ctx context.Context) ([]catalog.Product, error) {
	f.mu.Lock()
	f.listCalls++
	f.mu.Unlock()

	if err := f.wait(ctx); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]catalog.Product(nil), f.products...), nil
}

func (f *fakeClient) Update(ctx context.Context, id int, input catalog.ProductInput) (catalog.Product, error) {
	f.mu.Lock()
	f.updateCalls++
	f.lastInput = input
	f.mu.Unlock()

	if err := f.wait(ctx); err != nil {
		return catalog.Product{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return catalog.Product{}, f.updateErr
	}
	return f.updateResp, nil
}

func (f *fakeClient) Create(ctx context.Context, input catalog.ProductInput) (catalog.Product, error) {
	f.mu.Lock()
	f.createCalls++
	f.lastInput = input
	f.mu.Unlock()

	if err := f.wait(ctx); err != nil {
		return catalog.Product{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return catalog.Product{}, f.createErr
	}
	return f.createResp, nil
}
