package core

import (
	"errors"
	"slices"
	"testing"
)

func TestNewState_Defaults(t *testing.T) {
	s := NewState(0)

	if s.Page() != 1 {
		t.Errorf("Page() = %d, want 1", s.Page())
	}
	if s.PageSize() != DefaultPageSize {
		t.Errorf("PageSize() = %d, want %d", s.PageSize(), DefaultPageSize)
	}
	if s.Loaded() {
		t.Error("new state should not be loaded")
	}
	if s.Query() != (Query{}) {
		t.Errorf("Query() = %+v, want zero", s.Query())
	}
}

func TestState_SetSearchNormalizesAndResetsPage(t *testing.T) {
	s := stateWith(numberedProducts(25), 10)
	s.SetPage(3)

	s.SetSearch("  ITEM  ")

	if got := s.Query().SearchText; got != "item" {
		t.Errorf("SearchText = %q, want %q", got, "item")
	}
	if s.Page() != 1 {
		t.Errorf("Page() = %d, want 1", s.Page())
	}
}

func TestState_SetPageSize(t *testing.T) {
	s := stateWith(numberedProducts(25), 10)
	s.SetPage(2)

	if err := s.SetPageSize(20); err != nil {
		t.Fatalf("SetPageSize(20) error = %v", err)
	}
	if s.PageSize() != 20 || s.Page() != 1 {
		t.Errorf("after SetPageSize(20): size=%d page=%d, want 20 and 1", s.PageSize(), s.Page())
	}

	for _, n := range []int{0, -5} {
		if err := s.SetPageSize(n); !errors.Is(err, ErrInvalidPageSize) {
			t.Errorf("SetPageSize(%d) error = %v, want ErrInvalidPageSize", n, err)
		}
	}
	if s.PageSize() != 20 {
		t.Errorf("rejected size changed PageSize to %d", s.PageSize())
	}
}

func TestState_ToggleSortResetsPage(t *testing.T) {
	s := stateWith(numberedProducts(25), 10)
	s.SetPage(2)

	s.ToggleSort(SortPrice)

	q := s.Query()
	if q.SortField != SortPrice || q.SortDirection != Ascending {
		t.Errorf("Query() = %+v, want price asc", q)
	}
	if s.Page() != 1 {
		t.Errorf("Page() = %d, want 1", s.Page())
	}
}

func TestState_SetSort(t *testing.T) {
	s := stateWith(numberedProducts(25), 10)
	s.ToggleSort(SortPrice)
	s.SetPage(3)

	s.SetSort(SortTitle, Descending)
	s.SetSort(SortTitle, Descending)

	q := s.Query()
	if q.SortField != SortTitle || q.SortDirection != Descending {
		t.Errorf("Query() = %+v, want title desc", q)
	}
	if s.Sort().State(SortPrice) != SortOff {
		t.Error("price should be switched off")
	}
	if s.Page() != 1 {
		t.Errorf("Page() = %d, want 1", s.Page())
	}
}

func TestState_PageNavigationClamps(t *testing.T) {
	s := stateWith(numberedProducts(25), 10) // 3 pages

	tests := []struct {
		name string
		do   func()
		want int
	}{
		{"prev on first page stays", s.PrevPage, 1},
		{"next", s.NextPage, 2},
		{"next again", s.NextPage, 3},
		{"next on last page stays", s.NextPage, 3},
		{"jump past end clamps", func() { s.SetPage(99) }, 3},
		{"jump below start clamps", func() { s.SetPage(-4) }, 1},
		{"jump in range", func() { s.SetPage(2) }, 2},
	}

	for _, tt := range tests {
		tt.do()
		if s.Page() != tt.want {
			t.Errorf("%s: Page() = %d, want %d", tt.name, s.Page(), tt.want)
		}
	}
}

func TestState_ReplaceAllClampsPage(t *testing.T) {
	s := stateWith(numberedProducts(25), 10)
	s.SetPage(3)

	s.ReplaceAll(numberedProducts(4), fixedTime)

	if s.Page() != 1 {
		t.Errorf("Page() = %d, want 1 after the list shrank", s.Page())
	}
}

func TestState_FailLoadKeepsProducts(t *testing.T) {
	s := stateWith(numberedProducts(5), 10)
	loadErr := errors.New("boom")

	s.FailLoad(loadErr)

	if s.Len() != 5 {
		t.Errorf("Len() = %d, want 5", s.Len())
	}
	if !errors.Is(s.LoadErr(), loadErr) {
		t.Errorf("LoadErr() = %v, want %v", s.LoadErr(), loadErr)
	}

	s.ReplaceAll(numberedProducts(2), fixedTime)
	if s.LoadErr() != nil {
		t.Errorf("LoadErr() = %v after successful load, want nil", s.LoadErr())
	}
	if !s.LoadedAt().Equal(fixedTime) {
		t.Errorf("LoadedAt() = %v, want %v", s.LoadedAt(), fixedTime)
	}
}

func TestState_ReplaceProduct(t *testing.T) {
	s := stateWith(numberedProducts(10), 10)

	updated := product(7, "Renamed", "99.50")
	if !s.ReplaceProduct(7, updated) {
		t.Fatal("ReplaceProduct(7) = false, want true")
	}

	got, ok := s.Find(7)
	if !ok || got.Title != "Renamed" {
		t.Errorf("Find(7) = %+v, %v", got, ok)
	}
	if want := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}; !slices.Equal(ids(s.Products()), want) {
		t.Errorf("order changed: %v", ids(s.Products()))
	}

	if s.ReplaceProduct(404, product(404, "Ghost", "1")) {
		t.Error("ReplaceProduct(404) = true, want false")
	}
	if s.Len() != 10 {
		t.Errorf("Len() = %d, want 10", s.Len())
	}
}

func TestState_PrependProduct(t *testing.T) {
	s := stateWith(numberedProducts(3), 10)

	s.PrependProduct(product(42, "New", "5"))

	if want := []int{42, 1, 2, 3}; !slices.Equal(ids(s.Products()), want) {
		t.Errorf("Products() ids = %v, want %v", ids(s.Products()), want)
	}
}

func TestState_ProductsReturnsCopy(t *testing.T) {
	s := stateWith(numberedProducts(3), 10)

	got := s.Products()
	got[0].Title = "mutated"

	if p, _ := s.Find(1); p.Title == "mutated" {
		t.Error("Products() exposed internal slice")
	}
}
