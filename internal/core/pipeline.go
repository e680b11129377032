package core

import (
	"slices"
	"strings"

	"github.com/JonMunkholm/catalog-admin/internal/catalog"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// maxPageLinks is the number of numbered page links shown around the
// current page.
const maxPageLinks = 5

// Page is the output of the list pipeline: one page of the filtered and
// sorted product list plus the metadata needed to render pagination.
type Page struct {
	Items       []catalog.Product `json:"items"`
	TotalCount  int               `json:"totalCount"`  // filtered count, not the full list
	PageCount   int               `json:"pageCount"`   // at least 1
	CurrentPage int               `json:"currentPage"` // 1-based, within [1, PageCount]
	PageSize    int               `json:"pageSize"`
	StartItem   int               `json:"startItem"` // 1-based index of the first row shown, 0 when empty
	EndItem     int               `json:"endItem"`
	HasPrev     bool              `json:"hasPrev"`
	HasNext     bool              `json:"hasNext"`
	Links       []PageLink        `json:"links,omitempty"`
	Query       Query             `json:"query"`
	Sort        SortToggle        `json:"-"`
}

// PageLink is one entry of the pagination bar. Ellipsis entries have no number.
type PageLink struct {
	Number   int  `json:"number,omitempty"`
	Active   bool `json:"active,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// Pipeline turns a State into a Page: filter, then sort, then paginate.
// It never mutates the state and returns identical output for identical
// input.
type Pipeline struct {
	lang language.Tag
}

// NewPipeline creates a pipeline that orders titles by the collation rules
// of lang.
func NewPipeline(lang language.Tag) Pipeline {
	return Pipeline{lang: lang}
}

// Compute runs the pipeline over s.
func (p Pipeline) Compute(s *State) Page {
	q := s.Query()

	items := filterProducts(s.products, q.SearchText)
	p.sortProducts(items, q)

	total := len(items)
	pageSize := s.pageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	pageCount := pageCountFor(total, pageSize)

	page := s.page
	if page > pageCount {
		page = pageCount
	}
	if page < 1 {
		page = 1
	}

	start := min((page-1)*pageSize, total)
	end := min(start+pageSize, total)

	out := Page{
		Items:       items[start:end:end],
		TotalCount:  total,
		PageCount:   pageCount,
		CurrentPage: page,
		PageSize:    pageSize,
		HasPrev:     page > 1,
		HasNext:     page < pageCount,
		Links:       pageLinks(page, pageCount),
		Query:       q,
		Sort:        s.sort,
	}
	if end > start {
		out.StartItem = start + 1
		out.EndItem = end
	}
	return out
}

// filterProducts returns the products whose lowercased title contains
// search. The result is always a fresh slice.
func filterProducts(products []catalog.Product, search string) []catalog.Product {
	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if matches(p, search) {
			out = append(out, p)
		}
	}
	return out
}

func countMatches(products []catalog.Product, search string) int {
	n := 0
	for _, p := range products {
		if matches(p, search) {
			n++
		}
	}
	return n
}

func matches(p catalog.Product, search string) bool {
	return search == "" || strings.Contains(strings.ToLower(p.Title), search)
}

// sortProducts orders items in place. The sort is stable, so products that
// compare equal keep their stored order.
func (p Pipeline) sortProducts(items []catalog.Product, q Query) {
	var cmp func(a, b catalog.Product) int

	switch q.SortField {
	case SortTitle:
		// Collators keep internal buffers and are not safe for concurrent use.
		coll := collate.New(p.lang)
		cmp = func(a, b catalog.Product) int {
			return coll.CompareString(a.Title, b.Title)
		}
	case SortPrice:
		cmp = func(a, b catalog.Product) int {
			return a.Price.Cmp(b.Price)
		}
	default:
		return
	}

	if q.SortDirection == Descending {
		asc := cmp
		cmp = func(a, b catalog.Product) int { return -asc(a, b) }
	}

	slices.SortStableFunc(items, cmp)
}

func pageCountFor(total, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return max(1, (total+pageSize-1)/pageSize)
}

// pageLinks builds a window of up to maxPageLinks numbered links around the
// current page, with the first and last pages always reachable and gaps
// marked by ellipsis entries. A single page needs no links.
func pageLinks(current, total int) []PageLink {
	if total <= 1 {
		return nil
	}

	start := max(1, current-maxPageLinks/2)
	end := min(total, start+maxPageLinks-1)
	if end-start < maxPageLinks-1 {
		start = max(1, end-maxPageLinks+1)
	}

	var links []PageLink
	if start > 1 {
		links = append(links, PageLink{Number: 1})
		if start > 2 {
			links = append(links, PageLink{Ellipsis: true})
		}
	}
	for i := start; i <= end; i++ {
		links = append(links, PageLink{Number: i, Active: i == current})
	}
	if end < total {
		if end < total-1 {
			links = append(links, PageLink{Ellipsis: true})
		}
		links = append(links, PageLink{Number: total})
	}
	return links
}
