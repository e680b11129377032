// Package catalog is the client side of the remote product catalog API.
//
// It owns the wire types (Product, Category, ProductInput) and a thin
// request/response wrapper around the three operations the admin table
// needs: list every product, update one product, create one product.
// There is no pagination, caching, authentication or retrying at this
// level; every call is a fresh round trip and failures surface immediately.
package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The API speaks JSON numbers for prices, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Category is the category reference embedded in a product.
type Category struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug,omitempty"`
	Image string `json:"image,omitempty"`
}

// Product is a catalog record as returned by the API.
// ID is assigned by the API and is zero before creation.
type Product struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    *Category       `json:"category,omitempty"`
	Images      []string        `json:"images"`
	CreationAt  *time.Time      `json:"creationAt,omitempty"`
	UpdatedAt   *time.Time      `json:"updatedAt,omitempty"`
}

// CategoryName returns the category display name, or "" when unset.
func (p Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}

// CategoryID returns the category id, or 0 when unset.
func (p Product) CategoryID() int {
	if p.Category == nil {
		return 0
	}
	return p.Category.ID
}

// Thumbnail returns the first image URL, or "" for products without images.
func (p Product) Thumbnail() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// ProductInput is the full replacement payload sent on create and update.
// It never carries an id: the API assigns one on create and takes it from
// the path on update.
type ProductInput struct {
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	CategoryID  int             `json:"categoryId"`
	Images      []string        `json:"images"`
}
