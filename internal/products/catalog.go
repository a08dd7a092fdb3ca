// Package products serves the catalog: a read-filter-sort over a static
// product list.
package products

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Ashira-hub/online-ordering-system/internal/domain"
)

const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNameAsc   = "name_asc"
)

// Filter narrows and orders the catalog. Zero values mean "no
// constraint"; PriceMin/PriceMax are pointers so 0 is a usable bound.
type Filter struct {
	Store    string
	Query    string
	PriceMin *float64
	PriceMax *float64
	Sort     string
}

type Catalog struct {
	items []domain.Product
}

// Load reads the product list from a JSON file.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read products file: %w", err)
	}
	var items []domain.Product
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("parse products file: %w", err)
	}
	return &Catalog{items: items}, nil
}

func NewCatalog(items []domain.Product) *Catalog {
	return &Catalog{items: items}
}

// Find applies the filter. The query is a case-insensitive substring
// match over name, description and store.
func (c *Catalog) Find(f Filter) []domain.Product {
	out := make([]domain.Product, 0, len(c.items))
	needle := strings.ToLower(f.Query)

	for _, p := range c.items {
		if f.Store != "" && f.Store != "all" && p.Store != f.Store {
			continue
		}
		if needle != "" && !matches(p, needle) {
			continue
		}
		if f.PriceMin != nil && p.Price < *f.PriceMin {
			continue
		}
		if f.PriceMax != nil && p.Price > *f.PriceMax {
			continue
		}
		out = append(out, p)
	}

	switch f.Sort {
	case SortPriceAsc:
		sort.Slice(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.Slice(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortNameAsc:
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	}

	return out
}

func matches(p domain.Product, needle string) bool {
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle) ||
		(p.Store != "" && strings.Contains(strings.ToLower(p.Store), needle))
}
