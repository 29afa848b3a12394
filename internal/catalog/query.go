package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// SortCriterion names one of the grid's supported orderings.
type SortCriterion string

const (
	SortUnsorted  SortCriterion = ""
	SortPriceAsc  SortCriterion = "price-asc"
	SortPriceDesc SortCriterion = "price-desc"
	SortNameAsc   SortCriterion = "name-asc"
	SortNameDesc  SortCriterion = "name-desc"
)

// ParseSortCriterion maps a raw query value onto a known criterion. Unknown
// values fall back to the original catalog order.
func ParseSortCriterion(raw string) SortCriterion {
	switch SortCriterion(strings.TrimSpace(raw)) {
	case SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc:
		return SortCriterion(strings.TrimSpace(raw))
	}
	return SortUnsorted
}

// Search keeps products whose name or description contains the query,
// case-insensitively. An empty query passes everything through.
func Search(products []Product, query string) []Product {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return copyProducts(products)
	}

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Description), query) {
			out = append(out, p)
		}
	}
	return out
}

// FilterByPriceRange keeps products whose price falls inside the inclusive
// bounds. A nil bound means unbounded on that side.
func FilterByPriceRange(products []Product, min, max *decimal.Decimal) []Product {
	if min == nil && max == nil {
		return copyProducts(products)
	}

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if min != nil && p.Price.LessThan(*min) {
			continue
		}
		if max != nil && p.Price.GreaterThan(*max) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SortBy orders a copy of products by the given criterion. SortUnsorted keeps
// the incoming order.
func SortBy(products []Product, criterion SortCriterion) []Product {
	out := copyProducts(products)
	switch criterion {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price) })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.GreaterThan(out[j].Price) })
	case SortNameAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	case SortNameDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) > strings.ToLower(out[j].Name)
		})
	}
	return out
}

// BrowseQuery bundles the grid's display controls.
type BrowseQuery struct {
	Search   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Sort     SortCriterion
}

// Browse composes search, price filter and sort, in that order, each stage
// operating on the previous stage's output. The input slice is never mutated.
func Browse(products []Product, q BrowseQuery) []Product {
	result := Search(products, q.Search)
	result = FilterByPriceRange(result, q.MinPrice, q.MaxPrice)
	return SortBy(result, q.Sort)
}
