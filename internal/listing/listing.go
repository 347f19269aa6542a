// Package listing implements the product browsing pipeline: category, brand
// and price filters composed with a stable sort and fixed-size pagination.
// Everything here is pure; the same inputs always produce the same page.
package listing

import (
	"sort"

	"storefront-service/internal/models"
)

// PageSize is the number of products shown per page.
const PageSize = 16

// CategoryAll is the sentinel category matching every product.
const CategoryAll = "All"

// SortMode selects the listing order. An unrecognized mode leaves the
// filtered order untouched.
type SortMode string

const (
	SortReleaseDateAsc  SortMode = "Release Date: Asc"
	SortReleaseDateDesc SortMode = "Release Date: Desc"
	SortPriceAsc        SortMode = "Price: Asc"
	SortPriceDesc       SortMode = "Price: Desc"
)

// State is the current browsing state. Price bounds are seeded once from the
// full catalog and do not narrow when other filters are applied. Mutating a
// filter through the setters resets the page to 1, so a filter change can
// never leave the view on a page past the end of the new result set.
type State struct {
	Category string
	Brands   []string
	MinPrice float64
	MaxPrice float64
	Sort     SortMode
	Page     int
}

// NewState builds the initial state for a catalog: category "All", no brand
// selection, price bounds spanning the full catalog, newest first, page 1.
func NewState(products []models.Product) State {
	s := State{
		Category: CategoryAll,
		Sort:     SortReleaseDateDesc,
		Page:     1,
	}

	for i, p := range products {
		if i == 0 || p.Price < s.MinPrice {
			s.MinPrice = p.Price
		}
		if i == 0 || p.Price > s.MaxPrice {
			s.MaxPrice = p.Price
		}
	}

	return s
}

// SetCategory selects a category and returns to the first page.
func (s *State) SetCategory(category string) {
	s.Category = category
	s.Page = 1
}

// SetBrands replaces the brand selection and returns to the first page. An
// empty selection matches every brand.
func (s *State) SetBrands(brands []string) {
	s.Brands = brands
	s.Page = 1
}

// SetPriceRange replaces the inclusive price range and returns to the first
// page.
func (s *State) SetPriceRange(min, max float64) {
	s.MinPrice = min
	s.MaxPrice = max
	s.Page = 1
}

// SetSort selects the sort mode and returns to the first page.
func (s *State) SetSort(mode SortMode) {
	s.Sort = mode
	s.Page = 1
}

// Result is one page of the filtered, sorted listing.
type Result struct {
	Items      []models.Product
	Page       int
	TotalPages int
	Total      int
}

// Apply runs the full pipeline over products: filter, stable sort, paginate.
// The input slice is not modified. A page outside [1, TotalPages] yields an
// empty Items slice.
func Apply(products []models.Product, s State) Result {
	filtered := Filter(products, s)
	Sort(filtered, s.Sort)
	return Paginate(filtered, s.Page)
}

// Filter keeps the products matching the category, brand and price
// predicates. The predicates are independent, so their order does not matter.
func Filter(products []models.Product, s State) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if !matchCategory(p, s.Category) {
			continue
		}
		if !matchBrand(p, s.Brands) {
			continue
		}
		if p.Price < s.MinPrice || p.Price > s.MaxPrice {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchCategory(p models.Product, category string) bool {
	return category == CategoryAll || p.Category == category
}

func matchBrand(p models.Product, brands []string) bool {
	if len(brands) == 0 {
		return true
	}
	for _, b := range brands {
		if p.Brand == b {
			return true
		}
	}
	return false
}

// Sort orders products in place with a stable sort. Unknown modes are a
// no-op, preserving the incoming order.
func Sort(products []models.Product, mode SortMode) {
	var less func(a, b models.Product) bool

	switch mode {
	case SortReleaseDateAsc:
		less = func(a, b models.Product) bool { return a.ReleaseDate.Before(b.ReleaseDate.Time) }
	case SortReleaseDateDesc:
		less = func(a, b models.Product) bool { return b.ReleaseDate.Before(a.ReleaseDate.Time) }
	case SortPriceAsc:
		less = func(a, b models.Product) bool { return a.Price < b.Price }
	case SortPriceDesc:
		less = func(a, b models.Product) bool { return b.Price < a.Price }
	default:
		return
	}

	sort.SliceStable(products, func(i, j int) bool { return less(products[i], products[j]) })
}

// Paginate slices out the requested page. TotalPages is
// ceil(len(products)/PageSize); a page outside the valid range produces an
// empty page rather than an error.
func Paginate(products []models.Product, page int) Result {
	total := len(products)
	totalPages := (total + PageSize - 1) / PageSize

	r := Result{Page: page, TotalPages: totalPages, Total: total}

	if page < 1 || page > totalPages {
		r.Items = []models.Product{}
		return r
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if end > total {
		end = total
	}

	r.Items = make([]models.Product, end-start)
	copy(r.Items, products[start:end])
	return r
}
