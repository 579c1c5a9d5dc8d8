package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// PriceRange bounds effective prices inclusively. A nil Max leaves the
// range open-ended.
type PriceRange struct {
	Min decimal.Decimal
	Max *decimal.Decimal
}

func (r *PriceRange) contains(price decimal.Decimal) bool {
	if r == nil {
		return true
	}
	if price.LessThan(r.Min) {
		return false
	}
	if r.Max != nil && price.GreaterThan(*r.Max) {
		return false
	}
	return true
}

// ProductFilter narrows the general-retail listing. Empty fields match
// everything; all set fields must match (AND semantics).
type ProductFilter struct {
	Search      string
	Category    string
	SubCategory string
	Brand       string
	Price       *PriceRange
	SortBy      string
}

// Product sort keys.
const (
	SortDateAddedDesc = "dateAdded-desc"
	SortPriceAsc      = "price-asc"
	SortPriceDesc     = "price-desc"
	SortRatingDesc    = "rating-desc"
	SortNameAsc       = "name-asc"
	SortNameDesc      = "name-desc"
	SortDateAsc       = "date-asc"
	SortDateDesc      = "date-desc"
)

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

func anyContainsFold(values []string, needle string) bool {
	for _, v := range values {
		if containsFold(v, needle) {
			return true
		}
	}
	return false
}

// FilterProducts applies f to products and returns a sorted copy. The
// input slice is never reordered.
func FilterProducts(products []Product, f ProductFilter) []Product {
	out := make([]Product, 0, len(products))
	search := strings.ToLower(strings.TrimSpace(f.Search))

	for _, p := range products {
		if search != "" &&
			!containsFold(p.Name, search) &&
			!containsFold(p.Description, search) &&
			!containsFold(p.Brand, search) &&
			!containsFold(p.Category, search) &&
			!containsFold(p.SubCategory, search) {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.SubCategory != "" && p.SubCategory != f.SubCategory {
			continue
		}
		if f.Brand != "" && p.Brand != f.Brand {
			continue
		}
		if !f.Price.contains(p.EffectivePrice()) {
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, f.SortBy)
	return out
}

// sortProducts orders in place. Unknown or empty keys keep source
// order; ties always keep source order.
func sortProducts(products []Product, sortBy string) {
	var less func(a, b Product) bool
	switch sortBy {
	case SortDateAddedDesc:
		less = func(a, b Product) bool { return a.DateAdded.After(b.DateAdded) }
	case SortPriceAsc:
		less = func(a, b Product) bool { return a.EffectivePrice().LessThan(b.EffectivePrice()) }
	case SortPriceDesc:
		less = func(a, b Product) bool { return a.EffectivePrice().GreaterThan(b.EffectivePrice()) }
	case SortRatingDesc:
		less = func(a, b Product) bool { return a.Rating > b.Rating }
	case SortNameAsc:
		less = func(a, b Product) bool { return a.Name < b.Name }
	default:
		return
	}
	sort.SliceStable(products, func(i, j int) bool { return less(products[i], products[j]) })
}

// OfficeFilter narrows the office-supplies listing.
type OfficeFilter struct {
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	SortBy   string
}

// FilterOfficeProducts applies f and returns a sorted copy.
func FilterOfficeProducts(products []OfficeProduct, f OfficeFilter) []OfficeProduct {
	out := make([]OfficeProduct, 0, len(products))
	for _, p := range products {
		if f.Category != "" && f.Category != "all" && p.Category != f.Category {
			continue
		}
		if f.MinPrice != nil && p.PriceKsh.LessThan(*f.MinPrice) {
			continue
		}
		if f.MaxPrice != nil && p.PriceKsh.GreaterThan(*f.MaxPrice) {
			continue
		}
		out = append(out, p)
	}

	switch f.SortBy {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].PriceKsh.LessThan(out[j].PriceKsh) })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].PriceKsh.GreaterThan(out[j].PriceKsh) })
	case SortNameAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	case SortNameDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name > out[j].Name })
	}
	return out
}

// CarFilter narrows the vehicle listing. Imported is a tri-state: nil
// means either.
type CarFilter struct {
	Search     string
	Make       string
	Model      string
	Year       int
	EngineType string
	Imported   *bool
	Price      *PriceRange
}

// FilterCars applies f and returns a copy sorted by year descending.
func FilterCars(cars []Car, f CarFilter) []Car {
	out := make([]Car, 0, len(cars))
	search := strings.ToLower(strings.TrimSpace(f.Search))

	for _, c := range cars {
		if search != "" &&
			!containsFold(c.Make, search) &&
			!containsFold(c.Model, search) &&
			!containsFold(c.EngineType, search) &&
			!containsFold(c.Color, search) &&
			!anyContainsFold(c.Features, search) &&
			!containsFold(c.ContactAgent.Location, search) {
			continue
		}
		if f.Make != "" && c.Make != f.Make {
			continue
		}
		if f.Model != "" && c.Model != f.Model {
			continue
		}
		if f.Year != 0 && c.Year != f.Year {
			continue
		}
		if f.EngineType != "" && !containsFold(c.EngineType, strings.ToLower(f.EngineType)) {
			continue
		}
		if f.Imported != nil && c.Imported != *f.Imported {
			continue
		}
		if !f.Price.contains(c.Price) {
			continue
		}
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Year > out[j].Year })
	return out
}

// PropertyFilter narrows the real-estate listing. Bedrooms uses
// listing buckets: -1 matches any, 0 matches studios, 5 matches five
// or more, other values match exactly. Bathrooms works the same way
// with 4 as the open-ended bucket.
type PropertyFilter struct {
	Search       string
	PropertyType string
	Bedrooms     int
	Bathrooms    float64
	Price        *PriceRange
	SortBy       string
}

// AnyBedrooms disables the bedrooms bucket filter.
const AnyBedrooms = -1

// FilterProperties applies f and returns a sorted copy.
func FilterProperties(properties []Property, f PropertyFilter) []Property {
	out := make([]Property, 0, len(properties))
	search := strings.ToLower(strings.TrimSpace(f.Search))

	for _, p := range properties {
		if search != "" &&
			!containsFold(p.Title, search) &&
			!containsFold(p.Description, search) &&
			!containsFold(p.Location.City, search) &&
			!containsFold(p.Location.County, search) &&
			!containsFold(p.PropertyType, search) &&
			!anyContainsFold(p.Features, search) {
			continue
		}
		if f.PropertyType != "" && p.PropertyType != f.PropertyType {
			continue
		}
		if !matchesBedrooms(p.Bedrooms, f.Bedrooms) {
			continue
		}
		if !matchesBathrooms(p.Bathrooms, f.Bathrooms) {
			continue
		}
		if !f.Price.contains(p.Price.Amount) {
			continue
		}
		out = append(out, p)
	}

	sortProperties(out, f.SortBy)
	return out
}

func matchesBedrooms(actual, want int) bool {
	switch want {
	case AnyBedrooms:
		return true
	case 5:
		return actual >= 5
	default:
		return actual == want
	}
}

func matchesBathrooms(actual, want float64) bool {
	switch {
	case want <= 0:
		return true
	case want >= 4:
		return actual >= 4
	default:
		return actual == want
	}
}

func sortProperties(properties []Property, sortBy string) {
	switch sortBy {
	case SortPriceAsc:
		sort.SliceStable(properties, func(i, j int) bool {
			return properties[i].Price.Amount.LessThan(properties[j].Price.Amount)
		})
	case SortPriceDesc:
		sort.SliceStable(properties, func(i, j int) bool {
			return properties[i].Price.Amount.GreaterThan(properties[j].Price.Amount)
		})
	case SortDateDesc:
		sort.SliceStable(properties, func(i, j int) bool {
			return properties[i].ListingDate.After(properties[j].ListingDate)
		})
	case SortDateAsc:
		sort.SliceStable(properties, func(i, j int) bool {
			return properties[i].ListingDate.Before(properties[j].ListingDate)
		})
	default:
		// Default view is deterministic: ordered by listing id.
		sort.SliceStable(properties, func(i, j int) bool {
			return properties[i].PropertyID < properties[j].PropertyID
		})
	}
}
