package catalog

import (
	"context"

	pkgerrors "github.com/imarket-ke/imarket-backend/pkg/errors"
	"github.com/imarket-ke/imarket-backend/pkg/pagination"
)

// Service exposes listing, lookup and typeahead over the loaded
// catalogs.
type Service interface {
	ListProducts(ctx context.Context, f ProductFilter, page pagination.Params) (*ProductPage, error)
	ListOfficeProducts(ctx context.Context, f OfficeFilter, page pagination.Params) (*OfficePage, error)
	ListCars(ctx context.Context, f CarFilter, page pagination.Params) (*CarPage, error)
	ListProperties(ctx context.Context, f PropertyFilter, page pagination.Params) (*PropertyPage, error)

	GetProduct(ctx context.Context, id string) (*Product, error)
	GetOfficeProduct(ctx context.Context, id string) (*OfficeProduct, error)
	GetCar(ctx context.Context, key string) (*Car, error)
	GetProperty(ctx context.Context, id string) (*Property, error)

	SuggestProducts(ctx context.Context, query string) []Suggestion
	SuggestCars(ctx context.Context, query string) []Suggestion
	SuggestProperties(ctx context.Context, query string) []Suggestion
}

// ProductPage is one cumulative window of general-retail results.
type ProductPage struct {
	Items   []Product `json:"items"`
	Total   int       `json:"total"`
	Page    int       `json:"page"`
	HasMore bool      `json:"hasMore"`
}

// OfficePage is one cumulative window of office-supplies results.
type OfficePage struct {
	Items   []OfficeProduct `json:"items"`
	Total   int             `json:"total"`
	Page    int             `json:"page"`
	HasMore bool            `json:"hasMore"`
}

// CarPage is one cumulative window of vehicle results.
type CarPage struct {
	Items   []Car `json:"items"`
	Total   int   `json:"total"`
	Page    int   `json:"page"`
	HasMore bool  `json:"hasMore"`
}

// PropertyPage is one cumulative window of real-estate results.
type PropertyPage struct {
	Items   []Property `json:"items"`
	Total   int        `json:"total"`
	Page    int        `json:"page"`
	HasMore bool       `json:"hasMore"`
}

type service struct {
	catalog        *Catalog
	maxSuggestions int
}

// NewService wires catalog dependencies.
func NewService(catalog *Catalog, maxSuggestions int) (Service, error) {
	if catalog == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog data required")
	}
	if maxSuggestions <= 0 {
		maxSuggestions = 10
	}
	return &service{catalog: catalog, maxSuggestions: maxSuggestions}, nil
}

func (s *service) ListProducts(_ context.Context, f ProductFilter, page pagination.Params) (*ProductPage, error) {
	filtered := FilterProducts(s.catalog.Products, f)
	start, end := pagination.Window(len(filtered), page.Page, page.Size)
	return &ProductPage{
		Items:   filtered[start:end],
		Total:   len(filtered),
		Page:    pagination.NormalizePage(page.Page),
		HasMore: pagination.HasMore(len(filtered), page.Page, page.Size),
	}, nil
}

func (s *service) ListOfficeProducts(_ context.Context, f OfficeFilter, page pagination.Params) (*OfficePage, error) {
	filtered := FilterOfficeProducts(s.catalog.OfficeProducts, f)
	start, end := pagination.Window(len(filtered), page.Page, page.Size)
	return &OfficePage{
		Items:   filtered[start:end],
		Total:   len(filtered),
		Page:    pagination.NormalizePage(page.Page),
		HasMore: pagination.HasMore(len(filtered), page.Page, page.Size),
	}, nil
}

func (s *service) ListCars(_ context.Context, f CarFilter, page pagination.Params) (*CarPage, error) {
	filtered := FilterCars(s.catalog.Cars, f)
	start, end := pagination.Window(len(filtered), page.Page, page.Size)
	return &CarPage{
		Items:   filtered[start:end],
		Total:   len(filtered),
		Page:    pagination.NormalizePage(page.Page),
		HasMore: pagination.HasMore(len(filtered), page.Page, page.Size),
	}, nil
}

func (s *service) ListProperties(_ context.Context, f PropertyFilter, page pagination.Params) (*PropertyPage, error) {
	filtered := FilterProperties(s.catalog.Properties, f)
	start, end := pagination.Window(len(filtered), page.Page, page.Size)
	return &PropertyPage{
		Items:   filtered[start:end],
		Total:   len(filtered),
		Page:    pagination.NormalizePage(page.Page),
		HasMore: pagination.HasMore(len(filtered), page.Page, page.Size),
	}, nil
}

func (s *service) GetProduct(_ context.Context, id string) (*Product, error) {
	for i := range s.catalog.Products {
		if s.catalog.Products[i].ID == id {
			p := s.catalog.Products[i]
			return &p, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (s *service) GetOfficeProduct(_ context.Context, id string) (*OfficeProduct, error) {
	for i := range s.catalog.OfficeProducts {
		if s.catalog.OfficeProducts[i].ItemID == id {
			p := s.catalog.OfficeProducts[i]
			return &p, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (s *service) GetCar(_ context.Context, key string) (*Car, error) {
	for i := range s.catalog.Cars {
		if s.catalog.Cars[i].MatchesKey(key) {
			c := s.catalog.Cars[i]
			return &c, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "car not found")
}

func (s *service) GetProperty(_ context.Context, id string) (*Property, error) {
	for i := range s.catalog.Properties {
		if s.catalog.Properties[i].PropertyID == id {
			p := s.catalog.Properties[i]
			return &p, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "property not found")
}

func (s *service) SuggestProducts(_ context.Context, query string) []Suggestion {
	// Product typeahead keeps a shorter dropdown than the other shops.
	limit := 5
	if limit > s.maxSuggestions {
		limit = s.maxSuggestions
	}
	return SuggestProducts(s.catalog.Products, query, limit)
}

func (s *service) SuggestCars(_ context.Context, query string) []Suggestion {
	return SuggestCars(s.catalog.Cars, query, s.maxSuggestions)
}

func (s *service) SuggestProperties(_ context.Context, query string) []Suggestion {
	return SuggestProperties(s.catalog.Properties, query, s.maxSuggestions)
}
