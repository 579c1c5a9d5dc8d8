package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/imarket-ke/imarket-backend/api/responses"
	"github.com/imarket-ke/imarket-backend/api/validators"
	"github.com/imarket-ke/imarket-backend/internal/catalog"
	"github.com/imarket-ke/imarket-backend/pkg/enums"
	pkgerrors "github.com/imarket-ke/imarket-backend/pkg/errors"
	"github.com/imarket-ke/imarket-backend/pkg/logger"
	"github.com/imarket-ke/imarket-backend/pkg/pagination"
)

func pageParams(r *http.Request) (pagination.Params, error) {
	page, err := validators.QueryInt(r, "page", 0)
	if err != nil {
		return pagination.Params{}, err
	}
	size, err := validators.QueryInt(r, "size", 0)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{Page: page, Size: size}, nil
}

func priceRange(r *http.Request) (*catalog.PriceRange, error) {
	minRaw := validators.Query(r, "minPrice")
	maxRaw := validators.Query(r, "maxPrice")
	if minRaw == "" && maxRaw == "" {
		return nil, nil
	}

	out := &catalog.PriceRange{}
	if minRaw != "" {
		min, err := decimal.NewFromString(minRaw)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "minPrice must be a number")
		}
		out.Min = min
	}
	if maxRaw != "" {
		max, err := decimal.NewFromString(maxRaw)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "maxPrice must be a number")
		}
		out.Max = &max
	}
	return out, nil
}

// ListProducts serves the general-retail listing with filters, sort
// and load-more pagination.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		prices, err := priceRange(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := catalog.ProductFilter{
			Search:      validators.Query(r, "search"),
			Category:    validators.Query(r, "category"),
			SubCategory: validators.Query(r, "subCategory"),
			Brand:       validators.Query(r, "brand"),
			Price:       prices,
			SortBy:      validators.Query(r, "sortBy"),
		}

		result, err := svc.ListProducts(r.Context(), filter, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// GetProduct serves one product by id.
func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, err := svc.GetProduct(r.Context(), chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// ListOfficeProducts serves the office-supplies listing.
func ListOfficeProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := catalog.OfficeFilter{
			Category: validators.Query(r, "category"),
			SortBy:   validators.Query(r, "sortBy"),
		}
		if raw := validators.Query(r, "minPrice"); raw != "" {
			min, err := decimal.NewFromString(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "minPrice must be a number"))
				return
			}
			filter.MinPrice = &min
		}
		if raw := validators.Query(r, "maxPrice"); raw != "" {
			max, err := decimal.NewFromString(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "maxPrice must be a number"))
				return
			}
			filter.MaxPrice = &max
		}

		result, err := svc.ListOfficeProducts(r.Context(), filter, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ListCars serves the vehicle listing.
func ListCars(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		prices, err := priceRange(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		year, err := validators.QueryInt(r, "year", 0)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		imported, err := validators.QueryBool(r, "imported")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := catalog.CarFilter{
			Search:     validators.Query(r, "search"),
			Make:       validators.Query(r, "make"),
			Model:      validators.Query(r, "model"),
			Year:       year,
			EngineType: validators.Query(r, "engineType"),
			Imported:   imported,
			Price:      prices,
		}

		result, err := svc.ListCars(r.Context(), filter, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// GetCar serves one vehicle by its make-model-year key.
func GetCar(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		car, err := svc.GetCar(r.Context(), chi.URLParam(r, "carKey"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, car)
	}
}

// ListProperties serves the real-estate listing.
func ListProperties(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		prices, err := priceRange(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		bedrooms, err := validators.QueryInt(r, "bedrooms", catalog.AnyBedrooms)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		bathrooms, err := validators.QueryFloat(r, "bathrooms", 0)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := catalog.PropertyFilter{
			Search:       validators.Query(r, "search"),
			PropertyType: validators.Query(r, "propertyType"),
			Bedrooms:     bedrooms,
			Bathrooms:    bathrooms,
			Price:        prices,
			SortBy:       validators.Query(r, "sortBy"),
		}

		result, err := svc.ListProperties(r.Context(), filter, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// GetProperty serves one property by id.
func GetProperty(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		property, err := svc.GetProperty(r.Context(), chi.URLParam(r, "propertyID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, property)
	}
}

// Suggest serves typeahead suggestions for the shop's search box.
func Suggest(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shop, err := shopParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		query := validators.Query(r, "q")

		var result []catalog.Suggestion
		switch shop {
		case enums.ShopClickNGet:
			result = svc.SuggestProducts(r.Context(), query)
		case enums.ShopAutoGiant:
			result = svc.SuggestCars(r.Context(), query)
		case enums.ShopSoko:
			result = svc.SuggestProperties(r.Context(), query)
		default:
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "shop "+string(shop)+" has no search suggestions"))
			return
		}
		if result == nil {
			result = []catalog.Suggestion{}
		}
		responses.WriteSuccess(w, result)
	}
}
