package catalog

import "strings"

// MinSuggestionQuery is the shortest query that yields suggestions.
const MinSuggestionQuery = 2

// Suggestion is a single typeahead hit.
type Suggestion struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// SuggestProducts returns up to limit typeahead matches on name, brand
// or category. Queries under two characters return nothing.
func SuggestProducts(products []Product, query string, limit int) []Suggestion {
	q := strings.ToLower(strings.TrimSpace(query))
	if len(q) < MinSuggestionQuery {
		return nil
	}

	var out []Suggestion
	for _, p := range products {
		if !containsFold(p.Name, q) && !containsFold(p.Brand, q) && !containsFold(p.Category, q) {
			continue
		}
		out = append(out, Suggestion{ID: p.ID, Label: p.Name + " (" + p.Brand + ")"})
		if len(out) >= limit {
			break
		}
	}
	return out
}

// SuggestCars returns up to limit typeahead matches on make, model,
// engine type or features.
func SuggestCars(cars []Car, query string, limit int) []Suggestion {
	q := strings.ToLower(strings.TrimSpace(query))
	if len(q) < MinSuggestionQuery {
		return nil
	}

	var out []Suggestion
	for _, c := range cars {
		if !containsFold(c.Make, q) && !containsFold(c.Model, q) &&
			!containsFold(c.EngineType, q) && !anyContainsFold(c.Features, q) {
			continue
		}
		out = append(out, Suggestion{ID: c.Key(), Label: c.Make + " " + c.Model})
		if len(out) >= limit {
			break
		}
	}
	return out
}

// SuggestProperties returns up to limit typeahead matches on title,
// city, county or property type.
func SuggestProperties(properties []Property, query string, limit int) []Suggestion {
	q := strings.ToLower(strings.TrimSpace(query))
	if len(q) < MinSuggestionQuery {
		return nil
	}

	var out []Suggestion
	for _, p := range properties {
		if !containsFold(p.Title, q) && !containsFold(p.Location.City, q) &&
			!containsFold(p.Location.County, q) && !containsFold(p.PropertyType, q) {
			continue
		}
		out = append(out, Suggestion{ID: p.PropertyID, Label: p.Title})
		if len(out) >= limit {
			break
		}
	}
	return out
}
