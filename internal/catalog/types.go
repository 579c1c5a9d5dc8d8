package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product is a general-retail catalog item.
type Product struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Brand            string          `json:"brand"`
	Category         string          `json:"category"`
	SubCategory      string          `json:"subCategory"`
	Price            decimal.Decimal `json:"price"`
	OriginalPrice    decimal.Decimal `json:"originalPrice"`
	IsDiscounted     bool            `json:"isDiscounted"`
	IsFreeShipping   bool            `json:"isFreeShipping"`
	Rating           float64         `json:"rating"`
	ReviewsCount     int             `json:"reviewsCount"`
	Images           []string        `json:"images"`
	InStock          int             `json:"inStock"`
	MinOrderQuantity int             `json:"minOrderQuantity"`
	MaxOrderQuantity int             `json:"maxOrderQuantity"`
	DateAdded        time.Time       `json:"dateAdded"`
	IsFeatured       bool            `json:"isFeatured"`
	IsDeals          bool            `json:"isDeals"`
	IsHotPick        bool            `json:"isHotPick"`
}

// EffectivePrice is the price a buyer actually pays: the discounted
// price when a discount is active, otherwise the original price.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.IsDiscounted {
		return p.Price
	}
	return p.OriginalPrice
}

// OfficeProduct is an office-supplies catalog item. The feed carries
// prices in KSh with an optional discount percentage instead of a
// precomputed old price.
type OfficeProduct struct {
	ItemID          string          `json:"item_id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	PriceKsh        decimal.Decimal `json:"price_ksh"`
	DiscountPercent float64         `json:"discount_percent"`
	ImagePath       string          `json:"image_path"`
	ReviewStarRate  float64         `json:"review_star_rate"`
	Features        []string        `json:"features"`
	InStock         bool            `json:"in_stock"`
}

// OldPrice derives the pre-discount price from the discount
// percentage. It returns false when no discount applies.
func (p OfficeProduct) OldPrice() (decimal.Decimal, bool) {
	if p.DiscountPercent <= 0 {
		return decimal.Decimal{}, false
	}
	factor := decimal.NewFromFloat(1 - p.DiscountPercent/100)
	if factor.IsZero() {
		return decimal.Decimal{}, false
	}
	return p.PriceKsh.Div(factor).Round(2), true
}

// ContactAgent is the listing agent attached to a car or property.
type ContactAgent struct {
	Name     string `json:"name"`
	Tel      string `json:"tel"`
	Location string `json:"location"`
}

// Car is a vehicle listing. Cars carry no standalone id in the feed;
// identity is the make-model-year triple.
type Car struct {
	Make              string          `json:"make"`
	Model             string          `json:"model"`
	Year              int             `json:"year"`
	Price             decimal.Decimal `json:"price"`
	EngineType        string          `json:"engine_type"`
	Color             string          `json:"color"`
	Imported          bool            `json:"imported"`
	Electric          bool            `json:"electric"`
	Features          []string        `json:"features"`
	ContactAgent      ContactAgent    `json:"contact_agent"`
	ShippingFee       decimal.Decimal `json:"shipping_fee"`
	WaitingPeriodDays int             `json:"waiting_period_days"`
	DisplayImage      string          `json:"car_display_image"`
}

// Key returns the car's composite identity.
func (c Car) Key() string {
	return fmt.Sprintf("%s-%s-%d", c.Make, c.Model, c.Year)
}

// MatchesKey compares a composite key case-insensitively.
func (c Car) MatchesKey(key string) bool {
	return strings.EqualFold(c.Key(), key)
}

// PropertyLocation is a property's city and county.
type PropertyLocation struct {
	City   string `json:"city"`
	County string `json:"county"`
}

// PropertyPrice is an amount with its currency code.
type PropertyPrice struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// Property is a real-estate listing.
type Property struct {
	PropertyID   string           `json:"propertyId"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	PropertyType string           `json:"propertyType"`
	Bedrooms     int              `json:"bedrooms"`
	Bathrooms    float64          `json:"bathrooms"`
	Area         string           `json:"area"`
	PlotSize     string           `json:"plotSize"`
	Price        PropertyPrice    `json:"price"`
	Location     PropertyLocation `json:"location"`
	Features     []string         `json:"features"`
	Images       []string         `json:"images"`
	Views        int              `json:"views"`
	ListingDate  time.Time        `json:"listingDate"`
	ContactAgent ContactAgent     `json:"contactAgent"`
}
