package cart

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/imarket-ke/imarket-backend/pkg/enums"
	pkgerrors "github.com/imarket-ke/imarket-backend/pkg/errors"
)

// unboundedStock stands in for feeds that only flag availability
// without exposing a unit count.
const unboundedStock = 1 << 30

// itemInfo is the subset of a catalog entry the cart validates
// against.
type itemInfo struct {
	Name     string
	Price    decimal.Decimal
	Image    string
	InStock  int
	MinOrder int
	MaxOrder int
}

func (s *service) resolveItem(ctx context.Context, shop enums.Shop, productID string) (*itemInfo, error) {
	switch shop {
	case enums.ShopClickNGet:
		p, err := s.catalog.GetProduct(ctx, productID)
		if err != nil {
			return nil, err
		}
		image := ""
		if len(p.Images) > 0 {
			image = p.Images[0]
		}
		return &itemInfo{
			Name:     p.Name,
			Price:    p.EffectivePrice(),
			Image:    image,
			InStock:  p.InStock,
			MinOrder: p.MinOrderQuantity,
			MaxOrder: p.MaxOrderQuantity,
		}, nil

	case enums.ShopOfficeTech:
		p, err := s.catalog.GetOfficeProduct(ctx, productID)
		if err != nil {
			return nil, err
		}
		if !p.InStock {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, p.Name+" is currently out of stock")
		}
		return &itemInfo{
			Name:    p.Name,
			Price:   p.PriceKsh,
			Image:   p.ImagePath,
			InStock: unboundedStock,
		}, nil

	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop "+string(shop)+" has no cart")
	}
}
