package cart

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/imarket-ke/imarket-backend/internal/catalog"
	"github.com/imarket-ke/imarket-backend/pkg/enums"
	pkgerrors "github.com/imarket-ke/imarket-backend/pkg/errors"
	"github.com/imarket-ke/imarket-backend/pkg/logger"
	"github.com/imarket-ke/imarket-backend/pkg/storage"
)

// Line is one cart entry. Price is the effective unit price at the
// time the item was added.
type Line struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Quantity int             `json:"quantity"`
}

// Cart is a session's cart for one storefront.
type Cart struct {
	Items    []Line          `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Count    int             `json:"count"`
	// Warning carries a non-fatal adjustment notice, set when a
	// requested quantity was clamped.
	Warning string `json:"warning,omitempty"`
}

// Service manages the per-session, per-shop carts.
type Service interface {
	Get(ctx context.Context, sessionID string, shop enums.Shop) (*Cart, error)
	Add(ctx context.Context, sessionID string, shop enums.Shop, productID string, quantity int) (*Cart, error)
	UpdateQuantity(ctx context.Context, sessionID string, shop enums.Shop, productID string, quantity int) (*Cart, error)
	Remove(ctx context.Context, sessionID string, shop enums.Shop, productID string) (*Cart, error)
	Clear(ctx context.Context, sessionID string, shop enums.Shop) error
}

type service struct {
	store   storage.Store
	catalog catalog.Service
	logg    *logger.Logger
}

// NewService wires cart dependencies.
func NewService(store storage.Store, cat catalog.Service, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "cart storage required")
	}
	if cat == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog service required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{store: store, catalog: cat, logg: logg}, nil
}

func cartKey(shop enums.Shop) (string, error) {
	key, ok := shop.CartKey()
	if !ok {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "shop "+string(shop)+" has no cart")
	}
	return key, nil
}

func (s *service) load(ctx context.Context, sessionID string, shop enums.Shop) ([]Line, string, error) {
	key, err := cartKey(shop)
	if err != nil {
		return nil, "", err
	}
	lines, err := storage.Load(ctx, s.store, s.logg, sessionID, key, []Line{})
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart")
	}
	return lines, key, nil
}

func (s *service) save(ctx context.Context, sessionID, key string, lines []Line) error {
	if err := storage.Save(ctx, s.store, sessionID, key, lines); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving cart")
	}
	return nil
}

func summarize(lines []Line, warning string) *Cart {
	subtotal := decimal.Zero
	count := 0
	for _, l := range lines {
		subtotal = subtotal.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
		count += l.Quantity
	}
	if lines == nil {
		lines = []Line{}
	}
	return &Cart{Items: lines, Subtotal: subtotal, Count: count, Warning: warning}
}

func (s *service) Get(ctx context.Context, sessionID string, shop enums.Shop) (*Cart, error) {
	lines, _, err := s.load(ctx, sessionID, shop)
	if err != nil {
		return nil, err
	}
	return summarize(lines, ""), nil
}

func (s *service) Add(ctx context.Context, sessionID string, shop enums.Shop, productID string, quantity int) (*Cart, error) {
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	item, err := s.resolveItem(ctx, shop, productID)
	if err != nil {
		return nil, err
	}

	lines, key, err := s.load(ctx, sessionID, shop)
	if err != nil {
		return nil, err
	}

	idx := findLine(lines, productID)
	if idx >= 0 {
		// Existing line: the minimum bound applied when it entered the
		// cart and is not re-checked here.
		next := lines[idx].Quantity + quantity
		if item.MaxOrder > 0 && next > item.MaxOrder {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("you can only order a maximum of %d of this item", item.MaxOrder))
		}
		if next > item.InStock {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("only %d of %q are available in stock", item.InStock, item.Name))
		}
		lines[idx].Quantity = next
	} else {
		if item.MinOrder > 0 && quantity < item.MinOrder {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("minimum order quantity for %q is %d", item.Name, item.MinOrder))
		}
		if quantity > item.InStock {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("only %d of %q are available in stock", item.InStock, item.Name))
		}
		lines = append(lines, Line{
			ID:       productID,
			Name:     item.Name,
			Price:    item.Price,
			Image:    item.Image,
			Quantity: quantity,
		})
	}

	if err := s.save(ctx, sessionID, key, lines); err != nil {
		return nil, err
	}
	return summarize(lines, ""), nil
}

func (s *service) UpdateQuantity(ctx context.Context, sessionID string, shop enums.Shop, productID string, quantity int) (*Cart, error) {
	if quantity <= 0 {
		return s.Remove(ctx, sessionID, shop, productID)
	}

	lines, key, err := s.load(ctx, sessionID, shop)
	if err != nil {
		return nil, err
	}
	idx := findLine(lines, productID)
	if idx < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not in cart")
	}

	item, err := s.resolveItem(ctx, shop, productID)
	if err != nil {
		return nil, err
	}

	// Over-asking is not an error here: the quantity clamps to the
	// tightest bound and the response carries a warning.
	warning := ""
	capped := quantity
	if item.MaxOrder > 0 && capped > item.MaxOrder {
		capped = item.MaxOrder
		warning = fmt.Sprintf("you can only order a maximum of %d of this item", item.MaxOrder)
	}
	if capped > item.InStock {
		capped = item.InStock
		warning = fmt.Sprintf("only %d of %q are available in stock", item.InStock, item.Name)
	}
	lines[idx].Quantity = capped

	if err := s.save(ctx, sessionID, key, lines); err != nil {
		return nil, err
	}
	return summarize(lines, warning), nil
}

func (s *service) Remove(ctx context.Context, sessionID string, shop enums.Shop, productID string) (*Cart, error) {
	lines, key, err := s.load(ctx, sessionID, shop)
	if err != nil {
		return nil, err
	}

	kept := lines[:0]
	for _, l := range lines {
		if l.ID != productID {
			kept = append(kept, l)
		}
	}

	if err := s.save(ctx, sessionID, key, kept); err != nil {
		return nil, err
	}
	return summarize(kept, ""), nil
}

func (s *service) Clear(ctx context.Context, sessionID string, shop enums.Shop) error {
	key, err := cartKey(shop)
	if err != nil {
		return err
	}
	if err := storage.Save(ctx, s.store, sessionID, key, []Line{}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clearing cart")
	}
	return nil
}

func findLine(lines []Line, productID string) int {
	for i := range lines {
		if lines[i].ID == productID {
			return i
		}
	}
	return -1
}
