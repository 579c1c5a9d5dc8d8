package checkout

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/imarket-ke/imarket-backend/internal/activities"
	"github.com/imarket-ke/imarket-backend/internal/cart"
	"github.com/imarket-ke/imarket-backend/internal/catalog"
	"github.com/imarket-ke/imarket-backend/internal/notifications"
	"github.com/imarket-ke/imarket-backend/internal/orders"
	"github.com/imarket-ke/imarket-backend/pkg/config"
	"github.com/imarket-ke/imarket-backend/pkg/enums"
	pkgerrors "github.com/imarket-ke/imarket-backend/pkg/errors"
	"github.com/imarket-ke/imarket-backend/pkg/logger"
)

// Input is a checkout submission.
type Input struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone"`
	Address        string `json:"address" validate:"required"`
	City           string `json:"city" validate:"required"`
	County         string `json:"county" validate:"required"`
	PaymentMethod  string `json:"paymentMethod" validate:"required"`
	DeliveryOption string `json:"deliveryOption"`
}

// Summary is the priced cart shown before the order is placed.
type Summary struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// Service prices carts and places orders.
type Service interface {
	Quote(ctx context.Context, sessionID string, shop enums.Shop) (*Summary, error)
	PlaceOrder(ctx context.Context, sessionID string, shop enums.Shop, input Input) (*orders.Order, error)
}

type service struct {
	carts    cart.Service
	catalog  catalog.Service
	orders   orders.Service
	notify   notifications.Service
	activity activities.Service
	logg     *logger.Logger
	cfg      config.CheckoutConfig
	validate *validator.Validate
	now      func() time.Time
}

// ServiceParams collect checkout dependencies.
type ServiceParams struct {
	Carts    cart.Service
	Catalog  catalog.Service
	Orders   orders.Service
	Notify   notifications.Service
	Activity activities.Service
	Logger   *logger.Logger
	Config   config.CheckoutConfig
}

// NewService wires checkout dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Carts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "cart service required")
	}
	if params.Catalog == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog service required")
	}
	if params.Orders == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "orders service required")
	}
	if params.Notify == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications service required")
	}
	if params.Activity == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "activities service required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{
		carts:    params.Carts,
		catalog:  params.Catalog,
		orders:   params.Orders,
		notify:   params.Notify,
		activity: params.Activity,
		logg:     params.Logger,
		cfg:      params.Config,
		validate: validator.New(),
		now:      time.Now,
	}, nil
}

func (s *service) Quote(ctx context.Context, sessionID string, shop enums.Shop) (*Summary, error) {
	current, err := s.carts.Get(ctx, sessionID, shop)
	if err != nil {
		return nil, err
	}
	if len(current.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "your cart is empty")
	}
	return s.price(ctx, shop, current.Items)
}

func (s *service) PlaceOrder(ctx context.Context, sessionID string, shop enums.Shop, input Input) (*orders.Order, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "please fill in all required shipping information")
	}
	payment, err := enums.ParsePaymentMethod(input.PaymentMethod)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown payment method")
	}
	delivery, err := enums.ParseDeliveryOption(input.DeliveryOption)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown delivery option")
	}

	current, err := s.carts.Get(ctx, sessionID, shop)
	if err != nil {
		return nil, err
	}
	if len(current.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "your cart is empty")
	}

	summary, err := s.price(ctx, shop, current.Items)
	if err != nil {
		return nil, err
	}

	now := s.now()
	order := orders.Order{
		OrderID:        s.generateOrderNumber(now),
		Items:          current.Items,
		Subtotal:       summary.Subtotal,
		Shipping:       summary.Shipping,
		Total:          summary.Total,
		Status:         enums.OrderStatusOrdered,
		DeliveryOption: delivery,
		PaymentMethod:  payment,
		OrderDate:      now,
		DeliveryETA:    s.deliveryETA(now),
		Customer: orders.Customer{
			Name:    input.Name,
			Email:   input.Email,
			Phone:   input.Phone,
			Address: input.Address,
			City:    input.City,
			County:  input.County,
		},
		TrackingHistory: []orders.TrackingEntry{
			{Stage: enums.OrderStatusOrdered, Timestamp: now},
		},
	}

	if err := s.orders.Create(ctx, sessionID, order); err != nil {
		return nil, err
	}
	if err := s.carts.Clear(ctx, sessionID, shop); err != nil {
		// The order exists; a stale cart is recoverable.
		s.logg.Warn(ctx, "clearing cart after checkout failed")
	}

	if err := s.activity.Record(ctx, sessionID, enums.ActivityOrderPlaced,
		fmt.Sprintf("Placed order %s", order.OrderID)); err != nil {
		s.logg.Warn(ctx, "recording checkout activity failed")
	}
	if _, err := s.notify.Add(ctx, sessionID,
		fmt.Sprintf("Order #%s placed successfully!", order.OrderID),
		enums.NotificationTypeOrder, order.OrderID); err != nil {
		s.logg.Warn(ctx, "adding checkout notification failed")
	}

	return &order, nil
}

// price totals the cart and applies the flat per-unit shipping charge
// to lines whose product does not ship free.
func (s *service) price(ctx context.Context, shop enums.Shop, items []cart.Line) (*Summary, error) {
	perUnit, err := decimal.NewFromString(s.cfg.ShippingPerUnit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "invalid shipping rate")
	}

	subtotal := decimal.Zero
	shipping := decimal.Zero
	for _, item := range items {
		qty := decimal.NewFromInt(int64(item.Quantity))
		subtotal = subtotal.Add(item.Price.Mul(qty))

		if s.chargesShipping(ctx, shop, item.ID) {
			shipping = shipping.Add(perUnit.Mul(qty))
		}
	}

	return &Summary{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal.Add(shipping),
	}, nil
}

func (s *service) chargesShipping(ctx context.Context, shop enums.Shop, productID string) bool {
	if shop != enums.ShopClickNGet {
		return true
	}
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		// Unknown lines still ship; pricing stays conservative.
		return true
	}
	return !product.IsFreeShipping
}

const orderNumberAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// generateOrderNumber builds ids like CNG-ORD-123456-A1B2: the last
// six digits of the unix-millisecond clock plus four random base36
// characters.
func (s *service) generateOrderNumber(now time.Time) string {
	millis := fmt.Sprintf("%d", now.UnixMilli())
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}
	// The package-level source is locked, so concurrent checkouts are
	// safe to draw from it.
	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = orderNumberAlphabet[rand.Intn(len(orderNumberAlphabet))]
	}
	return fmt.Sprintf("%s-%s-%s", s.cfg.OrderPrefix, millis, strings.ToUpper(string(suffix)))
}

// deliveryETA renders the delivery window, e.g. "Mon, Jan 2 - Mon, Jan 6".
func (s *service) deliveryETA(now time.Time) string {
	min := now.AddDate(0, 0, s.cfg.ETAMinDays)
	max := now.AddDate(0, 0, s.cfg.ETAMaxDays)
	return min.Format("Mon, Jan 2") + " - " + max.Format("Mon, Jan 2")
}
