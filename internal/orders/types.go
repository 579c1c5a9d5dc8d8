package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/imarket-ke/imarket-backend/internal/cart"
	"github.com/imarket-ke/imarket-backend/pkg/enums"
)

// Customer holds the shipping details captured at checkout.
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address"`
	City    string `json:"city"`
	County  string `json:"county"`
}

// TrackingEntry is one recorded stage change.
type TrackingEntry struct {
	Stage     enums.OrderStatus `json:"stage"`
	Timestamp time.Time         `json:"timestamp"`
}

// Order is a placed order with its full tracking trail.
type Order struct {
	OrderID         string               `json:"orderId"`
	Items           []cart.Line          `json:"items"`
	Subtotal        decimal.Decimal      `json:"subtotal"`
	Shipping        decimal.Decimal      `json:"shipping"`
	Total           decimal.Decimal      `json:"total"`
	Status          enums.OrderStatus    `json:"status"`
	TrackingHistory []TrackingEntry      `json:"trackingHistory"`
	ReviewStatus    enums.ReviewStatus   `json:"reviewStatus,omitempty"`
	DeliveryOption  enums.DeliveryOption `json:"deliveryOption"`
	PaymentMethod   enums.PaymentMethod  `json:"paymentMethod"`
	OrderDate       time.Time            `json:"orderDate"`
	DeliveryETA     string               `json:"deliveryETA"`
	Customer        Customer             `json:"customer"`
}

// Trackable reports whether the order can still move through the
// stage chain.
func (o Order) Trackable() bool {
	return !o.Status.IsTerminal()
}
