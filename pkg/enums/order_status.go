package enums

import "fmt"

// OrderStatus is the simulated fulfillment stage of an order.
type OrderStatus string

const (
	OrderStatusOrdered        OrderStatus = "Ordered"
	OrderStatusWarehouse      OrderStatus = "Warehouse"
	OrderStatusPackaging      OrderStatus = "Packaging"
	OrderStatusCourierHub     OrderStatus = "Courier Hub"
	OrderStatusInTransit      OrderStatus = "In Transit"
	OrderStatusOutForDelivery OrderStatus = "Out for Delivery"
	OrderStatusDelivered      OrderStatus = "Delivered"

	// Alternate terminals, reachable only via manual finalization.
	OrderStatusPickedUp OrderStatus = "Picked Up"
	OrderStatusCanceled OrderStatus = "Canceled"
)

// TrackingStages is the linear chain the automatic advance walks.
var TrackingStages = []OrderStatus{
	OrderStatusOrdered,
	OrderStatusWarehouse,
	OrderStatusPackaging,
	OrderStatusCourierHub,
	OrderStatusInTransit,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
}

var validOrderStatuses = append(append([]OrderStatus{}, TrackingStages...),
	OrderStatusPickedUp,
	OrderStatusCanceled,
)

// IsValid checks whether the given status matches the canonical enum.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further automatic progression applies.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderStatusDelivered, OrderStatusPickedUp, OrderStatusCanceled:
		return true
	default:
		return false
	}
}

// StageIndex returns the position of s in the linear chain, or -1 for
// the alternate terminals.
func (s OrderStatus) StageIndex() int {
	for i, stage := range TrackingStages {
		if stage == s {
			return i
		}
	}
	return -1
}

// Next returns the following stage in the chain. The second return is
// false when s is the last chain stage or an alternate terminal.
func (s OrderStatus) Next() (OrderStatus, bool) {
	idx := s.StageIndex()
	if idx < 0 || idx >= len(TrackingStages)-1 {
		return "", false
	}
	return TrackingStages[idx+1], true
}

// ParseOrderStatus converts raw strings into OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
