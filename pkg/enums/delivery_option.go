package enums

import "fmt"

// DeliveryOption is how the buyer chose to receive the order. It picks
// the terminal status for manual finalization.
type DeliveryOption string

const (
	DeliveryOptionDelivery DeliveryOption = "delivery"
	DeliveryOptionPickup   DeliveryOption = "pickup"
)

// FinalStatus maps the delivery option to its terminal order status.
func (d DeliveryOption) FinalStatus() OrderStatus {
	if d == DeliveryOptionPickup {
		return OrderStatusPickedUp
	}
	return OrderStatusDelivered
}

// ParseDeliveryOption converts raw strings into DeliveryOption.
func ParseDeliveryOption(value string) (DeliveryOption, error) {
	switch DeliveryOption(value) {
	case DeliveryOptionDelivery, DeliveryOptionPickup:
		return DeliveryOption(value), nil
	case "":
		return DeliveryOptionDelivery, nil
	default:
		return "", fmt.Errorf("invalid delivery option %q", value)
	}
}
