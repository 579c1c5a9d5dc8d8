package enums

import "fmt"

// Shop identifies one of the four iMarket storefronts.
type Shop string

const (
	ShopClickNGet  Shop = "clicknget"
	ShopAutoGiant  Shop = "autogiant"
	ShopOfficeTech Shop = "officetech"
	ShopSoko       Shop = "sokoproperties"
)

var validShops = []Shop{
	ShopClickNGet,
	ShopAutoGiant,
	ShopOfficeTech,
	ShopSoko,
}

// CartKey returns the session-storage key holding the shop's cart.
// Only the retail shops carry carts.
func (s Shop) CartKey() (string, bool) {
	switch s {
	case ShopClickNGet:
		return "clickNGetCart", true
	case ShopOfficeTech:
		return "officetechCart", true
	default:
		return "", false
	}
}

// IsValid checks whether the given shop matches the canonical enum.
func (s Shop) IsValid() bool {
	for _, candidate := range validShops {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseShop converts raw strings into Shop.
func ParseShop(value string) (Shop, error) {
	for _, candidate := range validShops {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid shop %q", value)
}
