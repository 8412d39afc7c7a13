package pricing

import (
	"github.com/calmate/storefront/internal/cart"
	"github.com/calmate/storefront/pkg/enums"
)

// Policy carries the shipping thresholds, in Chilean pesos. Amounts are
// integer minor units throughout; there is no fractional currency.
type Policy struct {
	FreeShippingThreshold int
	BaseShippingCost      int
}

// DefaultPolicy mirrors the storefront's published shipping terms.
func DefaultPolicy() Policy {
	return Policy{FreeShippingThreshold: 50000, BaseShippingCost: 5990}
}

// Quote is the priced view of a cart for one shipping method.
type Quote struct {
	Subtotal  int `json:"subtotal"`
	Shipping  int `json:"shipping"`
	Total     int `json:"total"`
	ItemCount int `json:"item_count"`
}

// Compute prices the given lines. It is a pure function of its inputs:
// subtotal sums price times quantity per line, shipping is zero for store
// pickup or once the subtotal clears the free threshold, and the total is
// their sum. ItemCount counts units, not lines.
func Compute(items []cart.Item, method enums.ShippingMethod, policy Policy) Quote {
	quote := Quote{}
	for _, item := range items {
		quote.Subtotal += item.Price * item.Quantity
		quote.ItemCount += item.Quantity
	}
	quote.Shipping = shippingCost(quote.Subtotal, method, policy)
	quote.Total = quote.Subtotal + quote.Shipping
	return quote
}

func shippingCost(subtotal int, method enums.ShippingMethod, policy Policy) int {
	if method == enums.ShippingMethodPickup {
		return 0
	}
	if subtotal > policy.FreeShippingThreshold {
		return 0
	}
	return policy.BaseShippingCost
}
