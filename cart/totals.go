package cart

import (
	"swaadha/globals"
	"swaadha/models"
)

// ComputeTotals prices a set of cart lines. The free-shipping rule is
// per line and inclusive: a line whose own subtotal reaches the threshold
// ships free, every other line adds its shipping charge once regardless
// of quantity.
func ComputeTotals(lines []models.CartLine) models.CartTotals {
	var t models.CartTotals
	for _, line := range lines {
		lineSubtotal := line.Price * float64(line.Quantity)
		t.Subtotal += lineSubtotal
		if lineSubtotal < globals.FreeShippingThreshold {
			t.Shipping += line.ShippingCharge
		}
	}
	t.GrandTotal = t.Subtotal + t.Shipping
	return t
}
