package cart

import (
	"math"
	"testing"

	"swaadha/models"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeTotalsPerLineThreshold(t *testing.T) {
	// 200x2=400 misses the threshold, so its shipping counts; the second
	// line misses it too.
	lines := []models.CartLine{
		{Price: 200, Quantity: 2, ShippingCharge: 50},
		{Price: 100, Quantity: 1, ShippingCharge: 30},
	}

	got := ComputeTotals(lines)
	if !approxEqual(got.Subtotal, 500) {
		t.Errorf("subtotal = %v, want 500", got.Subtotal)
	}
	if !approxEqual(got.Shipping, 80) {
		t.Errorf("shipping = %v, want 80 (threshold is per line, not per order)", got.Shipping)
	}
	if !approxEqual(got.GrandTotal, 580) {
		t.Errorf("grand total = %v, want 580", got.GrandTotal)
	}
}

func TestComputeTotalsThresholdInclusive(t *testing.T) {
	// Exactly 500 on one line waives that line's shipping.
	lines := []models.CartLine{
		{Price: 250, Quantity: 2, ShippingCharge: 40},
	}
	got := ComputeTotals(lines)
	if !approxEqual(got.Shipping, 0) {
		t.Errorf("shipping = %v, want 0 for a line hitting the threshold exactly", got.Shipping)
	}
	if !approxEqual(got.GrandTotal, 500) {
		t.Errorf("grand total = %v, want 500", got.GrandTotal)
	}
}

func TestComputeTotalsMixedLines(t *testing.T) {
	lines := []models.CartLine{
		{Price: 600, Quantity: 1, ShippingCharge: 50}, // free
		{Price: 100, Quantity: 4, ShippingCharge: 25}, // 400, pays 25
		{Price: 125, Quantity: 4, ShippingCharge: 35}, // 500 exactly, free
	}
	got := ComputeTotals(lines)
	if !approxEqual(got.Subtotal, 1500) {
		t.Errorf("subtotal = %v, want 1500", got.Subtotal)
	}
	if !approxEqual(got.Shipping, 25) {
		t.Errorf("shipping = %v, want 25", got.Shipping)
	}
	if !approxEqual(got.GrandTotal, got.Subtotal+got.Shipping) {
		t.Errorf("grand total %v != subtotal %v + shipping %v", got.GrandTotal, got.Subtotal, got.Shipping)
	}
}

func TestComputeTotalsEmptyCart(t *testing.T) {
	got := ComputeTotals(nil)
	if got.Subtotal != 0 || got.Shipping != 0 || got.GrandTotal != 0 {
		t.Errorf("empty cart should total zero, got %+v", got)
	}
}
