package pos

import (
	"math"
	"testing"

	"swaadha/models"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputePosTotals(t *testing.T) {
	items := []models.OrderItem{
		{Price: 120, Quantity: 2},
		{Price: 45.5, Quantity: 1},
	}
	subtotal, grand := ComputePosTotals(items, 14.28, 20)
	if !approxEqual(subtotal, 285.5) {
		t.Errorf("subtotal = %v, want 285.5", subtotal)
	}
	if !approxEqual(grand, 279.78) {
		t.Errorf("grand = %v, want 279.78", grand)
	}
}

func TestComputePosTotalsNoAdjustments(t *testing.T) {
	items := []models.OrderItem{{Price: 99.99, Quantity: 3}}
	subtotal, grand := ComputePosTotals(items, 0, 0)
	if !approxEqual(subtotal, 299.97) {
		t.Errorf("subtotal = %v, want 299.97", subtotal)
	}
	if !approxEqual(grand, subtotal) {
		t.Errorf("grand = %v, want %v", grand, subtotal)
	}
}

func TestComputePosTotalsDiscountFloor(t *testing.T) {
	items := []models.OrderItem{{Price: 50, Quantity: 1}}
	_, grand := ComputePosTotals(items, 0, 100)
	if grand != 0 {
		t.Errorf("grand = %v, want 0 when discount exceeds subtotal", grand)
	}
}

func TestComputePosTotalsEmpty(t *testing.T) {
	subtotal, grand := ComputePosTotals(nil, 0, 0)
	if subtotal != 0 || grand != 0 {
		t.Errorf("empty sale = (%v, %v), want (0, 0)", subtotal, grand)
	}
}
