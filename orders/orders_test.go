package orders

import (
	"testing"

	"swaadha/models"
)

func TestTransitionAllowed(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{models.OrderPending, models.OrderProcessing, true},
		{models.OrderPending, models.OrderCancelled, true},
		{models.OrderPending, models.OrderDelivered, false},
		{models.OrderProcessing, models.OrderOutForDelivery, true},
		{models.OrderOutForDelivery, models.OrderDelivered, true},
		{models.OrderOutForDelivery, models.OrderPending, false},
		{models.OrderDelivered, models.OrderCancelled, false},
		{models.OrderCancelled, models.OrderProcessing, false},
	}
	for _, c := range cases {
		if got := transitionAllowed(c.from, c.to); got != c.want {
			t.Errorf("transitionAllowed(%q, %q) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}
