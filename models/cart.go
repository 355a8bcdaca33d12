package models

import "time"

// CartItem is the stored row: one per (user, product, variation).
type CartItem struct {
	ID          string    `json:"id" bson:"_id"`
	UserID      string    `json:"user_id" bson:"userId"`
	ProductID   string    `json:"productId" bson:"productId"`
	VariationID string    `json:"variationId,omitempty" bson:"variationId,omitempty"`
	Quantity    int       `json:"quantity" bson:"quantity"`
	AddedAt     time.Time `json:"addedAt" bson:"addedAt"`
}

// CartLine is a cart row joined with the product/variation fields the
// storefront renders and the totals math needs.
type CartLine struct {
	ID             string  `json:"id"`
	ProductID      string  `json:"productId"`
	VariationID    string  `json:"variationId,omitempty"`
	Name           string  `json:"name"`
	VariationName  string  `json:"variationName,omitempty"`
	Image          string  `json:"image,omitempty"`
	Price          float64 `json:"price"`
	Quantity       int     `json:"quantity"`
	Stock          int     `json:"stock"`
	ShippingCharge float64 `json:"shippingCharge"`
}

type CartTotals struct {
	Subtotal   float64 `json:"subtotal"`
	Shipping   float64 `json:"shipping"`
	GrandTotal float64 `json:"grandTotal"`
}

type WishlistItem struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"user_id" bson:"userId"`
	ProductID string    `json:"productId" bson:"productId"`
	AddedAt   time.Time `json:"addedAt" bson:"addedAt"`
}
