package models

import "time"

const (
	OrderPending        = "pending"
	OrderProcessing     = "processing"
	OrderOutForDelivery = "out_for_delivery"
	OrderDelivered      = "delivered"
	OrderCancelled      = "cancelled"
)

// OrderItem is a denormalized snapshot of the line at order time, so later
// product edits don't rewrite history.
type OrderItem struct {
	ProductID   string  `json:"productId" bson:"productId"`
	VariationID string  `json:"variationId,omitempty" bson:"variationId,omitempty"`
	Name        string  `json:"name" bson:"name"`
	UnitType    string  `json:"unit_type,omitempty" bson:"unit_type,omitempty"`
	Image       string  `json:"image,omitempty" bson:"image,omitempty"`
	Price       float64 `json:"price" bson:"price"`
	Quantity    int     `json:"quantity" bson:"quantity"`
}

type Order struct {
	ID             string      `json:"id" bson:"_id"`
	UserID         string      `json:"user_id" bson:"userId"`
	Items          []OrderItem `json:"cart_items" bson:"cart_items"`
	FullName       string      `json:"full_name" bson:"full_name"`
	PhoneNumber    string      `json:"phone_number" bson:"phone_number"`
	AltPhoneNumber string      `json:"alt_phone_number,omitempty" bson:"alt_phone_number,omitempty"`
	HouseNumber    string      `json:"house_number" bson:"house_number"`
	Street         string      `json:"street" bson:"street"`
	City           string      `json:"city" bson:"city"`
	State          string      `json:"state" bson:"state"`
	Pincode        string      `json:"pincode" bson:"pincode"`
	PaymentMethod  string      `json:"payment_method" bson:"payment_method"`
	PaymentStatus  string      `json:"payment_status" bson:"payment_status"`
	PaymentID      string      `json:"payment_id,omitempty" bson:"payment_id,omitempty"`
	GatewayOrderID string      `json:"gateway_order_id,omitempty" bson:"gateway_order_id,omitempty"`
	TotalPrice     float64     `json:"total_price" bson:"total_price"`
	ShippingCost   float64     `json:"shipping_cost" bson:"shipping_cost"`
	GrandTotal     float64     `json:"grand_total" bson:"grand_total"`
	Status         string      `json:"status" bson:"status"`
	OrderDate      time.Time   `json:"order_date" bson:"order_date"`
}

type PosOrder struct {
	ID             string      `json:"id" bson:"_id"`
	CustomerID     string      `json:"customer_id" bson:"customer_id"`
	FullName       string      `json:"full_name" bson:"full_name"`
	PhoneNumber    string      `json:"phone_number" bson:"phone_number"`
	PaymentMethod  string      `json:"payment_method" bson:"payment_method"`
	Items          []OrderItem `json:"order_items" bson:"order_items"`
	Subtotal       float64     `json:"subtotal" bson:"subtotal"`
	TaxAmount      float64     `json:"tax_amount" bson:"tax_amount"`
	DiscountAmount float64     `json:"discount_amount" bson:"discount_amount"`
	GrandTotal     float64     `json:"grand_total" bson:"grand_total"`
	OrderDate      time.Time   `json:"order_date" bson:"order_date"`
}

// Customer is a POS walk-in customer, distinct from storefront users.
type Customer struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Phone     string    `json:"phone" bson:"phone"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// IdempotencyRecord stores the first response for a checkout key so a
// retried request replays instead of re-ordering.
type IdempotencyRecord struct {
	Key         string    `json:"key" bson:"key"`
	UserID      string    `json:"user_id" bson:"user_id"`
	RequestHash string    `json:"request_hash" bson:"request_hash"`
	StatusCode  int       `json:"status_code" bson:"status_code"`
	Body        []byte    `json:"-" bson:"body"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	ExpiresAt   time.Time `json:"expires_at" bson:"expires_at"`
}
