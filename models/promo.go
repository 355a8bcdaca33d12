package models

import "time"

type Offer struct {
	ID            string    `json:"id" bson:"_id"`
	Title         string    `json:"title" bson:"title"`
	DiscountType  string    `json:"discount_type" bson:"discount_type"` // "percentage" | "flat"
	DiscountValue float64   `json:"discount_value" bson:"discount_value"`
	AppliesTo     string    `json:"applies_to" bson:"applies_to"` // "all" | "category"
	CategoryID    string    `json:"category_id,omitempty" bson:"category_id,omitempty"`
	SubcategoryID string    `json:"subcategory_id,omitempty" bson:"subcategory_id,omitempty"`
	StartDate     string    `json:"start_date" bson:"start_date"` // YYYY-MM-DD
	EndDate       string    `json:"end_date" bson:"end_date"`
	IsActive      bool      `json:"is_active" bson:"is_active"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

type Banner struct {
	ID        string    `json:"id" bson:"_id"`
	ImageURL  string    `json:"image_url" bson:"image_url"`
	Active    bool      `json:"active" bson:"active"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// NotifBanner is the single notification strip shown across the storefront.
type NotifBanner struct {
	ID        string    `json:"id" bson:"_id"`
	ImageURL  string    `json:"image_url" bson:"image_url"`
	Active    bool      `json:"active" bson:"active"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

type HeroSlider struct {
	ID        string    `json:"id" bson:"_id"`
	Images    []string  `json:"images" bson:"images"`
	Active    bool      `json:"active" bson:"active"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type InstaLink struct {
	ID        string    `json:"id" bson:"_id"`
	URL       string    `json:"url" bson:"url"`
	Published bool      `json:"published" bson:"published"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

type DashboardStats struct {
	OnlineOrders  int64            `json:"online_orders"`
	PosOrders     int64            `json:"pos_orders"`
	OnlineRevenue float64          `json:"online_revenue"`
	PosRevenue    float64          `json:"pos_revenue"`
	Products      int64            `json:"products"`
	Customers     int64            `json:"customers"`
	ActiveBanners int64            `json:"active_banners"`
	ActiveOffers  int64            `json:"active_offers"`
	StatusCounts  map[string]int64 `json:"status_counts"`
	GeneratedAt   time.Time        `json:"generated_at"`
}

// OrderEvent is what the admin order feed broadcasts.
type OrderEvent struct {
	OrderID    string  `json:"order_id"`
	Source     string  `json:"source"` // "online" | "pos"
	GrandTotal float64 `json:"grand_total"`
	FullName   string  `json:"full_name,omitempty"`
}
