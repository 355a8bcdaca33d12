package models

import "time"

type Variation struct {
	ID       string  `json:"id" bson:"id"`
	UnitType string  `json:"unit_type" bson:"unit_type"`
	SKU      string  `json:"sku,omitempty" bson:"sku,omitempty"`
	Price    float64 `json:"price" bson:"price"`
	Stock    int     `json:"stock" bson:"stock"`
}

type Product struct {
	ID              string      `json:"id" bson:"_id"`
	Name            string      `json:"name" bson:"name"`
	SKU             string      `json:"sku" bson:"sku"`
	Description     string      `json:"description,omitempty" bson:"description,omitempty"`
	Ingredients     string      `json:"ingredients,omitempty" bson:"ingredients,omitempty"`
	CategoryID      string      `json:"category_id" bson:"category_id"`
	SubcategoryID   string      `json:"subcategory_id,omitempty" bson:"subcategory_id,omitempty"`
	SubSubcatID     string      `json:"sub_subcategory_id,omitempty" bson:"sub_subcategory_id,omitempty"`
	BrandID         string      `json:"brand_id,omitempty" bson:"brand_id,omitempty"`
	TasteID         string      `json:"taste_id,omitempty" bson:"taste_id,omitempty"`
	PackOf          string      `json:"pack_of,omitempty" bson:"pack_of,omitempty"`
	MaxShelfLife    string      `json:"max_shelf_life,omitempty" bson:"max_shelf_life,omitempty"`
	YoutubeURL      string      `json:"youtube_url,omitempty" bson:"youtube_url,omitempty"`
	ShippingCharge  float64     `json:"shipping_charge" bson:"shipping_charge"`
	HasVariation    bool        `json:"has_variation" bson:"has_variation"`
	Active          bool        `json:"active" bson:"active"`
	Images          []string    `json:"images" bson:"images"`
	Variations      []Variation `json:"variations" bson:"variations"`
	// Stock on the product itself is only meaningful when HasVariation
	// is false. Price likewise.
	Price     float64   `json:"price,omitempty" bson:"price,omitempty"`
	Stock     int       `json:"stock,omitempty" bson:"stock,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

type Review struct {
	ID        string    `json:"id" bson:"_id"`
	ProductID string    `json:"product_id" bson:"product_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	UserName  string    `json:"user_name,omitempty" bson:"-"`
	Rating    int       `json:"rating" bson:"rating"`
	Comment   string    `json:"comment,omitempty" bson:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
