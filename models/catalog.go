package models

import "time"

// CatalogNode is shared by all three category levels. Top-level categories
// have an empty ParentID; subcategories point at a category, and
// sub-subcategories at a subcategory.
type CatalogNode struct {
	ID         string    `json:"id" bson:"_id"`
	Name       string    `json:"name" bson:"name"`
	ParentID   string    `json:"parentId,omitempty" bson:"parentId,omitempty"`
	Priority   int       `json:"priority" bson:"priority"`
	ImageURL   string    `json:"image_url,omitempty" bson:"image_url,omitempty"`
	HomeStatus bool      `json:"home_status" bson:"home_status"`
	Active     bool      `json:"active" bson:"active"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

type Brand struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	ImageURL  string    `json:"image_url,omitempty" bson:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Attribute rows feed the product form dropdowns. Kind is "taste" or
// "unit_type".
type Attribute struct {
	ID    string `json:"id" bson:"_id"`
	Kind  string `json:"kind" bson:"kind"`
	Value string `json:"value" bson:"value"`
}
