package products

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"swaadha/db"
	"swaadha/models"
	"swaadha/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

var ErrInsufficientStock = errors.New("insufficient stock")

// DecrementStock atomically takes qty units off a variation (or the base
// product when variationID is empty). The filter requires stock >= qty, so
// concurrent buyers of the last unit can't both succeed and stock can
// never go negative. Safe to call inside a mongo transaction context.
func DecrementStock(ctx context.Context, productID, variationID string, qty int) error {
	if qty <= 0 {
		return errors.New("quantity must be positive")
	}

	var filter, update bson.M
	if variationID != "" {
		filter = bson.M{
			"_id": productID,
			"variations": bson.M{"$elemMatch": bson.M{
				"id":    variationID,
				"stock": bson.M{"$gte": qty},
			}},
		}
		update = bson.M{"$inc": bson.M{"variations.$.stock": -qty}}
	} else {
		filter = bson.M{"_id": productID, "stock": bson.M{"$gte": qty}}
		update = bson.M{"$inc": bson.M{"stock": -qty}}
	}

	res, err := db.ProductsCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrInsufficientStock
	}
	return nil
}

// clampStock applies a manual adjustment, flooring at zero. Used by the
// restock panel where negative deltas correct over-counted inventory.
func clampStock(current, delta int) int {
	next := current + delta
	if next < 0 {
		return 0
	}
	return next
}

// RestockList returns products flattened to one row per sellable unit for
// the restock panel. ?low=true keeps only rows under 20 units.
func RestockList(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.ProductsCollection.Find(ctx, bson.M{})
	if err != nil {
		http.Error(w, "Failed to fetch products", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var prods []models.Product
	if err := cursor.All(ctx, &prods); err != nil {
		http.Error(w, "Error reading products", http.StatusInternalServerError)
		return
	}

	type row struct {
		ProductID   string  `json:"productId"`
		VariationID string  `json:"variationId,omitempty"`
		Name        string  `json:"name"`
		SKU         string  `json:"sku"`
		UnitType    string  `json:"unit_type,omitempty"`
		Price       float64 `json:"price"`
		Stock       int     `json:"stock"`
	}

	lowOnly := r.URL.Query().Get("low") == "true"
	rows := []row{}
	for _, p := range prods {
		if p.HasVariation {
			for _, v := range p.Variations {
				if lowOnly && v.Stock >= 20 {
					continue
				}
				rows = append(rows, row{
					ProductID: p.ID, VariationID: v.ID, Name: p.Name,
					SKU: v.SKU, UnitType: v.UnitType, Price: v.Price, Stock: v.Stock,
				})
			}
		} else {
			if lowOnly && p.Stock >= 20 {
				continue
			}
			rows = append(rows, row{
				ProductID: p.ID, Name: p.Name, SKU: p.SKU, Price: p.Price, Stock: p.Stock,
			})
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, rows)
}

// AdjustStock sets or shifts a unit's stock. Payload carries either
// "stock" (absolute) or "delta" (relative, clamped at zero).
func AdjustStock(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	productID := ps.ByName("id")

	var input struct {
		VariationID string `json:"variationId"`
		Stock       *int   `json:"stock"`
		Delta       *int   `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if input.Stock == nil && input.Delta == nil {
		http.Error(w, "Provide stock or delta", http.StatusBadRequest)
		return
	}

	var product models.Product
	if err := db.ProductsCollection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	current := product.Stock
	if input.VariationID != "" {
		found := false
		for _, v := range product.Variations {
			if v.ID == input.VariationID {
				current = v.Stock
				found = true
				break
			}
		}
		if !found {
			http.Error(w, "Variation not found", http.StatusNotFound)
			return
		}
	}

	next := current
	if input.Stock != nil {
		next = clampStock(0, *input.Stock)
	} else {
		next = clampStock(current, *input.Delta)
	}

	var filter, update bson.M
	if input.VariationID != "" {
		filter = bson.M{"_id": productID, "variations.id": input.VariationID}
		update = bson.M{"$set": bson.M{"variations.$.stock": next, "updated_at": time.Now()}}
	} else {
		filter = bson.M{"_id": productID}
		update = bson.M{"$set": bson.M{"stock": next, "updated_at": time.Now()}}
	}

	if _, err := db.ProductsCollection.UpdateOne(ctx, filter, update); err != nil {
		http.Error(w, "Failed to update stock", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]int{"stock": next})
}
