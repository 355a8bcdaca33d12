package cart

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"swaadha/db"
	"swaadha/models"
	"swaadha/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AddToCart increments quantity if the line exists, or inserts a new row.
// The unique (user, product, variation) index backs the upsert.
func AddToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var item models.CartItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		log.Println("AddToCart decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	// Must be logged in
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	item.UserID = userID

	if item.ProductID == "" || item.Quantity <= 0 {
		http.Error(w, "Missing or invalid fields", http.StatusBadRequest)
		return
	}

	// Only active products can be carted, and never beyond stock.
	var product models.Product
	if err := db.ProductsCollection.FindOne(ctx, bson.M{"_id": item.ProductID, "active": true}).Decode(&product); err != nil {
		http.Error(w, "Product unavailable", http.StatusNotFound)
		return
	}
	available := product.Stock
	if item.VariationID != "" {
		available = -1
		for _, v := range product.Variations {
			if v.ID == item.VariationID {
				available = v.Stock
				break
			}
		}
		if available < 0 {
			http.Error(w, "Variation not found", http.StatusNotFound)
			return
		}
	}

	var existing models.CartItem
	held := 0
	err := db.CartCollection.FindOne(ctx, bson.M{
		"userId":      userID,
		"productId":   item.ProductID,
		"variationId": item.VariationID,
	}).Decode(&existing)
	if err == nil {
		held = existing.Quantity
	}
	if held+item.Quantity > available {
		utils.RespondWithJSON(w, http.StatusConflict, map[string]any{
			"error":     "Insufficient stock",
			"remaining": available - held,
		})
		return
	}

	filter := bson.M{
		"userId":      userID,
		"productId":   item.ProductID,
		"variationId": item.VariationID,
	}
	update := bson.M{
		"$inc": bson.M{"quantity": item.Quantity},
		"$setOnInsert": bson.M{
			"_id":     "cl" + utils.GenerateRandomString(10),
			"addedAt": time.Now(),
		},
	}
	opts := options.Update().SetUpsert(true)

	if _, err := db.CartCollection.UpdateOne(ctx, filter, update, opts); err != nil {
		log.Println("AddToCart UpdateOne error:", err)
		http.Error(w, "Failed to add to cart", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]string{"status": "added"})
}

// LoadLines joins the stored cart rows with product/variation data.
// Inactive products are filtered out, matching what the storefront shows.
func LoadLines(ctx context.Context, userID string) ([]models.CartLine, error) {
	cursor, err := db.CartCollection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.CartItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []models.CartLine{}, nil
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	prodCursor, err := db.ProductsCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}, "active": true})
	if err != nil {
		return nil, err
	}
	defer prodCursor.Close(ctx)

	var prods []models.Product
	if err := prodCursor.All(ctx, &prods); err != nil {
		return nil, err
	}
	byID := make(map[string]models.Product, len(prods))
	for _, p := range prods {
		byID[p.ID] = p
	}

	lines := []models.CartLine{}
	for _, it := range items {
		p, ok := byID[it.ProductID]
		if !ok {
			continue
		}
		line := models.CartLine{
			ID:             it.ID,
			ProductID:      it.ProductID,
			VariationID:    it.VariationID,
			Name:           p.Name,
			Price:          p.Price,
			Quantity:       it.Quantity,
			Stock:          p.Stock,
			ShippingCharge: p.ShippingCharge,
		}
		if len(p.Images) > 0 {
			line.Image = p.Images[0]
		}
		if it.VariationID != "" {
			for _, v := range p.Variations {
				if v.ID == it.VariationID {
					line.VariationName = v.UnitType
					line.Price = v.Price
					line.Stock = v.Stock
					break
				}
			}
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// GetCart returns the user's joined cart lines.
func GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	lines, err := LoadLines(ctx, userID)
	if err != nil {
		log.Println("GetCart error:", err)
		http.Error(w, "Could not retrieve cart", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, lines)
}

// GetTotals prices the current cart server-side.
func GetTotals(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	lines, err := LoadLines(ctx, userID)
	if err != nil {
		http.Error(w, "Could not retrieve cart", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, ComputeTotals(lines))
}

// UpdateQuantity sets a line's quantity (minimum 1, capped by stock).
func UpdateQuantity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Quantity < 1 {
		http.Error(w, "Quantity must be at least 1", http.StatusBadRequest)
		return
	}

	var item models.CartItem
	if err := db.CartCollection.FindOne(ctx, bson.M{"_id": ps.ByName("id"), "userId": userID}).Decode(&item); err != nil {
		http.Error(w, "Cart line not found", http.StatusNotFound)
		return
	}

	var product models.Product
	if err := db.ProductsCollection.FindOne(ctx, bson.M{"_id": item.ProductID, "active": true}).Decode(&product); err != nil {
		http.Error(w, "Product unavailable", http.StatusNotFound)
		return
	}
	available := product.Stock
	if item.VariationID != "" {
		for _, v := range product.Variations {
			if v.ID == item.VariationID {
				available = v.Stock
				break
			}
		}
	}
	if input.Quantity > available {
		utils.RespondWithJSON(w, http.StatusConflict, map[string]any{
			"error":     "Insufficient stock",
			"remaining": available,
		})
		return
	}

	if _, err := db.CartCollection.UpdateOne(ctx,
		bson.M{"_id": item.ID},
		bson.M{"$set": bson.M{"quantity": input.Quantity}}); err != nil {
		http.Error(w, "Failed to update cart", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func RemoveLine(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	res, err := db.CartCollection.DeleteOne(ctx, bson.M{"_id": ps.ByName("id"), "userId": userID})
	if err != nil {
		http.Error(w, "Failed to remove cart line", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "Cart line not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if _, err := db.CartCollection.DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
		http.Error(w, "Failed to clear cart", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// MergeCart absorbs a browser-local anonymous cart after login. Each line
// goes through the same upsert as AddToCart, so duplicates increment.
func MergeCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Items []models.CartItem `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	merged := 0
	for _, it := range payload.Items {
		if it.ProductID == "" || it.Quantity <= 0 {
			continue
		}
		filter := bson.M{
			"userId":      userID,
			"productId":   it.ProductID,
			"variationId": it.VariationID,
		}
		update := bson.M{
			"$inc": bson.M{"quantity": it.Quantity},
			"$setOnInsert": bson.M{
				"_id":     "cl" + utils.GenerateRandomString(10),
				"addedAt": time.Now(),
			},
		}
		if _, err := db.CartCollection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			log.Println("MergeCart UpdateOne error:", err)
			continue
		}
		merged++
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]int{"merged": merged})
}
