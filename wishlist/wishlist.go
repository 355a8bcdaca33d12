package wishlist

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
)

// AddToWishlist is a no-op when the product is already saved.
func AddToWishlist(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		ProductID string `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.ProductID == "" {
		http.Error(w, "Missing productId", http.StatusBadRequest)
		return
	}

	count, err := db.ProductsCollection.CountDocuments(ctx, bson.M{"_id": input.ProductID, "active": true})
	if err != nil || count == 0 {
		http.Error(w, "Product unavailable", http.StatusNotFound)
		return
	}

	exists, err := db.WishlistCollection.CountDocuments(ctx, bson.M{"userId": userID, "productId": input.ProductID})
	if err != nil {
		http.Error(w, "Failed to update wishlist", http.StatusInternalServerError)
		return
	}
	if exists > 0 {
		utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "already saved"})
		return
	}

	item := models.WishlistItem{
		ID:        "wl" + utils.GenerateRandomString(10),
		UserID:    userID,
		ProductID: input.ProductID,
		AddedAt:   time.Now(),
	}
	if _, err := db.WishlistCollection.InsertOne(ctx, item); err != nil {
		log.Println("AddToWishlist insert error:", err)
		http.Error(w, "Failed to update wishlist", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, map[string]string{"status": "saved"})
}

func RemoveFromWishlist(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	res, err := db.WishlistCollection.DeleteOne(ctx, bson.M{"userId": userID, "productId": ps.ByName("productId")})
	if err != nil {
		http.Error(w, "Failed to update wishlist", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "Not in wishlist", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// GetWishlist returns the saved products, joined so the storefront can
// render cards directly. Products deactivated since saving are skipped.
func GetWishlist(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	cursor, err := db.WishlistCollection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		http.Error(w, "Could not retrieve wishlist", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var items []models.WishlistItem
	if err := cursor.All(ctx, &items); err != nil {
		http.Error(w, "Could not retrieve wishlist", http.StatusInternalServerError)
		return
	}
	if len(items) == 0 {
		utils.RespondWithJSON(w, http.StatusOK, []models.Product{})
		return
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	prodCursor, err := db.ProductsCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}, "active": true})
	if err != nil {
		http.Error(w, "Could not retrieve wishlist", http.StatusInternalServerError)
		return
	}
	defer prodCursor.Close(ctx)

	var prods []models.Product
	if err := prodCursor.All(ctx, &prods); err != nil {
		http.Error(w, "Could not retrieve wishlist", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, prods)
}
