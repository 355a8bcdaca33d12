package reviews

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

// CreateReview adds a rating for a product. One review per user per
// product; a second submission overwrites the first.
func CreateReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if input.Rating < 1 || input.Rating > 5 {
		http.Error(w, "Rating must be between 1 and 5", http.StatusBadRequest)
		return
	}

	productID := ps.ByName("id")
	count, err := db.ProductsCollection.CountDocuments(ctx, bson.M{"_id": productID, "active": true})
	if err != nil || count == 0 {
		http.Error(w, "Product unavailable", http.StatusNotFound)
		return
	}

	filter := bson.M{"product_id": productID, "user_id": userID}
	update := bson.M{
		"$set": bson.M{
			"rating":     input.Rating,
			"comment":    input.Comment,
			"created_at": time.Now(),
		},
		"$setOnInsert": bson.M{"_id": "rv" + utils.GenerateRandomString(10)},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := db.ReviewsCollection.UpdateOne(ctx, filter, update, opts); err != nil {
		log.Println("CreateReview error:", err)
		http.Error(w, "Failed to save review", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, map[string]string{"status": "saved"})
}

// GetReviews lists a product's reviews with reviewer names joined in.
func GetReviews(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.ReviewsCollection.Find(ctx, bson.M{"product_id": ps.ByName("id")})
	if err != nil {
		http.Error(w, "Could not retrieve reviews", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var revs []models.Review
	if err := cursor.All(ctx, &revs); err != nil {
		http.Error(w, "Could not retrieve reviews", http.StatusInternalServerError)
		return
	}
	if len(revs) == 0 {
		utils.RespondWithJSON(w, http.StatusOK, []models.Review{})
		return
	}

	userIDs := make([]string, 0, len(revs))
	for _, rv := range revs {
		userIDs = append(userIDs, rv.UserID)
	}
	userCursor, err := db.UserCollection.Find(ctx, bson.M{"userid": bson.M{"$in": userIDs}})
	if err == nil {
		defer userCursor.Close(ctx)
		names := map[string]string{}
		var users []models.User
		if err := userCursor.All(ctx, &users); err == nil {
			for _, u := range users {
				names[u.UserID] = u.Username
			}
		}
		for i := range revs {
			revs[i].UserName = names[revs[i].UserID]
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, revs)
}

// DeleteReview lets a user remove their own review; admins can remove any.
func DeleteReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	filter := bson.M{"_id": ps.ByName("reviewId")}
	if utils.GetRoleFromRequest(r) != models.RoleAdmin {
		filter["user_id"] = userID
	}

	res, err := db.ReviewsCollection.DeleteOne(ctx, filter)
	if err != nil {
		http.Error(w, "Failed to delete review", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "Review not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// AverageRating computes the product's mean rating and count.
func AverageRating(ctx context.Context, productID string) (float64, int64, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"product_id": productID}},
		{"$group": bson.M{
			"_id":   nil,
			"avg":   bson.M{"$avg": "$rating"},
			"count": bson.M{"$sum": 1},
		}},
	}
	cursor, err := db.ReviewsCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, err
	}
	defer cursor.Close(ctx)

	var out []struct {
		Avg   float64 `bson:"avg"`
		Count int64   `bson:"count"`
	}
	if err := cursor.All(ctx, &out); err != nil {
		return 0, 0, err
	}
	if len(out) == 0 {
		return 0, 0, nil
	}
	return utils.Round2(out[0].Avg), out[0].Count, nil
}
