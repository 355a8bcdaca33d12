package insta

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"swaadha/db"
	"swaadha/models"
	"swaadha/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func validLink(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme == "https" && strings.Contains(u.Host, "instagram.com")
}

// GetLinks lists embedded posts; ?published=true narrows to the ones the
// storefront shows.
func GetLinks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if r.URL.Query().Get("published") == "true" {
		filter["published"] = true
	}

	cursor, err := db.InstaCollection.Find(ctx, filter,
		options.Find().SetSort(bson.M{"updated_at": -1}))
	if err != nil {
		http.Error(w, "Could not retrieve links", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var list []models.InstaLink
	if err := cursor.All(ctx, &list); err != nil {
		http.Error(w, "Could not retrieve links", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []models.InstaLink{}
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

func CreateLink(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		URL       string `json:"url"`
		Published bool   `json:"published"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if !validLink(input.URL) {
		http.Error(w, "URL must be an https instagram.com link", http.StatusBadRequest)
		return
	}

	count, err := db.InstaCollection.CountDocuments(ctx, bson.M{"url": input.URL})
	if err != nil {
		http.Error(w, "Failed to save link", http.StatusInternalServerError)
		return
	}
	if count > 0 {
		http.Error(w, "This link is already added", http.StatusConflict)
		return
	}

	link := models.InstaLink{
		ID:        "ig" + utils.GenerateRandomString(10),
		URL:       input.URL,
		Published: input.Published,
		UpdatedAt: time.Now(),
	}
	if _, err := db.InstaCollection.InsertOne(ctx, link); err != nil {
		http.Error(w, "Failed to save link", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, link)
}

func TogglePublished(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var link models.InstaLink
	if err := db.InstaCollection.FindOne(ctx, bson.M{"_id": ps.ByName("id")}).Decode(&link); err != nil {
		http.Error(w, "Link not found", http.StatusNotFound)
		return
	}
	if _, err := db.InstaCollection.UpdateOne(ctx,
		bson.M{"_id": link.ID},
		bson.M{"$set": bson.M{"published": !link.Published, "updated_at": time.Now()}}); err != nil {
		http.Error(w, "Failed to update link", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]bool{"published": !link.Published})
}

func DeleteLink(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := db.InstaCollection.DeleteOne(ctx, bson.M{"_id": ps.ByName("id")})
	if err != nil {
		http.Error(w, "Failed to delete link", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "Link not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
