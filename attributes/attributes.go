package attributes

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"swaadha/db"
	"swaadha/models"
	"swaadha/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

var validKinds = map[string]bool{"taste": true, "unit_type": true}

// GetAttributes lists attribute values, optionally filtered by ?kind=.
func GetAttributes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if kind := r.URL.Query().Get("kind"); kind != "" {
		filter["kind"] = kind
	}

	cursor, err := db.AttributesCollection.Find(ctx, filter)
	if err != nil {
		http.Error(w, "Failed to fetch attributes", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var attrs []models.Attribute
	if err := cursor.All(ctx, &attrs); err != nil {
		http.Error(w, "Error reading attributes", http.StatusInternalServerError)
		return
	}
	if attrs == nil {
		attrs = []models.Attribute{}
	}
	utils.RespondWithJSON(w, http.StatusOK, attrs)
}

func CreateAttribute(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var attr models.Attribute
	if err := json.NewDecoder(r.Body).Decode(&attr); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if !validKinds[attr.Kind] || attr.Value == "" {
		http.Error(w, "Kind must be taste or unit_type, value required", http.StatusBadRequest)
		return
	}

	count, err := db.AttributesCollection.CountDocuments(ctx, bson.M{"kind": attr.Kind, "value": attr.Value})
	if err != nil {
		http.Error(w, "Failed to check attribute", http.StatusInternalServerError)
		return
	}
	if count > 0 {
		http.Error(w, "Attribute already exists", http.StatusConflict)
		return
	}

	attr.ID = "at" + utils.GenerateRandomString(10)
	if _, err := db.AttributesCollection.InsertOne(ctx, attr); err != nil {
		http.Error(w, "Failed to create attribute", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, attr)
}

func DeleteAttribute(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := db.AttributesCollection.DeleteOne(ctx, bson.M{"_id": ps.ByName("id")})
	if err != nil {
		http.Error(w, "Failed to delete attribute", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "Attribute not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
