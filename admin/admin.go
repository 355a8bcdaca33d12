package admin

import (
	"context"
	"net/http"

	"swaadha/db"
	"swaadha/models"
	"swaadha/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetUsers lists storefront accounts for the customer admin page.
func GetUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{"password": 0, "refresh_token": 0})

	cursor, err := db.UserCollection.Find(context.TODO(), bson.M{"role": models.RoleUser}, opts)
	if err != nil {
		http.Error(w, "Failed to fetch users", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(context.TODO())

	var users []models.User
	if err := cursor.All(context.TODO(), &users); err != nil {
		http.Error(w, "Error processing users", http.StatusInternalServerError)
		return
	}
	if users == nil {
		users = []models.User{}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"users": users})
}

func BlockUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	setBlocked(w, ps.ByName("id"), true)
}

func UnblockUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	setBlocked(w, ps.ByName("id"), false)
}

func setBlocked(w http.ResponseWriter, userID string, blocked bool) {
	res, err := db.UserCollection.UpdateOne(
		context.TODO(),
		bson.M{"userid": userID, "role": models.RoleUser},
		bson.M{"$set": bson.M{"blocked": blocked}},
	)
	if err != nil {
		http.Error(w, "Failed to update user", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]bool{"blocked": blocked})
}
