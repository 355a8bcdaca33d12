package admin

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
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// Pages a subadmin may manage; anything else stays admin-only.
var subadminPages = map[string]bool{
	"orders":   true,
	"pos":      true,
	"catalog":  true,
	"products": true,
}

func GetSubadmins(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{"password": 0})

	cursor, err := db.SubadminCollection.Find(context.TODO(), bson.M{}, opts)
	if err != nil {
		http.Error(w, "Failed to fetch subadmins", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(context.TODO())

	var subs []models.Subadmin
	if err := cursor.All(context.TODO(), &subs); err != nil {
		http.Error(w, "Error processing subadmins", http.StatusInternalServerError)
		return
	}
	if subs == nil {
		subs = []models.Subadmin{}
	}
	utils.RespondWithJSON(w, http.StatusOK, subs)
}

func CreateSubadmin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input models.Subadmin
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if !utils.ValidEmail(input.Email) || input.Password == "" {
		http.Error(w, "Valid email and password required", http.StatusBadRequest)
		return
	}

	for _, page := range input.Pages {
		if !subadminPages[page] {
			http.Error(w, "Unknown page: "+page, http.StatusBadRequest)
			return
		}
	}
	if len(input.Pages) == 0 {
		for page := range subadminPages {
			input.Pages = append(input.Pages, page)
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Failed to hash password", http.StatusInternalServerError)
		return
	}
	input.Password = string(hashed)
	input.ID = "sa" + utils.GenerateRandomString(10)
	input.CreatedAt = time.Now()

	if _, err := db.SubadminCollection.InsertOne(context.TODO(), input); err != nil {
		http.Error(w, "Failed to create subadmin", http.StatusInternalServerError)
		return
	}

	input.Password = ""
	utils.RespondWithJSON(w, http.StatusCreated, input)
}

func UpdateSubadmin(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input struct {
		Email    string   `json:"email"`
		Password string   `json:"password"`
		Pages    []string `json:"pages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	set := bson.M{}
	if input.Email != "" {
		if !utils.ValidEmail(input.Email) {
			http.Error(w, "Invalid email address", http.StatusBadRequest)
			return
		}
		set["email"] = input.Email
	}
	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			http.Error(w, "Failed to hash password", http.StatusInternalServerError)
			return
		}
		set["password"] = string(hashed)
	}
	if input.Pages != nil {
		for _, page := range input.Pages {
			if !subadminPages[page] {
				http.Error(w, "Unknown page: "+page, http.StatusBadRequest)
				return
			}
		}
		set["pages"] = input.Pages
	}
	if len(set) == 0 {
		http.Error(w, "Nothing to update", http.StatusBadRequest)
		return
	}

	res, err := db.SubadminCollection.UpdateOne(context.TODO(), bson.M{"_id": ps.ByName("id")}, bson.M{"$set": set})
	if err != nil {
		http.Error(w, "Failed to update subadmin", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "Subadmin not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func DeleteSubadmin(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	res, err := db.SubadminCollection.DeleteOne(context.TODO(), bson.M{"_id": ps.ByName("id")})
	if err != nil {
		http.Error(w, "Failed to delete subadmin", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "Subadmin not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
