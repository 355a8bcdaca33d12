package pos

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
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetCustomers lists walk-in customers for the POS lookup box.
func GetCustomers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := utils.ParseQueryOptions(r)
	filter := bson.M{}
	if opts.Search != "" {
		regex := primitive.Regex{Pattern: opts.Search, Options: "i"}
		filter["$or"] = []bson.M{
			{"name": regex},
			{"phone": regex},
			{"email": regex},
		}
	}

	cursor, err := db.CustomersCollection.Find(ctx, filter,
		options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(int64(opts.Limit)))
	if err != nil {
		http.Error(w, "Could not retrieve customers", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var list []models.Customer
	if err := cursor.All(ctx, &list); err != nil {
		http.Error(w, "Could not retrieve customers", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// CreateCustomer registers a walk-in customer ahead of a sale.
func CreateCustomer(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input customer
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if !utils.ValidName(input.Name) {
		http.Error(w, "Customer name must contain only letters and spaces", http.StatusBadRequest)
		return
	}
	if input.Email != "" && !utils.ValidEmail(input.Email) {
		http.Error(w, "Invalid customer email", http.StatusBadRequest)
		return
	}
	if !utils.ValidIndianPhone(input.Phone) {
		http.Error(w, "Customer phone must be a valid 10 digit mobile number", http.StatusBadRequest)
		return
	}

	count, err := db.CustomersCollection.CountDocuments(ctx, bson.M{"phone": input.Phone})
	if err != nil {
		http.Error(w, "Failed to create customer", http.StatusInternalServerError)
		return
	}
	if count > 0 {
		http.Error(w, "A customer with this phone already exists", http.StatusConflict)
		return
	}

	c := models.Customer{
		ID:        "cu" + utils.GenerateRandomString(10),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		CreatedAt: time.Now(),
	}
	if _, err := db.CustomersCollection.InsertOne(ctx, c); err != nil {
		http.Error(w, "Failed to create customer", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, c)
}
