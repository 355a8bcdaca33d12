package orders

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
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var validStatuses = map[string]bool{
	models.OrderPending:        true,
	models.OrderProcessing:     true,
	models.OrderOutForDelivery: true,
	models.OrderDelivered:      true,
	models.OrderCancelled:      true,
}

// Delivered and cancelled orders are terminal.
var nextStatuses = map[string][]string{
	models.OrderPending:        {models.OrderProcessing, models.OrderCancelled},
	models.OrderProcessing:     {models.OrderOutForDelivery, models.OrderCancelled},
	models.OrderOutForDelivery: {models.OrderDelivered, models.OrderCancelled},
}

func transitionAllowed(from, to string) bool {
	for _, s := range nextStatuses[from] {
		if s == to {
			return true
		}
	}
	return false
}

// GetOrders lists orders for the admin console with status filtering,
// search, paging, and per-status counts for the filter tabs.
func GetOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := utils.ParseQueryOptions(r)

	filter := bson.M{}
	if opts.Status != "" && validStatuses[opts.Status] {
		filter["status"] = opts.Status
	}
	if opts.Search != "" {
		regex := primitive.Regex{Pattern: opts.Search, Options: "i"}
		filter["$or"] = []bson.M{
			{"_id": regex},
			{"full_name": regex},
			{"phone_number": regex},
		}
	}

	total, err := db.OrdersCollection.CountDocuments(ctx, filter)
	if err != nil {
		http.Error(w, "Could not retrieve orders", http.StatusInternalServerError)
		return
	}

	findOpts := options.Find().
		SetSort(bson.M{"order_date": -1}).
		SetSkip(int64((opts.Page - 1) * opts.Limit)).
		SetLimit(int64(opts.Limit))
	cursor, err := db.OrdersCollection.Find(ctx, filter, findOpts)
	if err != nil {
		http.Error(w, "Could not retrieve orders", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var list []models.Order
	if err := cursor.All(ctx, &list); err != nil {
		http.Error(w, "Could not retrieve orders", http.StatusInternalServerError)
		return
	}

	counts, err := statusCounts(ctx)
	if err != nil {
		log.Println("GetOrders status counts error:", err)
		counts = map[string]int64{}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"orders": list,
		"total":  total,
		"page":   opts.Page,
		"limit":  opts.Limit,
		"counts": counts,
	})
}

func statusCounts(ctx context.Context) (map[string]int64, error) {
	pipeline := []bson.M{
		{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
	}
	cursor, err := db.OrdersCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for s := range validStatuses {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var order models.Order
	if err := db.OrdersCollection.FindOne(ctx, bson.M{"_id": ps.ByName("id")}).Decode(&order); err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, order)
}

// UpdateStatus moves an order along the fulfilment flow.
func UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || !validStatuses[input.Status] {
		http.Error(w, "Invalid status", http.StatusBadRequest)
		return
	}

	var order models.Order
	if err := db.OrdersCollection.FindOne(ctx, bson.M{"_id": ps.ByName("id")}).Decode(&order); err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	if !transitionAllowed(order.Status, input.Status) {
		http.Error(w, "Cannot move order from "+order.Status+" to "+input.Status, http.StatusConflict)
		return
	}

	update := bson.M{"status": input.Status}
	if input.Status == models.OrderDelivered && order.PaymentMethod == "cod" {
		update["payment_status"] = "paid"
	}
	if _, err := db.OrdersCollection.UpdateOne(ctx, bson.M{"_id": order.ID}, bson.M{"$set": update}); err != nil {
		http.Error(w, "Failed to update order", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": input.Status})
}

// MyOrders lists the calling user's own orders, newest first.
func MyOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	cursor, err := db.OrdersCollection.Find(ctx,
		bson.M{"userId": userID},
		options.Find().SetSort(bson.M{"order_date": -1}))
	if err != nil {
		http.Error(w, "Could not retrieve orders", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var list []models.Order
	if err := cursor.All(ctx, &list); err != nil {
		http.Error(w, "Could not retrieve orders", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}
