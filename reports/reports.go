package reports

import (
	"context"
	"log"
	"net/http"
	"time"

	"swaadha/db"
	"swaadha/models"
	"swaadha/rdx"
	"swaadha/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const dashboardCacheKey = "dashboard:stats"

// Dashboard aggregates the admin landing page counters. The result is
// cached for a minute; the numbers tolerate being slightly stale.
func Dashboard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	var cached models.DashboardStats
	if rdx.GetJSON(ctx, dashboardCacheKey, &cached) {
		utils.RespondWithJSON(w, http.StatusOK, cached)
		return
	}

	stats, err := collectStats(ctx)
	if err != nil {
		log.Println("Dashboard stats error:", err)
		http.Error(w, "Could not build dashboard", http.StatusInternalServerError)
		return
	}

	rdx.CacheJSON(ctx, dashboardCacheKey, stats, time.Minute)
	utils.RespondWithJSON(w, http.StatusOK, stats)
}

func collectStats(ctx context.Context) (models.DashboardStats, error) {
	stats := models.DashboardStats{
		StatusCounts: map[string]int64{},
		GeneratedAt:  time.Now(),
	}

	var err error
	if stats.OnlineOrders, err = db.OrdersCollection.CountDocuments(ctx, bson.M{}); err != nil {
		return stats, err
	}
	if stats.PosOrders, err = db.PosOrdersCollection.CountDocuments(ctx, bson.M{}); err != nil {
		return stats, err
	}
	if stats.Products, err = db.ProductsCollection.CountDocuments(ctx, bson.M{"active": true}); err != nil {
		return stats, err
	}
	if stats.Customers, err = db.CustomersCollection.CountDocuments(ctx, bson.M{}); err != nil {
		return stats, err
	}
	if stats.ActiveBanners, err = db.BannersCollection.CountDocuments(ctx, bson.M{"active": true}); err != nil {
		return stats, err
	}
	if stats.ActiveOffers, err = db.OffersCollection.CountDocuments(ctx, bson.M{"is_active": true}); err != nil {
		return stats, err
	}

	stats.OnlineRevenue, err = sumGrandTotal(ctx, db.OrdersCollection,
		bson.M{"status": bson.M{"$ne": models.OrderCancelled}})
	if err != nil {
		return stats, err
	}
	stats.PosRevenue, err = sumGrandTotal(ctx, db.PosOrdersCollection, bson.M{})
	if err != nil {
		return stats, err
	}

	cursor, err := db.OrdersCollection.Aggregate(ctx, []bson.M{
		{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
	})
	if err != nil {
		return stats, err
	}
	defer cursor.Close(ctx)
	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return stats, err
	}
	for _, row := range rows {
		stats.StatusCounts[row.Status] = row.Count
	}
	return stats, nil
}

func sumGrandTotal(ctx context.Context, coll *mongo.Collection, match bson.M) (float64, error) {
	cursor, err := coll.Aggregate(ctx, []bson.M{
		{"$match": match},
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$grand_total"}}},
	})
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var out []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &out); err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, nil
	}
	return utils.Round2(out[0].Total), nil
}

// parseRange reads optional from/to query params (YYYY-MM-DD) into a
// date filter on the given field. A blank range means everything.
func parseRange(r *http.Request, field string) (bson.M, error) {
	filter := bson.M{}
	window := bson.M{}
	if from := r.URL.Query().Get("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return nil, err
		}
		window["$gte"] = t
	}
	if to := r.URL.Query().Get("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return nil, err
		}
		// Include the whole end day.
		window["$lt"] = t.AddDate(0, 0, 1)
	}
	if len(window) > 0 {
		filter[field] = window
	}
	return filter, nil
}
