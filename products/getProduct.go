package products

import (
	"context"
	"net/http"
	"time"

	"swaadha/db"
	"swaadha/models"
	"swaadha/offers"
	"swaadha/reviews"
	"swaadha/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetProducts serves both the admin list and the storefront list. Admin
// callers pass ?all=true to include inactive products.
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	q := utils.ParseQueryOptions(r)
	role := utils.GetRoleFromRequest(r)
	staff := role == models.RoleAdmin || role == models.RoleSubadmin

	filter := bson.M{}
	// Inactive products are visible only to the console.
	if r.URL.Query().Get("all") != "true" || !staff {
		filter["active"] = true
	}
	if q.Search != "" {
		filter["name"] = bson.M{"$regex": primitive.Regex{Pattern: q.Search, Options: "i"}}
	}
	if q.Category != "" {
		filter["category_id"] = q.Category
	}
	if sub := r.URL.Query().Get("subcategory"); sub != "" {
		filter["subcategory_id"] = sub
	}

	sortField := "name"
	switch q.SortBy {
	case "created":
		sortField = "created_at"
	case "price":
		sortField = "price"
	case "name", "":
	default:
		sortField = "name"
	}
	sortDir := 1
	if q.SortDesc {
		sortDir = -1
	}

	total, err := db.ProductsCollection.CountDocuments(ctx, filter)
	if err != nil {
		http.Error(w, "Failed to count products", http.StatusInternalServerError)
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: sortDir}}).
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))

	cursor, err := db.ProductsCollection.Find(ctx, filter, opts)
	if err != nil {
		http.Error(w, "Failed to fetch products", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var list []models.Product
	if err := cursor.All(ctx, &list); err != nil {
		http.Error(w, "Error reading products", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []models.Product{}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"products": list,
		"total":    total,
		"page":     q.Page,
		"limit":    q.Limit,
	})
}

func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	if err := db.ProductsCollection.FindOne(ctx, bson.M{"_id": ps.ByName("id")}).Decode(&product); err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	avg, count, err := reviews.AverageRating(ctx, product.ID)
	if err != nil {
		avg, count = 0, 0
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"product":      product,
		"rating":       avg,
		"review_count": count,
	})
}

// GetHomeCatalog bundles what the storefront home page renders: active
// hero slider, home-flagged categories and currently running offers.
func GetHomeCatalog(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var hero models.HeroSlider
	_ = db.HeroCollection.FindOne(ctx, bson.M{"active": true}).Decode(&hero)

	catCursor, err := db.CategoriesCollection.Find(ctx,
		bson.M{"home_status": true, "active": true},
		options.Find().SetSort(bson.D{{Key: "priority", Value: 1}}))
	var cats []models.CatalogNode
	if err == nil {
		_ = catCursor.All(ctx, &cats)
	}
	if cats == nil {
		cats = []models.CatalogNode{}
	}

	running := []models.Offer{}
	offerCursor, err := db.OffersCollection.Find(ctx, bson.M{"is_active": true})
	if err == nil {
		var all []models.Offer
		if err := offerCursor.All(ctx, &all); err == nil {
			now := time.Now()
			for _, o := range all {
				if offers.WithinWindow(o, now) {
					running = append(running, o)
				}
			}
		}
	}

	var notif models.NotifBanner
	_ = db.NotifBannerCollection.FindOne(ctx, bson.M{"active": true}).Decode(&notif)

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"hero":       hero,
		"categories": cats,
		"offers":     running,
		"notif":      notif,
	})
}
