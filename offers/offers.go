package offers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"swaadha/db"
	"swaadha/models"
	"swaadha/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const dateLayout = "2006-01-02"

// WithinWindow reports whether day falls inside the offer's date range.
// Both ends are inclusive; a blank end date means no expiry.
func WithinWindow(offer models.Offer, day time.Time) bool {
	d := day.Format(dateLayout)
	if offer.StartDate != "" && d < offer.StartDate {
		return false
	}
	if offer.EndDate != "" && d > offer.EndDate {
		return false
	}
	return true
}

func validateOffer(o *models.Offer) error {
	if o.Title == "" {
		return errors.New("title is required")
	}
	if o.DiscountType != "percentage" && o.DiscountType != "flat" {
		return errors.New("discount type must be percentage or flat")
	}
	if o.DiscountValue <= 0 {
		return errors.New("discount value must be positive")
	}
	if o.DiscountType == "percentage" && o.DiscountValue > 100 {
		return errors.New("percentage discount cannot exceed 100")
	}
	switch o.AppliesTo {
	case "all":
		o.CategoryID = ""
		o.SubcategoryID = ""
	case "category":
		if o.CategoryID == "" {
			return errors.New("category offers need a category")
		}
	default:
		return errors.New("applies_to must be all or category")
	}
	for _, d := range []string{o.StartDate, o.EndDate} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, d); err != nil {
			return errors.New("dates must be YYYY-MM-DD")
		}
	}
	if o.StartDate != "" && o.EndDate != "" && o.EndDate < o.StartDate {
		return errors.New("end date is before start date")
	}
	return nil
}

// GetOffers lists offers. ?active=true narrows to offers that are
// switched on and inside their date window today.
func GetOffers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.OffersCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		http.Error(w, "Could not retrieve offers", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var list []models.Offer
	if err := cursor.All(ctx, &list); err != nil {
		http.Error(w, "Could not retrieve offers", http.StatusInternalServerError)
		return
	}

	if r.URL.Query().Get("active") == "true" {
		now := time.Now()
		filtered := list[:0]
		for _, o := range list {
			if o.IsActive && WithinWindow(o, now) {
				filtered = append(filtered, o)
			}
		}
		list = filtered
	}
	if list == nil {
		list = []models.Offer{}
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

func CreateOffer(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var offer models.Offer
	if err := json.NewDecoder(r.Body).Decode(&offer); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if err := validateOffer(&offer); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	offer.ID = "of" + utils.GenerateRandomString(10)
	offer.CreatedAt = time.Now()
	if _, err := db.OffersCollection.InsertOne(ctx, offer); err != nil {
		http.Error(w, "Failed to create offer", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, offer)
}

func UpdateOffer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var existing models.Offer
	if err := db.OffersCollection.FindOne(ctx, bson.M{"_id": ps.ByName("id")}).Decode(&existing); err != nil {
		http.Error(w, "Offer not found", http.StatusNotFound)
		return
	}

	var patch models.Offer
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	patch.ID = existing.ID
	patch.CreatedAt = existing.CreatedAt
	if err := validateOffer(&patch); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := db.OffersCollection.ReplaceOne(ctx, bson.M{"_id": existing.ID}, patch); err != nil {
		http.Error(w, "Failed to update offer", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, patch)
}

func ToggleOffer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var offer models.Offer
	if err := db.OffersCollection.FindOne(ctx, bson.M{"_id": ps.ByName("id")}).Decode(&offer); err != nil {
		http.Error(w, "Offer not found", http.StatusNotFound)
		return
	}
	if _, err := db.OffersCollection.UpdateOne(ctx,
		bson.M{"_id": offer.ID},
		bson.M{"$set": bson.M{"is_active": !offer.IsActive}}); err != nil {
		http.Error(w, "Failed to update offer", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]bool{"is_active": !offer.IsActive})
}

func DeleteOffer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := db.OffersCollection.DeleteOne(ctx, bson.M{"_id": ps.ByName("id")})
	if err != nil {
		http.Error(w, "Failed to delete offer", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "Offer not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
