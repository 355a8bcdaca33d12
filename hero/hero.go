package hero

import (
	"context"
	"log"
	"net/http"
	"time"

	"swaadha/db"
	"swaadha/filemgr"
	"swaadha/models"
	"swaadha/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetSliders lists hero slider sets for the admin; ?active=true returns
// the one live set for the storefront.
func GetSliders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if r.URL.Query().Get("active") == "true" {
		filter["active"] = true
	}

	cursor, err := db.HeroCollection.Find(ctx, filter,
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		http.Error(w, "Could not retrieve sliders", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var list []models.HeroSlider
	if err := cursor.All(ctx, &list); err != nil {
		http.Error(w, "Could not retrieve sliders", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []models.HeroSlider{}
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// CreateSlider stores a new image set. Activating it here deactivates
// every other set; the storefront shows at most one.
func CreateSlider(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	if err := r.ParseMultipartForm(50 << 20); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		http.Error(w, "At least one image is required", http.StatusBadRequest)
		return
	}

	var urls []string
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			http.Error(w, "Failed to read image", http.StatusBadRequest)
			return
		}
		filename, err := filemgr.SaveImage(file, header, filemgr.EntityHero)
		if err != nil {
			http.Error(w, "Failed to save image: "+err.Error(), http.StatusBadRequest)
			return
		}
		urls = append(urls, filemgr.PublicURL(filemgr.EntityHero, filename))
	}

	slider := models.HeroSlider{
		ID:        "hs" + utils.GenerateRandomString(10),
		Images:    urls,
		Active:    r.FormValue("active") == "true",
		CreatedAt: time.Now(),
	}

	if slider.Active {
		if err := deactivateOthers(ctx, ""); err != nil {
			http.Error(w, "Failed to create slider", http.StatusInternalServerError)
			return
		}
	}
	if _, err := db.HeroCollection.InsertOne(ctx, slider); err != nil {
		log.Println("CreateSlider insert error:", err)
		http.Error(w, "Failed to create slider", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, slider)
}

// ActivateSlider makes the set live and switches every other set off.
func ActivateSlider(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id := ps.ByName("id")
	count, err := db.HeroCollection.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil || count == 0 {
		http.Error(w, "Slider not found", http.StatusNotFound)
		return
	}

	if err := deactivateOthers(ctx, id); err != nil {
		http.Error(w, "Failed to activate slider", http.StatusInternalServerError)
		return
	}
	if _, err := db.HeroCollection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"active": true}}); err != nil {
		http.Error(w, "Failed to activate slider", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "activated"})
}

func deactivateOthers(ctx context.Context, keepID string) error {
	filter := bson.M{"active": true}
	if keepID != "" {
		filter["_id"] = bson.M{"$ne": keepID}
	}
	_, err := db.HeroCollection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"active": false}})
	return err
}

func DeleteSlider(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := db.HeroCollection.DeleteOne(ctx, bson.M{"_id": ps.ByName("id")})
	if err != nil {
		http.Error(w, "Failed to delete slider", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "Slider not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
