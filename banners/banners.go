package banners

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

// GetBanners returns promo banners. ?active=true narrows to live ones
// for the storefront carousel.
func GetBanners(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if r.URL.Query().Get("active") == "true" {
		filter["active"] = true
	}

	cursor, err := db.BannersCollection.Find(ctx, filter,
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		http.Error(w, "Could not retrieve banners", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var list []models.Banner
	if err := cursor.All(ctx, &list); err != nil {
		http.Error(w, "Could not retrieve banners", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []models.Banner{}
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

func CreateBanner(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	if err := r.ParseMultipartForm(12 << 20); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Banner image is required", http.StatusBadRequest)
		return
	}
	filename, err := filemgr.SaveImage(file, header, filemgr.EntityBanner)
	if err != nil {
		http.Error(w, "Failed to save image: "+err.Error(), http.StatusBadRequest)
		return
	}

	banner := models.Banner{
		ID:        "bn" + utils.GenerateRandomString(10),
		ImageURL:  filemgr.PublicURL(filemgr.EntityBanner, filename),
		Active:    r.FormValue("active") != "false",
		CreatedAt: time.Now(),
	}
	if _, err := db.BannersCollection.InsertOne(ctx, banner); err != nil {
		log.Println("CreateBanner insert error:", err)
		http.Error(w, "Failed to create banner", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, banner)
}

func ToggleBanner(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var banner models.Banner
	if err := db.BannersCollection.FindOne(ctx, bson.M{"_id": ps.ByName("id")}).Decode(&banner); err != nil {
		http.Error(w, "Banner not found", http.StatusNotFound)
		return
	}
	if _, err := db.BannersCollection.UpdateOne(ctx,
		bson.M{"_id": banner.ID},
		bson.M{"$set": bson.M{"active": !banner.Active}}); err != nil {
		http.Error(w, "Failed to update banner", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]bool{"active": !banner.Active})
}

func DeleteBanner(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := db.BannersCollection.DeleteOne(ctx, bson.M{"_id": ps.ByName("id")})
	if err != nil {
		http.Error(w, "Failed to delete banner", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "Banner not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// GetNotifBanner returns the single notification strip, if set.
func GetNotifBanner(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var nb models.NotifBanner
	if err := db.NotifBannerCollection.FindOne(ctx, bson.M{}).Decode(&nb); err != nil {
		utils.RespondWithJSON(w, http.StatusOK, nil)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, nb)
}

// UpsertNotifBanner replaces the notification strip. There is at most
// one document, keyed by a fixed id.
func UpsertNotifBanner(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	if err := r.ParseMultipartForm(12 << 20); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	set := bson.M{
		"active":     r.FormValue("active") != "false",
		"updated_at": time.Now(),
	}
	if file, header, err := r.FormFile("image"); err == nil {
		filename, err := filemgr.SaveImage(file, header, filemgr.EntityBanner)
		if err != nil {
			http.Error(w, "Failed to save image: "+err.Error(), http.StatusBadRequest)
			return
		}
		set["image_url"] = filemgr.PublicURL(filemgr.EntityBanner, filename)
	}

	if _, err := db.NotifBannerCollection.UpdateOne(ctx,
		bson.M{"_id": "notif"},
		bson.M{"$set": set},
		options.Update().SetUpsert(true)); err != nil {
		http.Error(w, "Failed to save notification banner", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}
