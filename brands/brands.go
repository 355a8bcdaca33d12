package brands

import (
	"context"
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

func GetBrands(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.BrandsCollection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		http.Error(w, "Failed to fetch brands", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var brands []models.Brand
	if err := cursor.All(ctx, &brands); err != nil {
		http.Error(w, "Error reading brands", http.StatusInternalServerError)
		return
	}
	if brands == nil {
		brands = []models.Brand{}
	}
	utils.RespondWithJSON(w, http.StatusOK, brands)
}

func CreateBrand(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := r.ParseMultipartForm(12 << 20); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	name := r.FormValue("name")
	if name == "" {
		http.Error(w, "Brand name is required", http.StatusBadRequest)
		return
	}

	count, err := db.BrandsCollection.CountDocuments(ctx, bson.M{"name": name})
	if err != nil {
		http.Error(w, "Failed to check brand name", http.StatusInternalServerError)
		return
	}
	if count > 0 {
		http.Error(w, "Brand already exists", http.StatusConflict)
		return
	}

	brand := models.Brand{
		ID:        "br" + utils.GenerateRandomString(10),
		Name:      name,
		CreatedAt: time.Now(),
	}

	if file, header, ferr := r.FormFile("image"); ferr == nil {
		filename, serr := filemgr.SaveImage(file, header, filemgr.EntityBrand)
		if serr != nil {
			http.Error(w, "Image upload failed: "+serr.Error(), http.StatusBadRequest)
			return
		}
		brand.ImageURL = filemgr.PublicURL(filemgr.EntityBrand, filename)
	}

	if _, err := db.BrandsCollection.InsertOne(ctx, brand); err != nil {
		http.Error(w, "Failed to create brand", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, brand)
}

func UpdateBrand(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := r.ParseMultipartForm(12 << 20); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	set := bson.M{}
	if name := r.FormValue("name"); name != "" {
		set["name"] = name
	}
	if file, header, ferr := r.FormFile("image"); ferr == nil {
		filename, serr := filemgr.SaveImage(file, header, filemgr.EntityBrand)
		if serr != nil {
			http.Error(w, "Image upload failed: "+serr.Error(), http.StatusBadRequest)
			return
		}
		set["image_url"] = filemgr.PublicURL(filemgr.EntityBrand, filename)
	}
	if len(set) == 0 {
		http.Error(w, "Nothing to update", http.StatusBadRequest)
		return
	}

	res, err := db.BrandsCollection.UpdateOne(ctx, bson.M{"_id": ps.ByName("id")}, bson.M{"$set": set})
	if err != nil {
		http.Error(w, "Failed to update brand", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "Brand not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func DeleteBrand(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := db.BrandsCollection.DeleteOne(ctx, bson.M{"_id": ps.ByName("id")})
	if err != nil {
		http.Error(w, "Failed to delete brand", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "Brand not found", http.StatusNotFound)
		return
	}

	// Detach products referencing this brand
	_, _ = db.ProductsCollection.UpdateMany(ctx,
		bson.M{"brand_id": ps.ByName("id")},
		bson.M{"$set": bson.M{"brand_id": ""}})

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
