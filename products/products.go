package products

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"swaadha/db"
	"swaadha/filemgr"
	"swaadha/models"
	"swaadha/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// CreateProduct accepts a multipart form: a "product" JSON field carrying
// the product body (including variations), plus any number of "images"
// files.
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	if err := r.ParseMultipartForm(40 << 20); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	var product models.Product
	if err := json.Unmarshal([]byte(r.FormValue("product")), &product); err != nil {
		http.Error(w, "Invalid product payload", http.StatusBadRequest)
		return
	}

	if product.Name == "" || product.SKU == "" || product.CategoryID == "" {
		http.Error(w, "Name, SKU and category are required", http.StatusBadRequest)
		return
	}

	count, err := db.ProductsCollection.CountDocuments(ctx, bson.M{"sku": product.SKU})
	if err != nil {
		http.Error(w, "Failed to check SKU", http.StatusInternalServerError)
		return
	}
	if count > 0 {
		http.Error(w, "SKU already exists", http.StatusConflict)
		return
	}

	if product.HasVariation {
		if len(product.Variations) == 0 {
			http.Error(w, "At least one variation is required", http.StatusBadRequest)
			return
		}
		for i := range product.Variations {
			v := &product.Variations[i]
			if v.UnitType == "" || v.Price <= 0 || v.Stock < 0 {
				http.Error(w, "Each variation needs a unit type, positive price and non-negative stock", http.StatusBadRequest)
				return
			}
			v.ID = "var" + utils.GenerateRandomString(10)
			if v.SKU == "" {
				v.SKU = product.SKU + "-" + v.UnitType
			}
		}
		product.Price = 0
		product.Stock = 0
	} else {
		product.Variations = nil
		if product.Price <= 0 {
			http.Error(w, "Price must be positive", http.StatusBadRequest)
			return
		}
	}

	product.ID = "p" + utils.GenerateRandomString(10)
	product.Active = true
	product.Images = nil
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt

	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["images"] {
			file, ferr := header.Open()
			if ferr != nil {
				continue
			}
			filename, serr := filemgr.SaveImage(file, header, filemgr.EntityProduct)
			if serr != nil {
				http.Error(w, "Image upload failed: "+serr.Error(), http.StatusBadRequest)
				return
			}
			product.Images = append(product.Images, filemgr.PublicURL(filemgr.EntityProduct, filename))
		}
	}

	if _, err := db.ProductsCollection.InsertOne(ctx, product); err != nil {
		http.Error(w, "Failed to create product", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, product)
}

func UpdateProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()
	id := ps.ByName("id")

	if err := r.ParseMultipartForm(40 << 20); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	var existing models.Product
	if err := db.ProductsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&existing); err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	var patch models.Product
	if err := json.Unmarshal([]byte(r.FormValue("product")), &patch); err != nil {
		http.Error(w, "Invalid product payload", http.StatusBadRequest)
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if patch.Name != "" {
		set["name"] = patch.Name
	}
	if patch.Description != "" {
		set["description"] = patch.Description
	}
	if patch.Ingredients != "" {
		set["ingredients"] = patch.Ingredients
	}
	if patch.CategoryID != "" {
		set["category_id"] = patch.CategoryID
	}
	set["subcategory_id"] = patch.SubcategoryID
	set["sub_subcategory_id"] = patch.SubSubcatID
	set["brand_id"] = patch.BrandID
	set["taste_id"] = patch.TasteID
	set["pack_of"] = patch.PackOf
	set["max_shelf_life"] = patch.MaxShelfLife
	set["youtube_url"] = patch.YoutubeURL
	set["shipping_charge"] = patch.ShippingCharge

	if patch.HasVariation {
		for i := range patch.Variations {
			v := &patch.Variations[i]
			if v.ID == "" {
				v.ID = "var" + utils.GenerateRandomString(10)
			}
		}
		set["has_variation"] = true
		set["variations"] = patch.Variations
	} else {
		set["has_variation"] = false
		set["variations"] = []models.Variation{}
		if patch.Price > 0 {
			set["price"] = patch.Price
		}
		if patch.Stock >= 0 {
			set["stock"] = patch.Stock
		}
	}

	images := existing.Images
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["images"] {
			file, ferr := header.Open()
			if ferr != nil {
				continue
			}
			filename, serr := filemgr.SaveImage(file, header, filemgr.EntityProduct)
			if serr != nil {
				http.Error(w, "Image upload failed: "+serr.Error(), http.StatusBadRequest)
				return
			}
			images = append(images, filemgr.PublicURL(filemgr.EntityProduct, filename))
		}
	}
	set["images"] = images

	if _, err := db.ProductsCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
		http.Error(w, "Failed to update product", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// DeleteProduct removes the product and clears it out of carts and
// wishlists so stale lines can't be ordered.
func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()
	id := ps.ByName("id")

	res, err := db.ProductsCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		http.Error(w, "Failed to delete product", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	_, _ = db.CartCollection.DeleteMany(ctx, bson.M{"productId": id})
	_, _ = db.WishlistCollection.DeleteMany(ctx, bson.M{"productId": id})
	_, _ = db.ReviewsCollection.DeleteMany(ctx, bson.M{"product_id": id})

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ToggleActive flips storefront visibility without deleting history.
func ToggleActive(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	id := ps.ByName("id")

	var existing models.Product
	if err := db.ProductsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&existing); err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	if _, err := db.ProductsCollection.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"active": !existing.Active, "updated_at": time.Now()}}); err != nil {
		http.Error(w, "Failed to toggle product", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]bool{"active": !existing.Active})
}

func parseIntDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
