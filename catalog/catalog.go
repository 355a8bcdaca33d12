package catalog

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"swaadha/db"
	"swaadha/filemgr"
	"swaadha/models"
	"swaadha/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// level wires one tier of the category/subcategory/sub-subcategory tree to
// its collection. Sub levels require a parent id.
type level struct {
	name        string
	idPrefix    string
	needsParent bool
	coll        func() *mongo.Collection
	childLevel  *level
}

var subSubcatLevel = level{
	name:        "sub-subcategory",
	idPrefix:    "ssc",
	needsParent: true,
	coll:        func() *mongo.Collection { return db.SubSubcatCollection },
}

var subcategoryLevel = level{
	name:        "subcategory",
	idPrefix:    "sc",
	needsParent: true,
	coll:        func() *mongo.Collection { return db.SubcategoriesCollection },
	childLevel:  &subSubcatLevel,
}

var categoryLevel = level{
	name:       "category",
	idPrefix:   "cat",
	coll:       func() *mongo.Collection { return db.CategoriesCollection },
	childLevel: &subcategoryLevel,
}

// priorityTaken reports whether another active row already holds the
// priority among siblings. Matches the client-side check from the
// original console before the unique index gets a say.
func priorityTaken(rows []models.CatalogNode, priority int, excludeID string) bool {
	for _, row := range rows {
		if row.Priority == priority && row.ID != excludeID && row.Active {
			return true
		}
	}
	return false
}

func (lv *level) siblings(ctx context.Context, parentID string) ([]models.CatalogNode, error) {
	filter := bson.M{}
	if lv.needsParent {
		filter["parentId"] = parentID
	}
	cursor, err := lv.coll().Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "priority", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []models.CatalogNode
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (lv *level) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	rows, err := lv.siblings(ctx, r.URL.Query().Get("parent"))
	if err != nil {
		http.Error(w, "Failed to fetch "+lv.name+" list", http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []models.CatalogNode{}
	}
	utils.RespondWithJSON(w, http.StatusOK, rows)
}

// create handles a multipart form: name, priority, optional parent, image.
func (lv *level) create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := r.ParseMultipartForm(12 << 20); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	name := r.FormValue("name")
	if name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}
	priority, err := strconv.Atoi(r.FormValue("priority"))
	if err != nil || priority < 1 {
		http.Error(w, "Priority must be a positive integer", http.StatusBadRequest)
		return
	}
	parentID := r.FormValue("parent")
	if lv.needsParent && parentID == "" {
		http.Error(w, "Parent is required for a "+lv.name, http.StatusBadRequest)
		return
	}

	// Name uniqueness within the level
	count, err := lv.coll().CountDocuments(ctx, bson.M{"name": name})
	if err != nil {
		http.Error(w, "Failed to check name", http.StatusInternalServerError)
		return
	}
	if count > 0 {
		http.Error(w, lv.name+" name already exists", http.StatusConflict)
		return
	}

	rows, err := lv.siblings(ctx, parentID)
	if err != nil {
		http.Error(w, "Failed to check priority", http.StatusInternalServerError)
		return
	}
	if priorityTaken(rows, priority, "") {
		http.Error(w, "Priority already in use", http.StatusConflict)
		return
	}

	node := models.CatalogNode{
		ID:        lv.idPrefix + utils.GenerateRandomString(10),
		Name:      name,
		ParentID:  parentID,
		Priority:  priority,
		Active:    true,
		CreatedAt: time.Now(),
	}

	if file, header, ferr := r.FormFile("image"); ferr == nil {
		filename, serr := filemgr.SaveImage(file, header, filemgr.EntityCategory)
		if serr != nil {
			http.Error(w, "Image upload failed: "+serr.Error(), http.StatusBadRequest)
			return
		}
		node.ImageURL = filemgr.PublicURL(filemgr.EntityCategory, filename)
	} else if !lv.needsParent {
		// Top-level categories require an image in the console
		http.Error(w, "Category image is required", http.StatusBadRequest)
		return
	}

	if _, err := lv.coll().InsertOne(ctx, node); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			http.Error(w, "Priority already in use", http.StatusConflict)
			return
		}
		http.Error(w, "Failed to create "+lv.name, http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, node)
}

func (lv *level) update(w http.ResponseWriter, r *http.Request, id string) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := r.ParseMultipartForm(12 << 20); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	var existing models.CatalogNode
	if err := lv.coll().FindOne(ctx, bson.M{"_id": id}).Decode(&existing); err != nil {
		http.Error(w, lv.name+" not found", http.StatusNotFound)
		return
	}

	set := bson.M{}
	if name := r.FormValue("name"); name != "" {
		set["name"] = name
	}
	if p := r.FormValue("priority"); p != "" {
		priority, err := strconv.Atoi(p)
		if err != nil || priority < 1 {
			http.Error(w, "Priority must be a positive integer", http.StatusBadRequest)
			return
		}
		rows, err := lv.siblings(ctx, existing.ParentID)
		if err != nil {
			http.Error(w, "Failed to check priority", http.StatusInternalServerError)
			return
		}
		if priorityTaken(rows, priority, id) {
			http.Error(w, "Priority already in use", http.StatusConflict)
			return
		}
		set["priority"] = priority
	}
	if file, header, ferr := r.FormFile("image"); ferr == nil {
		filename, serr := filemgr.SaveImage(file, header, filemgr.EntityCategory)
		if serr != nil {
			http.Error(w, "Image upload failed: "+serr.Error(), http.StatusBadRequest)
			return
		}
		set["image_url"] = filemgr.PublicURL(filemgr.EntityCategory, filename)
	}
	if len(set) == 0 {
		http.Error(w, "Nothing to update", http.StatusBadRequest)
		return
	}

	if _, err := lv.coll().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			http.Error(w, "Priority already in use", http.StatusConflict)
			return
		}
		http.Error(w, "Failed to update "+lv.name, http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// delete removes the node, its descendants, and detaches products.
func (lv *level) delete(w http.ResponseWriter, r *http.Request, id string) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	res, err := lv.coll().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		http.Error(w, "Failed to delete "+lv.name, http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, lv.name+" not found", http.StatusNotFound)
		return
	}

	if err := lv.cascade(ctx, []string{id}); err != nil {
		http.Error(w, "Deleted but cascade failed", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (lv *level) cascade(ctx context.Context, parentIDs []string) error {
	field := map[string]string{
		"category":        "category_id",
		"subcategory":     "subcategory_id",
		"sub-subcategory": "sub_subcategory_id",
	}[lv.name]
	if _, err := db.ProductsCollection.UpdateMany(ctx,
		bson.M{field: bson.M{"$in": parentIDs}},
		bson.M{"$set": bson.M{field: ""}},
	); err != nil {
		return err
	}

	if lv.childLevel == nil {
		return nil
	}
	cursor, err := lv.childLevel.coll().Find(ctx, bson.M{"parentId": bson.M{"$in": parentIDs}})
	if err != nil {
		return err
	}
	var children []models.CatalogNode
	if err := cursor.All(ctx, &children); err != nil {
		return err
	}
	if len(children) == 0 {
		return nil
	}
	childIDs := make([]string, 0, len(children))
	for _, c := range children {
		childIDs = append(childIDs, c.ID)
	}
	if _, err := lv.childLevel.coll().DeleteMany(ctx, bson.M{"_id": bson.M{"$in": childIDs}}); err != nil {
		return err
	}
	return lv.childLevel.cascade(ctx, childIDs)
}

func (lv *level) toggleHome(w http.ResponseWriter, r *http.Request, id string) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var existing models.CatalogNode
	if err := lv.coll().FindOne(ctx, bson.M{"_id": id}).Decode(&existing); err != nil {
		http.Error(w, lv.name+" not found", http.StatusNotFound)
		return
	}
	if _, err := lv.coll().UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"home_status": !existing.HomeStatus}}); err != nil {
		http.Error(w, "Failed to toggle home status", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]bool{"home_status": !existing.HomeStatus})
}

// Handlers

func GetCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	categoryLevel.list(w, r)
}
func CreateCategory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	categoryLevel.create(w, r)
}
func UpdateCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	categoryLevel.update(w, r, ps.ByName("id"))
}
func DeleteCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	categoryLevel.delete(w, r, ps.ByName("id"))
}
func ToggleCategoryHome(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	categoryLevel.toggleHome(w, r, ps.ByName("id"))
}

func GetSubcategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	subcategoryLevel.list(w, r)
}
func CreateSubcategory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	subcategoryLevel.create(w, r)
}
func UpdateSubcategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	subcategoryLevel.update(w, r, ps.ByName("id"))
}
func DeleteSubcategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	subcategoryLevel.delete(w, r, ps.ByName("id"))
}

func GetSubSubcategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	subSubcatLevel.list(w, r)
}
func CreateSubSubcategory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	subSubcatLevel.create(w, r)
}
func UpdateSubSubcategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	subSubcatLevel.update(w, r, ps.ByName("id"))
}
func DeleteSubSubcategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	subSubcatLevel.delete(w, r, ps.ByName("id"))
}
