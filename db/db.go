package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection          *mongo.Collection
	SubadminCollection      *mongo.Collection
	CategoriesCollection    *mongo.Collection
	SubcategoriesCollection *mongo.Collection
	SubSubcatCollection     *mongo.Collection
	BrandsCollection        *mongo.Collection
	AttributesCollection    *mongo.Collection
	ProductsCollection      *mongo.Collection
	ReviewsCollection       *mongo.Collection
	CartCollection          *mongo.Collection
	WishlistCollection      *mongo.Collection
	OrdersCollection        *mongo.Collection
	PosOrdersCollection     *mongo.Collection
	CustomersCollection     *mongo.Collection
	OffersCollection        *mongo.Collection
	BannersCollection       *mongo.Collection
	NotifBannerCollection   *mongo.Collection
	HeroCollection          *mongo.Collection
	InstaCollection         *mongo.Collection
	IdempotencyCollection   *mongo.Collection
	Client                  *mongo.Client
)

// Initialize MongoDB connection
func init() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file loaded:", err)
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ClientOptions := options.Client().ApplyURI(uri)
	Client, err = mongo.Connect(context.TODO(), ClientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	shop := Client.Database("swaadhadb")
	UserCollection = shop.Collection("users")
	SubadminCollection = shop.Collection("subadmins")
	CategoriesCollection = shop.Collection("categories")
	SubcategoriesCollection = shop.Collection("subcategories")
	SubSubcatCollection = shop.Collection("subsubcategories")
	BrandsCollection = shop.Collection("brands")
	AttributesCollection = shop.Collection("attributes")
	ProductsCollection = shop.Collection("products")
	ReviewsCollection = shop.Collection("reviews")
	CartCollection = shop.Collection("cart")
	WishlistCollection = shop.Collection("wishlists")
	OrdersCollection = shop.Collection("orders")
	PosOrdersCollection = shop.Collection("posorders")
	CustomersCollection = shop.Collection("customers")
	OffersCollection = shop.Collection("offers")
	BannersCollection = shop.Collection("banners")
	NotifBannerCollection = shop.Collection("notifbanner")
	HeroCollection = shop.Collection("herosliders")
	InstaCollection = shop.Collection("instalinks")
	IdempotencyCollection = shop.Collection("idempotency")
}

// EnsureIndexes creates the indexes the write paths rely on. Called once
// from main after the connection is up.
func EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	// One cart row per (user, product, variation).
	_, err := CartCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "productId", Value: 1},
			{Key: "variationId", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("unique_cart_line"),
	})
	if err != nil {
		return err
	}

	// Manual sort priority is unique among active rows of a level.
	for _, coll := range []*mongo.Collection{CategoriesCollection, SubcategoriesCollection, SubSubcatCollection} {
		_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{
				{Key: "parentId", Value: 1},
				{Key: "priority", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("unique_priority").
				SetPartialFilterExpression(bson.M{"active": true}),
		})
		if err != nil {
			return err
		}
	}

	idxs := []mongo.IndexModel{
		{
			Keys:    bson.M{"key": 1},
			Options: options.Index().SetUnique(true).SetName("unique_key"),
		},
		{
			Keys:    bson.M{"expires_at": 1},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("ttl_expires_at"),
		},
	}
	_, err = IdempotencyCollection.Indexes().CreateMany(ctx, idxs)
	if err != nil {
		return err
	}

	_, err = OrdersCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "status", Value: 1}, {Key: "order_date", Value: -1}},
		Options: options.Index().SetName("status_date"),
	})
	return err
}

func Close() {
	if Client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Client.Disconnect(ctx); err != nil {
		log.Println("Mongo disconnect error:", err)
	}
}
