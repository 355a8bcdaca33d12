package pos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"swaadha/db"
	"swaadha/models"
	"swaadha/orderfeed"
	"swaadha/products"
	"swaadha/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type posLine struct {
	ProductID   string `json:"productId"`
	VariationID string `json:"variationId"`
	Quantity    int    `json:"quantity"`
}

type placeRequest struct {
	CustomerID     string    `json:"customer_id"`
	NewCustomer    *customer `json:"new_customer"`
	PaymentMethod  string    `json:"payment_method"`
	Items          []posLine `json:"items"`
	TaxAmount      float64   `json:"tax_amount"`
	DiscountAmount float64   `json:"discount_amount"`
}

type customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ComputePosTotals prices a counter sale: item subtotal plus tax, minus
// discount, with the grand total floored at zero.
func ComputePosTotals(items []models.OrderItem, tax, discount float64) (subtotal, grand float64) {
	for _, it := range items {
		subtotal += it.Price * float64(it.Quantity)
	}
	subtotal = utils.Round2(subtotal)
	grand = utils.Round2(subtotal + tax - discount)
	if grand < 0 {
		grand = 0
	}
	return subtotal, grand
}

func resolveCustomer(ctx context.Context, req placeRequest) (models.Customer, error) {
	if req.CustomerID != "" {
		var c models.Customer
		err := db.CustomersCollection.FindOne(ctx, bson.M{"_id": req.CustomerID}).Decode(&c)
		if err != nil {
			return c, errors.New("customer not found")
		}
		return c, nil
	}
	if req.NewCustomer == nil {
		return models.Customer{}, errors.New("customer is required")
	}
	nc := req.NewCustomer
	if !utils.ValidName(nc.Name) {
		return models.Customer{}, errors.New("customer name must contain only letters and spaces")
	}
	if nc.Email != "" && !utils.ValidEmail(nc.Email) {
		return models.Customer{}, errors.New("invalid customer email")
	}
	if !utils.ValidIndianPhone(nc.Phone) {
		return models.Customer{}, errors.New("customer phone must be a valid 10 digit mobile number")
	}

	// Reuse an existing customer with the same phone instead of piling
	// up duplicates at the counter.
	var existing models.Customer
	if err := db.CustomersCollection.FindOne(ctx, bson.M{"phone": nc.Phone}).Decode(&existing); err == nil {
		return existing, nil
	}

	c := models.Customer{
		ID:        "cu" + utils.GenerateRandomString(10),
		Name:      nc.Name,
		Email:     nc.Email,
		Phone:     nc.Phone,
		CreatedAt: time.Now(),
	}
	if _, err := db.CustomersCollection.InsertOne(ctx, c); err != nil {
		return c, err
	}
	return c, nil
}

// PlaceOrder records a counter sale. Stock decrements and the order
// insert share one transaction so a short line cancels the sale.
func PlaceOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	var req placeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if req.PaymentMethod == "" {
		http.Error(w, "Payment method is required", http.StatusBadRequest)
		return
	}
	if len(req.Items) == 0 {
		http.Error(w, "Order has no items", http.StatusBadRequest)
		return
	}
	if req.TaxAmount < 0 || req.DiscountAmount < 0 {
		http.Error(w, "Tax and discount cannot be negative", http.StatusBadRequest)
		return
	}

	cust, err := resolveCustomer(ctx, req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	items, err := priceItems(ctx, req.Items)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	subtotal, grand := ComputePosTotals(items, req.TaxAmount, req.DiscountAmount)
	order := models.PosOrder{
		ID:             "pos" + utils.GenerateRandomString(12),
		CustomerID:     cust.ID,
		FullName:       cust.Name,
		PhoneNumber:    cust.Phone,
		PaymentMethod:  req.PaymentMethod,
		Items:          items,
		Subtotal:       subtotal,
		TaxAmount:      utils.Round2(req.TaxAmount),
		DiscountAmount: utils.Round2(req.DiscountAmount),
		GrandTotal:     grand,
		OrderDate:      time.Now(),
	}

	session, err := db.Client.StartSession()
	if err != nil {
		http.Error(w, "Failed to place order", http.StatusInternalServerError)
		return
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := db.PosOrdersCollection.InsertOne(sc, order); err != nil {
			return nil, err
		}
		for _, item := range order.Items {
			if err := products.DecrementStock(sc, item.ProductID, item.VariationID, item.Quantity); err != nil {
				if errors.Is(err, products.ErrInsufficientStock) {
					return nil, fmt.Errorf("%w: %s", products.ErrInsufficientStock, item.Name)
				}
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		if errors.Is(err, products.ErrInsufficientStock) {
			utils.RespondWithError(w, http.StatusConflict, err.Error())
			return
		}
		log.Println("PlaceOrder commit error:", err)
		http.Error(w, "Failed to place order", http.StatusInternalServerError)
		return
	}

	orderfeed.PublishOrderEvent(ctx, models.OrderEvent{
		OrderID:    order.ID,
		Source:     "pos",
		GrandTotal: order.GrandTotal,
		FullName:   order.FullName,
	})

	utils.RespondWithJSON(w, http.StatusCreated, order)
}

// priceItems snapshots current product data into order items.
func priceItems(ctx context.Context, lines []posLine) ([]models.OrderItem, error) {
	items := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		if l.ProductID == "" || l.Quantity <= 0 {
			return nil, errors.New("each item needs a product and a positive quantity")
		}
		var p models.Product
		if err := db.ProductsCollection.FindOne(ctx, bson.M{"_id": l.ProductID, "active": true}).Decode(&p); err != nil {
			return nil, errors.New("product unavailable: " + l.ProductID)
		}
		item := models.OrderItem{
			ProductID: l.ProductID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  l.Quantity,
		}
		if len(p.Images) > 0 {
			item.Image = p.Images[0]
		}
		if l.VariationID != "" {
			found := false
			for _, v := range p.Variations {
				if v.ID == l.VariationID {
					item.VariationID = v.ID
					item.UnitType = v.UnitType
					item.Price = v.Price
					found = true
					break
				}
			}
			if !found {
				return nil, errors.New("variation not found: " + l.VariationID)
			}
		}
		items = append(items, item)
	}
	return items, nil
}

// GetPosOrders lists counter sales, newest first, with optional search
// on customer name or phone.
func GetPosOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := utils.ParseQueryOptions(r)
	filter := bson.M{}
	if opts.Search != "" {
		regex := primitive.Regex{Pattern: opts.Search, Options: "i"}
		filter["$or"] = []bson.M{
			{"full_name": regex},
			{"phone_number": regex},
			{"_id": regex},
		}
	}

	total, err := db.PosOrdersCollection.CountDocuments(ctx, filter)
	if err != nil {
		http.Error(w, "Could not retrieve orders", http.StatusInternalServerError)
		return
	}

	findOpts := options.Find().
		SetSort(bson.M{"order_date": -1}).
		SetSkip(int64((opts.Page - 1) * opts.Limit)).
		SetLimit(int64(opts.Limit))
	cursor, err := db.PosOrdersCollection.Find(ctx, filter, findOpts)
	if err != nil {
		http.Error(w, "Could not retrieve orders", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var list []models.PosOrder
	if err := cursor.All(ctx, &list); err != nil {
		http.Error(w, "Could not retrieve orders", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"orders": list,
		"total":  total,
		"page":   opts.Page,
		"limit":  opts.Limit,
	})
}
