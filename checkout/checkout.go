package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"swaadha/cart"
	"swaadha/db"
	"swaadha/models"
	"swaadha/orderfeed"
	"swaadha/products"
	"swaadha/rdx"
	"swaadha/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type placeRequest struct {
	FullName       string `json:"full_name"`
	PhoneNumber    string `json:"phone_number"`
	AltPhoneNumber string `json:"alt_phone_number"`
	HouseNumber    string `json:"house_number"`
	Street         string `json:"street"`
	City           string `json:"city"`
	State          string `json:"state"`
	Pincode        string `json:"pincode"`
	PaymentMethod  string `json:"payment_method"`
}

func (p placeRequest) validate() error {
	if !utils.ValidName(p.FullName) {
		return errors.New("full name must contain only letters and spaces")
	}
	if !utils.ValidPhone(p.PhoneNumber) {
		return errors.New("phone number must be 10 digits")
	}
	if p.AltPhoneNumber != "" && !utils.ValidPhone(p.AltPhoneNumber) {
		return errors.New("alternate phone number must be 10 digits")
	}
	if p.HouseNumber == "" || p.Street == "" || p.City == "" || p.State == "" {
		return errors.New("address is incomplete")
	}
	if !utils.ValidPincode(p.Pincode) {
		return errors.New("pincode must be 6 digits")
	}
	if p.PaymentMethod != "cod" && p.PaymentMethod != "razorpay" {
		return errors.New("payment method must be cod or razorpay")
	}
	return nil
}

// buildOrder snapshots the cart into order items and prices everything
// server-side. Client-sent totals are never trusted.
func buildOrder(userID string, req placeRequest, lines []models.CartLine) models.Order {
	items := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, models.OrderItem{
			ProductID:   l.ProductID,
			VariationID: l.VariationID,
			Name:        l.Name,
			UnitType:    l.VariationName,
			Image:       l.Image,
			Price:       l.Price,
			Quantity:    l.Quantity,
		})
	}
	totals := cart.ComputeTotals(lines)
	return models.Order{
		ID:             "ord" + utils.GenerateRandomString(12),
		UserID:         userID,
		Items:          items,
		FullName:       req.FullName,
		PhoneNumber:    req.PhoneNumber,
		AltPhoneNumber: req.AltPhoneNumber,
		HouseNumber:    req.HouseNumber,
		Street:         req.Street,
		City:           req.City,
		State:          req.State,
		Pincode:        req.Pincode,
		PaymentMethod:  req.PaymentMethod,
		TotalPrice:     utils.Round2(totals.Subtotal),
		ShippingCost:   utils.Round2(totals.Shipping),
		GrandTotal:     utils.Round2(totals.GrandTotal),
		Status:         models.OrderPending,
		OrderDate:      time.Now(),
	}
}

// commitOrder inserts the order, decrements stock for every line, and
// clears the cart, all inside one transaction. Any line with too little
// stock aborts the whole order.
func commitOrder(ctx context.Context, order models.Order) error {
	session, err := db.Client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := db.OrdersCollection.InsertOne(sc, order); err != nil {
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
		if _, err := db.CartCollection.DeleteMany(sc, bson.M{"userId": order.UserID}); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}

// Checkout places an order from the caller's cart. COD orders commit
// immediately; razorpay orders are created pending and commit on Confirm.
func Checkout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	body, req, err := decodePlaceRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	idemKey := r.Header.Get("Idempotency-Key")
	if idemKey != "" {
		if replayed := replayIfSeen(ctx, w, userID, idemKey, body); replayed {
			return
		}
	}

	// One in-flight checkout per user.
	lockKey := "checkout:" + userID
	locked, err := rdx.RdxSetNX(lockKey, "1", 30*time.Second)
	if err == nil && !locked {
		http.Error(w, "Checkout already in progress", http.StatusConflict)
		return
	}
	defer rdx.RdxDel(lockKey)

	lines, err := cart.LoadLines(ctx, userID)
	if err != nil {
		log.Println("Checkout load cart error:", err)
		http.Error(w, "Could not retrieve cart", http.StatusInternalServerError)
		return
	}
	if len(lines) == 0 {
		http.Error(w, "Cart is empty", http.StatusBadRequest)
		return
	}
	for _, l := range lines {
		if l.Quantity > l.Stock {
			utils.RespondWithJSON(w, http.StatusConflict, map[string]any{
				"error":     "Insufficient stock",
				"productId": l.ProductID,
				"remaining": l.Stock,
			})
			return
		}
	}

	order := buildOrder(userID, req, lines)

	if req.PaymentMethod == "razorpay" {
		gw, err := createGatewayOrder(ctx, order.GrandTotal, order.ID)
		if err != nil {
			log.Println("Checkout gateway error:", err)
			http.Error(w, "Payment gateway unavailable", http.StatusBadGateway)
			return
		}
		order.GatewayOrderID = gw.ID
		order.PaymentStatus = "created"
		// Stock is not reserved until the payment confirms.
		if _, err := db.OrdersCollection.InsertOne(ctx, order); err != nil {
			http.Error(w, "Failed to create order", http.StatusInternalServerError)
			return
		}
		resp := map[string]any{
			"orderId":        order.ID,
			"gatewayOrderId": gw.ID,
			"amount":         gw.Amount,
			"currency":       gw.Currency,
			"keyId":          razorpayKeyID(),
		}
		recordAndRespond(ctx, w, userID, idemKey, body, http.StatusCreated, resp)
		return
	}

	order.PaymentStatus = "pending"
	if err := commitOrder(ctx, order); err != nil {
		if errors.Is(err, products.ErrInsufficientStock) {
			utils.RespondWithError(w, http.StatusConflict, err.Error())
			return
		}
		log.Println("Checkout commit error:", err)
		http.Error(w, "Failed to place order", http.StatusInternalServerError)
		return
	}

	orderfeed.PublishOrderEvent(ctx, models.OrderEvent{
		OrderID:    order.ID,
		Source:     "online",
		GrandTotal: order.GrandTotal,
		FullName:   order.FullName,
	})

	resp := map[string]any{"orderId": order.ID, "status": order.Status, "grandTotal": order.GrandTotal}
	recordAndRespond(ctx, w, userID, idemKey, body, http.StatusCreated, resp)
}

// ConfirmPayment verifies the gateway signature and commits the pending
// razorpay order.
func ConfirmPayment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		GatewayOrderID string `json:"razorpay_order_id"`
		PaymentID      string `json:"razorpay_payment_id"`
		Signature      string `json:"razorpay_signature"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil ||
		input.GatewayOrderID == "" || input.PaymentID == "" || input.Signature == "" {
		http.Error(w, "Missing payment fields", http.StatusBadRequest)
		return
	}

	if !verifySignature(input.GatewayOrderID, input.PaymentID, input.Signature) {
		http.Error(w, "Invalid payment signature", http.StatusBadRequest)
		return
	}

	var order models.Order
	err := db.OrdersCollection.FindOne(ctx, bson.M{
		"gateway_order_id": input.GatewayOrderID,
		"userId":           userID,
	}).Decode(&order)
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	if order.PaymentStatus == "paid" {
		utils.RespondWithJSON(w, http.StatusOK, map[string]string{"orderId": order.ID, "status": order.Status})
		return
	}

	session, err := db.Client.StartSession()
	if err != nil {
		http.Error(w, "Failed to confirm payment", http.StatusInternalServerError)
		return
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for _, item := range order.Items {
			if err := products.DecrementStock(sc, item.ProductID, item.VariationID, item.Quantity); err != nil {
				return nil, err
			}
		}
		if _, err := db.OrdersCollection.UpdateOne(sc,
			bson.M{"_id": order.ID},
			bson.M{"$set": bson.M{"payment_status": "paid", "payment_id": input.PaymentID}}); err != nil {
			return nil, err
		}
		if _, err := db.CartCollection.DeleteMany(sc, bson.M{"userId": order.UserID}); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		if errors.Is(err, products.ErrInsufficientStock) {
			// Paid but out of stock. Cancel so the refund path can pick it up.
			db.OrdersCollection.UpdateOne(ctx, bson.M{"_id": order.ID},
				bson.M{"$set": bson.M{"status": models.OrderCancelled, "payment_status": "refund_due", "payment_id": input.PaymentID}})
			utils.RespondWithError(w, http.StatusConflict, "insufficient stock, order cancelled")
			return
		}
		log.Println("ConfirmPayment commit error:", err)
		http.Error(w, "Failed to confirm payment", http.StatusInternalServerError)
		return
	}

	orderfeed.PublishOrderEvent(ctx, models.OrderEvent{
		OrderID:    order.ID,
		Source:     "online",
		GrandTotal: order.GrandTotal,
		FullName:   order.FullName,
	})

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"orderId": order.ID, "status": order.Status})
}
