package checkout

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"os"
	"time"
)

// Razorpay's REST surface is two calls here (create order, verify
// signature), so a plain HTTP client is used instead of an SDK.

const razorpayBase = "https://api.razorpay.com/v1"

var gatewayHTTP = &http.Client{Timeout: 15 * time.Second}

type gatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

func razorpayKeyID() string  { return os.Getenv("RAZORPAY_KEY_ID") }
func razorpaySecret() string { return os.Getenv("RAZORPAY_KEY_SECRET") }

// createGatewayOrder opens a razorpay order for the grand total. Amounts
// go over the wire in paise.
func createGatewayOrder(ctx context.Context, grandTotal float64, receipt string) (*gatewayOrder, error) {
	payload := map[string]any{
		"amount":   int64(math.Round(grandTotal * 100)),
		"currency": "INR",
		"receipt":  receipt,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, razorpayBase+"/orders", bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(razorpayKeyID(), razorpaySecret())

	resp, err := gatewayHTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("razorpay order create failed: %s", resp.Status)
	}

	var gw gatewayOrder
	if err := json.NewDecoder(resp.Body).Decode(&gw); err != nil {
		return nil, err
	}
	return &gw, nil
}

// verifySignature checks the checkout callback HMAC, as documented by
// razorpay: HMAC-SHA256(order_id + "|" + payment_id, key_secret).
func verifySignature(gatewayOrderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(razorpaySecret()))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
