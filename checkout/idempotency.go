package checkout

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"swaadha/db"
	"swaadha/models"
	"swaadha/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const idemTTL = 24 * time.Hour

// decodePlaceRequest reads the body once, keeping the raw bytes so the
// idempotency hash covers exactly what the client sent.
func decodePlaceRequest(r *http.Request) ([]byte, placeRequest, error) {
	var req placeRequest
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return nil, req, errors.New("could not read request body")
	}
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&req); err != nil {
		return nil, req, errors.New("invalid JSON payload")
	}
	if err := req.validate(); err != nil {
		return nil, req, err
	}
	return body, req, nil
}

func hashBody(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

// replayIfSeen writes the stored response for a key we have already
// answered. A reused key with a different body is rejected outright.
func replayIfSeen(ctx context.Context, w http.ResponseWriter, userID, key string, body []byte) bool {
	var rec models.IdempotencyRecord
	err := db.IdempotencyCollection.FindOne(ctx, bson.M{"key": key, "user_id": userID}).Decode(&rec)
	if err != nil {
		return false
	}
	if rec.RequestHash != hashBody(body) {
		http.Error(w, "Idempotency key reused with a different request", http.StatusUnprocessableEntity)
		return true
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Idempotent-Replay", "true")
	w.WriteHeader(rec.StatusCode)
	w.Write(rec.Body)
	return true
}

// recordAndRespond stores the response under the key (when one was sent)
// and writes it to the client.
func recordAndRespond(ctx context.Context, w http.ResponseWriter, userID, key string, body []byte, status int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
	if key != "" {
		rec := models.IdempotencyRecord{
			Key:         key,
			UserID:      userID,
			RequestHash: hashBody(body),
			StatusCode:  status,
			Body:        data,
			CreatedAt:   time.Now(),
			ExpiresAt:   time.Now().Add(idemTTL),
		}
		if _, err := db.IdempotencyCollection.InsertOne(ctx, rec); err != nil && !mongo.IsDuplicateKeyError(err) {
			// The order is already placed; losing the replay record only
			// costs a retry its cached answer.
			utils.RespondWithJSON(w, status, payload)
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}
