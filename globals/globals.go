package globals

import "os"

var (
	JwtSecret = []byte(getenv("JWT_SECRET", "swaadha_dev_secret"))
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

type ContextKey string

const UserIDKey ContextKey = "userId"
const RoleKey ContextKey = "role"

// A cart line ships free once its own subtotal reaches this amount
// (inclusive). POS orders never charge shipping.
const FreeShippingThreshold float64 = 500
