package rdx

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := Conn.Ping(context.Background()).Err(); err != nil {
		log.Println("Redis ping failed:", err)
	}
}

func RdxSet(key, value string) error {
	return Conn.Set(context.Background(), key, value, 0).Err()
}

func RdxDel(key string) error {
	return Conn.Del(context.Background(), key).Err()
}

func RdxHset(hash, field, value string) error {
	return Conn.HSet(context.Background(), hash, field, value).Err()
}

func RdxHdel(hash, field string) (int64, error) {
	return Conn.HDel(context.Background(), hash, field).Result()
}

func RdxSetNX(key, value string, ttl time.Duration) (bool, error) {
	return Conn.SetNX(context.Background(), key, value, ttl).Result()
}

// CacheJSON marshals v into key with a TTL. Errors are logged, not
// returned; a cold cache is never fatal.
func CacheJSON(ctx context.Context, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Println("CacheJSON marshal error:", err)
		return
	}
	if err := Conn.Set(ctx, key, data, ttl).Err(); err != nil {
		log.Println("CacheJSON set error:", err)
	}
}

// GetJSON loads key into out, reporting whether it was present.
func GetJSON(ctx context.Context, key string, out any) bool {
	data, err := Conn.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, out) == nil
}
