package database

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// InitRedis returns nil when addr is empty or the server does not answer,
// callers then run without blacklist and background tasks.
func InitRedis(addr string) *redis.Client {
	if addr == "" {
		log.Println("⚠️ REDIS_URI not set. Running without Redis.")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr, // e.g. localhost:6379
		Password: "",
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Println("❌ Failed to connect Redis:", err)
		_ = rdb.Close()
		return nil
	}

	log.Println("✅ Redis connected successfully")
	return rdb
}
