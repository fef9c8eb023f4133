package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist remembers logged-out tokens until they expire.
// A nil client turns every call into a no-op (development without Redis).
type TokenBlacklist struct {
	client *redis.Client
}

func NewTokenBlacklist(client *redis.Client) *TokenBlacklist {
	if client == nil {
		log.Println("⚠️ Redis client not initialized, token blacklist disabled")
	}
	return &TokenBlacklist{client: client}
}

func blacklistKey(token string) string {
	return fmt.Sprintf("blacklist:%s", token)
}

func (b *TokenBlacklist) Add(ctx context.Context, token string, expiresIn time.Duration) error {
	if b == nil || b.client == nil {
		return nil
	}
	if expiresIn <= 0 {
		return nil
	}
	if err := b.client.Set(ctx, blacklistKey(token), "1", expiresIn).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %v", err)
	}
	return nil
}

func (b *TokenBlacklist) Contains(ctx context.Context, token string) (bool, error) {
	if b == nil || b.client == nil {
		return false, nil
	}
	_, err := b.client.Get(ctx, blacklistKey(token)).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to check blacklist: %v", err)
	}
	return true, nil
}
