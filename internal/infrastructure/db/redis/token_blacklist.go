package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// minRevocationTTL keeps a revoked id around briefly even when the token is
// already expired, so clock skew cannot resurrect it.
const minRevocationTTL = time.Minute

// TokenBlacklist stores revoked JWT ids in Redis.
// Key format: revoked:<jti>
type TokenBlacklist struct {
	client *redis.Client
	now    func() time.Time
}

// NewTokenBlacklist creates a TokenBlacklist wrapping the given Redis client.
func NewTokenBlacklist(client *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{client: client, now: time.Now}
}

// Revoke marks the token id as revoked until expiresAt.
func (b *TokenBlacklist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(b.now())
	if ttl < minRevocationTTL {
		ttl = minRevocationTTL
	}
	if err := b.client.Set(ctx, b.key(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token id has been revoked.
func (b *TokenBlacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := b.client.Exists(ctx, b.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func (b *TokenBlacklist) key(tokenID string) string {
	return "revoked:" + tokenID
}
