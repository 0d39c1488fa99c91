package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/sirpyerre/jobly/internal/core/domain"
)

// RevocationList records identities whose tokens the access gate must
// reject. Tokens carry no expiry, so entries carry none either.
// Key format: revoked:<username>:<is_admin>
type RevocationList struct {
	client redis.Cmdable
}

// NewRevocationList creates a RevocationList wrapping the given Redis client.
func NewRevocationList(client redis.Cmdable) *RevocationList {
	return &RevocationList{client: client}
}

// Revoke marks every given identity as revoked in one round trip.
func (r *RevocationList) Revoke(ctx context.Context, ids ...domain.Identity) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		for _, id := range ids {
			p.Set(ctx, key(id), "1", 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("revoke: %w", err)
	}
	return nil
}

// Restore clears the given identities.
func (r *RevocationList) Restore(ctx context.Context, ids ...domain.Identity) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = key(id)
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	return nil
}

// IsRevoked reports whether tokens for this identity must be rejected.
func (r *RevocationList) IsRevoked(ctx context.Context, id domain.Identity) (bool, error) {
	n, err := r.client.Exists(ctx, key(id)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func key(id domain.Identity) string {
	return "revoked:" + id.Username + ":" + strconv.FormatBool(id.IsAdmin)
}
