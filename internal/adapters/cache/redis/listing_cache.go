package redis

import (
	"context"
	"errors"
	"time"

	"github.com/pollboard/api/internal/core/ports"
	"github.com/redis/go-redis/v9"
)

const (
	listingKey = "polls:listing"
	listingTTL = 5 * time.Minute
)

// ListingCache stores the rendered poll listing in Redis so the admin
// view does not hit Postgres on every request. Poll mutations invalidate
// the key; a miss simply means the next read repopulates it.
type ListingCache struct {
	client *redis.Client
}

func NewListingCache(client *redis.Client) ports.ListingCache {
	return &ListingCache{client: client}
}

func (c *ListingCache) GetListing(ctx context.Context) (string, error) {
	payload, err := c.client.Get(ctx, listingKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return payload, nil
}

func (c *ListingCache) SetListing(ctx context.Context, payload string) error {
	return c.client.Set(ctx, listingKey, payload, listingTTL).Err()
}

func (c *ListingCache) InvalidateListing(ctx context.Context) error {
	return c.client.Del(ctx, listingKey).Err()
}
