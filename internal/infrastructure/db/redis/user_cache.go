package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/adminsync/portal-api/internal/core/domain"
)

const (
	userListKey = "users:all"
	userListTTL = 5 * time.Minute
)

// UserCache caches the user listing in Redis. Cache failures are treated as
// misses so the listing always falls back to the repository.
type UserCache struct {
	client *redis.Client
}

func NewUserCache(client *redis.Client) *UserCache {
	return &UserCache{client: client}
}

func (c *UserCache) GetList(ctx context.Context) ([]domain.User, bool) {
	raw, err := c.client.Get(ctx, userListKey).Bytes()
	if err != nil {
		return nil, false
	}
	var users []domain.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, false
	}
	return users, true
}

func (c *UserCache) SetList(ctx context.Context, users []domain.User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, userListKey, raw, userListTTL).Err()
}

func (c *UserCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, userListKey).Err()
}
