package dedupe

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/redis/go-redis/v9"
)

type setNXer interface {
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
}

type Redis struct {
	C   setNXer
	TTL time.Duration
}

func NewRedis(addr string, ttl time.Duration) (*Redis, *redis.Client) {
	c := redis.NewClient(&redis.Options{Addr: addr})
	return &Redis{C: c, TTL: ttl}, c
}

func claimKey(messageID string) string { return "confirmation:" + messageID + ":claimed" }

func (r *Redis) Claim(ctx context.Context, messageID, orderID string) (bool, error) {
	ok, err := r.C.SetNX(ctx, claimKey(messageID), orderID, r.TTL).Result()
	if err != nil {
		return false, errors.Wrap(err, "redis setnx")
	}
	return ok, nil
}
