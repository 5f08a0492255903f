package linkstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisKV adapts a *redis.Client to the kv interface Store is built
// on.
type redisKV struct {
	rdb *redis.Client
}

func (r redisKV) Incr(ctx context.Context, key string) (int64, error) {
	return r.rdb.Incr(ctx, key).Result()
}

func (r redisKV) Decr(ctx context.Context, key string) (int64, error) {
	return r.rdb.Decr(ctx, key).Result()
}

func (r redisKV) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r redisKV) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return r.rdb.SetNX(ctx, key, value, ttl).Result()
}

func (r redisKV) Del(ctx context.Context, key string) (int64, error) {
	return r.rdb.Del(ctx, key).Result()
}

func (r redisKV) ScanMatch(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	iter := r.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

func (r redisKV) MGet(ctx context.Context, keys []string) ([]string, error) {
	raw, err := r.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	out := make([]string, len(raw))
	for i, v := range raw {
		if s, ok := v.(string); ok {
			out[i] = s
		}
	}
	return out, nil
}

// NewRedisStore builds a Store backed by a real Redis server. domain
// is the service's own hostname, used to reject self-links.
func NewRedisStore(rdb *redis.Client, domain string) *Store {
	return newStore(redisKV{rdb: rdb}, domain)
}
