package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	redis "github.com/redis/go-redis/v9"

	"github.com/noah-isme/motiondevis/internal/devis"
)

// RedisStore keeps the blob under a single Redis key, for operators who
// want the state to outlive the machine the tool runs on.
type RedisStore struct {
	Client *redis.Client
}

// Load reads the persisted state. A missing key maps to devis.ErrNotFound.
func (r *RedisStore) Load(ctx context.Context) (devis.State, error) {
	raw, err := r.Client.Get(ctx, Key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return devis.State{}, devis.ErrNotFound
		}
		return devis.State{}, fmt.Errorf("read state: %w", err)
	}
	var st devis.State
	if err := json.Unmarshal(raw, &st); err != nil {
		return devis.State{}, fmt.Errorf("decode state: %w", err)
	}
	return st, nil
}

// Ping checks the Redis connection.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}

// Save overwrites the whole snapshot. The blob never expires.
func (r *RedisStore) Save(ctx context.Context, st devis.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := r.Client.Set(ctx, Key, data, 0).Err(); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}
