// Package redisstore holds the visitor favorite set in Redis: one fixed key
// with a JSON-serialized array of assignment ids, read wholesale and
// rewritten wholesale on every toggle, mirroring the browser-storage
// contract it replaces.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const DefaultKey = "favorites"

// NewClient parses redisURL and verifies connectivity.
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", redisURL, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

type FavoriteStore struct {
	client *redis.Client
	key    string
}

func NewFavoriteStore(client *redis.Client, key string) *FavoriteStore {
	if key == "" {
		key = DefaultKey
	}
	return &FavoriteStore{client: client, key: key}
}

// List returns the current favorite set. A missing key is an empty set.
func (s *FavoriteStore) List(ctx context.Context) ([]int64, error) {
	raw, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []int64{}, nil
		}
		return nil, fmt.Errorf("read favorites: %w", err)
	}

	var ids []int64
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("decode favorites: %w", err)
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

// Toggle adds the id if absent and removes it if present, then rewrites the
// whole set. Returns the updated set.
func (s *FavoriteStore) Toggle(ctx context.Context, id int64) ([]int64, error) {
	ids, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	ids = toggleID(ids, id)

	raw, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("encode favorites: %w", err)
	}

	if err := s.client.Set(ctx, s.key, raw, 0).Err(); err != nil {
		return nil, fmt.Errorf("write favorites: %w", err)
	}

	return ids, nil
}

func toggleID(ids []int64, id int64) []int64 {
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return append(ids, id)
}
