package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/alexanderramin/glidepath/internal/domain"
)

const DefaultRedisPrefix = "glidepath:"

// RedisSnapshotStore stores each snapshot as a JSON string. A second key
// per user points at the active program, which is the last one saved.
type RedisSnapshotStore struct {
	client redis.Cmdable
	prefix string
}

func NewRedisSnapshotStore(client redis.Cmdable, prefix string) *RedisSnapshotStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisSnapshotStore{client: client, prefix: prefix}
}

func (r *RedisSnapshotStore) snapshotKey(key SnapshotKey) string {
	return fmt.Sprintf("%ssnapshot:%s:%s", r.prefix, key.UserID, key.ProgramID)
}

func (r *RedisSnapshotStore) activeKey(userID string) string {
	return fmt.Sprintf("%sactive:%s", r.prefix, userID)
}

func (r *RedisSnapshotStore) Load(ctx context.Context, key SnapshotKey) (*domain.Snapshot, error) {
	raw, err := r.client.Get(ctx, r.snapshotKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("snapshot %s: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("get snapshot %s: %w", key, err)
	}
	snap := &domain.Snapshot{}
	if err := json.Unmarshal([]byte(raw), snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot %s: %w", key, err)
	}
	return snap, nil
}

func (r *RedisSnapshotStore) Save(ctx context.Context, key SnapshotKey, snap *domain.Snapshot) error {
	if err := checkKey(key, snap); err != nil {
		return err
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", key, err)
	}
	if err := r.client.Set(ctx, r.snapshotKey(key), string(data), 0).Err(); err != nil {
		return fmt.Errorf("set snapshot %s: %w", key, err)
	}
	if err := r.client.Set(ctx, r.activeKey(key.UserID), key.ProgramID, 0).Err(); err != nil {
		return fmt.Errorf("set active program for %s: %w", key.UserID, err)
	}
	return nil
}

func (r *RedisSnapshotStore) Delete(ctx context.Context, key SnapshotKey) error {
	keys := []string{r.snapshotKey(key)}
	active, err := r.client.Get(ctx, r.activeKey(key.UserID)).Result()
	switch {
	case err == nil && active == key.ProgramID:
		keys = append(keys, r.activeKey(key.UserID))
	case err != nil && !errors.Is(err, redis.Nil):
		return fmt.Errorf("get active program for %s: %w", key.UserID, err)
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("delete snapshot %s: %w", key, err)
	}
	return nil
}

func (r *RedisSnapshotStore) Active(ctx context.Context, userID string) (*domain.Snapshot, error) {
	id, err := r.client.Get(ctx, r.activeKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("active program for %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("get active program for %s: %w", userID, err)
	}
	return r.Load(ctx, SnapshotKey{UserID: userID, ProgramID: id})
}
