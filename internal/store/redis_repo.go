package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisRepo implements Repository against Redis: a fmt.Sprintf key
// helper, a Set/Get pair for the record itself, and an index set (here, all known
// session ids) kept in step via a MULTI/EXEC transaction pipeline.
type redisRepo struct {
	client redis.UniversalClient
	ctx    context.Context
	ttl    time.Duration // 0 means no expiration
}

// NewRedis builds a Repository backed by client. ttl of 0 means saves
// never expire.
func NewRedis(client redis.UniversalClient, ttl time.Duration) Repository {
	return &redisRepo{client: client, ctx: context.Background(), ttl: ttl}
}

func (r *redisRepo) key(sessionID string) string {
	return fmt.Sprintf("dm:session:%s", sessionID)
}

const sessionIndexKey = "dm:sessions"

func (r *redisRepo) Save(sessionID string, save *SaveFile) error {
	if sessionID == "" {
		return fmt.Errorf("store: session id is required")
	}
	if save == nil {
		return fmt.Errorf("store: save cannot be nil")
	}

	data, err := json.Marshal(save)
	if err != nil {
		return fmt.Errorf("store: marshal save: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(r.ctx, r.key(sessionID), data, r.ttl)
	pipe.SAdd(r.ctx, sessionIndexKey, sessionID)
	if _, err := pipe.Exec(r.ctx); err != nil {
		return fmt.Errorf("store: save session %q: %w", sessionID, err)
	}
	return nil
}

func (r *redisRepo) Load(sessionID string) (*SaveFile, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("store: session id is required")
	}

	data, err := r.client.Get(r.ctx, r.key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: load session %q: %w", sessionID, err)
	}

	var save SaveFile
	if err := json.Unmarshal([]byte(data), &save); err != nil {
		return nil, fmt.Errorf("store: unmarshal session %q: %w", sessionID, err)
	}
	return &save, nil
}

func (r *redisRepo) Delete(sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("store: session id is required")
	}

	pipe := r.client.TxPipeline()
	delCmd := pipe.Del(r.ctx, r.key(sessionID))
	pipe.SRem(r.ctx, sessionIndexKey, sessionID)
	if _, err := pipe.Exec(r.ctx); err != nil {
		return fmt.Errorf("store: delete session %q: %w", sessionID, err)
	}
	if delCmd.Val() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *redisRepo) List() ([]string, error) {
	ids, err := r.client.SMembers(r.ctx, sessionIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("store: list sessions: %w", err)
	}
	return ids, nil
}
