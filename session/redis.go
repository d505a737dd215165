package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionTTL = 30 * 24 * time.Hour

// redisStore keeps session state in Redis so flashes survive restarts and
// work across replicas.
type redisStore struct {
	client *redis.Client
}

// NewRedisStore returns a Store backed by the given Redis client.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func flashKey(sid string) string {
	return "minishop:flash:" + sid
}

func formKey(sid string) string {
	return "minishop:form:" + sid
}

func (s *redisStore) AddFlash(ctx context.Context, sid string, f Flash) error {
	b, err := json.Marshal(f)
	if err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, flashKey(sid), b)
	pipe.Expire(ctx, flashKey(sid), sessionTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *redisStore) ConsumeFlashes(ctx context.Context, sid string) ([]Flash, error) {
	pipe := s.client.TxPipeline()
	rangeCmd := pipe.LRange(ctx, flashKey(sid), 0, -1)
	pipe.Del(ctx, flashKey(sid))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	raw, err := rangeCmd.Result()
	if err != nil {
		return nil, err
	}
	flashes := make([]Flash, 0, len(raw))
	for _, r := range raw {
		var f Flash
		if err := json.Unmarshal([]byte(r), &f); err != nil {
			continue
		}
		flashes = append(flashes, f)
	}
	return flashes, nil
}

func (s *redisStore) SetFormOpen(ctx context.Context, sid string, open bool) error {
	if !open {
		return s.client.Del(ctx, formKey(sid)).Err()
	}
	return s.client.Set(ctx, formKey(sid), "1", sessionTTL).Err()
}

func (s *redisStore) FormOpen(ctx context.Context, sid string) (bool, error) {
	val, err := s.client.Get(ctx, formKey(sid)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return val == "1", nil
}
