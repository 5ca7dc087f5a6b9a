package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/satriahrh/gerch/domain"
)

const audioKeyPrefix = "gerch:audio:"

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// RedisAudioStore keeps synthesized clips under a TTL so repeated answers
// reuse one synthesis.
type RedisAudioStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisAudioStore(cfg RedisConfig) (*RedisAudioStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &RedisAudioStore{rdb: rdb, ttl: cfg.TTL}, nil
}

func (s *RedisAudioStore) Put(ctx context.Context, key string, audio []byte) error {
	if err := s.rdb.Set(ctx, audioKeyPrefix+key, audio, s.ttl).Err(); err != nil {
		return fmt.Errorf("storing audio %s: %w", key, err)
	}
	return nil
}

// Get returns domain.ErrNotFound when the clip expired or never existed.
func (s *RedisAudioStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.rdb.Get(ctx, audioKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading audio %s: %w", key, err)
	}
	return data, nil
}

func (s *RedisAudioStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.rdb.Exists(ctx, audioKeyPrefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("checking audio %s: %w", key, err)
	}
	return n > 0, nil
}

func (s *RedisAudioStore) Close() error {
	return s.rdb.Close()
}
