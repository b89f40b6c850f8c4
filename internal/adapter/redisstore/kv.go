// Package redisstore implements the profile key-value port on Redis, for
// installs where several devices share one study state.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/heartmarshall/vocabcoach/internal/config"
	"github.com/heartmarshall/vocabcoach/internal/domain"
)

const scanBatch = 200

// KV is a key-value store over plain Redis strings.
type KV struct {
	rdb *redis.Client
}

// Open connects to Redis and pings it so a bad address fails at startup.
func Open(ctx context.Context, cfg config.RedisConfig) (*KV, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &KV{rdb: rdb}, nil
}

// Close closes the client.
func (kv *KV) Close() error {
	return kv.rdb.Close()
}

func (kv *KV) Ping(ctx context.Context) error {
	return kv.rdb.Ping(ctx).Err()
}

// Get returns the value stored under key, or domain.ErrNotFound.
func (kv *KV) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := kv.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("kv get %s: %w", key, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("kv get %s: %w", key, err)
	}
	return v, nil
}

// Put stores value under key without expiry.
func (kv *KV) Put(ctx context.Context, key string, value []byte) error {
	if err := kv.rdb.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("kv put %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Missing keys are not an error.
func (kv *KV) Delete(ctx context.Context, key string) error {
	if err := kv.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("kv delete %s: %w", key, err)
	}
	return nil
}

// Keys returns all keys starting with prefix, sorted. It uses SCAN so a
// large keyspace never blocks the server.
func (kv *KV) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys := []string{}
	iter := kv.rdb.Scan(ctx, 0, escapeGlob(prefix)+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("kv keys %s: %w", prefix, err)
	}
	// SCAN may return a key more than once.
	slices.Sort(keys)
	return slices.Compact(keys), nil
}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

// escapeGlob makes prefix match literally in a SCAN MATCH pattern.
func escapeGlob(prefix string) string {
	return globEscaper.Replace(prefix)
}
