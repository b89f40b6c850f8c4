// Package memory provides a process-local key-value store used for
// ephemeral runs and as the fake behind service tests.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/heartmarshall/vocabcoach/internal/domain"
)

// KV is a concurrency-safe in-memory key-value store.
type KV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewKV creates an empty store.
func NewKV() *KV {
	return &KV{data: make(map[string][]byte)}
}

// Ping always succeeds.
func (kv *KV) Ping(context.Context) error { return nil }

// Get returns a copy of the value stored under key.
func (kv *KV) Get(_ context.Context, key string) ([]byte, error) {
	kv.mu.RLock()
	defer kv.mu.RUnlock()

	v, ok := kv.data[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return slices.Clone(v), nil
}

// Put stores a copy of value under key.
func (kv *KV) Put(_ context.Context, key string, value []byte) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	kv.data[key] = slices.Clone(value)
	return nil
}

// Delete removes key. Missing keys are not an error.
func (kv *KV) Delete(_ context.Context, key string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	delete(kv.data, key)
	return nil
}

// Keys returns all keys starting with prefix, sorted.
func (kv *KV) Keys(_ context.Context, prefix string) ([]string, error) {
	kv.mu.RLock()
	defer kv.mu.RUnlock()

	var keys []string
	for k := range kv.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys, nil
}
