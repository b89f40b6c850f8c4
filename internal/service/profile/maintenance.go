package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/heartmarshall/vocabcoach/internal/domain"
)

// ReadBundle loads the persisted bundle for a display name or key without
// touching the session. It returns domain.ErrNotFound for unknown profiles
// and an error wrapping domain.ErrCorruptState for unreadable ones.
func ReadBundle(ctx context.Context, kv kvStore, name string) (domain.Bundle, error) {
	key := domain.NormalizeProfileName(name)
	if key == "" {
		return domain.Bundle{}, domain.NewValidationError("name", "required")
	}

	data, err := kv.Get(ctx, ProfileKey(key))
	if err != nil {
		return domain.Bundle{}, fmt.Errorf("read profile %s: %w", key, err)
	}
	b, err := decodeBundle(data)
	if err != nil {
		return domain.Bundle{}, fmt.Errorf("profile %s: %w", key, err)
	}
	b.Profile.Key = key
	return b, nil
}

// PurgeQuarantine deletes quarantined copies taken before cutoff and returns
// how many were removed. Keys without a readable timestamp are kept.
func PurgeQuarantine(ctx context.Context, kv kvStore, cutoff time.Time) (int, error) {
	keys, err := kv.Keys(ctx, QuarantinePrefix)
	if err != nil {
		return 0, fmt.Errorf("list quarantine: %w", err)
	}

	deleted := 0
	for _, k := range keys {
		at, ok := QuarantineTime(k)
		if !ok || !at.Before(cutoff) {
			continue
		}
		if err := kv.Delete(ctx, k); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return deleted, fmt.Errorf("delete %s: %w", k, err)
		}
		deleted++
	}
	return deleted, nil
}
