package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/vocabcoach/internal/adapter/memory"
	"github.com/heartmarshall/vocabcoach/internal/service/profile"
)

func seedQuarantine(t *testing.T, kv *memory.KV, at time.Time) string {
	t.Helper()
	key := fmt.Sprintf("%sminh:%d", profile.QuarantinePrefix, at.UnixMilli())
	require.NoError(t, kv.Put(context.Background(), key, []byte("{broken")))
	return key
}

func TestPurge(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name      string
		retention time.Duration
		wantOld   bool
	}{
		{"zero retention keeps everything", 0, true},
		{"retention purges older copies", 30 * 24 * time.Hour, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			kv := memory.NewKV()
			old := seedQuarantine(t, kv, now.Add(-90*24*time.Hour))
			recent := seedQuarantine(t, kv, now.Add(-time.Hour))

			require.NoError(t, purge(ctx, log, kv, "memory", tt.retention, now))

			_, err := kv.Get(ctx, old)
			assert.Equal(t, tt.wantOld, err == nil)
			_, err = kv.Get(ctx, recent)
			assert.NoError(t, err)
		})
	}
}
