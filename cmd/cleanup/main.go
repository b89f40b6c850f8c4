// Command cleanup removes quarantined copies of unreadable profile bundles
// older than PROFILE_QUARANTINE_RETENTION. A zero retention (the default)
// keeps every copy. It is meant for an external cron job; the server never
// purges on its own.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/vocabcoach/internal/app"
	"github.com/heartmarshall/vocabcoach/internal/config"
	"github.com/heartmarshall/vocabcoach/internal/service/profile"
)

func main() {
	if err := run(); err != nil {
		slog.Error("quarantine purge failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	storage, err := app.OpenStorage(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer storage.Close()

	return purge(ctx, logger, storage.KV, storage.Backend, cfg.Profile.QuarantineRetention, time.Now())
}

type quarantineStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}

func purge(ctx context.Context, logger *slog.Logger, kv quarantineStore, backend string, retention time.Duration, now time.Time) error {
	if retention <= 0 {
		logger.Info("quarantine purge disabled", slog.String("backend", backend))
		return nil
	}

	threshold := now.Add(-retention)
	deleted, err := profile.PurgeQuarantine(ctx, kv, threshold)
	if err != nil {
		return fmt.Errorf("purge before %s: %w", threshold.Format(time.RFC3339), err)
	}

	logger.Info("quarantine purge completed",
		slog.Int("deleted", deleted),
		slog.String("backend", backend),
		slog.Time("threshold", threshold),
	)
	return nil
}
