package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/vocabcoach/internal/adapter/memory"
	"github.com/heartmarshall/vocabcoach/internal/adapter/postgres"
	"github.com/heartmarshall/vocabcoach/internal/adapter/postgres/kvstore"
	"github.com/heartmarshall/vocabcoach/internal/adapter/redisstore"
	"github.com/heartmarshall/vocabcoach/internal/adapter/sqlite"
	"github.com/heartmarshall/vocabcoach/internal/config"
)

// KV is the key-value port every storage backend implements.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
	Ping(ctx context.Context) error
}

// TxRunner runs fn inside a storage transaction.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Storage is an opened backend.
type Storage struct {
	KV      KV
	Tx      TxRunner // nil when the backend has no transactions
	Backend string
	Close   func()
}

// OpenStorage connects the backend selected in cfg.Storage. Postgres schema
// migrations run before the store is returned.
func OpenStorage(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Storage, error) {
	backend := cfg.Storage.Backend
	log = log.With(slog.String("backend", backend))

	switch backend {
	case config.BackendMemory:
		log.Warn("memory storage selected, profiles are lost on exit")
		return &Storage{KV: memory.NewKV(), Backend: backend, Close: func() {}}, nil

	case config.BackendSQLite:
		kv, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		log.Info("storage opened", slog.String("path", cfg.SQLite.Path))
		return &Storage{KV: kv, Tx: kv, Backend: backend, Close: func() { _ = kv.Close() }}, nil

	case config.BackendPostgres:
		if err := postgres.Migrate(ctx, cfg.Database.DSN, log); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		log.Info("storage opened", slog.Int("max_conns", int(cfg.Database.MaxConns)))
		return &Storage{
			KV:      pgKV{Repo: kvstore.New(pool), pool: pool},
			Tx:      postgres.NewTxManager(pool),
			Backend: backend,
			Close:   pool.Close,
		}, nil

	case config.BackendRedis:
		kv, err := redisstore.Open(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		log.Info("storage opened", slog.String("addr", cfg.Redis.Addr))
		return &Storage{KV: kv, Backend: backend, Close: func() { _ = kv.Close() }}, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// pgKV adds the pool health check to the postgres repository.
type pgKV struct {
	*kvstore.Repo
	pool interface{ Ping(ctx context.Context) error }
}

func (k pgKV) Ping(ctx context.Context) error { return k.pool.Ping(ctx) }
