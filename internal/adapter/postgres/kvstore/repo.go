// Package kvstore implements the profile key-value port on a single
// PostgreSQL table. Values are opaque bytes; prefix scans back profile
// listing and legacy-key discovery.
package kvstore

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/vocabcoach/internal/adapter/postgres"
)

const table = "kv_entries"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides KV persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new KV repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Get returns the value stored under key, or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, key string) ([]byte, error) {
	query, args, err := psql.Select("value").From(table).Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get: %w", err)
	}

	var value []byte
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&value); err != nil {
		return nil, postgres.MapError(err, "kv get", key)
	}
	return value, nil
}

// Put upserts value under key.
func (r *Repo) Put(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	query, args, err := psql.Insert(table).
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()").
		ToSql()
	if err != nil {
		return fmt.Errorf("build put: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "kv put", key)
	}
	return nil
}

// Delete removes key. Missing keys are not an error.
func (r *Repo) Delete(ctx context.Context, key string) error {
	query, args, err := psql.Delete(table).Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "kv delete", key)
	}
	return nil
}

// Keys returns all keys starting with prefix, sorted.
func (r *Repo) Keys(ctx context.Context, prefix string) ([]string, error) {
	query, args, err := psql.Select("key").
		From(table).
		Where(sq.Like{"key": escapeLike(prefix) + "%"}).
		OrderBy("key").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build keys: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "kv keys", prefix)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "kv keys", prefix)
	}
	return keys, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes prefix match literally under LIKE's default escape.
func escapeLike(prefix string) string {
	return likeEscaper.Replace(prefix)
}
