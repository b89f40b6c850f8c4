package app

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/vocabcoach/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/vocabcoach/internal/config"
	"github.com/heartmarshall/vocabcoach/internal/domain"
)

func TestOpenStorage_SQLite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cfg := testConfig()
	cfg.Storage.Backend = config.BackendSQLite
	cfg.SQLite.Path = t.TempDir() + "/data/vocab.db"

	st, err := OpenStorage(ctx, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer st.Close()

	require.NotNil(t, st.Tx)
	require.NoError(t, st.KV.Ping(ctx))
	require.NoError(t, st.Tx.RunInTx(ctx, func(ctx context.Context) error {
		return st.KV.Put(ctx, "k", []byte("v"))
	}))
	got, err := st.KV.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestOpenStorage_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("needs docker")
	}
	ctx := context.Background()
	cfg := testConfig()
	cfg.Storage.Backend = config.BackendPostgres
	cfg.Database = config.DatabaseConfig{DSN: testhelper.DSN(t), MaxConns: 2}

	st, err := OpenStorage(ctx, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.KV.Ping(ctx))
	require.NotNil(t, st.Tx)

	key := "apptest:" + t.Name()
	require.NoError(t, st.KV.Put(ctx, key, []byte(`{}`)))
	keys, err := st.KV.Keys(ctx, "apptest:")
	require.NoError(t, err)
	assert.Contains(t, keys, key)
	require.NoError(t, st.KV.Delete(ctx, key))

	_, err = st.KV.Get(ctx, key)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
