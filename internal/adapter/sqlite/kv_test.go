package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/vocabcoach/internal/domain"
)

func openKV(t *testing.T) *KV {
	t.Helper()
	kv, err := Open(context.Background(), filepath.Join(t.TempDir(), "data", "vocab.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func TestKV_PutGetDelete(t *testing.T) {
	t.Parallel()
	kv := openKV(t)
	ctx := context.Background()

	_, err := kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, kv.Put(ctx, "vocabcoach:v2:profile:minh", []byte("v1")))
	require.NoError(t, kv.Put(ctx, "vocabcoach:v2:profile:minh", []byte("v2")))

	got, err := kv.Get(ctx, "vocabcoach:v2:profile:minh")
	require.NoError(t, err)
	assert.Equal(t, "v2", string(got))

	require.NoError(t, kv.Delete(ctx, "vocabcoach:v2:profile:minh"))
	require.NoError(t, kv.Delete(ctx, "vocabcoach:v2:profile:minh"))
	_, err = kv.Get(ctx, "vocabcoach:v2:profile:minh")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestKV_Keys(t *testing.T) {
	t.Parallel()
	kv := openKV(t)
	ctx := context.Background()

	for _, k := range []string{"p:nguyễn", "p:an", "p_x", "p%", "q:an"} {
		require.NoError(t, kv.Put(ctx, k, nil))
	}

	keys, err := kv.Keys(ctx, "p:")
	require.NoError(t, err)
	assert.Equal(t, []string{"p:an", "p:nguyễn"}, keys)

	keys, err = kv.Keys(ctx, "p:ngu")
	require.NoError(t, err)
	assert.Equal(t, []string{"p:nguyễn"}, keys)

	keys, err = kv.Keys(ctx, "zzz")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestKV_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "vocab.db")
	ctx := context.Background()

	kv, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, kv.Put(ctx, "k", []byte("saved")))
	require.NoError(t, kv.Close())

	kv, err = Open(ctx, path)
	require.NoError(t, err)
	defer kv.Close()

	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "saved", string(got))
}

func TestKV_RunInTx(t *testing.T) {
	t.Parallel()
	kv := openKV(t)
	ctx := context.Background()
	sentinel := errors.New("abort")

	err := kv.RunInTx(ctx, func(ctx context.Context) error {
		require.NoError(t, kv.Put(ctx, "rolled-back", []byte("x")))
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	_, err = kv.Get(ctx, "rolled-back")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = kv.RunInTx(ctx, func(ctx context.Context) error {
		return kv.Put(ctx, "committed", []byte("y"))
	})
	require.NoError(t, err)
	got, err := kv.Get(ctx, "committed")
	require.NoError(t, err)
	assert.Equal(t, "y", string(got))
}
