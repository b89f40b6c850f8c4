package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/vocabcoach/internal/adapter/memory"
	"github.com/heartmarshall/vocabcoach/internal/app"
	"github.com/heartmarshall/vocabcoach/internal/config"
	"github.com/heartmarshall/vocabcoach/internal/domain"
	"github.com/heartmarshall/vocabcoach/internal/service/profile"
)

func testDeps(kv *memory.KV) deps {
	return deps{
		loadConfig: func(string) (*config.Config, error) {
			return &config.Config{
				Storage: config.StorageConfig{Backend: config.BackendMemory},
				Profile: config.ProfileConfig{PersistDebounce: time.Second, SaveTimeout: time.Second, DefaultDailyGoal: 10},
				Study:   config.StudyConfig{Location: time.UTC},
			}, nil
		},
		newLogger: func(config.LogConfig) *slog.Logger {
			return slog.New(slog.NewTextHandler(io.Discard, nil))
		},
		openStorage: func(context.Context, *config.Config, *slog.Logger) (*app.Storage, error) {
			return &app.Storage{KV: kv, Backend: config.BackendMemory, Close: func() {}}, nil
		},
		clock: clockwork.NewFakeClockAt(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)),
	}
}

func run(t *testing.T, d deps, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(d)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportStatsProfiles(t *testing.T) {
	kv := memory.NewKV()
	d := testDeps(kv)

	path := writeCSV(t, "word,definition,translation\n"+
		"resilient,able to recover quickly,\n"+
		"abundant,,dồi dào\n"+
		",orphan definition,\n")

	out, err := run(t, d, "import", path, "--profile", "Lena", "--level", "B2")
	require.NoError(t, err)
	assert.Contains(t, out, "imported 2 of 3 rows into Lena (1 skipped)")
	assert.Contains(t, out, "skipped row")

	out, err = run(t, d, "stats", "-p", "lena")
	require.NoError(t, err)
	assert.Regexp(t, `words\s+2`, out)
	assert.Regexp(t, `learned\s+2`, out)
	assert.Regexp(t, `level\s+B2`, out)

	out, err = run(t, d, "profiles")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Lena")

	// Importing without a prior session leaves none behind.
	_, err = kv.Get(context.Background(), "vocabcoach:v2:session")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestImport_RestoresPreviousSession(t *testing.T) {
	kv := memory.NewKV()
	d := testDeps(kv)
	ctx := context.Background()

	e, err := d.open(ctx)
	require.NoError(t, err)
	core := app.NewCore(e.log, e.cfg, kv, d.clock)
	_, err = core.Sessions.Login(ctx, "Anna", profile.LoginOptions{})
	require.NoError(t, err)

	_, err = run(t, d, "import", writeCSV(t, "serene,calm and peaceful\n"), "-p", "Minh")
	require.NoError(t, err)

	fresh := app.NewCore(e.log, e.cfg, kv, d.clock)
	p, err := fresh.Sessions.Resume(ctx)
	require.NoError(t, err)
	assert.Equal(t, "anna", p.Key)

	minh, err := profile.ReadBundle(ctx, kv, "minh")
	require.NoError(t, err)
	require.Len(t, minh.Vocabulary, 1)
	assert.Equal(t, "serene", minh.Vocabulary[0].Word)
}

func TestImport_RequiresProfileFlag(t *testing.T) {
	_, err := run(t, testDeps(memory.NewKV()), "import", "words.csv")
	assert.ErrorContains(t, err, `required flag(s) "profile" not set`)
}

func TestStats_UnknownProfile(t *testing.T) {
	_, err := run(t, testDeps(memory.NewKV()), "stats", "-p", "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProfiles_Empty(t *testing.T) {
	out, err := run(t, testDeps(memory.NewKV()), "profiles")
	require.NoError(t, err)
	assert.Equal(t, "no profiles\n", out)
}

func TestMigrate_RunsOnce(t *testing.T) {
	kv := memory.NewKV()
	d := testDeps(kv)

	out, err := run(t, d, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "migrated 0 profiles")

	out, err = run(t, d, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "already done")
}

func TestConfigFlagSelectsFile(t *testing.T) {
	d := testDeps(memory.NewKV())
	load := d.loadConfig
	var got string
	d.loadConfig = func(path string) (*config.Config, error) {
		got = path
		return load(path)
	}

	_, err := run(t, d, "profiles", "--config", "/etc/vocabcoach/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/etc/vocabcoach/config.yaml", got)
}
