package profile

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/vocabcoach/internal/adapter/memory"
	"github.com/heartmarshall/vocabcoach/internal/domain"
)

type recordingTx struct {
	calls int
}

func (r *recordingTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	r.calls++
	return fn(ctx)
}

func loadBundle(t *testing.T, kv *memory.KV, key string) domain.Bundle {
	t.Helper()
	data, err := kv.Get(context.Background(), ProfileKey(key))
	require.NoError(t, err)
	b, err := decodeBundle(data)
	require.NoError(t, err)
	return b
}

func TestMigrator_Run(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := memory.NewKV()
	now := time.Date(2026, 2, 13, 9, 0, 0, 0, time.UTC)
	learned := now.Add(-72 * time.Hour).UnixMilli()

	seed := map[string]string{
		legacyListKey: `[{"id":"w1","word":"ubiquitous","ipa":"/juːˈbɪk.wɪ.təs/","vietnameseDefinition":"phổ biến","cefr":"C1",
			"topic":"Technology","ieltsParaphrases":["omnipresent"],"learnedAt":` + itoa(learned) + `,"reviewCount":2,"srsLevel":2,"nextReviewAt":` + itoa(learned+3*86400000) + `}]`,
		legacyProPrefix + "Anna": `{"vocabulary":[{"id":"a1","word":"cohesive","learnedAt":` + itoa(learned) + `,"isMastered":true}],
			"stats":{"totalLearned":7,"currentDay":3,"streak":2,"lastStudyDate":"2026-02-12","quizScore":40},
			"passages":[{"title":"Teams","contentEn":"...","contentVi":"..."}],"todayIndex":1,"lastUpdated":` + itoa(learned) + `}`,
		legacyKidPrefix + "Bé Na": `{"profile":{"name":"Bé Na","grade":"Grade 2"},"vocabulary":[{"word":"cat","meaning":"con mèo","interval":3,"easiness":2.5,"nextReview":` + itoa(learned) + `}]}`,
		legacyKidPrefix + "broken":  `{"vocabulary":`,
		legacyProSessionKey:          `"Anna"`,
	}
	for k, v := range seed {
		require.NoError(t, kv.Put(ctx, k, []byte(v)))
	}

	tx := &recordingTx{}
	m := NewMigrator(slog.New(slog.NewTextHandler(io.Discard, nil)), kv, tx, clockwork.NewFakeClockAt(now))

	report, err := m.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)
	assert.ElementsMatch(t, []string{"anna", "bé na", "default"}, report.Migrated)
	assert.Equal(t, []string{legacyKidPrefix + "broken"}, report.Quarantined)
	assert.Equal(t, "anna", report.Session)

	def := loadBundle(t, kv, "default")
	require.Len(t, def.Vocabulary, 1)
	w := def.Vocabulary[0]
	assert.Equal(t, "w1", w.ID)
	assert.Equal(t, "/juːˈbɪk.wɪ.təs/", w.Phonetic)
	assert.Equal(t, "phổ biến", w.TranslatedDefinition)
	assert.Equal(t, "C1", w.LevelTag)
	assert.Equal(t, []string{"omnipresent"}, w.Paraphrases)
	assert.Equal(t, 2, w.SRSLevel)
	assert.Equal(t, 1, def.Stats.TotalLearned)

	anna := loadBundle(t, kv, "anna")
	assert.Equal(t, "Anna", anna.Profile.Name)
	assert.Equal(t, domain.MasteredLevel, anna.Vocabulary[0].SRSLevel)
	assert.True(t, anna.Vocabulary[0].NextReviewAt.Equal(time.UnixMilli(learned).Add(24*time.Hour)))
	assert.Equal(t, 7, anna.Stats.TotalLearned)
	assert.Equal(t, 40, anna.Stats.QuizScore)
	assert.Equal(t, 1, anna.TodayCursor)
	require.Len(t, anna.Passages, 1)
	assert.Equal(t, "Teams", anna.Passages[0].Title)

	na := loadBundle(t, kv, "bé na")
	assert.Equal(t, "Grade 2", na.Profile.LevelTag)
	require.Len(t, na.Vocabulary, 1)
	assert.NotEmpty(t, na.Vocabulary[0].ID)
	assert.Equal(t, "con mèo", na.Vocabulary[0].Definition)
	assert.Equal(t, 2, na.Vocabulary[0].SRSLevel)

	ptr, err := kv.Get(ctx, sessionKey)
	require.NoError(t, err)
	sp, err := decodeSession(ptr)
	require.NoError(t, err)
	assert.Equal(t, "anna", sp.Key)

	_, err = kv.Get(ctx, legacyListKey)
	assert.NoError(t, err, "legacy keys are left in place")

	again, err := m.Run(ctx)
	require.NoError(t, err)
	assert.True(t, again.AlreadyDone)
}

func TestMigrator_CanonicalWins(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := memory.NewKV()
	now := time.Date(2026, 2, 13, 9, 0, 0, 0, time.UTC)

	existing, err := encodeBundle(domain.Bundle{Profile: domain.Profile{Key: "anna", Name: "Anna"}, UpdatedAt: now})
	require.NoError(t, err)
	require.NoError(t, kv.Put(ctx, ProfileKey("anna"), existing))
	require.NoError(t, kv.Put(ctx, legacyProPrefix+"ANNA", []byte(`{"vocabulary":[{"id":"x","word":"old"}]}`)))

	m := NewMigrator(slog.New(slog.NewTextHandler(io.Discard, nil)), kv, nil, clockwork.NewFakeClockAt(now))
	report, err := m.Run(ctx)
	require.NoError(t, err)

	assert.Empty(t, report.Migrated)
	assert.Equal(t, []string{legacyProPrefix + "ANNA"}, report.Skipped)
	assert.Empty(t, loadBundle(t, kv, "anna").Vocabulary)
}

type errTx struct{}

func (errTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return errors.New("commit failed")
}

func TestMigrator_TxFailure(t *testing.T) {
	t.Parallel()

	m := NewMigrator(slog.New(slog.NewTextHandler(io.Discard, nil)), memory.NewKV(), errTx{}, clockwork.NewFakeClockAt(time.Now()))
	_, err := m.Run(context.Background())
	assert.Error(t, err)
}

func TestLevelFromInterval(t *testing.T) {
	t.Parallel()

	tests := []struct {
		days float64
		want int
	}{
		{0, 0}, {0.5, 0}, {1, 1}, {2.9, 1}, {3, 2}, {6, 2}, {7, 3}, {60, 3},
	}
	for _, tt := range tests {
		if got := levelFromInterval(tt.days); got != tt.want {
			t.Errorf("levelFromInterval(%v) = %d, want %d", tt.days, got, tt.want)
		}
	}
}

func itoa(v int64) string { return strconv.FormatInt(v, 10) }
