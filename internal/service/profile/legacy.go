package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/vocabcoach/internal/domain"
)

type txRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// MigrationReport summarizes one legacy migration run.
type MigrationReport struct {
	AlreadyDone bool
	Migrated    []string // profile keys written
	Skipped     []string // legacy keys whose profile already existed
	Quarantined []string // legacy keys that could not be parsed
	Session     string   // profile key the session pointer was migrated to
}

// Migrator converts state written under earlier key schemes into canonical
// bundles. It runs once per storage; legacy keys are left in place.
type Migrator struct {
	kv    kvStore
	tx    txRunner
	clock clockwork.Clock
	log   *slog.Logger
}

// NewMigrator creates a Migrator. tx may be nil when the backend has no
// transactions.
func NewMigrator(log *slog.Logger, kv kvStore, tx txRunner, clock clockwork.Clock) *Migrator {
	return &Migrator{
		kv:    kv,
		tx:    tx,
		clock: clock,
		log:   log.With("service", "profile-migrator"),
	}
}

// Run performs the migration unless the marker says it already happened.
func (m *Migrator) Run(ctx context.Context) (MigrationReport, error) {
	var report MigrationReport
	run := func(ctx context.Context) error {
		report = MigrationReport{}
		return m.migrate(ctx, &report)
	}

	var err error
	if m.tx != nil {
		err = m.tx.RunInTx(ctx, run)
	} else {
		err = run(ctx)
	}
	if err != nil {
		return MigrationReport{}, fmt.Errorf("migrate legacy state: %w", err)
	}

	if !report.AlreadyDone {
		m.log.InfoContext(ctx, "legacy migration finished",
			slog.Int("migrated", len(report.Migrated)),
			slog.Int("skipped", len(report.Skipped)),
			slog.Int("quarantined", len(report.Quarantined)))
	}
	return report, nil
}

func (m *Migrator) migrate(ctx context.Context, report *MigrationReport) error {
	_, err := m.kv.Get(ctx, migratedKey)
	if err == nil {
		report.AlreadyDone = true
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("read marker: %w", err)
	}

	now := m.clock.Now()

	for _, prefix := range []string{legacyProPrefix, legacyKidPrefix} {
		keys, err := m.kv.Keys(ctx, prefix)
		if err != nil {
			return fmt.Errorf("scan %s: %w", prefix, err)
		}
		for _, lk := range keys {
			if lk == legacyKidSessionKey || lk == legacyProSessionKey {
				continue
			}
			name := strings.TrimPrefix(lk, prefix)
			if err := m.migrateKey(ctx, report, lk, name, now, parseLegacyBundle); err != nil {
				return err
			}
		}
	}

	if err := m.migrateKey(ctx, report, legacyListKey, legacyDefaultProfile, now, parseLegacyList); err != nil {
		return err
	}

	if err := m.migrateSession(ctx, report, now); err != nil {
		return err
	}

	marker, err := json.Marshal(struct {
		MigratedAt int64    `json:"migratedAt"`
		Profiles   []string `json:"profiles"`
	}{toMillis(now), report.Migrated})
	if err != nil {
		return fmt.Errorf("marshal marker: %w", err)
	}
	if err := m.kv.Put(ctx, migratedKey, marker); err != nil {
		return fmt.Errorf("write marker: %w", err)
	}
	return nil
}

type legacyParser func(data []byte, now time.Time) (domain.Bundle, error)

func (m *Migrator) migrateKey(ctx context.Context, report *MigrationReport, legacyKey, name string, now time.Time, parse legacyParser) error {
	data, err := m.kv.Get(ctx, legacyKey)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", legacyKey, err)
	}

	key := domain.NormalizeProfileName(name)
	if key == "" {
		report.Skipped = append(report.Skipped, legacyKey)
		return nil
	}

	_, err = m.kv.Get(ctx, ProfileKey(key))
	switch {
	case err == nil:
		report.Skipped = append(report.Skipped, legacyKey)
		return nil
	case !errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("read profile %s: %w", key, err)
	}

	b, err := parse(data, now)
	if err != nil {
		qk := quarantineKey(key, now)
		m.log.WarnContext(ctx, "unreadable legacy state", slog.String("key", legacyKey),
			slog.String("quarantine", qk), slog.String("error", err.Error()))
		if err := m.kv.Put(ctx, qk, data); err != nil {
			return fmt.Errorf("quarantine %s: %w", legacyKey, err)
		}
		report.Quarantined = append(report.Quarantined, legacyKey)
		return nil
	}

	display := domain.DisplayName(name)
	if b.Profile.Name == "" {
		b.Profile.Name = display
	}
	if b.Profile.Avatar == "" {
		b.Profile.Avatar = domain.AvatarURL(b.Profile.Name)
	}
	if b.Profile.CreatedAt.IsZero() {
		b.Profile.CreatedAt = now
	}
	b.Profile.Key = key
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = now
	}

	data, err = encodeBundle(b)
	if err != nil {
		return err
	}
	if err := m.kv.Put(ctx, ProfileKey(key), data); err != nil {
		return fmt.Errorf("write profile %s: %w", key, err)
	}
	report.Migrated = append(report.Migrated, key)
	m.log.InfoContext(ctx, "migrated legacy profile", slog.String("from", legacyKey), slog.String("profile", key),
		slog.Int("records", len(b.Vocabulary)))
	return nil
}

// migrateSession carries a legacy "current user" slot over when no canonical
// pointer exists yet.
func (m *Migrator) migrateSession(ctx context.Context, report *MigrationReport, now time.Time) error {
	_, err := m.kv.Get(ctx, sessionKey)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("read session pointer: %w", err)
	}

	for _, lk := range []string{legacyProSessionKey, legacyKidSessionKey} {
		data, err := m.kv.Get(ctx, lk)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", lk, err)
		}

		name := legacySessionName(data)
		key := domain.NormalizeProfileName(name)
		if key == "" {
			continue
		}
		if _, err := m.kv.Get(ctx, ProfileKey(key)); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return fmt.Errorf("read profile %s: %w", key, err)
		}

		ptr, err := encodeSession(domain.SessionPointer{Key: key, Name: domain.DisplayName(name), LoggedInAt: now})
		if err != nil {
			return err
		}
		if err := m.kv.Put(ctx, sessionKey, ptr); err != nil {
			return fmt.Errorf("write session pointer: %w", err)
		}
		report.Session = key
		return nil
	}
	return nil
}

// legacySessionName accepts either a raw name or a JSON string.
func legacySessionName(data []byte) string {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s
	}
	return string(data)
}

// ---------------------------------------------------------------------------
// Legacy shapes
// ---------------------------------------------------------------------------

type legacyItem struct {
	ID                   string   `json:"id"`
	Word                 string   `json:"word"`
	IPA                  string   `json:"ipa"`
	Phonetic             string   `json:"phonetic"`
	Definition           string   `json:"definition"`
	VietnameseDefinition string   `json:"vietnameseDefinition"`
	Meaning              string   `json:"meaning"`
	Example              string   `json:"example"`
	CEFR                 string   `json:"cefr"`
	Grade                string   `json:"grade"`
	Topic                string   `json:"topic"`
	RootAnalysis         *rootDoc `json:"rootAnalysis"`
	Synonyms             []string `json:"synonyms"`
	Antonyms             []string `json:"antonyms"`
	IeltsParaphrases     []string `json:"ieltsParaphrases"`
	MnemonicHint         string   `json:"mnemonicHint"`
	LearnedAt            int64    `json:"learnedAt"`
	ReviewCount          int      `json:"reviewCount"`
	IsMastered           *bool    `json:"isMastered"`
	SRSLevel             *int     `json:"srsLevel"`
	NextReviewAt         int64    `json:"nextReviewAt"`

	// Children's variant scheduling.
	Interval   *float64 `json:"interval"`
	NextReview int64    `json:"nextReview"`
}

type legacyStats struct {
	TotalLearned  int          `json:"totalLearned"`
	CurrentDay    int          `json:"currentDay"`
	Streak        int          `json:"streak"`
	LastStudyDate string       `json:"lastStudyDate"`
	QuizScore     int          `json:"quizScore"`
	TotalSeconds  int          `json:"totalSeconds"`
	History       []historyDoc `json:"history"`
}

type legacyPassage struct {
	Title     string `json:"title"`
	ContentEn string `json:"contentEn"`
	ContentVi string `json:"contentVi"`
}

type legacyBundle struct {
	Profile *struct {
		Name   string `json:"name"`
		Avatar string `json:"avatar"`
		Grade  string `json:"grade"`
	} `json:"profile"`
	Vocabulary  []legacyItem    `json:"vocabulary"`
	Words       []legacyItem    `json:"words"`
	Stats       *legacyStats    `json:"stats"`
	Passages    []legacyPassage `json:"passages"`
	TodayIndex  int             `json:"todayIndex"`
	LastUpdated int64           `json:"lastUpdated"`
}

func parseLegacyList(data []byte, now time.Time) (domain.Bundle, error) {
	var items []legacyItem
	if err := json.Unmarshal(data, &items); err != nil {
		return domain.Bundle{}, fmt.Errorf("%w: %v", domain.ErrCorruptState, err)
	}
	b := domain.Bundle{Vocabulary: convertItems(items, now)}
	b.Stats.TotalLearned = len(b.Vocabulary)
	return b, nil
}

func parseLegacyBundle(data []byte, now time.Time) (domain.Bundle, error) {
	var lb legacyBundle
	if err := json.Unmarshal(data, &lb); err != nil {
		return domain.Bundle{}, fmt.Errorf("%w: %v", domain.ErrCorruptState, err)
	}

	items := lb.Vocabulary
	if len(items) == 0 {
		items = lb.Words
	}
	b := domain.Bundle{
		Vocabulary:  convertItems(items, now),
		TodayCursor: max(0, lb.TodayIndex),
		UpdatedAt:   fromMillis(lb.LastUpdated),
	}
	if lb.Profile != nil {
		b.Profile.Name = domain.DisplayName(lb.Profile.Name)
		b.Profile.Avatar = lb.Profile.Avatar
		b.Profile.LevelTag = lb.Profile.Grade
	}
	if s := lb.Stats; s != nil {
		b.Stats = domain.StudyStats{
			TotalLearned:  max(0, s.TotalLearned),
			CurrentDay:    s.CurrentDay,
			Streak:        s.Streak,
			LastStudyDate: s.LastStudyDate,
			TotalSeconds:  s.TotalSeconds,
			QuizScore:     s.QuizScore,
			BestQuizScore: s.QuizScore,
		}
		for _, h := range s.History {
			b.Stats.History = append(b.Stats.History, domain.DayHistory{Date: h.Date, Seconds: h.Seconds})
		}
	} else {
		b.Stats.TotalLearned = len(b.Vocabulary)
	}
	for i, p := range lb.Passages {
		b.Passages = append(b.Passages, domain.Passage{
			ID:          "legacy-" + strconv.Itoa(i),
			Title:       p.Title,
			Content:     p.ContentEn,
			Translation: p.ContentVi,
		})
	}
	return b, nil
}

func convertItems(items []legacyItem, now time.Time) []domain.VocabularyRecord {
	out := make([]domain.VocabularyRecord, 0, len(items))
	for _, it := range items {
		out = append(out, convertItem(it, now))
	}
	return out
}

func convertItem(it legacyItem, now time.Time) domain.VocabularyRecord {
	r := domain.VocabularyRecord{
		ID:                   it.ID,
		Word:                 it.Word,
		Phonetic:             firstNonEmpty(it.IPA, it.Phonetic),
		Definition:           firstNonEmpty(it.Definition, it.Meaning),
		TranslatedDefinition: it.VietnameseDefinition,
		Example:              it.Example,
		Topic:                it.Topic,
		LevelTag:             firstNonEmpty(it.CEFR, it.Grade),
		Synonyms:             it.Synonyms,
		Antonyms:             it.Antonyms,
		Paraphrases:          it.IeltsParaphrases,
		MnemonicHint:         it.MnemonicHint,
		LearnedAt:            fromMillis(it.LearnedAt),
		ReviewCount:          max(0, it.ReviewCount),
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.LearnedAt.IsZero() {
		r.LearnedAt = now
	}
	if ra := it.RootAnalysis; ra != nil {
		r.RootAnalysis = &domain.RootAnalysis{Root: ra.Root, Prefix: ra.Prefix, Suffix: ra.Suffix, Explanation: ra.Explanation}
	}

	switch {
	case it.SRSLevel != nil:
		r.SRSLevel = clampLevel(*it.SRSLevel)
	case it.Interval != nil:
		r.SRSLevel = levelFromInterval(*it.Interval)
	}
	// The explicit flag wins over a conflicting level.
	if it.IsMastered != nil {
		switch {
		case *it.IsMastered:
			r.SRSLevel = domain.MasteredLevel
		case r.SRSLevel >= domain.MasteredLevel:
			r.SRSLevel = domain.MasteredLevel - 1
		}
	}

	switch {
	case it.NextReviewAt != 0:
		r.NextReviewAt = fromMillis(it.NextReviewAt)
	case it.NextReview != 0:
		r.NextReviewAt = fromMillis(it.NextReview)
	default:
		r.NextReviewAt = r.LearnedAt.Add(24 * time.Hour)
	}
	return r
}

// levelFromInterval maps an interval in days onto the fixed ladder. An
// interval alone never reaches mastery.
func levelFromInterval(days float64) int {
	switch {
	case days >= 7:
		return 3
	case days >= 3:
		return 2
	case days >= 1:
		return 1
	}
	return 0
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
