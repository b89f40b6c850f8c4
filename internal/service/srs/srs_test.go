package srs

import (
	"testing"
	"time"

	"github.com/heartmarshall/vocabcoach/internal/domain"
)

const day = 24 * time.Hour

func TestCalculate(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC)
	s := NewScheduler(nil)

	tests := []struct {
		name      string
		input     Input
		wantLevel int
		wantDelay time.Duration
	}{
		{"new REMEMBERED → level 1", Input{Level: 0, Outcome: domain.ReviewOutcomeRemembered}, 1, 1 * day},
		{"level 1 REMEMBERED → level 2", Input{Level: 1, Outcome: domain.ReviewOutcomeRemembered}, 2, 3 * day},
		{"level 2 REMEMBERED → level 3", Input{Level: 2, Outcome: domain.ReviewOutcomeRemembered}, 3, 7 * day},
		{"level 3 REMEMBERED → mastered", Input{Level: 3, Outcome: domain.ReviewOutcomeRemembered}, 4, 30 * day},
		{"level 3 FORGOT → reset", Input{Level: 3, Outcome: domain.ReviewOutcomeForgot}, 0, 1 * day},
		{"level 0 FORGOT → reset", Input{Level: 0, Outcome: domain.ReviewOutcomeForgot}, 0, 1 * day},
		{"level 2 HARD keeps level", Input{Level: 2, Outcome: domain.ReviewOutcomeHard}, 2, 3 * day},
		{"level 0 HARD waits one unit", Input{Level: 0, Outcome: domain.ReviewOutcomeHard}, 0, 1 * day},
		{"level 1 EASY skips a level", Input{Level: 1, Outcome: domain.ReviewOutcomeEasy}, 3, 7 * day},
		{"level 3 EASY caps at mastered", Input{Level: 3, Outcome: domain.ReviewOutcomeEasy}, 4, 30 * day},
		{"mastered REMEMBERED re-enters rotation", Input{Level: 4, Outcome: domain.ReviewOutcomeRemembered}, 0, 1 * day},
		{"mastered EASY re-enters rotation", Input{Level: 4, Outcome: domain.ReviewOutcomeEasy}, 0, 1 * day},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := tt.input
			in.Now = now
			in.ReviewCount = 7
			got := s.Calculate(in)

			if got.Level != tt.wantLevel {
				t.Errorf("Level = %d, want %d", got.Level, tt.wantLevel)
			}
			if d := got.NextReviewAt.Sub(now); d != tt.wantDelay {
				t.Errorf("delay = %v, want %v", d, tt.wantDelay)
			}
			if got.ReviewCount != 8 {
				t.Errorf("ReviewCount = %d, want 8", got.ReviewCount)
			}
			if got.Mastered() != (tt.wantLevel == domain.MasteredLevel) {
				t.Errorf("Mastered() = %v at level %d", got.Mastered(), got.Level)
			}
		})
	}
}

func TestApplyReview_ReviewCountAlwaysIncrements(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC)
	s := NewScheduler(nil)
	outcomes := []domain.ReviewOutcome{
		domain.ReviewOutcomeForgot, domain.ReviewOutcomeHard,
		domain.ReviewOutcomeRemembered, domain.ReviewOutcomeEasy,
	}

	for level := 0; level <= domain.MasteredLevel; level++ {
		for _, o := range outcomes {
			rec := domain.VocabularyRecord{SRSLevel: level, ReviewCount: 3}
			got := s.ApplyReview(rec, o, now)
			if got.ReviewCount != 4 {
				t.Errorf("level %d %s: ReviewCount = %d, want 4", level, o, got.ReviewCount)
			}
		}
	}
}

func TestApplyReview_FailureResets(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	s := NewScheduler(nil)

	for level := 0; level <= domain.MasteredLevel; level++ {
		rec := domain.VocabularyRecord{SRSLevel: level}
		got := s.ApplyReview(rec, domain.ReviewOutcomeForgot, t0)
		if got.SRSLevel != 0 {
			t.Errorf("level %d: SRSLevel = %d, want 0", level, got.SRSLevel)
		}
		if !got.NextReviewAt.Equal(t0.Add(day)) {
			t.Errorf("level %d: NextReviewAt = %v, want %v", level, got.NextReviewAt, t0.Add(day))
		}
		if got.IsMastered() {
			t.Errorf("level %d: record still mastered after failure", level)
		}
	}
}

func TestApplyReview_KeepsContent(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	rec := domain.VocabularyRecord{
		ID:        "r1",
		Word:      "resilient",
		Synonyms:  []string{"tough"},
		LearnedAt: t0.Add(-day),
		SRSLevel:  2,
	}

	got := NewScheduler(nil).ApplyReview(rec, domain.ReviewOutcomeRemembered, t0)

	if got.SRSLevel != 3 || !got.NextReviewAt.Equal(t0.Add(7*day)) {
		t.Errorf("got level %d next %v, want 3 and t0+7d", got.SRSLevel, got.NextReviewAt)
	}
	if got.ID != "r1" || got.Word != "resilient" || !got.LearnedAt.Equal(rec.LearnedAt) {
		t.Errorf("content changed: %+v", got)
	}
	got.Synonyms[0] = "x"
	if rec.Synonyms[0] != "tough" {
		t.Error("ApplyReview shares slices with its input")
	}
	if rec.SRSLevel != 2 {
		t.Error("ApplyReview mutated its input")
	}
}

func TestMasteredNeverDue(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	rec := NewScheduler(nil).ApplyReview(domain.VocabularyRecord{SRSLevel: 3}, domain.ReviewOutcomeRemembered, t0)

	for _, offset := range []time.Duration{0, 30 * day, 365 * day, 10 * 365 * day} {
		if rec.IsDue(t0.Add(offset)) {
			t.Errorf("mastered record due at t0+%v", offset)
		}
	}
}

func TestNewScheduler_CustomTable(t *testing.T) {
	t.Parallel()

	s := NewScheduler([]time.Duration{time.Hour, 2 * time.Hour, 3 * time.Hour, 4 * time.Hour})
	if got := s.Interval(2); got != 2*time.Hour {
		t.Errorf("Interval(2) = %v, want 2h", got)
	}
	if got := s.Interval(0); got != Unit {
		t.Errorf("Interval(0) = %v, want %v", got, Unit)
	}

	short := NewScheduler([]time.Duration{time.Hour})
	if got := short.Interval(4); got != 30*day {
		t.Errorf("short table Interval(4) = %v, want default 30d", got)
	}
}

func TestInitialReviewAt(t *testing.T) {
	t.Parallel()

	learned := time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC)
	if got := NewScheduler(nil).InitialReviewAt(learned); !got.Equal(learned.Add(day)) {
		t.Errorf("InitialReviewAt() = %v, want %v", got, learned.Add(day))
	}
}
