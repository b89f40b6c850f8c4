// Package srs implements the fixed-ladder spaced-repetition schedule.
package srs

import (
	"time"

	"github.com/heartmarshall/vocabcoach/internal/domain"
)

// Unit is one scheduling step. New records and failed reviews wait one unit.
const Unit = 24 * time.Hour

// DefaultIntervals is the wait after reaching levels 1..4.
var DefaultIntervals = []time.Duration{
	1 * Unit,
	3 * Unit,
	7 * Unit,
	30 * Unit,
}

// Input holds all data needed for one transition. Pure value, no side effects.
type Input struct {
	Level       int
	ReviewCount int
	Outcome     domain.ReviewOutcome
	Now         time.Time
}

// Output is the result of a transition.
type Output struct {
	Level        int
	ReviewCount  int
	NextReviewAt time.Time
}

// Mastered reports whether the resulting level is terminal.
func (o Output) Mastered() bool { return o.Level >= domain.MasteredLevel }

// Scheduler computes review transitions over an interval table indexed by
// the level reached.
type Scheduler struct {
	intervals []time.Duration
}

// NewScheduler creates a scheduler. An empty or short table falls back to
// DefaultIntervals.
func NewScheduler(intervals []time.Duration) *Scheduler {
	if len(intervals) != domain.MasteredLevel {
		intervals = DefaultIntervals
	}
	table := make([]time.Duration, len(intervals))
	copy(table, intervals)
	return &Scheduler{intervals: table}
}

// Interval returns the wait after reaching level. Level 0 waits one unit.
func (s *Scheduler) Interval(level int) time.Duration {
	if level <= 0 {
		return Unit
	}
	if level > len(s.intervals) {
		level = len(s.intervals)
	}
	return s.intervals[level-1]
}

// InitialReviewAt is the first review time for a freshly created record.
func (s *Scheduler) InitialReviewAt(learnedAt time.Time) time.Time {
	return learnedAt.Add(Unit)
}

// Calculate is a pure function. No storage, no context, no logger.
func (s *Scheduler) Calculate(in Input) Output {
	out := Output{ReviewCount: in.ReviewCount + 1}

	// A mastered record is out of rotation; reviewing it anyway re-enters it.
	if !in.Outcome.IsSuccess() || in.Level >= domain.MasteredLevel {
		out.Level = 0
		out.NextReviewAt = in.Now.Add(Unit)
		return out
	}

	level := min(domain.MasteredLevel, max(0, in.Level)+levelDelta(in.Outcome))
	out.Level = level
	out.NextReviewAt = in.Now.Add(s.Interval(level))
	return out
}

// ApplyReview returns a copy of rec with the transition for outcome applied.
// Display content is never touched.
func (s *Scheduler) ApplyReview(rec domain.VocabularyRecord, outcome domain.ReviewOutcome, now time.Time) domain.VocabularyRecord {
	out := s.Calculate(Input{
		Level:       rec.SRSLevel,
		ReviewCount: rec.ReviewCount,
		Outcome:     outcome,
		Now:         now,
	})
	next := rec.Clone()
	next.SRSLevel = out.Level
	next.ReviewCount = out.ReviewCount
	next.NextReviewAt = out.NextReviewAt
	return next
}

func levelDelta(o domain.ReviewOutcome) int {
	switch o {
	case domain.ReviewOutcomeHard:
		return 0
	case domain.ReviewOutcomeEasy:
		return 2
	default:
		return 1
	}
}
