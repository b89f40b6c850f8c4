// Package vocabulary holds the authoritative in-memory state of the active
// profile: its records, stats, passages and today cursor.
package vocabulary

import (
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/samber/lo"

	"github.com/heartmarshall/vocabcoach/internal/domain"
	"github.com/heartmarshall/vocabcoach/internal/service/srs"
)

// Store serializes all mutations of the active profile's state. Views return
// copies, so callers may hold them across later mutations.
type Store struct {
	mu    sync.Mutex
	clock clockwork.Clock

	profile     domain.Profile
	records     []domain.VocabularyRecord
	stats       domain.StudyStats
	passages    []domain.Passage
	todayCursor int
	updatedAt   time.Time
	rev         uint64 // bumped on every state change, including silent ones

	onChange func()
}

// NewStore creates an empty store.
func NewStore(clock clockwork.Clock) *Store {
	return &Store{clock: clock}
}

// OnChange registers fn to run after every semantic mutation. fn is called
// outside the store lock.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// mutate runs fn under the lock, stamps updatedAt when fn reports a change
// and notifies the change hook.
func (s *Store) mutate(fn func() bool) bool {
	s.mu.Lock()
	changed := fn()
	if changed {
		s.updatedAt = s.clock.Now()
		s.rev++
	}
	hook := s.onChange
	s.mu.Unlock()

	if changed && hook != nil {
		hook()
	}
	return changed
}

// ---------------------------------------------------------------------------
// Records
// ---------------------------------------------------------------------------

// AddRecords prepends items, most recent first. Duplicated words are kept as
// distinct records.
func (s *Store) AddRecords(items []domain.VocabularyRecord) {
	if len(items) == 0 {
		return
	}
	s.mutate(func() bool {
		next := make([]domain.VocabularyRecord, 0, len(items)+len(s.records))
		for _, it := range items {
			next = append(next, it.Clone())
		}
		s.records = append(next, s.records...)
		return true
	})
}

// RemoveRecord deletes the record with id and decrements TotalLearned,
// floored at 0. Unknown ids are a no-op.
func (s *Store) RemoveRecord(id string) bool {
	return s.mutate(func() bool {
		idx := s.indexOf(id)
		if idx < 0 {
			return false
		}
		s.records = append(s.records[:idx:idx], s.records[idx+1:]...)
		s.stats.TotalLearned = max(0, s.stats.TotalLearned-1)
		return true
	})
}

// SetMastered overrides the schedule. Mastering forces the terminal level;
// un-mastering resets the record to level 0, due one unit from now.
func (s *Store) SetMastered(id string, mastered bool) bool {
	return s.mutate(func() bool {
		idx := s.indexOf(id)
		if idx < 0 {
			return false
		}
		rec := &s.records[idx]
		if mastered {
			rec.SRSLevel = domain.MasteredLevel
			return true
		}
		rec.SRSLevel = 0
		rec.NextReviewAt = s.clock.Now().Add(srs.Unit)
		return true
	})
}

// UpdateRecord writes scheduling fields of rec back to the stored record
// with the same id. Display content is never replaced.
func (s *Store) UpdateRecord(rec domain.VocabularyRecord) bool {
	return s.mutate(func() bool {
		idx := s.indexOf(rec.ID)
		if idx < 0 {
			return false
		}
		cur := &s.records[idx]
		cur.SRSLevel = rec.SRSLevel
		cur.ReviewCount = rec.ReviewCount
		cur.NextReviewAt = rec.NextReviewAt
		return true
	})
}

// AddLearned prepends items and raises TotalLearned by their count in one
// mutation, but only while key is the hydrated profile. A new batch also
// advances the curriculum day and rewinds the today cursor.
func (s *Store) AddLearned(key string, items []domain.VocabularyRecord, newBatch bool) bool {
	if len(items) == 0 {
		return false
	}
	return s.mutate(func() bool {
		if key == "" || s.profile.Key != key {
			return false
		}
		next := make([]domain.VocabularyRecord, 0, len(items)+len(s.records))
		for _, it := range items {
			next = append(next, it.Clone())
		}
		s.records = append(next, s.records...)
		s.stats.TotalLearned += len(items)
		if newBatch {
			s.stats.CurrentDay++
			s.todayCursor = 0
		}
		return true
	})
}

func (s *Store) indexOf(id string) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}

// ---------------------------------------------------------------------------
// Views
// ---------------------------------------------------------------------------

// Get returns a copy of the record with id.
func (s *Store) Get(id string) (domain.VocabularyRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.VocabularyRecord{}, false
	}
	return s.records[idx].Clone(), true
}

// All returns every record, most recent first.
func (s *Store) All() []domain.VocabularyRecord {
	return s.filter(func(domain.VocabularyRecord) bool { return true })
}

// Today returns records learned since local midnight that are not mastered.
func (s *Store) Today(now time.Time, loc *time.Location) []domain.VocabularyRecord {
	start := domain.DayStart(now, loc)
	return s.filter(func(r domain.VocabularyRecord) bool {
		return !r.IsMastered() && !r.LearnedAt.Before(start)
	})
}

// Due returns records whose review time has passed, in collection order.
func (s *Store) Due(now time.Time) []domain.VocabularyRecord {
	return s.filter(func(r domain.VocabularyRecord) bool {
		return r.IsDue(now)
	})
}

// Mastered returns records at the terminal level.
func (s *Store) Mastered() []domain.VocabularyRecord {
	return s.filter(func(r domain.VocabularyRecord) bool {
		return r.IsMastered()
	})
}

// Search matches query case-insensitively against word and topic.
func (s *Store) Search(query string) []domain.VocabularyRecord {
	q := domain.NormalizeText(query)
	if q == "" {
		return s.All()
	}
	return s.filter(func(r domain.VocabularyRecord) bool {
		return strings.Contains(strings.ToLower(r.Word), q) ||
			strings.Contains(strings.ToLower(r.Topic), q)
	})
}

func (s *Store) filter(keep func(domain.VocabularyRecord) bool) []domain.VocabularyRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := lo.Filter(s.records, func(r domain.VocabularyRecord, _ int) bool {
		return keep(r)
	})
	return lo.Map(matched, func(r domain.VocabularyRecord, _ int) domain.VocabularyRecord {
		return r.Clone()
	})
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// ---------------------------------------------------------------------------
// Stats, passages, cursor
// ---------------------------------------------------------------------------

// Stats returns a copy of the study stats.
func (s *Store) Stats() domain.StudyStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats.Clone()
}

// UpdateStats applies fn to the stats. fn returns false to report no change.
func (s *Store) UpdateStats(fn func(st *domain.StudyStats) bool) bool {
	return s.mutate(func() bool {
		return fn(&s.stats)
	})
}

// RecordStudyTime adds secs of foreground time to date while key is the
// hydrated profile. It does not notify the change hook; callers decide when
// accumulated time is worth persisting.
func (s *Store) RecordStudyTime(key, date string, secs int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if key == "" || s.profile.Key != key {
		return false
	}
	s.stats.AddSeconds(date, secs)
	s.updatedAt = s.clock.Now()
	s.rev++
	return true
}

// Passages returns a copy of the generated reading passages.
func (s *Store) Passages() []domain.Passage {
	s.mu.Lock()
	defer s.mu.Unlock()

	return lo.Map(s.passages, func(p domain.Passage, _ int) domain.Passage {
		return p.Clone()
	})
}

// SetPassages replaces the reading passages while key is the hydrated
// profile.
func (s *Store) SetPassages(key string, passages []domain.Passage) bool {
	return s.mutate(func() bool {
		if key == "" || s.profile.Key != key {
			return false
		}
		s.passages = lo.Map(passages, func(p domain.Passage, _ int) domain.Passage {
			return p.Clone()
		})
		return true
	})
}

// TodayCursor returns the position within today's set.
func (s *Store) TodayCursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.todayCursor
}

// SetTodayCursor moves the position within today's set.
func (s *Store) SetTodayCursor(i int) {
	s.mutate(func() bool {
		if s.todayCursor == i {
			return false
		}
		s.todayCursor = max(0, i)
		return true
	})
}

// ---------------------------------------------------------------------------
// Lifecycle
// ---------------------------------------------------------------------------

// Profile returns the profile the store is hydrated for.
func (s *Store) Profile() domain.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// Hydrate replaces all state with an independent copy of b. The change hook
// is not called.
func (s *Store) Hydrate(b domain.Bundle) {
	c := b.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.profile = c.Profile
	s.records = c.Vocabulary
	s.stats = c.Stats
	s.passages = c.Passages
	s.todayCursor = c.TodayCursor
	s.updatedAt = c.UpdatedAt
	s.rev++
}

// Revision identifies the current state. It changes on every mutation,
// including study time that skips the change hook.
func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rev
}

// Snapshot returns an independent copy of all state.
func (s *Store) Snapshot() domain.Bundle {
	s.mu.Lock()
	b := domain.Bundle{
		Profile:     s.profile,
		Vocabulary:  s.records,
		Stats:       s.stats,
		Passages:    s.passages,
		TodayCursor: s.todayCursor,
		UpdatedAt:   s.updatedAt,
	}
	c := b.Clone()
	s.mu.Unlock()
	return c
}

// Reset empties the store. The change hook is kept but not called.
func (s *Store) Reset() {
	s.Hydrate(domain.Bundle{})
}
