package study

import (
	"context"
	"fmt"
	"slices"

	"github.com/heartmarshall/vocabcoach/internal/domain"
	"github.com/heartmarshall/vocabcoach/internal/service/srs"
)

// reviewQueue is a snapshot of record ids taken when a review starts.
type reviewQueue struct {
	profileKey string
	ids        []string
	cursor     int
}

// ReviewQueue is the result of starting a review.
type ReviewQueue struct {
	Records  []domain.VocabularyRecord
	Progress domain.ReviewProgress
}

// StartReview snapshots the due or today set into a queue. The default order
// is the order of the collection; srs.OrderUrgency is opt-in.
func (s *Service) StartReview(ctx context.Context, input ReviewInput) (ReviewQueue, error) {
	if err := input.Validate(); err != nil {
		return ReviewQueue{}, err
	}
	p, err := s.requireSession()
	if err != nil {
		return ReviewQueue{}, err
	}

	now := s.clock.Now()
	var records []domain.VocabularyRecord
	switch input.Source {
	case domain.ReviewSourceToday:
		records = s.store.Today(now, s.cfg.Location)
	default:
		records = s.store.Due(now)
	}
	records = srs.Arrange(records, input.Order)

	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}

	s.mu.Lock()
	if len(ids) == 0 {
		s.queue = nil
	} else {
		s.queue = &reviewQueue{profileKey: p.Key, ids: ids}
	}
	s.mu.Unlock()

	return ReviewQueue{
		Records:  records,
		Progress: domain.ReviewProgress{Total: len(ids), Finished: len(ids) == 0},
	}, nil
}

// CurrentReview returns the progress of the running queue.
func (s *Service) CurrentReview() (domain.ReviewProgress, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.queue == nil {
		return domain.ReviewProgress{Finished: true}, false
	}
	return domain.ReviewProgress{Cursor: s.queue.cursor, Total: len(s.queue.ids)}, true
}

// RecordReviewOutcome applies the scheduler to one record, writes the result
// back and advances the running queue. The queue ends when exhausted.
func (s *Service) RecordReviewOutcome(ctx context.Context, input OutcomeInput) (domain.ReviewProgress, error) {
	if err := input.Validate(); err != nil {
		return domain.ReviewProgress{}, err
	}
	p, err := s.requireSession()
	if err != nil {
		return domain.ReviewProgress{}, err
	}

	rec, ok := s.store.Get(input.RecordID)
	if !ok {
		return domain.ReviewProgress{}, fmt.Errorf("record %s: %w", input.RecordID, domain.ErrNotFound)
	}

	now := s.clock.Now()
	next := s.sched.ApplyReview(rec, input.Outcome, now)
	s.store.UpdateRecord(next)
	s.updateStreak(now)

	progress := s.advance(p.Key, input.RecordID)
	progress.Record = &next
	return progress, nil
}

// advance moves the cursor past id when id is the current queue entry,
// skipping entries that were removed from the collection meanwhile.
func (s *Service) advance(profileKey, id string) domain.ReviewProgress {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := s.queue
	if q == nil || q.profileKey != profileKey {
		return domain.ReviewProgress{Finished: true}
	}
	if q.cursor < len(q.ids) && q.ids[q.cursor] == id {
		q.cursor++
	} else if i := slices.Index(q.ids[q.cursor:], id); i >= 0 {
		// Answered out of order: drop it so it is not asked twice.
		q.ids = slices.Delete(q.ids, q.cursor+i, q.cursor+i+1)
	}
	for q.cursor < len(q.ids) {
		if _, ok := s.store.Get(q.ids[q.cursor]); ok {
			break
		}
		q.cursor++
	}

	progress := domain.ReviewProgress{Cursor: q.cursor, Total: len(q.ids)}
	if q.cursor >= len(q.ids) {
		progress.Finished = true
		s.queue = nil
	}
	return progress
}

// EndReview discards the running queue.
func (s *Service) EndReview() {
	s.mu.Lock()
	s.queue = nil
	s.mu.Unlock()
}

// SetMastered toggles mastery manually, bypassing the scheduler.
func (s *Service) SetMastered(ctx context.Context, id string, mastered bool) (domain.VocabularyRecord, error) {
	if _, err := s.requireSession(); err != nil {
		return domain.VocabularyRecord{}, err
	}
	if !s.store.SetMastered(id, mastered) {
		return domain.VocabularyRecord{}, fmt.Errorf("record %s: %w", id, domain.ErrNotFound)
	}
	rec, _ := s.store.Get(id)
	return rec, nil
}

// RemoveWord deletes a record from the active profile.
func (s *Service) RemoveWord(ctx context.Context, id string) error {
	if _, err := s.requireSession(); err != nil {
		return err
	}
	if !s.store.RemoveRecord(id) {
		return fmt.Errorf("record %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ListWords returns a derived view of the active vocabulary.
func (s *Service) ListWords(ctx context.Context, input ListInput) ([]domain.VocabularyRecord, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.requireSession(); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	switch input.View {
	case ListViewToday:
		return s.store.Today(now, s.cfg.Location), nil
	case ListViewDue:
		return s.store.Due(now), nil
	case ListViewMastered:
		return s.store.Mastered(), nil
	}
	return s.store.Search(input.Query), nil
}

// MoveTodayCursor sets the flashcard position within today's set, clamped
// to its bounds.
func (s *Service) MoveTodayCursor(ctx context.Context, i int) (int, error) {
	if _, err := s.requireSession(); err != nil {
		return 0, err
	}
	n := len(s.store.Today(s.clock.Now(), s.cfg.Location))
	i = max(0, min(i, n-1))
	s.store.SetTodayCursor(i)
	return i, nil
}
