package study

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/vocabcoach/internal/domain"
)

// StartNewBatch generates a batch of new words and adds it to the active
// profile. A failed generation leaves every piece of state untouched.
func (s *Service) StartNewBatch(ctx context.Context, input BatchInput) ([]domain.VocabularyRecord, error) {
	if err := input.Validate(s.cfg.MaxBatchSize); err != nil {
		return nil, err
	}
	p, err := s.requireSession()
	if err != nil {
		return nil, err
	}

	topic := strings.TrimSpace(input.Topic)
	level := s.levelFor(p, input.Level)

	items, err := s.gen.GenerateVocabularyBatch(ctx, topic, input.Count, level)
	if err != nil {
		s.log.WarnContext(ctx, "vocabulary generation failed", slog.String("topic", topic), slog.String("error", err.Error()))
		return nil, domain.NewServiceError("generate vocabulary batch", err)
	}
	if len(items) > input.Count {
		items = items[:input.Count]
	}

	now := s.clock.Now()
	records := s.fill(items, now, topic, level)
	if len(records) == 0 {
		return nil, domain.NewServiceError("generate vocabulary batch", errors.New("generator returned no usable words"))
	}
	if !s.store.AddLearned(p.Key, records, true) {
		return nil, fmt.Errorf("profile changed during generation: %w", domain.ErrNoSession)
	}
	s.updateStreak(now)

	s.log.InfoContext(ctx, "batch added", slog.String("profile", p.Key), slog.String("topic", topic),
		slog.Int("count", len(records)))
	return records, nil
}

// AddWord generates and adds a single learner-chosen word.
func (s *Service) AddWord(ctx context.Context, word string) (domain.VocabularyRecord, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return domain.VocabularyRecord{}, domain.NewValidationError("word", "required")
	}
	if len(word) > 100 {
		return domain.VocabularyRecord{}, domain.NewValidationError("word", "max 100 characters")
	}
	p, err := s.requireSession()
	if err != nil {
		return domain.VocabularyRecord{}, err
	}

	level := s.levelFor(p, "")
	item, err := s.gen.GenerateWord(ctx, word, level)
	if err != nil {
		s.log.WarnContext(ctx, "word analysis failed", slog.String("word", word), slog.String("error", err.Error()))
		return domain.VocabularyRecord{}, domain.NewServiceError("analyze word", err)
	}
	if strings.TrimSpace(item.Word) == "" {
		item.Word = word
	}

	now := s.clock.Now()
	records := s.fill([]domain.VocabularyRecord{item}, now, item.Topic, level)
	if !s.store.AddLearned(p.Key, records, false) {
		return domain.VocabularyRecord{}, fmt.Errorf("profile changed during generation: %w", domain.ErrNoSession)
	}
	s.updateStreak(now)
	return records[0], nil
}

// ImportRecords adds externally prepared records, such as a spreadsheet
// word list, with fresh scheduling fields.
func (s *Service) ImportRecords(ctx context.Context, items []domain.VocabularyRecord) (int, error) {
	p, err := s.requireSession()
	if err != nil {
		return 0, err
	}

	records := s.fill(items, s.clock.Now(), "", p.LevelTag)
	if len(records) == 0 {
		return 0, nil
	}

	if !s.store.AddLearned(p.Key, records, false) {
		return 0, domain.ErrNoSession
	}

	s.log.InfoContext(ctx, "records imported", slog.String("profile", p.Key), slog.Int("count", len(records)))
	return len(records), nil
}

// fill assigns identity and initial scheduling to externally produced items.
// Items without a word are dropped.
func (s *Service) fill(items []domain.VocabularyRecord, now time.Time, topic, level string) []domain.VocabularyRecord {
	out := make([]domain.VocabularyRecord, 0, len(items))
	for _, it := range items {
		r := it.Clone()
		r.Word = strings.TrimSpace(r.Word)
		if r.Word == "" {
			continue
		}
		r.ID = uuid.NewString()
		if r.Topic == "" {
			r.Topic = topic
		}
		if r.LevelTag == "" {
			r.LevelTag = level
		}
		r.LearnedAt = now
		r.ReviewCount = 0
		r.SRSLevel = 0
		r.NextReviewAt = s.sched.InitialReviewAt(now)
		out = append(out, r)
	}
	return out
}
