package study

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/heartmarshall/vocabcoach/internal/domain"
)

// fallbackMotivation is shown when the generator cannot produce a message.
const fallbackMotivation = "Every word you review today makes tomorrow's reading easier. Keep going!"

// studySet returns today's records, or every unmastered record when today
// has fewer than minCount.
func (s *Service) studySet(minCount int) []domain.VocabularyRecord {
	records := s.store.Today(s.clock.Now(), s.cfg.Location)
	if len(records) >= minCount {
		return records
	}
	return lo.Filter(s.store.All(), func(r domain.VocabularyRecord, _ int) bool {
		return !r.IsMastered()
	})
}

// GenerateQuiz builds a quiz over the current study set. At least
// MinQuizWords records are required.
func (s *Service) GenerateQuiz(ctx context.Context) ([]domain.QuizQuestion, error) {
	p, err := s.requireSession()
	if err != nil {
		return nil, err
	}

	records := s.studySet(s.cfg.MinQuizWords)
	if len(records) < s.cfg.MinQuizWords {
		return nil, domain.NewValidationError("records", "at least "+strconv.Itoa(s.cfg.MinQuizWords)+" words are needed for a quiz")
	}
	if len(records) > s.cfg.MaxQuizWords {
		records = records[:s.cfg.MaxQuizWords]
	}

	questions, err := s.gen.GenerateQuiz(ctx, records)
	if err != nil {
		s.log.WarnContext(ctx, "quiz generation failed", slog.String("profile", p.Key), slog.String("error", err.Error()))
		return nil, domain.NewServiceError("generate quiz", err)
	}

	known := lo.SliceToMap(records, func(r domain.VocabularyRecord) (string, bool) { return r.ID, true })
	out := make([]domain.QuizQuestion, 0, len(questions))
	for _, q := range questions {
		if strings.TrimSpace(q.Question) == "" || strings.TrimSpace(q.CorrectAnswer) == "" {
			continue
		}
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		if !known[q.RecordID] {
			q.RecordID = ""
		}
		out = append(out, q)
	}
	if len(out) == 0 {
		return nil, domain.NewServiceError("generate quiz", errors.New("no usable questions"))
	}
	return out, nil
}

// FinishQuiz adds score to the cumulative quiz points and tracks the best
// single result.
func (s *Service) FinishQuiz(ctx context.Context, score int) (domain.StudyStats, error) {
	if score < 0 {
		return domain.StudyStats{}, domain.NewValidationError("score", "must be >= 0")
	}
	if _, err := s.requireSession(); err != nil {
		return domain.StudyStats{}, err
	}

	s.store.UpdateStats(func(st *domain.StudyStats) bool {
		st.QuizScore += score
		st.BestQuizScore = max(st.BestQuizScore, score)
		return true
	})
	s.updateStreak(s.clock.Now())
	return s.store.Stats(), nil
}

// GeneratePassages replaces the profile's reading passages with new ones
// built around the current study set.
func (s *Service) GeneratePassages(ctx context.Context) ([]domain.Passage, error) {
	p, err := s.requireSession()
	if err != nil {
		return nil, err
	}

	records := s.studySet(1)
	if len(records) == 0 {
		return nil, domain.NewValidationError("records", "learn some words first")
	}
	words := lo.Uniq(lo.Map(records, func(r domain.VocabularyRecord, _ int) string { return r.Word }))
	if len(words) > s.cfg.MaxPassageWords {
		words = words[:s.cfg.MaxPassageWords]
	}

	passages, err := s.gen.GenerateReadingPassages(ctx, words, p.LevelTag)
	if err != nil {
		s.log.WarnContext(ctx, "passage generation failed", slog.String("profile", p.Key), slog.String("error", err.Error()))
		return nil, domain.NewServiceError("generate reading passages", err)
	}
	for i := range passages {
		if passages[i].ID == "" {
			passages[i].ID = uuid.NewString()
		}
		if len(passages[i].Words) == 0 {
			passages[i].Words = words
		}
	}
	if !s.store.SetPassages(p.Key, passages) {
		return nil, fmt.Errorf("profile changed during generation: %w", domain.ErrNoSession)
	}
	return s.store.Passages(), nil
}

// Passages returns the stored reading passages.
func (s *Service) Passages(ctx context.Context) ([]domain.Passage, error) {
	if _, err := s.requireSession(); err != nil {
		return nil, err
	}
	return s.store.Passages(), nil
}

// EvaluateSentence asks the generator to grade a sentence written with one
// of the learner's words.
func (s *Service) EvaluateSentence(ctx context.Context, input SentenceInput) (domain.SentenceEvaluation, error) {
	if err := input.Validate(); err != nil {
		return domain.SentenceEvaluation{}, err
	}
	if _, err := s.requireSession(); err != nil {
		return domain.SentenceEvaluation{}, err
	}
	rec, ok := s.store.Get(input.RecordID)
	if !ok {
		return domain.SentenceEvaluation{}, fmt.Errorf("record %s: %w", input.RecordID, domain.ErrNotFound)
	}

	ev, err := s.gen.EvaluateSentence(ctx, rec.Word, strings.TrimSpace(input.Sentence))
	if err != nil {
		s.log.WarnContext(ctx, "sentence evaluation failed", slog.String("word", rec.Word), slog.String("error", err.Error()))
		return domain.SentenceEvaluation{}, domain.NewServiceError("evaluate sentence", err)
	}
	ev.Score = max(0, min(10, ev.Score))
	return ev, nil
}

// MotivationalMessage returns an encouragement for the active profile. It
// never fails once a session is active; generator errors fall back to a
// fixed message.
func (s *Service) MotivationalMessage(ctx context.Context) (string, error) {
	if _, err := s.requireSession(); err != nil {
		return "", err
	}

	msg, err := s.gen.MotivationalMessage(ctx, s.store.Stats())
	if err != nil {
		s.log.WarnContext(ctx, "motivation unavailable", slog.String("error", err.Error()))
		return fallbackMotivation, nil
	}
	if msg = strings.TrimSpace(msg); msg == "" {
		return fallbackMotivation, nil
	}
	return msg, nil
}
