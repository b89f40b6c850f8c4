package llm

import (
	"context"
	"errors"

	"github.com/heartmarshall/vocabcoach/internal/domain"
)

// ErrDisabled is returned by Offline for every call.
var ErrDisabled = errors.New("content generation is disabled: no LLM API key configured")

// Offline is the generator used when no API key is configured. Every call
// fails as a transient service error, so the study flows degrade the same
// way they do during an outage.
type Offline struct{}

func (Offline) GenerateVocabularyBatch(context.Context, string, int, string) ([]domain.VocabularyRecord, error) {
	return nil, ErrDisabled
}

func (Offline) GenerateWord(context.Context, string, string) (domain.VocabularyRecord, error) {
	return domain.VocabularyRecord{}, ErrDisabled
}

func (Offline) GenerateReadingPassages(context.Context, []string, string) ([]domain.Passage, error) {
	return nil, ErrDisabled
}

func (Offline) GenerateQuiz(context.Context, []domain.VocabularyRecord) ([]domain.QuizQuestion, error) {
	return nil, ErrDisabled
}

func (Offline) EvaluateSentence(context.Context, string, string) (domain.SentenceEvaluation, error) {
	return domain.SentenceEvaluation{}, ErrDisabled
}

func (Offline) MotivationalMessage(context.Context, domain.StudyStats) (string, error) {
	return "", ErrDisabled
}
