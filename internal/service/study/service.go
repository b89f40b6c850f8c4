// Package study turns the active profile's vocabulary, the scheduler and the
// wall clock into what the learner should see next, and applies their
// answers back.
package study

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/vocabcoach/internal/domain"
	"github.com/heartmarshall/vocabcoach/internal/service/srs"
	"github.com/heartmarshall/vocabcoach/internal/service/vocabulary"
)

//go:generate moq -out generator_mock_test.go -pkg study . Generator
//go:generate moq -out session_manager_mock_test.go -pkg study . sessionManager

// ---------------------------------------------------------------------------
// Ports
// ---------------------------------------------------------------------------

// Generator produces learning content. Every call may fail or be slow;
// callers treat results as untrusted.
type Generator interface {
	GenerateVocabularyBatch(ctx context.Context, topic string, count int, level string) ([]domain.VocabularyRecord, error)
	GenerateWord(ctx context.Context, word string, level string) (domain.VocabularyRecord, error)
	GenerateReadingPassages(ctx context.Context, words []string, level string) ([]domain.Passage, error)
	GenerateQuiz(ctx context.Context, records []domain.VocabularyRecord) ([]domain.QuizQuestion, error)
	EvaluateSentence(ctx context.Context, word, sentence string) (domain.SentenceEvaluation, error)
	MotivationalMessage(ctx context.Context, stats domain.StudyStats) (string, error)
}

type sessionManager interface {
	Active() (domain.Profile, bool)
	RequestPersist()
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Config holds study controller settings.
type Config struct {
	Location        *time.Location
	TimerCheckpoint int // ticks between persist requests
	MinQuizWords    int
	MaxQuizWords    int
	MaxBatchSize    int
	MaxPassageWords int
}

func (c *Config) withDefaults() {
	if c.Location == nil {
		c.Location = time.Local
	}
	if c.TimerCheckpoint <= 0 {
		c.TimerCheckpoint = 30
	}
	if c.MinQuizWords <= 0 {
		c.MinQuizWords = 4
	}
	if c.MaxQuizWords < c.MinQuizWords {
		c.MaxQuizWords = 10
	}
	if c.MaxBatchSize <= 0 {
		c.MaxBatchSize = 20
	}
	if c.MaxPassageWords <= 0 {
		c.MaxPassageWords = 10
	}
}

// Service implements the study-session controller.
type Service struct {
	store    *vocabulary.Store
	sched    *srs.Scheduler
	gen      Generator
	sessions sessionManager
	clock    clockwork.Clock
	log      *slog.Logger
	cfg      Config

	mu       sync.Mutex
	queue    *reviewQueue
	timerKey string // profile the pause flag and tick count belong to
	paused   bool
	ticks    int
}

// NewService creates a new study Service.
func NewService(
	log *slog.Logger,
	store *vocabulary.Store,
	sched *srs.Scheduler,
	gen Generator,
	sessions sessionManager,
	clock clockwork.Clock,
	cfg Config,
) *Service {
	cfg.withDefaults()
	return &Service{
		store:    store,
		sched:    sched,
		gen:      gen,
		sessions: sessions,
		clock:    clock,
		log:      log.With("service", "study"),
		cfg:      cfg,
	}
}

// Location returns the timezone used for calendar-day boundaries.
func (s *Service) Location() *time.Location { return s.cfg.Location }

func (s *Service) requireSession() (domain.Profile, error) {
	p, ok := s.sessions.Active()
	if !ok {
		return domain.Profile{}, domain.ErrNoSession
	}
	return p, nil
}

func (s *Service) levelFor(p domain.Profile, level string) string {
	if level != "" {
		return level
	}
	return p.LevelTag
}
