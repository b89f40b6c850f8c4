// Package reminder nudges the learner when reviews are due. A gocron job
// checks the active profile on a fixed cadence inside a daily hour window.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/vocabcoach/internal/domain"
	"github.com/heartmarshall/vocabcoach/internal/service/study"
)

//go:generate moq -out notifier_mock_test.go -pkg reminder . Notifier

// Notifier delivers a due-review reminder.
type Notifier interface {
	Notify(ctx context.Context, p domain.Profile, due int) error
}

type sessionReader interface {
	Active() (domain.Profile, bool)
}

type wordLister interface {
	ListWords(ctx context.Context, input study.ListInput) ([]domain.VocabularyRecord, error)
}

// Config holds the reminder schedule.
type Config struct {
	Every     time.Duration
	StartHour int // first local hour (inclusive) reminders may fire
	EndHour   int // last local hour (inclusive)
	Location  *time.Location
}

// Service checks for due reviews and notifies.
type Service struct {
	sessions sessionReader
	words    wordLister
	notifier Notifier
	clock    clockwork.Clock
	log      *slog.Logger
	cfg      Config

	sched *gocron.Scheduler
}

// NewService creates a reminder Service.
func NewService(log *slog.Logger, sessions sessionReader, words wordLister, notifier Notifier, clock clockwork.Clock, cfg Config) *Service {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Every <= 0 {
		cfg.Every = time.Hour
	}
	return &Service{
		sessions: sessions,
		words:    words,
		notifier: notifier,
		clock:    clock,
		log:      log.With("service", "reminder"),
		cfg:      cfg,
	}
}

// Check sends one reminder when the current local hour is inside the window,
// a profile is active and at least one record is due. It reports whether a
// reminder was sent.
func (s *Service) Check(ctx context.Context) (bool, error) {
	hour := s.clock.Now().In(s.cfg.Location).Hour()
	if hour < s.cfg.StartHour || hour > s.cfg.EndHour {
		s.log.DebugContext(ctx, "outside reminder hours", slog.Int("hour", hour))
		return false, nil
	}

	p, ok := s.sessions.Active()
	if !ok {
		return false, nil
	}

	due, err := s.words.ListWords(ctx, study.ListInput{View: study.ListViewDue})
	if errors.Is(err, domain.ErrNoSession) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("count due words: %w", err)
	}
	if len(due) == 0 {
		return false, nil
	}

	if err := s.notifier.Notify(ctx, p, len(due)); err != nil {
		return false, fmt.Errorf("notify %s: %w", p.Key, err)
	}
	return true, nil
}

// Start schedules Check every cfg.Every. The first check runs after one
// full period.
func (s *Service) Start(ctx context.Context) error {
	sched := gocron.NewScheduler(s.cfg.Location)
	sched.SingletonModeAll()

	_, err := sched.Every(s.cfg.Every).WaitForSchedule().Do(func() {
		if _, err := s.Check(ctx); err != nil {
			s.log.ErrorContext(ctx, "reminder check failed", slog.String("error", err.Error()))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule reminder: %w", err)
	}

	sched.StartAsync()
	s.sched = sched
	s.log.InfoContext(ctx, "reminders scheduled", slog.Duration("every", s.cfg.Every),
		slog.Int("start_hour", s.cfg.StartHour), slog.Int("end_hour", s.cfg.EndHour))
	return nil
}

// Stop stops the scheduler started by Start.
func (s *Service) Stop() {
	if s.sched != nil {
		s.sched.Stop()
	}
}

// LogNotifier writes reminders to the log.
type LogNotifier struct {
	log *slog.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log.With("notifier", "log")}
}

func (n *LogNotifier) Notify(ctx context.Context, p domain.Profile, due int) error {
	n.log.InfoContext(ctx, "words due for review",
		slog.String("profile", p.Key),
		slog.String("name", p.Name),
		slog.Int("due", due),
	)
	return nil
}
