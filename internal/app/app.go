package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/vocabcoach/internal/adapter/provider/llm"
	"github.com/heartmarshall/vocabcoach/internal/config"
	"github.com/heartmarshall/vocabcoach/internal/domain"
	"github.com/heartmarshall/vocabcoach/internal/service/profile"
	"github.com/heartmarshall/vocabcoach/internal/service/reminder"
	"github.com/heartmarshall/vocabcoach/internal/service/srs"
	"github.com/heartmarshall/vocabcoach/internal/service/study"
	"github.com/heartmarshall/vocabcoach/internal/service/vocabulary"
	"github.com/heartmarshall/vocabcoach/internal/transport/middleware"
	"github.com/heartmarshall/vocabcoach/internal/transport/rest"
)

// Generator modes reported by health checks.
const (
	GeneratorOnline  = "online"
	GeneratorOffline = "offline"
)

// Core holds the wired services shared by the server and the CLI.
type Core struct {
	Clock         clockwork.Clock
	Store         *vocabulary.Store
	Sessions      *profile.Manager
	Study         *study.Service
	GeneratorMode string
}

// NewCore wires the vocabulary store, scheduler, session manager and study
// controller over kv. An empty LLM API key selects the offline generator.
func NewCore(log *slog.Logger, cfg *config.Config, kv profileKV, clock clockwork.Clock) *Core {
	store := vocabulary.NewStore(clock)
	sessions := profile.NewManager(log, kv, store, clock, profile.Config{
		PersistDebounce:  cfg.Profile.PersistDebounce,
		DefaultDailyGoal: cfg.Profile.DefaultDailyGoal,
		SaveTimeout:      cfg.Profile.SaveTimeout,
	})

	var gen study.Generator = llm.Offline{}
	mode := GeneratorOffline
	if cfg.LLM.APIKey != "" {
		gen = llm.New(log, cfg.LLM)
		mode = GeneratorOnline
	}

	svc := study.NewService(log, store, srs.NewScheduler(cfg.SRS.Intervals), gen, sessions, clock, study.Config{
		Location:        cfg.Study.Location,
		TimerCheckpoint: cfg.Study.TimerCheckpoint,
		MinQuizWords:    cfg.Study.MinQuizWords,
		MaxQuizWords:    cfg.Study.MaxQuizWords,
		MaxBatchSize:    cfg.Study.MaxBatchSize,
		MaxPassageWords: cfg.Study.MaxPassageWords,
	})

	return &Core{
		Clock:         clock,
		Store:         store,
		Sessions:      sessions,
		Study:         svc,
		GeneratorMode: mode,
	}
}

type profileKV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// NewHandler builds the HTTP handler: the REST routes behind the middleware
// chain, with generator routes rate limited per profile.
func NewHandler(log *slog.Logger, cfg *config.Config, core *Core, storage *Storage, limiter *middleware.RateLimiter) http.Handler {
	router := rest.NewRouter(rest.Handlers{
		Health: rest.NewHealthHandler(storage.KV, core.Sessions, core.Clock, rest.HealthInfo{
			Backend:   storage.Backend,
			Generator: core.GeneratorMode,
			Version:   BuildVersion(),
		}),
		Session:    rest.NewSessionHandler(core.Sessions, log),
		Study:      rest.NewStudyHandler(core.Study, core.Clock, log),
		Practice:   rest.NewPracticeHandler(core.Study, log),
		Generation: limiter.Limit(cfg.LLM.RequestsPerMinute),
	})

	return middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(log),
		middleware.ActiveProfile(core.Sessions),
		middleware.Logger(log),
		middleware.CORS(cfg.CORS),
	)(router)
}

// Run is the server entry point. It loads configuration, opens storage,
// migrates legacy state, resumes the last session and serves HTTP until ctx
// is cancelled. The active bundle is flushed before Run returns.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("storage", cfg.Storage.Backend),
	)

	storage, err := OpenStorage(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer storage.Close()

	clock := clockwork.NewRealClock()

	if _, err := profile.NewMigrator(logger, storage.KV, storage.Tx, clock).Run(ctx); err != nil {
		return fmt.Errorf("migrate legacy profiles: %w", err)
	}

	core := NewCore(logger, cfg, storage.KV, clock)
	if p, err := core.Sessions.Resume(ctx); err == nil {
		logger.Info("session resumed", slog.String("profile", p.Key))
	} else if !errors.Is(err, domain.ErrNoSession) {
		return fmt.Errorf("resume session: %w", err)
	}

	limiter := middleware.NewRateLimiter(clock, time.Minute)
	defer limiter.Stop()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      NewHandler(logger, cfg, core, storage, limiter),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Reminder.Enabled {
		reminders := reminder.NewService(logger, core.Sessions, core.Study, reminder.NewLogNotifier(logger), clock, reminder.Config{
			Every:     cfg.Reminder.Every,
			StartHour: cfg.Reminder.StartHour,
			EndHour:   cfg.Reminder.EndHour,
			Location:  core.Study.Location(),
		})
		if err := reminders.Start(gctx); err != nil {
			return err
		}
		defer reminders.Stop()
	}

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return core.Study.RunTimer(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		var errs []error
		if err := srv.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("http shutdown: %w", err))
		}
		if err := core.Sessions.Flush(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("flush profile: %w", err))
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("stopped")
	return nil
}
