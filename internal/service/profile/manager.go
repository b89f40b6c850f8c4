// Package profile maps learner display names to isolated persisted bundles
// and keeps exactly one of them active per running instance.
package profile

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/vocabcoach/internal/domain"
	"github.com/heartmarshall/vocabcoach/internal/service/vocabulary"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type kvStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// ---------------------------------------------------------------------------
// Manager
// ---------------------------------------------------------------------------

// Config holds session manager settings.
type Config struct {
	PersistDebounce  time.Duration
	DefaultDailyGoal int
	SaveTimeout      time.Duration
}

// LoginOptions carries optional profile settings applied at login.
type LoginOptions struct {
	LevelTag  string
	DailyGoal int
}

// Manager owns the active-session slot and the debounced persist of the
// active profile's bundle.
//
// All reads and writes of the key-value store happen under mu, so a slow
// earlier write can never land after a later one.
type Manager struct {
	kv    kvStore
	store *vocabulary.Store
	clock clockwork.Clock
	log   *slog.Logger
	cfg   Config

	mu     sync.Mutex
	active *domain.Profile
	gen    uint64 // bumped on every session change; stale timers compare against it
	timer  clockwork.Timer
	dirty  bool
	saved  uint64 // store revision last written or loaded
}

// NewManager creates a Manager and subscribes it to store changes.
func NewManager(log *slog.Logger, kv kvStore, store *vocabulary.Store, clock clockwork.Clock, cfg Config) *Manager {
	if cfg.PersistDebounce <= 0 {
		cfg.PersistDebounce = time.Second
	}
	if cfg.SaveTimeout <= 0 {
		cfg.SaveTimeout = 10 * time.Second
	}
	m := &Manager{
		kv:    kv,
		store: store,
		clock: clock,
		log:   log.With("service", "profile"),
		cfg:   cfg,
	}
	store.OnChange(m.RequestPersist)
	return m
}

// Active returns the current profile. ok is false when no session is active.
func (m *Manager) Active() (domain.Profile, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return domain.Profile{}, false
	}
	return *m.active, true
}

// Login activates the profile for name, closing any active session first.
// A missing bundle starts an empty profile; a corrupt one is quarantined and
// replaced by an empty profile.
func (m *Manager) Login(ctx context.Context, name string, opts LoginOptions) (domain.Profile, error) {
	display := domain.DisplayName(name)
	key := domain.NormalizeProfileName(name)
	if key == "" {
		return domain.Profile{}, domain.NewValidationError("name", "required")
	}
	if opts.DailyGoal < 0 {
		return domain.Profile{}, domain.NewValidationError("daily_goal", "must be >= 0")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active != nil {
		if err := m.flushLocked(ctx); err != nil {
			return domain.Profile{}, fmt.Errorf("close session %s: %w", m.active.Key, err)
		}
		m.closeLocked()
	}

	b, found, corrupt, err := m.loadLocked(ctx, key)
	if err != nil {
		return domain.Profile{}, err
	}

	now := m.clock.Now()
	// A quarantined key keeps its bytes until the learner changes something.
	write := !found && !corrupt
	if !found {
		b = domain.Bundle{
			Profile: domain.Profile{
				Key:       key,
				Name:      display,
				Avatar:    domain.AvatarURL(display),
				DailyGoal: m.cfg.DefaultDailyGoal,
				CreatedAt: now,
			},
			UpdatedAt: now,
		}
	}
	if opts.LevelTag != "" && opts.LevelTag != b.Profile.LevelTag {
		b.Profile.LevelTag = opts.LevelTag
		write = true
	}
	if opts.DailyGoal > 0 && opts.DailyGoal != b.Profile.DailyGoal {
		b.Profile.DailyGoal = opts.DailyGoal
		write = true
	}
	if write && found {
		b.UpdatedAt = now
	}

	m.store.Hydrate(b)
	if write {
		if err := m.writeBundle(ctx, b); err != nil {
			m.store.Reset()
			return domain.Profile{}, err
		}
	}
	m.saved = m.store.Revision()

	ptr, err := encodeSession(domain.SessionPointer{Key: key, Name: b.Profile.Name, LoggedInAt: now})
	if err != nil {
		m.store.Reset()
		return domain.Profile{}, err
	}
	if err := m.kv.Put(ctx, sessionKey, ptr); err != nil {
		m.store.Reset()
		return domain.Profile{}, fmt.Errorf("write session pointer: %w", err)
	}

	p := b.Profile
	m.active = &p
	m.gen++
	m.log.InfoContext(ctx, "profile logged in", slog.String("profile", key), slog.Bool("new", !found),
		slog.Int("records", len(b.Vocabulary)))
	return p, nil
}

// Logout flushes pending changes, clears the session pointer and resets
// in-memory state, strictly in that order. On a failed flush the session
// stays active so nothing is lost.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return nil
	}
	key := m.active.Key
	if err := m.flushLocked(ctx); err != nil {
		return fmt.Errorf("flush %s: %w", key, err)
	}
	if err := m.kv.Delete(ctx, sessionKey); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("clear session pointer: %w", err)
	}
	m.closeLocked()

	m.log.InfoContext(ctx, "profile logged out", slog.String("profile", key))
	return nil
}

// Resume restores the session recorded in the pointer slot. It returns
// domain.ErrNoSession when there is nothing to resume.
func (m *Manager) Resume(ctx context.Context) (domain.Profile, error) {
	if p, ok := m.Active(); ok {
		return p, nil
	}

	data, err := m.kv.Get(ctx, sessionKey)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Profile{}, domain.ErrNoSession
	}
	if err != nil {
		return domain.Profile{}, fmt.Errorf("read session pointer: %w", err)
	}

	ptr, err := decodeSession(data)
	if err != nil {
		m.log.WarnContext(ctx, "discarding unreadable session pointer", slog.String("error", err.Error()))
		if delErr := m.kv.Delete(ctx, sessionKey); delErr != nil && !errors.Is(delErr, domain.ErrNotFound) {
			m.log.ErrorContext(ctx, "delete session pointer", slog.String("error", delErr.Error()))
		}
		return domain.Profile{}, domain.ErrNoSession
	}

	name := ptr.Name
	if name == "" {
		name = ptr.Key
	}
	return m.Login(ctx, name, LoginOptions{})
}

// Persist writes the active bundle now. Calling it again without an
// intervening mutation writes identical bytes.
func (m *Manager) Persist(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return domain.ErrNoSession
	}
	return m.flushLocked(ctx)
}

// Flush writes the active bundle when a persist is pending or the store
// changed since the last write, including silently recorded study time.
func (m *Manager) Flush(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil || (!m.dirty && m.store.Revision() == m.saved) {
		return nil
	}
	return m.flushLocked(ctx)
}

// RequestPersist schedules a debounced persist. Repeated requests within the
// debounce window collapse into one write of the latest state.
func (m *Manager) RequestPersist() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return
	}
	m.dirty = true
	if m.timer != nil {
		m.timer.Stop()
	}
	gen := m.gen
	m.timer = m.clock.AfterFunc(m.cfg.PersistDebounce, func() { m.fire(gen) })
}

func (m *Manager) fire(gen uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), m.cfg.SaveTimeout)
	defer cancel()

	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.gen || m.active == nil || !m.dirty {
		return
	}
	if err := m.persistLocked(ctx); err != nil {
		m.log.ErrorContext(ctx, "debounced persist failed", slog.String("profile", m.active.Key),
			slog.String("error", err.Error()))
	}
}

// flushLocked cancels the pending timer and writes the current snapshot.
func (m *Manager) flushLocked(ctx context.Context) error {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	return m.persistLocked(ctx)
}

func (m *Manager) persistLocked(ctx context.Context) error {
	rev := m.store.Revision()
	if err := m.writeBundle(ctx, m.store.Snapshot()); err != nil {
		return err
	}
	m.dirty = false
	m.saved = rev
	return nil
}

func (m *Manager) closeLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.store.Reset()
	m.active = nil
	m.dirty = false
	m.gen++
}

func (m *Manager) writeBundle(ctx context.Context, b domain.Bundle) error {
	data, err := encodeBundle(b)
	if err != nil {
		return err
	}
	if err := m.kv.Put(ctx, ProfileKey(b.Profile.Key), data); err != nil {
		return fmt.Errorf("write profile %s: %w", b.Profile.Key, err)
	}
	return nil
}

// loadLocked reads the bundle for key. found is false for a missing or
// corrupt bundle; corrupt bytes are copied to a quarantine key first and
// reported through corrupt.
func (m *Manager) loadLocked(ctx context.Context, key string) (b domain.Bundle, found, corrupt bool, err error) {
	data, err := m.kv.Get(ctx, ProfileKey(key))
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Bundle{}, false, false, nil
	}
	if err != nil {
		return domain.Bundle{}, false, false, fmt.Errorf("read profile %s: %w", key, err)
	}

	b, err = decodeBundle(data)
	if err != nil {
		qk := quarantineKey(key, m.clock.Now())
		m.log.WarnContext(ctx, "corrupt profile bundle, starting empty",
			slog.String("profile", key), slog.String("quarantine", qk), slog.String("error", err.Error()))
		if err := m.kv.Put(ctx, qk, data); err != nil {
			return domain.Bundle{}, false, false, fmt.Errorf("quarantine profile %s: %w", key, err)
		}
		return domain.Bundle{}, false, true, nil
	}
	b.Profile.Key = key
	return b, true, false, nil
}

// ListKnownProfiles returns a picker row for every persisted profile, most
// recently updated first. Unreadable bundles are skipped.
func (m *Manager) ListKnownProfiles(ctx context.Context) ([]domain.ProfileSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys, err := m.kv.Keys(ctx, profileKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	out := make([]domain.ProfileSummary, 0, len(keys))
	for _, sk := range keys {
		key, ok := profileKeyFromStorage(sk)
		if !ok {
			continue
		}

		var b domain.Bundle
		if m.active != nil && m.active.Key == key {
			b = m.store.Snapshot()
		} else {
			data, err := m.kv.Get(ctx, sk)
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("read profile %s: %w", key, err)
			}
			if b, err = decodeBundle(data); err != nil {
				m.log.WarnContext(ctx, "skipping unreadable profile", slog.String("profile", key),
					slog.String("error", err.Error()))
				continue
			}
		}
		out = append(out, summarize(key, b))
	}

	slices.SortFunc(out, func(a, b domain.ProfileSummary) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return out, nil
}

func summarize(key string, b domain.Bundle) domain.ProfileSummary {
	name := b.Profile.Name
	if name == "" {
		name = key
	}
	avatar := b.Profile.Avatar
	if avatar == "" {
		avatar = domain.AvatarURL(name)
	}
	return domain.ProfileSummary{
		Key:          key,
		Name:         name,
		Avatar:       avatar,
		LevelTag:     b.Profile.LevelTag,
		TotalLearned: b.Stats.TotalLearned,
		Streak:       b.Stats.Streak,
		UpdatedAt:    b.UpdatedAt,
	}
}
