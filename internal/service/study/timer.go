package study

import (
	"context"
	"time"

	"github.com/heartmarshall/vocabcoach/internal/domain"
)

// Tick accounts one second of foreground study at now. It does nothing when
// no profile is active or the timer is paused. Every TimerCheckpoint ticks a
// debounced persist is requested; individual ticks never persist.
func (s *Service) Tick(now time.Time) bool {
	p, ok := s.sessions.Active()
	if !ok {
		return false
	}

	s.mu.Lock()
	s.syncTimerLocked(p.Key)
	if s.paused {
		s.mu.Unlock()
		return false
	}
	s.mu.Unlock()

	if !s.store.RecordStudyTime(p.Key, domain.DateKey(now, s.cfg.Location), 1) {
		return false
	}

	s.mu.Lock()
	checkpoint := false
	if s.timerKey == p.Key {
		s.ticks++
		checkpoint = s.ticks%s.cfg.TimerCheckpoint == 0
	}
	s.mu.Unlock()

	if checkpoint {
		s.sessions.RequestPersist()
	}
	return true
}

// Pause stops time accounting for the active profile until Resume.
func (s *Service) Pause() {
	s.setPaused(true)
}

// Resume restarts time accounting.
func (s *Service) Resume() {
	s.setPaused(false)
}

func (s *Service) setPaused(paused bool) {
	p, _ := s.sessions.Active()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncTimerLocked(p.Key)
	s.paused = paused
}

// Paused reports whether the timer is paused for the active profile.
func (s *Service) Paused() bool {
	p, _ := s.sessions.Active()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timerKey == p.Key && s.paused
}

// syncTimerLocked starts a fresh timer state when the active profile differs
// from the one the timer last ran for.
func (s *Service) syncTimerLocked(key string) {
	if s.timerKey == key {
		return
	}
	s.timerKey = key
	s.paused = false
	s.ticks = 0
}

// RunTimer ticks once per second until ctx is done.
func (s *Service) RunTimer(ctx context.Context) error {
	ticker := s.clock.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.Chan():
			s.Tick(now)
		}
	}
}
