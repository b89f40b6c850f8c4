package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMemory, BackendRedis:
	case BackendSQLite:
		if c.SQLite.Path == "" {
			return fmt.Errorf("sqlite.path is required for the sqlite backend")
		}
	case BackendPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for the postgres backend")
		}
	default:
		return fmt.Errorf("storage.backend must be one of memory, sqlite, postgres, redis (got %q)", c.Storage.Backend)
	}

	if c.Profile.PersistDebounce <= 0 {
		return fmt.Errorf("profile.persist_debounce must be > 0 (got %s)", c.Profile.PersistDebounce)
	}
	if c.Profile.QuarantineRetention < 0 {
		return fmt.Errorf("profile.quarantine_retention must be >= 0 (got %s)", c.Profile.QuarantineRetention)
	}
	if c.Profile.DefaultDailyGoal < 1 {
		return fmt.Errorf("profile.default_daily_goal must be >= 1 (got %d)", c.Profile.DefaultDailyGoal)
	}

	if err := c.Study.validate(); err != nil {
		return fmt.Errorf("study: %w", err)
	}
	if err := c.SRS.validate(); err != nil {
		return fmt.Errorf("srs: %w", err)
	}
	if err := c.Reminder.validate(); err != nil {
		return fmt.Errorf("reminder: %w", err)
	}

	return nil
}

func (s *StudyConfig) validate() error {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return fmt.Errorf("timezone %q: %w", s.Timezone, err)
	}
	s.Location = loc

	if s.TimerCheckpoint < 1 {
		return fmt.Errorf("timer_checkpoint must be >= 1 (got %d)", s.TimerCheckpoint)
	}
	if s.MinQuizWords < 1 || s.MaxQuizWords < s.MinQuizWords {
		return fmt.Errorf("quiz word bounds invalid (min %d, max %d)", s.MinQuizWords, s.MaxQuizWords)
	}
	if s.MaxBatchSize < 1 {
		return fmt.Errorf("max_batch_size must be >= 1 (got %d)", s.MaxBatchSize)
	}
	return nil
}

func (s *SRSConfig) validate() error {
	intervals, err := ParseIntervals(s.IntervalsRaw)
	if err != nil {
		return fmt.Errorf("intervals: %w", err)
	}
	if len(intervals) != 4 {
		return fmt.Errorf("intervals: want 4 values for levels 1..4, got %d", len(intervals))
	}
	for i := 1; i < len(intervals); i++ {
		if intervals[i] < intervals[i-1] {
			return fmt.Errorf("intervals must not decrease (%s after %s)", intervals[i], intervals[i-1])
		}
	}
	s.Intervals = intervals
	return nil
}

func (r *ReminderConfig) validate() error {
	if !r.Enabled {
		return nil
	}
	if r.Every < time.Minute {
		return fmt.Errorf("every must be at least 1m (got %s)", r.Every)
	}
	if r.StartHour < 0 || r.EndHour > 23 || r.StartHour > r.EndHour {
		return fmt.Errorf("hours must satisfy 0 <= start <= end <= 23 (got %d..%d)", r.StartHour, r.EndHour)
	}
	return nil
}

// ParseIntervals parses a comma-separated string of positive durations
// (e.g. "24h,72h") into a slice of time.Duration. An empty string returns a
// nil slice.
func ParseIntervals(raw string) ([]time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	out := make([]time.Duration, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		d, err := time.ParseDuration(p)
		if err != nil {
			return nil, fmt.Errorf("invalid duration %q: %w", p, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("duration %q must be positive", p)
		}
		out = append(out, d)
	}

	return out, nil
}
