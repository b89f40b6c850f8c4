package study

import (
	"time"

	"github.com/heartmarshall/vocabcoach/internal/domain"
)

// UpdateStreak records study activity on the local calendar day of now and
// returns the resulting streak. Calling it again on the same day changes
// nothing.
func (s *Service) UpdateStreak(now time.Time) (int, error) {
	if _, err := s.requireSession(); err != nil {
		return 0, err
	}
	s.updateStreak(now)
	return s.store.Stats().Streak, nil
}

func (s *Service) updateStreak(now time.Time) {
	s.store.UpdateStats(func(st *domain.StudyStats) bool {
		return advanceStreak(st, now, s.cfg.Location)
	})
}

// advanceStreak applies the calendar-day rule: same day unchanged, the day
// after the last study day +1, any larger gap restarts at 1.
func advanceStreak(st *domain.StudyStats, now time.Time, loc *time.Location) bool {
	today := domain.DateKey(now, loc)
	switch st.LastStudyDate {
	case today:
		return false
	case domain.PreviousDateKey(now, loc):
		st.Streak++
	default:
		st.Streak = 1
	}
	st.LastStudyDate = today
	return true
}
