package study

import (
	"context"

	"github.com/heartmarshall/vocabcoach/internal/domain"
)

// GetDashboard aggregates the active profile's progress for the home screen.
func (s *Service) GetDashboard(ctx context.Context) (domain.Dashboard, error) {
	p, err := s.requireSession()
	if err != nil {
		return domain.Dashboard{}, err
	}

	now := s.clock.Now()
	loc := s.cfg.Location
	dayStart := domain.DayStart(now, loc)
	all := s.store.All()
	stats := s.store.Stats()

	d := domain.Dashboard{
		Profile:       p,
		TodayCount:    len(s.store.Today(now, loc)),
		TotalCount:    len(all),
		DailyGoal:     p.DailyGoal,
		Streak:        stats.Streak,
		TotalLearned:  stats.TotalLearned,
		TotalSeconds:  stats.TotalSeconds,
		TodaySeconds:  stats.SecondsOn(domain.DateKey(now, loc)),
		CurrentDay:    stats.CurrentDay,
		QuizScore:     stats.QuizScore,
		BestQuizScore: stats.BestQuizScore,
		History:       stats.RecentHistory(now, loc, domain.HistoryDays),
	}

	learnedToday := 0
	for _, r := range all {
		switch {
		case r.IsMastered():
			d.MasteredCount++
		case r.IsDue(now):
			d.DueCount++
		}
		if !r.LearnedAt.Before(dayStart) {
			learnedToday++
		}
		if tag := r.ReviewTag(now); tag != "" {
			d.ReviewReminder = append(d.ReviewReminder, domain.ReviewReminder{RecordID: r.ID, Word: r.Word, Tag: tag})
		}
	}
	if p.DailyGoal > 0 {
		d.GoalProgress = min(100, learnedToday*100/p.DailyGoal)
	}
	d.Badges = stats.Badges(d.MasteredCount)
	return d, nil
}
