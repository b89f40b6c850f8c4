package domain

import (
	"time"
)

// HistoryDays is how many trailing calendar days the dashboard chart shows.
const HistoryDays = 14

// DayHistory holds foreground study time for one local calendar day.
type DayHistory struct {
	Date    string // YYYY-MM-DD in the learner's timezone
	Seconds int
}

// StudyStats is the per-profile aggregate kept next to the vocabulary.
type StudyStats struct {
	TotalLearned  int
	CurrentDay    int
	Streak        int
	LastStudyDate string // YYYY-MM-DD, empty before the first study day
	TotalSeconds  int
	History       []DayHistory
	QuizScore     int // cumulative points across quizzes
	BestQuizScore int // best single quiz
}

// Clone returns a deep copy of the stats.
func (s StudyStats) Clone() StudyStats {
	out := s
	if s.History != nil {
		out.History = make([]DayHistory, len(s.History))
		copy(out.History, s.History)
	}
	return out
}

// AddSeconds adds secs to the history entry for date, appending a new entry
// when the date is not yet present.
func (s *StudyStats) AddSeconds(date string, secs int) {
	s.TotalSeconds += secs
	for i := range s.History {
		if s.History[i].Date == date {
			s.History[i].Seconds += secs
			return
		}
	}
	s.History = append(s.History, DayHistory{Date: date, Seconds: secs})
}

// SecondsOn returns the recorded seconds for date.
func (s *StudyStats) SecondsOn(date string) int {
	for _, h := range s.History {
		if h.Date == date {
			return h.Seconds
		}
	}
	return 0
}

// RecentHistory returns the last n calendar days ending at today (inclusive),
// oldest first, with zero entries for days that have no recorded time.
func (s *StudyStats) RecentHistory(now time.Time, loc *time.Location, n int) []DayHistory {
	out := make([]DayHistory, 0, n)
	local := now.In(loc)
	for i := n - 1; i >= 0; i-- {
		date := local.AddDate(0, 0, -i).Format(DateLayout)
		out = append(out, DayHistory{Date: date, Seconds: s.SecondsOn(date)})
	}
	return out
}

// Badge is an achievement derived from stats. Badges are never stored.
type Badge struct {
	ID       string
	Title    string
	Unlocked bool
}

// Badges evaluates the achievement list against the stats.
func (s *StudyStats) Badges(masteredCount int) []Badge {
	return []Badge{
		{ID: "first-steps", Title: "First Steps", Unlocked: s.TotalLearned >= 1},
		{ID: "word-collector", Title: "Word Collector", Unlocked: s.TotalLearned >= 50},
		{ID: "week-streak", Title: "7-Day Streak", Unlocked: s.Streak >= 7},
		{ID: "master-10", Title: "Master of Ten", Unlocked: masteredCount >= 10},
		{ID: "hour-studied", Title: "One Hour In", Unlocked: s.TotalSeconds >= 3600},
		{ID: "quiz-ace", Title: "Quiz Ace", Unlocked: s.BestQuizScore >= 10},
	}
}

// Dashboard holds the aggregated "what to show now" view for the active profile.
type Dashboard struct {
	Profile        Profile
	TodayCount     int
	DueCount       int
	MasteredCount  int
	TotalCount     int
	DailyGoal      int
	GoalProgress   int // percent, capped at 100
	Streak         int
	TotalLearned   int
	TotalSeconds   int
	TodaySeconds   int
	CurrentDay     int
	QuizScore      int
	BestQuizScore  int
	Badges         []Badge
	History        []DayHistory
	ReviewReminder []ReviewReminder
}

// ReviewReminder is a record that hit one of the fixed review checkpoints today.
type ReviewReminder struct {
	RecordID string
	Word     string
	Tag      string
}

// ReviewProgress reports the state of a review queue after an action.
type ReviewProgress struct {
	Cursor   int
	Total    int
	Finished bool
	Record   *VocabularyRecord // record just reviewed, nil when nothing was reviewed
}
