package domain

import (
	"testing"
	"time"
)

func TestStudyStats_AddSeconds(t *testing.T) {
	t.Parallel()

	var s StudyStats
	s.AddSeconds("2026-02-13", 1)
	s.AddSeconds("2026-02-13", 1)
	s.AddSeconds("2026-02-14", 5)

	if s.TotalSeconds != 7 {
		t.Errorf("TotalSeconds = %d, want 7", s.TotalSeconds)
	}
	if len(s.History) != 2 {
		t.Fatalf("History len = %d, want 2", len(s.History))
	}
	if got := s.SecondsOn("2026-02-13"); got != 2 {
		t.Errorf("SecondsOn(13) = %d, want 2", got)
	}
	if got := s.SecondsOn("2026-01-01"); got != 0 {
		t.Errorf("SecondsOn(unknown) = %d, want 0", got)
	}
}

func TestStudyStats_RecentHistory(t *testing.T) {
	t.Parallel()

	s := StudyStats{History: []DayHistory{{Date: "2026-02-12", Seconds: 30}, {Date: "2026-01-01", Seconds: 99}}}
	now := time.Date(2026, 2, 13, 10, 0, 0, 0, time.UTC)

	got := s.RecentHistory(now, time.UTC, 3)
	want := []DayHistory{{"2026-02-11", 0}, {"2026-02-12", 30}, {"2026-02-13", 0}}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestStudyStats_CloneIsDeep(t *testing.T) {
	t.Parallel()

	s := StudyStats{History: []DayHistory{{Date: "2026-02-12", Seconds: 30}}}
	c := s.Clone()
	c.History[0].Seconds = 1

	if s.History[0].Seconds != 30 {
		t.Errorf("original history changed")
	}
}

func TestStudyStats_Badges(t *testing.T) {
	t.Parallel()

	s := StudyStats{TotalLearned: 50, Streak: 3}
	unlocked := map[string]bool{}
	for _, b := range s.Badges(10) {
		unlocked[b.ID] = b.Unlocked
	}

	for id, want := range map[string]bool{
		"first-steps":    true,
		"word-collector": true,
		"week-streak":    false,
		"master-10":      true,
		"hour-studied":   false,
	} {
		if unlocked[id] != want {
			t.Errorf("badge %s unlocked = %v, want %v", id, unlocked[id], want)
		}
	}
}
