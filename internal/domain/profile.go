package domain

import (
	"net/url"
	"time"
)

const avatarBaseURL = "https://api.dicebear.com/7.x/adventurer/svg"

// Profile is the isolation boundary for one learner's state.
type Profile struct {
	Key       string // normalized name, storage identity
	Name      string // display name as first entered, trimmed
	Avatar    string
	LevelTag  string
	DailyGoal int
	CreatedAt time.Time
}

// AvatarURL derives a deterministic avatar for a display name.
func AvatarURL(name string) string {
	return avatarBaseURL + "?seed=" + url.QueryEscape(name)
}

// ProfileSummary is the profile picker row for one persisted profile.
type ProfileSummary struct {
	Key          string
	Name         string
	Avatar       string
	LevelTag     string
	TotalLearned int
	Streak       int
	UpdatedAt    time.Time
}

// SessionPointer is the single global "last active profile" slot.
type SessionPointer struct {
	Key        string
	Name       string
	LoggedInAt time.Time
}

// Bundle is everything persisted for one profile.
type Bundle struct {
	Profile     Profile
	Vocabulary  []VocabularyRecord
	Stats       StudyStats
	Passages    []Passage
	TodayCursor int
	UpdatedAt   time.Time
}

// Clone returns a deep copy of the bundle.
func (b Bundle) Clone() Bundle {
	out := b
	if b.Vocabulary != nil {
		out.Vocabulary = make([]VocabularyRecord, len(b.Vocabulary))
		for i, r := range b.Vocabulary {
			out.Vocabulary[i] = r.Clone()
		}
	}
	out.Stats = b.Stats.Clone()
	if b.Passages != nil {
		out.Passages = make([]Passage, len(b.Passages))
		for i, p := range b.Passages {
			out.Passages[i] = p.Clone()
		}
	}
	return out
}
