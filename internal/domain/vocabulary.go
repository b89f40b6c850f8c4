package domain

import "time"

// MasteredLevel is the terminal SRS level. A record at this level has left
// the review rotation.
const MasteredLevel = 4

// RootAnalysis breaks a word into its morphological parts.
type RootAnalysis struct {
	Root        string
	Prefix      string
	Suffix      string
	Explanation string
}

// VocabularyRecord is one memorized item owned by exactly one profile.
//
// Display content and classification are immutable after creation. Only
// ReviewCount, SRSLevel and NextReviewAt change, and only through the
// scheduler or an explicit mastery toggle.
type VocabularyRecord struct {
	ID                   string
	Word                 string
	Definition           string
	TranslatedDefinition string
	Example              string
	Phonetic             string
	Topic                string
	LevelTag             string
	Synonyms             []string
	Antonyms             []string
	Paraphrases          []string
	MnemonicHint         string
	RootAnalysis         *RootAnalysis

	LearnedAt    time.Time
	ReviewCount  int
	SRSLevel     int
	NextReviewAt time.Time
}

// IsMastered is derived from SRSLevel; there is no separate mastery flag.
func (r *VocabularyRecord) IsMastered() bool {
	return r.SRSLevel >= MasteredLevel
}

// IsDue reports whether the record should be surfaced for review at now.
// Mastered records are never due.
func (r *VocabularyRecord) IsDue(now time.Time) bool {
	return !r.IsMastered() && !r.NextReviewAt.After(now)
}

// DaysSinceLearned returns whole 24h periods elapsed since LearnedAt.
func (r *VocabularyRecord) DaysSinceLearned(now time.Time) int {
	if now.Before(r.LearnedAt) {
		return 0
	}
	return int(now.Sub(r.LearnedAt) / (24 * time.Hour))
}

// ReviewTag labels the classic 3/7/30-day checkpoints shown on a card.
// Empty for mastered records and for all other days.
func (r *VocabularyRecord) ReviewTag(now time.Time) string {
	if r.IsMastered() {
		return ""
	}
	switch r.DaysSinceLearned(now) {
	case 3:
		return "3-Day Review"
	case 7:
		return "Weekly Review"
	case 30:
		return "Monthly Review"
	}
	return ""
}

// Clone returns a deep copy so callers never share slices with the store.
func (r VocabularyRecord) Clone() VocabularyRecord {
	out := r
	out.Synonyms = cloneStrings(r.Synonyms)
	out.Antonyms = cloneStrings(r.Antonyms)
	out.Paraphrases = cloneStrings(r.Paraphrases)
	if r.RootAnalysis != nil {
		ra := *r.RootAnalysis
		out.RootAnalysis = &ra
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
