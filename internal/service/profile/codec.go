package profile

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/heartmarshall/vocabcoach/internal/domain"
)

// bundleVersion is the current persisted schema version.
const bundleVersion = 2

// Persisted documents. Timestamps are milliseconds since the epoch, 0 for unset.

type bundleDoc struct {
	Version     int          `json:"version"`
	Profile     profileDoc   `json:"profile"`
	Vocabulary  []recordDoc  `json:"vocabulary"`
	Stats       statsDoc     `json:"stats"`
	Passages    []passageDoc `json:"passages"`
	TodayCursor int          `json:"todayCursor"`
	UpdatedAt   int64        `json:"updatedAt"`
}

type profileDoc struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar"`
	LevelTag  string `json:"levelTag"`
	DailyGoal int    `json:"dailyGoal"`
	CreatedAt int64  `json:"createdAt"`
}

type recordDoc struct {
	ID                   string   `json:"id"`
	Word                 string   `json:"word"`
	Phonetic             string   `json:"phonetic"`
	Definition           string   `json:"definition"`
	TranslatedDefinition string   `json:"translatedDefinition"`
	Example              string   `json:"example"`
	Topic                string   `json:"topic"`
	LevelTag             string   `json:"levelTag"`
	Synonyms             []string `json:"synonyms,omitempty"`
	Antonyms             []string `json:"antonyms,omitempty"`
	Paraphrases          []string `json:"paraphrases,omitempty"`
	MnemonicHint         string   `json:"mnemonicHint,omitempty"`
	RootAnalysis         *rootDoc `json:"rootAnalysis,omitempty"`
	LearnedAt            int64    `json:"learnedAt"`
	ReviewCount          int      `json:"reviewCount"`
	SRSLevel             int      `json:"srsLevel"`
	NextReviewAt         int64    `json:"nextReviewAt"`
}

type rootDoc struct {
	Root        string `json:"root"`
	Prefix      string `json:"prefix"`
	Suffix      string `json:"suffix"`
	Explanation string `json:"explanation"`
}

type statsDoc struct {
	TotalLearned  int          `json:"totalLearned"`
	CurrentDay    int          `json:"currentDay"`
	Streak        int          `json:"streak"`
	LastStudyDate string       `json:"lastStudyDate"`
	TotalSeconds  int          `json:"totalSeconds"`
	History       []historyDoc `json:"history"`
	QuizScore     int          `json:"quizScore"`
	BestQuizScore int          `json:"bestQuizScore"`
}

type historyDoc struct {
	Date    string `json:"date"`
	Seconds int    `json:"seconds"`
}

type passageDoc struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Content     string        `json:"contentEn"`
	Translation string        `json:"contentVi"`
	Words       []string      `json:"words,omitempty"`
	Questions   []questionDoc `json:"questions,omitempty"`
}

type questionDoc struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

type sessionDoc struct {
	Key        string `json:"key"`
	Name       string `json:"name"`
	LoggedInAt int64  `json:"loggedInAt"`
}

// ---------------------------------------------------------------------------
// Encode
// ---------------------------------------------------------------------------

func encodeBundle(b domain.Bundle) ([]byte, error) {
	doc := bundleDoc{
		Version: bundleVersion,
		Profile: profileDoc{
			Key:       b.Profile.Key,
			Name:      b.Profile.Name,
			Avatar:    b.Profile.Avatar,
			LevelTag:  b.Profile.LevelTag,
			DailyGoal: b.Profile.DailyGoal,
			CreatedAt: toMillis(b.Profile.CreatedAt),
		},
		Vocabulary:  make([]recordDoc, 0, len(b.Vocabulary)),
		Stats:       toStatsDoc(b.Stats),
		Passages:    make([]passageDoc, 0, len(b.Passages)),
		TodayCursor: b.TodayCursor,
		UpdatedAt:   toMillis(b.UpdatedAt),
	}
	for _, r := range b.Vocabulary {
		doc.Vocabulary = append(doc.Vocabulary, toRecordDoc(r))
	}
	for _, p := range b.Passages {
		doc.Passages = append(doc.Passages, toPassageDoc(p))
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal bundle: %w", err)
	}
	return data, nil
}

func toRecordDoc(r domain.VocabularyRecord) recordDoc {
	doc := recordDoc{
		ID:                   r.ID,
		Word:                 r.Word,
		Phonetic:             r.Phonetic,
		Definition:           r.Definition,
		TranslatedDefinition: r.TranslatedDefinition,
		Example:              r.Example,
		Topic:                r.Topic,
		LevelTag:             r.LevelTag,
		Synonyms:             r.Synonyms,
		Antonyms:             r.Antonyms,
		Paraphrases:          r.Paraphrases,
		MnemonicHint:         r.MnemonicHint,
		LearnedAt:            toMillis(r.LearnedAt),
		ReviewCount:          r.ReviewCount,
		SRSLevel:             r.SRSLevel,
		NextReviewAt:         toMillis(r.NextReviewAt),
	}
	if ra := r.RootAnalysis; ra != nil {
		doc.RootAnalysis = &rootDoc{Root: ra.Root, Prefix: ra.Prefix, Suffix: ra.Suffix, Explanation: ra.Explanation}
	}
	return doc
}

func toStatsDoc(s domain.StudyStats) statsDoc {
	doc := statsDoc{
		TotalLearned:  s.TotalLearned,
		CurrentDay:    s.CurrentDay,
		Streak:        s.Streak,
		LastStudyDate: s.LastStudyDate,
		TotalSeconds:  s.TotalSeconds,
		History:       make([]historyDoc, 0, len(s.History)),
		QuizScore:     s.QuizScore,
		BestQuizScore: s.BestQuizScore,
	}
	for _, h := range s.History {
		doc.History = append(doc.History, historyDoc{Date: h.Date, Seconds: h.Seconds})
	}
	return doc
}

func toPassageDoc(p domain.Passage) passageDoc {
	doc := passageDoc{
		ID:          p.ID,
		Title:       p.Title,
		Content:     p.Content,
		Translation: p.Translation,
		Words:       p.Words,
	}
	for _, q := range p.Questions {
		doc.Questions = append(doc.Questions, questionDoc{Question: q.Question, Options: q.Options, Answer: q.Answer})
	}
	return doc
}

// ---------------------------------------------------------------------------
// Decode
// ---------------------------------------------------------------------------

// decodeBundle parses a canonical bundle. Any failure is reported as
// domain.ErrCorruptState.
func decodeBundle(data []byte) (domain.Bundle, error) {
	var doc bundleDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.Bundle{}, fmt.Errorf("%w: %v", domain.ErrCorruptState, err)
	}
	if doc.Version != bundleVersion {
		return domain.Bundle{}, fmt.Errorf("%w: unsupported bundle version %d", domain.ErrCorruptState, doc.Version)
	}

	b := domain.Bundle{
		Profile: domain.Profile{
			Key:       doc.Profile.Key,
			Name:      doc.Profile.Name,
			Avatar:    doc.Profile.Avatar,
			LevelTag:  doc.Profile.LevelTag,
			DailyGoal: doc.Profile.DailyGoal,
			CreatedAt: fromMillis(doc.Profile.CreatedAt),
		},
		Stats: domain.StudyStats{
			TotalLearned:  max(0, doc.Stats.TotalLearned),
			CurrentDay:    doc.Stats.CurrentDay,
			Streak:        doc.Stats.Streak,
			LastStudyDate: doc.Stats.LastStudyDate,
			TotalSeconds:  doc.Stats.TotalSeconds,
			QuizScore:     doc.Stats.QuizScore,
			BestQuizScore: doc.Stats.BestQuizScore,
		},
		TodayCursor: max(0, doc.TodayCursor),
		UpdatedAt:   fromMillis(doc.UpdatedAt),
	}
	for _, h := range doc.Stats.History {
		b.Stats.History = append(b.Stats.History, domain.DayHistory{Date: h.Date, Seconds: h.Seconds})
	}
	for i, r := range doc.Vocabulary {
		if r.ID == "" {
			return domain.Bundle{}, fmt.Errorf("%w: record %d has no id", domain.ErrCorruptState, i)
		}
		b.Vocabulary = append(b.Vocabulary, fromRecordDoc(r))
	}
	for _, p := range doc.Passages {
		b.Passages = append(b.Passages, fromPassageDoc(p))
	}
	return b, nil
}

func fromRecordDoc(doc recordDoc) domain.VocabularyRecord {
	r := domain.VocabularyRecord{
		ID:                   doc.ID,
		Word:                 doc.Word,
		Phonetic:             doc.Phonetic,
		Definition:           doc.Definition,
		TranslatedDefinition: doc.TranslatedDefinition,
		Example:              doc.Example,
		Topic:                doc.Topic,
		LevelTag:             doc.LevelTag,
		Synonyms:             doc.Synonyms,
		Antonyms:             doc.Antonyms,
		Paraphrases:          doc.Paraphrases,
		MnemonicHint:         doc.MnemonicHint,
		LearnedAt:            fromMillis(doc.LearnedAt),
		ReviewCount:          max(0, doc.ReviewCount),
		SRSLevel:             clampLevel(doc.SRSLevel),
		NextReviewAt:         fromMillis(doc.NextReviewAt),
	}
	if ra := doc.RootAnalysis; ra != nil {
		r.RootAnalysis = &domain.RootAnalysis{Root: ra.Root, Prefix: ra.Prefix, Suffix: ra.Suffix, Explanation: ra.Explanation}
	}
	return r
}

func fromPassageDoc(doc passageDoc) domain.Passage {
	p := domain.Passage{
		ID:          doc.ID,
		Title:       doc.Title,
		Content:     doc.Content,
		Translation: doc.Translation,
		Words:       doc.Words,
	}
	for _, q := range doc.Questions {
		p.Questions = append(p.Questions, domain.PassageQuestion{Question: q.Question, Options: q.Options, Answer: q.Answer})
	}
	return p
}

func encodeSession(p domain.SessionPointer) ([]byte, error) {
	data, err := json.Marshal(sessionDoc{Key: p.Key, Name: p.Name, LoggedInAt: toMillis(p.LoggedInAt)})
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}
	return data, nil
}

func decodeSession(data []byte) (domain.SessionPointer, error) {
	var doc sessionDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.SessionPointer{}, fmt.Errorf("%w: %v", domain.ErrCorruptState, err)
	}
	if doc.Key == "" {
		return domain.SessionPointer{}, fmt.Errorf("%w: session pointer without key", domain.ErrCorruptState)
	}
	return domain.SessionPointer{Key: doc.Key, Name: doc.Name, LoggedInAt: fromMillis(doc.LoggedInAt)}, nil
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

func clampLevel(level int) int {
	return min(domain.MasteredLevel, max(0, level))
}
