package rest

import (
	"time"

	"github.com/samber/lo"

	"github.com/heartmarshall/vocabcoach/internal/domain"
)

// Domain types carry no JSON tags; everything on the wire goes through the
// response types below.

type rootAnalysisResponse struct {
	Root        string `json:"root"`
	Prefix      string `json:"prefix,omitempty"`
	Suffix      string `json:"suffix,omitempty"`
	Explanation string `json:"explanation,omitempty"`
}

type recordResponse struct {
	ID                   string                `json:"id"`
	Word                 string                `json:"word"`
	Definition           string                `json:"definition"`
	TranslatedDefinition string                `json:"translatedDefinition,omitempty"`
	Example              string                `json:"example,omitempty"`
	Phonetic             string                `json:"phonetic,omitempty"`
	Topic                string                `json:"topic,omitempty"`
	LevelTag             string                `json:"levelTag,omitempty"`
	Synonyms             []string              `json:"synonyms,omitempty"`
	Antonyms             []string              `json:"antonyms,omitempty"`
	Paraphrases          []string              `json:"paraphrases,omitempty"`
	MnemonicHint         string                `json:"mnemonicHint,omitempty"`
	RootAnalysis         *rootAnalysisResponse `json:"rootAnalysis,omitempty"`
	LearnedAt            time.Time             `json:"learnedAt"`
	ReviewCount          int                   `json:"reviewCount"`
	SRSLevel             int                   `json:"srsLevel"`
	Mastered             bool                  `json:"mastered"`
	NextReviewAt         time.Time             `json:"nextReviewAt"`
	ReviewTag            string                `json:"reviewTag,omitempty"`
}

func toRecordResponse(r domain.VocabularyRecord, now time.Time) recordResponse {
	out := recordResponse{
		ID:                   r.ID,
		Word:                 r.Word,
		Definition:           r.Definition,
		TranslatedDefinition: r.TranslatedDefinition,
		Example:              r.Example,
		Phonetic:             r.Phonetic,
		Topic:                r.Topic,
		LevelTag:             r.LevelTag,
		Synonyms:             r.Synonyms,
		Antonyms:             r.Antonyms,
		Paraphrases:          r.Paraphrases,
		MnemonicHint:         r.MnemonicHint,
		LearnedAt:            r.LearnedAt,
		ReviewCount:          r.ReviewCount,
		SRSLevel:             r.SRSLevel,
		Mastered:             r.IsMastered(),
		NextReviewAt:         r.NextReviewAt,
		ReviewTag:            r.ReviewTag(now),
	}
	if r.RootAnalysis != nil {
		out.RootAnalysis = &rootAnalysisResponse{
			Root:        r.RootAnalysis.Root,
			Prefix:      r.RootAnalysis.Prefix,
			Suffix:      r.RootAnalysis.Suffix,
			Explanation: r.RootAnalysis.Explanation,
		}
	}
	return out
}

func toRecordResponses(records []domain.VocabularyRecord, now time.Time) []recordResponse {
	return lo.Map(records, func(r domain.VocabularyRecord, _ int) recordResponse {
		return toRecordResponse(r, now)
	})
}

type profileResponse struct {
	Key       string    `json:"key"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	LevelTag  string    `json:"levelTag,omitempty"`
	DailyGoal int       `json:"dailyGoal"`
	CreatedAt time.Time `json:"createdAt"`
}

func toProfileResponse(p domain.Profile) profileResponse {
	return profileResponse{
		Key:       p.Key,
		Name:      p.Name,
		Avatar:    p.Avatar,
		LevelTag:  p.LevelTag,
		DailyGoal: p.DailyGoal,
		CreatedAt: p.CreatedAt,
	}
}

type profileSummaryResponse struct {
	Key          string    `json:"key"`
	Name         string    `json:"name"`
	Avatar       string    `json:"avatar"`
	LevelTag     string    `json:"levelTag,omitempty"`
	TotalLearned int       `json:"totalLearned"`
	Streak       int       `json:"streak"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type dayHistoryResponse struct {
	Date    string `json:"date"`
	Seconds int    `json:"seconds"`
}

func toHistory(h []domain.DayHistory) []dayHistoryResponse {
	return lo.Map(h, func(d domain.DayHistory, _ int) dayHistoryResponse {
		return dayHistoryResponse{Date: d.Date, Seconds: d.Seconds}
	})
}

type statsResponse struct {
	TotalLearned  int                  `json:"totalLearned"`
	CurrentDay    int                  `json:"currentDay"`
	Streak        int                  `json:"streak"`
	LastStudyDate string               `json:"lastStudyDate,omitempty"`
	TotalSeconds  int                  `json:"totalSeconds"`
	History       []dayHistoryResponse `json:"history"`
	QuizScore     int                  `json:"quizScore"`
	BestQuizScore int                  `json:"bestQuizScore"`
}

func toStatsResponse(s domain.StudyStats) statsResponse {
	return statsResponse{
		TotalLearned:  s.TotalLearned,
		CurrentDay:    s.CurrentDay,
		Streak:        s.Streak,
		LastStudyDate: s.LastStudyDate,
		TotalSeconds:  s.TotalSeconds,
		History:       toHistory(s.History),
		QuizScore:     s.QuizScore,
		BestQuizScore: s.BestQuizScore,
	}
}

type badgeResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Unlocked bool   `json:"unlocked"`
}

type reminderResponse struct {
	RecordID string `json:"recordId"`
	Word     string `json:"word"`
	Tag      string `json:"tag"`
}

type dashboardResponse struct {
	Profile        profileResponse      `json:"profile"`
	TodayCount     int                  `json:"todayCount"`
	DueCount       int                  `json:"dueCount"`
	MasteredCount  int                  `json:"masteredCount"`
	TotalCount     int                  `json:"totalCount"`
	DailyGoal      int                  `json:"dailyGoal"`
	GoalProgress   int                  `json:"goalProgress"`
	Streak         int                  `json:"streak"`
	TotalLearned   int                  `json:"totalLearned"`
	TotalSeconds   int                  `json:"totalSeconds"`
	TodaySeconds   int                  `json:"todaySeconds"`
	CurrentDay     int                  `json:"currentDay"`
	QuizScore      int                  `json:"quizScore"`
	BestQuizScore  int                  `json:"bestQuizScore"`
	Badges         []badgeResponse      `json:"badges"`
	History        []dayHistoryResponse `json:"history"`
	ReviewReminder []reminderResponse   `json:"reviewReminder"`
}

func toDashboardResponse(d domain.Dashboard) dashboardResponse {
	return dashboardResponse{
		Profile:       toProfileResponse(d.Profile),
		TodayCount:    d.TodayCount,
		DueCount:      d.DueCount,
		MasteredCount: d.MasteredCount,
		TotalCount:    d.TotalCount,
		DailyGoal:     d.DailyGoal,
		GoalProgress:  d.GoalProgress,
		Streak:        d.Streak,
		TotalLearned:  d.TotalLearned,
		TotalSeconds:  d.TotalSeconds,
		TodaySeconds:  d.TodaySeconds,
		CurrentDay:    d.CurrentDay,
		QuizScore:     d.QuizScore,
		BestQuizScore: d.BestQuizScore,
		Badges: lo.Map(d.Badges, func(b domain.Badge, _ int) badgeResponse {
			return badgeResponse{ID: b.ID, Title: b.Title, Unlocked: b.Unlocked}
		}),
		History: toHistory(d.History),
		ReviewReminder: lo.Map(d.ReviewReminder, func(r domain.ReviewReminder, _ int) reminderResponse {
			return reminderResponse{RecordID: r.RecordID, Word: r.Word, Tag: r.Tag}
		}),
	}
}

type progressResponse struct {
	Cursor   int             `json:"cursor"`
	Total    int             `json:"total"`
	Finished bool            `json:"finished"`
	Record   *recordResponse `json:"record,omitempty"`
}

func toProgressResponse(p domain.ReviewProgress, now time.Time) progressResponse {
	out := progressResponse{Cursor: p.Cursor, Total: p.Total, Finished: p.Finished}
	if p.Record != nil {
		rec := toRecordResponse(*p.Record, now)
		out.Record = &rec
	}
	return out
}

type passageQuestionResponse struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

type passageResponse struct {
	ID          string                    `json:"id"`
	Title       string                    `json:"title"`
	Content     string                    `json:"content"`
	Translation string                    `json:"translation,omitempty"`
	Words       []string                  `json:"words,omitempty"`
	Questions   []passageQuestionResponse `json:"questions"`
}

func toPassageResponses(ps []domain.Passage) []passageResponse {
	return lo.Map(ps, func(p domain.Passage, _ int) passageResponse {
		return passageResponse{
			ID:          p.ID,
			Title:       p.Title,
			Content:     p.Content,
			Translation: p.Translation,
			Words:       p.Words,
			Questions: lo.Map(p.Questions, func(q domain.PassageQuestion, _ int) passageQuestionResponse {
				return passageQuestionResponse{Question: q.Question, Options: q.Options, Answer: q.Answer}
			}),
		}
	})
}

type quizQuestionResponse struct {
	ID            string   `json:"id"`
	Type          string   `json:"type"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
	RecordID      string   `json:"recordId,omitempty"`
}

func toQuizResponses(qs []domain.QuizQuestion) []quizQuestionResponse {
	return lo.Map(qs, func(q domain.QuizQuestion, _ int) quizQuestionResponse {
		return quizQuestionResponse{
			ID:            q.ID,
			Type:          string(q.Type),
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			RecordID:      q.RecordID,
		}
	})
}

type evaluationResponse struct {
	Score       int    `json:"score"`
	Feedback    string `json:"feedback"`
	Correction  string `json:"correction,omitempty"`
	Translation string `json:"translation,omitempty"`
}
