package llm

import (
	"strings"

	"github.com/heartmarshall/vocabcoach/internal/domain"
)

type rootDoc struct {
	Root        string `json:"root"`
	Prefix      string `json:"prefix"`
	Suffix      string `json:"suffix"`
	Explanation string `json:"explanation"`
}

type wordDoc struct {
	Word                 string   `json:"word"`
	Phonetic             string   `json:"ipa"`
	Definition           string   `json:"definition"`
	TranslatedDefinition string   `json:"vietnameseDefinition"`
	Example              string   `json:"example"`
	Level                string   `json:"level"`
	Topic                string   `json:"topic"`
	RootAnalysis         *rootDoc `json:"rootAnalysis"`
	Synonyms             []string `json:"synonyms"`
	Antonyms             []string `json:"antonyms"`
	Paraphrases          []string `json:"paraphrases"`
	MnemonicHint         string   `json:"mnemonicHint"`
}

func (d wordDoc) toDomain() domain.VocabularyRecord {
	r := domain.VocabularyRecord{
		Word:                 strings.TrimSpace(d.Word),
		Phonetic:             d.Phonetic,
		Definition:           d.Definition,
		TranslatedDefinition: d.TranslatedDefinition,
		Example:              d.Example,
		LevelTag:             d.Level,
		Topic:                d.Topic,
		Synonyms:             d.Synonyms,
		Antonyms:             d.Antonyms,
		Paraphrases:          d.Paraphrases,
		MnemonicHint:         d.MnemonicHint,
	}
	if d.RootAnalysis != nil && d.RootAnalysis.Root != "" {
		r.RootAnalysis = &domain.RootAnalysis{
			Root:        d.RootAnalysis.Root,
			Prefix:      d.RootAnalysis.Prefix,
			Suffix:      d.RootAnalysis.Suffix,
			Explanation: d.RootAnalysis.Explanation,
		}
	}
	return r
}

type passageQuestionDoc struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

type passageDoc struct {
	Title     string               `json:"title"`
	ContentEn string               `json:"contentEn"`
	ContentVi string               `json:"contentVi"`
	Questions []passageQuestionDoc `json:"questions"`
}

func (d passageDoc) toDomain() domain.Passage {
	p := domain.Passage{
		Title:       d.Title,
		Content:     d.ContentEn,
		Translation: d.ContentVi,
	}
	for _, q := range d.Questions {
		p.Questions = append(p.Questions, domain.PassageQuestion{
			Question: q.Question,
			Options:  q.Options,
			Answer:   q.Answer,
		})
	}
	return p
}

type quizDoc struct {
	Type          string   `json:"type"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	WordID        string   `json:"wordId"`
}

func (d quizDoc) toDomain() domain.QuizQuestion {
	t := domain.QuestionType(d.Type)
	if t != domain.QuestionTypeContextFill {
		t = domain.QuestionTypeMultipleChoice
	}
	return domain.QuizQuestion{
		Type:          t,
		Question:      d.Question,
		Options:       d.Options,
		CorrectAnswer: d.CorrectAnswer,
		Explanation:   d.Explanation,
		RecordID:      d.WordID,
	}
}

type evaluationDoc struct {
	Score       int    `json:"score"`
	Feedback    string `json:"feedback"`
	Correction  string `json:"correction"`
	Translation string `json:"translation"`
}
