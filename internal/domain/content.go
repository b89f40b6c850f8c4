package domain

// Passage is a generated reading text built around learned words.
type Passage struct {
	ID          string
	Title       string
	Content     string
	Translation string
	Words       []string
	Questions   []PassageQuestion
}

// PassageQuestion is a comprehension check attached to a passage.
type PassageQuestion struct {
	Question string
	Options  []string
	Answer   string
}

// Clone returns a deep copy of the passage.
func (p Passage) Clone() Passage {
	out := p
	out.Words = cloneStrings(p.Words)
	if p.Questions != nil {
		out.Questions = make([]PassageQuestion, len(p.Questions))
		for i, q := range p.Questions {
			q.Options = cloneStrings(q.Options)
			out.Questions[i] = q
		}
	}
	return out
}

// QuizQuestion is one generated quiz item.
type QuizQuestion struct {
	ID            string
	Type          QuestionType
	Question      string
	Options       []string
	CorrectAnswer string
	Explanation   string
	RecordID      string
}

// SentenceEvaluation is the feedback for a learner-written sentence.
type SentenceEvaluation struct {
	Score       int // 0..10
	Feedback    string
	Correction  string
	Translation string
}
