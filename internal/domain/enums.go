package domain

// ReviewOutcome is the learner's self-assessed recall quality for one review.
type ReviewOutcome string

const (
	ReviewOutcomeForgot     ReviewOutcome = "FORGOT"
	ReviewOutcomeHard       ReviewOutcome = "HARD"
	ReviewOutcomeRemembered ReviewOutcome = "REMEMBERED"
	ReviewOutcomeEasy       ReviewOutcome = "EASY"
)

func (o ReviewOutcome) String() string { return string(o) }

func (o ReviewOutcome) IsValid() bool {
	switch o {
	case ReviewOutcomeForgot, ReviewOutcomeHard, ReviewOutcomeRemembered, ReviewOutcomeEasy:
		return true
	}
	return false
}

// IsSuccess reports whether the outcome counts as a successful recall.
func (o ReviewOutcome) IsSuccess() bool {
	return o != ReviewOutcomeForgot
}

// ReviewSource selects which working set a review queue is built from.
type ReviewSource string

const (
	ReviewSourceDue   ReviewSource = "DUE"
	ReviewSourceToday ReviewSource = "TODAY"
)

func (s ReviewSource) IsValid() bool {
	return s == ReviewSourceDue || s == ReviewSourceToday
}

// QuestionType distinguishes quiz question formats.
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple-choice"
	QuestionTypeContextFill    QuestionType = "context-fill"
)
