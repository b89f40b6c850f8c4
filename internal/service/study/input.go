package study

import (
	"strings"

	"github.com/heartmarshall/vocabcoach/internal/domain"
	"github.com/heartmarshall/vocabcoach/internal/service/srs"
)

// BatchInput holds the parameters for generating a new batch.
type BatchInput struct {
	Topic string
	Count int
	Level string
}

// Validate checks all fields and collects all errors.
func (i *BatchInput) Validate(maxCount int) error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Topic) == "" {
		errs = append(errs, domain.FieldError{Field: "topic", Message: "required"})
	}
	if i.Count < 1 || i.Count > maxCount {
		errs = append(errs, domain.FieldError{Field: "count", Message: "out of range"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ReviewInput holds the parameters for starting a review session.
type ReviewInput struct {
	Source domain.ReviewSource
	Order  srs.Order
}

// Validate checks all fields and collects all errors.
func (i *ReviewInput) Validate() error {
	var errs []domain.FieldError

	if !i.Source.IsValid() {
		errs = append(errs, domain.FieldError{Field: "source", Message: "must be DUE or TODAY"})
	}
	if i.Order != srs.OrderInsertion && i.Order != srs.OrderUrgency {
		errs = append(errs, domain.FieldError{Field: "order", Message: "must be empty or urgency"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// OutcomeInput holds the parameters for recording one review answer.
type OutcomeInput struct {
	RecordID string
	Outcome  domain.ReviewOutcome
}

// Validate checks all fields and collects all errors.
func (i *OutcomeInput) Validate() error {
	var errs []domain.FieldError

	if i.RecordID == "" {
		errs = append(errs, domain.FieldError{Field: "record_id", Message: "required"})
	}
	if !i.Outcome.IsValid() {
		errs = append(errs, domain.FieldError{Field: "outcome", Message: "must be FORGOT, HARD, REMEMBERED, or EASY"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// SentenceInput holds a learner-written sentence for one record.
type SentenceInput struct {
	RecordID string
	Sentence string
}

// Validate checks all fields and collects all errors.
func (i *SentenceInput) Validate() error {
	var errs []domain.FieldError

	if i.RecordID == "" {
		errs = append(errs, domain.FieldError{Field: "record_id", Message: "required"})
	}
	sentence := strings.TrimSpace(i.Sentence)
	if sentence == "" {
		errs = append(errs, domain.FieldError{Field: "sentence", Message: "required"})
	} else if len(sentence) > 500 {
		errs = append(errs, domain.FieldError{Field: "sentence", Message: "max 500 characters"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListView selects a derived view of the vocabulary.
type ListView string

const (
	ListViewAll      ListView = "all"
	ListViewToday    ListView = "today"
	ListViewDue      ListView = "due"
	ListViewMastered ListView = "mastered"
)

// ListInput holds the parameters for listing words.
type ListInput struct {
	View  ListView
	Query string
}

// Validate checks all fields and collects all errors.
func (i *ListInput) Validate() error {
	switch i.View {
	case "", ListViewAll, ListViewToday, ListViewDue, ListViewMastered:
		return nil
	}
	return domain.NewValidationError("view", "must be all, today, due, or mastered")
}
