package srs

import (
	"cmp"
	"slices"

	"github.com/heartmarshall/vocabcoach/internal/domain"
)

// Order selects how a review queue is arranged. The zero value keeps the
// insertion order of the due-set computation.
type Order string

const (
	OrderInsertion Order = ""
	OrderUrgency   Order = "urgency"
)

// ByUrgency orders records most overdue first, ties broken by lower level.
func ByUrgency(a, b domain.VocabularyRecord) int {
	if c := a.NextReviewAt.Compare(b.NextReviewAt); c != 0 {
		return c
	}
	return cmp.Compare(a.SRSLevel, b.SRSLevel)
}

// Arrange returns records in the requested order. The input is not modified.
func Arrange(records []domain.VocabularyRecord, order Order) []domain.VocabularyRecord {
	out := slices.Clone(records)
	if order == OrderUrgency {
		slices.SortStableFunc(out, ByUrgency)
	}
	return out
}
