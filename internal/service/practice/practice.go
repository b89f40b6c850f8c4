// Package practice builds the mini-game rounds played over the learner's
// words: pair matching, letter unscrambling and spelling from a definition.
//
// Rounds are plain values. Nothing here touches the store or the scheduler;
// practice results never move a record's schedule.
package practice

import (
	"math/rand/v2"
	"strings"

	"github.com/samber/lo"

	"github.com/heartmarshall/vocabcoach/internal/domain"
)

const (
	MinMatchWords      = 4
	MaxMatchWords      = 6
	MaxUnscrambleWords = 8
	MaxSpellingWords   = 10

	UnscramblePoints = 15
	SpellingPoints   = 10
)

// CardKind tells the two faces of a match pair apart.
type CardKind string

const (
	CardWord    CardKind = "word"
	CardMeaning CardKind = "meaning"
)

// Card is one face-down tile of a match round.
type Card struct {
	ID      string   `json:"id"`
	Kind    CardKind `json:"kind"`
	Content string   `json:"content"`
	MatchID string   `json:"matchId"`
}

// MatchRound pairs each word with its meaning on shuffled cards.
type MatchRound struct {
	Cards []Card `json:"cards"`
	Pairs int    `json:"pairs"`
}

// IsPair reports whether the two card ids are the two faces of one record.
func (m MatchRound) IsPair(a, b string) bool {
	if a == b {
		return false
	}
	var ca, cb *Card
	for i := range m.Cards {
		switch m.Cards[i].ID {
		case a:
			ca = &m.Cards[i]
		case b:
			cb = &m.Cards[i]
		}
	}
	return ca != nil && cb != nil && ca.MatchID == cb.MatchID && ca.Kind != cb.Kind
}

// Challenge is one prompt of an unscramble or spelling round.
type Challenge struct {
	RecordID string `json:"recordId"`
	Prompt   string `json:"prompt"`
	Hint     string `json:"hint,omitempty"`
	Answer   string `json:"answer"`
}

// NewMatchRound picks up to MaxMatchWords records and lays out a word card
// and a meaning card for each. The translated definition is preferred as
// the meaning; records without any meaning are skipped.
func NewMatchRound(records []domain.VocabularyRecord, rng *rand.Rand) (MatchRound, error) {
	usable := lo.Filter(records, func(r domain.VocabularyRecord, _ int) bool {
		return meaning(r) != "" && strings.TrimSpace(r.Word) != ""
	})
	if len(usable) < MinMatchWords {
		return MatchRound{}, domain.NewValidationError("records", "at least 4 words are needed for a match round")
	}

	picked := pick(usable, MaxMatchWords, rng)
	cards := make([]Card, 0, 2*len(picked))
	for _, r := range picked {
		cards = append(cards,
			Card{ID: "word-" + r.ID, Kind: CardWord, Content: r.Word, MatchID: r.ID},
			Card{ID: "mean-" + r.ID, Kind: CardMeaning, Content: meaning(r), MatchID: r.ID},
		)
	}
	rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })

	return MatchRound{Cards: cards, Pairs: len(picked)}, nil
}

// UnscrambleRound picks up to MaxUnscrambleWords records and shuffles the
// upper-cased letters of each word.
func UnscrambleRound(records []domain.VocabularyRecord, rng *rand.Rand) []Challenge {
	picked := pick(withWord(records), MaxUnscrambleWords, rng)
	return lo.Map(picked, func(r domain.VocabularyRecord, _ int) Challenge {
		word := strings.ToUpper(strings.TrimSpace(r.Word))
		return Challenge{
			RecordID: r.ID,
			Prompt:   scramble(word, rng),
			Hint:     meaning(r),
			Answer:   word,
		}
	})
}

// SpellingRound picks up to MaxSpellingWords records; the learner hears or
// reads the definition and types the word.
func SpellingRound(records []domain.VocabularyRecord, rng *rand.Rand) []Challenge {
	picked := pick(withWord(records), MaxSpellingWords, rng)
	return lo.Map(picked, func(r domain.VocabularyRecord, _ int) Challenge {
		return Challenge{
			RecordID: r.ID,
			Prompt:   r.Definition,
			Hint:     r.Phonetic,
			Answer:   strings.TrimSpace(r.Word),
		}
	})
}

// CheckAnswer compares a typed answer with the target, ignoring case and
// surrounding whitespace.
func CheckAnswer(answer, target string) bool {
	a := strings.TrimSpace(answer)
	if a == "" {
		return false
	}
	return strings.EqualFold(a, strings.TrimSpace(target))
}

func meaning(r domain.VocabularyRecord) string {
	if m := strings.TrimSpace(r.TranslatedDefinition); m != "" {
		return m
	}
	return strings.TrimSpace(r.Definition)
}

func withWord(records []domain.VocabularyRecord) []domain.VocabularyRecord {
	return lo.Filter(records, func(r domain.VocabularyRecord, _ int) bool {
		return strings.TrimSpace(r.Word) != ""
	})
}

// pick returns up to n records in random order without modifying records.
func pick(records []domain.VocabularyRecord, n int, rng *rand.Rand) []domain.VocabularyRecord {
	out := make([]domain.VocabularyRecord, len(records))
	copy(out, records)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// scramble shuffles the letters of word. Words of two or more distinct
// letters never come back unchanged.
func scramble(word string, rng *rand.Rand) string {
	letters := []rune(word)
	if len(lo.Uniq(letters)) < 2 {
		return word
	}
	for {
		rng.Shuffle(len(letters), func(i, j int) { letters[i], letters[j] = letters[j], letters[i] })
		if s := string(letters); s != word {
			return s
		}
	}
}
