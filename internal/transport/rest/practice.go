package rest

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"net/http"

	"github.com/samber/lo"

	"github.com/heartmarshall/vocabcoach/internal/domain"
	"github.com/heartmarshall/vocabcoach/internal/service/practice"
	"github.com/heartmarshall/vocabcoach/internal/service/study"
)

type wordLister interface {
	ListWords(ctx context.Context, input study.ListInput) ([]domain.VocabularyRecord, error)
}

// PracticeHandler serves the mini-game rounds. Practice never changes a
// record's schedule.
type PracticeHandler struct {
	words  wordLister
	newRNG func() *rand.Rand
	log    *slog.Logger
}

// NewPracticeHandler creates a PracticeHandler.
func NewPracticeHandler(words wordLister, logger *slog.Logger) *PracticeHandler {
	return &PracticeHandler{
		words: words,
		newRNG: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
		log: logger.With("handler", "practice"),
	}
}

func (h *PracticeHandler) records(r *http.Request) ([]domain.VocabularyRecord, error) {
	view := study.ListView(r.URL.Query().Get("view"))
	if view == "" {
		view = study.ListViewAll
	}
	return h.words.ListWords(r.Context(), study.ListInput{View: view})
}

// Match handles GET /api/practice/match.
func (h *PracticeHandler) Match(w http.ResponseWriter, r *http.Request) {
	records, err := h.records(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	round, err := practice.NewMatchRound(records, h.newRNG())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, round)
}

// Unscramble handles GET /api/practice/unscramble.
func (h *PracticeHandler) Unscramble(w http.ResponseWriter, r *http.Request) {
	records, err := h.records(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, practice.UnscrambleRound(records, h.newRNG()))
}

// Spelling handles GET /api/practice/spelling.
func (h *PracticeHandler) Spelling(w http.ResponseWriter, r *http.Request) {
	records, err := h.records(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, practice.SpellingRound(records, h.newRNG()))
}

type checkRequest struct {
	Game     string `json:"game"`
	RecordID string `json:"recordId"`
	Answer   string `json:"answer"`
}

type checkResponse struct {
	Correct bool   `json:"correct"`
	Points  int    `json:"points"`
	Word    string `json:"word"`
}

// Check handles POST /api/practice/check for unscramble and spelling answers.
func (h *PracticeHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	var points int
	switch req.Game {
	case "unscramble":
		points = practice.UnscramblePoints
	case "spelling":
		points = practice.SpellingPoints
	default:
		handleError(h.log, w, r, domain.NewValidationError("game", "must be unscramble or spelling"))
		return
	}

	records, err := h.words.ListWords(r.Context(), study.ListInput{View: study.ListViewAll})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	rec, ok := lo.Find(records, func(rec domain.VocabularyRecord) bool { return rec.ID == req.RecordID })
	if !ok {
		handleError(h.log, w, r, domain.ErrNotFound)
		return
	}

	resp := checkResponse{Word: rec.Word}
	if practice.CheckAnswer(req.Answer, rec.Word) {
		resp.Correct = true
		resp.Points = points
	}
	writeJSON(w, http.StatusOK, resp)
}
