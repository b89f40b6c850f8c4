package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/vocabcoach/internal/domain"
	"github.com/heartmarshall/vocabcoach/internal/service/srs"
	"github.com/heartmarshall/vocabcoach/internal/service/study"
)

// studyService defines the minimal interface needed by StudyHandler.
type studyService interface {
	StartNewBatch(ctx context.Context, input study.BatchInput) ([]domain.VocabularyRecord, error)
	AddWord(ctx context.Context, word string) (domain.VocabularyRecord, error)
	ListWords(ctx context.Context, input study.ListInput) ([]domain.VocabularyRecord, error)
	SetMastered(ctx context.Context, id string, mastered bool) (domain.VocabularyRecord, error)
	RemoveWord(ctx context.Context, id string) error
	MoveTodayCursor(ctx context.Context, i int) (int, error)

	StartReview(ctx context.Context, input study.ReviewInput) (study.ReviewQueue, error)
	CurrentReview() (domain.ReviewProgress, bool)
	RecordReviewOutcome(ctx context.Context, input study.OutcomeInput) (domain.ReviewProgress, error)
	EndReview()

	Pause()
	Resume()
	Paused() bool

	GetDashboard(ctx context.Context) (domain.Dashboard, error)
	GenerateQuiz(ctx context.Context) ([]domain.QuizQuestion, error)
	FinishQuiz(ctx context.Context, score int) (domain.StudyStats, error)
	GeneratePassages(ctx context.Context) ([]domain.Passage, error)
	Passages(ctx context.Context) ([]domain.Passage, error)
	EvaluateSentence(ctx context.Context, input study.SentenceInput) (domain.SentenceEvaluation, error)
	MotivationalMessage(ctx context.Context) (string, error)
}

// StudyHandler serves the study controller.
type StudyHandler struct {
	svc   studyService
	clock clockwork.Clock
	log   *slog.Logger
}

// NewStudyHandler creates a StudyHandler.
func NewStudyHandler(svc studyService, clock clockwork.Clock, logger *slog.Logger) *StudyHandler {
	return &StudyHandler{svc: svc, clock: clock, log: logger.With("handler", "study")}
}

// ---------------------------------------------------------------------------
// Words
// ---------------------------------------------------------------------------

// ListWords handles GET /api/words?view=all|today|due|mastered&q=.
func (h *StudyHandler) ListWords(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.ListWords(r.Context(), study.ListInput{
		View:  study.ListView(r.URL.Query().Get("view")),
		Query: r.URL.Query().Get("q"),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecordResponses(records, h.clock.Now()))
}

type addWordRequest struct {
	Word string `json:"word"`
}

// AddWord handles POST /api/words.
func (h *StudyHandler) AddWord(w http.ResponseWriter, r *http.Request) {
	var req addWordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	rec, err := h.svc.AddWord(r.Context(), req.Word)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRecordResponse(rec, h.clock.Now()))
}

// RemoveWord handles DELETE /api/words/{id}.
func (h *StudyHandler) RemoveWord(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RemoveWord(r.Context(), r.PathValue("id")); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type masteredRequest struct {
	Mastered bool `json:"mastered"`
}

// SetMastered handles PUT /api/words/{id}/mastered.
func (h *StudyHandler) SetMastered(w http.ResponseWriter, r *http.Request) {
	var req masteredRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	rec, err := h.svc.SetMastered(r.Context(), r.PathValue("id"), req.Mastered)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecordResponse(rec, h.clock.Now()))
}

type batchRequest struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
	Level string `json:"level"`
}

// StartNewBatch handles POST /api/batches.
func (h *StudyHandler) StartNewBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	records, err := h.svc.StartNewBatch(r.Context(), study.BatchInput{
		Topic: req.Topic,
		Count: req.Count,
		Level: req.Level,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRecordResponses(records, h.clock.Now()))
}

type cursorRequest struct {
	Index int `json:"index"`
}

// MoveTodayCursor handles PUT /api/today/cursor.
func (h *StudyHandler) MoveTodayCursor(w http.ResponseWriter, r *http.Request) {
	var req cursorRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	i, err := h.svc.MoveTodayCursor(r.Context(), req.Index)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cursorRequest{Index: i})
}

// ---------------------------------------------------------------------------
// Review
// ---------------------------------------------------------------------------

type startReviewRequest struct {
	Source string `json:"source"`
	Order  string `json:"order"`
}

type reviewQueueResponse struct {
	Records  []recordResponse `json:"records"`
	Progress progressResponse `json:"progress"`
}

// StartReview handles POST /api/review.
func (h *StudyHandler) StartReview(w http.ResponseWriter, r *http.Request) {
	req := startReviewRequest{Source: string(domain.ReviewSourceDue)}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	q, err := h.svc.StartReview(r.Context(), study.ReviewInput{
		Source: domain.ReviewSource(req.Source),
		Order:  srs.Order(req.Order),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	now := h.clock.Now()
	writeJSON(w, http.StatusOK, reviewQueueResponse{
		Records:  toRecordResponses(q.Records, now),
		Progress: toProgressResponse(q.Progress, now),
	})
}

// CurrentReview handles GET /api/review.
func (h *StudyHandler) CurrentReview(w http.ResponseWriter, r *http.Request) {
	p, ok := h.svc.CurrentReview()
	if !ok {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "no review in progress")
		return
	}
	writeJSON(w, http.StatusOK, toProgressResponse(p, h.clock.Now()))
}

type outcomeRequest struct {
	RecordID string `json:"recordId"`
	Outcome  string `json:"outcome"`
}

// RecordOutcome handles POST /api/review/outcome.
func (h *StudyHandler) RecordOutcome(w http.ResponseWriter, r *http.Request) {
	var req outcomeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	p, err := h.svc.RecordReviewOutcome(r.Context(), study.OutcomeInput{
		RecordID: req.RecordID,
		Outcome:  domain.ReviewOutcome(req.Outcome),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProgressResponse(p, h.clock.Now()))
}

// EndReview handles DELETE /api/review.
func (h *StudyHandler) EndReview(w http.ResponseWriter, _ *http.Request) {
	h.svc.EndReview()
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Timer
// ---------------------------------------------------------------------------

type timerResponse struct {
	Paused bool `json:"paused"`
}

// Timer handles GET /api/timer.
func (h *StudyHandler) Timer(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, timerResponse{Paused: h.svc.Paused()})
}

// PauseTimer handles POST /api/timer/pause.
func (h *StudyHandler) PauseTimer(w http.ResponseWriter, _ *http.Request) {
	h.svc.Pause()
	writeJSON(w, http.StatusOK, timerResponse{Paused: true})
}

// ResumeTimer handles POST /api/timer/resume.
func (h *StudyHandler) ResumeTimer(w http.ResponseWriter, _ *http.Request) {
	h.svc.Resume()
	writeJSON(w, http.StatusOK, timerResponse{Paused: false})
}

// ---------------------------------------------------------------------------
// Dashboard and generated content
// ---------------------------------------------------------------------------

// Dashboard handles GET /api/dashboard.
func (h *StudyHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.GetDashboard(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDashboardResponse(d))
}

// GenerateQuiz handles POST /api/quiz.
func (h *StudyHandler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	qs, err := h.svc.GenerateQuiz(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toQuizResponses(qs))
}

type quizResultRequest struct {
	Score int `json:"score"`
}

// FinishQuiz handles POST /api/quiz/result.
func (h *StudyHandler) FinishQuiz(w http.ResponseWriter, r *http.Request) {
	var req quizResultRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	stats, err := h.svc.FinishQuiz(r.Context(), req.Score)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toStatsResponse(stats))
}

// Passages handles GET /api/passages.
func (h *StudyHandler) Passages(w http.ResponseWriter, r *http.Request) {
	ps, err := h.svc.Passages(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPassageResponses(ps))
}

// GeneratePassages handles POST /api/passages.
func (h *StudyHandler) GeneratePassages(w http.ResponseWriter, r *http.Request) {
	ps, err := h.svc.GeneratePassages(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPassageResponses(ps))
}

type sentenceRequest struct {
	RecordID string `json:"recordId"`
	Sentence string `json:"sentence"`
}

// EvaluateSentence handles POST /api/sentences.
func (h *StudyHandler) EvaluateSentence(w http.ResponseWriter, r *http.Request) {
	var req sentenceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	ev, err := h.svc.EvaluateSentence(r.Context(), study.SentenceInput{
		RecordID: req.RecordID,
		Sentence: req.Sentence,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, evaluationResponse{
		Score:       ev.Score,
		Feedback:    ev.Feedback,
		Correction:  ev.Correction,
		Translation: ev.Translation,
	})
}

// Motivation handles GET /api/motivation.
func (h *StudyHandler) Motivation(w http.ResponseWriter, r *http.Request) {
	msg, err := h.svc.MotivationalMessage(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}
