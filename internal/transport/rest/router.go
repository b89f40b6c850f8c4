package rest

import "net/http"

// Handlers groups everything the router mounts.
type Handlers struct {
	Health   *HealthHandler
	Session  *SessionHandler
	Study    *StudyHandler
	Practice *PracticeHandler

	// Generation wraps the routes that call the content generator. Nil
	// leaves them unwrapped.
	Generation func(http.Handler) http.Handler
}

// NewRouter registers all routes on a new ServeMux.
func NewRouter(h Handlers) *http.ServeMux {
	gen := func(fn http.HandlerFunc) http.Handler {
		if h.Generation == nil {
			return fn
		}
		return h.Generation(fn)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("GET /api/session", h.Session.Current)
	mux.HandleFunc("POST /api/session", h.Session.Login)
	mux.HandleFunc("DELETE /api/session", h.Session.Logout)
	mux.HandleFunc("GET /api/profiles", h.Session.Profiles)

	mux.HandleFunc("GET /api/words", h.Study.ListWords)
	mux.Handle("POST /api/words", gen(h.Study.AddWord))
	mux.HandleFunc("DELETE /api/words/{id}", h.Study.RemoveWord)
	mux.HandleFunc("PUT /api/words/{id}/mastered", h.Study.SetMastered)
	mux.Handle("POST /api/batches", gen(h.Study.StartNewBatch))
	mux.HandleFunc("PUT /api/today/cursor", h.Study.MoveTodayCursor)

	mux.HandleFunc("POST /api/review", h.Study.StartReview)
	mux.HandleFunc("GET /api/review", h.Study.CurrentReview)
	mux.HandleFunc("DELETE /api/review", h.Study.EndReview)
	mux.HandleFunc("POST /api/review/outcome", h.Study.RecordOutcome)

	mux.HandleFunc("GET /api/timer", h.Study.Timer)
	mux.HandleFunc("POST /api/timer/pause", h.Study.PauseTimer)
	mux.HandleFunc("POST /api/timer/resume", h.Study.ResumeTimer)

	mux.HandleFunc("GET /api/dashboard", h.Study.Dashboard)
	mux.Handle("POST /api/quiz", gen(h.Study.GenerateQuiz))
	mux.HandleFunc("POST /api/quiz/result", h.Study.FinishQuiz)
	mux.HandleFunc("GET /api/passages", h.Study.Passages)
	mux.Handle("POST /api/passages", gen(h.Study.GeneratePassages))
	mux.Handle("POST /api/sentences", gen(h.Study.EvaluateSentence))
	mux.Handle("GET /api/motivation", gen(h.Study.Motivation))

	mux.HandleFunc("GET /api/practice/match", h.Practice.Match)
	mux.HandleFunc("GET /api/practice/unscramble", h.Practice.Unscramble)
	mux.HandleFunc("GET /api/practice/spelling", h.Practice.Spelling)
	mux.HandleFunc("POST /api/practice/check", h.Practice.Check)

	return mux
}
