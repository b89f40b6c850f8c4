package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/vocabcoach/internal/domain"
	"github.com/heartmarshall/vocabcoach/internal/service/profile"
)

// sessionService defines the minimal interface needed by SessionHandler.
type sessionService interface {
	Login(ctx context.Context, name string, opts profile.LoginOptions) (domain.Profile, error)
	Logout(ctx context.Context) error
	Active() (domain.Profile, bool)
	ListKnownProfiles(ctx context.Context) ([]domain.ProfileSummary, error)
}

// SessionHandler serves login, logout and the profile picker.
type SessionHandler struct {
	svc sessionService
	log *slog.Logger
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(svc sessionService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{svc: svc, log: logger.With("handler", "session")}
}

type loginRequest struct {
	Name      string `json:"name"`
	LevelTag  string `json:"levelTag"`
	DailyGoal int    `json:"dailyGoal"`
}

type sessionResponse struct {
	Active  bool             `json:"active"`
	Profile *profileResponse `json:"profile,omitempty"`
}

// Login handles POST /api/session.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	p, err := h.svc.Login(r.Context(), req.Name, profile.LoginOptions{
		LevelTag:  req.LevelTag,
		DailyGoal: req.DailyGoal,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := toProfileResponse(p)
	writeJSON(w, http.StatusOK, sessionResponse{Active: true, Profile: &resp})
}

// Logout handles DELETE /api/session. Logging out with no session is a no-op.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Logout(r.Context()); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Active: false})
}

// Current handles GET /api/session.
func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	p, ok := h.svc.Active()
	if !ok {
		writeJSON(w, http.StatusOK, sessionResponse{Active: false})
		return
	}
	resp := toProfileResponse(p)
	writeJSON(w, http.StatusOK, sessionResponse{Active: true, Profile: &resp})
}

// Profiles handles GET /api/profiles.
func (h *SessionHandler) Profiles(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListKnownProfiles(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]profileSummaryResponse, 0, len(list))
	for _, s := range list {
		out = append(out, profileSummaryResponse{
			Key:          s.Key,
			Name:         s.Name,
			Avatar:       s.Avatar,
			LevelTag:     s.LevelTag,
			TotalLearned: s.TotalLearned,
			Streak:       s.Streak,
			UpdatedAt:    s.UpdatedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
