package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/vocabcoach/internal/domain"
)

type storagePinger interface {
	Ping(ctx context.Context) error
}

type activeSession interface {
	Active() (domain.Profile, bool)
}

// HealthInfo describes the static parts of the health report.
type HealthInfo struct {
	Backend   string // storage backend name
	Generator string // "online" or "offline"
	Version   string
}

// HealthHandler serves the probe and health endpoints.
type HealthHandler struct {
	storage  storagePinger
	sessions activeSession
	clock    clockwork.Clock
	info     HealthInfo
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(storage storagePinger, sessions activeSession, clock clockwork.Clock, info HealthInfo) *HealthHandler {
	return &HealthHandler{storage: storage, sessions: sessions, clock: clock, info: info}
}

// Component and overall statuses.
const (
	statusOK       = "ok"
	statusDegraded = "degraded"
	statusDown     = "down"
)

// HealthResponse is the JSON body of /live, /ready and /health.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of one component.
type CompStatus struct {
	Status  string `json:"status"`
	Backend string `json:"backend,omitempty"`
	Latency string `json:"latency,omitempty"`
	Profile string `json:"profile,omitempty"`
}

// Live answers 200 while the process serves requests.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: statusOK, Version: h.info.Version, Timestamp: h.clock.Now()})
}

// Ready answers 503 while storage is unreachable, since no profile can be
// loaded or saved.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	st := h.checkStorage(r.Context())
	code := http.StatusOK
	if st.Status != statusOK {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, HealthResponse{Status: st.Status, Timestamp: h.clock.Now()})
}

// Health reports storage, generator and session state. An offline
// generator degrades the report without failing it.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	storage := h.checkStorage(r.Context())

	generator := CompStatus{Status: statusOK, Backend: h.info.Generator}
	if h.info.Generator != "online" {
		generator.Status = statusDegraded
	}

	session := CompStatus{Status: statusOK}
	if p, ok := h.sessions.Active(); ok {
		session.Profile = p.Key
	}

	overall, code := statusOK, http.StatusOK
	switch {
	case storage.Status != statusOK:
		overall, code = statusDown, http.StatusServiceUnavailable
	case generator.Status != statusOK:
		overall = statusDegraded
	}

	writeJSON(w, code, HealthResponse{
		Status:  overall,
		Version: h.info.Version,
		Components: map[string]CompStatus{
			"storage":   storage,
			"generator": generator,
			"session":   session,
		},
		Timestamp: h.clock.Now(),
	})
}

func (h *HealthHandler) checkStorage(ctx context.Context) CompStatus {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	start := time.Now()
	if err := h.storage.Ping(ctx); err != nil {
		return CompStatus{Status: statusDown, Backend: h.info.Backend}
	}
	return CompStatus{Status: statusOK, Backend: h.info.Backend, Latency: time.Since(start).String()}
}
