package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/imposera/remora-tracker/internal/tracker"
)

// RouterDeps bundles everything the router serves.
type RouterDeps struct {
	Engine    *tracker.Engine
	WSHandler http.Handler
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// NewRouter builds the dashboard HTTP surface.
func NewRouter(d RouterDeps) http.Handler {
	h := &Handler{engine: d.Engine}

	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/", servePage)
	r.Route("/api", func(r chi.Router) {
		r.Get("/snapshot", h.Snapshot)
		r.Post("/refresh", h.Refresh)
		r.Get("/intervals", h.Intervals)
		r.Put("/interval", h.SetInterval)
		if d.WSHandler != nil {
			r.Get("/ws", d.WSHandler.ServeHTTP)
		}
	})
	return r
}

// Handler serves the JSON API backed by the refresh engine.
type Handler struct {
	engine *tracker.Engine
}

// Snapshot returns the latest snapshot.
func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	snap := h.engine.Latest()
	if snap == nil {
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: "no snapshot yet"})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// Refresh forces an immediate recompute and returns the fresh snapshot.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Refresh())
}

type intervalsResponse struct {
	Presets    []tracker.Preset `json:"presets"`
	Seconds    int              `json:"seconds"`
	IntervalMS int              `json:"interval_ms"`
}

// Intervals lists the named presets and the current timer period.
func (h *Handler) Intervals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, intervalsResponse{
		Presets:    tracker.Presets,
		Seconds:    h.engine.IntervalSeconds(),
		IntervalMS: h.engine.IntervalMilliseconds(),
	})
}

type setIntervalRequest struct {
	Seconds int    `json:"seconds"`
	Preset  string `json:"preset"`
}

type setIntervalResponse struct {
	Seconds    int `json:"seconds"`
	IntervalMS int `json:"interval_ms"`
}

// SetInterval updates the refresh cadence from a preset name or a raw
// second count (the slider). The applied period is echoed back in ms.
func (h *Handler) SetInterval(w http.ResponseWriter, r *http.Request) {
	var req setIntervalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	seconds := req.Seconds
	if req.Preset != "" {
		n, ok := tracker.PresetSeconds(req.Preset)
		if !ok {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "unknown preset"})
			return
		}
		seconds = n
	}
	if seconds <= 0 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "seconds must be positive"})
		return
	}

	applied, err := h.engine.SetIntervalSeconds(seconds)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, setIntervalResponse{Seconds: applied, IntervalMS: applied * 1000})
}
