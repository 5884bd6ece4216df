package rest

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/fortuna/gamecast/internal/projection"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	baselines projection.Table
}

// NewHandler creates a new handler
func NewHandler(baselines projection.Table) *Handler {
	return &Handler{baselines: baselines}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "gamecast",
		"version": "0.1.0",
	})
}

// baselineView is one row of the baselines listing.
type baselineView struct {
	Player          string  `json:"player"`
	PointsPerMinute float64 `json:"points_per_minute"`
	ExpectedMinutes int     `json:"expected_minutes"`
}

// GetBaselines returns the configured priors, sorted by player name. The
// table is read-only for the process lifetime, so no locking is needed.
func (h *Handler) GetBaselines(w http.ResponseWriter, r *http.Request) {
	views := make([]baselineView, 0, len(h.baselines))
	for name, baseline := range h.baselines {
		views = append(views, baselineView{
			Player:          name,
			PointsPerMinute: baseline.PointsPerMinute,
			ExpectedMinutes: baseline.ExpectedMinutes,
		})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].Player < views[j].Player })

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"default":   projection.DefaultBaseline,
		"baselines": views,
	})
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
