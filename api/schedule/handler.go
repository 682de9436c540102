package schedule

import (
	"encoding/json"
	"net/http"

	"github.com/chloebrgr/docksched/core/model"
)

// Viewer exposes the current schedule. It is implemented by the scheduling
// engine.
type Viewer interface {
	Snapshot() model.ScheduleView
}

// Resetter wipes the schedule and returns the number of cleared assignments.
type Resetter interface {
	Reset() int
}

// NewSnapshotHandler returns an HTTP handler exposing the full schedule via
// GET /api/schedule. Every registered port appears in the response, empty
// ports included.
func NewSnapshotHandler(v Viewer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(v.Snapshot()); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

// NewResetHandler returns an HTTP handler wiping the schedule via
// POST /api/schedule/reset.
func NewResetHandler(rs Resetter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		cleared := rs.Reset()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]int{"cleared": cleared})
	})
}
