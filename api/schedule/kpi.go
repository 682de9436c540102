package schedule

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/chloebrgr/docksched/core/scheduling/analytics"
)

// NewKPIHandler exposes per-port occupancy KPIs via GET /api/ports/kpis.
// The start and end query parameters bound the analysis window; end defaults
// to 24 hours after start, start defaults to the start of today (UTC).
func NewKPIHandler(v Viewer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		start, _ := time.Parse(time.RFC3339, r.URL.Query().Get("start"))
		end, _ := time.Parse(time.RFC3339, r.URL.Query().Get("end"))
		if start.IsZero() {
			now := time.Now().UTC()
			start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		}
		if end.IsZero() {
			end = start.Add(24 * time.Hour)
		}
		kpis, err := analytics.Compute(v.Snapshot(), start, end)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(kpis)
	})
}
