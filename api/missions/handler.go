package missions

import (
	"encoding/json"
	"net/http"

	"github.com/chloebrgr/docksched/core/model"
)

// Scheduler decides on mission requests. It is implemented by the
// scheduling engine.
type Scheduler interface {
	Schedule(req model.MissionRequest) (model.Decision, error)
}

// NewScheduleHandler returns an HTTP handler accepting mission requests via
// POST /api/missions. The body is a JSON MissionRequest; the response is the
// resulting decision. Rejections are reported with status 200: the request
// was processed, the mission just did not get a slot.
func NewScheduleHandler(s Scheduler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req model.MissionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
		decision, err := s.Schedule(req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(decision); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
