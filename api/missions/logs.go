package missions

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/chloebrgr/docksched/core/model"
	"github.com/chloebrgr/docksched/core/scheduling/logging"
)

// NewDecisionLogHandler returns an HTTP handler exposing the decision audit
// trail via GET /api/decisions. Requests must include an Authorization header
// with "Bearer <token>" when token is non-empty.
func NewDecisionLogHandler(store logging.AuditStore, token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token != "" {
			auth := r.Header.Get("Authorization")
			if auth != "Bearer "+token {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		q := logging.LogQuery{}
		if s := r.URL.Query().Get("start"); s != "" {
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				q.Start = t
			}
		}
		if s := r.URL.Query().Get("end"); s != "" {
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				q.End = t
			}
		}
		q.MissionID = r.URL.Query().Get("mission_id")
		q.Port = r.URL.Query().Get("port")
		if st := r.URL.Query().Get("status"); st != "" {
			if v, ok := statusFromString(st); ok {
				q.Status = v
			}
		}
		records, err := store.Query(r.Context(), q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(records); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

func statusFromString(s string) (model.DecisionStatus, bool) {
	switch s {
	case "accepted":
		return model.StatusAccepted, true
	case "rejected":
		return model.StatusRejected, true
	default:
		return "", false
	}
}
