// Package logging persists an audit trail of scheduling decisions. The
// schedule itself lives only in memory; the audit log is observability
// data, never read back into the engine.
package logging

import (
	"context"
	"time"

	"github.com/chloebrgr/docksched/core/model"
)

// LogRecord captures one scheduling attempt and its outcome.
type LogRecord struct {
	Timestamp time.Time            `json:"timestamp"`
	Request   model.MissionRequest `json:"request"`
	Decision  model.Decision       `json:"decision"`
}

// LogQuery defines filters for retrieving records. Zero values match
// everything.
type LogQuery struct {
	Start     time.Time
	End       time.Time
	MissionID string
	Port      string
	Status    model.DecisionStatus
}

// matches reports whether the record passes the non-time filters.
func (q LogQuery) matches(r LogRecord) bool {
	if q.MissionID != "" && r.Request.MissionID != q.MissionID {
		return false
	}
	if q.Port != "" && r.Request.RequestedPort != q.Port && r.Decision.AssignedPort != q.Port {
		return false
	}
	if q.Status != "" && r.Decision.Status != q.Status {
		return false
	}
	return true
}

// AuditStore persists LogRecords and supports querying.
type AuditStore interface {
	Append(ctx context.Context, rec LogRecord) error
	Query(ctx context.Context, q LogQuery) ([]LogRecord, error)
	Close() error
}
