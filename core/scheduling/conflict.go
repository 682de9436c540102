package scheduling

import (
	"time"

	"github.com/chloebrgr/docksched/core/model"
)

// Overlaps reports whether the half-open candidate window [start, end)
// intersects any of the existing assignments. Intervals that merely touch,
// one ending exactly when the next begins, do not conflict so back-to-back
// dockings are permitted. The scan is linear; per-port assignment counts
// stay in the tens in practice.
func Overlaps(existing []model.Assignment, start, end time.Time) bool {
	for _, a := range existing {
		if a.Overlaps(start, end) {
			return true
		}
	}
	return false
}
