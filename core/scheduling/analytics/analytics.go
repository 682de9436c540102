// Package analytics derives port utilization figures from a schedule
// snapshot for operator dashboards.
package analytics

import (
	"fmt"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/chloebrgr/docksched/core/model"
)

// PortKPI summarizes the load on one port over a reporting window.
type PortKPI struct {
	Port             string  `json:"port"`
	Assignments      int     `json:"assignments"`
	BusyHours        float64 `json:"busy_hours"`
	OccupancyRatio   float64 `json:"occupancy_ratio"`
	MeanDockingHours float64 `json:"mean_docking_hours"`
	StdDockingHours  float64 `json:"std_docking_hours"`
}

// Compute returns one KPI entry per port for the window [from, to).
// Assignments are clipped to the window; ports with no overlapping
// assignments report zeros. Results are ordered by port code.
func Compute(view model.ScheduleView, from, to time.Time) ([]PortKPI, error) {
	if !to.After(from) {
		return nil, fmt.Errorf("analytics: window end must be after start")
	}
	window := to.Sub(from).Hours()

	codes := make([]string, 0, len(view))
	for c := range view {
		codes = append(codes, c)
	}
	sort.Strings(codes)

	out := make([]PortKPI, 0, len(codes))
	for _, code := range codes {
		var durations []float64
		busy := 0.0
		for _, a := range view[code] {
			if !a.Overlaps(from, to) {
				continue
			}
			start, end := a.StartTime, a.EndTime
			if start.Before(from) {
				start = from
			}
			if end.After(to) {
				end = to
			}
			h := end.Sub(start).Hours()
			durations = append(durations, h)
			busy += h
		}
		kpi := PortKPI{
			Port:        code,
			Assignments: len(durations),
			BusyHours:   busy,
		}
		if window > 0 {
			kpi.OccupancyRatio = busy / window
		}
		if len(durations) > 0 {
			kpi.MeanDockingHours = stat.Mean(durations, nil)
		}
		if len(durations) > 1 {
			kpi.StdDockingHours = stat.StdDev(durations, nil)
		}
		out = append(out, kpi)
	}
	return out, nil
}
