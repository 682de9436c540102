package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/chloebrgr/docksched/core/model"
)

func ts(h int) time.Time {
	return time.Date(2025, 10, 1, h, 0, 0, 0, time.UTC)
}

func TestCompute(t *testing.T) {
	view := model.ScheduleView{
		"A1": {
			{MissionID: "M1", Port: "A1", StartTime: ts(10), EndTime: ts(11)},
			{MissionID: "M2", Port: "A1", StartTime: ts(12), EndTime: ts(15)},
		},
		"A2": nil,
	}
	kpis, err := Compute(view, ts(10), ts(20))
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if len(kpis) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(kpis))
	}
	a1 := kpis[0]
	if a1.Port != "A1" || a1.Assignments != 2 {
		t.Fatalf("unexpected A1 kpi: %+v", a1)
	}
	if math.Abs(a1.BusyHours-4) > 1e-9 {
		t.Fatalf("busy hours = %f, want 4", a1.BusyHours)
	}
	if math.Abs(a1.OccupancyRatio-0.4) > 1e-9 {
		t.Fatalf("occupancy = %f, want 0.4", a1.OccupancyRatio)
	}
	if math.Abs(a1.MeanDockingHours-2) > 1e-9 {
		t.Fatalf("mean = %f, want 2", a1.MeanDockingHours)
	}
	a2 := kpis[1]
	if a2.Port != "A2" || a2.Assignments != 0 || a2.BusyHours != 0 {
		t.Fatalf("unexpected A2 kpi: %+v", a2)
	}
}

func TestComputeClipsToWindow(t *testing.T) {
	view := model.ScheduleView{
		"B1": {{MissionID: "M1", Port: "B1", StartTime: ts(8), EndTime: ts(12)}},
	}
	kpis, err := Compute(view, ts(10), ts(11))
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if math.Abs(kpis[0].BusyHours-1) > 1e-9 {
		t.Fatalf("busy hours = %f, want 1 (clipped)", kpis[0].BusyHours)
	}
	if math.Abs(kpis[0].OccupancyRatio-1) > 1e-9 {
		t.Fatalf("occupancy = %f, want 1", kpis[0].OccupancyRatio)
	}
}

func TestComputeBadWindow(t *testing.T) {
	if _, err := Compute(model.ScheduleView{}, ts(11), ts(10)); err == nil {
		t.Fatal("expected window error")
	}
}
