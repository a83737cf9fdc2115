package observ

import (
	"strings"
	"testing"
	"time"
)

func fakeClock(step time.Duration) func() time.Time {
	now := time.Unix(0, 0)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(time.Millisecond)

	idx := tm.Begin("parse")
	tm.End(idx, "12 nodes")
	tm.Track("sema", func() {})

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(r.Phases))
	}
	if r.Phases[0].Name != "parse" || r.Phases[0].DurationMS != 1 || r.Phases[0].Note != "12 nodes" {
		t.Errorf("unexpected first phase: %+v", r.Phases[0])
	}
	if r.TotalMS != 2 {
		t.Errorf("TotalMS = %v, want 2", r.TotalMS)
	}
	s := tm.Summary()
	if !strings.Contains(s, "parse") || !strings.Contains(s, "// 12 nodes") || !strings.Contains(s, "total") {
		t.Errorf("unexpected summary:\n%s", s)
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	if idx := tm.Begin("x"); idx != -1 {
		t.Fatalf("Begin on nil timer = %d", idx)
	}
	tm.End(0, "")
	ran := false
	tm.Track("y", func() { ran = true })
	if !ran {
		t.Fatalf("Track must still run fn")
	}
	if r := tm.Report(); len(r.Phases) != 0 {
		t.Fatalf("nil timer reported phases")
	}
}

func TestMerge(t *testing.T) {
	a := Report{TotalMS: 3, Phases: []PhaseReport{{Name: "parse", DurationMS: 1}, {Name: "sema", DurationMS: 2}}}
	b := Report{TotalMS: 4, Phases: []PhaseReport{{Name: "sema", DurationMS: 4}}}
	m := Merge(a, b)
	if m.TotalMS != 7 {
		t.Errorf("TotalMS = %v", m.TotalMS)
	}
	if len(m.Phases) != 2 || m.Phases[1].Name != "sema" || m.Phases[1].DurationMS != 6 {
		t.Errorf("unexpected phases: %+v", m.Phases)
	}
}
