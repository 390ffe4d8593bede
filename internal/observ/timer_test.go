package observ

import (
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	load := tm.Begin("load")
	tm.End(load, "1 file")
	parse := tm.Begin("parse")
	tm.End(parse, "")
	tm.End(99, "ignored") // неизвестный индекс игнорируется

	if tm.Len() != 2 {
		t.Fatalf("len = %d", tm.Len())
	}
	rep := tm.Report()
	if len(rep.Phases) != 2 || rep.Phases[0].Name != "load" || rep.Phases[0].Note != "1 file" {
		t.Errorf("report = %+v", rep)
	}
	var sum float64
	for _, p := range rep.Phases {
		if p.DurationMS < 0 {
			t.Errorf("negative duration for %s", p.Name)
		}
		sum += p.DurationMS
	}
	if rep.TotalMS != sum {
		t.Errorf("total %.4f != sum %.4f", rep.TotalMS, sum)
	}

	s := tm.Summary()
	for _, want := range []string{"timings:", "load", "// 1 file", "total"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary lacks %q:\n%s", want, s)
		}
	}
}

func TestEmptyTimer(t *testing.T) {
	if rep := NewTimer().Report(); rep.TotalMS != 0 || len(rep.Phases) != 0 {
		t.Errorf("empty report = %+v", rep)
	}
}
