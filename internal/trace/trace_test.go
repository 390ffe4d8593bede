package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want Level
		err  bool
	}{
		{"off", LevelOff, false},
		{"PHASE", LevelPhase, false},
		{"Debug", LevelDebug, false},
		{"verbose", LevelOff, true},
	}
	for _, tc := range cases {
		got, err := ParseLevel(tc.in)
		if (err != nil) != tc.err {
			t.Fatalf("ParseLevel(%q) err=%v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseLevel(%q)=%v want %v", tc.in, got, tc.want)
		}
	}
}

func TestLevelScopes(t *testing.T) {
	if LevelPhase.ShouldEmit(ScopeFile) {
		t.Errorf("phase level must not emit file events")
	}
	if !LevelDetail.ShouldEmit(ScopeFile) || LevelDetail.ShouldEmit(ScopeRule) {
		t.Errorf("detail level covers files but not rules")
	}
	if !LevelDebug.ShouldEmit(ScopeRule) {
		t.Errorf("debug level emits everything")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)

	sp := Begin(tr, ScopePass, "parse", 0)
	sp.WithExtra("file", "a.js").WithExtra("bytes", "12")
	sp.End("ok")

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 lines, got %q", out)
	}
	if !strings.Contains(lines[0], "→ parse") {
		t.Errorf("begin line = %q", lines[0])
	}
	// ключи extra отсортированы
	if !strings.Contains(lines[1], "← parse (ok) {bytes=12, file=a.js}") {
		t.Errorf("end line = %q", lines[1])
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(tr, ScopeRule, "rule.panic", "boom", 7)

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if got["kind"] != "point" || got["scope"] != "rule" || got["detail"] != "boom" {
		t.Errorf("event = %v", got)
	}
}

func TestLevelFiltersSpans(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)
	sp := Begin(tr, ScopeRule, "rule", 0)
	sp.End("")
	if buf.Len() != 0 {
		t.Errorf("rule spans must be filtered at phase level: %q", buf.String())
	}
	if sp.ID() != 0 {
		t.Errorf("filtered span must have zero id")
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		r.Emit(&Event{Kind: KindPoint, Scope: ScopePass, Name: name})
	}
	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("snapshot len = %d", len(snap))
	}
	var names []string
	for _, ev := range snap {
		names = append(names, ev.Name)
	}
	if strings.Join(names, "") != "cde" {
		t.Errorf("snapshot order = %v", names)
	}

	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Errorf("dump = %q", buf.String())
	}
}

func TestMultiTracerFansOut(t *testing.T) {
	var buf bytes.Buffer
	stream := NewStreamTracer(&buf, LevelPhase, FormatText)
	ring := NewRingTracer(8, LevelPhase)
	m := NewMultiTracer(LevelPhase, stream, ring)

	Begin(m, ScopeDriver, "check", 0).End("")

	if len(ring.Snapshot()) != 2 {
		t.Errorf("ring got %d events", len(ring.Snapshot()))
	}
	if strings.Count(buf.String(), "\n") != 2 {
		t.Errorf("stream got %q", buf.String())
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Errorf("empty context must yield Nop")
	}
	ring := NewRingTracer(1, LevelDebug)
	ctx := WithTracer(context.Background(), ring)
	if FromContext(ctx) != Tracer(ring) {
		t.Errorf("tracer not propagated")
	}
	ctx = WithSpanContext(ctx, SpanContext{SpanID: 42})
	if CurrentSpan(ctx).SpanID != 42 {
		t.Errorf("span context not propagated")
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Errorf("off tracer must be disabled")
	}
	if _, err := ParseMode("sometimes"); err == nil {
		t.Errorf("unknown mode accepted")
	}
}

func TestFindRing(t *testing.T) {
	ring := NewRingTracer(4, LevelDebug)
	var buf bytes.Buffer
	multi := NewMultiTracer(LevelDebug, NewStreamTracer(&buf, LevelDebug, FormatText), ring)

	if FindRing(multi) != ring {
		t.Errorf("ring not found inside multi tracer")
	}
	if FindRing(ring) != ring {
		t.Errorf("ring not returned as is")
	}
	if FindRing(Nop) != nil {
		t.Errorf("nop tracer has no ring")
	}
}
