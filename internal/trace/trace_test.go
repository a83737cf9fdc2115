package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelFiltersScopes(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "DEBUG"} {
		if _, err := ParseLevel(s); err != nil {
			t.Errorf("ParseLevel(%q): %v", s, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestStreamSpans(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)
	root := Begin(tr, ScopeDriver, "diag", 0)
	child := Begin(tr, ScopePass, "parse", root.ID())
	Begin(tr, ScopeFile, "file:a.pine", child.ID()).End("")
	child.WithExtra("nodes", "12").End("")
	root.End("ok")

	out := buf.String()
	if strings.Contains(out, "file:a.pine") {
		t.Fatalf("file scope must be filtered at phase level:\n%s", out)
	}
	for _, want := range []string{"> diag", "> parse", "< parse {nodes=12}", "< diag (ok)"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Begin(tr, ScopePass, "sema_collect", 0).End("")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	var ev map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if ev["kind"] != "end" || ev["name"] != "sema_collect" || ev["scope"] != "pass" {
		t.Fatalf("unexpected event: %v", ev)
	}
}

func TestRingWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(r, ScopeNode, name, "", 0)
	}
	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 events, got %d", len(snap))
	}
	for i, want := range []string{"c", "d", "e"} {
		if snap[i].Name != want {
			t.Errorf("event %d = %q, want %q", i, snap[i].Name, want)
		}
	}
}

func TestMultiAndContext(t *testing.T) {
	var buf bytes.Buffer
	ring := NewRingTracer(8, LevelPhase)
	m := NewMultiTracer(LevelPhase, NewStreamTracer(&buf, LevelPhase, FormatText), ring)
	if m.Ring() != ring {
		t.Fatalf("Ring() must return the ring child")
	}

	ctx := WithTracer(context.Background(), m)
	Begin(FromContext(ctx), ScopePass, "lex", 0).End("")
	if len(ring.Snapshot()) != 2 || buf.Len() == 0 {
		t.Fatalf("events must reach both children")
	}
	if FromContext(context.Background()).Enabled() {
		t.Fatalf("missing tracer must be Nop")
	}
	if got := SpanFromContext(WithSpan(ctx, 42)); got != 42 {
		t.Fatalf("span id %d, want 42", got)
	}
}

func TestNewOff(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("LevelOff must give a disabled tracer")
	}
	if _, err := New(Config{Level: LevelPhase}); err == nil {
		t.Fatalf("missing mode must fail")
	}
}
