package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agbru/ratcalc/internal/engine"
	"github.com/agbru/ratcalc/internal/expr"
	"github.com/agbru/ratcalc/internal/ui"
)

func newTestREPL(engines map[string]engine.Engine, cfg REPLConfig) (*REPL, *bytes.Buffer) {
	ui.SetCurrentTheme(ui.NoColorTheme)
	if cfg.Timeout == 0 {
		cfg.Timeout = time.Second
	}
	r := NewREPL(engines, cfg)
	var out bytes.Buffer
	r.SetOutput(&out)
	return r, &out
}

func realEngines() map[string]engine.Engine {
	return engine.NewDefaultFactory().GetAll()
}

func TestNewREPLDefaultEngine(t *testing.T) {
	tests := []struct {
		name    string
		engines map[string]engine.Engine
		def     string
		want    string
	}{
		{"explicit", realEngines(), "big", "big"},
		{"all prefers exact", realEngines(), "all", "exact"},
		{"unknown falls back", realEngines(), "abacus", "exact"},
		{"first sorted", map[string]engine.Engine{"zeta": &engine.MockEngine{}, "alpha": &engine.MockEngine{}}, "", "alpha"},
		{"no engines", map[string]engine.Engine{}, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestREPL(tt.engines, REPLConfig{DefaultEngine: tt.def})
			assert.Equal(t, tt.want, r.currentEngine)
		})
	}
}

func TestProcessCommand(t *testing.T) {
	r, out := newTestREPL(realEngines(), REPLConfig{DefaultEngine: "exact", MaxExprLength: 64})

	tests := []struct {
		input    string
		contains string
	}{
		{"eval <1/2> + <1/3>", "<1/2> + <1/3> = <5/6>"},
		{"<3/4> * 4", "<3/4> * 4 = <3/1>"},
		{"-2 + <1/2>", "-2 + <1/2> = <-3/2>"},
		{"<1/2> < <2/3>", "= true"},
		{"<1/0>", "Error:"},
		{"1 +", "syntax error"},
		{"eval", "Usage: eval <expr>"},
		{"engine", "Usage: engine <name>"},
		{"engine abacus", "Unknown engine: abacus"},
		{"engine BIG", "Engine changed to: big"},
		{"list", "► big"},
		{"status", "Engine:        big"},
		{"details", "Detailed analysis: on"},
		{"<7/2>", "Round                : 4"},
		{"compare", "Usage: compare <expr>"},
		{"help", "Available commands:"},
		{"eval " + strings.Repeat("1+", 40) + "1", "Expression too long"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			out.Reset()
			assert.True(t, r.processCommand(tt.input))
			assert.Contains(t, out.String(), tt.contains)
		})
	}

	out.Reset()
	assert.False(t, r.processCommand("exit"))
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestCompareCommand(t *testing.T) {
	r, out := newTestREPL(realEngines(), REPLConfig{})
	r.processCommand("compare <1/2> - <1/3>")
	got := out.String()
	assert.Contains(t, got, "Comparison for")
	assert.Contains(t, got, "exact")
	assert.Contains(t, got, "big")
	assert.Equal(t, 2, strings.Count(got, "<1/6>"))
	assert.NotContains(t, got, "INCONSISTENT")

	out.Reset()
	r.processCommand("compare inv(0)")
	assert.NotContains(t, out.String(), "INCONSISTENT", "same error kind on every engine is consistent")
}

func TestCompareDetectsInconsistency(t *testing.T) {
	engines := map[string]engine.Engine{
		"a": &engine.MockEngine{EngineName: "a", Result: engine.Result{Text: "<1/1>"}},
		"b": &engine.MockEngine{EngineName: "b", Result: engine.Result{Text: "<2/1>"}},
	}
	r, out := newTestREPL(engines, REPLConfig{})
	r.processCommand("compare 1")
	assert.Contains(t, out.String(), "INCONSISTENT")
}

func TestEvaluateHonorsTimeout(t *testing.T) {
	slow := &engine.MockEngine{Fn: func(ctx context.Context, _ expr.Node) (engine.Result, error) {
		<-ctx.Done()
		return engine.Result{}, ctx.Err()
	}}
	r, out := newTestREPL(map[string]engine.Engine{"mock": slow}, REPLConfig{Timeout: 10 * time.Millisecond})
	r.processCommand("1")
	assert.Contains(t, out.String(), "deadline exceeded")
}

func TestREPLStart(t *testing.T) {
	r, out := newTestREPL(realEngines(), REPLConfig{})
	r.SetInput(strings.NewReader("<1/2> + <1/2>\n\nquit\n<9/9>\n"))
	r.Start()
	got := out.String()
	assert.Contains(t, got, "Interactive Mode")
	assert.Contains(t, got, "= <1/1>")
	assert.Contains(t, got, "Goodbye!")
	assert.NotContains(t, got, "<9/9> =", "input after quit is not read")
}

func TestREPLStartEOFWithoutNewline(t *testing.T) {
	r, out := newTestREPL(realEngines(), REPLConfig{})
	r.SetInput(strings.NewReader("<4/6>"))
	r.Start()
	got := out.String()
	assert.Contains(t, got, "<4/6> = <2/3>")
	assert.Contains(t, got, "Goodbye!")
}
