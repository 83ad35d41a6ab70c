package cfg_test

import (
	"strings"
	"testing"

	"github.com/0x51-dev/gocfg"
)

func TestFromText(t *testing.T) {
	g, err := cfg.FromText("S -> a S b | epsilon\n")
	if err != nil {
		t.Fatalf("FromText: %v", err)
	}
	if g.Start != cfg.Variable("S") {
		t.Errorf("Start = %v, want S", g.Start)
	}
	if !contains(g, "ab") || !contains(g, "") {
		t.Error("expected the parsed grammar to accept ab and the empty word")
	}
	if contains(g, "a") {
		t.Error("expected the parsed grammar to reject a")
	}
}

func TestFromTextEpsilonSpellings(t *testing.T) {
	for _, spelling := range []string{"epsilon", "$", "ε", "ϵ", "Є"} {
		g, err := cfg.FromText("S -> " + spelling + "\n")
		if err != nil {
			t.Fatalf("FromText(%q): %v", spelling, err)
		}
		if !g.GenerateEpsilon() {
			t.Errorf("spelling %q: expected S -> epsilon, got GenerateEpsilon() = false", spelling)
		}
	}
}

func TestFromTextDefaultStart(t *testing.T) {
	g, err := cfg.FromText("S -> a\nA -> b\n")
	if err != nil {
		t.Fatalf("FromText: %v", err)
	}
	if g.Start != cfg.Variable("S") {
		t.Errorf("Start = %v, want default S", g.Start)
	}
}

func TestFromTextRejectsLowercaseHead(t *testing.T) {
	if _, err := cfg.FromText("s -> a\n"); err == nil {
		t.Error("expected an error for a lowercase production head")
	}
}

func TestToTextRoundTrips(t *testing.T) {
	S := cfg.Variable("S")
	a, b := cfg.Terminal("a"), cfg.Terminal("b")
	g := cfg.New(
		[]cfg.Variable{S},
		[]cfg.Terminal{a, b},
		[]cfg.Production{
			cfg.NewProduction(S, []cfg.Symbol{a, S, b}),
			cfg.NewProduction(S, nil),
		},
		S,
	)
	text := g.ToText()
	if !strings.Contains(text, "S -> a S b") {
		t.Errorf("ToText() = %q, missing S -> a S b", text)
	}
	if !strings.Contains(text, "S -> epsilon") {
		t.Errorf("ToText() = %q, missing S -> epsilon", text)
	}

	reparsed, err := cfg.FromText(text)
	if err != nil {
		t.Fatalf("FromText(ToText()): %v", err)
	}
	if !contains(reparsed, "ab") || !contains(reparsed, "") {
		t.Error("round-tripped grammar should still accept ab and the empty word")
	}
}
