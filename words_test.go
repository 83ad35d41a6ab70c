package cfg_test

import (
	"testing"

	"github.com/0x51-dev/gocfg"
)

func TestGetWordsBounded(t *testing.T) {
	S := cfg.Variable("S")
	a, b := cfg.Terminal("a"), cfg.Terminal("b")
	g := cfg.New(
		[]cfg.Variable{S},
		[]cfg.Terminal{a, b},
		[]cfg.Production{
			cfg.NewProduction(S, []cfg.Symbol{a, S, b}),
			cfg.NewProduction(S, []cfg.Symbol{a, b}),
		},
		S,
	)
	it := g.GetWords(4)
	var got []string
	for {
		w, ok := it.Next()
		if !ok {
			break
		}
		var s string
		for _, t := range w {
			s += t.String()
		}
		got = append(got, s)
	}
	want := map[string]bool{"ab": true, "aabb": true}
	if len(got) != len(want) {
		t.Fatalf("GetWords(4) = %v, want %v", got, want)
	}
	for _, w := range got {
		if !want[w] {
			t.Errorf("unexpected word %q", w)
		}
	}
}

func TestIsFiniteOnAcyclicGrammar(t *testing.T) {
	S, A := cfg.Variable("S"), cfg.Variable("A")
	a, b := cfg.Terminal("a"), cfg.Terminal("b")
	g := cfg.New(
		[]cfg.Variable{S, A},
		[]cfg.Terminal{a, b},
		[]cfg.Production{
			cfg.NewProduction(S, []cfg.Symbol{A, A}),
			cfg.NewProduction(A, []cfg.Symbol{a}),
			cfg.NewProduction(A, []cfg.Symbol{b}),
		},
		S,
	)
	if !g.IsFinite() {
		t.Error("IsFinite() = false, want true")
	}
}
