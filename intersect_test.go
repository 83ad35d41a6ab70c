package cfg_test

import (
	"testing"

	"github.com/0x51-dev/gocfg"
	"github.com/0x51-dev/gocfg/automaton"
	"github.com/0x51-dev/gocfg/cyk"
)

// anbn returns S -> a S b | ε.
func anbn() *cfg.Grammar {
	S := cfg.Variable("S")
	a, b := cfg.Terminal("a"), cfg.Terminal("b")
	return cfg.New(
		[]cfg.Variable{S},
		[]cfg.Terminal{a, b},
		[]cfg.Production{
			cfg.NewProduction(S, []cfg.Symbol{a, S, b}),
			cfg.NewProduction(S, nil),
		},
		S,
	)
}

// aStarBStar is a DFA over {a,b} accepting a*b*.
func aStarBStar() *automaton.Table {
	t := automaton.NewTable("q0")
	t.AddTransition("q0", "a", "q0")
	t.AddTransition("q0", "b", "q1")
	t.AddTransition("q1", "b", "q1")
	t.SetAccepting("q0")
	t.SetAccepting("q1")
	return t
}

func TestIntersectAnBn(t *testing.T) {
	result, err := anbn().Intersect(aStarBStar())
	if err != nil {
		t.Fatalf("Intersect: %v", err)
	}

	contains := func(s string) bool {
		w := make([]cfg.Terminal, len(s))
		for i, r := range s {
			w[i] = cfg.Terminal(string(r))
		}
		return cyk.New(result, w).Contains()
	}

	for _, s := range []string{"", "ab", "aabb", "aaabbb"} {
		if !contains(s) {
			t.Errorf("contains(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"a", "b", "ba", "aab", "abb"} {
		if contains(s) {
			t.Errorf("contains(%q) = true, want false", s)
		}
	}
}

func TestIntersectUnsupportedOperand(t *testing.T) {
	if _, err := anbn().Intersect(42); err == nil {
		t.Error("Intersect(42) should fail")
	}
}
