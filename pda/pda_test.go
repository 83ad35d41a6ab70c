package pda_test

import (
	"testing"

	"github.com/0x51-dev/gocfg"
	"github.com/0x51-dev/gocfg/pda"
)

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

func words(s string) []cfg.Terminal {
	out := make([]cfg.Terminal, len(s))
	for i, r := range s {
		out[i] = cfg.Terminal(string(r))
	}
	return out
}

func TestFromCFGAccepts(t *testing.T) {
	p := pda.FromCFG(anbn())
	accept := []string{"", "ab", "aabb", "aaabbb"}
	reject := []string{"a", "b", "ba", "abb", "aab"}
	for _, s := range accept {
		if !p.Accepts(words(s)) {
			t.Errorf("Accepts(%q) = false, want true", s)
		}
	}
	for _, s := range reject {
		if p.Accepts(words(s)) {
			t.Errorf("Accepts(%q) = true, want false", s)
		}
	}
}
