package cfg_test

import (
	"testing"

	"github.com/0x51-dev/gocfg"
)

func TestNewProductionFiltersEpsilon(t *testing.T) {
	S := cfg.Variable("S")
	a := cfg.Terminal("a")
	p := cfg.NewProduction(S, []cfg.Symbol{a, cfg.Epsilon, a})
	if len(p.Body) != 2 {
		t.Fatalf("Body = %v, want 2 non-epsilon elements", p.Body)
	}
}

func TestProductionEqual(t *testing.T) {
	S := cfg.Variable("S")
	a := cfg.Terminal("a")
	p1 := cfg.NewProduction(S, []cfg.Symbol{a})
	p2 := cfg.NewProduction(S, []cfg.Symbol{a})
	p3 := cfg.NewProduction(S, []cfg.Symbol{a, a})
	if !p1.Equal(p2) {
		t.Error("expected p1.Equal(p2)")
	}
	if p1.Equal(p3) {
		t.Error("expected !p1.Equal(p3)")
	}
}

func TestProductionIsEpsilon(t *testing.T) {
	S := cfg.Variable("S")
	if !cfg.NewProduction(S, nil).IsEpsilon() {
		t.Error("expected empty body to be epsilon")
	}
	if cfg.NewProduction(S, []cfg.Symbol{cfg.Terminal("a")}).IsEpsilon() {
		t.Error("expected non-empty body to not be epsilon")
	}
}

func TestNewDedupesProductions(t *testing.T) {
	S := cfg.Variable("S")
	a := cfg.Terminal("a")
	g := cfg.New(
		[]cfg.Variable{S},
		[]cfg.Terminal{a},
		[]cfg.Production{
			cfg.NewProduction(S, []cfg.Symbol{a}),
			cfg.NewProduction(S, []cfg.Symbol{a}),
		},
		S,
	)
	if len(g.Productions) != 1 {
		t.Errorf("len(Productions) = %d, want 1", len(g.Productions))
	}
}
