package cfg_test

import (
	"fmt"
	"testing"

	"github.com/0x51-dev/gocfg"
)

func ExampleGrammar() {
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
	fmt.Println(g)
	fmt.Println(g.IsFinite())
	// Output:
	// ( { S }, { a, b }, [ S -> a S b, S -> a b ], S )
	// false
}

func TestNewClosesVariablesAndTerminalsUnderProductions(t *testing.T) {
	S := cfg.Variable("S")
	A := cfg.Variable("A")
	a := cfg.Terminal("a")
	g := cfg.New(nil, nil, []cfg.Production{cfg.NewProduction(S, []cfg.Symbol{A}), cfg.NewProduction(A, []cfg.Symbol{a})}, S)
	if len(g.Variables) != 2 || len(g.Terminals) != 1 {
		t.Fatalf("Variables = %v, Terminals = %v; want 2 variables and 1 terminal discovered from productions", g.Variables, g.Terminals)
	}
}

func TestIsEmpty(t *testing.T) {
	S, D := cfg.Variable("S"), cfg.Variable("D")
	a := cfg.Terminal("a")
	empty := cfg.New([]cfg.Variable{S, D}, []cfg.Terminal{a}, []cfg.Production{cfg.NewProduction(S, []cfg.Symbol{D})}, S)
	if !empty.IsEmpty() {
		t.Error("IsEmpty() = false, want true (S only reaches the non-generating D)")
	}

	nonEmpty := cfg.New([]cfg.Variable{S}, []cfg.Terminal{a}, []cfg.Production{cfg.NewProduction(S, []cfg.Symbol{a})}, S)
	if nonEmpty.IsEmpty() {
		t.Error("IsEmpty() = true, want false")
	}

	noStart := cfg.New([]cfg.Variable{S}, []cfg.Terminal{a}, []cfg.Production{cfg.NewProduction(S, []cfg.Symbol{a})}, "")
	if !noStart.IsEmpty() {
		t.Error("IsEmpty() = false, want true when no start symbol is set")
	}
}
