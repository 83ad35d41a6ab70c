package cfg_test

import (
	"testing"

	"github.com/0x51-dev/gocfg"
)

func onlyA() *cfg.Grammar {
	S := cfg.Variable("S")
	a := cfg.Terminal("a")
	return cfg.New([]cfg.Variable{S}, []cfg.Terminal{a}, []cfg.Production{cfg.NewProduction(S, []cfg.Symbol{a})}, S)
}

func onlyB() *cfg.Grammar {
	S := cfg.Variable("S")
	b := cfg.Terminal("b")
	return cfg.New([]cfg.Variable{S}, []cfg.Terminal{b}, []cfg.Production{cfg.NewProduction(S, []cfg.Symbol{b})}, S)
}

func TestUnion(t *testing.T) {
	u := onlyA().Union(onlyB())
	if !contains(u, "a") || !contains(u, "b") {
		t.Error("union should contain both a and b")
	}
	if contains(u, "ab") {
		t.Error("union should not contain ab")
	}
}

func TestConcatenate(t *testing.T) {
	c := onlyA().Concatenate(onlyB())
	if !contains(c, "ab") {
		t.Error("concatenation should contain ab")
	}
	if contains(c, "a") || contains(c, "ba") {
		t.Error("concatenation should only contain ab")
	}
}

func TestClosureAcceptsEmpty(t *testing.T) {
	c := onlyA().Closure()
	if !contains(c, "") {
		t.Error("closure().contains(epsilon) should be true")
	}
	if !contains(c, "aaa") {
		t.Error("closure should contain aaa")
	}
}

func TestPositiveClosureRejectsEmpty(t *testing.T) {
	p := onlyA().PositiveClosure()
	if contains(p, "") {
		t.Error("positive closure should reject the empty word")
	}
	if !contains(p, "a") || !contains(p, "aaa") {
		t.Error("positive closure should contain a and aaa")
	}
}

func TestReverse(t *testing.T) {
	S := cfg.Variable("S")
	a, b := cfg.Terminal("a"), cfg.Terminal("b")
	g := cfg.New(
		[]cfg.Variable{S},
		[]cfg.Terminal{a, b},
		[]cfg.Production{cfg.NewProduction(S, []cfg.Symbol{a, b})},
		S,
	)
	r := g.Reverse()
	if !contains(r, "ba") {
		t.Error(`reverse(S -> a b) should contain "ba"`)
	}
	if contains(r, "ab") {
		t.Error(`reverse(S -> a b) should not contain "ab"`)
	}
}
