package automaton_test

import (
	"testing"

	"github.com/0x51-dev/gocfg/automaton"
)

func asbStar() *automaton.Table {
	t := automaton.NewTable("q0")
	t.AddTransition("q0", "a", "q1")
	t.AddTransition("q1", "b", "q1")
	t.SetAccepting("q1")
	t.SetAccepting("q0")
	return t
}

func TestTableIsEmpty(t *testing.T) {
	a := asbStar()
	if a.IsEmpty() {
		t.Error("IsEmpty() = true, want false")
	}
	empty := automaton.NewTable("dead")
	if !empty.IsEmpty() {
		t.Error("IsEmpty() = false, want true")
	}
}

func TestTableStepAndAccept(t *testing.T) {
	a := asbStar()
	if !a.AcceptsEmptyWord() {
		t.Error("AcceptsEmptyWord() = false, want true")
	}
	next := a.Step("q0", "a")
	if len(next) != 1 || next[0] != "q1" {
		t.Errorf("Step(q0, a) = %v, want [q1]", next)
	}
	if got := a.Step("q1", "a"); got != nil {
		t.Errorf("Step(q1, a) = %v, want nil", got)
	}
}

func TestTableIsAcceptingAndLabels(t *testing.T) {
	a := asbStar()
	if !a.IsAccepting("q1") {
		t.Error("IsAccepting(q1) = false, want true")
	}
	labels := a.Labels("q1")
	if len(labels) != 1 || labels[0] != "b" {
		t.Errorf("Labels(q1) = %v, want [b]", labels)
	}
}

func TestTableDeterminiseIsNoOp(t *testing.T) {
	a := asbStar()
	if a.Determinise() != automaton.Automaton(a) {
		t.Error("Determinise() should return the same Table")
	}
}
