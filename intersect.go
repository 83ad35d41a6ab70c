package cfg

import "fmt"

// dfaOperand is intersect.go's own view of the external automaton contract
// (spec §6): a start-state set, a final-state set, a transition function,
// and emptiness/empty-word tests. It is declared independently rather than
// imported from package automaton so that cfg never depends on a concrete
// automaton implementation; automaton.Table (and any future regex-backed
// automaton with the same method shapes) satisfies it structurally.
type dfaOperand interface {
	Start() []string
	Final() []string
	Step(state string, on string) []string
	IsEmpty() bool
	AcceptsEmptyWord() bool
}

// combinedVariable names the product-construction variable ⟨p, X, r⟩.
func combinedVariable(p string, x Variable, r string) Variable {
	return Variable(fmt.Sprintf("<%s,%s,%s>", p, x, r))
}

// Intersect computes a grammar recognising L(g) ∩ L(operand) via the
// triple-state product construction (spec §4.7). operand must satisfy the
// external automaton contract (as automaton.Table does); passing anything
// else, or a non-deterministic automaton (more than one start state),
// fails with ErrUnsupportedOperand. The result is not reduced; call
// RemoveUselessSymbols or ToCNF on it if a minimal grammar is wanted.
func (g *Grammar) Intersect(operand any) (*Grammar, error) {
	a, ok := operand.(dfaOperand)
	if !ok {
		return nil, fmt.Errorf("%w: %T is neither a finite automaton nor a regular expression", ErrUnsupportedOperand, operand)
	}
	starts := a.Start()
	if len(starts) != 1 {
		return nil, fmt.Errorf("%w: automaton has %d start states, want exactly 1 (determinise first)", ErrUnsupportedOperand, len(starts))
	}
	q0 := starts[0]
	cnf := g.ToCNF()

	states := discoverStates(a, cnf.Terminals, q0)
	finals := make(map[string]bool)
	for _, f := range a.Final() {
		finals[f] = true
	}

	tracer().Debugf("gocfg: intersect: %d CNF variables x %d automaton states", len(cnf.Variables), len(states))

	var productions []Production
	for _, p := range cnf.Productions {
		switch len(p.Body) {
		case 2:
			y, ok1 := p.Body[0].(Variable)
			z, ok2 := p.Body[1].(Variable)
			if !ok1 || !ok2 {
				continue
			}
			for _, pState := range states {
				for _, r := range states {
					for _, q := range states {
						productions = append(productions, NewUnfilteredProduction(
							combinedVariable(pState, p.Head, r),
							[]Symbol{combinedVariable(pState, y, q), combinedVariable(q, z, r)},
						))
					}
				}
			}
		case 1:
			t, ok := p.Body[0].(Terminal)
			if !ok {
				continue
			}
			for _, pState := range states {
				next := a.Step(pState, t.String())
				if len(next) != 1 {
					continue
				}
				productions = append(productions, NewUnfilteredProduction(
					combinedVariable(pState, p.Head, next[0]),
					[]Symbol{t},
				))
			}
		}
	}

	start := Variable("#STARTISECT#")
	for f := range finals {
		productions = append(productions, NewUnfilteredProduction(start, []Symbol{combinedVariable(q0, cnf.Start, f)}))
	}
	if g.GenerateEpsilon() && a.AcceptsEmptyWord() {
		productions = append(productions, Production{Head: start})
	}

	return New(nil, nil, productions, start), nil
}

// discoverStates returns the automaton states reachable from q0 by
// stepping on the grammar's terminal alphabet: the contract exposes no
// "all states" accessor, and any automaton state unreachable under this
// alphabet cannot participate in a derivation anyway.
func discoverStates(a dfaOperand, terminals []Terminal, q0 string) []string {
	seen := map[string]bool{q0: true}
	queue := []string{q0}
	order := []string{q0}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, t := range terminals {
			for _, next := range a.Step(cur, t.String()) {
				if !seen[next] {
					seen[next] = true
					queue = append(queue, next)
					order = append(order, next)
				}
			}
		}
	}
	for _, f := range a.Final() {
		if !seen[f] {
			seen[f] = true
			order = append(order, f)
		}
	}
	return order
}
