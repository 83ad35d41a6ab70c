package cfg

import (
	"fmt"

	"github.com/emirpasic/gods/sets/treeset"
)

// Grammar is a context-free grammar G = (V, T, S, P). Grammars are
// immutable once constructed: every transformation (CNF, algebra,
// intersection, ...) returns a fresh *Grammar. The derived caches below are
// filled lazily on first use, and the fixed-point analyses decrement and
// restore shared counters while they run; nothing is locked, so a *Grammar
// is not safe for concurrent use.
type Grammar struct {
	Variables   []Variable
	Terminals   []Terminal
	Start       Variable
	Productions Productions

	fp         *fixpointEngine
	generating []Symbol
	nullable   []Variable
	reachable  []Symbol
	unitPairs  []UnitPair
	cnf        *Grammar
	first      map[Variable]map[Symbol]bool
	follow     map[Variable]map[string]bool
}

// New builds a Grammar from the given variables, terminals, productions and
// start symbol. Per spec, construction is total: variables and terminals
// appearing in productions (or the start symbol itself) but missing from
// the supplied sets are added silently rather than rejected.
func New(variables []Variable, terminals []Terminal, productions []Production, start Variable) *Grammar {
	vSeen := make(map[Variable]bool, len(variables))
	var vs []Variable
	addVar := func(v Variable) {
		if !vSeen[v] {
			vSeen[v] = true
			vs = append(vs, v)
		}
	}
	for _, v := range variables {
		addVar(v)
	}
	if start != "" {
		addVar(start)
	}

	tSeen := make(map[Terminal]bool, len(terminals))
	var ts []Terminal
	addTerm := func(t Terminal) {
		if t == Epsilon {
			return
		}
		if !tSeen[t] {
			tSeen[t] = true
			ts = append(ts, t)
		}
	}
	for _, t := range terminals {
		addTerm(t)
	}

	for _, p := range productions {
		addVar(p.Head)
		for _, s := range p.Body {
			switch v := s.(type) {
			case Variable:
				addVar(v)
			case Terminal:
				addTerm(v)
			}
		}
	}

	return &Grammar{
		Variables:   vs,
		Terminals:   ts,
		Start:       start,
		Productions: dedupe(productions),
	}
}

// withProductions constructs a fresh Grammar sharing this grammar's
// variables, terminals and start symbol but a new production set. Used by
// every transformation to keep the copy-on-write discipline: caches never
// carry over to the new grammar.
func (g *Grammar) withProductions(productions []Production) *Grammar {
	return New(g.Variables, g.Terminals, productions, g.Start)
}

func (g *Grammar) String() string {
	vs := make([]Symbol, len(g.Variables))
	for i, v := range g.Variables {
		vs[i] = v
	}
	ts := make([]Symbol, len(g.Terminals))
	for i, t := range g.Terminals {
		ts[i] = t
	}
	return fmt.Sprintf("( { %s }, { %s }, [ %s ], %s )",
		join(vs, ", "), join(ts, ", "), g.Productions.String(), g.Start)
}

// IsEmpty reports whether the grammar generates no terminal strings at all,
// i.e. the start symbol is not generating.
func (g *Grammar) IsEmpty() bool {
	if g.Start == "" {
		return true
	}
	return !g.isGenerating(g.Start)
}

func newTreeSetOfVariables(vars []Variable) *treeset.Set {
	items := make([]any, len(vars))
	for i, v := range vars {
		items[i] = v
	}
	return treeset.NewWith(func(a, b any) int {
		av, bv := a.(Variable), b.(Variable)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	}, items...)
}

func variablesFromSet(s *treeset.Set) []Variable {
	values := s.Values()
	out := make([]Variable, len(values))
	for i, v := range values {
		out[i] = v.(Variable)
	}
	return out
}
