package cfg

import "fmt"

// substSuffix tags every renamed variable with a unique generation index so
// repeated substitutions never collide.
const substSuffix = "#SUBS#"

// Substitute replaces every occurrence of a terminal key in substitution
// with the language of the corresponding grammar: every variable of the
// host grammar and of every substituted grammar is suffixed with a unique
// tag to prevent name collisions, then each tᵢ occurrence in the host's
// bodies is replaced with the renamed start symbol of Gᵢ.
func (g *Grammar) Substitute(substitution map[Terminal]*Grammar) *Grammar {
	idx := 0
	hostRename := make(map[Variable]Variable, len(g.Variables))
	for _, v := range g.Variables {
		hostRename[v] = Variable(fmt.Sprintf("%s%s%d", v, substSuffix, idx))
		idx++
	}

	var allVars []Variable
	for _, v := range hostRename {
		allVars = append(allVars, v)
	}
	var productions []Production
	terminals := append([]Terminal(nil), g.Terminals...)
	replacement := make(map[Terminal]Variable, len(substitution))

	for t, sub := range substitution {
		localRename := make(map[Variable]Variable, len(sub.Variables))
		for _, v := range sub.Variables {
			localRename[v] = Variable(fmt.Sprintf("%s%s%d", v, substSuffix, idx))
			idx++
			allVars = append(allVars, localRename[v])
		}
		for _, p := range sub.Productions {
			body := make([]Symbol, len(p.Body))
			for i, s := range p.Body {
				if v, ok := s.(Variable); ok {
					if rv, ok2 := localRename[v]; ok2 {
						body[i] = rv
						continue
					}
				}
				body[i] = s
			}
			productions = append(productions, NewUnfilteredProduction(localRename[p.Head], body))
		}
		replacement[t] = localRename[sub.Start]
		terminals = append(terminals, sub.Terminals...)
	}

	for _, p := range g.Productions {
		body := make([]Symbol, len(p.Body))
		for i, s := range p.Body {
			switch v := s.(type) {
			case Variable:
				body[i] = hostRename[v]
			case Terminal:
				if rv, ok := replacement[v]; ok {
					body[i] = rv
				} else {
					body[i] = v
				}
			}
		}
		productions = append(productions, NewUnfilteredProduction(hostRename[p.Head], body))
	}

	return New(allVars, terminals, productions, hostRename[g.Start])
}

// Union returns a grammar recognizing L(g) ∪ L(other).
func (g *Grammar) Union(other *Grammar) *Grammar {
	start := Variable("#STARTUNION#")
	t0, t1 := Terminal("#0UNION#"), Terminal("#1UNION#")
	scaffold := New(
		[]Variable{start},
		[]Terminal{t0, t1},
		[]Production{
			NewProduction(start, []Symbol{t0}),
			NewProduction(start, []Symbol{t1}),
		},
		start,
	)
	return scaffold.Substitute(map[Terminal]*Grammar{t0: g, t1: other})
}

// Concatenate returns a grammar recognizing L(g) · L(other).
func (g *Grammar) Concatenate(other *Grammar) *Grammar {
	start := Variable("#STARTCONC#")
	t0, t1 := Terminal("#0CONC#"), Terminal("#1CONC#")
	scaffold := New(
		[]Variable{start},
		[]Terminal{t0, t1},
		[]Production{NewProduction(start, []Symbol{t0, t1})},
		start,
	)
	return scaffold.Substitute(map[Terminal]*Grammar{t0: g, t1: other})
}

// Closure returns a grammar recognizing L(g)* (Kleene closure).
func (g *Grammar) Closure() *Grammar {
	start := Variable("#STARTCLOS#")
	t1 := Terminal("#1CLOS#")
	scaffold := New(
		[]Variable{start},
		[]Terminal{t1},
		[]Production{
			NewProduction(start, []Symbol{t1}),
			NewProduction(start, []Symbol{start, start}),
			{Head: start},
		},
		start,
	)
	return scaffold.Substitute(map[Terminal]*Grammar{t1: g})
}

// PositiveClosure returns a grammar recognizing L(g)+ (positive closure).
func (g *Grammar) PositiveClosure() *Grammar {
	start := Variable("#STARTPOSCLOS#")
	a := Variable("#VARPOSCLOS#")
	t1 := Terminal("#1POSCLOS#")
	scaffold := New(
		[]Variable{start, a},
		[]Terminal{t1},
		[]Production{
			NewProduction(start, []Symbol{t1, a}),
			NewProduction(a, []Symbol{a, a}),
			NewProduction(a, []Symbol{t1}),
			{Head: a},
		},
		start,
	)
	return scaffold.Substitute(map[Terminal]*Grammar{t1: g})
}

// Reverse returns a grammar recognizing the reversal of every word in
// L(g): every production's body is reversed in place, variables, terminals
// and the start symbol are unchanged.
func (g *Grammar) Reverse() *Grammar {
	out := make([]Production, len(g.Productions))
	for i, p := range g.Productions {
		body := make([]Symbol, len(p.Body))
		for j, s := range p.Body {
			body[len(p.Body)-1-j] = s
		}
		out[i] = NewUnfilteredProduction(p.Head, body)
	}
	return New(g.Variables, g.Terminals, out, g.Start)
}
