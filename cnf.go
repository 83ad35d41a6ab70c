package cfg

import "fmt"

// RemoveUselessSymbols removes non-generating and unreachable symbols. Two
// passes, as in the original: generating symbols are computed and
// intersected first, then reachability is recomputed against that
// generating-only grammar before the second intersection — reachability
// computed against the original grammar could keep a symbol reachable only
// through a production that the first pass already discarded.
func (g *Grammar) RemoveUselessSymbols() *Grammar {
	generating := g.Generating()
	genSet := make(map[Symbol]bool, len(generating))
	for _, s := range generating {
		genSet[s] = true
	}
	var kept Productions
	for _, p := range g.Productions {
		if !genSet[p.Head] {
			continue
		}
		ok := true
		for _, s := range p.Body {
			if !genSet[s] {
				ok = false
				break
			}
		}
		if ok {
			kept = append(kept, p)
		}
	}
	var vars []Variable
	for _, v := range g.Variables {
		if genSet[v] {
			vars = append(vars, v)
		}
	}
	var terms []Terminal
	for _, t := range g.Terminals {
		if genSet[t] {
			terms = append(terms, t)
		}
	}
	// Route through a treeset so the intermediate grammar's variable order
	// is deterministic regardless of the order Generating() discovered them.
	vars = variablesFromSet(newTreeSetOfVariables(vars))
	tmp := New(vars, terms, kept, g.Start)

	reachable := tmp.Reachable()
	reachSet := make(map[Symbol]bool, len(reachable))
	for _, s := range reachable {
		reachSet[s] = true
	}
	var kept2 Productions
	for _, p := range kept {
		if reachSet[p.Head] {
			kept2 = append(kept2, p)
		}
	}
	var vars2 []Variable
	for _, v := range vars {
		if reachSet[v] {
			vars2 = append(vars2, v)
		}
	}
	var terms2 []Terminal
	for _, t := range terms {
		if reachSet[t] {
			terms2 = append(terms2, t)
		}
	}
	return New(vars2, terms2, kept2, g.Start)
}

// RemoveEpsilon removes epsilon productions, preserving the language except
// possibly the empty word: the empty word survives only if the start symbol
// keeps a direct empty production at the top level (spec invariant 2).
func (g *Grammar) RemoveEpsilon() *Grammar {
	nullable := make(map[Variable]bool)
	for _, v := range g.Nullable() {
		nullable[v] = true
	}
	var out []Production
	for _, p := range g.Productions {
		out = append(out, removeNullableOccurrences(p, nullable, g.Start)...)
	}
	return g.withProductions(out)
}

// removeNullableOccurrences emits every subset-substitution of p obtained by
// independently choosing, for each nullable occurrence in the body, to keep
// or drop it — excluding the all-dropped case unless head is start.
func removeNullableOccurrences(p Production, nullable map[Variable]bool, start Variable) []Production {
	var nullablePos []int
	for i, s := range p.Body {
		if v, ok := s.(Variable); ok && nullable[v] {
			nullablePos = append(nullablePos, i)
		}
	}
	if len(nullablePos) == 0 {
		if len(p.Body) == 0 {
			if p.Head != start {
				return nil
			}
			return []Production{p}
		}
		return []Production{p}
	}
	dropped := make(map[string]bool)
	var out []Production
	n := len(nullablePos)
	for mask := 0; mask < (1 << n); mask++ {
		drop := make(map[int]bool, n)
		for j, pos := range nullablePos {
			if mask&(1<<j) != 0 {
				drop[pos] = true
			}
		}
		var body []Symbol
		for i, s := range p.Body {
			if drop[i] {
				continue
			}
			body = append(body, s)
		}
		if len(body) == 0 {
			if p.Head != start {
				continue
			}
			k := p.Head.String() + "\x00"
			if dropped[k] {
				continue
			}
			dropped[k] = true
			out = append(out, Production{Head: p.Head})
			continue
		}
		out = append(out, NewUnfilteredProduction(p.Head, body))
	}
	return dedupe(out)
}

// EliminateUnitProductions removes productions whose body is a single
// variable, replacing A -> B (for every unit pair (A, B)) with A -> γ for
// every non-unit production B -> γ.
func (g *Grammar) EliminateUnitProductions() *Grammar {
	var nonUnit Productions
	for _, p := range g.Productions {
		if len(p.Body) == 1 {
			if _, ok := p.Body[0].(Variable); ok {
				continue
			}
		}
		nonUnit = append(nonUnit, p)
	}
	byHead := make(map[Variable][]Production)
	for _, p := range nonUnit {
		byHead[p.Head] = append(byHead[p.Head], p)
	}
	out := make([]Production, len(nonUnit))
	copy(out, nonUnit)
	for _, pair := range g.UnitPairs() {
		for _, p := range byHead[pair.To] {
			out = append(out, NewUnfilteredProduction(pair.From, p.Body))
		}
	}
	return g.withProductions(out)
}

// isCanonical reports whether g already satisfies the CNF fixed-point
// shape: no nullable symbol other than the start symbol, every variable in a
// unit pair only with itself, and every symbol both generating and
// reachable.
func (g *Grammar) isCanonical() bool {
	for _, v := range g.Nullable() {
		if v != g.Start {
			return false
		}
	}
	if len(g.UnitPairs()) != len(g.Variables) {
		return false
	}
	total := len(g.Variables) + len(g.Terminals)
	if len(g.Generating()) != total {
		return false
	}
	if len(g.Reachable()) != total {
		return false
	}
	return true
}

// CNFOption configures ToCNF's fresh-variable naming.
type CNFOption func(*cnfConfig)

type cnfConfig struct {
	terminalSuffix    string
	binarizationPrefix string
}

// WithTerminalSuffix overrides the suffix appended to a terminal's value to
// name the fresh variable introduced when that terminal appears inside a
// body of length >= 2. Default "#CNF#".
func WithTerminalSuffix(suffix string) CNFOption {
	return func(c *cnfConfig) { c.terminalSuffix = suffix }
}

// WithBinarizationPrefix overrides the prefix used to name the fresh
// intermediate variables introduced while binarising bodies of length >= 3.
// Default "C#CNF#".
func WithBinarizationPrefix(prefix string) CNFOption {
	return func(c *cnfConfig) { c.binarizationPrefix = prefix }
}

// ToCNF converts the grammar to Chomsky Normal Form. It repeats
// remove-useless / remove-epsilon / remove-useless / eliminate-unit /
// remove-useless until the input is already canonical, then replaces
// terminals inside long bodies and binarises bodies of length >= 3. The
// result is cached: calling ToCNF twice returns the same *Grammar pointer.
func (g *Grammar) ToCNF(opts ...CNFOption) *Grammar {
	if g.cnf != nil {
		return g.cnf
	}
	cfg := cnfConfig{terminalSuffix: "#CNF#", binarizationPrefix: "C#CNF#"}
	for _, o := range opts {
		o(&cfg)
	}
	// A nullable start symbol that also occurs inside a body is put behind a
	// fresh start S' -> S | ε, so the pipeline removes the epsilon from S.
	src := g
	for _, p := range g.Productions {
		for _, s := range p.Body {
			if s == Symbol(g.Start) && src == g && g.GenerateEpsilon() {
				s0 := g.Start + "#START#"
				prods := append(append([]Production{}, g.Productions...),
					NewProduction(s0, []Symbol{g.Start}), Production{Head: s0})
				src = New(g.Variables, g.Terminals, prods, s0)
			}
		}
	}
	result := src.toCNF(cfg)
	g.cnf = result
	return result
}

func (g *Grammar) toCNF(cfg cnfConfig) *Grammar {
	if !g.isCanonical() {
		if len(g.Productions) == 0 {
			return g
		}
		tracer().Debugf("gocfg: CNF pipeline: useless -> epsilon -> useless -> unit -> useless")
		reduced := g.RemoveUselessSymbols().
			RemoveEpsilon().
			RemoveUselessSymbols().
			EliminateUnitProductions().
			RemoveUselessSymbols()
		return reduced.toCNF(cfg)
	}
	productions := withSingleTerminals(g, cfg.terminalSuffix)
	productions = decomposeProductions(g, productions, cfg.binarizationPrefix)
	return New(nil, nil, productions, g.Start)
}

// withSingleTerminals replaces every terminal inside a body of length >= 2
// with a fresh variable T -> terminal.
func withSingleTerminals(g *Grammar, suffix string) []Production {
	termVar := make(map[Terminal]Variable, len(g.Terminals))
	for _, t := range g.Terminals {
		termVar[t] = Variable(t.String() + suffix)
	}
	used := make(map[Terminal]bool)
	var out []Production
	for _, p := range g.Productions {
		if len(p.Body) <= 1 {
			out = append(out, p)
			continue
		}
		body := make([]Symbol, len(p.Body))
		for i, s := range p.Body {
			if t, ok := s.(Terminal); ok {
				body[i] = termVar[t]
				used[t] = true
			} else {
				body[i] = s
			}
		}
		out = append(out, NewUnfilteredProduction(p.Head, body))
	}
	for t := range used {
		out = append(out, NewUnfilteredProduction(termVar[t], []Symbol{t}))
	}
	return out
}

// decomposeProductions binarises every body of length >= 3 by
// left-associating fresh intermediates, reusing an intermediate whenever the
// same body suffix has already produced one.
func decomposeProductions(g *Grammar, productions []Production, prefix string) []Production {
	existing := make(map[Variable]bool, len(g.Variables))
	for _, v := range g.Variables {
		existing[v] = true
	}
	idx := -1
	nextVar := func() Variable {
		for {
			idx++
			v := Variable(fmt.Sprintf("%s%d", prefix, idx))
			if !existing[v] {
				existing[v] = true
				return v
			}
		}
	}

	done := make(map[string]Variable)
	suffixKey := func(body []Symbol) string {
		parts := ""
		for _, s := range body {
			parts += "\x01" + s.String()
		}
		return parts
	}

	var out []Production
	for _, p := range productions {
		body := p.Body
		if len(body) <= 2 {
			out = append(out, p)
			continue
		}
		head := p.Head
		for len(body) > 2 {
			rest := body[1:]
			if v, ok := done[suffixKey(rest)]; ok {
				out = append(out, NewUnfilteredProduction(head, []Symbol{body[0], v}))
				body = nil
				break
			}
			nv := nextVar()
			done[suffixKey(rest)] = nv
			out = append(out, NewUnfilteredProduction(head, []Symbol{body[0], nv}))
			head = nv
			body = rest
		}
		if len(body) == 2 {
			out = append(out, NewUnfilteredProduction(head, body))
		}
	}
	return out
}
