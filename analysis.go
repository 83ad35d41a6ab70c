package cfg

import (
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
)

// symbolComparator orders Symbol values deterministically: Terminals before
// Variables, then lexically by value. Used for the gods treeset that backs
// every fixed-point working set, so iteration order (and therefore e.g.
// Grammar.Generating()) is reproducible across runs.
func symbolComparator(a, b any) int {
	ka, kb := symbolKey(a.(Symbol)), symbolKey(b.(Symbol))
	switch {
	case ka < kb:
		return -1
	case ka > kb:
		return 1
	default:
		return 0
	}
}

func symbolKey(s Symbol) string {
	if _, ok := s.(Variable); ok {
		return "V:" + s.String()
	}
	return "T:" + s.String()
}

func newSymbolSet(seed ...Symbol) *treeset.Set {
	items := make([]any, len(seed))
	for i, s := range seed {
		items[i] = s
	}
	return treeset.NewWith(symbolComparator, items...)
}

// impactRef names the production (by head variable and position among that
// head's productions) whose remaining counter a symbol decrements when it
// joins a fixed-point working set.
type impactRef struct {
	head Variable
	idx  int
}

// fixpointEngine is the shared bottom-up engine behind the generating,
// nullable and generate-epsilon analyses (spec §4.1). Built once per
// Grammar and cached; every public run restores the remaining-counter
// table before returning so the same tables serve every analysis without
// recomputation.
type fixpointEngine struct {
	// remaining[head] holds one counter per production with that head and a
	// non-empty body, initialised to the body length.
	remaining map[Variable][]int
	// impacts[s] lists every (head, index) pair whose counter decrements
	// when s enters the working set.
	impacts map[Symbol][]impactRef
	// empties are the heads of empty-body productions, in first-seen order.
	empties []Variable
}

func newFixpointEngine(g *Grammar) *fixpointEngine {
	e := &fixpointEngine{
		remaining: make(map[Variable][]int),
		impacts:   make(map[Symbol][]impactRef),
	}
	seenEmpty := make(map[Variable]bool)
	for _, p := range g.Productions {
		if len(p.Body) == 0 {
			if !seenEmpty[p.Head] {
				seenEmpty[p.Head] = true
				e.empties = append(e.empties, p.Head)
			}
			continue
		}
		idx := len(e.remaining[p.Head])
		e.remaining[p.Head] = append(e.remaining[p.Head], len(p.Body))
		for _, s := range p.Body {
			e.impacts[s] = append(e.impacts[s], impactRef{head: p.Head, idx: idx})
		}
	}
	return e
}

// run executes the shared worklist over the shared remaining table and
// restores every counter it decremented before returning.
func (e *fixpointEngine) run(seedExtra []Symbol) *treeset.Set {
	working := newSymbolSet(Symbol(Epsilon))
	stack := arraylist.New(any(Symbol(Epsilon)))
	push := func(s Symbol) {
		if !working.Contains(s) {
			working.Add(s)
			stack.Add(any(s))
		}
	}
	for _, v := range e.empties {
		push(Variable(v))
	}
	for _, s := range seedExtra {
		push(s)
	}

	var touched []impactRef
	for stack.Size() > 0 {
		last := stack.Size() - 1
		cur, _ := stack.Get(last)
		stack.Remove(last)
		for _, ref := range e.impacts[cur.(Symbol)] {
			if working.Contains(Symbol(ref.head)) {
				continue
			}
			touched = append(touched, ref)
			e.remaining[ref.head][ref.idx]--
			if e.remaining[ref.head][ref.idx] == 0 {
				push(Symbol(ref.head))
			}
		}
	}
	for _, ref := range touched {
		e.remaining[ref.head][ref.idx]++
	}
	working.Remove(Symbol(Epsilon))
	return working
}

// generatesEpsilon is generate-epsilon's variant of run: it operates on a deep copy of
// the remaining table (never touching the shared cache) and short-circuits
// the instant start joins the working set.
func (e *fixpointEngine) generatesEpsilon(start Variable) bool {
	working := map[Variable]bool{}
	var stack []Variable
	push := func(v Variable) bool {
		if v == start {
			return true
		}
		if !working[v] {
			working[v] = true
			stack = append(stack, v)
		}
		return false
	}
	for _, v := range e.empties {
		if push(v) {
			return true
		}
	}
	remaining := make(map[Variable][]int, len(e.remaining))
	for h, counters := range e.remaining {
		cp := make([]int, len(counters))
		copy(cp, counters)
		remaining[h] = cp
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, ref := range e.impacts[Symbol(cur)] {
			if working[ref.head] {
				continue
			}
			remaining[ref.head][ref.idx]--
			if remaining[ref.head][ref.idx] == 0 {
				if push(ref.head) {
					return true
				}
			}
		}
	}
	return false
}

func symbolsOf(set *treeset.Set) []Symbol {
	values := set.Values()
	out := make([]Symbol, len(values))
	for i, v := range values {
		out[i] = v.(Symbol)
	}
	return out
}

func variablesOf(set *treeset.Set) []Variable {
	var out []Variable
	for _, v := range set.Values() {
		if vr, ok := v.(Symbol).(Variable); ok {
			out = append(out, vr)
		}
	}
	return out
}

func (g *Grammar) engine() *fixpointEngine {
	if g.fp == nil {
		g.fp = newFixpointEngine(g)
	}
	return g.fp
}

// Generating returns the set of symbols from which some terminal string is
// derivable: every Terminal, plus every Variable that can reach a terminal
// string.
func (g *Grammar) Generating() []Symbol {
	if g.generating == nil {
		seed := make([]Symbol, len(g.Terminals))
		for i, t := range g.Terminals {
			seed[i] = t
		}
		g.generating = symbolsOf(g.engine().run(seed))
	}
	return g.generating
}

func (g *Grammar) isGenerating(s Symbol) bool {
	for _, x := range g.Generating() {
		if x == s {
			return true
		}
	}
	return false
}

// Nullable returns the variables that derive the empty string.
func (g *Grammar) Nullable() []Variable {
	if g.nullable == nil {
		g.nullable = variablesOf(g.engine().run(nil))
	}
	return g.nullable
}

func (g *Grammar) isNullable(s Symbol) bool {
	v, ok := s.(Variable)
	if !ok {
		return s == Symbol(Epsilon)
	}
	for _, n := range g.Nullable() {
		if n == v {
			return true
		}
	}
	return false
}

// GenerateEpsilon reports whether the grammar derives the empty string,
// i.e. whether the start symbol is nullable. It runs on a private copy of
// the counter table and short-circuits as soon as the start symbol would
// join the working set, so it never corrupts the cached nullable/generating
// state.
func (g *Grammar) GenerateEpsilon() bool {
	if g.Start == "" {
		return false
	}
	return g.engine().generatesEpsilon(g.Start)
}

// Reachable returns the symbols appearing in some sentential form derivable
// from the start symbol: a forward BFS over the head -> body-element
// relation, excluding Epsilon edges.
func (g *Grammar) Reachable() []Symbol {
	if g.reachable != nil {
		return g.reachable
	}
	edges := make(map[Variable][]Symbol)
	for _, p := range g.Productions {
		for _, s := range p.Body {
			if s == Symbol(Epsilon) {
				continue
			}
			edges[p.Head] = append(edges[p.Head], s)
		}
	}
	seen := newSymbolSet()
	var queue []Variable
	if g.Start != "" {
		seen.Add(Symbol(g.Start))
		queue = append(queue, g.Start)
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range edges[cur] {
			if !seen.Contains(next) {
				seen.Add(next)
				if v, ok := next.(Variable); ok {
					queue = append(queue, v)
				}
			}
		}
	}
	g.reachable = symbolsOf(seen)
	return g.reachable
}

func (g *Grammar) isReachable(s Symbol) bool {
	for _, x := range g.Reachable() {
		if x == s {
			return true
		}
	}
	return false
}

// UnitPair is a pair (A, B) such that A derives B using only
// single-variable-body productions (A ⇒* B).
type UnitPair struct {
	From Variable
	To   Variable
}

// UnitPairs returns the reflexive-transitive closure of the "A -> B"
// relation (productions whose body is a single variable).
func (g *Grammar) UnitPairs() []UnitPair {
	if g.unitPairs != nil {
		return g.unitPairs
	}
	byHead := make(map[Variable][]Variable)
	for _, p := range g.Productions {
		if len(p.Body) == 1 {
			if v, ok := p.Body[0].(Variable); ok {
				byHead[p.Head] = append(byHead[p.Head], v)
			}
		}
	}
	seen := make(map[UnitPair]bool)
	var pairs []UnitPair
	var stack []UnitPair
	add := func(p UnitPair) {
		if !seen[p] {
			seen[p] = true
			pairs = append(pairs, p)
			stack = append(stack, p)
		}
	}
	for _, v := range g.Variables {
		add(UnitPair{From: v, To: v})
	}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range byHead[p.To] {
			add(UnitPair{From: p.From, To: next})
		}
	}
	g.unitPairs = pairs
	return g.unitPairs
}
