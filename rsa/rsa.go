// Package rsa builds a recursive-state automaton from a grammar: one
// DFA ("box") per nonterminal, labelled by that nonterminal,
// recognising the nonterminal's right-hand sides viewed as a regular
// expression (alternation over bodies, concatenation within a body, the
// empty body as an epsilon literal).
//
// The source builds each box by emitting a textual regex and re-parsing
// it through a general regex-to-DFA compiler. FromCFG instead does a
// direct structural pass over the grammar's own productions: every
// alternative becomes a chain of NFA states, every head's chains share one
// start state, and the NFA is determinised by subset construction. The
// resulting box recognises the same language as the regex route but is not
// minimised: equivalent states (e.g. the ends of two alternatives sharing a
// suffix) stay distinct.
package rsa

import (
	"sort"
	"strconv"
	"strings"

	"github.com/0x51-dev/gocfg"
	"github.com/0x51-dev/gocfg/automaton"
)

// Box is a DFA labelled by a nonterminal. Boxes built by FromCFG are not
// minimised.
type Box struct {
	Label     cfg.Variable
	Automaton *automaton.Table
}

// Automaton is a recursive-state automaton: a set of boxes, exactly one per
// label, with a distinguished initial label.
type Automaton struct {
	Initial cfg.Variable
	Boxes   map[cfg.Variable]*Box
}

// FromCFG builds one box per nonterminal of g, labelled by that
// nonterminal, with g.Start as the initial label.
func FromCFG(g *cfg.Grammar) *Automaton {
	byHead := make(map[cfg.Variable][]cfg.Production)
	for _, p := range g.Productions {
		byHead[p.Head] = append(byHead[p.Head], p)
	}
	boxes := make(map[cfg.Variable]*Box, len(g.Variables))
	for _, v := range g.Variables {
		boxes[v] = &Box{Label: v, Automaton: boxFromBodies(byHead[v])}
	}
	return &Automaton{Initial: g.Start, Boxes: boxes}
}

// FromAutomaton wraps an externally supplied deterministic automaton as a
// single box under the given label (spec §4.9, "from a regex: a single box
// labelled by a caller-provided initial label" generalises directly to any
// already-built automaton).
func FromAutomaton(label cfg.Variable, a *automaton.Table) *Automaton {
	return &Automaton{Initial: label, Boxes: map[cfg.Variable]*Box{label: {Label: label, Automaton: a}}}
}

// regexOperand is the external regex contract (spec §6):
// to_epsilon_nfa().minimize() produces a minimal DFA usable as a box. No
// concrete regex compiler ships with this module (the grammar library
// treats it, like the automaton and PDA, as an external collaborator); any
// type providing this method can be passed to FromRegex.
type regexOperand interface {
	ToEpsilonNFAMinimalDFA() *automaton.Table
}

// FromRegex builds a single-box automaton from an external regex operand,
// labelled by the caller-supplied initial label.
func FromRegex(label cfg.Variable, regex regexOperand) *Automaton {
	return FromAutomaton(label, regex.ToEpsilonNFAMinimalDFA())
}

// nfaState is a bare state index in the intermediate NFA built per head.
type nfaState int

type nfa struct {
	start       nfaState
	accept      map[nfaState]bool
	transitions map[nfaState]map[string][]nfaState
	next        nfaState
}

func newNFA() *nfa {
	return &nfa{accept: make(map[nfaState]bool), transitions: make(map[nfaState]map[string][]nfaState)}
}

func (n *nfa) newState() nfaState {
	s := n.next
	n.next++
	return s
}

func (n *nfa) addTransition(from nfaState, label string, to nfaState) {
	if n.transitions[from] == nil {
		n.transitions[from] = make(map[string][]nfaState)
	}
	n.transitions[from][label] = append(n.transitions[from][label], to)
}

// boxFromBodies builds the (unminimised) DFA for one head's alternatives:
// alternation is modelled by every alternative's chain starting at the
// shared start state, concatenation by the chain itself, and the empty
// body by marking the start state accepting directly.
func boxFromBodies(productions []cfg.Production) *automaton.Table {
	n := newNFA()
	n.start = n.newState()
	for _, p := range productions {
		cur := n.start
		if len(p.Body) == 0 {
			n.accept[cur] = true
			continue
		}
		for _, s := range p.Body {
			next := n.newState()
			n.addTransition(cur, s.String(), next)
			cur = next
		}
		n.accept[cur] = true
	}
	return determinise(n)
}

// determinise runs subset construction: since boxFromBodies never emits an
// epsilon transition, no epsilon-closure step is needed.
func determinise(n *nfa) *automaton.Table {
	startSet := []nfaState{n.start}
	startKey := setKey(startSet)
	table := automaton.NewTable(startKey)
	if setAccepts(startSet, n.accept) {
		table.SetAccepting(startKey)
	}

	seen := map[string][]nfaState{startKey: startSet}
	queue := []string{startKey}
	for len(queue) > 0 {
		curKey := queue[0]
		queue = queue[1:]
		cur := seen[curKey]

		byLabel := make(map[string]map[nfaState]bool)
		for _, s := range cur {
			for label, nexts := range n.transitions[s] {
				if byLabel[label] == nil {
					byLabel[label] = make(map[nfaState]bool)
				}
				for _, ns := range nexts {
					byLabel[label][ns] = true
				}
			}
		}
		labels := make([]string, 0, len(byLabel))
		for l := range byLabel {
			labels = append(labels, l)
		}
		sort.Strings(labels)
		for _, label := range labels {
			var next []nfaState
			for s := range byLabel[label] {
				next = append(next, s)
			}
			sort.Slice(next, func(i, j int) bool { return next[i] < next[j] })
			nextKey := setKey(next)
			if _, ok := seen[nextKey]; !ok {
				seen[nextKey] = next
				queue = append(queue, nextKey)
				if setAccepts(next, n.accept) {
					table.SetAccepting(nextKey)
				}
			}
			table.AddTransition(curKey, label, nextKey)
		}
	}
	return table
}

func setAccepts(set []nfaState, accept map[nfaState]bool) bool {
	for _, s := range set {
		if accept[s] {
			return true
		}
	}
	return false
}

func setKey(set []nfaState) string {
	parts := make([]string, len(set))
	for i, s := range set {
		parts[i] = strconv.Itoa(int(s))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// Equal reports whether a and b have the same initial label, exactly the
// same labels, and, per label, boxes that pass tablesIsomorphic. Boxes are
// compared one by one as plain DFAs over their labels; this is not full
// language equivalence of the recursive automaton as a whole (which would
// require resolving inter-box calls transitively).
func (a *Automaton) Equal(b *Automaton) bool {
	if a.Initial != b.Initial || len(a.Boxes) != len(b.Boxes) {
		return false
	}
	for label, boxA := range a.Boxes {
		boxB, ok := b.Boxes[label]
		if !ok || !tablesIsomorphic(boxA.Automaton, boxB.Automaton) {
			return false
		}
	}
	return true
}

// IsEquivalentTo is an alias for Equal kept for readability at call sites
// that compare automata rather than grammars.
func (a *Automaton) IsEquivalentTo(b *Automaton) bool { return a.Equal(b) }

// tablesIsomorphic walks the product of two deterministic automata from
// their start states and reports whether every reachable state pair agrees
// on acceptance and on which symbols have a defined transition. For
// automata without dead states (such as FromCFG's boxes) this is language
// equivalence; a transition into a dead state on one side only counts as a
// difference.
func tablesIsomorphic(a, b *automaton.Table) bool {
	type pair struct{ a, b string }
	as, bs := a.Start(), b.Start()
	if len(as) != 1 || len(bs) != 1 {
		return false
	}
	start := pair{as[0], bs[0]}
	visited := map[pair]bool{start: true}
	queue := []pair{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if a.IsAccepting(cur.a) != b.IsAccepting(cur.b) {
			return false
		}
		labels := map[string]bool{}
		for _, l := range a.Labels(cur.a) {
			labels[l] = true
		}
		for _, l := range b.Labels(cur.b) {
			labels[l] = true
		}
		for l := range labels {
			na, oka := stepOne(a, cur.a, l)
			nb, okb := stepOne(b, cur.b, l)
			if oka != okb {
				return false
			}
			if !oka {
				continue
			}
			p := pair{na, nb}
			if !visited[p] {
				visited[p] = true
				queue = append(queue, p)
			}
		}
	}
	return true
}

func stepOne(t *automaton.Table, state, label string) (string, bool) {
	next := t.Step(state, label)
	if len(next) != 1 {
		return "", false
	}
	return next[0], true
}
