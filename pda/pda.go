// Package pda encodes a grammar as a single-state pushdown automaton on
// empty stack (spec §4.8) and simulates it, as a reference for the narrow
// PDA contract the core treats as an external collaborator.
package pda

import "github.com/0x51-dev/gocfg"

// StackSymbol is either a variable or terminal spelling, pushed and popped
// as an opaque string: the PDA's stack alphabet is G's terminals union G's
// variables.
type StackSymbol string

// Transition pops Pop and, if Input is non-empty, consumes one input symbol
// equal to Input; it then pushes Push in order, so Push[0] ends up deepest
// and the last element ends up on top (the next symbol examined).
type Transition struct {
	Pop   StackSymbol
	Input string // "" denotes an epsilon-input transition
	Push  []StackSymbol
}

// PDA is a single-state pushdown automaton accepting by empty stack.
type PDA struct {
	Start       StackSymbol
	Transitions []Transition
}

// FromCFG encodes g as described in spec §4.8: for every production
// X -> alpha, an epsilon-input transition pops X and pushes alpha with its
// first symbol on top; for every terminal a, an (a, a) transition pops a
// with empty push. This traces out a leftmost derivation directly: the
// stack's top symbol is always the leftmost not-yet-expanded symbol of
// the current sentential form.
func FromCFG(g *cfg.Grammar) *PDA {
	p := &PDA{Start: StackSymbol(g.Start)}
	for _, prod := range g.Productions {
		push := make([]StackSymbol, len(prod.Body))
		for i, s := range prod.Body {
			push[len(push)-1-i] = StackSymbol(s.String())
		}
		p.Transitions = append(p.Transitions, Transition{
			Pop:  StackSymbol(prod.Head),
			Push: push,
		})
	}
	for _, t := range g.Terminals {
		p.Transitions = append(p.Transitions, Transition{
			Pop:   StackSymbol(t),
			Input: string(t),
		})
	}
	return p
}

// config is one point in the PDA's configuration space: the remaining
// input position and the current stack, top of stack last.
type config struct {
	pos   int
	stack string // stack symbols joined by \x01, top last
}

// Accepts reports whether w is accepted by empty-stack acceptance: some
// sequence of transitions consumes all of w and leaves the stack empty.
// Search is depth-first with a visited set keyed by (position, stack) to
// guard against epsilon-transition loops (e.g. a cycle of unit productions),
// which makes the search sound but, for a pathological grammar whose only
// derivation of w revisits a configuration, incomplete; ordinary grammars
// are unaffected because distinct derivations never share a configuration.
func (p *PDA) Accepts(w []cfg.Terminal) bool {
	byPop := make(map[StackSymbol][]Transition, len(p.Transitions))
	for _, t := range p.Transitions {
		byPop[t.Pop] = append(byPop[t.Pop], t)
	}
	visited := make(map[config]bool)
	var search func(pos int, stack []StackSymbol) bool
	search = func(pos int, stack []StackSymbol) bool {
		if len(stack) == 0 {
			return pos == len(w)
		}
		c := config{pos: pos, stack: joinStack(stack)}
		if visited[c] {
			return false
		}
		visited[c] = true
		top := stack[len(stack)-1]
		rest := stack[:len(stack)-1]
		for _, t := range byPop[top] {
			if t.Input == "" {
				next := append(append([]StackSymbol{}, rest...), t.Push...)
				if search(pos, next) {
					return true
				}
				continue
			}
			if pos < len(w) && string(w[pos]) == t.Input {
				if search(pos+1, rest) {
					return true
				}
			}
		}
		return false
	}
	return search(0, []StackSymbol{p.Start})
}

func joinStack(stack []StackSymbol) string {
	s := ""
	for _, sym := range stack {
		s += "\x01" + string(sym)
	}
	return s
}
