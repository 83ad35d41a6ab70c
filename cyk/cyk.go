// Package cyk implements the Cocke-Younger-Kasami recognizer: table
// construction, membership, and leftmost/rightmost derivation
// reconstruction over a grammar's Chomsky Normal Form.
package cyk

import (
	"fmt"

	"github.com/0x51-dev/gocfg"
)

// backpointer records how a cell's variable was admitted: either a unary
// admission (the terminal that produced it) or a binary admission (the
// split offset and the two contributing variables).
type backpointer struct {
	unary    bool
	terminal cfg.Terminal
	k        int
	left     cfg.Variable
	right    cfg.Variable
}

// Table is a CYK table built for one grammar and one word. Cell (i, j)
// (0 <= j < n-i) holds the back-pointers for the variables deriving
// w[i:i+j+1], keyed by variable, first-admitted wins.
type Table struct {
	g     *cfg.Grammar // the CNF grammar the table was built over
	word  []cfg.Terminal
	cells [][]map[cfg.Variable]backpointer
}

// New builds the CYK table for w against g (converted to Chomsky Normal
// Form internally; g itself is untouched). An empty word is not given a
// table row — use Table.Contains, which consults GenerateEpsilon directly.
func New(g *cfg.Grammar, w []cfg.Terminal) *Table {
	cnf := g.ToCNF()
	n := len(w)
	t := &Table{g: cnf, word: append([]cfg.Terminal(nil), w...)}
	if n == 0 {
		return t
	}
	t.cells = make([][]map[cfg.Variable]backpointer, n)
	for i := range t.cells {
		t.cells[i] = make([]map[cfg.Variable]backpointer, n-i)
		for j := range t.cells[i] {
			t.cells[i][j] = make(map[cfg.Variable]backpointer)
		}
	}

	admit := func(i, j int, v cfg.Variable, bp backpointer) {
		if _, ok := t.cells[i][j][v]; !ok {
			t.cells[i][j][v] = bp
		}
	}

	for i, term := range w {
		for _, p := range cnf.Productions {
			if len(p.Body) != 1 {
				continue
			}
			pt, ok := p.Body[0].(cfg.Terminal)
			if !ok || pt != term {
				continue
			}
			admit(i, 0, p.Head, backpointer{unary: true, terminal: term})
		}
	}

	for length := 2; length <= n; length++ {
		for i := 0; i+length <= n; i++ {
			j := length - 1
			for k := 0; k < j; k++ {
				left := t.cells[i][k]
				right := t.cells[i+k+1][j-k-1]
				for _, p := range cnf.Productions {
					if len(p.Body) != 2 {
						continue
					}
					lv, ok1 := p.Body[0].(cfg.Variable)
					rv, ok2 := p.Body[1].(cfg.Variable)
					if !ok1 || !ok2 {
						continue
					}
					if _, ok := left[lv]; !ok {
						continue
					}
					if _, ok := right[rv]; !ok {
						continue
					}
					admit(i, j, p.Head, backpointer{k: k, left: lv, right: rv})
				}
			}
		}
	}
	return t
}

// Contains reports whether the word belongs to the grammar's language. The
// empty word is handled separately, by consulting GenerateEpsilon rather
// than the table.
func (t *Table) Contains() bool {
	if len(t.word) == 0 {
		return t.g.GenerateEpsilon()
	}
	_, ok := t.cells[0][len(t.word)-1][t.g.Start]
	return ok
}

// Step is one expansion in a derivation: the production applied (in the
// underlying CNF grammar) and the sentential form immediately after
// applying it.
type Step struct {
	Production cfg.Production
	Form       []cfg.Symbol
}

// node is one symbol of a sentential form under construction, tagged with
// the span of w it covers so its back-pointer cell can be looked up once
// it is chosen for expansion. Terminals (and already-final nodes) carry a
// zero span and are never looked up again.
type node struct {
	symbol cfg.Symbol
	i, j   int // substring w[i:i+j+1]; meaningful only while symbol is a Variable
}

// LeftmostDerivation reconstructs the leftmost derivation of the word: at
// each step the leftmost not-yet-terminal symbol is expanded using its
// back-pointer. Returns ErrNoDerivation (via cfg.ErrNoDerivation) if the
// word is not in the language.
func (t *Table) LeftmostDerivation() ([]Step, error) {
	return t.derive(true)
}

// RightmostDerivation is symmetric to LeftmostDerivation: the rightmost
// not-yet-terminal symbol is expanded at each step.
func (t *Table) RightmostDerivation() ([]Step, error) {
	return t.derive(false)
}

func (t *Table) derive(leftmost bool) ([]Step, error) {
	if !t.Contains() {
		return nil, fmt.Errorf("%w: word not in language", cfg.ErrNoDerivation)
	}
	if len(t.word) == 0 {
		return nil, nil
	}
	nodes := []node{{symbol: t.g.Start, i: 0, j: len(t.word) - 1}}

	findTarget := func() int {
		if leftmost {
			for i, n := range nodes {
				if _, ok := n.symbol.(cfg.Variable); ok {
					return i
				}
			}
			return -1
		}
		for i := len(nodes) - 1; i >= 0; i-- {
			if _, ok := nodes[i].symbol.(cfg.Variable); ok {
				return i
			}
		}
		return -1
	}

	var steps []Step
	for {
		idx := findTarget()
		if idx < 0 {
			break
		}
		v := nodes[idx].symbol.(cfg.Variable)
		bp := t.cells[nodes[idx].i][nodes[idx].j][v]
		if bp.unary {
			nodes[idx] = node{symbol: bp.terminal}
			steps = append(steps, Step{
				Production: cfg.NewUnfilteredProduction(v, []cfg.Symbol{bp.terminal}),
				Form:       frontier(nodes),
			})
			continue
		}
		leftNode := node{symbol: bp.left, i: nodes[idx].i, j: bp.k}
		rightNode := node{symbol: bp.right, i: nodes[idx].i + bp.k + 1, j: nodes[idx].j - bp.k - 1}
		nodes = append(nodes[:idx], append([]node{leftNode, rightNode}, nodes[idx+1:]...)...)
		steps = append(steps, Step{
			Production: cfg.NewUnfilteredProduction(v, []cfg.Symbol{bp.left, bp.right}),
			Form:       frontier(nodes),
		})
	}
	return steps, nil
}

func frontier(nodes []node) []cfg.Symbol {
	out := make([]cfg.Symbol, len(nodes))
	for i, n := range nodes {
		out[i] = n.symbol
	}
	return out
}
