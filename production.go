package cfg

import (
	"fmt"
	"sort"
)

// Production is a rewriting rule Head -> Body. Body is a (possibly empty)
// ordered sequence of Variables and Terminals.
type Production struct {
	Head Variable
	Body []Symbol
}

// NewProduction builds a filtered production: Epsilon elements are stripped
// from body on construction, since Epsilon only ever means "this position
// contributes nothing" in caller-supplied bodies.
func NewProduction(head Variable, body []Symbol) Production {
	var filtered []Symbol
	for _, s := range body {
		if s == Symbol(Epsilon) {
			continue
		}
		filtered = append(filtered, s)
	}
	return Production{Head: head, Body: filtered}
}

// NewUnfilteredProduction builds a production with body preserved verbatim,
// required wherever a construction deliberately inserts a generated
// auxiliary variable that happens to compare equal to nothing special but
// must not be silently dropped (e.g. unit-production elimination, CNF
// binarisation, and intersection, which all copy an existing body as-is).
func NewUnfilteredProduction(head Variable, body []Symbol) Production {
	b := make([]Symbol, len(body))
	copy(b, body)
	return Production{Head: head, Body: b}
}

// Equal reports whether two productions have the same head and body.
func (p Production) Equal(other Production) bool {
	if p.Head != other.Head || len(p.Body) != len(other.Body) {
		return false
	}
	for i, s := range p.Body {
		if s != other.Body[i] {
			return false
		}
	}
	return true
}

// IsEpsilon reports whether p has an empty body.
func (p Production) IsEpsilon() bool { return len(p.Body) == 0 }

// key returns a comparable map key for a production, used for set semantics
// (duplicate collapsing during epsilon removal and unit elimination).
func (p Production) key() string {
	return p.Head.String() + "\x00" + join(p.Body, "\x01")
}

func (p Production) String() string {
	if len(p.Body) == 0 {
		return fmt.Sprintf("%s -> %s", p.Head, Epsilon)
	}
	return fmt.Sprintf("%s -> %s", p.Head, join(p.Body, " "))
}

// Productions is a set of production rules, kept as a slice with set
// semantics enforced by the caller (construction dedupes by key).
type Productions []Production

// Sort orders productions in place by head, then by body. ToCNF and ToText
// do not call it; they keep productions in construction order.
func (p Productions) Sort() {
	sort.Slice(p, func(i, j int) bool {
		if p[i].Head != p[j].Head {
			return p[i].Head < p[j].Head
		}
		return join(p[i].Body, " ") < join(p[j].Body, " ")
	})
}

func (p Productions) String() string {
	var out string
	for i, prod := range p {
		if i > 0 {
			out += ", "
		}
		out += prod.String()
	}
	return out
}

// dedupe returns p with duplicate productions (by key) collapsed, order
// preserved for first occurrence.
func dedupe(p []Production) Productions {
	seen := make(map[string]bool, len(p))
	out := make(Productions, 0, len(p))
	for _, prod := range p {
		k := prod.key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, prod)
	}
	return out
}
