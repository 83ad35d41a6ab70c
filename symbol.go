// Package cfg implements the symbolic core of a context-free grammar
// library: construction, Chomsky Normal Form, CYK recognition with
// derivation reconstruction, fixed-point analyses, word enumeration,
// finiteness, and grammar algebra (union, concatenation, closure,
// reversal, substitution).
package cfg

import "fmt"

// Symbol is the common category over which production bodies range: a
// Variable (nonterminal), a Terminal, or Epsilon (the empty-string marker,
// itself a distinguished Terminal value). Two symbols compare equal with
// ==  iff their underlying values and kinds match.
type Symbol interface {
	fmt.Stringer
	symbol()
}

// Variable is a nonterminal, identified by an opaque string value. Two
// variables are equal iff their values are equal.
type Variable string

func (Variable) symbol() {}

func (v Variable) String() string { return string(v) }

// Terminal is an elementary symbol of the grammar's alphabet, identified by
// an opaque string value.
type Terminal string

func (Terminal) symbol() {}

func (t Terminal) String() string { return string(t) }

// Epsilon denotes the empty string. It is a Terminal by representation but
// is always treated as a distinct sentinel: it never appears in a grammar's
// Terminals set and is stripped from filtered production bodies.
const Epsilon = Terminal("ε")

// epsilonSpellings are the reserved tokens that denote Epsilon in the
// textual grammar format (§6).
var epsilonSpellings = map[string]bool{
	"epsilon": true,
	"$":       true,
	"ε":       true,
	"ϵ":       true,
	"Є":       true,
}

func join(symbols []Symbol, sep string) string {
	if len(symbols) == 0 {
		return ""
	}
	s := make([]string, len(symbols))
	for i, sym := range symbols {
		s[i] = sym.String()
	}
	out := s[0]
	for _, v := range s[1:] {
		out += sep + v
	}
	return out
}
