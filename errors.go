package cfg

import "errors"

// ErrMalformed reports a construction-time failure: an ill-formed textual
// grammar. (New itself never fails: symbols missing from the declared
// variables/terminals are added.)
var ErrMalformed = errors.New("cfg: malformed grammar")

// ErrNoDerivation reports that a word is not a member of the language, when
// a derivation (rather than a plain membership answer) was requested.
var ErrNoDerivation = errors.New("cfg: no derivation")

// ErrUnsupportedOperand reports an intersection operand that is neither a
// regular expression nor a finite automaton.
var ErrUnsupportedOperand = errors.New("cfg: unsupported intersection operand")
