package cfg

import (
	"fmt"
	"strings"

	"github.com/0x51-dev/upeg/parser"
	"github.com/0x51-dev/upeg/parser/op"
)

// tokenChar is the rune class of a grammar token: letters, digits,
// underscore, the reserved epsilon glyphs, and the punctuation the pack's
// example grammars use for terminals (parentheses, brackets, and a handful
// of common symbols).
var tokenChar = op.Or{
	op.RuneRange{Min: 'A', Max: 'Z'},
	op.RuneRange{Min: 'a', Max: 'z'},
	op.RuneRange{Min: '0', Max: '9'},
	'_', '\'', '.', ',', '+', '*', ':', ';', '!', '?', '=', '-',
	'(', ')', '[', ']', '{', '}',
	'$', 'ε', 'ϵ', 'Є',
}

var (
	token = op.Capture{
		Name:  "Token",
		Value: op.OneOrMore{Value: tokenChar},
	}
	expression = op.Capture{
		Name:  "Expression",
		Value: op.OneOrMore{Value: token},
	}
	productionRule = op.Capture{
		Name: "ProductionRule",
		Value: op.And{
			token,
			op.Or{'→', "->"},
			expression,
			op.ZeroOrMore{Value: op.And{'|', expression}},
			op.EndOfLine{},
		},
	}
	grammarText = op.Capture{
		Name: "Grammar",
		Value: op.And{
			op.ZeroOrMore{Value: op.EndOfLine{}},
			op.OneOrMore{Value: productionRule},
		},
	}
)

func classify(tok string) Symbol {
	if epsilonSpellings[tok] {
		return Epsilon
	}
	r := []rune(tok)[0]
	if r >= 'A' && r <= 'Z' {
		return Variable(tok)
	}
	return Terminal(tok)
}

// FromText parses the textual grammar format of spec §6: one non-blank
// line per "HEAD -> ALT1 | ALT2 | ... | ALTn", ALTi a whitespace-separated
// sequence of tokens. A token beginning with an ASCII uppercase letter is a
// Variable; one of "epsilon", "$", "ε", "ϵ", "Є" denotes the empty body
// element (and is dropped); any other token is a Terminal. The start
// symbol defaults to "S".
func FromText(text string, start ...Variable) (*Grammar, error) {
	s := Variable("S")
	if len(start) > 0 {
		s = start[0]
	}
	p, err := parser.New([]rune(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	p.SetIgnoreList([]any{' ', '\t'})
	n, err := p.Parse(op.And{grammarText, op.EOF{}})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return parseGrammarNode(n, s)
}

func parseGrammarNode(n *parser.Node, start Variable) (*Grammar, error) {
	if n.Name != "Grammar" {
		return nil, fmt.Errorf("%w: expected Grammar, got %s", ErrMalformed, n.Name)
	}
	var productions []Production
	var variables []Variable
	var terminals []Terminal
	for _, rule := range n.Children() {
		if rule.Name != "ProductionRule" {
			return nil, fmt.Errorf("%w: expected ProductionRule, got %s", ErrMalformed, rule.Name)
		}
		children := rule.Children()
		if len(children) < 2 {
			return nil, fmt.Errorf("%w: malformed production rule", ErrMalformed)
		}
		headTok := children[0]
		if headTok.Name != "Token" {
			return nil, fmt.Errorf("%w: expected Token, got %s", ErrMalformed, headTok.Name)
		}
		headSym := classify(headTok.Value())
		head, ok := headSym.(Variable)
		if !ok {
			return nil, fmt.Errorf("%w: production head %q is not a Variable", ErrMalformed, headTok.Value())
		}
		variables = append(variables, head)
		for _, alt := range children[1:] {
			if alt.Name != "Expression" {
				return nil, fmt.Errorf("%w: expected Expression, got %s", ErrMalformed, alt.Name)
			}
			var body []Symbol
			for _, tok := range alt.Children() {
				if tok.Name != "Token" {
					return nil, fmt.Errorf("%w: expected Token, got %s", ErrMalformed, tok.Name)
				}
				sym := classify(tok.Value())
				switch v := sym.(type) {
				case Variable:
					variables = append(variables, v)
				case Terminal:
					if v != Epsilon {
						terminals = append(terminals, v)
					}
				}
				body = append(body, sym)
			}
			productions = append(productions, NewProduction(head, body))
		}
	}
	return New(variables, terminals, productions, start), nil
}

// ToText renders the grammar in the textual format FromText parses: one
// line per production, "HEAD -> tok1 tok2 ..." (the empty body spelled
// "epsilon"). Unlike a grouped rendering, every production gets its own
// line; callers that want one line per head group the output themselves.
func (g *Grammar) ToText() string {
	var b strings.Builder
	for _, p := range g.Productions {
		b.WriteString(p.Head.String())
		b.WriteString(" -> ")
		if len(p.Body) == 0 {
			b.WriteString("epsilon")
		} else {
			for i, s := range p.Body {
				if i > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(s.String())
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
