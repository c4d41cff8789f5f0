package scabi

import (
	"strings"
)

// TypeFormula is a parsed type expression: a name and its type parameters.
// "List<Option<u32>>" is {List, [{Option, [{u32, []}]}]}.
type TypeFormula struct {
	Name           string
	TypeParameters []*TypeFormula
}

// String renders the formula back into a type expression.
func (f *TypeFormula) String() string {
	if len(f.TypeParameters) == 0 {
		return f.Name
	}
	params := make([]string, len(f.TypeParameters))
	for i, param := range f.TypeParameters {
		params[i] = param.String()
	}
	return f.Name + "<" + strings.Join(params, ", ") + ">"
}

// TypeFormulaParser parses type expressions such as "Option<List<tuple<u32,bool>>>".
// Names run up to the next '<', '>' or ','; surrounding whitespace is ignored,
// so names like "utf-8 string" are allowed.
type TypeFormulaParser struct{}

// NewTypeFormulaParser creates a parser.
func NewTypeFormulaParser() *TypeFormulaParser {
	return &TypeFormulaParser{}
}

// ParseExpression parses a whole type expression.
func (p *TypeFormulaParser) ParseExpression(expression string) (*TypeFormula, error) {
	state := &formulaScanner{expression: expression}
	formula, err := state.parseFormula()
	if err != nil {
		return nil, err
	}
	state.skipSpaces()
	if !state.done() {
		return nil, state.fail("unexpected trailing input")
	}
	return formula, nil
}

// MustParseExpression is like ParseExpression but panics on error.
func (p *TypeFormulaParser) MustParseExpression(expression string) *TypeFormula {
	formula, err := p.ParseExpression(expression)
	if err != nil {
		panic(err)
	}
	return formula
}

type formulaScanner struct {
	expression string
	pos        int
}

func (s *formulaScanner) done() bool {
	return s.pos >= len(s.expression)
}

func (s *formulaScanner) peek() byte {
	return s.expression[s.pos]
}

func (s *formulaScanner) skipSpaces() {
	for !s.done() && isFormulaSpace(s.peek()) {
		s.pos++
	}
}

func (s *formulaScanner) fail(reason string) error {
	return &MalformedTypeExpressionError{Expression: s.expression, Position: s.pos, Reason: reason}
}

func (s *formulaScanner) parseFormula() (*TypeFormula, error) {
	s.skipSpaces()
	start := s.pos
	for !s.done() && !isFormulaDelimiter(s.peek()) {
		s.pos++
	}
	name := strings.TrimSpace(s.expression[start:s.pos])
	if name == "" {
		return nil, s.fail("empty type name")
	}

	formula := &TypeFormula{Name: name}
	if s.done() || s.peek() != '<' {
		return formula, nil
	}

	s.pos++ // '<'
	for {
		param, err := s.parseFormula()
		if err != nil {
			return nil, err
		}
		formula.TypeParameters = append(formula.TypeParameters, param)

		s.skipSpaces()
		if s.done() {
			return nil, s.fail("unbalanced '<'")
		}
		switch s.peek() {
		case ',':
			s.pos++
		case '>':
			s.pos++
			return formula, nil
		default:
			return nil, s.fail("expected ',' or '>'")
		}
	}
}

func isFormulaDelimiter(c byte) bool {
	return c == '<' || c == '>' || c == ','
}

func isFormulaSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
