// Package calc evaluates arithmetic expressions over a fixed grammar:
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("*" | "/") unary }
//	unary   = ("+" | "-") unary | power
//	power   = primary [ "^" unary ]
//	primary = number | "(" expr ")"
//
// Input is parsed into the package's own node types and evaluated
// recursively; nothing else is ever executed.
package calc

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrDivisionByZero    = errors.New("division by zero")
	ErrInvalidExpression = errors.New("invalid expression")
)

var allowed = regexp.MustCompile(`^[0-9+\-*/().^\s]+$`)

// Valid reports whether expr only uses characters the calculator accepts.
func Valid(expr string) bool {
	return allowed.MatchString(expr)
}

// IsExpression reports whether expr is a computation worth routing to the
// calculator: allowed characters, at least one operator, and it parses.
// A bare number is not an expression.
func IsExpression(expr string) bool {
	expr = strings.TrimSpace(expr)
	if !Valid(expr) || !strings.ContainsAny(expr, "+-*/^") {
		return false
	}
	_, err := Parse(expr)
	return err == nil
}

// Evaluate parses and evaluates expr.
func Evaluate(expr string) (float64, error) {
	n, err := Parse(expr)
	if err != nil {
		return 0, err
	}
	v, err := n.eval()
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: result is not a finite number", ErrInvalidExpression)
	}
	return v, nil
}

// Format renders v without float noise, e.g. 0.1+0.2 prints as 0.3.
func Format(v float64) string {
	rounded := math.Round(v*1e10) / 1e10
	if rounded == 0 {
		rounded = 0 // drop negative zero
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

// Parse builds the expression tree for expr.
func Parse(expr string) (Node, error) {
	if !Valid(expr) {
		return nil, fmt.Errorf("%w: disallowed character", ErrInvalidExpression)
	}
	toks, err := lex(expr)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, fmt.Errorf("%w: unexpected %q", ErrInvalidExpression, p.toks[p.pos].text)
	}
	return n, nil
}

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	num  float64
}

func lex(s string) ([]token, error) {
	var toks []token
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v':
			i++
		case c >= '0' && c <= '9' || c == '.':
			j := i
			for j < len(s) && (s[j] >= '0' && s[j] <= '9' || s[j] == '.') {
				j++
			}
			v, err := strconv.ParseFloat(s[i:j], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad number %q", ErrInvalidExpression, s[i:j])
			}
			toks = append(toks, token{kind: tokNumber, text: s[i:j], num: v})
			i = j
		case strings.IndexByte("+-*/^", c) >= 0:
			toks = append(toks, token{kind: tokOp, text: string(c)})
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen, text: "("})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen, text: ")"})
			i++
		default:
			return nil, fmt.Errorf("%w: unexpected %q", ErrInvalidExpression, c)
		}
	}
	if len(toks) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidExpression)
	}
	return toks, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peekOp(ops string) (string, bool) {
	if p.pos >= len(p.toks) || p.toks[p.pos].kind != tokOp {
		return "", false
	}
	op := p.toks[p.pos].text
	if !strings.Contains(ops, op) {
		return "", false
	}
	return op, true
}

func (p *parser) expr() (Node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.peekOp("+-")
		if !ok {
			return left, nil
		}
		p.pos++
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = binary{op: op[0], left: left, right: right}
	}
}

func (p *parser) term() (Node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.peekOp("*/")
		if !ok {
			return left, nil
		}
		p.pos++
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = binary{op: op[0], left: left, right: right}
	}
}

func (p *parser) unary() (Node, error) {
	if op, ok := p.peekOp("+-"); ok {
		p.pos++
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return unary{op: op[0], operand: operand}, nil
	}
	return p.power()
}

func (p *parser) power() (Node, error) {
	base, err := p.primary()
	if err != nil {
		return nil, err
	}
	if _, ok := p.peekOp("^"); ok {
		p.pos++
		exp, err := p.unary()
		if err != nil {
			return nil, err
		}
		return binary{op: '^', left: base, right: exp}, nil
	}
	return base, nil
}

func (p *parser) primary() (Node, error) {
	if p.pos >= len(p.toks) {
		return nil, fmt.Errorf("%w: unexpected end", ErrInvalidExpression)
	}
	t := p.toks[p.pos]
	switch t.kind {
	case tokNumber:
		p.pos++
		return number(t.num), nil
	case tokLParen:
		p.pos++
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if p.pos >= len(p.toks) || p.toks[p.pos].kind != tokRParen {
			return nil, fmt.Errorf("%w: missing )", ErrInvalidExpression)
		}
		p.pos++
		return inner, nil
	default:
		return nil, fmt.Errorf("%w: unexpected %q", ErrInvalidExpression, t.text)
	}
}
