package calc

import (
	"fmt"
	"math"
)

// Node is an expression tree node. The only implementations are number,
// unary and binary.
type Node interface {
	eval() (float64, error)
}

type number float64

func (n number) eval() (float64, error) { return float64(n), nil }

type unary struct {
	op      byte
	operand Node
}

func (u unary) eval() (float64, error) {
	v, err := u.operand.eval()
	if err != nil {
		return 0, err
	}
	switch u.op {
	case '+':
		return v, nil
	case '-':
		return -v, nil
	}
	return 0, fmt.Errorf("%w: unary %q", ErrInvalidExpression, u.op)
}

type binary struct {
	op          byte
	left, right Node
}

func (b binary) eval() (float64, error) {
	l, err := b.left.eval()
	if err != nil {
		return 0, err
	}
	r, err := b.right.eval()
	if err != nil {
		return 0, err
	}
	switch b.op {
	case '+':
		return l + r, nil
	case '-':
		return l - r, nil
	case '*':
		return l * r, nil
	case '/':
		if r == 0 {
			return 0, ErrDivisionByZero
		}
		return l / r, nil
	case '^':
		return math.Pow(l, r), nil
	}
	return 0, fmt.Errorf("%w: operator %q", ErrInvalidExpression, b.op)
}
