// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrMalformed is returned for expressions that do not reduce to one value.
	ErrMalformed = errors.New("expr: malformed expression")

	// ErrParens is returned for mismatched parentheses.
	ErrParens = errors.New("expr: mismatched parentheses")

	// ErrStack is returned when an operator or function is missing operands.
	ErrStack = errors.New("expr: missing operand")
)

// opCode is the kind of one postfix instruction.
type opCode int32

const (
	opNumber opCode = iota
	opVariable
	opBinary
	opNegate
	opCall
)

// Instr is one instruction of a postfix Program.
type Instr struct {
	code opCode

	num float32

	// name is the variable name, or the operator for binary instructions.
	name string

	fn *Func
}

func (in Instr) String() string {
	switch in.code {
	case opNumber:
		return strconv.FormatFloat(float64(in.num), 'g', -1, 32)
	case opNegate:
		return "neg"
	case opCall:
		return in.fn.Name + "()"
	}
	return in.name
}

// Program is an expression in postfix (reverse polish) order.
type Program []Instr

// String returns the program instructions separated by spaces.
func (p Program) String() string {
	s := ""
	for i, in := range p {
		if i > 0 {
			s += " "
		}
		s += in.String()
	}
	return s
}

// precedence returns the binding strength of an operator on the
// operator stack, where "neg" is unary negation.
func precedence(op string) int {
	switch op {
	case "neg":
		return 4
	case "^":
		return 3
	case "*", "/":
		return 2
	case "+", "-":
		return 1
	}
	return 0
}

func rightAssoc(op string) bool {
	return op == "^" || op == "neg"
}

// stackItem is one entry on the parser operator stack.
type stackItem struct {

	// op is the operator, "neg", "(" or "" for function markers.
	op string

	fn *Func
}

// Parse converts the given tokens into a postfix Program using the
// shunting-yard algorithm. A minus sign at the start, or after an
// operator, '(' or ',', is unary negation; a unary plus is ignored.
// An identifier directly followed by '(' that names a registered
// function is a call; any other identifier is a variable.
func Parse(toks Tokens) (Program, error) {
	var out Program
	var stack []stackItem
	unaryPos := true
	popOp := func() {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch {
		case top.fn != nil:
			out = append(out, Instr{code: opCall, fn: top.fn})
		case top.op == "neg":
			out = append(out, Instr{code: opNegate})
		default:
			out = append(out, Instr{code: opBinary, name: top.op})
		}
	}
	// popToParen pops operators until the innermost '(' (left in place)
	popToParen := func() error {
		for len(stack) > 0 && stack[len(stack)-1].op != "(" {
			popOp()
		}
		if len(stack) == 0 {
			return ErrParens
		}
		return nil
	}
	for i, tk := range toks {
		switch tk.Kind {
		case Number:
			f, err := strconv.ParseFloat(tk.Str, 32)
			if err != nil {
				return nil, fmt.Errorf("expr: malformed number %q at %d", tk.Str, tk.Pos)
			}
			out = append(out, Instr{code: opNumber, num: float32(f)})
			unaryPos = false
		case Identifier:
			if i+1 < len(toks) && toks[i+1].Kind == LParen {
				if fn, ok := Funcs[tk.Str]; ok {
					stack = append(stack, stackItem{fn: fn})
					unaryPos = true
					continue
				}
			}
			out = append(out, Instr{code: opVariable, name: tk.Str})
			unaryPos = false
		case Operator:
			if unaryPos {
				switch tk.Str {
				case "-":
					stack = append(stack, stackItem{op: "neg"})
					continue
				case "+":
					continue
				}
				return nil, fmt.Errorf("%w: operator %q at %d has no left operand", ErrMalformed, tk.Str, tk.Pos)
			}
			p1 := precedence(tk.Str)
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.fn != nil || top.op == "(" {
					break
				}
				p2 := precedence(top.op)
				if p2 > p1 || (p2 == p1 && !rightAssoc(tk.Str)) {
					popOp()
					continue
				}
				break
			}
			stack = append(stack, stackItem{op: tk.Str})
			unaryPos = true
		case LParen:
			stack = append(stack, stackItem{op: "("})
			unaryPos = true
		case Comma:
			if err := popToParen(); err != nil {
				return nil, err
			}
			unaryPos = true
		case RParen:
			if err := popToParen(); err != nil {
				return nil, err
			}
			stack = stack[:len(stack)-1]
			if len(stack) > 0 && stack[len(stack)-1].fn != nil {
				popOp()
			}
			unaryPos = false
		}
	}
	for len(stack) > 0 {
		if stack[len(stack)-1].op == "(" {
			return nil, ErrParens
		}
		popOp()
	}
	return out, nil
}
