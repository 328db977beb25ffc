// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package expr provides a small arithmetic expression interpreter
// for procedural expression nodes. Source text is tokenized, converted
// to postfix order by an operator precedence parser, and evaluated on
// a value stack. Variables are resolved through a callback, which lets
// expressions read values from the dependency graph.
//
// Evaluation never fails from the point of view of the caller:
// any parse or evaluation fault produces 0.
package expr

import (
	"fmt"

	"cogentcore.org/core/math32"
)

// divideTol is the smallest denominator magnitude for division.
const divideTol = 1e-8

// ResolveFunc returns the value of the named variable at the given frame.
type ResolveFunc func(name string, frame float32) float32

// Interpreter evaluates expression text. It caches the parsed form of
// each distinct text it has seen. It is not safe for concurrent use.
type Interpreter struct {

	// Resolve resolves identifiers that are not functions or
	// built-in variables. If nil, they evaluate to 0.
	Resolve ResolveFunc

	programs map[string]Program
}

// NewInterpreter returns a new interpreter using the given resolve function.
func NewInterpreter(resolve ResolveFunc) *Interpreter {
	return &Interpreter{Resolve: resolve, programs: map[string]Program{}}
}

// Evaluate returns the value of the given expression text at the given
// frame, or 0 if the expression is malformed or cannot be evaluated.
// The result is always finite.
func (in *Interpreter) Evaluate(text string, frame float32) float32 {
	v, err := in.Eval(text, frame)
	if err != nil {
		return 0
	}
	return v
}

// Eval returns the value of the given expression text at the given
// frame, with an error describing why it could not be evaluated.
// Non-finite results are returned as 0 with an error.
func (in *Interpreter) Eval(text string, frame float32) (val float32, err error) {
	defer func() {
		if r := recover(); r != nil {
			val, err = 0, fmt.Errorf("expr: panic evaluating %q: %v", text, r)
		}
	}()
	prog, err := in.Compile(text)
	if err != nil {
		return 0, err
	}
	val, err = prog.Run(frame, in.resolve)
	if err != nil {
		return 0, err
	}
	if math32.IsNaN(val) || math32.IsInf(val, 0) {
		return 0, fmt.Errorf("expr: %q evaluated to %g", text, val)
	}
	return val, nil
}

// Compile returns the parsed Program for the given text, using the cache.
func (in *Interpreter) Compile(text string) (Program, error) {
	if prog, ok := in.programs[text]; ok {
		return prog, nil
	}
	toks := Tokenize(text)
	prog, err := Parse(toks)
	if err != nil {
		return nil, fmt.Errorf("%w in [%s]", err, toks.String())
	}
	if in.programs == nil {
		in.programs = map[string]Program{}
	}
	in.programs[text] = prog
	return prog, nil
}

func (in *Interpreter) resolve(name string, frame float32) float32 {
	if in.Resolve == nil {
		return 0
	}
	return in.Resolve(name, frame)
}

// Variable returns the value of a built-in variable, and whether
// the name is one: time and frame (the current frame), pi and e.
func Variable(name string, frame float32) (float32, bool) {
	switch name {
	case "time", "frame":
		return frame, true
	case "pi":
		return math32.Pi, true
	case "e":
		return math32.E, true
	}
	return 0, false
}

// Run evaluates the program at the given frame, resolving variables
// that are not built in with the given function.
func (p Program) Run(frame float32, resolve ResolveFunc) (float32, error) {
	if len(p) == 0 {
		return 0, fmt.Errorf("%w: empty", ErrMalformed)
	}
	stack := make([]float32, 0, len(p))
	pop := func() (float32, error) {
		n := len(stack)
		if n == 0 {
			return 0, ErrStack
		}
		v := stack[n-1]
		stack = stack[:n-1]
		return v, nil
	}
	for _, in := range p {
		switch in.code {
		case opNumber:
			stack = append(stack, in.num)
		case opVariable:
			v, ok := Variable(in.name, frame)
			if !ok && resolve != nil {
				v = resolve(in.name, frame)
			}
			stack = append(stack, v)
		case opNegate:
			a, err := pop()
			if err != nil {
				return 0, err
			}
			stack = append(stack, -a)
		case opBinary:
			b, err := pop()
			if err != nil {
				return 0, err
			}
			a, err := pop()
			if err != nil {
				return 0, err
			}
			stack = append(stack, binary(in.name, a, b))
		case opCall:
			n := in.fn.NArgs
			if len(stack) < n {
				return 0, fmt.Errorf("%w: %s takes %d arguments", ErrStack, in.fn.Name, n)
			}
			args := make([]float32, n)
			copy(args, stack[len(stack)-n:])
			stack = stack[:len(stack)-n]
			stack = append(stack, in.fn.Fun(args))
		}
	}
	if len(stack) != 1 {
		return 0, fmt.Errorf("%w: %d values left", ErrMalformed, len(stack))
	}
	return stack[0], nil
}

func binary(op string, a, b float32) float32 {
	switch op {
	case "+":
		return a + b
	case "-":
		return a - b
	case "*":
		return a * b
	case "/":
		if math32.Abs(b) < divideTol {
			return 0
		}
		return a / b
	case "^":
		return math32.Pow(a, b)
	}
	return 0
}
