// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import (
	"log/slog"

	"github.com/chewxy/math32"
)

// Func is a registered function that can be called from expressions.
// All functions take a fixed number of scalar arguments and
// return one scalar.
type Func struct {

	// Name is the name used to call the function.
	Name string

	// NArgs is the number of arguments.
	NArgs int

	// Fun is the function, which is passed exactly NArgs arguments.
	Fun func(args []float32) float32
}

// Funcs is the global function registry used by all Interpreters.
// Trigonometric functions work in radians.
var Funcs = map[string]*Func{}

// AddFunc adds the given named function to the global function
// registry, replacing any existing function with the same name.
func AddFunc(name string, nargs int, fun func(args []float32) float32) {
	if _, has := Funcs[name]; has {
		slog.Debug("expr.AddFunc: Func already exists, replacing", "Func.Name", name)
	}
	Funcs[name] = &Func{Name: name, NArgs: nargs, Fun: fun}
}

func unary(f func(float32) float32) func(args []float32) float32 {
	return func(args []float32) float32 { return f(args[0]) }
}

func init() {
	AddFunc("sin", 1, unary(math32.Sin))
	AddFunc("cos", 1, unary(math32.Cos))
	AddFunc("tan", 1, unary(math32.Tan))
	AddFunc("asin", 1, unary(math32.Asin))
	AddFunc("acos", 1, unary(math32.Acos))
	AddFunc("atan", 1, unary(math32.Atan))
	AddFunc("abs", 1, unary(math32.Abs))
	AddFunc("sqrt", 1, unary(math32.Sqrt))
	AddFunc("floor", 1, unary(math32.Floor))
	AddFunc("ceil", 1, unary(math32.Ceil))
	AddFunc("exp", 1, unary(math32.Exp))
	AddFunc("log", 1, unary(math32.Log))
	AddFunc("atan2", 2, func(a []float32) float32 { return math32.Atan2(a[0], a[1]) })
	AddFunc("pow", 2, func(a []float32) float32 { return math32.Pow(a[0], a[1]) })
	AddFunc("min", 2, func(a []float32) float32 { return math32.Min(a[0], a[1]) })
	AddFunc("max", 2, func(a []float32) float32 { return math32.Max(a[0], a[1]) })
	AddFunc("clamp", 3, func(a []float32) float32 {
		lo, hi := a[1], a[2]
		if lo > hi {
			lo, hi = hi, lo
		}
		return math32.Max(lo, math32.Min(hi, a[0]))
	})
}
