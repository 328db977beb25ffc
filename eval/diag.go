// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eval

import (
	"context"
	"log/slog"
)

// DiagKind is the kind of a Diagnostic.
type DiagKind int32

const (
	// Cycle is a plug that depends on itself; it evaluates to 0.
	Cycle DiagKind = iota

	// MissingNode is a plug on a node that does not exist.
	MissingNode

	// MissingValue is an attribute without a connection or authored value.
	MissingValue

	// Unsupported is a node type without a formula, read as literal values.
	Unsupported

	// Malformed is a value that could not be computed, such as
	// invalid expression text or a non-finite result.
	Malformed

	// Panic is a formula that panicked.
	Panic

	// DiagKindN is the number of diagnostic kinds.
	DiagKindN
)

var diagKindNames = [DiagKindN]string{"Cycle", "MissingNode", "MissingValue", "Unsupported", "Malformed", "Panic"}

func (k DiagKind) String() string {
	if k < 0 || k >= DiagKindN {
		return "DiagKind(?)"
	}
	return diagKindNames[k]
}

// Diagnostic reports a problem found while evaluating a plug.
// The value returned for the plug is not affected.
type Diagnostic struct {
	Kind DiagKind

	// Plug is the plug being evaluated.
	Plug string

	Frame float32

	// Err has details, if any.
	Err error

	// Suggestions are similar node names, for MissingNode.
	Suggestions []string
}

// Sink receives diagnostics from an Evaluator.
type Sink func(d Diagnostic)

// LogSink returns a Sink that logs diagnostics to the given logger
// (slog.Default() if nil). Cycles, malformed values and panics are
// logged as warnings, everything else at debug level.
func LogSink(logger *slog.Logger) Sink {
	if logger == nil {
		logger = slog.Default()
	}
	return func(d Diagnostic) {
		level := slog.LevelDebug
		switch d.Kind {
		case Cycle, Malformed, Panic:
			level = slog.LevelWarn
		}
		attrs := []slog.Attr{slog.String("plug", d.Plug), slog.Float64("frame", float64(d.Frame))}
		if d.Err != nil {
			attrs = append(attrs, slog.String("err", d.Err.Error()))
		}
		if len(d.Suggestions) > 0 {
			attrs = append(attrs, slog.Any("similar", d.Suggestions))
		}
		logger.LogAttrs(context.Background(), level, "eval: "+d.Kind.String(), attrs...)
	}
}

// Counter counts diagnostics by kind.
type Counter struct {
	Counts [DiagKindN]int
}

// Sink records the given diagnostic; use the method value as a Sink.
func (c *Counter) Sink(d Diagnostic) {
	if d.Kind >= 0 && d.Kind < DiagKindN {
		c.Counts[d.Kind]++
	}
}

// Total returns the total number of diagnostics counted.
func (c *Counter) Total() int {
	n := 0
	for _, ct := range c.Counts {
		n += ct
	}
	return n
}

// Tee returns a Sink that sends diagnostics to each of the given sinks.
func Tee(sinks ...Sink) Sink {
	return func(d Diagnostic) {
		for _, s := range sinks {
			if s != nil {
				s(d)
			}
		}
	}
}
