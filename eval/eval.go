// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package eval evaluates the numeric value of any plug in a dependency
// graph at a given frame. Evaluation is demand driven and memoized:
// a plug follows its incoming connection if it has one, and otherwise
// is computed by the formula for its node kind, which may in turn
// request other plugs. Plugs that depend on themselves evaluate to 0.
//
// Evaluation never fails: every failure produces 0, and is reported to
// an optional diagnostic [Sink]. An Evaluator is not safe for concurrent
// use; use one Evaluator per scene and per goroutine.
package eval

import (
	"fmt"
	"strings"

	"cogentcore.org/core/math32"
	"cogentcore.org/dg/curve"
	"cogentcore.org/dg/expr"
	"cogentcore.org/dg/graph"
	"cogentcore.org/dg/rotate"
)

// nearZero is the tolerance for all near zero guards.
const nearZero = 1e-8

// CurveFunc returns the value of the given animation curve node at the
// given parameter, which is the frame for time based animation, or the
// value of the driving plug for driven keys.
type CurveFunc func(n *graph.Node, param float32) float32

// Evaluator evaluates plugs of one graph. It owns the value cache,
// which is valid for one frame at a time, and the set of plugs being
// evaluated on the current call stack, which breaks cycles.
type Evaluator struct {

	// Graph is the graph being evaluated.
	Graph *graph.Graph

	// Curves evaluates animation curve nodes.
	Curves CurveFunc

	// Rotations converts Euler angles for quaternion rotation blending.
	Rotations rotate.Converter

	// Sink receives diagnostics, if set.
	Sink Sink

	// FrameTolerance is the largest frame difference that is
	// considered the same frame, keeping the cache.
	FrameTolerance float32

	// kinds is the Kind of each node, by node name.
	kinds map[string]Kind

	frame    float32
	hasFrame bool

	cache map[string]float32
	guard map[string]struct{}

	// interps are the expression interpreters, by expression node name.
	interps map[string]*expr.Interpreter
}

// New returns a new Evaluator for the given graph, with default settings.
func New(g *graph.Graph) *Evaluator {
	e := &Evaluator{Graph: g}
	e.Defaults()
	return e
}

// Defaults sets default values for all settings, and classifies the nodes.
func (e *Evaluator) Defaults() {
	e.Curves = curve.Evaluate
	e.Rotations = rotate.Default
	e.FrameTolerance = 1e-5
	e.cache = map[string]float32{}
	e.guard = map[string]struct{}{}
	e.interps = map[string]*expr.Interpreter{}
	e.kinds = map[string]Kind{}
	if e.Graph == nil {
		return
	}
	for _, n := range e.Graph.Nodes() {
		e.kinds[n.Name] = KindOf(n.Type)
	}
}

// Frame returns the frame of the currently cached values.
func (e *Evaluator) Frame() float32 {
	return e.frame
}

// Reset clears all cached values.
func (e *Evaluator) Reset() {
	clear(e.cache)
	clear(e.guard)
}

// EvaluatePlug returns the value of the given plug ("node.attr") at the
// given frame. Values are cached until a different frame is requested.
// It never fails, and always returns a finite value, which is 0 for
// anything that cannot be evaluated.
func (e *Evaluator) EvaluatePlug(plug string, frame float32) float32 {
	if e.cache == nil {
		e.Defaults()
	}
	if !e.hasFrame || math32.Abs(frame-e.frame) > e.FrameTolerance {
		e.Reset()
		e.frame = frame
		e.hasFrame = true
	}
	return e.plugValue(graph.NormalizePlug(plug))
}

// EvaluateAttr returns the value of the given attribute on the given node
// at the given frame. See [Evaluator.EvaluatePlug].
func (e *Evaluator) EvaluateAttr(node, attr string, frame float32) float32 {
	return e.EvaluatePlug(graph.JoinPlug(node, attr), frame)
}

// plugValue returns the value of the given normalized plug at the current frame.
func (e *Evaluator) plugValue(plug string) float32 {
	if v, ok := e.cache[plug]; ok {
		return v
	}
	if _, busy := e.guard[plug]; busy {
		e.report(Cycle, plug, nil)
		return 0
	}
	e.guard[plug] = struct{}{}
	v := e.compute(plug)
	delete(e.guard, plug)
	e.cache[plug] = v
	return v
}

// compute computes the value of the given plug, following its
// incoming connection or applying its node formula.
func (e *Evaluator) compute(plug string) (v float32) {
	defer func() {
		if r := recover(); r != nil {
			e.report(Panic, plug, fmt.Errorf("%v", r))
			v = 0
		}
	}()
	if e.Graph == nil {
		return 0
	}
	if src, ok := e.Graph.Source(plug); ok {
		v = e.plugValue(src)
	} else {
		v = e.nodeValue(plug)
	}
	if math32.IsNaN(v) || math32.IsInf(v, 0) {
		e.report(Malformed, plug, fmt.Errorf("non-finite value %g", v))
		return 0
	}
	return v
}

// nodeValue computes an unconnected plug from its node.
func (e *Evaluator) nodeValue(plug string) float32 {
	name, attr := graph.SplitPlug(plug)
	n := e.Graph.Node(name)
	if n == nil {
		e.reportMissingNode(plug, name)
		return 0
	}
	kind, ok := e.kinds[n.Name]
	if !ok {
		kind = KindOf(n.Type)
		e.kinds[n.Name] = kind
	}
	c := &call{e: e, node: n, attr: attr}
	switch kind {
	case KindLiteral:
		return c.literalAttr()
	case KindCurve:
		return c.curveValue()
	}
	return c.formula(kind)
}

// curveValue evaluates an animation curve node: driven by its input
// plug if that is connected, or by the current frame otherwise.
// A driven key curve without a driver is reported as missing its input.
func (c *call) curveValue() float32 {
	param := c.e.frame
	if v, ok := c.connected("input", "i"); ok {
		param = v
	} else if curve.IsDriven(c.node.Type) {
		c.e.report(MissingValue, c.plug("input"), fmt.Errorf("driven curve %q has no driver, using the frame", c.node.Name))
	}
	if c.e.Curves == nil {
		return 0
	}
	return c.e.Curves(c.node, param)
}

// literalAttr reads the authored value of the requested attribute,
// including single channels of authored compounds (tx from t).
func (c *call) literalAttr() float32 {
	n := c.node
	if v, ok := n.Literal(c.attr); ok {
		return v
	}
	if v, ok := literalChild(n, c.attr); ok {
		return v
	}
	if short, ok := shortName(c.attr); ok {
		if v, ok := n.Literal(short); ok {
			return v
		}
		if v, ok := literalChild(n, short); ok {
			return v
		}
	}
	if def, ok := transformDefault(c.attr); ok && (n.Type == "transform" || n.Type == "joint") {
		return def
	}
	if !dataTypes[n.Type] {
		c.e.report(Unsupported, c.plug(c.attr), fmt.Errorf("node type %q", n.Type))
	} else {
		c.e.report(MissingValue, c.plug(c.attr), nil)
	}
	return 0
}

// literalChild returns the authored value of the channel attr of a compound
// attribute, which is named by a trailing axis letter (tx, translateX,
// outColorG), or is a child of an array element (input3D[1].input3Dy).
func literalChild(n *graph.Node, attr string) (float32, bool) {
	if len(attr) < 2 {
		return 0, false
	}
	axis := strings.IndexByte("xyzXYZrgbRGB", attr[len(attr)-1])
	if axis < 0 {
		return 0, false
	}
	axis %= 3
	if i := strings.LastIndexByte(attr, ']'); i > 0 && i < len(attr)-1 {
		return n.Component(attr[:i+1], axis)
	}
	return n.Component(attr[:len(attr)-1], axis)
}

// shortNames are the short names of common long transform attribute names,
// as transforms are usually authored with short names.
var shortNames = map[string]string{
	"translate": "t", "rotate": "r", "scale": "s", "shear": "sh",
	"visibility": "v", "rotateOrder": "ro", "jointOrient": "jo",
	"rotateAxis": "ra", "rotatePivot": "rp", "scalePivot": "sp",
}

// shortName returns the short name of a long transform attribute
// name, including its channels: translateX -> tx.
func shortName(attr string) (string, bool) {
	if s, ok := shortNames[attr]; ok {
		return s, true
	}
	if n := len(attr); n > 1 {
		if ax := strings.IndexByte("XYZ", attr[n-1]); ax >= 0 {
			if s, ok := shortNames[attr[:n-1]]; ok {
				return s + "xyz"[ax:ax+1], true
			}
		}
	}
	return "", false
}

// transformDefault returns the default value of the scale and
// visibility channels of transforms, which are 1 rather than 0.
func transformDefault(attr string) (float32, bool) {
	switch attr {
	case "s", "sx", "sy", "sz", "scale", "scaleX", "scaleY", "scaleZ", "v", "visibility":
		return 1, true
	}
	return 0, false
}

func (e *Evaluator) report(kind DiagKind, plug string, err error) {
	if e.Sink == nil {
		return
	}
	e.Sink(Diagnostic{Kind: kind, Plug: plug, Frame: e.frame, Err: err})
}

func (e *Evaluator) reportMissingNode(plug, name string) {
	if e.Sink == nil {
		return
	}
	d := Diagnostic{Kind: MissingNode, Plug: plug, Frame: e.frame}
	if name == "" {
		d.Err = fmt.Errorf("plug %q has no node name", plug)
	} else {
		d.Err = fmt.Errorf("node %q not found", name)
		d.Suggestions = e.Graph.SimilarNodes(name, 3)
	}
	e.Sink(d)
}
