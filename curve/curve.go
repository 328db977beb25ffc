// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package curve provides a basic evaluator for animation curve nodes,
// reading their authored keys and interpolating linearly between them,
// with step out-tangents and constant extrapolation. It is the default
// curve function of the evaluator, and can be replaced by a full
// tangent-aware implementation.
package curve

import (
	"slices"
	"strings"

	"cogentcore.org/core/math32"
	"cogentcore.org/dg/graph"
)

// Tangent is an out-tangent type code as written on animation curves.
type Tangent int32

const (
	TangentLinear   Tangent = 3
	TangentFlat     Tangent = 4
	TangentStep     Tangent = 5
	TangentStepNext Tangent = 11
)

// Key is one key of an animation curve.
type Key struct {

	// Time is the key position, which is a frame for time based
	// curves, and the driver value for driven keys.
	Time float32

	// Value is the value of the curve at Time.
	Value float32

	// Out is the out-tangent type of the key.
	Out Tangent
}

// IsCurveType returns whether the given node type is an animation curve.
func IsCurveType(typ string) bool {
	return strings.HasPrefix(typ, "animCurve")
}

// IsDriven returns whether the given curve type takes a unitless
// (driven key) input rather than time.
func IsDriven(typ string) bool {
	return strings.HasPrefix(typ, "animCurveU")
}

// Keys returns the keys authored on the given curve node, sorted by time.
// Keys are read from keyTimeValue (ktv) elements and element ranges,
// and out-tangent types from keyOutTangentType (kot).
func Keys(n *graph.Node) []Key {
	var keys []Key
	for i := range n.Attributes {
		a := &n.Attributes[i]
		base, lo, _, rest, ok := graph.SplitIndex(graph.NormalizeKey(a.Key))
		if !ok || rest != "" || (base != "ktv" && base != "keyTimeValue") {
			continue
		}
		fs := a.Floats()
		for j := 0; j+1 < len(fs); j += 2 {
			k := Key{Time: fs[j], Value: fs[j+1], Out: TangentLinear}
			idx := lo + j/2
			if ot, ok := n.Literal(graph.Element("kot", idx)); ok {
				k.Out = Tangent(ot)
			} else if ot, ok := n.Literal(graph.Element("keyOutTangentType", idx)); ok {
				k.Out = Tangent(ot)
			}
			keys = append(keys, k)
		}
	}
	slices.SortStableFunc(keys, func(a, b Key) int {
		switch {
		case a.Time < b.Time:
			return -1
		case a.Time > b.Time:
			return 1
		}
		return 0
	})
	return keys
}

// Evaluate returns the value of the given curve node at the given
// parameter (frame or driver value). A curve without keys returns
// its authored output value, or 0.
func Evaluate(n *graph.Node, param float32) float32 {
	keys := Keys(n)
	if len(keys) == 0 {
		if v, ok := n.Literal("o"); ok {
			return v
		}
		v, _ := n.Literal("output")
		return v
	}
	return Interpolate(keys, param)
}

// Interpolate returns the value of the given sorted keys at time t.
// Values before the first key and after the last key are constant.
func Interpolate(keys []Key, t float32) float32 {
	n := len(keys)
	if n == 0 {
		return 0
	}
	if t <= keys[0].Time {
		return keys[0].Value
	}
	if t >= keys[n-1].Time {
		return keys[n-1].Value
	}
	i, _ := slices.BinarySearchFunc(keys, t, func(k Key, t float32) int {
		switch {
		case k.Time < t:
			return -1
		case k.Time > t:
			return 1
		}
		return 0
	})
	if keys[i].Time == t {
		return keys[i].Value
	}
	k0, k1 := keys[i-1], keys[i]
	switch k0.Out {
	case TangentStep:
		return k0.Value
	case TangentStepNext:
		return k1.Value
	}
	span := k1.Time - k0.Time
	if span < 1e-8 {
		return k1.Value
	}
	return math32.Lerp(k0.Value, k1.Value, (t-k0.Time)/span)
}
