// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eval

import (
	"strings"

	"cogentcore.org/dg/curve"
)

// Kind is the closed set of node kinds that the evaluator knows how
// to compute. Node type names are mapped to a Kind once, when the
// evaluator is created; unknown types are KindLiteral.
type Kind int32

const (
	// KindLiteral is any node type without a formula:
	// its authored attribute values are read directly.
	KindLiteral Kind = iota

	// KindCurve is an animation curve, driven by time or by another plug.
	KindCurve

	// KindBlendAdditive is an additive two-input blend: a + b*weight.
	KindBlendAdditive

	// KindBlend is a non-additive two-input blend: lerp(a, b, weight).
	KindBlend

	// KindBlendTwoAttr blends input[0] and input[1] by attributesBlender.
	KindBlendTwoAttr

	// KindUnitConversion is input * conversionFactor.
	KindUnitConversion

	// KindAddLinear is input1 + input2.
	KindAddLinear

	// KindMultLinear is input1 * input2.
	KindMultLinear

	// KindPlusMinusAverage sums, subtracts or averages a sparse array.
	KindPlusMinusAverage

	// KindMultiplyDivide multiplies, divides or raises per axis.
	KindMultiplyDivide

	// KindCondition selects one of two values by comparing two terms.
	KindCondition

	// KindClamp clamps each channel between min and max.
	KindClamp

	// KindSetRange linearly remaps each channel to a new range.
	KindSetRange

	// KindBlendColors blends two colors by blender.
	KindBlendColors

	// KindReverse is 1 - input.
	KindReverse

	// KindRemapValue linearly remaps a value to a new range.
	KindRemapValue

	// KindChoice selects one element of an input array.
	KindChoice

	// KindBlendWeighted is the weighted sum of an input array.
	KindBlendWeighted

	// KindPairBlend blends two translate and two rotate triples.
	KindPairBlend

	KindSin
	KindCos
	KindTan
	KindAsin
	KindAcos
	KindAtan
	KindAtan2

	// KindExpression evaluates procedural expression text.
	KindExpression

	// KindTime outputs the current frame.
	KindTime

	// KindN is the number of kinds.
	KindN
)

var kindNames = [KindN]string{
	"Literal", "Curve", "BlendAdditive", "Blend", "BlendTwoAttr", "UnitConversion",
	"AddLinear", "MultLinear", "PlusMinusAverage", "MultiplyDivide", "Condition",
	"Clamp", "SetRange", "BlendColors", "Reverse", "RemapValue", "Choice",
	"BlendWeighted", "PairBlend", "Sin", "Cos", "Tan", "Asin", "Acos", "Atan",
	"Atan2", "Expression", "Time",
}

func (k Kind) String() string {
	if k < 0 || k >= KindN {
		return "Kind(?)"
	}
	return kindNames[k]
}

// kindByType maps node type names to their Kind. Blend and curve
// families are matched by prefix in [KindOf].
var kindByType = map[string]Kind{
	"blendTwoAttr":         KindBlendTwoAttr,
	"unitConversion":       KindUnitConversion,
	"unitToTimeConversion": KindUnitConversion,
	"timeToUnitConversion": KindUnitConversion,
	"addDoubleLinear":      KindAddLinear,
	"multDoubleLinear":     KindMultLinear,
	"plusMinusAverage":     KindPlusMinusAverage,
	"multiplyDivide":       KindMultiplyDivide,
	"condition":            KindCondition,
	"clamp":                KindClamp,
	"setRange":             KindSetRange,
	"blendColors":          KindBlendColors,
	"reverse":              KindReverse,
	"remapValue":           KindRemapValue,
	"choice":               KindChoice,
	"blendWeighted":        KindBlendWeighted,
	"pairBlend":            KindPairBlend,
	"sin":                  KindSin,
	"sinDL":                KindSin,
	"cos":                  KindCos,
	"cosDL":                KindCos,
	"tan":                  KindTan,
	"tanDL":                KindTan,
	"asin":                 KindAsin,
	"asinDL":               KindAsin,
	"acos":                 KindAcos,
	"acosDL":               KindAcos,
	"atan":                 KindAtan,
	"atanDL":               KindAtan,
	"atan2":                KindAtan2,
	"atan2DL":              KindAtan2,
	"expression":           KindExpression,
	"time":                 KindTime,
}

// KindOf returns the Kind for the given node type name.
func KindOf(nodeType string) Kind {
	if k, ok := kindByType[nodeType]; ok {
		return k
	}
	switch {
	case curve.IsCurveType(nodeType):
		return KindCurve
	case strings.HasPrefix(nodeType, "animBlendNodeAdditive"):
		return KindBlendAdditive
	case strings.HasPrefix(nodeType, "animBlendNode"):
		return KindBlend
	}
	return KindLiteral
}

// IsSupportedComputeNodeType returns whether the given node type has a
// formula, as opposed to being read as literal values. Animation curves
// are evaluated through the curve function and are not compute nodes.
func IsSupportedComputeNodeType(nodeType string) bool {
	k := KindOf(nodeType)
	return k != KindLiteral && k != KindCurve
}

// dataTypes are node types that hold authored values rather than
// computing them, for which reading literal values is expected.
var dataTypes = map[string]bool{
	"transform": true, "joint": true, "locator": true, "mesh": true,
	"nurbsCurve": true, "nurbsSurface": true, "camera": true, "ikHandle": true,
	"ikEffector": true, "lambert": true, "blinn": true, "phong": true,
	"file": true, "place2dTexture": true, "shadingEngine": true,
	"displayLayer": true, "script": true, "objectSet": true,
}
