// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eval

import (
	"strings"

	"cogentcore.org/core/math32"
	"cogentcore.org/dg/rotate"
)

// formula computes the requested attribute of a compute node of the given kind.
func (c *call) formula(kind Kind) float32 {
	axis := axisOf(c.attr)
	switch kind {
	case KindBlendAdditive:
		a, b, w := c.blendInputs(axis)
		return a + b*w
	case KindBlend:
		a, b, w := c.blendInputs(axis)
		return lerp(a, b, w)
	case KindBlendTwoAttr:
		a := c.scalar(0, "input[0]", "i[0]")
		b := c.scalar(0, "input[1]", "i[1]")
		return lerp(a, b, clamp01(c.scalar(0, "attributesBlender", "ab")))
	case KindUnitConversion:
		return c.scalar(0, "input", "i") * c.scalar(1, "conversionFactor", "cf")
	case KindAddLinear:
		return c.scalar(0, "input1", "i1") + c.scalar(0, "input2", "i2")
	case KindMultLinear:
		return c.scalar(0, "input1", "i1") * c.scalar(1, "input2", "i2")
	case KindPlusMinusAverage:
		return c.plusMinusAverage()
	case KindMultiplyDivide:
		return c.multiplyDivide(max(axis, 0))
	case KindCondition:
		return c.condition(max(axis, 0))
	case KindClamp:
		ax := max(axis, 0)
		v := c.channel(0, ax, true, "input", "ip")
		lo := c.channel(0, ax, true, "min", "mn")
		hi := c.channel(0, ax, true, "max", "mx")
		if lo > hi {
			return v
		}
		return math32.Clamp(v, lo, hi)
	case KindSetRange:
		ax := max(axis, 0)
		return remap(c.channel(0, ax, false, "value", "v"),
			c.channel(0, ax, false, "oldMin", "on"), c.channel(0, ax, false, "oldMax", "om"),
			c.channel(0, ax, false, "min", "n"), c.channel(0, ax, false, "max", "m"))
	case KindBlendColors:
		ax := max(axis, 0)
		c1 := c.channel(colorDefault(ax, 0), ax, true, "color1", "c1")
		c2 := c.channel(colorDefault(ax, 2), ax, true, "color2", "c2")
		return lerp(c1, c2, clamp01(c.scalar(0.5, "blender", "b")))
	case KindReverse:
		return 1 - c.channel(0, max(axis, 0), false, "input", "i")
	case KindRemapValue:
		return remap(c.scalar(0, "inputValue", "i"),
			c.scalar(0, "inputMin", "imn"), c.scalar(1, "inputMax", "imx"),
			c.scalar(0, "outputMin", "omn"), c.scalar(1, "outputMax", "omx"))
	case KindChoice:
		return c.choice()
	case KindBlendWeighted:
		return c.blendWeighted()
	case KindPairBlend:
		return c.pairBlend()
	case KindSin, KindCos, KindTan, KindAsin, KindAcos, KindAtan:
		return trig(kind, c.scalar(0, "input", "i"))
	case KindAtan2:
		y := c.scalar(0, "inputA", "ia", "input1", "i1")
		x := c.scalar(0, "inputB", "ib", "input2", "i2")
		return math32.RadToDeg(math32.Atan2(y, x))
	case KindExpression:
		return c.expression()
	case KindTime:
		return c.e.frame
	}
	return c.literalAttr()
}

// blendInputs returns the two inputs and the clamped weight of an
// animation blend node. Rotation blends are compound, and take the
// axis of the requested output.
func (c *call) blendInputs(axis int) (a, b, w float32) {
	a = c.channel(0, axis, false, "inputA", "ia")
	b = c.channel(0, axis, false, "inputB", "ib")
	w = clamp01(c.scalar(1, "weightB", "wb", "weight", "w"))
	return
}

// plusMinusAverage combines the elements of the 1D, 2D or 3D input array
// selected by the requested output.
func (c *call) plusMinusAverage() float32 {
	op := roundInt(c.scalar(1, "operation", "op"))
	axis := -1
	names := []string{"input1D", "i1"}
	switch {
	case strings.Contains(c.attr, "3D") || strings.HasPrefix(c.attr, "o3"):
		names = []string{"input3D", "i3"}
		axis = max(axisOf(c.attr), 0)
	case strings.Contains(c.attr, "2D") || strings.HasPrefix(c.attr, "o2"):
		names = []string{"input2D", "i2"}
		axis = min(max(axisOf(c.attr), 0), 1)
	}
	idxs := c.indices(names...)
	if len(idxs) == 0 {
		return 0
	}
	var sum, first float32
	for i, idx := range idxs {
		v := c.channel(0, axis, false, elements(idx, names...)...)
		if i == 0 {
			first = v
		}
		sum += v
	}
	switch op {
	case 0:
		return first
	case 2:
		return first - (sum - first)
	case 3:
		return sum / float32(len(idxs))
	}
	return sum
}

// multiplyDivide computes one axis of a multiplyDivide node.
func (c *call) multiplyDivide(axis int) float32 {
	a := c.channel(0, axis, false, "input1", "i1")
	b := c.channel(1, axis, false, "input2", "i2")
	switch roundInt(c.scalar(1, "operation", "op")) {
	case 0:
		return a
	case 2:
		if math32.Abs(b) < nearZero {
			return 0
		}
		return a / b
	case 3:
		return math32.Pow(a, b)
	}
	return a * b
}

// condition compares the first and second terms, and returns the
// requested channel of the true or false color, or the true or
// false alpha. Only the selected branch is evaluated.
func (c *call) condition(axis int) float32 {
	a := c.scalar(0, "firstTerm", "ft")
	b := c.scalar(0, "secondTerm", "st")
	var res bool
	switch roundInt(c.scalar(0, "operation", "op")) {
	case 1:
		res = a != b
	case 2:
		res = a > b
	case 3:
		res = a >= b
	case 4:
		res = a < b
	case 5:
		res = a <= b
	default:
		res = a == b
	}
	if c.attr == "outAlpha" || c.attr == "oa" {
		if res {
			return c.scalar(0, "alphaIfTrue", "ait")
		}
		return c.scalar(1, "alphaIfFalse", "aif")
	}
	if res {
		return c.channel(0, axis, true, "colorIfTrue", "ct")
	}
	return c.channel(1, axis, true, "colorIfFalse", "cf")
}

// choice returns the input element at the rounded selector index,
// clamped into the range of existing elements.
func (c *call) choice() float32 {
	idxs := c.indices("input", "i")
	if len(idxs) == 0 {
		return 0
	}
	sel := roundInt(c.scalar(0, "selector", "s"))
	sel = min(max(sel, idxs[0]), idxs[len(idxs)-1])
	return c.scalar(0, elements(sel, "input", "i")...)
}

// blendWeighted returns the weighted sum of the inputs, optionally
// normalized by the sum of weights, or the sum of weights itself.
func (c *call) blendWeighted() float32 {
	var sum, wsum float32
	for _, idx := range c.indices("input", "i", "weight", "w") {
		w := c.scalar(1, elements(idx, "weight", "w")...)
		wsum += w
		sum += c.scalar(0, elements(idx, "input", "i")...) * w
	}
	if c.attr == "weightSum" || c.attr == "ws" {
		return wsum
	}
	if c.flag("normalizeWeights", "nw") && math32.Abs(wsum) >= nearZero {
		return sum / wsum
	}
	return sum
}

// pairBlend blends the translate and rotate triples of a pairBlend
// node by weight, returning the requested output channel.
// Rotations are blended along the shortest arc when
// rotInterpolation is set to quaternion.
func (c *call) pairBlend() float32 {
	axis := max(axisOf(c.attr), 0)
	w := clamp01(c.scalar(1, "weight", "w"))
	rot := strings.HasPrefix(c.attr, "outRotate") || strings.HasPrefix(c.attr, "or")
	if !rot {
		a := c.pairChannel(axis, "inTranslate", "it", "1")
		b := c.pairChannel(axis, "inTranslate", "it", "2")
		return lerp(a, b, w)
	}
	if !c.flag("rotInterpolation", "ri") {
		a := c.pairChannel(axis, "inRotate", "ir", "1")
		b := c.pairChannel(axis, "inRotate", "ir", "2")
		return lerp(a, b, w)
	}
	var r1, r2 math32.Vector3
	for ax := range 3 {
		r1.SetDim(math32.Dims(ax), c.pairChannel(ax, "inRotate", "ir", "1"))
		r2.SetDim(math32.Dims(ax), c.pairChannel(ax, "inRotate", "ir", "2"))
	}
	order := rotate.OrderFromCode(roundInt(c.scalar(0, "rotateOrder", "ro")))
	return rotate.Slerp(c.e.Rotations, r1, r2, w, order).Dim(math32.Dims(axis))
}

// pairChannel returns one axis of a pairBlend input, whose
// children put the axis before the index: inTranslate1 -> inTranslateX1.
func (c *call) pairChannel(axis int, long, short, idx string) float32 {
	x := "XYZ"[axis : axis+1]
	kids := []string{long + x + idx, short + strings.ToLower(x) + idx}
	return c.compound(0, axis, kids, []string{long + idx, short + idx})
}

// trig computes the single input trig node kinds. Angles are in degrees.
func trig(kind Kind, x float32) float32 {
	switch kind {
	case KindSin:
		return math32.Sin(math32.DegToRad(x))
	case KindCos:
		return math32.Cos(math32.DegToRad(x))
	case KindTan:
		return math32.Tan(math32.DegToRad(x))
	case KindAsin:
		return math32.RadToDeg(math32.Asin(math32.Clamp(x, -1, 1)))
	case KindAcos:
		return math32.RadToDeg(math32.Acos(math32.Clamp(x, -1, 1)))
	case KindAtan:
		return math32.RadToDeg(math32.Atan(x))
	}
	return 0
}

// colorDefault returns the default value of the given axis of a color
// whose default is the pure color at axis def.
func colorDefault(axis, def int) float32 {
	if axis == def {
		return 1
	}
	return 0
}

// lerp interpolates between a and b, returning exactly a at t = 0
// and exactly b at t = 1.
func lerp(a, b, t float32) float32 {
	return a*(1-t) + b*t
}

func clamp01(v float32) float32 {
	return math32.Clamp(v, 0, 1)
}

// remap linearly maps v from the old range to the new range,
// without clamping. An empty old range maps everything to newMin.
func remap(v, oldMin, oldMax, newMin, newMax float32) float32 {
	span := oldMax - oldMin
	var t float32
	if math32.Abs(span) >= nearZero {
		t = (v - oldMin) / span
	}
	return lerp(newMin, newMax, t)
}
