// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eval

import (
	"cogentcore.org/dg/graph"
)

// call is the evaluation of one unconnected plug on one node.
// Input attributes are given as a list of aliases (long and
// short names), and are read from connections first, then from
// authored values, then from a default.
type call struct {
	e    *Evaluator
	node *graph.Node

	// attr is the requested attribute path.
	attr string
}

// plug returns the plug for the given attribute on the node.
func (c *call) plug(attr string) string {
	return graph.JoinPlug(c.node.Name, attr)
}

// connected returns the value of the first of the given attributes
// that has an incoming connection.
func (c *call) connected(names ...string) (float32, bool) {
	for _, name := range names {
		p := c.plug(name)
		if _, ok := c.e.Graph.Source(p); ok {
			return c.e.plugValue(p), true
		}
	}
	return 0, false
}

// literal returns the authored value of the first of the given
// attributes that has one.
func (c *call) literal(names ...string) (float32, bool) {
	for _, name := range names {
		if v, ok := c.node.Literal(name); ok {
			return v, true
		}
	}
	for _, name := range names {
		if v, ok := literalChild(c.node, name); ok {
			return v, true
		}
	}
	return 0, false
}

// scalar returns the value of a scalar input, under any of the given names.
func (c *call) scalar(def float32, names ...string) float32 {
	if v, ok := c.connected(names...); ok {
		return v
	}
	if v, ok := c.literal(names...); ok {
		return v
	}
	return def
}

// flag returns whether a boolean or enum input is set (rounds to non-zero).
func (c *call) flag(names ...string) bool {
	return roundInt(c.scalar(0, names...)) != 0
}

// channel returns the value of one axis (0, 1, 2) of a compound input
// with the given parent names: "input1" with children "input1X", or
// "color1" with children "color1R" when rgb is set. A connection to a
// child wins over a connection to the parent, which is read through
// the corresponding child of its source plug. A negative axis reads
// the input as a scalar.
func (c *call) channel(def float32, axis int, rgb bool, parents ...string) float32 {
	if axis < 0 {
		return c.scalar(def, parents...)
	}
	kids := make([]string, len(parents))
	for i, p := range parents {
		kids[i] = graph.ChildAttr(p, axis, rgb)
	}
	return c.compound(def, axis, kids, parents)
}

// compound returns the value of one axis of a compound input with
// the given child and parent names. See [call.channel].
func (c *call) compound(def float32, axis int, kids, parents []string) float32 {
	if v, ok := c.connected(kids...); ok {
		return v
	}
	for _, p := range parents {
		if src, ok := c.e.Graph.Source(c.plug(p)); ok {
			return c.e.plugValue(graph.ChildPlug(src, axis))
		}
	}
	for _, k := range kids {
		if v, ok := c.node.Literal(k); ok {
			return v
		}
	}
	for _, p := range parents {
		if v, ok := c.node.Component(p, axis); ok {
			return v
		}
	}
	return def
}

// indices returns the existing element indices of the array input with
// the given names, which are connected or authored, in ascending order.
func (c *call) indices(names ...string) []int {
	return c.e.Graph.ArrayIndices(c.node.Name, names...)
}

// elements returns the element names of the given arrays at index idx.
func elements(idx int, names ...string) []string {
	els := make([]string, len(names))
	for i, n := range names {
		els[i] = graph.Element(n, idx)
	}
	return els
}

// axisOf returns the axis (0, 1, 2) named by the last character of an
// output attribute (outputX, ox, outColorG), or -1 if there is none.
func axisOf(attr string) int {
	if attr == "" {
		return -1
	}
	switch attr[len(attr)-1] {
	case 'X', 'x', 'R', 'r':
		return 0
	case 'Y', 'y', 'G', 'g':
		return 1
	case 'Z', 'z', 'B', 'b':
		return 2
	}
	return -1
}

// roundInt rounds the given value to the nearest int, for enum inputs.
func roundInt(v float32) int {
	if v < 0 {
		return -int(-v + 0.5)
	}
	return int(v + 0.5)
}
