// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bind connects evaluated plugs to the transform channels of
// host objects. A [Driver] pulls the value of each binding from an
// evaluator for one frame and pushes it to a [Sink], such as a
// [PoseSink] that keeps a pose per target object.
package bind

import (
	"cmp"
	"slices"

	"cogentcore.org/dg/eval"
	"cogentcore.org/dg/graph"
)

// Binding drives one channel of a target object by the value of a plug.
type Binding struct {

	// Target is the name of the driven object, typically a transform node.
	Target string

	// Channel is the driven channel.
	Channel Channel

	// Attr is the attribute name for Custom channels.
	Attr string

	// Plug is the plug that is evaluated for the channel value.
	Plug string
}

// Sink receives channel values from a [Driver].
type Sink interface {

	// SetChannel sets the channel of the binding to the given value.
	SetChannel(b *Binding, value float32)
}

// SinkFunc is a function that implements [Sink].
type SinkFunc func(b *Binding, value float32)

func (f SinkFunc) SetChannel(b *Binding, value float32) {
	f(b, value)
}

// Bindings returns the bindings for all connections in the graph whose
// destination is a channel of a transform or joint node, one per channel,
// sorted by target and channel. Connections to a whole compound
// (translate) bind each of its channels to the corresponding child of
// the source plug. If custom is set, connections to other attributes
// are included as Custom bindings.
func Bindings(g *graph.Graph, custom bool) []Binding {
	byKey := map[Binding]Binding{}
	for _, c := range g.Connections() {
		node, attr := graph.SplitPlug(c.Dst)
		if n := g.Node(node); n == nil || (n.Type != "transform" && n.Type != "joint") {
			continue
		}
		ch, compound := ChannelOf(attr)
		if compound {
			for ax := range 3 {
				b := Binding{Target: node, Channel: ch + Channel(ax), Plug: graph.ChildPlug(c.Src, ax)}
				byKey[b.key()] = b
			}
			continue
		}
		if ch == Custom && !custom {
			continue
		}
		b := Binding{Target: node, Channel: ch, Plug: c.Dst}
		if ch == Custom {
			b.Attr = attr
		}
		byKey[b.key()] = b
	}
	bs := make([]Binding, 0, len(byKey))
	for _, b := range byKey {
		bs = append(bs, b)
	}
	slices.SortFunc(bs, func(a, b Binding) int {
		return cmp.Or(cmp.Compare(a.Target, b.Target), cmp.Compare(a.Channel, b.Channel), cmp.Compare(a.Attr, b.Attr))
	})
	return bs
}

// key returns the binding identity, without its plug.
func (b Binding) key() Binding {
	return Binding{Target: b.Target, Channel: b.Channel, Attr: b.Attr}
}

// Driver samples bindings from an evaluator.
type Driver struct {

	// Eval is the evaluator of the scene.
	Eval *eval.Evaluator

	// Bindings are the sampled bindings.
	Bindings []Binding
}

// NewDriver returns a new driver for all transform bindings of the
// graph of the given evaluator.
func NewDriver(ev *eval.Evaluator) *Driver {
	return &Driver{Eval: ev, Bindings: Bindings(ev.Graph, false)}
}

// Sample evaluates every binding once at the given frame, and pushes
// the values to the given sink, in binding order.
func (d *Driver) Sample(frame float32, sink Sink) {
	for i := range d.Bindings {
		b := &d.Bindings[i]
		sink.SetChannel(b, d.Eval.EvaluatePlug(b.Plug, frame))
	}
}

// Values returns the values of all bindings at the given frame, in binding order.
func (d *Driver) Values(frame float32) []float32 {
	vals := make([]float32, 0, len(d.Bindings))
	d.Sample(frame, SinkFunc(func(b *Binding, value float32) {
		vals = append(vals, value)
	}))
	return vals
}
