// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bind

import (
	"testing"

	"cogentcore.org/core/base/tolassert"
	"cogentcore.org/core/math32"
	"cogentcore.org/dg/eval"
	"cogentcore.org/dg/graph"
	"cogentcore.org/dg/rotate"
	"github.com/stretchr/testify/assert"
)

func TestChannelOf(t *testing.T) {
	tests := []struct {
		attr     string
		ch       Channel
		compound bool
	}{
		{"tx", TranslateX, false},
		{"translateY", TranslateY, false},
		{"rz", RotateZ, false},
		{"rotateX", RotateX, false},
		{"scaleZ", ScaleZ, false},
		{"sy", ScaleY, false},
		{"v", Visibility, false},
		{"visibility", Visibility, false},
		{"t", TranslateX, true},
		{"rotate", RotateX, true},
		{"s", ScaleX, true},
		{"translatex", Custom, false},
		{"tX", Custom, false},
		{"blend", Custom, false},
	}
	for _, test := range tests {
		ch, compound := ChannelOf(test.attr)
		assert.Equal(t, test.ch, ch, test.attr)
		assert.Equal(t, test.compound, compound, test.attr)
	}
	assert.Equal(t, 2, RotateZ.Axis())
	assert.Equal(t, -1, Visibility.Axis())
	assert.Equal(t, "ScaleY", ScaleY.String())
}

func testGraph() *graph.Graph {
	nodes := []*graph.Node{
		{Name: "ctl", Type: "transform", Attributes: []graph.Attribute{
			{Key: ".t", Tokens: []string{"1", "2", "3"}},
			{Key: ".blend", Tokens: []string{"0.5"}},
		}},
		{Name: "md", Type: "multiplyDivide", Attributes: []graph.Attribute{{Key: ".i2", Tokens: []string{"2", "2", "2"}}}},
		{Name: "anim", Type: "animCurveTA", Attributes: []graph.Attribute{{Key: ".ktv[0:1]", Tokens: []string{"0", "0", "10", "90"}}}},
		{Name: "obj", Type: "transform"},
		{Name: "ch", Type: "choice"},
	}
	conns := []graph.Connection{
		{Src: "ctl.t", Dst: "md.i1"},
		{Src: "md.o", Dst: "obj.t"},
		{Src: "anim.o", Dst: "obj.ry"},
		{Src: "ctl.tx", Dst: "obj.ry"},
		{Src: "anim.o", Dst: "obj.ry"},
		{Src: "ctl.blend", Dst: "obj.v"},
		{Src: "ctl.blend", Dst: "obj.weight"},
		{Src: "ctl.tx", Dst: "ch.s"},
	}
	return graph.New(nodes, conns)
}

func TestBindings(t *testing.T) {
	g := testGraph()
	bs := Bindings(g, false)
	assert.Equal(t, []Binding{
		{Target: "obj", Channel: TranslateX, Plug: "md.ox"},
		{Target: "obj", Channel: TranslateY, Plug: "md.oy"},
		{Target: "obj", Channel: TranslateZ, Plug: "md.oz"},
		{Target: "obj", Channel: RotateY, Plug: "obj.ry"},
		{Target: "obj", Channel: Visibility, Plug: "obj.v"},
	}, bs)
	bs = Bindings(g, true)
	assert.Len(t, bs, 6)
	assert.Equal(t, Binding{Target: "obj", Channel: Custom, Attr: "weight", Plug: "obj.weight"}, bs[5])
}

func TestDriver(t *testing.T) {
	d := NewDriver(eval.New(testGraph()))
	assert.Equal(t, []float32{2, 4, 6, 45, 0.5}, d.Values(5))

	ps := NewPoseSink()
	d.Bindings = Bindings(d.Eval.Graph, true)
	d.Sample(10, ps)
	p := ps.Poses["obj"]
	assert.Equal(t, math32.Vec3(2, 4, 6), p.Translate)
	assert.Equal(t, math32.Vec3(0, 90, 0), p.Rotate)
	assert.Equal(t, math32.Vec3(1, 1, 1), p.Scale)
	assert.True(t, p.Visible)
	assert.Equal(t, map[string]float32{"weight": 0.5}, p.Custom)

	q := p.Quat(rotate.XYZ)
	want := math32.NewQuatAxisAngle(math32.Vec3(0, 1, 0), math32.DegToRad(90))
	tolassert.EqualTol(t, want.Y, q.Y, 1e-6)
	tolassert.EqualTol(t, want.W, q.W, 1e-6)
}

func TestPose(t *testing.T) {
	ps := NewPoseSink()
	ps.SetChannel(&Binding{Target: "a", Channel: ScaleZ}, 3)
	ps.SetChannel(&Binding{Target: "a", Channel: Visibility}, 0)
	ps.SetChannel(&Binding{Target: "a", Channel: RotateX}, 30)
	p := ps.Pose("a")
	assert.Equal(t, math32.Vec3(1, 1, 3), p.Scale)
	assert.Equal(t, math32.Vec3(30, 0, 0), p.Rotate)
	assert.False(t, p.Visible)
	assert.Nil(t, p.Custom)
	assert.Len(t, ps.Poses, 1)
}
