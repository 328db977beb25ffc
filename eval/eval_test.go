// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eval

import (
	"fmt"
	"strings"
	"testing"

	"cogentcore.org/core/math32"
	"cogentcore.org/dg/graph"
	"github.com/stretchr/testify/assert"
)

// node returns a new node with the given key, value pairs, where values
// are space separated tokens.
func node(name, typ string, kv ...string) *graph.Node {
	n := &graph.Node{Name: name, Type: typ}
	for i := 0; i+1 < len(kv); i += 2 {
		n.Attributes = append(n.Attributes, graph.Attribute{Key: kv[i], Tokens: strings.Fields(kv[i+1])})
	}
	return n
}

// conn returns a connection from src to dst.
func conn(src, dst string) graph.Connection {
	return graph.Connection{Src: src, Dst: dst}
}

// newEval returns an evaluator for the given graph that counts diagnostics.
func newEval(nodes []*graph.Node, conns ...graph.Connection) (*Evaluator, *Counter) {
	e := New(graph.New(nodes, conns))
	ct := &Counter{}
	e.Sink = ct.Sink
	return e, ct
}

func TestLiteralFallback(t *testing.T) {
	e, ct := newEval([]*graph.Node{
		node("n", "someUnknownType", ".foo", "1 2 3.5", ".bad", "abc", ".flag", "yes"),
		node("tr", "transform", ".t", "-type double3 1 2 3"),
	})
	assert.Equal(t, float32(3.5), e.EvaluatePlug("n.foo", 0))
	assert.Equal(t, float32(0), e.EvaluatePlug("n.bad", 0))
	assert.Equal(t, float32(0), e.EvaluatePlug("n.missing", 0))
	assert.Equal(t, float32(1), e.EvaluatePlug(` "n.flag" `, 0))
	assert.Equal(t, 2, ct.Counts[Unsupported])

	assert.Equal(t, float32(1), e.EvaluatePlug("tr.tx", 0))
	assert.Equal(t, float32(2), e.EvaluatePlug("tr.translateY", 0))
	assert.Equal(t, float32(3), e.EvaluateAttr("tr", "tz", 0))
	assert.Equal(t, float32(1), e.EvaluatePlug("tr.sx", 0))
	assert.Equal(t, float32(1), e.EvaluatePlug("tr.visibility", 0))
	assert.Equal(t, float32(0), e.EvaluatePlug("tr.rx", 0))
	assert.Equal(t, 1, ct.Counts[MissingValue])
}

func TestConnections(t *testing.T) {
	e, _ := newEval([]*graph.Node{
		node("a", "transform", ".tx", "1"),
		node("b", "transform", ".tx", "2"),
		node("c", "transform", ".tx", "5"),
	}, conn("a.tx", "c.tx"), conn("b.tx", "c.tx"))
	// the most recently declared connection wins
	assert.Equal(t, float32(2), e.EvaluatePlug("c.tx", 0))
}

func TestMissingNode(t *testing.T) {
	var diags []Diagnostic
	e := New(graph.New([]*graph.Node{node("pCube1", "transform")}, nil))
	e.Sink = func(d Diagnostic) { diags = append(diags, d) }
	assert.Equal(t, float32(0), e.EvaluatePlug("pCube2.tx", 3))
	assert.Equal(t, float32(0), e.EvaluatePlug("noattr", 3))
	if assert.Len(t, diags, 2) {
		assert.Equal(t, MissingNode, diags[0].Kind)
		assert.Equal(t, "pCube2.tx", diags[0].Plug)
		assert.Equal(t, float32(3), diags[0].Frame)
		assert.Equal(t, []string{"pCube1"}, diags[0].Suggestions)
		assert.Equal(t, MissingNode, diags[1].Kind)
	}
}

func TestCycle(t *testing.T) {
	e, ct := newEval([]*graph.Node{
		node("a", "addDoubleLinear"),
		node("b", "addDoubleLinear", ".i2", "5"),
	}, conn("a.o", "b.i1"), conn("b.o", "a.i1"))
	// the cycle is broken where it is entered
	assert.Equal(t, float32(5), e.EvaluatePlug("a.o", 0))
	assert.Equal(t, float32(5), e.EvaluatePlug("b.o", 0))
	assert.Equal(t, 1, ct.Counts[Cycle])
	assert.Equal(t, float32(5), e.EvaluatePlug("b.o", 1))
	assert.Equal(t, float32(0), e.EvaluatePlug("a.o", 1))
	assert.Equal(t, 2, ct.Counts[Cycle])

	e, _ = newEval([]*graph.Node{node("s", "unitConversion")}, conn("s.o", "s.i"))
	assert.Equal(t, float32(0), e.EvaluatePlug("s.o", 1))
}

func TestLongCycle(t *testing.T) {
	const n = 10000
	nodes := make([]*graph.Node, n)
	conns := make([]graph.Connection, n)
	for i := range n {
		nodes[i] = node(fmt.Sprintf("u%d", i), "unitConversion", ".cf", "2")
		conns[i] = conn(fmt.Sprintf("u%d.o", (i+1)%n), fmt.Sprintf("u%d.i", i))
	}
	e, ct := newEval(nodes, conns...)
	assert.Equal(t, float32(0), e.EvaluatePlug("u0.o", 0))
	assert.Equal(t, 1, ct.Counts[Cycle])
	// all plugs on the cycle are now cached
	assert.Equal(t, float32(0), e.EvaluatePlug("u5000.o", 0))
	assert.Equal(t, 1, ct.Counts[Cycle])
}

func TestCache(t *testing.T) {
	n := node("n", "someUnknownType", ".v", "1")
	e, _ := newEval([]*graph.Node{n})
	assert.Equal(t, float32(1), e.EvaluatePlug("n.v", 1))
	n.Attributes[0].Tokens = []string{"7"}
	assert.Equal(t, float32(1), e.EvaluatePlug("n.v", 1))
	assert.Equal(t, float32(1), e.EvaluatePlug("n.v", 1.000001))
	assert.Equal(t, float32(7), e.EvaluatePlug("n.v", 2))
	assert.Equal(t, float32(2), e.Frame())
	n.Attributes[0].Tokens = []string{"8"}
	e.Reset()
	assert.Equal(t, float32(8), e.EvaluatePlug("n.v", 2))
}

func TestCurves(t *testing.T) {
	e, _ := newEval([]*graph.Node{
		node("time", "animCurveTL", ".ktv[0:1]", "0 0 10 10"),
		node("drv", "transform", ".tx", "2.5"),
		node("driven", "animCurveUL", ".ktv[0:1]", "0 0 10 100"),
		node("tr", "transform"),
	}, conn("drv.tx", "driven.i"), conn("driven.o", "tr.ty"), conn("time.o", "tr.tx"))
	assert.Equal(t, float32(5), e.EvaluatePlug("tr.tx", 5))
	assert.Equal(t, float32(25), e.EvaluatePlug("tr.ty", 5))
	assert.Equal(t, float32(10), e.EvaluatePlug("time.output", 20))

	e, ct := newEval([]*graph.Node{
		node("time", "animCurveTL", ".ktv[0:1]", "0 0 10 10"),
		node("free", "animCurveUL", ".ktv[0:1]", "0 0 10 100"),
	})
	assert.Equal(t, float32(5), e.EvaluatePlug("time.o", 5))
	assert.Equal(t, 0, ct.Counts[MissingValue])
	assert.Equal(t, float32(50), e.EvaluatePlug("free.o", 5))
	assert.Equal(t, 1, ct.Counts[MissingValue])
}

func TestFaults(t *testing.T) {
	nodes := []*graph.Node{node("c", "animCurveTL"), node("d", "animCurveTA")}
	e, ct := newEval(nodes)
	e.Curves = func(n *graph.Node, param float32) float32 {
		if n.Name == "c" {
			panic("bad curve")
		}
		return math32.NaN()
	}
	assert.Equal(t, float32(0), e.EvaluatePlug("c.o", 1))
	assert.Equal(t, float32(0), e.EvaluatePlug("d.o", 1))
	assert.Equal(t, 1, ct.Counts[Panic])
	assert.Equal(t, 1, ct.Counts[Malformed])
	assert.Equal(t, 2, ct.Total())

	var nilEval Evaluator
	assert.Equal(t, float32(0), nilEval.EvaluatePlug("a.b", 0))
}

func TestKinds(t *testing.T) {
	tests := []struct {
		typ  string
		kind Kind
	}{
		{"transform", KindLiteral},
		{"animCurveTL", KindCurve},
		{"animCurveUA", KindCurve},
		{"animBlendNodeAdditiveDL", KindBlendAdditive},
		{"animBlendNodeAdditiveRotation", KindBlendAdditive},
		{"animBlendNodeBoolean", KindBlend},
		{"multiplyDivide", KindMultiplyDivide},
		{"sinDL", KindSin},
		{"atan2", KindAtan2},
		{"expression", KindExpression},
		{"unitToTimeConversion", KindUnitConversion},
	}
	for _, test := range tests {
		assert.Equal(t, test.kind, KindOf(test.typ), test.typ)
	}
	assert.True(t, IsSupportedComputeNodeType("pairBlend"))
	assert.True(t, IsSupportedComputeNodeType("animBlendNodeAdditiveScale"))
	assert.True(t, IsSupportedComputeNodeType("choice"))
	assert.False(t, IsSupportedComputeNodeType("animCurveTU"))
	assert.False(t, IsSupportedComputeNodeType("transform"))
	assert.False(t, IsSupportedComputeNodeType(""))
	assert.Equal(t, "PairBlend", KindPairBlend.String())
	assert.Equal(t, "Cycle", Cycle.String())
}
