// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package curve

import (
	"testing"

	"cogentcore.org/core/base/tolassert"
	"cogentcore.org/dg/graph"
	"github.com/stretchr/testify/assert"
)

func TestKeys(t *testing.T) {
	n := &graph.Node{Name: "c", Type: "animCurveTL", Attributes: []graph.Attribute{
		{Key: ".ktv[0:1]", Tokens: []string{"10", "5", "0", "1"}},
		{Key: ".ktv[2]", Tokens: []string{"20", "0"}},
		{Key: ".kot[1]", Tokens: []string{"5"}},
	}}
	keys := Keys(n)
	assert.Equal(t, []Key{
		{Time: 0, Value: 1, Out: TangentStep},
		{Time: 10, Value: 5, Out: TangentLinear},
		{Time: 20, Value: 0, Out: TangentLinear},
	}, keys)
}

func TestInterpolate(t *testing.T) {
	keys := []Key{
		{Time: 0, Value: 0, Out: TangentLinear},
		{Time: 10, Value: 10, Out: TangentStep},
		{Time: 20, Value: 0, Out: TangentStepNext},
		{Time: 30, Value: 4, Out: TangentLinear},
	}
	assert.Equal(t, float32(0), Interpolate(keys, -5))
	tolassert.EqualTol(t, 2.5, Interpolate(keys, 2.5), 1e-6)
	assert.Equal(t, float32(10), Interpolate(keys, 10))
	assert.Equal(t, float32(10), Interpolate(keys, 15))
	assert.Equal(t, float32(4), Interpolate(keys, 25))
	assert.Equal(t, float32(4), Interpolate(keys, 100))
	assert.Equal(t, float32(0), Interpolate(nil, 1))
}

func TestEvaluate(t *testing.T) {
	n := &graph.Node{Name: "c", Type: "animCurveUU", Attributes: []graph.Attribute{
		{Key: ".ktv[0:1]", Tokens: []string{"0", "0", "1", "10"}},
	}}
	tolassert.EqualTol(t, 5, Evaluate(n, 0.5), 1e-6)
	empty := &graph.Node{Name: "e", Type: "animCurveTA", Attributes: []graph.Attribute{
		{Key: ".o", Tokens: []string{"3"}},
	}}
	assert.Equal(t, float32(3), Evaluate(empty, 7))
	assert.True(t, IsCurveType("animCurveTA"))
	assert.False(t, IsCurveType("transform"))
	assert.True(t, IsDriven("animCurveUL"))
	assert.False(t, IsDriven("animCurveTL"))
}
