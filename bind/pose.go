// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bind

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/dg/rotate"
)

// Pose is the transform state of one host object.
type Pose struct {

	// Translate is the position relative to the parent.
	Translate math32.Vector3

	// Rotate is the Euler rotation in degrees.
	Rotate math32.Vector3

	// Scale is the scale relative to the parent.
	Scale math32.Vector3

	// Visible is whether the object is shown.
	Visible bool

	// Custom has the values of Custom channels, by attribute name.
	Custom map[string]float32
}

// Defaults sets the rest pose: no translation or rotation, unit scale, visible.
func (ps *Pose) Defaults() {
	ps.Translate = math32.Vector3{}
	ps.Rotate = math32.Vector3{}
	ps.Scale = math32.Vec3(1, 1, 1)
	ps.Visible = true
}

// Quat returns the rotation as a quaternion, for the given rotation order.
func (ps *Pose) Quat(order rotate.Order) math32.Quat {
	return rotate.Default.ToQuat(ps.Rotate.MulScalar(math32.DegToRadFactor), order)
}

// SetChannel sets the given channel of the pose.
func (ps *Pose) SetChannel(ch Channel, attr string, value float32) {
	switch {
	case ch <= TranslateZ:
		ps.Translate.SetDim(math32.Dims(ch.Axis()), value)
	case ch <= RotateZ:
		ps.Rotate.SetDim(math32.Dims(ch.Axis()), value)
	case ch <= ScaleZ:
		ps.Scale.SetDim(math32.Dims(ch.Axis()), value)
	case ch == Visibility:
		ps.Visible = value >= 0.5
	default:
		if ps.Custom == nil {
			ps.Custom = map[string]float32{}
		}
		ps.Custom[attr] = value
	}
}

// PoseSink is a [Sink] that keeps a [Pose] per target.
type PoseSink struct {

	// Poses are the poses by target name.
	Poses map[string]*Pose
}

// NewPoseSink returns a new empty PoseSink.
func NewPoseSink() *PoseSink {
	return &PoseSink{Poses: map[string]*Pose{}}
}

// Pose returns the pose for the given target, making a rest pose if needed.
func (ps *PoseSink) Pose(target string) *Pose {
	if ps.Poses == nil {
		ps.Poses = map[string]*Pose{}
	}
	p, ok := ps.Poses[target]
	if !ok {
		p = &Pose{}
		p.Defaults()
		ps.Poses[target] = p
	}
	return p
}

func (ps *PoseSink) SetChannel(b *Binding, value float32) {
	ps.Pose(b.Target).SetChannel(b.Channel, b.Attr, value)
}
