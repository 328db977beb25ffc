// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rotate converts between Euler angles and quaternions
// for each of the six rotation orders used by authoring tools, and
// blends rotations along the shortest arc.
package rotate

import (
	"cogentcore.org/core/math32"
)

// Order is a rotation order code. The axis named first is
// applied first, so XYZ rotates about X, then Y, then Z.
type Order int32

const (
	XYZ Order = iota
	YZX
	ZXY
	XZY
	YXZ
	ZYX

	// OrderN is the number of rotation orders.
	OrderN
)

var orderNames = [OrderN]string{"xyz", "yzx", "zxy", "xzy", "yxz", "zyx"}

func (o Order) String() string {
	if o < 0 || o >= OrderN {
		return "xyz"
	}
	return orderNames[o]
}

// OrderFromCode returns the rotation order for the given authored
// rotateOrder code, which is XYZ for any out-of-range value.
func OrderFromCode(code int) Order {
	if code < 0 || code >= int(OrderN) {
		return XYZ
	}
	return Order(code)
}

// axes returns the axis indexes in order of application, and
// whether the order is an odd permutation of XYZ.
func (o Order) axes() (ax [3]int, odd bool) {
	switch o {
	case YZX:
		return [3]int{1, 2, 0}, false
	case ZXY:
		return [3]int{2, 0, 1}, false
	case XZY:
		return [3]int{0, 2, 1}, true
	case YXZ:
		return [3]int{1, 0, 2}, true
	case ZYX:
		return [3]int{2, 1, 0}, true
	}
	return [3]int{0, 1, 2}, false
}

// Converter converts Euler angles (radians) to and from quaternions.
type Converter interface {

	// ToQuat returns the quaternion for the given Euler angles in the given order.
	ToQuat(euler math32.Vector3, order Order) math32.Quat

	// ToEuler returns the Euler angles in the given order for the given unit quaternion.
	ToEuler(q math32.Quat, order Order) math32.Vector3
}

// Default is the standard Converter.
var Default Converter = converter{}

type converter struct{}

func (converter) ToQuat(euler math32.Vector3, order Order) math32.Quat {
	return EulerToQuat(euler, order)
}

func (converter) ToEuler(q math32.Quat, order Order) math32.Vector3 {
	return QuatToEuler(q, order)
}

var unitAxes = [3]math32.Vector3{{X: 1}, {Y: 1}, {Z: 1}}

// EulerToQuat returns the quaternion for the given Euler angles in radians,
// applied in the given order.
func EulerToQuat(euler math32.Vector3, order Order) math32.Quat {
	ax, _ := order.axes()
	q := math32.NewQuat(0, 0, 0, 1)
	for _, a := range ax {
		r := math32.NewQuatAxisAngle(unitAxes[a], euler.Dim(math32.Dims(a)))
		q = r.Mul(q)
	}
	return q
}

// QuatToEuler returns the Euler angles in radians for the given quaternion
// in the given order. The quaternion is relabeled so that the order becomes
// XYZ (negating the rotation for odd permutations), decomposed, and
// the angles are mapped back to their axes.
func QuatToEuler(q math32.Quat, order Order) math32.Vector3 {
	q.Normalize()
	ax, odd := order.axes()
	v := [3]float32{q.X, q.Y, q.Z}
	p := math32.NewQuat(v[ax[0]], v[ax[1]], v[ax[2]], q.W)
	if odd {
		p.X, p.Y, p.Z = -p.X, -p.Y, -p.Z
	}
	e := eulerXYZ(p)
	if odd {
		e[0], e[1], e[2] = -e[0], -e[1], -e[2]
	}
	var out math32.Vector3
	for i, a := range ax {
		out.SetDim(math32.Dims(a), e[i])
	}
	return out
}

// eulerXYZ decomposes a unit quaternion into angles about X, Y, Z,
// applied in that order (R = Rz * Ry * Rx).
func eulerXYZ(q math32.Quat) [3]float32 {
	x, y, z, w := q.X, q.Y, q.Z, q.W
	r00 := 1 - 2*(y*y+z*z)
	r10 := 2 * (x*y + z*w)
	r20 := 2 * (x*z - y*w)
	r21 := 2 * (y*z + x*w)
	r22 := 1 - 2*(x*x+y*y)
	r11 := 1 - 2*(x*x+z*z)
	r12 := 2 * (y*z - x*w)

	b := math32.Asin(math32.Clamp(-r20, -1, 1))
	if math32.Abs(r20) < 0.9999999 {
		return [3]float32{math32.Atan2(r21, r22), b, math32.Atan2(r10, r00)}
	}
	// gimbal lock: only the difference of the X and Z angles is defined
	return [3]float32{math32.Atan2(-r12, r11), b, 0}
}

// Slerp blends two Euler rotations given in degrees along the shortest arc,
// using the given converter and rotation order, returning degrees.
func Slerp(c Converter, r1, r2 math32.Vector3, t float32, order Order) math32.Vector3 {
	if c == nil {
		c = Default
	}
	q1 := c.ToQuat(r1.MulScalar(math32.DegToRadFactor), order)
	q2 := c.ToQuat(r2.MulScalar(math32.DegToRadFactor), order)
	if q1.Dot(q2) < 0 {
		q2 = math32.NewQuat(-q2.X, -q2.Y, -q2.Z, -q2.W)
	}
	q1.Slerp(q2, t)
	return c.ToEuler(q1, order).MulScalar(math32.RadToDegFactor)
}
