// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package geomath provides the ellipsoid, projection, and bounding-volume
// math that the surface engine consumes but does not own. A real host
// application typically already has a richer math library (camera,
// quaternions, full frustum intersection); this package supplies just
// enough of that surface for the engine to be buildable and testable on
// its own.
package geomath

import "math"

// Cartesian3 is a point or vector in a right-handed 3D Cartesian space.
type Cartesian3 struct {
	X, Y, Z float64
}

// Add returns the component-wise sum of two vectors.
func (a Cartesian3) Add(b Cartesian3) Cartesian3 {
	return Cartesian3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Sub returns the component-wise difference a - b.
func (a Cartesian3) Sub(b Cartesian3) Cartesian3 {
	return Cartesian3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Scale returns a scaled by s.
func (a Cartesian3) Scale(s float64) Cartesian3 {
	return Cartesian3{a.X * s, a.Y * s, a.Z * s}
}

// Dot returns the dot product of a and b.
func (a Cartesian3) Dot(b Cartesian3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product a x b.
func (a Cartesian3) Cross(b Cartesian3) Cartesian3 {
	return Cartesian3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

// LengthSquared returns the squared magnitude of a.
func (a Cartesian3) LengthSquared() float64 {
	return a.Dot(a)
}

// Length returns the magnitude of a.
func (a Cartesian3) Length() float64 {
	return math.Sqrt(a.LengthSquared())
}

// Normalize returns a normalized to unit length. The zero vector is
// returned unchanged.
func (a Cartesian3) Normalize() Cartesian3 {
	l := a.Length()
	if l == 0 {
		return a
	}
	return a.Scale(1 / l)
}

// DistanceSquared returns the squared distance between a and b.
func (a Cartesian3) DistanceSquared(b Cartesian3) float64 {
	return a.Sub(b).LengthSquared()
}

// Midpoint returns the midpoint between a and b.
func (a Cartesian3) Midpoint(b Cartesian3) Cartesian3 {
	return a.Add(b).Scale(0.5)
}
