// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geomath

import "math"

// EllipsoidalOccluder implements horizon culling against an ellipsoid: a
// tile entirely behind the planet's horizon, as seen from the camera, can
// be skipped even though it would otherwise pass frustum culling.
//
// The classic technique (Cozzi & Ring, "3D Engine Design for Virtual
// Globes") transforms into "scaled space" — coordinates divided
// component-wise by the ellipsoid radii, in which the ellipsoid becomes a
// unit sphere and the horizon test reduces to a simple dot-product
// comparison.
type EllipsoidalOccluder struct {
	ellipsoid     Ellipsoid
	cameraPos     Cartesian3
	scaledCamera  Cartesian3
	distToCenter2 float64
	horizonDist2  float64
}

// NewEllipsoidalOccluder builds an occluder for the given ellipsoid. Call
// SetCameraPosition once per frame before IsPointVisible.
func NewEllipsoidalOccluder(e Ellipsoid) *EllipsoidalOccluder {
	return &EllipsoidalOccluder{ellipsoid: e}
}

func (o *EllipsoidalOccluder) scale(p Cartesian3) Cartesian3 {
	return Cartesian3{
		X: p.X * o.ellipsoid.OneOverRadii.X,
		Y: p.Y * o.ellipsoid.OneOverRadii.Y,
		Z: p.Z * o.ellipsoid.OneOverRadii.Z,
	}
}

// SetCameraPosition updates the occluder's notion of where the camera is,
// in the engine's geocentric Cartesian space.
func (o *EllipsoidalOccluder) SetCameraPosition(pos Cartesian3) {
	o.cameraPos = pos
	o.scaledCamera = o.scale(pos)
	o.distToCenter2 = o.scaledCamera.LengthSquared()
	// Distance from camera to the horizon, in scaled space: for a unit
	// sphere and a point at scaled distance d from center, the tangent
	// line to the sphere has length sqrt(d^2 - 1).
	o.horizonDist2 = o.distToCenter2 - 1
	if o.horizonDist2 < 0 {
		o.horizonDist2 = 0
	}
}

// IsPointVisible reports whether occludeePoint (already expressed in
// scaled space, per tile.occludeePointInScaledSpace) is in front of the
// horizon as seen from the last camera position set via
// SetCameraPosition. A tile with no occludee point should skip this test
// and rely on frustum culling alone.
func (o *EllipsoidalOccluder) IsPointVisible(occludeePoint Cartesian3) bool {
	if o.horizonDist2 <= 0 {
		// Camera is inside or on the reference ellipsoid; horizon culling
		// is meaningless, treat everything as potentially visible.
		return true
	}

	toOccludee := occludeePoint.Sub(o.scaledCamera)
	vt := -toOccludee.Dot(o.scaledCamera)

	isOccluded := vt > o.horizonDist2 &&
		(vt*vt/toOccludee.LengthSquared()) > o.horizonDist2

	return !isOccluded
}

// ComputeOccludeePoint computes a conservative occludee point for a tile
// given its bounding sphere center/radius and the ellipsoid center,
// expressed in scaled space for use with IsPointVisible. Returns ok=false
// when no meaningful occludee point exists (e.g. degenerate radius).
func (o *EllipsoidalOccluder) ComputeOccludeePoint(center Cartesian3, radius float64) (point Cartesian3, ok bool) {
	if radius <= 0 {
		return Cartesian3{}, false
	}
	scaledCenter := o.scale(center)
	scaledRadius := radius * (1 / o.ellipsoid.MaximumRadius())
	d := scaledCenter.Length()
	if d <= scaledRadius {
		return Cartesian3{}, false
	}
	// Push the test point to the far side of the tile from the ellipsoid
	// center, along the center->tile direction, by the tile's scaled
	// radius — the point least likely to be hidden by the horizon, so a
	// tile is only culled when even this point is occluded.
	dir := scaledCenter.Normalize()
	farPoint := scaledCenter.Add(dir.Scale(scaledRadius))
	return farPoint, true
}

// Magnitude is a small helper exposed for tests/debugging: sqrt of a
// squared scalar, clamped to zero for tiny negative floating error.
func Magnitude(v float64) float64 {
	if v < 0 {
		return 0
	}
	return math.Sqrt(v)
}
