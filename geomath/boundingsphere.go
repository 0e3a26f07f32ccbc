// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geomath

// BoundingSphere is a sphere used for frustum-culling tests.
type BoundingSphere struct {
	Center Cartesian3
	Radius float64
}

// FromCorners builds a BoundingSphere that contains all of the given
// points: it starts from the pair with the smallest and largest X and then
// grows the sphere to take in each outlier (not minimal, but O(n) and
// cheap — adequate for per-tile culling volumes
// computed once at tile creation).
func FromCorners(points []Cartesian3) BoundingSphere {
	if len(points) == 0 {
		return BoundingSphere{}
	}

	// Find an approximate diameter via the pair with extreme X separation.
	minX, maxX := 0, 0
	for i, p := range points {
		if p.X < points[minX].X {
			minX = i
		}
		if p.X > points[maxX].X {
			maxX = i
		}
	}

	center := points[minX].Midpoint(points[maxX])
	radius := points[minX].Sub(center).Length()

	for _, p := range points {
		d := p.Sub(center).Length()
		if d > radius {
			// Grow the sphere to include the outlier, shifting center
			// halfway toward it so all previously-included points stay in.
			newRadius := (radius + d) / 2
			shift := newRadius - radius
			dir := p.Sub(center).Normalize()
			center = center.Add(dir.Scale(shift))
			radius = newRadius
		}
	}

	return BoundingSphere{Center: center, Radius: radius}
}

// Union returns the smallest BoundingSphere containing both a and b.
func (a BoundingSphere) Union(b BoundingSphere) BoundingSphere {
	if a.Radius == 0 {
		return b
	}
	if b.Radius == 0 {
		return a
	}

	toB := b.Center.Sub(a.Center)
	dist := toB.Length()

	if dist+a.Radius <= b.Radius {
		return b
	}
	if dist+b.Radius <= a.Radius {
		return a
	}

	newRadius := (a.Radius + b.Radius + dist) / 2
	if dist == 0 {
		return BoundingSphere{Center: a.Center, Radius: newRadius}
	}
	center := a.Center.Add(toB.Scale((newRadius - a.Radius) / dist))
	return BoundingSphere{Center: center, Radius: newRadius}
}

// Plane is an infinite plane defined by a unit outward normal and the
// signed distance from the origin along that normal.
type Plane struct {
	Normal   Cartesian3
	Distance float64
}

// NewPlane builds a Plane through a point with the given outward normal.
func NewPlane(point, normal Cartesian3) Plane {
	n := normal.Normalize()
	return Plane{Normal: n, Distance: -n.Dot(point)}
}

// DistanceTo returns the signed distance from point to the plane; positive
// on the side the normal points toward.
func (p Plane) DistanceTo(point Cartesian3) float64 {
	return p.Normal.Dot(point) + p.Distance
}

// IntersectsSphere reports whether the sphere is on the positive side of
// the plane, or straddles it — i.e. NOT entirely behind (culled by) the
// plane.
func (p Plane) IntersectsSphere(s BoundingSphere) bool {
	return p.DistanceTo(s.Center) >= -s.Radius
}

// FrustumPlanes is the set of planes bounding a view frustum (left, right,
// top, bottom, near, far), each with its normal pointing into the frustum:
// a sphere entirely on the negative side of any plane is outside. The caller (camera/scene
// graph — out of scope for this engine) is responsible for computing
// these each frame.
type FrustumPlanes struct {
	Left, Right, Top, Bottom, Near, Far Plane
}

// ComputeVisibility performs frustum culling of a bounding sphere against
// all six planes. The sphere is visible unless strictly outside any one
// plane.
func (f FrustumPlanes) ComputeVisibility(s BoundingSphere) bool {
	planes := [6]Plane{f.Left, f.Right, f.Top, f.Bottom, f.Near, f.Far}
	for _, pl := range planes {
		if !pl.IntersectsSphere(s) {
			return false
		}
	}
	return true
}
