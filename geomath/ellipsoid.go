// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geomath

import "math"

// Cartographic is a geodetic position: longitude and latitude in radians,
// plus height in meters above the ellipsoid surface.
type Cartographic struct {
	Longitude float64
	Latitude  float64
	Height    float64
}

// Ellipsoid describes a biaxial ellipsoid of revolution used to model a
// planet's surface.
type Ellipsoid struct {
	RadiiSquared        Cartesian3
	OneOverRadii        Cartesian3
	OneOverRadiiSquared Cartesian3
}

// NewEllipsoid builds an Ellipsoid from its three radii.
func NewEllipsoid(x, y, z float64) Ellipsoid {
	return Ellipsoid{
		RadiiSquared:        Cartesian3{x * x, y * y, z * z},
		OneOverRadii:        Cartesian3{1 / x, 1 / y, 1 / z},
		OneOverRadiiSquared: Cartesian3{1 / (x * x), 1 / (y * y), 1 / (z * z)},
	}
}

// WGS84 is the standard reference ellipsoid used by Earth-based tiling
// schemes (equatorial/polar radii in meters).
var WGS84 = NewEllipsoid(6378137.0, 6378137.0, 6356752.3142451793)

// CartographicToCartesian converts a geodetic position to a geocentric
// Cartesian3, using the standard iterative-free closed form for a biaxial
// ellipsoid.
func (e Ellipsoid) CartographicToCartesian(c Cartographic) Cartesian3 {
	cosLat := math.Cos(c.Latitude)
	n := Cartesian3{
		X: cosLat * math.Cos(c.Longitude),
		Y: cosLat * math.Sin(c.Longitude),
		Z: math.Sin(c.Latitude),
	}
	n = n.Normalize()

	k := Cartesian3{
		X: e.RadiiSquared.X * n.X,
		Y: e.RadiiSquared.Y * n.Y,
		Z: e.RadiiSquared.Z * n.Z,
	}
	gamma := math.Sqrt(n.Dot(k))
	k = k.Scale(1 / gamma)
	h := n.Scale(c.Height)

	return k.Add(h)
}

// CartesianToCartographic converts a geocentric Cartesian3 back to a
// geodetic position: it projects pos onto the surface along the geodetic
// normal (Newton iteration in scaleToGeodeticSurface), reads latitude and
// longitude from that surface normal, and takes the signed distance to the
// surface point as the height.
func (e Ellipsoid) CartesianToCartographic(pos Cartesian3) Cartographic {
	p := e.scaleToGeodeticSurface(pos)
	hVec := pos.Sub(p)
	height := math.Copysign(hVec.Length(), pos.Dot(hVec))

	n := e.geodeticSurfaceNormal(p)
	longitude := math.Atan2(n.Y, n.X)
	latitude := math.Asin(n.Z)

	return Cartographic{Longitude: longitude, Latitude: latitude, Height: height}
}

// geodeticSurfaceNormal returns the outward unit normal at a point already
// on the ellipsoid surface.
func (e Ellipsoid) geodeticSurfaceNormal(p Cartesian3) Cartesian3 {
	return Cartesian3{
		X: p.X * e.OneOverRadiiSquared.X,
		Y: p.Y * e.OneOverRadiiSquared.Y,
		Z: p.Z * e.OneOverRadiiSquared.Z,
	}.Normalize()
}

// scaleToGeodeticSurface projects an arbitrary point onto the ellipsoid
// surface along its geodetic normal, via Newton's method (matches the
// classic Cesium/STK implementation's fixed iteration count).
func (e Ellipsoid) scaleToGeodeticSurface(pos Cartesian3) Cartesian3 {
	x2 := pos.X * pos.X * e.OneOverRadiiSquared.X
	y2 := pos.Y * pos.Y * e.OneOverRadiiSquared.Y
	z2 := pos.Z * pos.Z * e.OneOverRadiiSquared.Z

	squaredNorm := x2 + y2 + z2
	ratio := math.Sqrt(1 / squaredNorm)

	intersection := pos.Scale(ratio)
	if squaredNorm < 1e-150 {
		return intersection
	}

	gradient := Cartesian3{
		X: intersection.X * e.OneOverRadiiSquared.X * 2,
		Y: intersection.Y * e.OneOverRadiiSquared.Y * 2,
		Z: intersection.Z * e.OneOverRadiiSquared.Z * 2,
	}

	lambda := (1 - ratio) * pos.Length() / (0.5 * gradient.Length())
	correction := 0.0

	var xM, yM, zM, xM2, yM2, zM2, derivative, funcVal float64
	for i := 0; i < 10; i++ {
		lambda -= correction
		xM = 1 / (1 + lambda*e.OneOverRadiiSquared.X)
		yM = 1 / (1 + lambda*e.OneOverRadiiSquared.Y)
		zM = 1 / (1 + lambda*e.OneOverRadiiSquared.Z)
		xM2, yM2, zM2 = xM*xM, yM*yM, zM*zM

		funcVal = x2*xM2 + y2*yM2 + z2*zM2 - 1

		derivative = -2 * (x2*xM2*xM*e.OneOverRadiiSquared.X +
			y2*yM2*yM*e.OneOverRadiiSquared.Y +
			z2*zM2*zM*e.OneOverRadiiSquared.Z)

		correction = funcVal / derivative
		if math.Abs(funcVal) < 1e-12 {
			break
		}
	}

	return Cartesian3{
		X: pos.X * xM,
		Y: pos.Y * yM,
		Z: pos.Z * zM,
	}
}

// GeodeticSurfaceNormalCartographic returns the outward unit normal at the
// given geodetic position.
func (e Ellipsoid) GeodeticSurfaceNormalCartographic(c Cartographic) Cartesian3 {
	cosLat := math.Cos(c.Latitude)
	return Cartesian3{
		X: cosLat * math.Cos(c.Longitude),
		Y: cosLat * math.Sin(c.Longitude),
		Z: math.Sin(c.Latitude),
	}
}

// MaximumRadius returns the largest of the three ellipsoid radii.
func (e Ellipsoid) MaximumRadius() float64 {
	r := 1 / e.OneOverRadii.X
	if v := 1 / e.OneOverRadii.Y; v > r {
		r = v
	}
	if v := 1 / e.OneOverRadii.Z; v > r {
		r = v
	}
	return r
}
