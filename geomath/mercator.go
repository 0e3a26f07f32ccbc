// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geomath

import "math"

// WebMercatorProjection implements the EPSG:3857 projection used by most
// web map tiling schemes. Forward/inverse formulas follow the standard
// spherical-Mercator derivation (e.g. pspoerri/geotiff2pmtiles's
// internal/coord package), generalized here to an arbitrary ellipsoid
// radius instead of a hard-coded Earth constant.
type WebMercatorProjection struct {
	ellipsoid Ellipsoid
	radius    float64
}

// NewWebMercatorProjection builds a projection for the given ellipsoid.
func NewWebMercatorProjection(e Ellipsoid) WebMercatorProjection {
	return WebMercatorProjection{ellipsoid: e, radius: e.MaximumRadius()}
}

// Project converts a geodetic position to Mercator-projected meters.
func (w WebMercatorProjection) Project(c Cartographic) (x, y float64) {
	x = c.Longitude * w.radius
	y = w.radius * math.Log(math.Tan(math.Pi/4+c.Latitude/2))
	return x, y
}

// Unproject converts Mercator-projected meters back to a geodetic
// position (height is always zero; Mercator is a 2D projection).
func (w WebMercatorProjection) Unproject(x, y float64) Cartographic {
	longitude := x / w.radius
	latitude := math.Pi/2 - 2*math.Atan(math.Exp(-y/w.radius))
	return Cartographic{Longitude: longitude, Latitude: latitude}
}

// MercatorAngleToGeodeticLatitude converts a Mercator Y angle (radians)
// to geodetic latitude (radians). NewWebMercatorTilingScheme uses it to
// find the scheme's latitude limit.
func MercatorAngleToGeodeticLatitude(mercatorAngle float64) float64 {
	return math.Pi/2 - 2*math.Atan(math.Exp(-mercatorAngle))
}

// GeodeticLatitudeToMercatorAngle converts geodetic latitude (radians) to
// a Mercator Y angle (radians), clamped to the projection's valid range.
func GeodeticLatitudeToMercatorAngle(latitude float64) float64 {
	const maxLat = 1.4844222297453324 // ~85.05113 degrees, Web Mercator limit
	if latitude > maxLat {
		latitude = maxLat
	} else if latitude < -maxLat {
		latitude = -maxLat
	}
	return math.Log(math.Tan(math.Pi/4 + latitude/2))
}

// SplitHighLow splits a float64 into a high-precision/low-precision pair
// of float32 values, the "Mercator high/low" trick used to regain
// precision when a double is uploaded to a single-precision GPU uniform.
func SplitHighLow(value float64) (high, low float32) {
	h := float32(value)
	l := float32(value - float64(h))
	return h, l
}
