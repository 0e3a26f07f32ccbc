// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geomath

// TileBoundingVolumes bundles the precomputed per-tile culling aids
// spec.md §3 lists on Tile: center, corners, outward wall normals, and a
// bounding sphere. Computed once per tile when its height range becomes
// known (initially [0,0], refined once terrain geometry is loaded).
type TileBoundingVolumes struct {
	Center             Cartesian3
	SouthwestCorner    Cartesian3
	NortheastCorner    Cartesian3
	WestNormal         Cartesian3
	EastNormal         Cartesian3
	SouthNormal        Cartesian3
	NorthNormal        Cartesian3
	BoundingSphere3D   BoundingSphere
}

// ComputeTileBoundingVolumes derives a tile's culling aids from its
// geographic extent and height range.
func ComputeTileBoundingVolumes(e Ellipsoid, extent Extent, minHeight, maxHeight float64) TileBoundingVolumes {
	sw := Cartographic{Longitude: extent.West, Latitude: extent.South}
	se := Cartographic{Longitude: extent.East, Latitude: extent.South}
	nw := Cartographic{Longitude: extent.West, Latitude: extent.North}
	ne := Cartographic{Longitude: extent.East, Latitude: extent.North}

	swLow := e.CartographicToCartesian(Cartographic{Longitude: sw.Longitude, Latitude: sw.Latitude, Height: minHeight})
	seLow := e.CartographicToCartesian(Cartographic{Longitude: se.Longitude, Latitude: se.Latitude, Height: minHeight})
	nwLow := e.CartographicToCartesian(Cartographic{Longitude: nw.Longitude, Latitude: nw.Latitude, Height: minHeight})
	neLow := e.CartographicToCartesian(Cartographic{Longitude: ne.Longitude, Latitude: ne.Latitude, Height: minHeight})

	swHigh := e.CartographicToCartesian(Cartographic{Longitude: sw.Longitude, Latitude: sw.Latitude, Height: maxHeight})
	seHigh := e.CartographicToCartesian(Cartographic{Longitude: se.Longitude, Latitude: se.Latitude, Height: maxHeight})
	nwHigh := e.CartographicToCartesian(Cartographic{Longitude: nw.Longitude, Latitude: nw.Latitude, Height: maxHeight})
	neHigh := e.CartographicToCartesian(Cartographic{Longitude: ne.Longitude, Latitude: ne.Latitude, Height: maxHeight})

	centerCarto := extent.Center()
	centerCarto.Height = (minHeight + maxHeight) / 2
	center := e.CartographicToCartesian(centerCarto)

	corners := []Cartesian3{swLow, seLow, nwLow, neLow, swHigh, seHigh, nwHigh, neHigh}
	sphere := FromCorners(corners)

	westNormal := outwardWallNormal(swLow, nwLow, center)
	eastNormal := outwardWallNormal(seLow, neLow, center)
	southNormal := outwardEdgeNormal(swLow, seLow, e.GeodeticSurfaceNormalCartographic(sw), center)
	northNormal := outwardEdgeNormal(nwLow, neLow, e.GeodeticSurfaceNormalCartographic(nw), center)

	return TileBoundingVolumes{
		Center:           center,
		SouthwestCorner:  swLow,
		NortheastCorner:  neLow,
		WestNormal:       westNormal,
		EastNormal:       eastNormal,
		SouthNormal:      southNormal,
		NorthNormal:      northNormal,
		BoundingSphere3D: sphere,
	}
}

// outwardWallNormal computes the normal of the meridian plane through two
// corners sharing a longitude (and so, through the ellipsoid center),
// oriented to point away from the tile center.
func outwardWallNormal(a, b, tileCenter Cartesian3) Cartesian3 {
	n := a.Cross(b).Normalize()
	if n.Dot(tileCenter.Sub(a)) > 0 {
		n = n.Scale(-1)
	}
	return n
}

// outwardEdgeNormal approximates the normal of a latitude-line edge (not
// generally planar through the ellipsoid center) using the edge's tangent
// direction crossed with the local geodetic up vector, oriented outward.
func outwardEdgeNormal(a, b, localUp, tileCenter Cartesian3) Cartesian3 {
	edge := b.Sub(a).Normalize()
	n := edge.Cross(localUp).Normalize()
	if n.Dot(tileCenter.Sub(a)) > 0 {
		n = n.Scale(-1)
	}
	return n
}
