// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geomath

import "math"

// Extent is a geographic rectangle expressed in radians.
type Extent struct {
	West, South, East, North float64
}

// Center returns the cartographic center of the extent at zero height.
func (r Extent) Center() Cartographic {
	return Cartographic{
		Longitude: (r.West + r.East) / 2,
		Latitude:  (r.South + r.North) / 2,
	}
}

// TilingScheme maps tile (level, x, y) coordinates to geographic extents
// and back. Terrain and imagery providers each declare one; the engine
// treats it as an opaque collaborator (spec §1: projection/ellipsoid math
// is consumed, not specified here) beyond the handful of queries it needs
// for traversal and texture-coordinate mapping.
type TilingScheme interface {
	Ellipsoid() Ellipsoid
	NumberOfLevelZeroTilesX() int
	NumberOfLevelZeroTilesY() int
	TileXYToExtent(level, x, y int) Extent
	PositionToTileXY(c Cartographic, level int) (x, y int)
}

// GeographicTilingScheme is a plate-carrée tiling scheme: longitude and
// latitude map linearly to tile X/Y, the simplest scheme and the one used
// by the reference terrain/imagery providers and the demo.
type GeographicTilingScheme struct {
	ellipsoid                                   Ellipsoid
	numberOfLevelZeroTilesX, numberOfLevelZeroTilesY int
	extent                                       Extent
}

// NewGeographicTilingScheme builds a scheme covering the whole globe with
// the given number of level-zero tiles (classically 2x1 for geographic).
func NewGeographicTilingScheme(e Ellipsoid, rootTilesX, rootTilesY int) *GeographicTilingScheme {
	return &GeographicTilingScheme{
		ellipsoid:               e,
		numberOfLevelZeroTilesX: rootTilesX,
		numberOfLevelZeroTilesY: rootTilesY,
		extent: Extent{
			West:  -math.Pi,
			South: -math.Pi / 2,
			East:  math.Pi,
			North: math.Pi / 2,
		},
	}
}

// Ellipsoid implements TilingScheme.
func (s *GeographicTilingScheme) Ellipsoid() Ellipsoid { return s.ellipsoid }

// NumberOfLevelZeroTilesX implements TilingScheme.
func (s *GeographicTilingScheme) NumberOfLevelZeroTilesX() int { return s.numberOfLevelZeroTilesX }

// NumberOfLevelZeroTilesY implements TilingScheme.
func (s *GeographicTilingScheme) NumberOfLevelZeroTilesY() int { return s.numberOfLevelZeroTilesY }

// TileXYToExtent implements TilingScheme.
func (s *GeographicTilingScheme) TileXYToExtent(level, x, y int) Extent {
	tilesX := s.numberOfLevelZeroTilesX << uint(level)
	tilesY := s.numberOfLevelZeroTilesY << uint(level)

	lonWidth := (s.extent.East - s.extent.West) / float64(tilesX)
	latHeight := (s.extent.North - s.extent.South) / float64(tilesY)

	west := s.extent.West + float64(x)*lonWidth
	east := west + lonWidth
	north := s.extent.North - float64(y)*latHeight
	south := north - latHeight

	return Extent{West: west, South: south, East: east, North: north}
}

// PositionToTileXY implements TilingScheme.
func (s *GeographicTilingScheme) PositionToTileXY(c Cartographic, level int) (x, y int) {
	tilesX := s.numberOfLevelZeroTilesX << uint(level)
	tilesY := s.numberOfLevelZeroTilesY << uint(level)

	lonWidth := (s.extent.East - s.extent.West) / float64(tilesX)
	latHeight := (s.extent.North - s.extent.South) / float64(tilesY)

	x = int(math.Floor((c.Longitude - s.extent.West) / lonWidth))
	y = int(math.Floor((s.extent.North - c.Latitude) / latHeight))

	if x < 0 {
		x = 0
	}
	if x >= tilesX {
		x = tilesX - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= tilesY {
		y = tilesY - 1
	}
	return x, y
}

// WebMercatorTilingScheme is the quadtree scheme used by most commercial
// web map imagery providers (2x1 level-zero tiles over the Mercator
// extent rather than a geographic plate-carrée extent).
type WebMercatorTilingScheme struct {
	ellipsoid  Ellipsoid
	projection WebMercatorProjection
	rootTilesX, rootTilesY int
	extentMetersX, extentMetersY float64
}

// NewWebMercatorTilingScheme builds a web-Mercator scheme (2x1 root
// tiles, covering the full [-pi,pi] longitude / Mercator-valid
// latitude range).
func NewWebMercatorTilingScheme(e Ellipsoid) *WebMercatorTilingScheme {
	proj := NewWebMercatorProjection(e)
	maxLat := MercatorAngleToGeodeticLatitude(math.Pi)
	_, topY := proj.Project(Cartographic{Latitude: maxLat})
	return &WebMercatorTilingScheme{
		ellipsoid:     e,
		projection:    proj,
		rootTilesX:    2,
		rootTilesY:    1,
		extentMetersX: math.Pi * e.MaximumRadius(),
		extentMetersY: topY,
	}
}

// Ellipsoid implements TilingScheme.
func (s *WebMercatorTilingScheme) Ellipsoid() Ellipsoid { return s.ellipsoid }

// NumberOfLevelZeroTilesX implements TilingScheme.
func (s *WebMercatorTilingScheme) NumberOfLevelZeroTilesX() int { return s.rootTilesX }

// NumberOfLevelZeroTilesY implements TilingScheme.
func (s *WebMercatorTilingScheme) NumberOfLevelZeroTilesY() int { return s.rootTilesY }

// TileXYToExtent implements TilingScheme.
func (s *WebMercatorTilingScheme) TileXYToExtent(level, x, y int) Extent {
	tilesX := s.rootTilesX << uint(level)
	tilesY := s.rootTilesY << uint(level)

	tileWidth := 2 * s.extentMetersX / float64(tilesX)
	tileHeight := 2 * s.extentMetersY / float64(tilesY)

	west := -s.extentMetersX + float64(x)*tileWidth
	east := west + tileWidth
	north := s.extentMetersY - float64(y)*tileHeight
	south := north - tileHeight

	sw := s.projection.Unproject(west, south)
	ne := s.projection.Unproject(east, north)

	return Extent{West: sw.Longitude, South: sw.Latitude, East: ne.Longitude, North: ne.Latitude}
}

// PositionToTileXY implements TilingScheme.
func (s *WebMercatorTilingScheme) PositionToTileXY(c Cartographic, level int) (x, y int) {
	tilesX := s.rootTilesX << uint(level)
	tilesY := s.rootTilesY << uint(level)

	mx, my := s.projection.Project(c)

	tileWidth := 2 * s.extentMetersX / float64(tilesX)
	tileHeight := 2 * s.extentMetersY / float64(tilesY)

	x = int(math.Floor((mx + s.extentMetersX) / tileWidth))
	y = int(math.Floor((s.extentMetersY - my) / tileHeight))

	if x < 0 {
		x = 0
	}
	if x >= tilesX {
		x = tilesX - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= tilesY {
		y = tilesY - 1
	}
	return x, y
}
