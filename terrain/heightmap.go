// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package terrain

import (
	"math"

	"github.com/gogpu/globesurface/geomath"
	"github.com/gogpu/globesurface/internal/quadtree"
	"github.com/gogpu/globesurface/render"
)

// Heightmap is a synthetic, in-memory Provider: it fabricates a smooth
// height field from a sum of sinusoids rather than reading real elevation
// data, so the engine is runnable end to end without a tile service.
type Heightmap struct {
	scheme    geomath.TilingScheme
	gridSize  int
	amplitude float64
	maxLevel  int
}

// NewHeightmap builds a Heightmap sampling a gridSize x gridSize mesh per
// tile, with synthetic elevation staying within +/- 1.15 x amplitude
// meters (half the sum of two unit sinusoids and one 0.3-weighted one).
func NewHeightmap(scheme geomath.TilingScheme, gridSize int, amplitude float64, maxLevel int) *Heightmap {
	if gridSize < 2 {
		gridSize = 8
	}
	return &Heightmap{scheme: scheme, gridSize: gridSize, amplitude: amplitude, maxLevel: maxLevel}
}

// TilingScheme implements Provider.
func (h *Heightmap) TilingScheme() geomath.TilingScheme { return h.scheme }

// MaxLevel implements Provider.
func (h *Heightmap) MaxLevel() int { return h.maxLevel }

// LevelMaximumGeometricError implements Provider: geometric error halves
// each level, the same decay Cesium-derived terrain providers advertise,
// anchored at an arbitrary but consistent 100km at level zero.
func (h *Heightmap) LevelMaximumGeometricError(level int) float64 {
	return 100000.0 / math.Pow(2, float64(level))
}

// heightSamples is the Received-stage payload: a row-major grid of
// elevations across the tile's extent.
type heightSamples struct {
	values []float64
}

func (h *Heightmap) sample(lon, lat float64, level int) float64 {
	// A handful of mismatched sinusoid frequencies so neighboring tiles
	// blend smoothly (continuous in lon/lat) without being flat.
	return h.amplitude * 0.5 * (math.Sin(lon*3+lat*2) + math.Cos(lon*5-lat*7) + 0.3*math.Sin(lon*11+float64(level)))
}

// RequestTileGeometry implements Provider. Synthetic generation never
// fails and never blocks, so it completes straight to Received.
func (h *Heightmap) RequestTileGeometry(tile *quadtree.Tile) {
	values := make([]float64, h.gridSize*h.gridSize)
	for j := 0; j < h.gridSize; j++ {
		v := float64(j) / float64(h.gridSize-1)
		lat := tile.Extent.South + v*(tile.Extent.North-tile.Extent.South)
		for i := 0; i < h.gridSize; i++ {
			u := float64(i) / float64(h.gridSize-1)
			lon := tile.Extent.West + u*(tile.Extent.East-tile.Extent.West)
			values[j*h.gridSize+i] = h.sample(lon, lat, tile.Level)
		}
	}
	tile.Payload = heightSamples{values: values}
	tile.TerrainState = quadtree.TerrainReceived
}

// TransformGeometry implements Provider: builds an RTC-relative triangle
// mesh from the sample grid and refreshes the tile's culling aids against
// the now-known height range.
func (h *Heightmap) TransformGeometry(_ render.Context, tile *quadtree.Tile) {
	samples, ok := tile.Payload.(heightSamples)
	if !ok {
		tile.TerrainState = quadtree.TerrainFailed
		return
	}

	ellipsoid := h.scheme.Ellipsoid()
	minHeight, maxHeight := samples.values[0], samples.values[0]
	for _, v := range samples.values {
		if v < minHeight {
			minHeight = v
		}
		if v > maxHeight {
			maxHeight = v
		}
	}
	tile.MinHeight, tile.MaxHeight = minHeight, maxHeight
	tile.RefreshBounds(ellipsoid)
	center := tile.Center

	n := h.gridSize
	positions := make([]float32, 0, n*n*3)
	for j := 0; j < n; j++ {
		v := float64(j) / float64(n-1)
		lat := tile.Extent.South + v*(tile.Extent.North-tile.Extent.South)
		for i := 0; i < n; i++ {
			u := float64(i) / float64(n-1)
			lon := tile.Extent.West + u*(tile.Extent.East-tile.Extent.West)
			height := samples.values[j*n+i]
			pos := ellipsoid.CartographicToCartesian(geomath.Cartographic{Longitude: lon, Latitude: lat, Height: height})
			rtc := pos.Sub(center)
			positions = append(positions, float32(rtc.X), float32(rtc.Y), float32(rtc.Z))
		}
	}

	indices := make([]uint32, 0, (n-1)*(n-1)*6)
	for j := 0; j < n-1; j++ {
		for i := 0; i < n-1; i++ {
			tl := uint32(j*n + i)
			tr := tl + 1
			bl := uint32((j+1)*n + i)
			br := bl + 1
			indices = append(indices, tl, bl, tr, tr, bl, br)
		}
	}

	tile.Payload = render.Mesh{Positions: positions, Indices: indices}
	tile.TerrainState = quadtree.TerrainTransformed
}

// CreateResources implements Provider: uploads the transformed mesh via
// the render.Context and marks the tile Ready.
func (h *Heightmap) CreateResources(ctx render.Context, tile *quadtree.Tile) {
	mesh, ok := tile.Payload.(render.Mesh)
	if !ok {
		tile.TerrainState = quadtree.TerrainFailed
		return
	}
	va, err := ctx.CreateVertexArrayFromMesh(mesh)
	if err != nil {
		tile.TerrainState = quadtree.TerrainFailed
		return
	}
	tile.VertexArray = va
	tile.Payload = nil
	tile.TerrainState = quadtree.TerrainReady
}
