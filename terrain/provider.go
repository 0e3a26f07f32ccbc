// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package terrain defines the terrain provider collaborator interface
// (spec §6) and ships Heightmap, a synthetic in-memory reference
// implementation used by tests and the demo CLI.
package terrain

import (
	"github.com/gogpu/globesurface/geomath"
	"github.com/gogpu/globesurface/internal/quadtree"
	"github.com/gogpu/globesurface/render"
)

// Provider supplies geometry for the terrain quadtree. Per spec §6, the
// three request/transform/create methods mutate tile.TerrainState and may
// be genuinely asynchronous; the reference Heightmap provider completes
// them synchronously.
type Provider interface {
	TilingScheme() geomath.TilingScheme
	// LevelMaximumGeometricError is the expected geometric error, in
	// meters, of tiles at level, used by the Selector's SSE computation.
	LevelMaximumGeometricError(level int) float64
	MaxLevel() int

	// RequestTileGeometry begins fetching geometry for tile and advances
	// tile.TerrainState past Unloaded on success (Transitioning ->
	// Received), or to Failed. Never blocks.
	RequestTileGeometry(tile *quadtree.Tile)
	// TransformGeometry converts the tile's raw payload into renderable
	// form (Received -> Transformed).
	TransformGeometry(ctx render.Context, tile *quadtree.Tile)
	// CreateResources uploads the transformed geometry to the GPU
	// (Transformed -> Ready), setting tile.VertexArray.
	CreateResources(ctx render.Context, tile *quadtree.Tile)
}
