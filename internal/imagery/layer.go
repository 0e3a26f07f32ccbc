// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package imagery implements the imagery layer pipeline: per-layer
// skeleton creation, texture loading, and the layer-collection
// add/remove/move handlers that keep every resident tile's imagery stack
// in sync with the layer order (spec §4.5, §4.6's per-layer inputs).
package imagery

import (
	"github.com/gogpu/globesurface/geomath"
	"github.com/gogpu/globesurface/imageryprovider"
	"github.com/gogpu/globesurface/internal/quadtree"
	"github.com/gogpu/globesurface/render"
)

// Layer drives one imagery provider's contribution to the terrain tile
// stack: it creates TileImagery skeletons covering a terrain tile and
// advances their textures through the imagery state machine.
//
// Grounded on the teacher's scene/layer.go LayerState (a single ordered
// entity carrying its own blend alpha and pipeline state), generalized
// from an in-memory rendering layer to a persistent, provider-backed
// imagery layer whose skeletons outlive a single frame.
type Layer struct {
	provider imageryprovider.Provider
	alpha    float32

	// cache shares Imagery objects within this layer's pyramid so that
	// sibling terrain tiles covered by the same imagery tile reference
	// one refcounted Imagery rather than duplicating it.
	cache map[imageryKey]*quadtree.Imagery
}

type imageryKey struct{ level, x, y int }

// NewLayer wraps provider as an ordered imagery layer with the given
// blend alpha (spec §6: "alpha -- per-layer uniform").
func NewLayer(provider imageryprovider.Provider, alpha float32) *Layer {
	return &Layer{provider: provider, alpha: alpha, cache: make(map[imageryKey]*quadtree.Imagery)}
}

// Alpha implements quadtree.Layer.
func (l *Layer) Alpha() float32 { return l.alpha }

// Provider exposes the backing provider, e.g. so Update can skip layers
// whose provider isn't ready yet.
func (l *Layer) Provider() imageryprovider.Provider { return l.provider }

// getOrCreateImagery returns the shared Imagery for (level,x,y), creating
// it (with a fresh reference for the caller) if absent.
func (l *Layer) getOrCreateImagery(level, x, y int, parent *quadtree.Imagery) *quadtree.Imagery {
	key := imageryKey{level, x, y}
	// An entry whose count has dropped to zero was released (texture
	// destroyed, parent reference dropped) and is replaced, not reused.
	if img, ok := l.cache[key]; ok && img.RefCount() > 0 {
		return img.Acquire()
	}
	img := quadtree.NewImagery(l, level, x, y, parent)
	l.cache[key] = img
	return img
}

// ancestorImagery walks up the layer's pyramid acquiring (and caching)
// parent Imagery objects, used to seed each skeleton's fallback chain
// (spec §3: "parent -- ancestor in the pyramid for fallback").
func (l *Layer) ancestorImagery(level, x, y int) *quadtree.Imagery {
	if level <= l.provider.MinLevel() {
		return l.getOrCreateImagery(level, x, y, nil)
	}
	parent := l.ancestorImagery(level-1, x/2, y/2)
	img := l.getOrCreateImagery(level, x, y, parent)
	parent.Release() // img holds its own reference via NewImagery/getOrCreateImagery
	return img
}

// CreateTileImagerySkeletons computes which of the layer's imagery tiles
// cover terrainTile and appends (or inserts at insertAt) a TileImagery
// skeleton per covering imagery tile. Returns whether any were created.
func (l *Layer) CreateTileImagerySkeletons(terrainTile *quadtree.Tile, insertAt int) bool {
	scheme := l.provider.TilingScheme()
	level := terrainTile.Level
	if level > l.provider.MaxLevel() {
		level = l.provider.MaxLevel()
	}

	// Sample the corners just inside the terrain tile, so an imagery tile
	// that only shares an edge with it is not counted as covering it.
	insetLon := (terrainTile.Extent.East - terrainTile.Extent.West) * 1e-9
	insetLat := (terrainTile.Extent.North - terrainTile.Extent.South) * 1e-9
	swX, swY := scheme.PositionToTileXY(geomath.Cartographic{Longitude: terrainTile.Extent.West + insetLon, Latitude: terrainTile.Extent.South + insetLat}, level)
	neX, neY := scheme.PositionToTileXY(geomath.Cartographic{Longitude: terrainTile.Extent.East - insetLon, Latitude: terrainTile.Extent.North - insetLat}, level)

	// Y increases south-to-north-decreasing in these schemes (row 0 is
	// the northernmost row), so the northeast corner's row is the
	// smaller Y and the southwest corner's row is the larger Y.
	minX, maxX := swX, neX
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := neY, swY
	if minY > maxY {
		minY, maxY = maxY, minY
	}

	var created []*quadtree.TileImagery
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			imgExtent := scheme.TileXYToExtent(level, x, y)
			texCoordExtent := textureCoordinateExtent(terrainTile.Extent, imgExtent)
			img := l.ancestorImagery(level, x, y)
			created = append(created, quadtree.NewTileImagery(img, texCoordExtent))
		}
	}
	if len(created) == 0 {
		return false
	}

	if insertAt < 0 || insertAt > len(terrainTile.Imagery) {
		insertAt = len(terrainTile.Imagery)
	}
	stack := make([]*quadtree.TileImagery, 0, len(terrainTile.Imagery)+len(created))
	stack = append(stack, terrainTile.Imagery[:insertAt]...)
	stack = append(stack, created...)
	stack = append(stack, terrainTile.Imagery[insertAt:]...)
	terrainTile.Imagery = stack
	return true
}

// textureCoordinateExtent computes the [0,1]^2 sub-rectangle of
// terrainExtent covered by imageryExtent (may extend outside [0,1] at the
// tile's edges when the imagery tile is coarser than the terrain tile;
// callers treat this as a texture wrap/clamp concern, not handled here).
func textureCoordinateExtent(terrainExtent, imageryExtent geomath.Extent) [4]float64 {
	tw := terrainExtent.East - terrainExtent.West
	th := terrainExtent.North - terrainExtent.South
	minU := (imageryExtent.West - terrainExtent.West) / tw
	maxU := (imageryExtent.East - terrainExtent.West) / tw
	minV := (imageryExtent.South - terrainExtent.South) / th
	maxV := (imageryExtent.North - terrainExtent.South) / th
	return [4]float64{minU, minV, maxU, maxV}
}

// RequestImagery implements the per-TileImagery Unloaded->Received step.
func (l *Layer) RequestImagery(img *quadtree.Imagery) {
	img.State = quadtree.ImageryTransitioning
	l.provider.RequestImagery(img)
}

// CreateTexture implements the Received->TextureLoaded step, consuming
// the provider's pixel payload.
func (l *Layer) CreateTexture(ctx render.Context, img *quadtree.Imagery) {
	pixels, width, height, ok := decodePayload(img.Payload)
	if !ok {
		img.State = quadtree.ImageryInvalid
		return
	}
	tex, err := ctx.CreateTexture2D(width, height, pixels)
	if err != nil {
		img.State = quadtree.ImageryFailed
		return
	}
	img.Texture = tex
	img.Payload = nil
	img.State = quadtree.ImageryTextureLoaded
}

// ReprojectTexture implements the TextureLoaded->Ready step. The
// reference providers already emit imagery already aligned to the
// terrain's geographic tiling scheme, so this is a pass-through; a
// Mercator-backed imagery provider would resample here via
// render/software's Resample.
func (l *Layer) ReprojectTexture(_ render.Context, img *quadtree.Imagery) {
	img.State = quadtree.ImageryReady
}

// CalculateTextureTranslationAndScale computes the translation/scale
// uniform from this TileImagery's TextureCoordinateExtent: the bound
// imagery tile's rectangle in the terrain tile's [0,1]^2 texture space,
// as its south-west corner (minU, minV) followed by its width and height
// (spec §6's calculateTextureTranslationAndScale).
func (l *Layer) CalculateTextureTranslationAndScale(ti *quadtree.TileImagery) [4]float32 {
	e := ti.TextureCoordinateExtent
	scaleX := e[2] - e[0]
	scaleY := e[3] - e[1]
	return [4]float32{float32(e[0]), float32(e[1]), float32(scaleX), float32(scaleY)}
}
