// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package selector

import (
	"log/slog"
	"math"

	"github.com/gogpu/globesurface/geomath"
	"github.com/gogpu/globesurface/internal/quadtree"
)

// TerrainSource is the subset of terrain.Provider the Selector needs.
// Kept local (rather than importing the terrain package) so selector has
// no dependency on any concrete provider implementation.
type TerrainSource interface {
	TilingScheme() geomath.TilingScheme
	LevelMaximumGeometricError(level int) float64
	MaxLevel() int
}

// DebugStats reports the outcome of one Select call, grounded on spec §8's
// testable properties which presuppose an observable tilesRendered-style
// counter (reimplemented here as a typed return value, spec §9 open
// question "debug object").
type DebugStats struct {
	TilesRendered     int
	TilesCulled       int
	LoadQueueLength   int
	ResidentTileCount int
	FrameNumber       uint64
}

// Selector runs the per-frame BFS traversal described in spec §4.3.
type Selector struct {
	occluder *geomath.EllipsoidalOccluder
	frozen   bool // ToggleLODUpdate debug flag
}

// New creates a Selector over the given ellipsoid (used for horizon
// culling).
func New(e geomath.Ellipsoid) *Selector {
	return &Selector{occluder: geomath.NewEllipsoidalOccluder(e)}
}

// ToggleFrozen flips the debug "freeze selection" flag (spec §6:
// toggleLodUpdate). While frozen, Select leaves the render buckets and
// queues untouched from the prior frame.
func (s *Selector) ToggleFrozen() { s.frozen = !s.frozen }

// Frozen reports the current freeze state.
func (s *Selector) Frozen() bool { return s.frozen }

// Select runs one frame's traversal. roots is the scheme's level-zero
// tiles; buckets must be pre-sized to maxTextureUnits+1 and is cleared and
// refilled (truncate-and-reuse, grounded on recording/pool.go's
// ResourcePool.Clear pattern). logger may be nil (treated as the no-op
// default per globesurface.Logger()'s convention).
func (s *Selector) Select(
	frame FrameState,
	roots []*quadtree.Tile,
	source TerrainSource,
	loadQueue *quadtree.LoadQueue,
	replacementQueue *quadtree.ReplacementQueue,
	buckets [][]*quadtree.Tile,
	logger *slog.Logger,
) DebugStats {
	if s.frozen {
		return DebugStats{}
	}

	for i := range buckets {
		buckets[i] = buckets[i][:0]
	}
	stats := DebugStats{}

	if len(roots) == 0 {
		return stats
	}

	loadQueue.MarkInsertionPoint()
	replacementQueue.MarkStartOfRenderFrame()
	s.occluder.SetCameraPosition(frame.CameraPosition)

	scheme := source.TilingScheme()
	queue := make([]*quadtree.Tile, 0, len(roots)*4)

	for _, root := range roots {
		if !root.DoneLoading {
			loadQueue.InsertBeforeInsertionPoint(root)
		}
		if root.Renderable && s.isVisible(root, frame) {
			queue = append(queue, root)
		} else {
			stats.TilesCulled++
		}
	}

	maxTextureUnits := len(buckets) - 1

	for len(queue) > 0 {
		tile := queue[0]
		queue = queue[1:]

		replacementQueue.MarkTileRendered(tile)

		sse := s.computeSSE(tile, frame, source)
		if sse < frame.MaxScreenSpaceError {
			s.addToRenderList(tile, buckets, maxTextureUnits)
			stats.TilesRendered++
			continue
		}

		if tile.Level >= source.MaxLevel() {
			s.addToRenderList(tile, buckets, maxTextureUnits)
			stats.TilesRendered++
			continue
		}

		children := tile.Children(scheme)
		allRenderable := true
		for _, c := range children {
			if !c.DoneLoading {
				loadQueue.InsertBeforeInsertionPoint(c)
			}
			if !c.Renderable {
				allRenderable = false
			}
		}

		if !allRenderable {
			// No partial refinement (spec §4.3 rationale): render the
			// current tile at its own LOD; children keep loading in the
			// background for a future frame.
			s.addToRenderList(tile, buckets, maxTextureUnits)
			stats.TilesRendered++
			continue
		}

		for _, c := range children {
			if s.isVisible(c, frame) {
				queue = append(queue, c)
			} else {
				stats.TilesCulled++
			}
		}
	}

	stats.LoadQueueLength = loadQueue.Len()
	stats.ResidentTileCount = replacementQueue.Len()
	stats.FrameNumber = replacementQueue.FrameNumber()

	if logger != nil {
		logger.Debug("surface selection complete",
			"tilesRendered", stats.TilesRendered,
			"tilesCulled", stats.TilesCulled,
			"loadQueueLength", stats.LoadQueueLength)
	}
	return stats
}

func (s *Selector) addToRenderList(tile *quadtree.Tile, buckets [][]*quadtree.Tile, maxTextureUnits int) {
	ready := 0
	for _, ti := range tile.Imagery {
		if ti.Imagery != nil && ti.Imagery.State == quadtree.ImageryReady {
			ready++
		}
	}
	if ready > maxTextureUnits {
		ready = maxTextureUnits
	}
	buckets[ready] = append(buckets[ready], tile)
}

// isVisible implements spec §4.3's visibility test.
func (s *Selector) isVisible(tile *quadtree.Tile, frame FrameState) bool {
	switch frame.Mode {
	case Mode3D:
		return s.isVisible3D(tile, frame)
	case ModeMorphing:
		return s.isVisible3D(tile, frame) || s.isVisible2D(tile, frame)
	default: // Mode2D, ModeColumbusView
		return s.isVisible2D(tile, frame)
	}
}

func (s *Selector) isVisible3D(tile *quadtree.Tile, frame FrameState) bool {
	if !frame.Frustum.ComputeVisibility(tile.BoundingSphere3D) {
		return false
	}
	if !tile.HasOccludeePointInScaledSpace {
		if p, ok := s.occluder.ComputeOccludeePoint(tile.Center, tile.BoundingSphere3D.Radius); ok {
			tile.OccludeePointInScaledSpace = p
			tile.HasOccludeePointInScaledSpace = true
		}
	}
	if tile.HasOccludeePointInScaledSpace {
		return s.occluder.IsPointVisible(tile.OccludeePointInScaledSpace)
	}
	return true
}

// isVisible2D frustum-culls against a 2D bounding sphere derived from the
// tile's extent (approximated here with the same 3D sphere, since the
// projection needed to build a true 2D sphere is an out-of-scope
// collaborator per spec §1; a host application wiring a real projection
// would substitute a projected sphere here).
func (s *Selector) isVisible2D(tile *quadtree.Tile, frame FrameState) bool {
	return frame.Frustum.ComputeVisibility(tile.BoundingSphere3D)
}

// computeSSE implements spec §4.3's screen-space-error formula and caches
// the camera distance on the tile for the command assembler's sort.
func (s *Selector) computeSSE(tile *quadtree.Tile, frame FrameState, source TerrainSource) float64 {
	maxGeometricError := math.Cos(closestLatitudeToEquator(tile.Extent)) * source.LevelMaximumGeometricError(tile.Level)

	distanceSq := distanceSquaredToTile(frame.CameraPosition, frame.CameraCartographic.Height, tile)
	tile.Distance = math.Sqrt(distanceSq)

	if frame.Mode == Mode2D {
		if frame.PixelSize == 0 {
			return math.Inf(1)
		}
		return maxGeometricError / frame.PixelSize
	}

	if tile.Distance == 0 {
		return math.Inf(1)
	}
	return (maxGeometricError * float64(frame.ViewportHeight)) / (2 * tile.Distance * math.Tan(frame.FovY/2))
}

func closestLatitudeToEquator(e geomath.Extent) float64 {
	if e.South >= 0 {
		return e.South
	}
	if e.North <= 0 {
		return e.North
	}
	return 0
}

// distanceSquaredToTile implements spec §4.3: vectors from the SW/NE
// corners dotted against each outward normal, accumulating squared
// positive components from WEST-or-EAST, SOUTH-or-NORTH, and TOP.
func distanceSquaredToTile(cameraPos geomath.Cartesian3, cameraHeight float64, tile *quadtree.Tile) float64 {
	var result float64

	vSW := cameraPos.Sub(tile.SouthwestCorner)
	dSW := vSW.Dot(tile.WestNormal)
	vNE := cameraPos.Sub(tile.NortheastCorner)
	dNE := vNE.Dot(tile.EastNormal)
	switch {
	case dSW > 0:
		result += dSW * dSW
	case dNE > 0:
		result += dNE * dNE
	}

	vS := cameraPos.Sub(tile.SouthwestCorner)
	dS := vS.Dot(tile.SouthNormal)
	vN := cameraPos.Sub(tile.NortheastCorner)
	dN := vN.Dot(tile.NorthNormal)
	switch {
	case dS > 0:
		result += dS * dS
	case dN > 0:
		result += dN * dN
	}

	dTop := cameraHeight - tile.MaxHeight
	if dTop > 0 {
		result += dTop * dTop
	}

	return result
}
