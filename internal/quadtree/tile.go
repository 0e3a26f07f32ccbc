// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package quadtree

import (
	"time"

	"github.com/gogpu/globesurface/geomath"
	"github.com/gogpu/globesurface/render"
)

// Tile is a node of the spatial quadtree: a geographic rectangle at some
// level, its precomputed culling aids, terrain state, imagery stack and
// GPU resources.
//
// The quadtree pointer graph is strictly a tree: Parent is a non-owning
// back reference, Children are owned. Queue links (loadPrev/loadNext,
// replacementPrev/replacementNext) are intrusive pointers shared with
// LoadQueue and ReplacementQueue, generalized from the teacher's
// internal/cache/lru.go doubly-linked list.
type Tile struct {
	Level, X, Y int
	Extent      geomath.Extent
	IsRoot      bool

	geomath.TileBoundingVolumes
	MinHeight, MaxHeight float64

	OccludeePointInScaledSpace    geomath.Cartesian3
	HasOccludeePointInScaledSpace bool

	Parent   *Tile
	children *[4]*Tile

	TerrainState TerrainState
	// FailCount/NextRetryAt implement the failed-terrain retry-with-backoff
	// policy (spec open question 1).
	FailCount   int
	NextRetryAt time.Time

	Imagery []*TileImagery

	// Payload carries a terrain provider's in-flight geometry between
	// state transitions (Received's raw sample grid, Transformed's built
	// render.Mesh) the same way Imagery.Payload hands off pixel data.
	Payload any

	VertexArray render.VertexArray

	Renderable  bool
	DoneLoading bool

	// Queue links, shared storage for LoadQueue and ReplacementQueue.
	loadPrev, loadNext               *Tile
	replacementPrev, replacementNext *Tile
	inLoadQueue                      bool
	inReplacementQueue               bool

	LastSelectionFrame uint64

	// Distance is per-frame scratch written by the Selector's SSE
	// computation and read by the Command Assembler's sort.
	Distance float64
}

// NewTile constructs a tile for (level, x, y) with the given geographic
// extent. Geometric culling aids are computed from a zero height range
// ([0,0]) until terrain data refines them via RefreshBounds.
func NewTile(level, x, y int, extent geomath.Extent, parent *Tile) *Tile {
	t := &Tile{
		Level:        level,
		X:            x,
		Y:            y,
		Extent:       extent,
		Parent:       parent,
		TerrainState: TerrainUnloaded,
	}
	return t
}

// NewLevelZeroTiles builds the root tiles of a tiling scheme, pinned
// against replacement-queue eviction (spec open question 3).
func NewLevelZeroTiles(scheme geomath.TilingScheme) []*Tile {
	nx := scheme.NumberOfLevelZeroTilesX()
	ny := scheme.NumberOfLevelZeroTilesY()
	roots := make([]*Tile, 0, nx*ny)
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			t := NewTile(0, x, y, scheme.TileXYToExtent(0, x, y), nil)
			t.IsRoot = true
			t.RefreshBounds(scheme.Ellipsoid())
			roots = append(roots, t)
		}
	}
	return roots
}

// RefreshBounds recomputes the tile's center/corners/normals/bounding
// sphere from its current height range. Called on creation (zero height
// range) and again once terrain geometry supplies a real min/max height.
func (t *Tile) RefreshBounds(e geomath.Ellipsoid) {
	t.TileBoundingVolumes = geomath.ComputeTileBoundingVolumes(e, t.Extent, t.MinHeight, t.MaxHeight)
}

// HasChildren reports whether the four children have been created.
func (t *Tile) HasChildren() bool { return t.children != nil }

// Children lazily creates and returns the tile's four children, in
// (southwest, southeast, northwest, northeast) order. Per invariant 5, the
// four children are created or destroyed together, never partially.
func (t *Tile) Children(scheme geomath.TilingScheme) [4]*Tile {
	if t.children != nil {
		return *t.children
	}
	childLevel := t.Level + 1
	baseX, baseY := t.X*2, t.Y*2
	// (x, y) grid: Cesium-style tiling schemes increase Y from north to
	// south, so the "south" row is baseY+1.
	sw := NewTile(childLevel, baseX, baseY+1, scheme.TileXYToExtent(childLevel, baseX, baseY+1), t)
	se := NewTile(childLevel, baseX+1, baseY+1, scheme.TileXYToExtent(childLevel, baseX+1, baseY+1), t)
	nw := NewTile(childLevel, baseX, baseY, scheme.TileXYToExtent(childLevel, baseX, baseY), t)
	ne := NewTile(childLevel, baseX+1, baseY, scheme.TileXYToExtent(childLevel, baseX+1, baseY), t)
	for _, c := range [4]*Tile{sw, se, nw, ne} {
		c.RefreshBounds(scheme.Ellipsoid())
	}
	children := [4]*Tile{sw, se, nw, ne}
	t.children = &children
	return children
}

// ClearChildren drops the owned child subtree without evicting or
// destroying the children. Eviction does not call it: Destroy evicts any
// resident children itself and then clears the child pointers.
func (t *Tile) ClearChildren() { t.children = nil }

// InLoadQueue reports whether the tile is currently linked into a
// LoadQueue.
func (t *Tile) InLoadQueue() bool { return t.inLoadQueue }

// InReplacementQueue reports whether the tile is currently linked into a
// ReplacementQueue.
func (t *Tile) InReplacementQueue() bool { return t.inReplacementQueue }

// Destroy releases the tile's GPU resources and imagery references and
// resets it to its unloaded state, for ReplacementQueue eviction. It does
// not unlink the tile itself from any queue; callers must do that first.
//
// Any owned child still resident in q is evicted recursively before the
// child pointers are cleared (spec §4.2: eviction "clears children
// (recursively evicted if resident)"), so evicting a parent can never
// orphan a resident child still linked into q but unreachable from any
// root. q may be nil only when t provably has no resident children (e.g.
// a bare tile built directly in a test, never linked into any queue).
func (t *Tile) Destroy(q *ReplacementQueue) {
	if t.VertexArray != nil {
		t.VertexArray.Destroy()
		t.VertexArray = nil
	}
	for _, ti := range t.Imagery {
		ti.FreeResources()
	}
	t.Imagery = nil
	t.TerrainState = TerrainUnloaded
	t.Renderable = false
	t.DoneLoading = false
	if t.children != nil {
		for _, c := range t.children {
			if c != nil && c.InReplacementQueue() {
				q.evict(c)
			}
		}
	}
	t.children = nil
}
