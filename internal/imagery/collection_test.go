// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package imagery

import (
	"image/color"
	"testing"

	"github.com/gogpu/globesurface/geomath"
	"github.com/gogpu/globesurface/imageryprovider"
	"github.com/gogpu/globesurface/internal/quadtree"
)

func newLayer(t *testing.T) *Layer {
	t.Helper()
	scheme := geomath.NewGeographicTilingScheme(geomath.WGS84, 2, 1)
	provider := imageryprovider.NewCheckerboard(scheme, 16, color.RGBA{}, color.RGBA{})
	return NewLayer(provider, 1.0)
}

func residentCollectionFixture(t *testing.T) (*quadtree.ReplacementQueue, *quadtree.Tile) {
	t.Helper()
	rq := quadtree.NewReplacementQueue()
	tile := newTerrainTile()
	tile.TerrainState = quadtree.TerrainReady
	rq.MarkStartOfRenderFrame()
	rq.MarkTileRendered(tile)
	return rq, tile
}

func TestCollection_AddAppendsAndMarksNotDoneLoading(t *testing.T) {
	rq, tile := residentCollectionFixture(t)
	tile.DoneLoading = true
	c := NewCollection(rq)
	layer0 := newLayer(t)

	c.Add(layer0, 0)

	if tile.DoneLoading {
		t.Error("expected DoneLoading cleared after new layer skeletons were created")
	}
	if len(tile.Imagery) == 0 {
		t.Fatal("expected layer0's skeletons on the resident tile")
	}
	for _, ti := range tile.Imagery {
		if ti.Imagery.Layer != layer0 {
			t.Error("all entries must belong to layer0")
		}
	}
}

// End-to-end scenario 3: add a second layer at index 1 after the first is
// resident; its block must be appended after layer0's contiguous block.
func TestCollection_AddSecondLayerAppendsContiguousBlock(t *testing.T) {
	rq, tile := residentCollectionFixture(t)
	c := NewCollection(rq)
	layer0, layer1 := newLayer(t), newLayer(t)

	c.Add(layer0, 0)
	layer0Count := len(tile.Imagery)

	c.Add(layer1, 1)

	if len(tile.Imagery) <= layer0Count {
		t.Fatal("expected layer1 to append new entries")
	}
	for i, ti := range tile.Imagery {
		wantLayer := quadtree.Layer(layer0)
		if i >= layer0Count {
			wantLayer = layer1
		}
		if ti.Imagery.Layer != wantLayer {
			t.Errorf("entry %d belongs to wrong layer, blocks are not contiguous in collection order", i)
		}
	}
}

// End-to-end scenario 4: removing layer 0 splices its block out, leaving
// layer 1's block intact.
func TestCollection_RemoveSplicesOutLayerBlock(t *testing.T) {
	rq, tile := residentCollectionFixture(t)
	c := NewCollection(rq)
	layer0, layer1 := newLayer(t), newLayer(t)
	c.Add(layer0, 0)
	c.Add(layer1, 1)
	layer1Count := len(tile.Imagery) - len(extractBlockCount(tile, layer0))

	c.Remove(layer0)

	for _, ti := range tile.Imagery {
		if ti.Imagery.Layer == layer0 {
			t.Error("layer0 entries must be gone after Remove")
		}
	}
	if len(tile.Imagery) != layer1Count {
		t.Errorf("len(Imagery) = %d, want %d (layer1 only)", len(tile.Imagery), layer1Count)
	}
}

func extractBlockCount(tile *quadtree.Tile, layer quadtree.Layer) []*quadtree.TileImagery {
	block, _ := extractBlock(tile.Imagery, layer)
	return block
}

func TestCollection_RemoveLastLayerClearsRenderable(t *testing.T) {
	rq, tile := residentCollectionFixture(t)
	tile.Renderable = true
	c := NewCollection(rq)
	layer0 := newLayer(t)
	c.Add(layer0, 0)

	c.Remove(layer0)

	if tile.Renderable {
		t.Error("expected Renderable cleared once the imagery stack is empty")
	}
	if len(tile.Imagery) != 0 {
		t.Errorf("expected empty imagery stack, got %d entries", len(tile.Imagery))
	}
}

func TestCollection_MoveToSameIndexIsNoOp(t *testing.T) {
	rq, tile := residentCollectionFixture(t)
	c := NewCollection(rq)
	layer0, layer1 := newLayer(t), newLayer(t)
	c.Add(layer0, 0)
	c.Add(layer1, 1)

	before := append([]*quadtree.TileImagery{}, tile.Imagery...)
	c.Move(layer1, 1)

	if len(before) != len(tile.Imagery) {
		t.Fatalf("stack length changed: %d -> %d", len(before), len(tile.Imagery))
	}
	for i := range before {
		if before[i] != tile.Imagery[i] {
			t.Fatalf("stack entry %d changed identity after moving a layer to its own index", i)
		}
	}
}

func TestCollection_RoundTripAddRemoveRestoresStack(t *testing.T) {
	rq, tile := residentCollectionFixture(t)
	c := NewCollection(rq)
	layer0 := newLayer(t)

	c.Add(layer0, 0)
	snapshotLen := len(tile.Imagery)
	c.Remove(layer0)

	if len(tile.Imagery) != 0 {
		t.Fatalf("expected empty stack after removing the only layer, got %d", len(tile.Imagery))
	}
	_ = snapshotLen
}

// TestCollection_EnsureSkeletonsCoversTileThatMissedAdd reproduces a tile
// that became resident after a layer was already in the collection (e.g. a
// level-zero root created by Surface.New before any Layers().Add call):
// Add's residents walk never reached it, so it starts with no skeletons at
// all despite the layer already existing.
func TestCollection_EnsureSkeletonsCoversTileThatMissedAdd(t *testing.T) {
	rq := quadtree.NewReplacementQueue()
	c := NewCollection(rq)
	layer0 := newLayer(t)
	c.Add(layer0, 0)

	lateTile := newTerrainTile()
	if len(lateTile.Imagery) != 0 {
		t.Fatalf("fixture tile should start with no imagery, got %d entries", len(lateTile.Imagery))
	}

	c.EnsureSkeletons(lateTile)

	if len(lateTile.Imagery) == 0 {
		t.Fatal("expected EnsureSkeletons to create layer0's skeletons on the late tile")
	}
	for _, ti := range lateTile.Imagery {
		if ti.Imagery.Layer != layer0 {
			t.Error("all entries must belong to layer0")
		}
	}
}

// TestCollection_EnsureSkeletonsIsIdempotent confirms a second call on a
// tile that already carries every current layer creates nothing further.
func TestCollection_EnsureSkeletonsIsIdempotent(t *testing.T) {
	rq, tile := residentCollectionFixture(t)
	c := NewCollection(rq)
	layer0 := newLayer(t)
	c.Add(layer0, 0)
	before := len(tile.Imagery)

	c.EnsureSkeletons(tile)

	if len(tile.Imagery) != before {
		t.Errorf("len(Imagery) = %d, want unchanged %d", len(tile.Imagery), before)
	}
}

// TestCollection_EnsureSkeletonsAppendsOnlyMissingLayer covers a tile that
// already has layer0's block (from Add's residents walk) but missed layer1
// because it was added after the tile stopped being resident at the time;
// EnsureSkeletons must append only layer1's block, leaving layer0's intact.
func TestCollection_EnsureSkeletonsAppendsOnlyMissingLayer(t *testing.T) {
	rq, tile := residentCollectionFixture(t)
	c := NewCollection(rq)
	layer0, layer1 := newLayer(t), newLayer(t)
	c.Add(layer0, 0)
	layer0Count := len(tile.Imagery)

	// layer1 never walked this tile (simulated by building it standalone
	// and only registering it in the collection's layer list).
	c.layers = append(c.layers, layer1)

	c.EnsureSkeletons(tile)

	if len(tile.Imagery) <= layer0Count {
		t.Fatal("expected EnsureSkeletons to append layer1's skeletons")
	}
	for i, ti := range tile.Imagery[:layer0Count] {
		if ti.Imagery.Layer != layer0 {
			t.Errorf("entry %d: layer0's existing block must be left untouched", i)
		}
	}
	for _, ti := range tile.Imagery[layer0Count:] {
		if ti.Imagery.Layer != layer1 {
			t.Error("appended entries must belong to layer1")
		}
	}
}
