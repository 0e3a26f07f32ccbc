// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package quadtree

import (
	"testing"

	"github.com/gogpu/globesurface/geomath"
)

func TestNewLevelZeroTiles_GeographicScheme(t *testing.T) {
	scheme := geomath.NewGeographicTilingScheme(geomath.WGS84, 2, 1)
	roots := NewLevelZeroTiles(scheme)
	if len(roots) != 2 {
		t.Fatalf("got %d roots, want 2", len(roots))
	}
	for _, r := range roots {
		if !r.IsRoot {
			t.Error("level-zero tile must have IsRoot == true")
		}
		if r.Parent != nil {
			t.Error("level-zero tile must have nil Parent")
		}
		if r.TerrainState != TerrainUnloaded {
			t.Errorf("TerrainState = %v, want Unloaded", r.TerrainState)
		}
	}
}

func TestTile_ChildrenCreatedLazilyAndAllFour(t *testing.T) {
	scheme := geomath.NewGeographicTilingScheme(geomath.WGS84, 2, 1)
	roots := NewLevelZeroTiles(scheme)
	root := roots[0]

	if root.HasChildren() {
		t.Fatal("fresh tile must not have children")
	}
	children := root.Children(scheme)
	if !root.HasChildren() {
		t.Fatal("Children() must create and retain the child set")
	}
	for i, c := range children {
		if c == nil {
			t.Fatalf("child %d is nil", i)
		}
		if c.Level != root.Level+1 {
			t.Errorf("child %d level = %d, want %d", i, c.Level, root.Level+1)
		}
		if c.Parent != root {
			t.Errorf("child %d parent not set to root", i)
		}
	}

	// Second call returns the same set (idempotent, invariant 5).
	again := root.Children(scheme)
	if again[0] != children[0] {
		t.Error("Children() must be idempotent once created")
	}
}

func TestTile_DestroyResetsState(t *testing.T) {
	tile := newTestTile(1)
	tile.TerrainState = TerrainReady
	tile.Renderable = true
	tile.DoneLoading = true
	img := NewImagery(nil, 0, 0, 0, nil)
	tile.Imagery = []*TileImagery{NewTileImagery(img, [4]float64{0, 0, 1, 1})}

	tile.Destroy(nil)

	if tile.TerrainState != TerrainUnloaded {
		t.Errorf("TerrainState = %v, want Unloaded", tile.TerrainState)
	}
	if tile.Renderable || tile.DoneLoading {
		t.Error("Destroy must clear Renderable/DoneLoading")
	}
	if tile.Imagery != nil {
		t.Error("Destroy must clear the imagery stack")
	}
	if img.RefCount() != 0 {
		t.Errorf("RefCount() = %d, want 0 after destroy released the sole reference", img.RefCount())
	}
}
