// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package commands

import (
	"image/color"
	"testing"

	"github.com/gogpu/globesurface/geomath"
	"github.com/gogpu/globesurface/imageryprovider"
	imglayer "github.com/gogpu/globesurface/internal/imagery"
	"github.com/gogpu/globesurface/internal/quadtree"
	"github.com/gogpu/globesurface/internal/selector"
	"github.com/gogpu/globesurface/render/software"
)

func identity() geomath.Matrix4 {
	return geomath.Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func readyTile(t *testing.T, numLayersReady int) *quadtree.Tile {
	t.Helper()
	scheme := geomath.NewGeographicTilingScheme(geomath.WGS84, 2, 1)
	tile := quadtree.NewLevelZeroTiles(scheme)[0]
	tile.TerrainState = quadtree.TerrainReady
	tile.Renderable = true

	provider := imageryprovider.NewCheckerboard(scheme, 16, color.RGBA{R: 255, A: 255}, color.RGBA{B: 255, A: 255})
	layer := imglayer.NewLayer(provider, 0.8)
	ctx := software.NewContext(4)

	layer.CreateTileImagerySkeletons(tile, 0)
	// Each layer over the same scheme covers this root with one imagery
	// tile; add layers until there are numLayersReady entries to ready.
	for len(tile.Imagery) < numLayersReady {
		imglayer.NewLayer(provider, 0.8).CreateTileImagerySkeletons(tile, len(tile.Imagery))
	}
	for i, ti := range tile.Imagery {
		if i >= numLayersReady {
			break
		}
		layer.RequestImagery(ti.Imagery)
		layer.CreateTexture(ctx, ti.Imagery)
		layer.ReprojectTexture(ctx, ti.Imagery)
		ti.SetTranslationAndScale(layer.CalculateTextureTranslationAndScale(ti))
	}
	return tile
}

func TestAssemble_EmitsAtLeastOneCommandWithNoReadyImagery(t *testing.T) {
	tile := readyTile(t, 0)
	ctx := software.NewContext(4)
	shaderSet := software.NewShaderSet()
	a := New()

	buckets := [][]*quadtree.Tile{{tile}}
	cmds, err := a.Assemble(ctx, buckets, FrameInputs{
		Mode:             selector.Mode3D,
		ViewMatrix:       identity(),
		ProjectionMatrix: identity(),
		ShaderSet:        shaderSet,
		RenderState:      software.NewRenderState(false),
		MaxTextureUnits:  4,
	})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(cmds) != 1 {
		t.Fatalf("len(cmds) = %d, want 1 (terrain drawn untextured)", len(cmds))
	}
	if len(cmds[0].UniformMap.Textures) != 0 {
		t.Errorf("expected zero texture slots, got %d", len(cmds[0].UniformMap.Textures))
	}
}

func TestAssemble_BatchesReadyImageryByMaxTextureUnits(t *testing.T) {
	tile := readyTile(t, 3)
	ctx := software.NewContext(4)
	shaderSet := software.NewShaderSet()
	a := New()

	buckets := [][]*quadtree.Tile{{tile}}
	cmds, err := a.Assemble(ctx, buckets, FrameInputs{
		Mode:             selector.Mode3D,
		ViewMatrix:       identity(),
		ProjectionMatrix: identity(),
		ShaderSet:        shaderSet,
		RenderState:      software.NewRenderState(false),
		MaxTextureUnits:  2,
	})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	wantBatches := 2 // ceil(3/2)
	if len(cmds) != wantBatches {
		t.Fatalf("len(cmds) = %d, want %d", len(cmds), wantBatches)
	}
	total := 0
	for _, c := range cmds {
		total += len(c.UniformMap.Textures)
	}
	if total != 3 {
		t.Errorf("total texture slots across commands = %d, want 3", total)
	}
}

func TestAssemble_SortsFrontToBackWithinBucket(t *testing.T) {
	far := readyTile(t, 0)
	far.Distance = 1000

	near := readyTile(t, 0)
	near.Distance = 10

	ctx := software.NewContext(4)
	shaderSet := software.NewShaderSet()
	a := New()

	buckets := [][]*quadtree.Tile{{far, near}}
	_, err := a.Assemble(ctx, buckets, FrameInputs{
		Mode:             selector.Mode3D,
		ViewMatrix:       identity(),
		ProjectionMatrix: identity(),
		ShaderSet:        shaderSet,
		RenderState:      software.NewRenderState(false),
		MaxTextureUnits:  4,
	})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if buckets[0][0] != near || buckets[0][1] != far {
		t.Error("expected bucket sorted front-to-back (ascending distance) in place")
	}
}

// The command pool must be truncated to exactly the number of commands
// written this frame, even as that count shrinks across frames (spec §9
// open question 2's off-by-one fix).
func TestAssemble_PoolShrinksAcrossFrames(t *testing.T) {
	ctx := software.NewContext(4)
	shaderSet := software.NewShaderSet()
	a := New()
	inputs := FrameInputs{
		Mode:             selector.Mode3D,
		ViewMatrix:       identity(),
		ProjectionMatrix: identity(),
		ShaderSet:        shaderSet,
		RenderState:      software.NewRenderState(false),
		MaxTextureUnits:  4,
	}

	tileA := readyTile(t, 0)
	tileB := readyTile(t, 0)
	cmds, err := a.Assemble(ctx, [][]*quadtree.Tile{{tileA, tileB}}, inputs)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(cmds) != 2 {
		t.Fatalf("first frame: len(cmds) = %d, want 2", len(cmds))
	}

	cmds, err = a.Assemble(ctx, [][]*quadtree.Tile{{tileA}}, inputs)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(cmds) != 1 {
		t.Fatalf("second frame: len(cmds) = %d, want 1 (pool must shrink, not retain stale entries)", len(cmds))
	}
}

func TestAssemble_MercatorPrecisionDataOnlyIn2D(t *testing.T) {
	tile := readyTile(t, 0)
	ctx := software.NewContext(4)
	shaderSet := software.NewShaderSet()
	proj := geomath.NewWebMercatorProjection(geomath.WGS84)

	a := New()
	cmds, err := a.Assemble(ctx, [][]*quadtree.Tile{{tile}}, FrameInputs{
		Mode:                selector.Mode2D,
		ViewMatrix:          identity(),
		ProjectionMatrix:    identity(),
		ShaderSet:           shaderSet,
		RenderState:         software.NewRenderState(false),
		MercatorProjection:  &proj,
		MaxTextureUnits:     4,
	})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if cmds[0].UniformMap.Mercator == nil {
		t.Fatal("expected Mercator precision data to be populated in 2D mode")
	}

	a2 := New()
	cmds2, err := a2.Assemble(ctx, [][]*quadtree.Tile{{tile}}, FrameInputs{
		Mode:             selector.Mode3D,
		ViewMatrix:       identity(),
		ProjectionMatrix: identity(),
		ShaderSet:        shaderSet,
		RenderState:      software.NewRenderState(false),
		MaxTextureUnits:  4,
	})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if cmds2[0].UniformMap.Mercator != nil {
		t.Error("expected no Mercator precision data in 3D mode")
	}
}
