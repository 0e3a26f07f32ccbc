// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package globesurface

import (
	"image/color"
	"testing"

	"github.com/gogpu/globesurface/geomath"
	"github.com/gogpu/globesurface/imageryprovider"
	"github.com/gogpu/globesurface/internal/imagery"
	"github.com/gogpu/globesurface/render/software"
	"github.com/gogpu/globesurface/terrain"
)

func newFixtureSurface(t *testing.T) (*Surface, *software.Context) {
	t.Helper()
	scheme := geomath.NewGeographicTilingScheme(geomath.WGS84, 2, 1)
	heightmap := terrain.NewHeightmap(scheme, 4, 1000, 10)
	ctx := software.NewContext(4)

	s, err := New(ctx, heightmap)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	provider := imageryprovider.NewCheckerboard(scheme, 16, color.RGBA{R: 255, A: 255}, color.RGBA{B: 255, A: 255})
	s.Layers().Add(imagery.NewLayer(provider, 1.0), 0)
	return s, ctx
}

func farCameraFrame() FrameState {
	return FrameState{
		Mode:           Mode3D,
		CameraPosition: geomath.Cartesian3{X: geomath.WGS84.MaximumRadius() * 20, Y: 0, Z: 0},
		CameraCartographic: geomath.Cartographic{
			Height: geomath.WGS84.MaximumRadius() * 19,
		},
		// Every plane has distance huge and zero normal, so
		// IntersectsSphere is true regardless of the tile: an
		// always-visible frustum standing in for real camera culling
		// (out of scope, spec §1).
		Frustum: geomath.FrustumPlanes{
			Left:   geomath.Plane{Distance: 1e15},
			Right:  geomath.Plane{Distance: 1e15},
			Top:    geomath.Plane{Distance: 1e15},
			Bottom: geomath.Plane{Distance: 1e15},
			Near:   geomath.Plane{Distance: 1e15},
			Far:    geomath.Plane{Distance: 1e15},
		},
		ViewportWidth:  800,
		ViewportHeight: 600,
		FovY:           1.0,
		ViewMatrix: geomath.Matrix4{
			1, 0, 0, 0,
			0, 1, 0, 0,
			0, 0, 1, 0,
			0, 0, 0, 1,
		},
		ProjectionMatrix: geomath.Matrix4{
			1, 0, 0, 0,
			0, 1, 0, 0,
			0, 0, 1, 0,
			0, 0, 0, 1,
		},
		ShaderSet:   software.NewShaderSet(),
		RenderState: software.NewRenderState(false),
	}
}

// TestSurface_UpdateDrainsToRenderableRoots confirms that repeated Update
// calls drive the level-zero tiles' terrain and imagery through their
// state machines to a point where they are rendered and emit commands.
func TestSurface_UpdateDrainsToRenderableRoots(t *testing.T) {
	s, ctx := newFixtureSurface(t)
	frame := farCameraFrame()

	var lastStats DebugStats
	var sawCommands bool
	for i := 0; i < 20; i++ {
		cmds, stats, err := s.Update(ctx, frame)
		if err != nil {
			t.Fatalf("Update iteration %d: %v", i, err)
		}
		lastStats = stats
		if len(cmds) > 0 {
			sawCommands = true
		}
	}

	if !sawCommands {
		t.Fatal("expected at least one Update call to emit draw commands once terrain finished loading")
	}
	if lastStats.ResidentTileCount == 0 {
		t.Error("expected resident tile count > 0 after draining the load queue")
	}
}

func TestSurface_ToggleLODUpdateFreezesSelection(t *testing.T) {
	s, ctx := newFixtureSurface(t)
	frame := farCameraFrame()

	if s.LODUpdateFrozen() {
		t.Fatal("expected selector to start unfrozen")
	}
	s.ToggleLODUpdate()
	if !s.LODUpdateFrozen() {
		t.Fatal("expected ToggleLODUpdate to freeze selection")
	}

	_, stats, err := s.Update(ctx, frame)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if stats.TilesRendered != 0 || stats.TilesCulled != 0 {
		t.Errorf("expected a frozen Surface to skip traversal, got %+v", stats)
	}
}

func TestSurface_DestroyIsIdempotentAndRejectsFurtherUpdate(t *testing.T) {
	s, ctx := newFixtureSurface(t)
	frame := farCameraFrame()

	s.Destroy()
	s.Destroy() // must not panic

	if _, _, err := s.Update(ctx, frame); err != ErrSurfaceClosed {
		t.Errorf("Update after Destroy = %v, want ErrSurfaceClosed", err)
	}
}

func TestNew_MissingTerrainProvider(t *testing.T) {
	ctx := software.NewContext(4)
	if _, err := New(ctx, nil); err != ErrMissingTerrainProvider {
		t.Errorf("New(nil terrain provider) = %v, want ErrMissingTerrainProvider", err)
	}
}
