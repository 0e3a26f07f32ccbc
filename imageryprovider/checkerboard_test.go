// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package imageryprovider

import (
	"image/color"
	"testing"

	"github.com/gogpu/globesurface/geomath"
	"github.com/gogpu/globesurface/internal/quadtree"
)

func TestCheckerboard_RequestImageryProducesPayload(t *testing.T) {
	scheme := geomath.NewGeographicTilingScheme(geomath.WGS84, 2, 1)
	p := NewCheckerboard(scheme, 64, color.RGBA{R: 255, A: 255}, color.RGBA{B: 255, A: 255})

	if !p.Ready() {
		t.Fatal("Checkerboard should always report Ready")
	}

	img := quadtree.NewImagery(nil, 0, 0, 0, nil)
	p.RequestImagery(img)

	if img.State != quadtree.ImageryReceived {
		t.Fatalf("State = %v, want Received", img.State)
	}
	if img.Payload == nil {
		t.Fatal("expected a payload image after RequestImagery")
	}
}

func TestCheckerboard_DefaultsTileSize(t *testing.T) {
	scheme := geomath.NewGeographicTilingScheme(geomath.WGS84, 2, 1)
	p := NewCheckerboard(scheme, 0, color.RGBA{}, color.RGBA{})
	if p.tileSize != 256 {
		t.Errorf("tileSize = %d, want default 256", p.tileSize)
	}
}
