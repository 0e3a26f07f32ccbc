// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package imageryprovider

import (
	"errors"
	"testing"

	"github.com/gogpu/globesurface/geomath"
	"github.com/gogpu/globesurface/internal/quadtree"
)

func TestNewTileFile_RejectsTemplateMissingPlaceholder(t *testing.T) {
	scheme := geomath.NewGeographicTilingScheme(geomath.WGS84, 2, 1)
	_, err := NewTileFile(scheme, "tiles/{z}/{x}.png", 0, 10)
	if !errors.Is(err, ErrMissingTemplatePlaceholder) {
		t.Fatalf("err = %v, want ErrMissingTemplatePlaceholder", err)
	}
}

func TestNewTileFile_AcceptsValidTemplate(t *testing.T) {
	scheme := geomath.NewGeographicTilingScheme(geomath.WGS84, 2, 1)
	p, err := NewTileFile(scheme, "tiles/{z}/{x}/{y}.png", 0, 10)
	if err != nil {
		t.Fatalf("NewTileFile() error = %v", err)
	}
	if got := p.path(3, 1, 2); got != "tiles/3/1/2.png" {
		t.Errorf("path() = %q, want tiles/3/1/2.png", got)
	}
}

func TestTileFile_RequestImagery_MissingFileFails(t *testing.T) {
	scheme := geomath.NewGeographicTilingScheme(geomath.WGS84, 2, 1)
	p, err := NewTileFile(scheme, "/nonexistent/{z}/{x}/{y}.png", 0, 10)
	if err != nil {
		t.Fatalf("NewTileFile() error = %v", err)
	}
	img := quadtree.NewImagery(nil, 0, 0, 0, nil)
	p.RequestImagery(img)
	if img.State != quadtree.ImageryFailed {
		t.Fatalf("State = %v, want Failed for missing file", img.State)
	}
}
