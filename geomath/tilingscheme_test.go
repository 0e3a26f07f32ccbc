// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geomath

import (
	"math"
	"testing"
)

func TestGeographicTilingScheme_LevelZeroTileCount(t *testing.T) {
	s := NewGeographicTilingScheme(WGS84, 2, 1)
	extent := s.TileXYToExtent(0, 0, 0)
	if !almostEqual(extent.West, -math.Pi, 1e-9) {
		t.Errorf("tile (0,0,0) west = %v, want -pi", extent.West)
	}
	if !almostEqual(extent.East, 0, 1e-9) {
		t.Errorf("tile (0,0,0) east = %v, want 0", extent.East)
	}
}

func TestGeographicTilingScheme_PositionToTileXYRoundTrip(t *testing.T) {
	s := NewGeographicTilingScheme(WGS84, 2, 1)
	for level := 0; level < 4; level++ {
		for y := 0; y < s.NumberOfLevelZeroTilesY()<<uint(level); y++ {
			for x := 0; x < s.NumberOfLevelZeroTilesX()<<uint(level); x++ {
				extent := s.TileXYToExtent(level, x, y)
				center := extent.Center()
				gx, gy := s.PositionToTileXY(center, level)
				if gx != x || gy != y {
					t.Errorf("level %d: tile (%d,%d) center maps back to (%d,%d)", level, x, y, gx, gy)
				}
			}
		}
	}
}

func TestWebMercatorTilingScheme_RootTileCount(t *testing.T) {
	s := NewWebMercatorTilingScheme(WGS84)
	if s.NumberOfLevelZeroTilesX() != 2 || s.NumberOfLevelZeroTilesY() != 1 {
		t.Errorf("expected 2x1 root tiles, got %dx%d", s.NumberOfLevelZeroTilesX(), s.NumberOfLevelZeroTilesY())
	}
}

func TestWebMercatorTilingScheme_PositionToTileXYRoundTrip(t *testing.T) {
	s := NewWebMercatorTilingScheme(WGS84)
	for level := 0; level < 3; level++ {
		for y := 0; y < s.NumberOfLevelZeroTilesY()<<uint(level); y++ {
			for x := 0; x < s.NumberOfLevelZeroTilesX()<<uint(level); x++ {
				extent := s.TileXYToExtent(level, x, y)
				center := extent.Center()
				gx, gy := s.PositionToTileXY(center, level)
				if gx != x || gy != y {
					t.Errorf("level %d: tile (%d,%d) center maps back to (%d,%d)", level, x, y, gx, gy)
				}
			}
		}
	}
}
