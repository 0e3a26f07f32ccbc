// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package quadtree holds the tile/imagery data model shared by the
// selector, load pump, layer-change handlers and command assembler: Tile,
// TileImagery, Imagery, and the two intrusive queues that track them
// (LoadQueue, ReplacementQueue).
package quadtree

// TerrainState is the lifecycle state of a tile's terrain geometry.
// Transitions are driven by the load pump (through the terrain provider it
// calls); the only other writer is Tile.Destroy, which resets an evicted
// tile to TerrainUnloaded.
type TerrainState int

const (
	TerrainUnloaded TerrainState = iota
	TerrainTransitioning
	TerrainReceived
	TerrainTransformed
	TerrainReady
	TerrainFailed
	// TerrainPermanentlyFailed is reached after retry backoff is
	// exhausted (see loadpump); the tile never renders and is never
	// re-requested again.
	TerrainPermanentlyFailed
)

func (s TerrainState) String() string {
	switch s {
	case TerrainUnloaded:
		return "Unloaded"
	case TerrainTransitioning:
		return "Transitioning"
	case TerrainReceived:
		return "Received"
	case TerrainTransformed:
		return "Transformed"
	case TerrainReady:
		return "Ready"
	case TerrainFailed:
		return "Failed"
	case TerrainPermanentlyFailed:
		return "PermanentlyFailed"
	default:
		return "Unknown"
	}
}

// ImageryState is the lifecycle state of one TileImagery's backing
// Imagery texture.
type ImageryState int

const (
	ImageryPlaceholder ImageryState = iota
	ImageryUnloaded
	ImageryTransitioning
	ImageryReceived
	ImageryTextureLoaded
	ImageryReady
	ImageryFailed
	ImageryInvalid
)

func (s ImageryState) String() string {
	switch s {
	case ImageryPlaceholder:
		return "Placeholder"
	case ImageryUnloaded:
		return "Unloaded"
	case ImageryTransitioning:
		return "Transitioning"
	case ImageryReceived:
		return "Received"
	case ImageryTextureLoaded:
		return "TextureLoaded"
	case ImageryReady:
		return "Ready"
	case ImageryFailed:
		return "Failed"
	case ImageryInvalid:
		return "Invalid"
	default:
		return "Unknown"
	}
}
