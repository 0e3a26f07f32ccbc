// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package selector implements the Tile LOD Selector (spec §4.3): the
// per-frame breadth-first quadtree traversal that culls, scores
// screen-space error, refines or renders, and buckets tiles by
// ready-texture count for the command assembler.
package selector

import "github.com/gogpu/globesurface/geomath"

// Mode is the active scene mode, mirroring the "3D / 2D / Columbus View /
// MORPHING" modes spec §4.3's visibility test distinguishes. Camera and
// projection computation themselves are out of scope (spec §1); FrameState
// is the pre-computed handoff the engine's caller supplies each frame.
type Mode int

const (
	Mode3D Mode = iota
	Mode2D
	ModeColumbusView
	ModeMorphing
)

// FrameState bundles the per-frame inputs the Selector needs that are
// computed by an external camera/projection system (out of scope per
// spec §1): camera position, frustum, viewport, and mode.
type FrameState struct {
	Mode Mode

	CameraPosition     geomath.Cartesian3
	CameraCartographic geomath.Cartographic
	Frustum            geomath.FrustumPlanes

	// There is no separate 2D bounding volume: 2D and Columbus View
	// frustum culling test the tile's 3D bounding sphere.
	ViewportWidth, ViewportHeight int
	FovY                          float64

	// PixelSize is used only in Mode2D: max(frustumHeight,frustumWidth) /
	// max(viewportWidth,viewportHeight).
	PixelSize float64

	MaxScreenSpaceError float64
	MaxLevel            int
}
