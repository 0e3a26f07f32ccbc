// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package imageryprovider defines the imagery provider collaborator
// interface consumed by an ImageryLayer (spec §6) and ships two reference
// implementations: a synthetic checkerboard generator and a tile source
// that reads local files named by a path template (no network fetching),
// so the engine is exercisable without a real imagery service.
package imageryprovider

import (
	"github.com/gogpu/globesurface/geomath"
	"github.com/gogpu/globesurface/internal/quadtree"
)

// Provider supplies imagery pixel data for one layer's tiling pyramid. Per
// spec §6, RequestImagery is asynchronous in general: it may return before
// imagery.State has advanced, with the caller observing the transition on
// a later frame. The reference providers in this package complete
// synchronously, since they have no real I/O to await.
type Provider interface {
	// Ready reports whether the provider has finished whatever
	// initialization it needs (e.g. fetching a capabilities document)
	// before tiling scheme and level bounds are valid.
	Ready() bool
	TilingScheme() geomath.TilingScheme
	MinLevel() int
	MaxLevel() int

	// RequestImagery begins fetching pixel data for imagery and mutates
	// its State; synchronous providers move it straight to
	// quadtree.ImageryReceived and attach a payload. Never blocks.
	RequestImagery(imagery *quadtree.Imagery)
}
