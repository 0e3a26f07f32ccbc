// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package globesurface

import (
	"log/slog"
	"time"
)

// Option configures a Surface during creation.
// Use functional options to customize Surface behavior.
//
// Example:
//
//	// Default configuration, letting the Context report its own texture
//	// unit limit.
//	s, err := globesurface.New(ctx, terrainProvider)
//
//	// Custom budget and screen-space error threshold.
//	s, err := globesurface.New(ctx, terrainProvider,
//	    globesurface.WithMaxTileLoadBudget(5*time.Millisecond),
//	    globesurface.WithMaxScreenSpaceError(1.5))
type Option func(*surfaceOptions)

// surfaceOptions holds the configuration a Surface is built with.
type surfaceOptions struct {
	maxScreenSpaceError   float64
	maxTileLoadBudget     time.Duration
	replacementQueueFloor int
	maxTextureUnits       int
	logger                *slog.Logger
}

// defaultOptions returns the default surface options, maxTextureUnits left
// at zero so New queries render.Context.GetMaximumTextureImageUnits()
// unless WithMaxTextureUnits overrides it.
func defaultOptions() surfaceOptions {
	return surfaceOptions{
		maxScreenSpaceError:   2.0,
		maxTileLoadBudget:     10 * time.Millisecond,
		replacementQueueFloor: 100,
		maxTextureUnits:       0,
		logger:                nil, // falls back to Logger() in New
	}
}

// WithMaxScreenSpaceError sets the screen-space-error threshold (in
// pixels) below which a tile is rendered rather than refined (spec §4.3).
func WithMaxScreenSpaceError(sse float64) Option {
	return func(o *surfaceOptions) {
		o.maxScreenSpaceError = sse
	}
}

// WithMaxTileLoadBudget bounds how long ProcessLoadQueue may spend per
// frame advancing terrain/imagery state machines (spec §4.4).
func WithMaxTileLoadBudget(d time.Duration) Option {
	return func(o *surfaceOptions) {
		o.maxTileLoadBudget = d
	}
}

// WithReplacementQueueFloor sets the minimum resident tile count the
// replacement queue keeps when Update trims least-recently-used tiles at
// the end of each frame (spec.md §5). The load pump's own trim, made when
// a tile first becomes resident, always keeps 100 and ignores this option.
func WithReplacementQueueFloor(n int) Option {
	return func(o *surfaceOptions) {
		o.replacementQueueFloor = n
	}
}

// WithMaxTextureUnits overrides the per-draw texture unit count the
// Command Assembler batches imagery into, instead of querying it from the
// render.Context.
func WithMaxTextureUnits(n int) Option {
	return func(o *surfaceOptions) {
		o.maxTextureUnits = n
	}
}

// WithLogger sets a Surface-specific logger, overriding the package-wide
// default from Logger().
func WithLogger(l *slog.Logger) Option {
	return func(o *surfaceOptions) {
		o.logger = l
	}
}
