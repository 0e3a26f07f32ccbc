// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package quadtree

import "github.com/gogpu/globesurface/render"

// Layer is the minimal identity an imagery layer exposes to a tile's
// imagery stack. The concrete ImageryLayerCollection lives in
// internal/imagery, which imports quadtree (not the reverse), so Layer is
// kept to the handful of fields TileImagery/Imagery actually need.
type Layer interface {
	Alpha() float32
}

// Imagery is one texture tile in an imagery layer's pyramid. It is shared
// across TileImagery instances via parent-fallback chains and is
// reference-counted rather than owned by a single tile: a fallback parent
// may be kept alive by several descendants at once.
//
// Single-threaded cooperative model (no atomics needed): refcounting
// mirrors recording/pool.go's index-addressed ownership pattern adapted to
// a destroyable handle instead of an append-only pool.
type Imagery struct {
	Level, X, Y int
	Layer       Layer
	State       ImageryState
	Parent      *Imagery // ancestor in the pyramid, used for fallback
	Texture     render.Texture2D

	// Payload carries provider-supplied pixel data from RequestImagery
	// (Unloaded -> Received) through to CreateTexture (Received ->
	// TextureLoaded), which consumes and clears it. Concrete providers
	// define their own payload shape (e.g. *image.RGBA).
	Payload any

	refcount int
}

// NewImagery creates an Imagery with a single implicit reference held by
// its creator (mirroring the teacher's pool.Add* methods, which return a
// ref the caller is responsible for releasing).
func NewImagery(layer Layer, level, x, y int, parent *Imagery) *Imagery {
	img := &Imagery{Layer: layer, Level: level, X: x, Y: y, Parent: parent, State: ImageryUnloaded}
	img.refcount = 1
	if parent != nil {
		parent.acquire()
	}
	return img
}

// acquire adds a reference.
func (img *Imagery) acquire() { img.refcount++ }

// Acquire adds an external reference to img, returning img so that call
// sites can chain `imagery = imagery.Acquire()` style.
func (img *Imagery) Acquire() *Imagery {
	img.acquire()
	return img
}

// Release drops a reference. When the count reaches zero, the parent
// chain's reference is released recursively and the imagery's texture is
// destroyed; the caller must not use img afterward.
func (img *Imagery) Release() {
	img.refcount--
	if img.refcount > 0 {
		return
	}
	if img.Texture != nil {
		img.Texture.Destroy()
		img.Texture = nil
	}
	if img.Parent != nil {
		img.Parent.Release()
	}
}

// RefCount reports the current reference count; exported for tests that
// assert invariant 6 (ready imagery has refcount >= 1).
func (img *Imagery) RefCount() int { return img.refcount }

// TileImagery binds a terrain Tile to one Imagery texture region. It keeps
// the originally-assigned imagery alive (refcounted) even while
// substituting an ancestor during fallback (spec: "originalImagery kept
// alive while falling back"). Nothing switches a TileImagery back to its
// original imagery once it has fallen back; FreeResources releases both.
type TileImagery struct {
	Imagery         *Imagery
	OriginalImagery *Imagery

	TextureCoordinateExtent    [4]float64 // [0,1]^2 sub-rect of the terrain tile
	TextureTranslationAndScale [4]float32
	translationScaleComputed   bool
}

// NewTileImagery creates a skeleton binding: Imagery takes over the
// reference imagery.refcount already reflects (the implicit one from
// NewImagery/Acquire at the call site), and OriginalImagery acquires a
// second, independent reference. Imagery is free to walk away to a
// fallback ancestor (FallbackToParent releases the Imagery-held reference
// as it does) while OriginalImagery's own reference keeps the originally
// failed imagery alive, per spec: "originalImagery kept alive while
// falling back" and invariant 6 ("live reference count >= 1").
func NewTileImagery(imagery *Imagery, textureCoordinateExtent [4]float64) *TileImagery {
	return &TileImagery{
		Imagery:                 imagery,
		OriginalImagery:         imagery.Acquire(),
		TextureCoordinateExtent: textureCoordinateExtent,
	}
}

// FreeResources releases the held imagery references. Called when a
// TileImagery is spliced out of a tile's stack (layer removed/tile
// evicted).
func (ti *TileImagery) FreeResources() {
	if ti.Imagery != nil {
		ti.Imagery.Release()
		ti.Imagery = nil
	}
	if ti.OriginalImagery != nil {
		ti.OriginalImagery.Release()
		ti.OriginalImagery = nil
	}
}

// FallbackToParent walks the imagery.Parent chain when the bound imagery
// has failed or is invalid, substituting the nearest ancestor that is
// itself neither failed nor invalid. OriginalImagery is left untouched so
// the substitution can be compared against or reported, per spec:
// "originalImagery kept alive while falling back".
func (ti *TileImagery) FallbackToParent() {
	current := ti.Imagery
	for current != nil && (current.State == ImageryFailed || current.State == ImageryInvalid) {
		parent := current.Parent
		if parent == nil {
			return
		}
		parent.acquire()
		ti.Imagery = parent
		current.Release()
		current = parent
	}
}

// SetTranslationAndScale records the uniform computed once on first
// reaching Ready, per spec §4.4.
func (ti *TileImagery) SetTranslationAndScale(v [4]float32) {
	ti.TextureTranslationAndScale = v
	ti.translationScaleComputed = true
}

// HasTranslationAndScale reports whether SetTranslationAndScale has run.
func (ti *TileImagery) HasTranslationAndScale() bool { return ti.translationScaleComputed }
