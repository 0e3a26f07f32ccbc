// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/gogpu/globesurface/geomath"

// Command is the draw command the Command Assembler emits, one per
// ⌈readyImageryCount / maxTextureUnits⌉ batch per rendered tile (spec
// §4.6). It follows the teacher's typed-command-struct pattern
// (recording/command.go's Command interface + concrete structs) rather
// than an opaque byte-serialized command, for inspectability.
type Command struct {
	ShaderProgram   ShaderProgram
	RenderState     RenderState
	PrimitiveType   PrimitiveType
	VertexArray     VertexArray
	UniformMap      *UniformMap
	BoundingVolume  geomath.BoundingSphere
}

// TextureSlot is one bound imagery texture within a Command's uniform
// map, carrying the per-layer data the shader needs to sample and blend
// it correctly.
type TextureSlot struct {
	Texture                   Texture2D
	TranslationAndScale       [4]float32 // tx, ty, sx, sy
	TextureCoordinateExtent   [4]float32 // west, south, east, north in [0,1]^2
	Alpha                     float32
}

// MercatorPrecisionData holds the split-precision Mercator Y uniforms
// described in spec §4.6 step 4, computed only for Mercator-projected
// imagery layers in 2D/Columbus View mode.
type MercatorPrecisionData struct {
	SouthLatitude     float32
	NorthLatitude     float32
	SouthMercatorYHigh float32
	SouthMercatorYLow  float32
	OneOverMercatorHeight float32
}

// UniformMap bundles the per-tile uniform values a Command carries,
// replacing the source's dynamic getter-closure pattern
// ("u_center3D: function() {...}") with a statically typed record, per
// spec §9's re-architecture note.
type UniformMap struct {
	Center                   geomath.Cartesian3
	ModifiedModelView         [16]float32
	ModifiedModelViewProjection [16]float32
	TileExtent                geomath.Extent
	Mercator                  *MercatorPrecisionData
	Textures                  []TextureSlot
}

// Reset clears a UniformMap for reuse from the command pool, truncating
// the Textures slice rather than reallocating it (recording/pool.go's
// ResourcePool.Clear reuse idiom, generalized from a resource pool's
// slices to a single per-command slice).
func (u *UniformMap) Reset() {
	u.Mercator = nil
	u.Textures = u.Textures[:0]
}
