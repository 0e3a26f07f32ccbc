// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render declares the rendering-API collaborator interfaces the
// surface engine consumes: Context, ShaderSet, RenderState and Command.
// Shader compilation, buffer upload, and draw submission are explicitly
// out of scope for the engine (see the root package doc) — this package
// only defines the boundary the engine talks to, plus a reference
// software implementation (render/software) so the module is runnable
// without a real GPU.
package render

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides GPU device access from the host application. It is
// a direct alias of gpucontext.DeviceProvider, mirroring the teacher
// library's render/device.go: the engine receives a device, it never
// creates one.
type DeviceHandle = gpucontext.DeviceProvider

// Mesh is the geometry payload a TerrainProvider hands to
// Context.CreateVertexArrayFromMesh. The engine treats the mesh itself as
// opaque (terrain generation is out of scope) but needs a named type to
// thread it from provider to GPU resource creation.
type Mesh struct {
	// Positions are interleaved vertex attributes in provider-defined
	// layout (commonly position + texture coordinate + height).
	Positions []float32
	Indices   []uint32
}

// VertexArray is an opaque handle to GPU-resident terrain geometry. It is
// valid only while the owning Tile's GPU resources have not been
// destroyed.
type VertexArray interface {
	// Destroy releases the underlying GPU buffers. Must not be called
	// while a Command referencing this VertexArray is in flight.
	Destroy()
}

// Texture2D is an opaque handle to a GPU-resident 2D texture, typically
// holding one Imagery tile's decoded pixels.
type Texture2D interface {
	Width() int
	Height() int
	Format() gputypes.TextureFormat
	Destroy()
}

// Context is the rendering backend the engine drives each frame. A real
// implementation wraps a GPU device (WebGPU, Vulkan, ...); render/software
// provides a CPU reference implementation for tests and the demo CLI.
type Context interface {
	// CreateTexture2D uploads pixel data (RGBA8, row-major, width*height*4
	// bytes) to a new GPU texture.
	CreateTexture2D(width, height int, pixels []byte) (Texture2D, error)

	// CreateVertexArrayFromMesh uploads terrain geometry to the GPU.
	CreateVertexArrayFromMesh(mesh Mesh) (VertexArray, error)

	// GetMaximumTextureImageUnits returns how many textures a single draw
	// call can sample, bounding the Command Assembler's per-tile batch
	// size (spec §4.6).
	GetMaximumTextureImageUnits() int

	// Device exposes the underlying device handle for accelerator
	// integration, mirroring the teacher's render/device.go pattern.
	Device() DeviceHandle
}

// ShaderSet resolves a shader program specialized to a given texture
// count, as spec §4.6 requires ("Acquire a shader program specialized to
// k textures").
type ShaderSet interface {
	GetShaderProgram(ctx Context, numTextures int) (ShaderProgram, error)
}

// ShaderProgram is an opaque compiled shader program handle.
type ShaderProgram interface {
	NumTextures() int
}

// PrimitiveType selects the GPU primitive topology for a draw command.
type PrimitiveType uint8

// Primitive type constants.
const (
	PrimitiveTriangles PrimitiveType = iota
	PrimitiveLines                  // used under the wireframe debug flag, spec §4.6
)

// RenderState bundles pipeline fixed-function state (depth test, culling,
// blending) the way the teacher's accelerator model treats pipeline state
// as an opaque, backend-owned object (accelerator.go).
type RenderState interface {
	// Wireframe reports whether this render state draws in line mode.
	Wireframe() bool
}
