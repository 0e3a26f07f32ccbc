// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"fmt"

	"github.com/gogpu/globesurface/render"
)

// ShaderProgram is the software ShaderSet's render.ShaderProgram
// implementation: it carries no real GPU program, only the texture count
// it was specialized for.
type ShaderProgram struct {
	numTextures int
}

// NumTextures implements render.ShaderProgram.
func (p *ShaderProgram) NumTextures() int { return p.numTextures }

// ShaderSet caches one ShaderProgram per texture count, mirroring how a
// real ShaderSet specializes shader permutations by texture count (spec
// §4.6) rather than compiling a new program per draw call.
type ShaderSet struct {
	programs map[int]*ShaderProgram
}

// NewShaderSet creates an empty ShaderSet.
func NewShaderSet() *ShaderSet {
	return &ShaderSet{programs: make(map[int]*ShaderProgram)}
}

// GetShaderProgram implements render.ShaderSet.
func (s *ShaderSet) GetShaderProgram(ctx render.Context, numTextures int) (render.ShaderProgram, error) {
	if numTextures < 0 {
		return nil, fmt.Errorf("software: negative texture count %d", numTextures)
	}
	if p, ok := s.programs[numTextures]; ok {
		return p, nil
	}
	p := &ShaderProgram{numTextures: numTextures}
	s.programs[numTextures] = p
	return p, nil
}

// RenderState is the software RenderState implementation.
type RenderState struct {
	wireframe bool
}

// NewRenderState creates a RenderState. wireframe selects PrimitiveLines
// for debug rendering (spec §4.6).
func NewRenderState(wireframe bool) *RenderState {
	return &RenderState{wireframe: wireframe}
}

// Wireframe implements render.RenderState.
func (r *RenderState) Wireframe() bool { return r.wireframe }
