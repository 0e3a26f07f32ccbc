// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import "testing"

func TestShaderSet_CachesProgramsByTextureCount(t *testing.T) {
	ctx := NewContext(4)
	ss := NewShaderSet()

	p1, err := ss.GetShaderProgram(ctx, 2)
	if err != nil {
		t.Fatalf("GetShaderProgram() error = %v", err)
	}
	p2, err := ss.GetShaderProgram(ctx, 2)
	if err != nil {
		t.Fatalf("GetShaderProgram() error = %v", err)
	}
	if p1 != p2 {
		t.Error("expected same cached program instance for same texture count")
	}

	p3, err := ss.GetShaderProgram(ctx, 3)
	if err != nil {
		t.Fatalf("GetShaderProgram() error = %v", err)
	}
	if p3.NumTextures() != 3 {
		t.Errorf("NumTextures() = %d, want 3", p3.NumTextures())
	}
}

func TestShaderSet_RejectsNegativeTextureCount(t *testing.T) {
	ctx := NewContext(4)
	ss := NewShaderSet()
	if _, err := ss.GetShaderProgram(ctx, -1); err == nil {
		t.Error("expected error for negative texture count")
	}
}

func TestRenderState_Wireframe(t *testing.T) {
	if NewRenderState(true).Wireframe() != true {
		t.Error("expected wireframe render state to report true")
	}
	if NewRenderState(false).Wireframe() != false {
		t.Error("expected non-wireframe render state to report false")
	}
}
