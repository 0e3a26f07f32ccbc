// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geomath

// Matrix4 is a column-major 4x4 matrix, the layout graphics APIs expect
// uniform data in. Only the handful of operations the command assembler
// needs (relative-to-center translation) are provided; general camera and
// projection math is the host application's concern (package doc).
type Matrix4 [16]float32

// MultiplyByPoint transforms p by m as a homogeneous point (w=1),
// returning just the resulting xyz (the command assembler never needs w
// back, since it only uses this to relocate a translation column).
func (m Matrix4) MultiplyByPoint(p Cartesian3) Cartesian3 {
	x, y, z := float32(p.X), float32(p.Y), float32(p.Z)
	return Cartesian3{
		X: float64(m[0]*x + m[4]*y + m[8]*z + m[12]),
		Y: float64(m[1]*x + m[5]*y + m[9]*z + m[13]),
		Z: float64(m[2]*x + m[6]*y + m[10]*z + m[14]),
	}
}

// WithTranslation returns a copy of m with its translation column (indices
// 12, 13, 14) replaced by t, implementing the relative-to-center rewrite
// the command assembler applies to the view matrix before each tile draw.
func (m Matrix4) WithTranslation(t Cartesian3) Matrix4 {
	out := m
	out[12] = float32(t.X)
	out[13] = float32(t.Y)
	out[14] = float32(t.Z)
	return out
}

// Multiply returns m * other (standard column-major matrix product).
func (m Matrix4) Multiply(other Matrix4) Matrix4 {
	var out Matrix4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * other[col*4+k]
			}
			out[col*4+row] = sum
		}
	}
	return out
}
