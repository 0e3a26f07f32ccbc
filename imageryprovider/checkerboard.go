// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package imageryprovider

import (
	"image"
	"image/color"

	"github.com/gogpu/globesurface/geomath"
	"github.com/gogpu/globesurface/internal/quadtree"
)

// Checkerboard is a synthetic Provider that paints each imagery tile with
// a checkerboard pattern alternating between two colors, colored by tile
// (level, x, y) parity so adjacent tiles are visually distinguishable in
// the demo CLI and in tests, without any real tile source.
type Checkerboard struct {
	scheme             geomath.TilingScheme
	tileSize           int
	colorA, colorB     color.RGBA
	minLevel, maxLevel int
}

// NewCheckerboard creates a Checkerboard provider over scheme, generating
// tileSize x tileSize RGBA images.
func NewCheckerboard(scheme geomath.TilingScheme, tileSize int, colorA, colorB color.RGBA) *Checkerboard {
	if tileSize <= 0 {
		tileSize = 256
	}
	return &Checkerboard{
		scheme:   scheme,
		tileSize: tileSize,
		colorA:   colorA,
		colorB:   colorB,
		maxLevel: 22,
	}
}

// Ready implements Provider; the checkerboard generator has nothing to
// wait for.
func (c *Checkerboard) Ready() bool { return true }

// TilingScheme implements Provider.
func (c *Checkerboard) TilingScheme() geomath.TilingScheme { return c.scheme }

// MinLevel implements Provider.
func (c *Checkerboard) MinLevel() int { return c.minLevel }

// MaxLevel implements Provider.
func (c *Checkerboard) MaxLevel() int { return c.maxLevel }

// RequestImagery implements Provider: it synthesizes an RGBA checkerboard
// immediately and advances imagery to Received.
func (c *Checkerboard) RequestImagery(imagery *quadtree.Imagery) {
	img := image.NewRGBA(image.Rect(0, 0, c.tileSize, c.tileSize))
	const cell = 32
	parity := (imagery.X + imagery.Y + imagery.Level) % 2
	for py := 0; py < c.tileSize; py++ {
		for px := 0; px < c.tileSize; px++ {
			cellParity := ((px/cell)+(py/cell))%2 == 0
			if cellParity == (parity == 0) {
				img.SetRGBA(px, py, c.colorA)
			} else {
				img.SetRGBA(px, py, c.colorB)
			}
		}
	}
	imagery.Payload = img
	imagery.State = quadtree.ImageryReceived
}
