// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package imagery

import (
	"image"
	"image/draw"
)

// decodePayload normalizes a provider's Received-stage payload (any
// image.Image) into the tightly packed RGBA byte buffer render.Context's
// CreateTexture2D expects.
func decodePayload(payload any) (pixels []byte, width, height int, ok bool) {
	img, isImage := payload.(image.Image)
	if !isImage {
		return nil, 0, 0, false
	}
	bounds := img.Bounds()
	rgba, isRGBA := img.(*image.RGBA)
	if !isRGBA || rgba.Stride != bounds.Dx()*4 {
		rgba = image.NewRGBA(bounds)
		draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	}
	return rgba.Pix, bounds.Dx(), bounds.Dy(), true
}
