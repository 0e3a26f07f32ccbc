// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package imageryprovider

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/globesurface/geomath"
	"github.com/gogpu/globesurface/internal/quadtree"
)

// ErrMissingTemplatePlaceholder is returned by NewTileFile when the path
// template omits one of the required {z}/{x}/{y} placeholders.
var ErrMissingTemplatePlaceholder = errors.New("imageryprovider: tile path template missing required placeholder")

// TileFile is a Provider that reads PNG tiles from local disk using a
// "{z}/{x}/{y}.png"-style path template, standing in for a real tile
// service (the network fetch itself is out of scope, spec §1).
type TileFile struct {
	scheme             geomath.TilingScheme
	template           string
	minLevel, maxLevel int
}

// NewTileFile validates pathTemplate and builds a TileFile provider.
// Diagnostic errors are formatted with golang.org/x/text/message, the
// teacher's declared dependency for user-facing formatted text, since this
// is the one place the engine produces a diagnostic from user input
// (provider construction) rather than an internal sentinel.
func NewTileFile(scheme geomath.TilingScheme, pathTemplate string, minLevel, maxLevel int) (*TileFile, error) {
	for _, placeholder := range []string{"{z}", "{x}", "{y}"} {
		if !strings.Contains(pathTemplate, placeholder) {
			p := message.NewPrinter(language.English)
			detail := p.Sprintf("tile path template %q is missing placeholder %s", pathTemplate, placeholder)
			return nil, fmt.Errorf("%w: %s", ErrMissingTemplatePlaceholder, detail)
		}
	}
	return &TileFile{scheme: scheme, template: pathTemplate, minLevel: minLevel, maxLevel: maxLevel}, nil
}

// Ready implements Provider.
func (f *TileFile) Ready() bool { return true }

// TilingScheme implements Provider.
func (f *TileFile) TilingScheme() geomath.TilingScheme { return f.scheme }

// MinLevel implements Provider.
func (f *TileFile) MinLevel() int { return f.minLevel }

// MaxLevel implements Provider.
func (f *TileFile) MaxLevel() int { return f.maxLevel }

func (f *TileFile) path(level, x, y int) string {
	r := strings.NewReplacer("{z}", strconv.Itoa(level), "{x}", strconv.Itoa(x), "{y}", strconv.Itoa(y))
	return r.Replace(f.template)
}

// RequestImagery implements Provider by decoding the PNG file named by the
// tile's path. Missing or undecodable files mark the imagery Failed rather
// than returning an error, matching the "recover locally" policy of spec
// §7 (the caller has no synchronous error channel to report to).
func (f *TileFile) RequestImagery(imagery *quadtree.Imagery) {
	path := f.path(imagery.Level, imagery.X, imagery.Y)
	file, err := os.Open(path)
	if err != nil {
		imagery.State = quadtree.ImageryFailed
		return
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		imagery.State = quadtree.ImageryFailed
		return
	}
	imagery.Payload = img
	imagery.State = quadtree.ImageryReceived
}
