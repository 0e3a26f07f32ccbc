// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package imagery

import "github.com/gogpu/globesurface/internal/quadtree"

// Collection is the ordered stack of imagery layers draped over the
// terrain. Add/Remove/Move keep every resident tile's imagery stack in
// sync in-place (spec §4.5), preserving invariant 3 (each layer's block is
// contiguous, in collection order).
//
// Grounded on the teacher's scene/layer.go LayerStack (push/pop ordered
// layers), generalized from a per-frame rendering stack to a persistent
// collection whose mutations fan out to every tile the replacement queue
// currently holds.
type Collection struct {
	layers    []*Layer
	residents *quadtree.ReplacementQueue
}

// NewCollection creates an empty collection. residents is the engine's
// replacement queue, walked on every structural change so resident tiles'
// imagery stacks stay consistent with the layer order.
func NewCollection(residents *quadtree.ReplacementQueue) *Collection {
	return &Collection{residents: residents}
}

// Layers returns the current ordered layer list. Callers must not mutate
// the returned slice.
func (c *Collection) Layers() []*Layer { return c.layers }

// Len reports the number of layers.
func (c *Collection) Len() int { return len(c.layers) }

// Add inserts layer at index (a negative index or one past Len() appends
// it at the end), then walks every
// resident tile: creates skeletons for the new layer (appended at the
// tile's current stack tail), and splices that new block to sit
// immediately before the block of the layer that ends up at index+1.
func (c *Collection) Add(layer *Layer, index int) {
	if index < 0 || index > len(c.layers) {
		index = len(c.layers)
	}
	c.layers = insertLayer(c.layers, layer, index)

	var nextLayer quadtree.Layer
	if index+1 < len(c.layers) {
		nextLayer = c.layers[index+1]
	}

	c.residents.ForEach(func(tile *quadtree.Tile) {
		before := len(tile.Imagery)
		if layer.CreateTileImagerySkeletons(tile, before) {
			tile.DoneLoading = false
		}
		block, rest := extractBlock(tile.Imagery, layer)
		tile.Imagery = insertBlockBefore(rest, block, nextLayer)
	})
}

// Remove splices layer's contiguous block out of every resident tile's
// imagery stack, releasing its references, and removes it from the
// collection. Tiles left with an empty stack stop being renderable.
func (c *Collection) Remove(layer *Layer) {
	idx := indexOfLayer(c.layers, layer)
	if idx < 0 {
		return
	}
	c.layers = append(c.layers[:idx], c.layers[idx+1:]...)

	c.residents.ForEach(func(tile *quadtree.Tile) {
		block, rest := extractBlock(tile.Imagery, layer)
		for _, ti := range block {
			ti.FreeResources()
		}
		tile.Imagery = rest
		if len(rest) == 0 {
			tile.Renderable = false
		}
	})
}

// Move relocates layer to newIndex (a negative or out-of-range index moves
// it to the last position) and reorders every resident
// tile's imagery block to match. Moving a layer to its own current index
// is a no-op that leaves every tile's stack byte-identical (the
// idempotence law spec §8 requires), since extractBlock preserves the
// relative order of the remaining entries and the block is reinserted at
// the same boundary it was removed from.
func (c *Collection) Move(layer *Layer, newIndex int) {
	oldIndex := indexOfLayer(c.layers, layer)
	if oldIndex < 0 {
		return
	}
	if newIndex < 0 || newIndex >= len(c.layers) {
		newIndex = len(c.layers) - 1
	}
	if newIndex == oldIndex {
		return
	}

	withoutLayer := append(append([]*Layer{}, c.layers[:oldIndex]...), c.layers[oldIndex+1:]...)
	c.layers = insertLayer(withoutLayer, layer, newIndex)

	var nextLayer quadtree.Layer
	idx := indexOfLayer(c.layers, layer)
	if idx+1 < len(c.layers) {
		nextLayer = c.layers[idx+1]
	}

	c.residents.ForEach(func(tile *quadtree.Tile) {
		block, rest := extractBlock(tile.Imagery, layer)
		tile.Imagery = insertBlockBefore(rest, block, nextLayer)
	})
}

// EnsureSkeletons creates TileImagery skeletons on tile for every layer in
// the collection tile does not already carry one for, appending in
// collection order. Meant for a tile that just became resident (an empty
// or partial imagery stack, e.g. a freshly created child or a level-zero
// tile on its first frame): appending in order is correct only because
// such a tile's existing entries, if any, are already a prefix of the
// collection (Add/Remove/Move keep every OTHER resident tile's stack in
// sync as they happen, so a tile missing from those walks can only be
// missing a suffix of layers, never an interior gap).
func (c *Collection) EnsureSkeletons(tile *quadtree.Tile) {
	present := make(map[*Layer]bool, len(tile.Imagery))
	for _, ti := range tile.Imagery {
		if l, ok := layerOf(ti).(*Layer); ok {
			present[l] = true
		}
	}
	for _, layer := range c.layers {
		if present[layer] {
			continue
		}
		layer.CreateTileImagerySkeletons(tile, len(tile.Imagery))
	}
}

func insertLayer(layers []*Layer, layer *Layer, index int) []*Layer {
	out := make([]*Layer, 0, len(layers)+1)
	out = append(out, layers[:index]...)
	out = append(out, layer)
	out = append(out, layers[index:]...)
	return out
}

func indexOfLayer(layers []*Layer, layer *Layer) int {
	for i, l := range layers {
		if l == layer {
			return i
		}
	}
	return -1
}

func layerOf(ti *quadtree.TileImagery) quadtree.Layer {
	if ti.Imagery != nil {
		return ti.Imagery.Layer
	}
	return nil
}

// extractBlock splits stack into the contiguous-by-construction entries
// belonging to layer and everything else, preserving relative order
// within each partition.
func extractBlock(stack []*quadtree.TileImagery, layer quadtree.Layer) (block, rest []*quadtree.TileImagery) {
	for _, ti := range stack {
		if layerOf(ti) == layer {
			block = append(block, ti)
		} else {
			rest = append(rest, ti)
		}
	}
	return block, rest
}

// insertBlockBefore reassembles rest with block spliced in immediately
// before the first entry belonging to beforeLayer, or at the end if
// beforeLayer is nil or not found.
func insertBlockBefore(rest, block []*quadtree.TileImagery, beforeLayer quadtree.Layer) []*quadtree.TileImagery {
	if len(block) == 0 {
		return rest
	}
	out := make([]*quadtree.TileImagery, 0, len(rest)+len(block))
	inserted := false
	if beforeLayer != nil {
		for _, ti := range rest {
			if !inserted && layerOf(ti) == beforeLayer {
				out = append(out, block...)
				inserted = true
			}
			out = append(out, ti)
		}
	} else {
		out = append(out, rest...)
	}
	if !inserted {
		out = append(out, block...)
	}
	return out
}
