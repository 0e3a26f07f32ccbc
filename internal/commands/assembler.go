// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package commands implements the Command Assembler (spec §4.6): for
// each LOD-selected tile, it sorts front-to-back within its texture-count
// bucket and emits one or more draw commands carrying imagery uniforms.
//
// Grounded on the teacher's recording/command.go (typed Command struct)
// and recording/pool.go (index-addressed resource pool with Clear()
// truncate-and-reuse), generalized here to a pair of per-frame command
// and uniform-map pools.
package commands

import (
	"math"
	"sort"

	"github.com/gogpu/globesurface/geomath"
	"github.com/gogpu/globesurface/internal/quadtree"
	"github.com/gogpu/globesurface/internal/selector"
	"github.com/gogpu/globesurface/render"
)

// FrameInputs bundles the camera/projection state the assembler needs
// that is computed by an external camera system (out of scope, spec §1).
type FrameInputs struct {
	Mode             selector.Mode
	ViewMatrix       geomath.Matrix4
	ProjectionMatrix geomath.Matrix4

	// MercatorProjection, when non-nil, supplies the active 2D/Columbus
	// projection used to compute the split-precision Y uniforms (spec
	// §4.6 step 4). Left nil in 3D mode.
	MercatorProjection *geomath.WebMercatorProjection

	ShaderSet      render.ShaderSet
	RenderState    render.RenderState
	WireframeState render.RenderState
	DebugWireframe bool

	MaxTextureUnits int
}

// activeRenderState picks the wireframe debug render state when enabled
// (spec §4.6 step 6: "LINES under a wireframe debug flag").
func (f FrameInputs) activeRenderState() render.RenderState {
	if f.DebugWireframe && f.WireframeState != nil {
		return f.WireframeState
	}
	return f.RenderState
}

func (f FrameInputs) primitiveType() render.PrimitiveType {
	if f.DebugWireframe {
		return render.PrimitiveLines
	}
	return render.PrimitiveTriangles
}

// Assembler owns the per-frame command/uniform-map pools, reused across
// frames via truncate-and-regrow (recording/pool.go's ResourcePool.Clear
// idiom) rather than reallocating every frame.
type Assembler struct {
	commandPool []*render.Command
	uniformPool []*render.UniformMap
	used        int
}

// New creates an empty Assembler.
func New() *Assembler { return &Assembler{} }

// Assemble builds draw commands for every tile across all render buckets,
// sorted front-to-back within each bucket, and returns the commands
// currently live in the pool (valid until the next Assemble call).
func (a *Assembler) Assemble(ctx render.Context, buckets [][]*quadtree.Tile, frame FrameInputs) ([]*render.Command, error) {
	a.used = 0

	for _, bucket := range buckets {
		sortFrontToBack(bucket)
		for _, tile := range bucket {
			if err := a.emitTile(ctx, tile, frame); err != nil {
				return nil, err
			}
		}
	}

	// Truncate pool length to the last written index + 1 (spec §9 open
	// question 2: not max(0, tileCommandIndex), which off-by-ones the
	// very last command written when used == len(pool)).
	a.commandPool = a.commandPool[:a.used]
	a.uniformPool = a.uniformPool[:a.used]
	return a.commandPool, nil
}

func sortFrontToBack(bucket []*quadtree.Tile) {
	sort.Slice(bucket, func(i, j int) bool { return bucket[i].Distance < bucket[j].Distance })
}

// emitTile packs a tile's READY imagery entries into ⌈readyCount /
// maxTextureUnits⌉ commands (at least one, even with zero textures: the
// shader draws terrain untextured).
func (a *Assembler) emitTile(ctx render.Context, tile *quadtree.Tile, frame FrameInputs) error {
	ready := readyImagery(tile)

	maxUnits := frame.MaxTextureUnits
	if maxUnits <= 0 {
		maxUnits = 1
	}

	modifiedModelView := frame.ViewMatrix.WithTranslation(frame.ViewMatrix.MultiplyByPoint(tile.Center))
	modifiedModelViewProjection := frame.ProjectionMatrix.Multiply(modifiedModelView)

	batches := 1
	if len(ready) > 0 {
		batches = (len(ready) + maxUnits - 1) / maxUnits
	}

	for b := 0; b < batches; b++ {
		start := b * maxUnits
		end := start + maxUnits
		if end > len(ready) {
			end = len(ready)
		}
		batch := ready[start:end]

		shader, err := frame.ShaderSet.GetShaderProgram(ctx, len(batch))
		if err != nil {
			return err
		}

		cmd, um := a.acquireSlot()
		um.Center = tile.Center
		um.ModifiedModelView = modifiedModelView
		um.ModifiedModelViewProjection = modifiedModelViewProjection
		um.TileExtent = tile.Extent
		um.Mercator = mercatorPrecisionData(frame, tile)
		for _, ti := range batch {
			um.Textures = append(um.Textures, render.TextureSlot{
				Texture:                 ti.Imagery.Texture,
				TranslationAndScale:     ti.TextureTranslationAndScale,
				TextureCoordinateExtent: extentToFloat32(ti.TextureCoordinateExtent),
				Alpha:                   layerAlpha(ti),
			})
		}

		cmd.ShaderProgram = shader
		cmd.RenderState = frame.activeRenderState()
		cmd.PrimitiveType = frame.primitiveType()
		cmd.VertexArray = tile.VertexArray
		cmd.UniformMap = um
		cmd.BoundingVolume = tile.BoundingSphere3D
	}
	return nil
}

// readyImagery returns the subset of tile.Imagery whose bound texture is
// Ready, in stack order (preserving layer order, spec §4.6 step 5: "walk
// the imagery stack in order... skip non-READY entries").
func readyImagery(tile *quadtree.Tile) []*quadtree.TileImagery {
	ready := make([]*quadtree.TileImagery, 0, len(tile.Imagery))
	for _, ti := range tile.Imagery {
		if ti.Imagery != nil && ti.Imagery.State == quadtree.ImageryReady {
			ready = append(ready, ti)
		}
	}
	return ready
}

func layerAlpha(ti *quadtree.TileImagery) float32 {
	if ti.Imagery == nil || ti.Imagery.Layer == nil {
		return 1
	}
	return ti.Imagery.Layer.Alpha()
}

func extentToFloat32(e [4]float64) [4]float32 {
	return [4]float32{float32(e[0]), float32(e[1]), float32(e[2]), float32(e[3])}
}

// mercatorPrecisionData computes the split-precision Mercator Y uniforms
// (spec §4.6 step 4), only in 2D/Columbus View mode with an active
// Mercator projection.
func mercatorPrecisionData(frame FrameInputs, tile *quadtree.Tile) *render.MercatorPrecisionData {
	if frame.Mode == selector.Mode3D || frame.MercatorProjection == nil {
		return nil
	}
	_, southY := frame.MercatorProjection.Project(geomath.Cartographic{Latitude: tile.Extent.South})
	_, northY := frame.MercatorProjection.Project(geomath.Cartographic{Latitude: tile.Extent.North})

	southHigh, southLow := geomath.SplitHighLow(southY)
	oneOverHeight := float32(0)
	if northY != southY {
		oneOverHeight = float32(1.0 / (northY - southY))
	} else {
		oneOverHeight = float32(math.Inf(1))
	}
	return &render.MercatorPrecisionData{
		SouthLatitude:         float32(tile.Extent.South),
		NorthLatitude:         float32(tile.Extent.North),
		SouthMercatorYHigh:    southHigh,
		SouthMercatorYLow:     southLow,
		OneOverMercatorHeight: oneOverHeight,
	}
}

// acquireSlot returns the next pooled (*render.Command, *render.UniformMap)
// pair, growing either pool if exhausted and resetting a reused entry
// before handing it back (recording/pool.go's ResourcePool.Add-or-reuse
// pattern, generalized to the assembler's two parallel pools). The pools
// always grow in lockstep since every call consumes exactly one slot.
func (a *Assembler) acquireSlot() (*render.Command, *render.UniformMap) {
	idx := a.used
	a.used++

	var cmd *render.Command
	if idx < len(a.commandPool) {
		cmd = a.commandPool[idx]
		*cmd = render.Command{}
	} else {
		cmd = &render.Command{}
		a.commandPool = append(a.commandPool, cmd)
	}

	var um *render.UniformMap
	if idx < len(a.uniformPool) {
		um = a.uniformPool[idx]
		um.Reset()
	} else {
		um = &render.UniformMap{}
		a.uniformPool = append(a.uniformPool, um)
	}
	return cmd, um
}
