// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package globesurface

import (
	"errors"
	"log/slog"

	"github.com/gogpu/globesurface/geomath"
	"github.com/gogpu/globesurface/internal/commands"
	"github.com/gogpu/globesurface/internal/imagery"
	"github.com/gogpu/globesurface/internal/loadpump"
	"github.com/gogpu/globesurface/internal/quadtree"
	"github.com/gogpu/globesurface/internal/selector"
	"github.com/gogpu/globesurface/render"
	"github.com/gogpu/globesurface/terrain"
)

// Sentinel errors (spec §6: wrapped with fmt.Errorf("...: %w", err) at
// call sites that need additional context, exactly as the teacher's
// accelerator.go/internal/gpu/atlas.go use errors.New + %w).
var (
	// ErrMissingTerrainProvider is returned by New when terrainProvider is nil.
	ErrMissingTerrainProvider = errors.New("globesurface: missing terrain provider")
	// ErrSurfaceClosed is returned by Update after Destroy.
	ErrSurfaceClosed = errors.New("globesurface: surface is closed")
)

// Mode re-exports selector.Mode, the active scene mode a FrameState
// declares (spec §4.3).
type Mode = selector.Mode

// Scene mode constants, re-exported from internal/selector.
const (
	Mode3D           = selector.Mode3D
	Mode2D           = selector.Mode2D
	ModeColumbusView = selector.ModeColumbusView
	ModeMorphing     = selector.ModeMorphing
)

// DebugStats re-exports selector.DebugStats: the outcome of one Update
// call (spec §9's debug/introspection supplement).
type DebugStats = selector.DebugStats

// FrameState bundles everything Update needs for one frame: camera and
// frustum inputs driving LOD selection, and the view/projection matrices
// and rendering collaborators driving command assembly. Camera and
// projection computation themselves remain the host application's concern
// (spec §1); FrameState is the pre-computed handoff.
type FrameState struct {
	Mode Mode

	CameraPosition     geomath.Cartesian3
	CameraCartographic geomath.Cartographic
	Frustum            geomath.FrustumPlanes

	ViewportWidth, ViewportHeight int
	FovY                          float64
	// PixelSize is used only in Mode2D.
	PixelSize float64

	ViewMatrix         geomath.Matrix4
	ProjectionMatrix   geomath.Matrix4
	MercatorProjection *geomath.WebMercatorProjection

	ShaderSet      render.ShaderSet
	RenderState    render.RenderState
	WireframeState render.RenderState
	DebugWireframe bool
}

// Surface is the central-body surface engine: it owns the terrain
// quadtree, the imagery layer collection draped over it, and the per-frame
// pipeline (select -> load -> assemble) that turns a FrameState into draw
// commands.
//
// Grounded on the teacher's Context (context.go): a single stateful object
// constructed with functional options, driving a fixed internal pipeline
// each frame.
type Surface struct {
	terrainProvider terrain.Provider
	layers          *imagery.Collection

	roots            []*quadtree.Tile
	loadQueue        *quadtree.LoadQueue
	replacementQueue *quadtree.ReplacementQueue

	selector  *selector.Selector
	pump      *loadpump.Pump
	assembler *commands.Assembler

	opts            surfaceOptions
	maxTextureUnits int
	buckets         [][]*quadtree.Tile

	logger *slog.Logger
	closed bool
}

// New creates a Surface over terrainProvider, with an empty imagery layer
// collection (add layers via Layers().Add). ctx is used to query GPU
// limits, and to advance terrain/imagery resource creation each Update.
//
// Collection and ReplacementQueue live under internal/ (spec §1's
// quadtree/queue internals are this engine's own concern, not a
// collaborator a host application supplies), so Surface constructs and
// owns both; there is no "missing imagery layer collection" construction
// error, unlike a missing terrain provider, since none can be supplied.
func New(ctx render.Context, terrainProvider terrain.Provider, options ...Option) (*Surface, error) {
	if terrainProvider == nil {
		return nil, ErrMissingTerrainProvider
	}

	o := defaultOptions()
	for _, opt := range options {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = Logger()
	}

	maxTextureUnits := o.maxTextureUnits
	if maxTextureUnits <= 0 {
		maxTextureUnits = ctx.GetMaximumTextureImageUnits()
	}
	if maxTextureUnits <= 0 {
		maxTextureUnits = 1
	}

	scheme := terrainProvider.TilingScheme()
	replacementQueue := quadtree.NewReplacementQueue()

	s := &Surface{
		terrainProvider:  terrainProvider,
		layers:           imagery.NewCollection(replacementQueue),
		roots:            quadtree.NewLevelZeroTiles(scheme),
		loadQueue:        quadtree.NewLoadQueue(),
		replacementQueue: replacementQueue,
		selector:         selector.New(scheme.Ellipsoid()),
		pump:             loadpump.New(terrainProvider, ctx),
		assembler:        commands.New(),
		opts:             o,
		maxTextureUnits:  maxTextureUnits,
		buckets:          make([][]*quadtree.Tile, maxTextureUnits+1),
		logger:           logger,
	}
	s.pump.Budget = o.maxTileLoadBudget
	s.pump.Logger = logger
	s.pump.Layers = s.layers
	s.pump.ReplacementQueue = s.replacementQueue
	return s, nil
}

// Layers returns the Surface's imagery layer collection, through which
// callers add, remove, and reorder draped imagery layers (spec §4.5).
func (s *Surface) Layers() *imagery.Collection { return s.layers }

// ToggleLODUpdate freezes or unfreezes the LOD selector, a debug aid that
// lets a camera move while the rendered tile set stays fixed (spec §6).
func (s *Surface) ToggleLODUpdate() { s.selector.ToggleFrozen() }

// LODUpdateFrozen reports whether ToggleLODUpdate has frozen selection.
func (s *Surface) LODUpdateFrozen() bool { return s.selector.Frozen() }

// Update runs one frame's select -> load -> assemble pipeline, returning
// the draw commands for the caller to submit and the frame's debug stats.
// The returned command slice is valid only until the next Update call
// (it is backed by the Surface's internal command pool).
func (s *Surface) Update(ctx render.Context, frame FrameState) ([]*render.Command, DebugStats, error) {
	if s.closed {
		return nil, DebugStats{}, ErrSurfaceClosed
	}

	sel := selector.FrameState{
		Mode:                frame.Mode,
		CameraPosition:      frame.CameraPosition,
		CameraCartographic:  frame.CameraCartographic,
		Frustum:             frame.Frustum,
		ViewportWidth:       frame.ViewportWidth,
		ViewportHeight:      frame.ViewportHeight,
		FovY:                frame.FovY,
		PixelSize:           frame.PixelSize,
		MaxScreenSpaceError: s.opts.maxScreenSpaceError,
		MaxLevel:            s.terrainProvider.MaxLevel(),
	}
	stats := s.selector.Select(sel, s.roots, s.terrainProvider, s.loadQueue, s.replacementQueue, s.buckets, s.logger)

	s.pump.ProcessLoadQueue(s.loadQueue)
	s.pump.ProcessResidentImagery(s.replacementQueue)

	cmds, err := s.assembler.Assemble(ctx, s.buckets, commands.FrameInputs{
		Mode:               frame.Mode,
		ViewMatrix:         frame.ViewMatrix,
		ProjectionMatrix:   frame.ProjectionMatrix,
		MercatorProjection: frame.MercatorProjection,
		ShaderSet:          frame.ShaderSet,
		RenderState:        frame.RenderState,
		WireframeState:     frame.WireframeState,
		DebugWireframe:     frame.DebugWireframe,
		MaxTextureUnits:    s.maxTextureUnits,
	})
	if err != nil {
		return nil, stats, err
	}

	s.replacementQueue.TrimTiles(s.opts.replacementQueueFloor)
	return cmds, stats, nil
}

// Stats returns the resident tile count and load queue length as of the
// last Update call, without running a frame.
func (s *Surface) Stats() DebugStats {
	return DebugStats{
		LoadQueueLength:   s.loadQueue.Len(),
		ResidentTileCount: s.replacementQueue.Len(),
		FrameNumber:       s.replacementQueue.FrameNumber(),
	}
}

// SetLogger overrides this Surface's logger, independent of the
// package-wide default (SetLogger).
func (s *Surface) SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	s.logger = l
	s.pump.Logger = l
}

// Destroy releases engine-owned GPU resources (resident tiles' vertex
// arrays and textures) and marks the Surface closed; the queues keep their
// links. It does NOT destroy the
// injected terrain.Provider or the imagery providers backing s.Layers():
// both are caller-owned collaborators the Surface only borrows (spec §9
// open question 4). Destroy is idempotent.
func (s *Surface) Destroy() {
	if s.closed {
		return
	}
	s.replacementQueue.ForEach(func(t *quadtree.Tile) { t.Destroy(s.replacementQueue) })
	s.closed = true
}
