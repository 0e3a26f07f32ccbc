// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package loadpump advances the terrain and imagery state machines for
// tiles the Selector has queued, within a per-frame wall-clock budget
// (spec §4.4/§5: "process the load queue for at most ~10ms per frame").
//
// Grounded on the teacher's internal/gpu/atlas.go upload-budget loop
// (amortized work across frames rather than draining a queue in one
// shot) and cache/sharded.go's per-entry state-machine advancement.
package loadpump

import (
	"log/slog"
	"time"

	"github.com/gogpu/globesurface/internal/imagery"
	"github.com/gogpu/globesurface/internal/quadtree"
	"github.com/gogpu/globesurface/render"
	"github.com/gogpu/globesurface/terrain"
)

// Clock abstracts wall-clock time so tests can drive the budget loop
// deterministically instead of racing real time; New defaults it to
// time.Now.
type Clock func() time.Time

// Retry policy constants for failed terrain (spec §9 open question 1).
const (
	MaxRetryAttempts = 5
	baseRetryDelay   = 500 * time.Millisecond
	maxRetryDelay    = 30 * time.Second
)

// RetryBackoff returns the delay before attempt's next retry:
// min(maxRetryDelay, baseRetryDelay * 2^attempt).
func RetryBackoff(attempt int) time.Duration {
	d := baseRetryDelay
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= maxRetryDelay {
			return maxRetryDelay
		}
	}
	return d
}

// Pump drains a LoadQueue up to a wall-clock budget each frame, advancing
// each dequeued tile's terrain state machine one step and every resident
// TileImagery's imagery state machine one step.
type Pump struct {
	TerrainProvider terrain.Provider
	Context         render.Context
	Budget          time.Duration
	Now             Clock
	Logger          *slog.Logger

	// Layers, when set, gives each tile skeletons for every layer in the
	// collection (EnsureSkeletons adds missing blocks; it removes none) when
	// it first becomes resident and on every ProcessResidentImagery pass.
	// Left nil, tiles get imagery only from Collection.Add, which reaches
	// just the tiles already resident when the layer is added.
	Layers *imagery.Collection

	// ReplacementQueue, when set, is registered against in advanceTerrain
	// as soon as a tile's TerrainState advances past Unloaded (spec §4.4),
	// so the tile becomes resident (invariant 2) before terrain finishes
	// loading rather than only once it reaches Ready.
	ReplacementQueue *quadtree.ReplacementQueue
}

// New creates a Pump with the spec's default 10ms per-frame budget.
func New(terrainProvider terrain.Provider, ctx render.Context) *Pump {
	return &Pump{
		TerrainProvider: terrainProvider,
		Context:         ctx,
		Budget:          10 * time.Millisecond,
		Now:             time.Now,
		Logger:          slog.New(slog.DiscardHandler),
	}
}

// ProcessLoadQueue walks queue from its head (highest priority per the
// Selector's insertion order) advancing terrain state machines until the
// budget is exhausted or the queue is drained. Every tile it advances is
// removed from the queue after its one step (the Selector re-queues tiles
// that are not DoneLoading on a later frame); tiles that reach a terminal
// state (Ready, PermanentlyFailed) are also marked DoneLoading.
func (p *Pump) ProcessLoadQueue(queue *quadtree.LoadQueue) {
	deadline := p.Now().Add(p.Budget)
	for {
		tile := queue.Head()
		if tile == nil {
			return
		}
		if !p.Now().Before(deadline) {
			return
		}
		p.advanceTerrain(tile)
		if tile.TerrainState == quadtree.TerrainReady || tile.TerrainState == quadtree.TerrainPermanentlyFailed {
			tile.DoneLoading = true
		}
		queue.Remove(tile)
	}
}

// advanceTerrain moves tile.TerrainState one step forward, or begins a
// backoff-gated retry if it previously failed.
func (p *Pump) advanceTerrain(tile *quadtree.Tile) {
	switch tile.TerrainState {
	case quadtree.TerrainUnloaded:
		tile.TerrainState = quadtree.TerrainTransitioning
		p.TerrainProvider.RequestTileGeometry(tile)
		if tile.TerrainState != quadtree.TerrainUnloaded {
			// Spec §4.4: "If the state advanced past Unloaded, call
			// replacementQueue.markTileRendered(tile) and
			// replacementQueue.trimTiles(100), then ask every imagery
			// layer to create skeletons on this tile." Registering
			// residency here, not at TerrainReady, keeps invariant 2
			// ("in the replacement queue iff terrain state != Unloaded")
			// honored through Transitioning/Received/Transformed, and
			// lets imagery start loading concurrently with terrain
			// instead of only after terrain reaches Ready.
			if p.ReplacementQueue != nil {
				p.ReplacementQueue.MarkTileRendered(tile)
				p.ReplacementQueue.TrimTiles(100)
			}
			if p.Layers != nil {
				p.Layers.EnsureSkeletons(tile)
			}
		}
		if tile.TerrainState == quadtree.TerrainFailed {
			p.onTerrainFailed(tile)
		}
	case quadtree.TerrainReceived:
		p.TerrainProvider.TransformGeometry(p.Context, tile)
		if tile.TerrainState == quadtree.TerrainFailed {
			p.onTerrainFailed(tile)
		}
	case quadtree.TerrainTransformed:
		p.TerrainProvider.CreateResources(p.Context, tile)
		if tile.TerrainState == quadtree.TerrainFailed {
			p.onTerrainFailed(tile)
		} else if tile.TerrainState == quadtree.TerrainReady {
			tile.Renderable = true
			p.processTileImagery(tile)
		}
	case quadtree.TerrainFailed:
		if p.Now().Before(tile.NextRetryAt) {
			return
		}
		tile.FailCount++
		if tile.FailCount > MaxRetryAttempts {
			tile.TerrainState = quadtree.TerrainPermanentlyFailed
			p.Logger.Warn("terrain permanently failed", "level", tile.Level, "x", tile.X, "y", tile.Y)
			return
		}
		tile.TerrainState = quadtree.TerrainUnloaded
	}
}

func (p *Pump) onTerrainFailed(tile *quadtree.Tile) {
	tile.NextRetryAt = p.Now().Add(RetryBackoff(tile.FailCount))
	p.Logger.Debug("terrain request failed, scheduling retry",
		"level", tile.Level, "x", tile.X, "y", tile.Y, "attempt", tile.FailCount)
}

// ImageryLayer is the subset of imagery.Layer the pump needs to advance a
// TileImagery's texture. advanceImagery reaches a layer only through the
// quadtree.Layer stored on each Imagery, so it asserts this interface
// rather than the concrete *imagery.Layer.
type ImageryLayer interface {
	RequestImagery(img *quadtree.Imagery)
	CreateTexture(ctx render.Context, img *quadtree.Imagery)
	ReprojectTexture(ctx render.Context, img *quadtree.Imagery)
	CalculateTextureTranslationAndScale(ti *quadtree.TileImagery) [4]float32
}

// processTileImagery advances every TileImagery bound to a now-renderable
// terrain tile one imagery-state step, per spec §4.4.
func (p *Pump) processTileImagery(tile *quadtree.Tile) {
	for _, ti := range tile.Imagery {
		p.advanceImagery(ti)
	}
}

// ProcessResidentImagery advances every renderable resident tile's imagery
// one state step, called once per frame independent of the terrain load
// queue (terrain reaches Ready once; imagery keeps advancing every frame
// after that, and must also pick up skeletons for tiles that became
// resident after a layer was already added to the collection).
func (p *Pump) ProcessResidentImagery(residents *quadtree.ReplacementQueue) {
	residents.ForEach(func(tile *quadtree.Tile) {
		if !tile.Renderable {
			return
		}
		if p.Layers != nil {
			p.Layers.EnsureSkeletons(tile)
		}
		p.processTileImagery(tile)
	})
}

func (p *Pump) advanceImagery(ti *quadtree.TileImagery) {
	img := ti.Imagery
	if img == nil {
		return
	}
	layer, ok := img.Layer.(ImageryLayer)
	if !ok {
		return
	}

	switch img.State {
	case quadtree.ImageryUnloaded:
		layer.RequestImagery(img)
	case quadtree.ImageryReceived:
		layer.CreateTexture(p.Context, img)
	case quadtree.ImageryTextureLoaded:
		layer.ReprojectTexture(p.Context, img)
		if img.State == quadtree.ImageryReady && !ti.HasTranslationAndScale() {
			ti.SetTranslationAndScale(layer.CalculateTextureTranslationAndScale(ti))
		}
	case quadtree.ImageryFailed, quadtree.ImageryInvalid:
		ti.FallbackToParent()
	}
}
