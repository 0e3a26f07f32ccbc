// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package globesurface streams, selects, and renders a level-of-detail
// quadtree of terrain tiles draped with ordered imagery layers on an
// ellipsoidal planet.
//
// # Overview
//
// Each frame, a Surface:
//   - traverses the terrain quadtree breadth-first, culling invisible
//     tiles and gating refinement on screen-space error (internal/selector);
//   - advances the terrain and per-layer-imagery state machines of queued
//     tiles within a wall-clock budget (internal/loadpump);
//   - assembles one or more draw commands per rendered tile, batching its
//     ready imagery textures to the render.Context's texture unit limit
//     (internal/commands).
//
// # Quick Start
//
//	s, err := globesurface.New(ctx, terrainProvider)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	s.Layers().Add(imagery.NewLayer(provider, 1.0), 0)
//
//	cmds, stats, err := s.Update(ctx, frameState)
//
// # Out of scope
//
// The rendering API itself (shader compilation, buffer upload, draw
// submission), terrain/imagery provider internals (real tile services),
// projection/ellipsoid math beyond what culling and Mercator precision
// need, camera/frustum computation, credit/logo compositing, and any
// scene-graph/entity/animation system are all consumed as collaborators,
// not implemented here.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Surface, Option, DebugStats
//   - internal/quadtree: Tile, Imagery, TileImagery, LoadQueue, ReplacementQueue
//   - internal/selector: the per-frame LOD traversal
//   - internal/loadpump: state-machine advancement within a budget
//   - internal/imagery: layer pipeline and layer-collection mutation
//   - internal/commands: draw command assembly
//   - geomath: ellipsoid, tiling scheme, bounding volume, matrix math
//   - render: the rendering-API collaborator interfaces, plus a CPU
//     reference implementation (render/software)
package globesurface
