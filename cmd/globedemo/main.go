// Command globedemo drives a globesurface.Surface against the reference
// Heightmap terrain provider and Checkerboard imagery provider over the
// render/software CPU context, printing per-frame debug stats for the
// number of frames given by the -frames flag.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/globesurface"
	"github.com/gogpu/globesurface/geomath"
	"github.com/gogpu/globesurface/imageryprovider"
	"github.com/gogpu/globesurface/internal/imagery"
	"github.com/gogpu/globesurface/render/software"
	"github.com/gogpu/globesurface/terrain"
)

func main() {
	var (
		frames   = flag.Int("frames", 30, "number of Update frames to run")
		maxLevel = flag.Int("max-level", 6, "terrain provider max quadtree level")
		sse      = flag.Float64("sse", 2.0, "maximum screen-space error in pixels")
		verbose  = flag.Bool("v", false, "enable debug logging")
		texUnits = flag.Int("texture-units", 4, "texture units the render context reports")
	)
	flag.Parse()

	if *verbose {
		globesurface.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	scheme := geomath.NewGeographicTilingScheme(geomath.WGS84, 2, 1)
	heightmap := terrain.NewHeightmap(scheme, 8, 8000, *maxLevel)
	ctx := software.NewContext(*texUnits)

	surface, err := globesurface.New(ctx, heightmap, globesurface.WithMaxScreenSpaceError(*sse))
	if err != nil {
		log.Fatalf("globesurface.New: %v", err)
	}

	checkerboard := imageryprovider.NewCheckerboard(scheme, 16,
		color.RGBA{R: 200, G: 200, B: 200, A: 255},
		color.RGBA{R: 60, G: 90, B: 60, A: 255})
	surface.Layers().Add(imagery.NewLayer(checkerboard, 1.0), 0)

	frame := globesurface.FrameState{
		Mode: globesurface.Mode3D,
		CameraPosition: geomath.Cartesian3{
			X: geomath.WGS84.MaximumRadius() * 3,
		},
		CameraCartographic: geomath.Cartographic{
			Height: geomath.WGS84.MaximumRadius() * 2,
		},
		Frustum: geomath.FrustumPlanes{
			Left:   geomath.Plane{Distance: 1e15},
			Right:  geomath.Plane{Distance: 1e15},
			Top:    geomath.Plane{Distance: 1e15},
			Bottom: geomath.Plane{Distance: 1e15},
			Near:   geomath.Plane{Distance: 1e15},
			Far:    geomath.Plane{Distance: 1e15},
		},
		ViewportWidth:  1280,
		ViewportHeight: 720,
		FovY:           1.0,
		ViewMatrix:     geomath.Matrix4{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1},
		ProjectionMatrix: geomath.Matrix4{
			1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1,
		},
		ShaderSet:   software.NewShaderSet(),
		RenderState: software.NewRenderState(false),
	}

	for i := 0; i < *frames; i++ {
		cmds, stats, err := surface.Update(ctx, frame)
		if err != nil {
			log.Fatalf("Update: %v", err)
		}
		fmt.Printf("frame %3d: commands=%-3d rendered=%-3d culled=%-3d loadQueue=%-3d resident=%-3d\n",
			i, len(cmds), stats.TilesRendered, stats.TilesCulled, stats.LoadQueueLength, stats.ResidentTileCount)
	}

	surface.Destroy()
}
