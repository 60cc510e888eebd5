package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/BlockOG/ray-tracing/pkg/core"
	"github.com/BlockOG/ray-tracing/pkg/geometry"
	"github.com/BlockOG/ray-tracing/pkg/integrator"
)

// SamplingConfig contains per-pixel sampling parameters
type SamplingConfig struct {
	RaysPerPixel   int // Number of jittered camera rays averaged per pixel
	MaxBounceCount int // Bounces after the primary hit
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		RaysPerPixel:   1000,
		MaxBounceCount: 10,
	}
}

// RenderConfig contains image and scheduling parameters
type RenderConfig struct {
	Width      int
	Height     int
	TileSize   int   // Size of each square tile
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	Seed       int64 // Base seed; tile i uses Seed+i
	Sampling   SamplingConfig
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Width:      1080,
		Height:     1080,
		TileSize:   32,
		NumWorkers: 0,
		Seed:       42,
		Sampling:   DefaultSamplingConfig(),
	}
}

// Scene is what the raytracer needs from a scene
type Scene interface {
	core.Intersector
	GetCamera() *geometry.Camera
}

// Raytracer renders a scene into an Image
type Raytracer struct {
	scene      Scene
	integrator integrator.Integrator
	config     RenderConfig
	logger     core.Logger
}

// NewRaytracer creates a raytracer using path tracing with the default sky
func NewRaytracer(scene Scene, config RenderConfig, logger core.Logger) *Raytracer {
	integratorConfig := integrator.DefaultConfig()
	integratorConfig.MaxBounceCount = config.Sampling.MaxBounceCount
	if logger == nil {
		logger = nopLogger{}
	}

	return &Raytracer{
		scene:      scene,
		integrator: integrator.NewPathTracingIntegrator(integratorConfig),
		config:     config,
		logger:     logger,
	}
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(integratorInst integrator.Integrator) {
	rt.integrator = integratorInst
}

// Config returns the render configuration
func (rt *Raytracer) Config() RenderConfig {
	return rt.config
}

// SamplePixel averages RaysPerPixel rays through pixel (x, y) in camera
// coordinates, where y grows upwards. Each ray is jittered by two sampler
// draws, x first.
func (rt *Raytracer) SamplePixel(x, y int, sampler core.Sampler) core.Vec3 {
	camera := rt.scene.GetCamera()
	width, height := uint32(rt.config.Width), uint32(rt.config.Height)
	rays := rt.config.Sampling.RaysPerPixel
	if rays <= 0 {
		return core.Vec3{}
	}

	sum := core.Vec3{}
	for i := 0; i < rays; i++ {
		jitterX := sampler.Get1D()
		jitterY := sampler.Get1D()
		ray := camera.GetRay(float32(x)+jitterX, float32(y)+jitterY, width, height)
		sum = sum.Add(rt.integrator.Trace(rt.scene, ray, sampler))
	}
	return sum.Multiply(1 / float32(rays))
}

// RenderBounds renders the pixels of img inside bounds. Image row j is
// sampled from camera row Height-j-1 so that +Y points up in the image.
func (rt *Raytracer) RenderBounds(bounds image.Rectangle, img *Image, sampler core.Sampler) RenderStats {
	stats := RenderStats{Tiles: 1}

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		cameraY := rt.config.Height - j - 1
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			c := rt.SamplePixel(i, cameraY, sampler)
			if !c.IsFinite() {
				stats.NonFinite++
			}
			img.Set(i, j, c)
			stats.TotalPixels++
			stats.TotalSamples += rt.config.Sampling.RaysPerPixel
		}
	}

	return stats
}

// Render renders the whole image in parallel tiles.
// Output is identical for a given configuration regardless of worker count.
func (rt *Raytracer) Render(ctx context.Context) (*Image, RenderStats, error) {
	if rt.config.Width <= 0 || rt.config.Height <= 0 {
		return nil, RenderStats{}, fmt.Errorf("invalid image size %dx%d", rt.config.Width, rt.config.Height)
	}

	start := time.Now()
	img := NewImage(rt.config.Width, rt.config.Height)
	tiles := NewTileGrid(rt.config.Width, rt.config.Height, rt.config.TileSize, rt.config.Seed)

	pool := NewWorkerPool(rt, len(tiles), rt.config.NumWorkers)
	rt.logger.Printf("Rendering %dx%d at %d rays per pixel (%d tiles, %d workers)...\n",
		rt.config.Width, rt.config.Height, rt.config.Sampling.RaysPerPixel, len(tiles), pool.GetNumWorkers())

	pool.Start(ctx)
	for taskID, tile := range tiles {
		pool.SubmitTask(TileTask{
			Tile:   tile,
			TaskID: taskID,
			Image:  img,
		})
	}

	stats := RenderStats{Workers: pool.GetNumWorkers()}
	var firstErr error
	for i := 0; i < len(tiles); i++ {
		result, ok := pool.GetResult()
		if !ok {
			firstErr = fmt.Errorf("worker pool closed unexpectedly")
			break
		}
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
			}
			continue
		}
		stats.add(result.Stats)
	}
	pool.Stop()

	stats.Duration = time.Since(start)
	if firstErr != nil {
		rt.logger.Printf("Rendering stopped after %d of %d tiles: %v\n", stats.Tiles, len(tiles), firstErr)
		return nil, stats, fmt.Errorf("render cancelled: %w", firstErr)
	}

	if stats.NonFinite > 0 {
		rt.logger.Printf("Warning: %d pixels have non-finite values\n", stats.NonFinite)
	}
	rt.logger.Printf("Rendered %d pixels (%d samples) in %v\n", stats.TotalPixels, stats.TotalSamples, stats.Duration)

	return img, stats, nil
}
