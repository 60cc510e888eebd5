package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/BlockOG/ray-tracing/pkg/core"
	"github.com/BlockOG/ray-tracing/pkg/renderer"
	"github.com/BlockOG/ray-tracing/pkg/scene"
)

// Config holds the command line options
type Config struct {
	SceneType  string
	PLYPath    string
	OutputPath string
	UseBVH     bool
	Render     renderer.RenderConfig
}

func main() {
	config, fs, help := parseFlags(os.Args[1:])
	if help {
		printHelp(fs)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, config, renderer.NewDefaultLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags parses command line arguments into a Config
func parseFlags(args []string) (Config, *flag.FlagSet, bool) {
	defaults := renderer.DefaultRenderConfig()
	fs := flag.NewFlagSet("raytracer", flag.ExitOnError)

	sceneType := fs.String("scene", "cornell", "Scene type: "+strings.Join(scene.Names(), ", "))
	plyPath := fs.String("ply", "", "PLY file for the mesh scene")
	width := fs.Int("width", defaults.Width, "Image width in pixels")
	height := fs.Int("height", defaults.Height, "Image height in pixels")
	samples := fs.Int("samples", defaults.Sampling.RaysPerPixel, "Rays per pixel")
	bounces := fs.Int("bounces", defaults.Sampling.MaxBounceCount, "Maximum bounces after the primary hit")
	workers := fs.Int("workers", defaults.NumWorkers, "Number of parallel workers (0 = auto-detect CPU count)")
	tileSize := fs.Int("tile", defaults.TileSize, "Tile size in pixels")
	seed := fs.Int64("seed", defaults.Seed, "Random seed")
	useBVH := fs.Bool("bvh", true, "Use a BVH instead of a linear scan")
	output := fs.String("out", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	help := fs.Bool("help", false, "Show help information")
	fs.Parse(args)

	return Config{
		SceneType:  *sceneType,
		PLYPath:    *plyPath,
		OutputPath: *output,
		UseBVH:     *useBVH,
		Render: renderer.RenderConfig{
			Width:      *width,
			Height:     *height,
			TileSize:   *tileSize,
			NumWorkers: *workers,
			Seed:       *seed,
			Sampling: renderer.SamplingConfig{
				RaysPerPixel:   *samples,
				MaxBounceCount: *bounces,
			},
		},
	}, fs, *help
}

func printHelp(fs *flag.FlagSet) {
	fmt.Println("Path Tracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	fs.SetOutput(os.Stdout)
	fs.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	fmt.Println("  cornell - Coloured box with a ceiling light and six spheres of rising smoothness")
	fmt.Println("  spheres - Spheres on a ground sphere under the sky")
	fmt.Println("  mesh    - A PLY mesh (-ply) standing in the Cornell box")
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png")
}

// run renders the configured scene and writes it as PNG
func run(ctx context.Context, config Config, logger core.Logger) error {
	selectedScene, err := createScene(config.SceneType, config.PLYPath)
	if err != nil {
		return err
	}
	selectedScene.Preprocess(config.UseBVH)
	logger.Printf("Using %s scene (%d primitives, bvh=%v)\n",
		config.SceneType, selectedScene.PrimitiveCount(), config.UseBVH)

	raytracer := renderer.NewRaytracer(selectedScene, config.Render, logger)
	img, stats, err := raytracer.Render(ctx)
	if err != nil {
		return err
	}
	logger.Printf("Samples per pixel: %.1f, %d workers, %d tiles\n",
		stats.AverageSamples(), stats.Workers, stats.Tiles)

	filename := config.OutputPath
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join("output", config.SceneType, fmt.Sprintf("render_%s.png", timestamp))
	}
	if err := savePNG(filename, img); err != nil {
		return err
	}

	logger.Printf("Render saved as %s\n", filename)
	return nil
}

// createScene resolves a scene name, loading the PLY file for the mesh scene
func createScene(sceneType, plyPath string) (*scene.Scene, error) {
	s, err := scene.NewByName(sceneType, plyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}
	return s, nil
}

// savePNG writes the image to filename, creating parent directories
func savePNG(filename string, img *renderer.Image) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}

	if err := png.Encode(file, img.ToRGBA()); err != nil {
		file.Close()
		return fmt.Errorf("error saving PNG: %w", err)
	}
	return file.Close()
}
