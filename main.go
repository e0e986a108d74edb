package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	configPath string
	cfg        scene.Config
	set        map[string]bool // flags given explicitly
}

func parseFlags(args []string) (*options, bool, error) {
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)

	opts := &options{set: make(map[string]bool)}
	fs.StringVar(&opts.configPath, "config", "", "JSON render config; flags override its values")
	fs.StringVar(&opts.cfg.Scene, "scene", "default", "Built-in scene name or script:<name>")
	fs.StringVar(&opts.cfg.Script, "script", "", "Scene script file (.zygo)")
	fs.IntVar(&opts.cfg.Width, "width", scene.DefaultWidth, "Image width in pixels")
	fs.IntVar(&opts.cfg.Height, "height", scene.DefaultHeight, "Image height in pixels")
	fs.IntVar(&opts.cfg.Workers, "workers", 0, "Number of render workers (0 = NumCPU)")
	fs.IntVar(&opts.cfg.TileSize, "tile", renderer.DefaultRenderConfig().TileSize, "Tile size in pixels")
	fs.StringVar(&opts.cfg.Output, "output", "", "Output file (.ppm or .png)")
	help := fs.Bool("help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return nil, false, err
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	if *help {
		fmt.Println("Phong Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		fs.SetOutput(os.Stdout)
		fs.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		for _, name := range scene.BuiltinNames() {
			fmt.Printf("  %s\n", name)
		}
		fmt.Println()
		fmt.Println("Output defaults to output/<scene>/render_<timestamp>.png")
		return opts, true, nil
	}
	return opts, false, nil
}

// resolveConfig merges the config file, if any, with explicitly set flags
func resolveConfig(opts *options) (*scene.Config, error) {
	if opts.configPath == "" {
		cfg := opts.cfg
		return &cfg, nil
	}

	cfg, err := scene.LoadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.set["scene"] {
		cfg.Scene = opts.cfg.Scene
	}
	if opts.set["script"] {
		cfg.Script = opts.cfg.Script
	}
	if opts.set["width"] {
		cfg.Width = opts.cfg.Width
	}
	if opts.set["height"] {
		cfg.Height = opts.cfg.Height
	}
	if opts.set["workers"] {
		cfg.Workers = opts.cfg.Workers
	}
	if opts.set["tile"] {
		cfg.TileSize = opts.cfg.TileSize
	}
	if opts.set["output"] {
		cfg.Output = opts.cfg.Output
	}
	return cfg, nil
}

// outputPath returns cfg.Output or a timestamped file under output/<scene>/
func outputPath(cfg *scene.Config, sceneName string, now time.Time) string {
	if cfg.Output != "" {
		return cfg.Output
	}
	filename := fmt.Sprintf("render_%s.png", now.Format("20060102_150405"))
	return filepath.Join("output", sceneName, filename)
}

func run(args []string, logger core.Logger) error {
	opts, done, err := parseFlags(args)
	if err != nil || done {
		return err
	}

	cfg, err := resolveConfig(opts)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	s, err := cfg.Build(logger)
	if err != nil {
		return fmt.Errorf("building scene: %w", err)
	}
	logger.Printf("Using %s scene (%d shapes, %d lights)...\n", s.Name, len(s.World.Shapes()), len(s.World.Lights()))

	raytracer := renderer.NewRaytracer(s.World, s.Camera, cfg.RenderConfig(), logger)
	img, stats, err := raytracer.Render(context.Background(), nil)
	if err != nil {
		return fmt.Errorf("rendering: %w", err)
	}
	logger.Printf("Render %s: %d pixels in %v, average luminance %.3f\n",
		stats.JobID, stats.TotalPixels, stats.Duration, renderer.CalculateAverageLuminance(img.ToRGBA()))

	filename := outputPath(cfg, s.Name, time.Now())
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := img.Save(filename); err != nil {
		return fmt.Errorf("saving image: %w", err)
	}

	logger.Printf("Render saved as %s\n", filename)
	return nil
}

func main() {
	if err := run(os.Args[1:], renderer.NewDefaultLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
