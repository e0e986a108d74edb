package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/df07/go-phong-raytracer/pkg/canvas"
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/world"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// RenderConfig contains configuration for parallel rendering
type RenderConfig struct {
	TileSize   int // Size of each square tile in pixels
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TileSize:   64,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// Raytracer renders a world through a camera by splitting the image into
// tiles and tracing them on a worker pool. The result is identical to
// Camera.Render.
type Raytracer struct {
	world  *world.World
	camera *Camera
	config RenderConfig
	tiles  []*Tile
	logger core.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(w *world.World, camera *Camera, config RenderConfig, logger core.Logger) *Raytracer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultRenderConfig().TileSize
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Raytracer{
		world:  w,
		camera: camera,
		config: config,
		tiles:  NewTileGrid(camera.HSize(), camera.VSize(), config.TileSize),
		logger: logger,
	}
}

// Tiles returns the tile grid covering the image
func (rt *Raytracer) Tiles() []*Tile {
	return rt.tiles
}

// Render traces every tile and returns the finished canvas. tileCallback, if
// not nil, is invoked on the calling goroutine as each tile completes.
// Cancelling ctx stops the render within one row per worker and returns ctx.Err().
func (rt *Raytracer) Render(ctx context.Context, tileCallback func(TileCompletionResult)) (*canvas.Canvas, RenderStats, error) {
	startTime := time.Now()
	jobID := uuid.New().String()

	target, err := canvas.New(rt.camera.HSize(), rt.camera.VSize())
	if err != nil {
		return nil, RenderStats{}, err
	}

	workerPool := NewWorkerPool(NewTileRenderer(rt.world, rt.camera), rt.config.NumWorkers, len(rt.tiles))
	workerPool.Start(ctx)
	defer workerPool.Stop()

	rt.logger.Printf("Render %s: %dx%d, %d tiles on %d workers...\n",
		jobID, rt.camera.HSize(), rt.camera.VSize(), len(rt.tiles), workerPool.GetNumWorkers())

	for i, tile := range rt.tiles {
		workerPool.SubmitTask(TileTask{
			Tile:   tile,
			TaskID: i,
			Target: target,
		})
	}

	// Wait for all tiles to complete and dispatch tile callbacks in thread-safe manner
	for i := 0; i < len(rt.tiles); i++ {
		result, ok := workerPool.GetResult()
		if !ok {
			return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil {
			rt.logger.Printf("Render %s cancelled: %v\n", jobID, result.Error)
			return nil, RenderStats{}, result.Error
		}

		if tileCallback != nil {
			tile := rt.tiles[result.TaskID]
			tileCallback(TileCompletionResult{
				TileX:      tile.Bounds.Min.X / rt.config.TileSize,
				TileY:      tile.Bounds.Min.Y / rt.config.TileSize,
				Bounds:     tile.Bounds,
				TileImage:  target.SubImage(tile.Bounds),
				TileNumber: i + 1,
				TotalTiles: len(rt.tiles),
			})
		}
	}

	stats := RenderStats{
		JobID:       jobID,
		TotalPixels: rt.camera.HSize() * rt.camera.VSize(),
		TotalTiles:  len(rt.tiles),
		NumWorkers:  workerPool.GetNumWorkers(),
		Duration:    time.Since(startTime),
	}
	rt.logger.Printf("Render %s completed in %v (%.0f pixels/s)\n",
		jobID, stats.Duration, stats.PixelsPerSecond())

	return target, stats, nil
}
