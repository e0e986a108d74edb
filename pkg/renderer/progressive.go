package renderer

import (
	"context"
	"image"

	"github.com/df07/go-phong-raytracer/pkg/canvas"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTile creates a new tile with the specified bounds
func NewTile(id int, bounds image.Rectangle) *Tile {
	return &Tile{
		ID:     id,
		Bounds: bounds,
	}
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			// Calculate tile bounds
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1)))
			tileID++
		}
	}

	return tiles
}

// TileCompletionResult contains information about a completed tile for callbacks
type TileCompletionResult struct {
	TileX     int // Tile coordinates (not pixel coordinates)
	TileY     int
	Bounds    image.Rectangle // Pixel bounds of the tile
	TileImage *image.RGBA     // Image data for just this tile

	// Progress information
	TileNumber int // Tiles completed so far, including this one (1-based)
	TotalTiles int // Total number of tiles in the image
}

// RenderResult is the final outcome of a streamed render
type RenderResult struct {
	Canvas *canvas.Canvas
	Stats  RenderStats
}

// RenderOptions configures streamed rendering behavior
type RenderOptions struct {
	TileUpdates bool // Whether to generate tile completion events
}

// RenderProgressive renders with channel-based communication. The caller
// should read from the returned channels until they are closed. If
// options.TileUpdates is false, the tile channel is closed immediately.
func (rt *Raytracer) RenderProgressive(ctx context.Context, options RenderOptions) (<-chan RenderResult, <-chan TileCompletionResult, <-chan error) {
	resultChan := make(chan RenderResult, 1)
	tileChan := make(chan TileCompletionResult, 100) // Buffer for tiles
	errChan := make(chan error, 1)

	if !options.TileUpdates {
		close(tileChan)
	}

	go func() {
		defer close(resultChan)
		if options.TileUpdates {
			defer close(tileChan)
		}
		defer close(errChan)

		var tileCallback func(TileCompletionResult)
		if options.TileUpdates {
			tileCallback = func(result TileCompletionResult) {
				select {
				case tileChan <- result:
				case <-ctx.Done():
				}
			}
		}

		img, stats, err := rt.Render(ctx, tileCallback)
		if err != nil {
			errChan <- err
			return
		}

		select {
		case resultChan <- RenderResult{Canvas: img, Stats: stats}:
		case <-ctx.Done():
		}
	}()

	return resultChan, tileChan, errChan
}
