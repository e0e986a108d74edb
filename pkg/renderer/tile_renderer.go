package renderer

import (
	"context"
	"image"

	"github.com/df07/go-phong-raytracer/pkg/canvas"
	"github.com/df07/go-phong-raytracer/pkg/world"
)

// TileRenderer renders rectangular regions of the image
type TileRenderer struct {
	world  *world.World
	camera *Camera
}

// NewTileRenderer creates a tile renderer for the given world and camera
func NewTileRenderer(w *world.World, camera *Camera) *TileRenderer {
	return &TileRenderer{
		world:  w,
		camera: camera,
	}
}

// RenderTileBounds renders the pixels inside bounds (x = column, y = row) into
// target. ctx is checked once per row; on cancellation the tile is left
// partially rendered and ctx.Err() is returned.
func (tr *TileRenderer) RenderTileBounds(ctx context.Context, bounds image.Rectangle, target *canvas.Canvas) error {
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ray := tr.camera.RayForPixel(x, y)
			if err := target.Set(y, x, tr.world.ColorAt(ray)); err != nil {
				return err
			}
		}
	}
	return nil
}
