package renderer

import (
	"image"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	JobID       string        // Unique render job identifier
	TotalPixels int           // Total number of pixels rendered
	TotalTiles  int           // Number of tiles the image was split into
	NumWorkers  int           // Number of parallel workers used
	Duration    time.Duration // Wall time for the whole render
}

// PixelsPerSecond returns the render throughput
func (s RenderStats) PixelsPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalPixels) / s.Duration.Seconds()
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an image in [0, 1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixelCount := bounds.Dx() * bounds.Dy()
	if pixelCount == 0 {
		return 0
	}

	var total float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			total += 0.2126*float64(r)/0xffff + 0.7152*float64(g)/0xffff + 0.0722*float64(b)/0xffff
		}
	}
	return total / float64(pixelCount)
}
