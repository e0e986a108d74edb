package canvas

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fogleman/gg"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// maxPPMLineLength is the longest line WritePPM emits
const maxPPMLineLength = 70

// Canvas is a row-major buffer of linear colours. Distinct pixels may be
// written from different goroutines.
type Canvas struct {
	width, height int
	pixels        []core.Colour
}

// New creates a black canvas
func New(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}
	return &Canvas{
		width:  width,
		height: height,
		pixels: make([]core.Colour, width*height),
	}, nil
}

// Width returns the number of columns
func (c *Canvas) Width() int { return c.width }

// Height returns the number of rows
func (c *Canvas) Height() int { return c.height }

// At returns the colour at (row, col)
func (c *Canvas) At(row, col int) (core.Colour, error) {
	i, err := c.index(row, col)
	if err != nil {
		return core.Colour{}, err
	}
	return c.pixels[i], nil
}

// Set stores the colour at (row, col)
func (c *Canvas) Set(row, col int, colour core.Colour) error {
	i, err := c.index(row, col)
	if err != nil {
		return err
	}
	c.pixels[i] = colour
	return nil
}

// Fill sets every pixel to fn(row, col), one row at a time
func (c *Canvas) Fill(fn func(row, col int) core.Colour) {
	for row := 0; row < c.height; row++ {
		for col := 0; col < c.width; col++ {
			c.pixels[row*c.width+col] = fn(row, col)
		}
	}
}

func (c *Canvas) index(row, col int) (int, error) {
	if row < 0 || row >= c.height || col < 0 || col >= c.width {
		return 0, fmt.Errorf("pixel (%d, %d) on %dx%d canvas: %w", row, col, c.width, c.height, core.ErrIndexOutOfRange)
	}
	return row*c.width + col, nil
}

// Equal reports whether both canvases have the same size and bit-identical pixels
func (c *Canvas) Equal(other *Canvas) bool {
	if c.width != other.width || c.height != other.height {
		return false
	}
	for i := range c.pixels {
		if c.pixels[i] != other.pixels[i] {
			return false
		}
	}
	return true
}

// toByte clamps a linear component into [0, 1] and scales it to [0, 255]
func toByte(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}

// WritePPM writes the canvas as plain (P3) PPM. Each image row starts on a
// new line and no line exceeds 70 characters.
func (c *Canvas) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n255\n", c.width, c.height)

	var line strings.Builder
	flush := func() {
		if line.Len() > 0 {
			bw.WriteString(line.String())
			bw.WriteByte('\n')
			line.Reset()
		}
	}

	for row := 0; row < c.height; row++ {
		for col := 0; col < c.width; col++ {
			p := c.pixels[row*c.width+col]
			for _, v := range [3]float64{p.R, p.G, p.B} {
				token := strconv.Itoa(int(toByte(v)))
				if line.Len() > 0 && line.Len()+1+len(token) > maxPPMLineLength {
					flush()
				}
				if line.Len() > 0 {
					line.WriteByte(' ')
				}
				line.WriteString(token)
			}
		}
		flush()
	}
	return bw.Flush()
}

// ToRGBA converts the canvas to an 8-bit image, clamping each component
func (c *Canvas) ToRGBA() *image.RGBA {
	return c.SubImage(image.Rect(0, 0, c.width, c.height))
}

// SubImage converts the given pixel bounds (x = column, y = row) to an 8-bit
// image whose origin is the top-left of bounds.
func (c *Canvas) SubImage(bounds image.Rectangle) *image.RGBA {
	bounds = bounds.Intersect(image.Rect(0, 0, c.width, c.height))
	img := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			p := c.pixels[y*c.width+x]
			img.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, color.RGBA{
				R: toByte(p.R),
				G: toByte(p.G),
				B: toByte(p.B),
				A: 255,
			})
		}
	}
	return img
}

// EncodePNG writes the canvas as PNG
func (c *Canvas) EncodePNG(w io.Writer) error {
	return gg.NewContextForRGBA(c.ToRGBA()).EncodePNG(w)
}

// SavePNG writes the canvas to a PNG file
func (c *Canvas) SavePNG(path string) error {
	return gg.SavePNG(path, c.ToRGBA())
}

// SavePPM writes the canvas to a PPM file
func (c *Canvas) SavePPM(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := c.WritePPM(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Save writes the canvas in the format implied by the file extension
func (c *Canvas) Save(path string) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ppm":
		return c.SavePPM(path)
	case ".png":
		return c.SavePNG(path)
	default:
		return fmt.Errorf("unsupported output format %q (want .ppm or .png)", ext)
	}
}
