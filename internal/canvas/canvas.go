// Package canvas holds the dense pixel buffer a render writes into and
// converts it to forms external collaborators (PNG encoders, window
// blitters) can consume.
package canvas

import (
	"image"
	"image/color"

	"github.com/virefract/tracer/internal/geom"
)

type Canvas struct {
	Width, Height int
	pixels        []geom.Color
}

func New(width, height int) *Canvas {
	return &Canvas{
		Width:  width,
		Height: height,
		pixels: make([]geom.Color, width*height),
	}
}

func (c *Canvas) index(x, y int) int {
	return y*c.Width + x
}

func (c *Canvas) Set(x, y int, col geom.Color) {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return
	}
	c.pixels[c.index(x, y)] = col
}

func (c *Canvas) At(x, y int) geom.Color {
	return c.pixels[c.index(x, y)]
}

// Image converts the canvas to image.RGBA, clamping and truncating
// each component via geom.Color.Byte.
func (c *Canvas) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			r, g, b := c.At(x, y).Byte()
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

// PackedRGB888 returns a row-major slice of 0x00RRGGBB words, the
// format a pixel-to-window blitter consumes directly without going
// through image.Image.
func (c *Canvas) PackedRGB888() []uint32 {
	out := make([]uint32, len(c.pixels))
	for i, p := range c.pixels {
		r, g, b := p.Byte()
		out[i] = uint32(r)<<16 | uint32(g)<<8 | uint32(b)
	}
	return out
}
