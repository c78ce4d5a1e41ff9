// Package camera derives world-space rays from pixel coordinates and
// drives the render loop, serially or across a band-parallel worker
// pool.
package camera

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/virefract/tracer/internal/canvas"
	"github.com/virefract/tracer/internal/geom"
	"github.com/virefract/tracer/internal/world"
)

// BandSize is the number of canvas rows handed to a single render
// worker in one unit of work.
const BandSize = 10

type Camera struct {
	HSize, VSize int
	FieldOfView  float64
	Transform    geom.Cached

	// BandSize and Workers override RenderParallel's default work
	// partitioning (package BandSize, runtime.GOMAXPROCS(0) workers)
	// when set to a positive value; zero keeps the defaults, so the
	// zero-value Camera built directly by New behaves exactly as
	// before.
	BandSize int
	Workers  int

	// Depth overrides the recursion budget colorAt hands to
	// World.ColorAt when set to a positive value; zero keeps
	// world.MaxDepth, so the zero-value Camera built directly by New
	// behaves exactly as before.
	Depth int

	halfWidth, halfHeight float64
	pixelSize             float64
}

func New(hsize, vsize int, fov float64) *Camera {
	c := &Camera{
		HSize:       hsize,
		VSize:       vsize,
		FieldOfView: fov,
		Transform:   geom.NewCached(geom.Identity),
	}
	c.calculateRatios()
	return c
}

func (c *Camera) calculateRatios() {
	halfView := math.Tan(c.FieldOfView / 2)
	aspect := float64(c.HSize) / float64(c.VSize)
	if aspect >= 1 {
		c.halfWidth = halfView
		c.halfHeight = halfView / aspect
	} else {
		c.halfWidth = halfView * aspect
		c.halfHeight = halfView
	}
	c.pixelSize = (c.halfWidth * 2) / float64(c.HSize)
}

func (c *Camera) PixelSize() float64 {
	return c.pixelSize
}

func (c *Camera) SetTransform(m geom.Matrix) {
	c.Transform = geom.NewCached(m)
}

// RayForPixel derives the world-space ray passing through the center
// of pixel (px, py).
func (c *Camera) RayForPixel(px, py int) (geom.Ray, error) {
	xoffset := (float64(px) + 0.5) * c.pixelSize
	yoffset := (float64(py) + 0.5) * c.pixelSize

	worldX := c.halfWidth - xoffset
	worldY := c.halfHeight - yoffset

	inv, err := c.Transform.Inverse()
	if err != nil {
		return geom.Ray{}, err
	}

	pixel := inv.MulTuple(geom.Point(worldX, worldY, -1))
	origin := inv.MulTuple(geom.Point(0, 0, 0))
	direction := pixel.Sub(origin).Normalize()

	return geom.NewRay(origin, direction), nil
}

func (c *Camera) colorAt(w *world.World, col, row int) (geom.Color, error) {
	depth := world.MaxDepth
	if c.Depth > 0 {
		depth = c.Depth
	}
	ray, err := c.RayForPixel(col, row)
	if err != nil {
		return geom.Color{}, fmt.Errorf("pixel (%d,%d): %w", col, row, err)
	}
	color, err := w.ColorAt(ray, depth)
	if err != nil {
		return geom.Color{}, fmt.Errorf("pixel (%d,%d): %w", col, row, err)
	}
	return color, nil
}

// Render walks every pixel serially, in row-major order.
func (c *Camera) Render(w *world.World) (*canvas.Canvas, error) {
	img := canvas.New(c.HSize, c.VSize)
	for y := 0; y < c.VSize; y++ {
		for x := 0; x < c.HSize; x++ {
			col, err := c.colorAt(w, x, y)
			if err != nil {
				return nil, err
			}
			img.Set(x, y, col)
		}
	}
	return img, nil
}

// RenderParallel partitions the canvas into BandSize-row bands and
// renders them across a worker pool bounded by GOMAXPROCS. Before any
// worker starts, it performs a serial warm-up pass that forces every
// object/pattern/camera inverse to be computed once — the concurrent
// workers below only ever read an already-populated cache, so no
// locking is needed on the per-pixel hot path.
func (c *Camera) RenderParallel(w *world.World) (*canvas.Canvas, error) {
	if err := w.WarmInverses(); err != nil {
		return nil, err
	}
	if err := c.Transform.Warm(); err != nil {
		return nil, err
	}

	img := canvas.New(c.HSize, c.VSize)

	bandSize := BandSize
	if c.BandSize > 0 {
		bandSize = c.BandSize
	}

	type band struct {
		startRow, endRow int
	}
	var bands []band
	for start := 0; start < c.VSize; start += bandSize {
		end := start + bandSize
		if end > c.VSize {
			end = c.VSize
		}
		bands = append(bands, band{startRow: start, endRow: end})
	}

	workers := runtime.GOMAXPROCS(0)
	if c.Workers > 0 {
		workers = c.Workers
	}
	if workers > len(bands) {
		workers = len(bands)
	}
	if workers < 1 {
		workers = 1
	}

	work := make(chan band)
	errs := make(chan error, workers)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for b := range work {
				for y := b.startRow; y < b.endRow; y++ {
					for x := 0; x < c.HSize; x++ {
						col, err := c.colorAt(w, x, y)
						if err != nil {
							select {
							case errs <- err:
							default:
							}
							continue
						}
						img.Set(x, y, col)
					}
				}
			}
		}()
	}

	for _, b := range bands {
		work <- b
	}
	close(work)
	wg.Wait()
	close(errs)

	if err, ok := <-errs; ok {
		return nil, err
	}
	return img, nil
}
