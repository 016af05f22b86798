package watermark

import (
	"image"
	"image/color"
	"sync"

	"github.com/yyyoichi/watermark_lf/internal/ycbcr"
)

// ImageSource is an image split into a luminance plane and two chrominance planes,
// all flattened row-major (index = y*width + x).
type ImageSource struct {
	width, height int
	area          int

	y      []float32
	cb, cr []uint8
}

// NewImageCore decomposes src, converting rows on up to workers goroutines.
func NewImageCore(src image.Image, workers int) ImageSource {
	var s ImageSource
	bounds := src.Bounds()
	s.width, s.height = bounds.Dx(), bounds.Dy()
	s.area = s.width * s.height
	s.y = make([]float32, s.area)
	s.cb = make([]uint8, s.area)
	s.cr = make([]uint8, s.area)

	rows(s.height, workers, func(y0, y1 int) {
		pixels := make([]color.Color, (y1-y0)*s.width)
		idx := 0
		for y := y0; y < y1; y++ {
			for x := range s.width {
				pixels[idx] = src.At(bounds.Min.X+x, bounds.Min.Y+y)
				idx++
			}
		}
		lo, hi := y0*s.width, y1*s.width
		ycbcr.ColorToYCbCrBatch(pixels, s.y[lo:hi], s.cb[lo:hi], s.cr[lo:hi])
	})
	return s
}

func (s ImageSource) Width() int  { return s.width }
func (s ImageSource) Height() int { return s.height }

// Copy returns a source with its own luminance plane.
// Chrominance is never written and stays shared.
func (s ImageSource) Copy() ImageSource {
	tmp := make([]float32, s.area)
	_ = copy(tmp, s.y)
	s.y = tmp
	return s
}

func (s ImageSource) build(workers int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	rows(s.height, workers, func(y0, y1 int) {
		pixels := make([]color.RGBA, (y1-y0)*s.width)
		lo, hi := y0*s.width, y1*s.width
		ycbcr.YCbCrToRGBABatch(s.y[lo:hi], s.cb[lo:hi], s.cr[lo:hi], pixels)
		idx := 0
		for y := y0; y < y1; y++ {
			for x := range s.width {
				dst.SetRGBA(x, y, pixels[idx])
				idx++
			}
		}
	})
	return dst
}

// rows splits [0, height) into contiguous ranges and runs fn on each in its own goroutine.
// Pixels carry no cross-pixel dependency, so any split gives the same result.
func rows(height, workers int, fn func(y0, y1 int)) {
	if height == 0 {
		return
	}
	workers = max(1, min(workers, height))
	if workers == 1 {
		fn(0, height)
		return
	}
	step := (height + workers - 1) / workers
	var wg sync.WaitGroup
	for y0 := 0; y0 < height; y0 += step {
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			fn(y0, y1)
		}(y0, min(y0+step, height))
	}
	wg.Wait()
}
