package watermark

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/yyyoichi/watermark_lf/internal/dct"
)

var (
	ErrTooLarge    = errors.New("image too large to transform")
	ErrInvalidMark = errors.New("mark value must be finite")
)

// CheckSize reports ErrTooLarge for bounds whose area the transform cannot handle.
// Empty bounds are accepted.
func CheckSize(bounds image.Rectangle) error {
	area := bounds.Dx() * bounds.Dy()
	if area == 0 || dct.Supported(area) {
		return nil
	}
	return fmt.Errorf("%w: %dx%d", ErrTooLarge, bounds.Dx(), bounds.Dy())
}

// Embed adds mark to the luminance of src and returns the rebuilt image.
//
// The luminance plane, with the mark value added to every sample, is flattened
// into one sequence of width*height samples, taken through the type-II transform
// and back through the type-III transform, each scaled by sqrt(2/N). The
// chrominance planes are not touched.
//
// src is consumed: its luminance plane is overwritten. Pass a Copy to keep it.
// A zero-area source yields an empty image of the same size without transforming.
func Embed(ctx context.Context, src ImageSource, mark EmbedMark, workers int, dctCache *dct.Cache) (*image.RGBA, error) {
	if src.area == 0 {
		return image.NewRGBA(image.Rect(0, 0, src.width, src.height)), nil
	}
	if !dct.Supported(src.area) {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooLarge, src.width, src.height)
	}

	value := mark.Value()
	if v := float64(value); math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMark, value)
	}
	for i := range src.y {
		src.y[i] += value
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var dcos *dct.DCT
	if dctCache == nil {
		dcos = dct.New(src.area)
	} else {
		dcos = dctCache.Get(src.area)
		defer dctCache.Put(dcos)
	}
	_, idct := dcos.Exec(src.y)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	idct()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return src.build(workers), nil
}
