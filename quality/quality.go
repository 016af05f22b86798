// Package quality measures how far a watermarked image drifted from its original.
package quality

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"gonum.org/v1/gonum/floats"
)

// MaxValue is the peak sample value of 8-bit channels.
const MaxValue = 255.0

var ErrDimensionMismatch = errors.New("images must have the same dimensions")

// MSE returns the mean squared error over the R, G and B channels of two images.
// Both images are read as straight 8-bit RGB relative to their own bounds origin; alpha is ignored.
func MSE(a, b image.Image) (float64, error) {
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		return 0, fmt.Errorf("%w: %dx%d != %dx%d", ErrDimensionMismatch, ab.Dx(), ab.Dy(), bb.Dx(), bb.Dy())
	}
	n := ab.Dx() * ab.Dy() * 3
	if n == 0 {
		return 0, nil
	}
	return sumSquares(samples(a), samples(b)) / float64(n), nil
}

// PSNR returns the peak signal-to-noise ratio in dB between two images.
// Identical images give +Inf.
func PSNR(a, b image.Image) (float64, error) {
	mse, err := MSE(a, b)
	if err != nil {
		return 0, err
	}
	if mse == 0 {
		return math.Inf(1), nil
	}
	return 10 * math.Log10(MaxValue*MaxValue/mse), nil
}

func sumSquares(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return d * d
}

func samples(img image.Image) []float64 {
	bounds := img.Bounds()
	out := make([]float64, 0, bounds.Dx()*bounds.Dy()*3)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			out = append(out, float64(c.R), float64(c.G), float64(c.B))
		}
	}
	return out
}
