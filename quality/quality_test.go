package quality

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filled(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestMSE(t *testing.T) {
	test := []struct {
		name     string
		a, b     image.Image
		expected float64
	}{
		{"identical", filled(3, 2, color.RGBA{10, 20, 30, 255}), filled(3, 2, color.RGBA{10, 20, 30, 255}), 0},
		{"one_channel", filled(2, 2, color.RGBA{10, 20, 30, 255}), filled(2, 2, color.RGBA{13, 20, 30, 255}), 3},
		{"all_channels", filled(4, 1, color.RGBA{0, 0, 0, 255}), filled(4, 1, color.RGBA{2, 2, 2, 255}), 4},
		{"empty", image.NewRGBA(image.Rect(0, 0, 0, 0)), image.NewRGBA(image.Rect(0, 0, 0, 0)), 0},
		{"alpha_ignored", filled(1, 1, color.RGBA{200, 100, 50, 255}), &image.NRGBA{Pix: []uint8{200, 100, 50, 128}, Stride: 4, Rect: image.Rect(0, 0, 1, 1)}, 0},
		{"other_model", filled(1, 1, color.RGBA{77, 77, 77, 255}), &image.Gray{Pix: []uint8{80}, Stride: 1, Rect: image.Rect(0, 0, 1, 1)}, 9},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MSE(tt.a, tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-12)
		})
	}
}

func TestPSNR(t *testing.T) {
	a := filled(8, 8, color.RGBA{100, 100, 100, 255})

	got, err := PSNR(a, filled(8, 8, color.RGBA{100, 100, 100, 255}))
	require.NoError(t, err)
	assert.True(t, math.IsInf(got, 1))

	// MSE of 25 over every channel.
	got, err = PSNR(a, filled(8, 8, color.RGBA{105, 105, 105, 255}))
	require.NoError(t, err)
	assert.InDelta(t, 10*math.Log10(255*255/25.0), got, 1e-9)
	assert.InDelta(t, 34.15, got, 0.01)
}

func TestDimensionMismatch(t *testing.T) {
	a := filled(4, 4, color.RGBA{A: 255})
	for _, b := range []image.Image{
		filled(4, 5, color.RGBA{A: 255}),
		filled(5, 4, color.RGBA{A: 255}),
		image.NewRGBA(image.Rect(0, 0, 0, 0)),
	} {
		_, err := MSE(a, b)
		assert.ErrorIs(t, err, ErrDimensionMismatch)
		_, err = PSNR(a, b)
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	}
}

func TestOffsetBounds(t *testing.T) {
	a := image.NewRGBA(image.Rect(5, 5, 7, 6))
	a.SetRGBA(5, 5, color.RGBA{R: 10, A: 255})
	b := image.NewRGBA(image.Rect(0, 0, 2, 1))
	b.SetRGBA(0, 0, color.RGBA{R: 10, A: 255})
	got, err := MSE(a, b)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}
