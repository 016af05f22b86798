package ycbcr

import (
	"image/color"
	"math"
)

// Forward coefficients are evaluated in float64, inverse coefficients in float32.
// The explicit float conversions below round every product on its own so the
// compiler cannot fuse them into multiply-adds.

const (
	yr  = 0.299
	yg  = 0.587
	yb  = 0.114
	cbr = -0.169
	cbg = -0.331
	cbb = 0.5
	crr = 0.5
	crg = -0.419
	crb = -0.081

	offset = 128.0
)

const (
	rcr = 1.402
	gcb = 0.34414
	gcr = 0.71414
	bcb = 1.772
)

// RGBToYCbCr converts an 8-bit RGB triple to 8-bit Y, Cb, Cr.
func RGBToYCbCr(r, g, b uint8) (y, cb, cr uint8) {
	rf, gf, bf := float64(r), float64(g), float64(b)

	yVal := float64(yr*rf) + float64(yg*gf) + float64(yb*bf)
	cbVal := float64(cbr*rf) + float64(cbg*gf) + float64(cbb*bf) + offset
	crVal := float64(crr*rf) + float64(crg*gf) + float64(crb*bf) + offset

	return clip8(math.Round(yVal)), clip8(math.Round(cbVal)), clip8(math.Round(crVal))
}

// YCbCrToRGB converts a luminance sample and a chrominance pair back to 8-bit RGB.
// y is a float so that values moved by the watermark keep their fraction until here.
func YCbCrToRGB(y, cb, cr float32) (r, g, b uint8) {
	cbDelta := float32(cb - offset)
	crDelta := float32(cr - offset)

	rVal := y + float32(rcr*crDelta)
	gVal := float32(y-float32(gcb*cbDelta)) - float32(gcr*crDelta)
	bVal := y + float32(bcb*cbDelta)

	return clip8(math.Round(float64(rVal))), clip8(math.Round(float64(gVal))), clip8(math.Round(float64(bVal)))
}

// ColorToYCbCrBatch decomposes pixels into a float luminance plane and two chrominance planes.
// Alpha is discarded: the straight (non-premultiplied) RGB is converted.
func ColorToYCbCrBatch(pixels []color.Color, y []float32, cb, cr []uint8) {
	for i, pixel := range pixels {
		c := color.NRGBAModel.Convert(pixel).(color.NRGBA)
		yy, u, v := RGBToYCbCr(c.R, c.G, c.B)
		y[i] = float32(yy)
		cb[i] = u
		cr[i] = v
	}
}

// YCbCrToRGBABatch rebuilds opaque pixels from the planes.
func YCbCrToRGBABatch(y []float32, cb, cr []uint8, pixels []color.RGBA) {
	for i := range pixels {
		r, g, b := YCbCrToRGB(y[i], float32(cb[i]), float32(cr[i]))
		pixels[i] = color.RGBA{R: r, G: g, B: b, A: 0xff}
	}
}

// clip8 narrows a rounded value to a byte, saturating at both ends.
// NaN maps to 0.
func clip8(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
