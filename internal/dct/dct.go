package dct

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// DCT is a type-II / type-III cosine transform pair over sequences of one length.
//
// Forward computes X_k = sqrt(2/N) * Σ x_n cos(π(2n+1)k / 2N) and Inverse computes
// x_n = sqrt(2/N) * (X_0/2 + Σ_{k≥1} X_k cos(π(2n+1)k / 2N)), so Inverse(Forward(x)) == x.
//
// Lengths with few small prime factors use a quarter wave plan. Others go
// through a chirp-z convolution.
//
// A DCT holds scratch space and must not be used by two goroutines at once.
type DCT struct {
	n     int
	norm  float64
	fft   *fourier.QuarterWaveFFT
	chirp *chirp
}

// New returns a DCT for sequences of length n.
// It panics unless Supported(n).
func New(n int) *DCT {
	if n < 1 {
		panic("dct: length must be positive")
	}
	dct := &DCT{
		n:    n,
		norm: math.Sqrt(2.0 / float64(n)),
	}
	if quarterWave(n) {
		dct.fft = fourier.NewQuarterWaveFFT(n)
	} else {
		dct.chirp = newChirp(n)
	}
	return dct
}

// Len returns the sequence length.
func (dct *DCT) Len() int { return dct.n }

// Forward replaces data with its scaled type-II coefficients.
func (dct *DCT) Forward(data []float64) {
	if dct.chirp != nil {
		dct.chirp.cosForward(data)
		floats.Scale(dct.norm, data)
		return
	}
	// CosSequence is the quarter wave backward pass: 4 × unnormalized DCT-II.
	dct.fft.CosSequence(data, data)
	floats.Scale(dct.norm/4, data)
}

// Inverse replaces coefficients with the scaled type-III sequence.
func (dct *DCT) Inverse(data []float64) {
	if dct.chirp != nil {
		dct.chirp.cosInverse(data)
		floats.Scale(dct.norm, data)
		return
	}
	// CosCoefficients is the quarter wave forward pass: 2 × DCT-III with halved DC term.
	dct.fft.CosCoefficients(data, data)
	floats.Scale(dct.norm/2, data)
}

// Exec runs Forward on a copy of data and returns the coefficients together with
// a function that writes their inverse back into data.
// The coefficients may be modified before the inverse is applied.
func (dct *DCT) Exec(data []float32) ([]float64, func()) {
	result := make([]float64, len(data))
	for i, v := range data {
		result[i] = float64(v)
	}
	dct.Forward(result)

	idct := func() {
		dct.Inverse(result)
		for i, v := range result {
			data[i] = float32(v)
		}
	}
	return result, idct
}
