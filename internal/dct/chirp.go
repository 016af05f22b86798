package dct

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// fftpack stores at most 13 factors per plan and runs one pass per factor.
const maxFactors = 13

// maxRadix is the largest prime factor left to the quarter wave plan.
// Each pass over a prime radix p costs O(p) per sample.
const maxRadix = 64

var (
	realOrder  = [4]int{4, 2, 3, 5}
	cmplxOrder = [4]int{3, 4, 2, 5}
)

// factors reports how fftpack splits n: the number of passes and the largest radix.
func factors(n int, order [4]int) (count, largest int) {
	nl := n
	for j, ntry := 0, 0; nl > 1; j++ {
		if j < len(order) {
			ntry = order[j]
		} else {
			ntry += 2
		}
		for nl%ntry == 0 {
			nl /= ntry
			count++
			largest = max(largest, ntry)
		}
		// 2 and 3 are gone once j >= 2, so what remains is prime.
		if j >= 2 && nl > 1 && ntry*ntry > nl {
			count++
			largest = max(largest, nl)
			break
		}
	}
	return count, largest
}

func quarterWave(n int) bool {
	count, largest := factors(n, realOrder)
	return count <= maxFactors && largest <= maxRadix
}

// convLen returns the smallest 5-smooth length >= size that fftpack accepts, or -1.
func convLen(size int) int {
	best := -1
	for p2 := 1; ; p2 *= 2 {
		for p3 := p2; ; p3 *= 3 {
			for m := p3; ; m *= 5 {
				if m < size {
					continue
				}
				if count, _ := factors(m, cmplxOrder); count <= maxFactors && (best < 0 || m < best) {
					best = m
				}
				break
			}
			if p3 >= size {
				break
			}
		}
		if p2 >= size {
			break
		}
	}
	return best
}

// Supported reports whether New accepts length n.
func Supported(n int) bool {
	return n >= 1 && (quarterWave(n) || convLen(2*n-1) > 0)
}

// chirp computes cosine transforms of any length through a DFT evaluated as a
// chirp-z convolution over a 5-smooth length.
type chirp struct {
	n       int
	w       []complex128 // exp(iπm²/n)
	twiddle []complex128 // exp(-iπk/2n)
	kernel  []complex128
	fft     *fourier.CmplxFFT
	seq     []complex128
	buf     []complex128
}

func newChirp(n int) *chirp {
	m := convLen(2*n - 1)
	if m < 0 {
		panic("dct: length too large")
	}
	c := &chirp{
		n:       n,
		w:       make([]complex128, n),
		twiddle: make([]complex128, n),
		kernel:  make([]complex128, m),
		fft:     fourier.NewCmplxFFT(m),
		seq:     make([]complex128, n),
		buf:     make([]complex128, m),
	}
	for i := range n {
		// i² mod 2n keeps the phase argument small.
		k := (i * i) % (2 * n)
		c.w[i] = cmplx.Rect(1, math.Pi*float64(k)/float64(n))
		c.twiddle[i] = cmplx.Rect(1, -math.Pi*float64(i)/float64(2*n))
	}
	c.kernel[0] = c.w[0]
	for i := 1; i < n; i++ {
		c.kernel[i] = c.w[i]
		c.kernel[m-i] = c.w[i]
	}
	c.fft.Coefficients(c.kernel, c.kernel)
	return c
}

// dft replaces data with its unnormalized forward transform.
func (c *chirp) dft(data []complex128) {
	buf := c.buf
	for i, v := range data {
		buf[i] = v * cmplx.Conj(c.w[i])
	}
	clear(buf[c.n:])
	c.fft.Coefficients(buf, buf)
	for i := range buf {
		buf[i] *= c.kernel[i]
	}
	c.fft.Sequence(buf, buf)
	scale := complex(1/float64(len(buf)), 0)
	for k := range data {
		data[k] = buf[k] * cmplx.Conj(c.w[k]) * scale
	}
}

// cosForward computes X_k = Σ x_j cos(π(2j+1)k / 2n) in place.
func (c *chirp) cosForward(data []float64) {
	n, v := c.n, c.seq
	for j := 0; 2*j < n; j++ {
		v[j] = complex(data[2*j], 0)
	}
	for j := 0; 2*j+1 < n; j++ {
		v[n-1-j] = complex(data[2*j+1], 0)
	}
	c.dft(v)
	for k := range n {
		data[k] = real(v[k] * c.twiddle[k])
	}
}

// cosInverse computes x_j = X_0/2 + Σ_{k≥1} X_k cos(π(2j+1)k / 2n) in place.
func (c *chirp) cosInverse(data []float64) {
	n, v := c.n, c.seq
	v[0] = complex(data[0], 0)
	for k := 1; k < n; k++ {
		// conjugated so that dft runs the backward transform
		v[k] = cmplx.Conj(complex(data[k], -data[n-k]) * cmplx.Conj(c.twiddle[k]))
	}
	c.dft(v)
	for j := 0; 2*j < n; j++ {
		data[2*j] = real(v[j]) / 2
	}
	for j := 0; 2*j+1 < n; j++ {
		data[2*j+1] = real(v[n-1-j]) / 2
	}
}
