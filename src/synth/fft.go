package synth

import (
	"errors"
	"math"
	"math/cmplx"
)

// ----- Spectrum ----- //

// FFT is a radix-2 transform with precomputed twiddle and bit-reversal
// tables. It backs Spectrum, the analysis surface tests and visualizers
// use to inspect rendered audio; nothing on the render path calls it.
type FFT struct {
	bitReverseTable []int
	wTable          []complex128
	inverse         bool
}

// NewFFT precomputes tables for transforms of the given length, which must
// be a power of two.
func NewFFT(length int, inverse bool) (*FFT, error) {
	if length < 2 || length&(length-1) != 0 {
		return nil, errors.New("synth: fft length must be a power of two")
	}
	return &FFT{
		bitReverseTable: makeBitReverseTable(length),
		wTable:          makeWTable(length),
		inverse:         inverse,
	}, nil
}

func makeBitReverseTable(n int) []int {
	array := make([]int, n)
	for i := 0; i < n; i++ {
		array[i] = bitReverse(i, n)
	}
	return array
}

func bitReverse(k, n int) int {
	m := 0
	for ; n > 1; n = n >> 1 {
		m = m<<1 + k&1
		k = k >> 1
	}
	return m
}

func makeWTable(n int) []complex128 {
	array := make([]complex128, n)
	w := -2.0 * math.Pi / float64(n)
	for i := 0; i < n; i++ {
		array[i] = cmplx.Exp(complex(0, w*float64(i)))
	}
	return array
}

// Calc transforms x in place. len(x) must match the constructed length.
func (fft *FFT) Calc(x []complex128) error {
	n := len(x)
	if n != len(fft.bitReverseTable) {
		return errors.New("synth: fft input length mismatch")
	}
	for i := 0; i < n; i++ {
		rev := fft.bitReverseTable[i]
		if i < rev {
			x[i], x[rev] = x[rev], x[i]
		}
	}
	for m := 1; m < n; m = m << 1 {
		step := m << 1
		for k := 0; k < m; k++ {
			idx := n / step * k
			if fft.inverse {
				idx = (n - idx) % n
			}
			w := fft.wTable[idx]
			for i := k; i < n; i += step {
				j := i + m
				tmp := x[j] * w
				x[j] = x[i] - tmp
				x[i] = x[i] + tmp
			}
		}
	}
	if fft.inverse {
		for i := 0; i < n; i++ {
			x[i] /= complex(float64(n), 0)
		}
	}
	return nil
}

// Spectrum returns the magnitude spectrum of samples after a Hanning
// window: len(samples)/2 bins, bin i centered at i*sampleRate/len(samples)
// Hz. len(samples) must be a power of two.
func Spectrum(samples []float64) ([]float64, error) {
	fft, err := NewFFT(len(samples), false)
	if err != nil {
		return nil, err
	}
	n := len(samples)
	cx := make([]complex128, n)
	for i := 0; i < n; i++ {
		w := 0.5 - 0.5*math.Cos(2.0*math.Pi*float64(i)/float64(n))
		cx[i] = complex(samples[i]*w, 0)
	}
	if err := fft.Calc(cx); err != nil {
		return nil, err
	}
	mags := make([]float64, n/2)
	for i := range mags {
		mags[i] = cmplx.Abs(cx[i])
	}
	return mags, nil
}

// PeakBin returns the index of the largest magnitude bin, skipping DC.
func PeakBin(mags []float64) int {
	best := 1
	for i := 2; i < len(mags); i++ {
		if mags[i] > mags[best] {
			best = i
		}
	}
	return best
}

// HanningWindow applies a Hann window in place.
func HanningWindow(x []float64) {
	n := len(x)
	for i := 0; i < n; i++ {
		w := 0.5 - 0.5*math.Cos(2.0*math.Pi*float64(i)/float64(n))
		x[i] = x[i] * w
	}
}
