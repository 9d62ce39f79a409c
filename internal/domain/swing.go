package domain

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

// Swing returns the variability index of temps: the centroid of its
// magnitude spectrum in cycles per sample. With nrDays > 1 the sequence is
// first cut to a multiple of nrDays and each block replaced by its mean, so
// the index reads in cycles per block. The result is undefined only when no
// sample remains; an all-zero spectrum has nothing off DC and yields 0.
func Swing(temps []float64, nrDays int) Value {
	seq := BlockMeans(temps, nrDays)
	if len(seq) == 0 {
		return None()
	}

	fft := fourier.NewFFT(len(seq))
	coeffs := fft.Coefficients(nil, seq)

	freqs := make([]float64, len(coeffs))
	mags := make([]float64, len(coeffs))
	var energy float64
	for i, c := range coeffs {
		freqs[i] = fft.Freq(i)
		mags[i] = cmplx.Abs(c)
		energy += mags[i]
	}
	if energy == 0 {
		return Some(0)
	}
	return Some(stat.Mean(freqs, mags))
}

// BlockMeans averages consecutive blocks of size n, dropping the incomplete
// tail. n <= 1 returns a copy of values.
func BlockMeans(values []float64, n int) []float64 {
	if n <= 1 {
		return append([]float64(nil), values...)
	}
	blocks := len(values) / n
	out := make([]float64, blocks)
	for b := range out {
		out[b] = stat.Mean(values[b*n:(b+1)*n], nil)
	}
	return out
}
