package domain

import (
	"strings"

	"gonum.org/v1/gonum/dsp/window"
	"gonum.org/v1/gonum/floats"
)

// WindowShape selects the smoothing kernel.
type WindowShape int

const (
	WindowFlat WindowShape = iota
	WindowHanning
	WindowHamming
	WindowBartlett
	WindowBlackman
)

var windowShapeNames = map[WindowShape]string{
	WindowFlat:     "flat",
	WindowHanning:  "hanning",
	WindowHamming:  "hamming",
	WindowBartlett: "bartlett",
	WindowBlackman: "blackman",
}

func (s WindowShape) String() string {
	if n, ok := windowShapeNames[s]; ok {
		return n
	}
	return "unknown"
}

// ParseWindowShape maps a kernel name to its shape.
func ParseWindowShape(name string) (WindowShape, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for s, sn := range windowShapeNames {
		if sn == n {
			return s, nil
		}
	}
	return 0, validationErrorf("window shape", "%q is not one of flat, hanning, hamming, bartlett, blackman", name)
}

// Kernel returns the un-normalized weights of the shape for n taps. Tapered
// shapes use their symmetric form, so both end weights are equal.
func (s WindowShape) Kernel(n int) ([]float64, error) {
	if n < 1 {
		return nil, validationErrorf("window length", "must be positive, got %d", n)
	}
	ones := make([]float64, n)
	for i := range ones {
		ones[i] = 1
	}
	if n == 1 {
		return ones, nil
	}
	switch s {
	case WindowFlat:
		return ones, nil
	case WindowHanning:
		return window.Hann(ones), nil
	case WindowHamming:
		return window.Hamming(ones), nil
	case WindowBartlett:
		return window.Triangular(ones), nil
	case WindowBlackman:
		return window.Blackman(ones), nil
	default:
		return nil, validationErrorf("window shape", "unknown shape %d", int(s))
	}
}

// Smooth applies a moving window of windowLen taps to x and returns a slice of
// the same length.
//
// The input is mirrored around both end points (w-1 samples each side, end
// points excluded), convolved with the normalized kernel keeping only full
// overlaps, and trimmed back to len(x) samples centred on the input. A window
// shorter than 3 returns a copy of x. x must hold at least windowLen values.
func Smooth(x []float64, windowLen int, shape WindowShape) ([]float64, error) {
	if len(x) < windowLen {
		return nil, validationErrorf("input", "length %d is shorter than window length %d", len(x), windowLen)
	}
	if windowLen < 3 {
		return append([]float64(nil), x...), nil
	}

	kernel, err := shape.Kernel(windowLen)
	if err != nil {
		return nil, err
	}
	total := floats.Sum(kernel)
	if total <= 0 {
		return nil, validationErrorf("window shape", "%s kernel of length %d sums to %g", shape, windowLen, total)
	}
	// Reverse while normalizing so convolution is a plain dot product.
	rev := make([]float64, windowLen)
	for i, k := range kernel {
		rev[windowLen-1-i] = k / total
	}

	padded := reflectPad(x, windowLen)
	full := make([]float64, len(padded)-windowLen+1)
	for i := range full {
		full[i] = floats.Dot(rev, padded[i:i+windowLen])
	}

	left := (windowLen - 1) / 2
	right := (windowLen - 1) - left
	return full[left : len(full)-right], nil
}

// reflectPad returns x[w-1..1] + x + x[n-2..n-w].
func reflectPad(x []float64, w int) []float64 {
	n := len(x)
	out := make([]float64, 0, n+2*(w-1))
	for i := w - 1; i >= 1; i-- {
		out = append(out, x[i])
	}
	out = append(out, x...)
	for i := n - 2; i >= n-w; i-- {
		out = append(out, x[i])
	}
	return out
}
