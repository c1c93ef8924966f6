package audio

import (
	"math"
	"math/cmplx"
)

// hannWindow returns an n-point Hann window.
func hannWindow(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return w
}

// fft computes an in-order radix-2 FFT. len(data) must be a power of two.
func fft(data []complex128) []complex128 {
	n := len(data)
	if n <= 1 {
		out := make([]complex128, n)
		copy(out, data)
		return out
	}

	bits := 0
	for tmp := n; tmp > 1; tmp >>= 1 {
		bits++
	}

	result := make([]complex128, n)
	for i := 0; i < n; i++ {
		result[bitReverse(i, bits)] = data[i]
	}

	for size := 2; size <= n; size *= 2 {
		halfSize := size / 2
		wBase := -2.0 * math.Pi / float64(size)
		for start := 0; start < n; start += size {
			for i := 0; i < halfSize; i++ {
				w := cmplx.Rect(1, wBase*float64(i))
				t := w * result[start+i+halfSize]
				result[start+i+halfSize] = result[start+i] - t
				result[start+i] = result[start+i] + t
			}
		}
	}
	return result
}

func bitReverse(x, bits int) int {
	result := 0
	for i := 0; i < bits; i++ {
		result = (result << 1) | (x & 1)
		x >>= 1
	}
	return result
}
