package stats

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// fftThreshold is the signal length above which the FFT-based
// autocorrelation path is used instead of direct dot products.
const fftThreshold = 1000

// ACF computes a normalized estimate of the autocorrelation function of sig
// by means of cross correlation. The result has the same length as sig, with
// acf[0] == 1 and acf[m] the correlation of the signal with itself shifted
// by m samples, normalized by the signal's total energy.
//
// Short signals use direct dot products; longer ones go through a
// zero-padded FFT (Wiener-Khinchin), which yields the same raw lag products.
// A zero-energy signal yields all zeros.
func ACF(sig []float64) []float64 {
	n := len(sig)
	if n == 0 {
		return []float64{}
	}

	if n > fftThreshold {
		return acfFFT(sig)
	}

	norm := 0.0
	for _, v := range sig {
		norm += v * v
	}

	out := make([]float64, n)
	if norm == 0 {
		return out
	}

	out[0] = 1
	for m := 1; m < n; m++ {
		s := 0.0
		for i := 0; i < n-m; i++ {
			s += sig[i] * sig[i+m]
		}
		out[m] = s / norm
	}

	return out
}

// acfFFT computes the raw lag products via the power spectrum and
// normalizes by lag zero.
func acfFFT(sig []float64) []float64 {
	n := len(sig)

	// Zero-pad to the next power of two past 2n to avoid circular overlap
	size := nextPowerOfTwo(2 * n)
	padded := make([]float64, size)
	copy(padded, sig)

	spectrum := fft.FFTReal(padded)
	power := make([]complex128, size)
	for i, c := range spectrum {
		mag := cmplx.Abs(c)
		power[i] = complex(mag*mag, 0)
	}

	lags := fft.IFFT(power)

	out := make([]float64, n)
	norm := real(lags[0])
	if norm == 0 {
		return out
	}
	for m := range out {
		out[m] = real(lags[m]) / norm
	}
	out[0] = 1

	return out
}

// ACFPearson computes a normalized estimate of the autocorrelation function
// of sig by means of the Pearson correlation coefficient between the signal
// and its lagged overlap. The result has length len(sig)-1 with out[0] == 1;
// lags whose overlap is degenerate (constant) are stored as 0.
func ACFPearson(sig []float64) []float64 {
	n := len(sig)
	if n < 2 {
		return []float64{}
	}

	out := make([]float64, n-1)
	out[0] = 1

	for m := 1; m < n-1; m++ {
		r := Correlation(sig[:n-m], sig[m:])
		if math.IsNaN(r) {
			r = 0
		}
		out[m] = r
	}

	return out
}

// nextPowerOfTwo finds the next power of 2 >= n
func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}

	power := 1
	for power < n {
		power <<= 1
	}
	return power
}
