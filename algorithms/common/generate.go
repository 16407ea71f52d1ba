package common

import (
	"math"
	"math/rand"
)

// Test-signal generators for periodicity analysis and unit tests

// Sinusoid generates n samples of a sine wave at the given frequency and
// amplitude for the given sample rate.
func Sinusoid(freq, amplitude float64, sampleRate, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return out
}

// Noise generates n samples of uniform white noise in [-level, level].
func Noise(level float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = level * (2*rand.Float64() - 1)
	}
	return out
}

// ZeroPadding returns a copy of sig extended with n trailing zeros.
func ZeroPadding(sig []float64, n int) []float64 {
	if n <= 0 {
		return sig
	}
	out := make([]float64, len(sig)+n)
	copy(out, sig)
	return out
}
