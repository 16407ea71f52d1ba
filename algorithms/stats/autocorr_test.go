package stats

import (
	"math"
	"testing"

	"github.com/RyanBlaney/correlogram/algorithms/common"
)

// acfDirect is the reference dot-product estimate, independent of the FFT
// path under test.
func acfDirect(sig []float64) []float64 {
	n := len(sig)
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

func TestACF_PeriodicSine(t *testing.T) {
	// Period of exactly 8 samples over 8 full cycles
	sig := common.Sinusoid(1000, 1.0, 8000, 64)

	acf := ACF(sig)

	if len(acf) != len(sig) {
		t.Fatalf("length: got %d, want %d", len(acf), len(sig))
	}
	if !almostEqual(acf[0], 1.0, tolerance) {
		t.Errorf("acf[0]: got %g, want 1.0", acf[0])
	}

	// At one full period the lag products cover 7 of 8 cycles, so the
	// normalized value is exactly 7/8.
	if !almostEqual(acf[8], 0.875, 1e-9) {
		t.Errorf("acf[8]: got %g, want 0.875", acf[8])
	}
}

func TestACF_ZeroSignal(t *testing.T) {
	acf := ACF(make([]float64, 16))
	for i, v := range acf {
		if v != 0 {
			t.Fatalf("acf[%d]: got %g, want 0", i, v)
		}
	}
}

func TestACF_Empty(t *testing.T) {
	if acf := ACF(nil); len(acf) != 0 {
		t.Errorf("got %d values for empty input", len(acf))
	}
}

func TestACF_FFTPathMatchesDirect(t *testing.T) {
	// Long enough to cross fftThreshold
	n := fftThreshold + 200
	sig := common.Sinusoid(440, 0.8, 8000, n)
	for i := range sig {
		// Break the pure periodicity so all lags carry information
		sig[i] += 0.1 * math.Cos(2*math.Pi*97*float64(i)/8000)
	}

	got := ACF(sig)
	want := acfDirect(sig)

	for m := 0; m < n; m += 37 {
		if !almostEqual(got[m], want[m], 1e-6) {
			t.Fatalf("lag %d: FFT path %g, direct %g", m, got[m], want[m])
		}
	}
}

func TestACFPearson_PeriodicSignal(t *testing.T) {
	sig := []float64{1, 2, 3, 4, 1, 2, 3, 4, 1, 2, 3, 4}

	acf := ACFPearson(sig)

	if len(acf) != len(sig)-1 {
		t.Fatalf("length: got %d, want %d", len(acf), len(sig)-1)
	}
	if !almostEqual(acf[0], 1.0, tolerance) {
		t.Errorf("acf[0]: got %g, want 1.0", acf[0])
	}
	if !almostEqual(acf[4], 1.0, 1e-9) {
		t.Errorf("acf[4]: got %g, want 1.0 (period-aligned)", acf[4])
	}
}

func TestACFPearson_ConstantSignal(t *testing.T) {
	sig := []float64{2, 2, 2, 2, 2, 2}

	acf := ACFPearson(sig)

	// Degenerate lags are stored as zero; lag 0 is 1 by definition
	if acf[0] != 1 {
		t.Errorf("acf[0]: got %g, want 1", acf[0])
	}
	for m := 1; m < len(acf); m++ {
		if acf[m] != 0 {
			t.Errorf("acf[%d]: got %g, want 0", m, acf[m])
		}
	}
}

func TestACFPearson_TooShort(t *testing.T) {
	if out := ACFPearson([]float64{1}); len(out) != 0 {
		t.Errorf("got %d values for single-sample input", len(out))
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 1}, {1, 1}, {2, 2}, {3, 4}, {1000, 1024}, {1024, 1024}, {1025, 2048},
	}
	for _, tt := range tests {
		if got := nextPowerOfTwo(tt.in); got != tt.want {
			t.Errorf("nextPowerOfTwo(%d): got %d, want %d", tt.in, got, tt.want)
		}
	}
}
