package stats

import (
	"errors"
	"math"
	"os"
	"testing"

	"github.com/RyanBlaney/correlogram/logging"
	"gonum.org/v1/gonum/stat"
)

const tolerance = 1e-12

func TestMain(m *testing.M) {
	logging.SetGlobalLogger(&logging.NoOpLogger{})
	os.Exit(m.Run())
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestWindowedCorrelation_SelfCorrelation(t *testing.T) {
	sig := []float64{3, 1, 4, 1, 5, 9, 2, 6}

	for n := 2; n <= len(sig); n++ {
		r, err := WindowedCorrelation(sig, 0, 0, n)
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		if !almostEqual(r, 1.0, 1e-9) {
			t.Errorf("n=%d: self-correlation: got %g, want 1.0", n, r)
		}
	}
}

func TestWindowedCorrelation_AntiCorrelation(t *testing.T) {
	// Second half is the exact negation of the first
	sig := []float64{1, 2, 3, 4, -1, -2, -3, -4}

	r, err := WindowedCorrelation(sig, 0, 4, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(r, -1.0, 1e-9) {
		t.Errorf("anti-correlation: got %g, want -1.0", r)
	}
}

func TestWindowedCorrelation_PeriodicSignal(t *testing.T) {
	sig := []float64{1, 2, 3, 4, 1, 2, 3, 4}

	r, err := WindowedCorrelation(sig, 0, 4, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(r, 1.0, 1e-9) {
		t.Errorf("period-aligned windows: got %g, want 1.0", r)
	}
}

func TestWindowedCorrelation_MatchesGonum(t *testing.T) {
	sig := []float64{0.3, -1.2, 2.5, 0.0, -0.7, 1.9, -2.2, 0.8, 1.1, -0.4, 0.6, 2.0}

	tests := []struct {
		name       string
		offX, offY int
		n          int
	}{
		{"overlapping", 0, 2, 6},
		{"disjoint", 0, 6, 5},
		{"unit offset", 1, 2, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WindowedCorrelation(sig, tt.offX, tt.offY, tt.n)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			want := stat.Correlation(sig[tt.offX:tt.offX+tt.n], sig[tt.offY:tt.offY+tt.n], nil)
			if !almostEqual(got, want, 1e-9) {
				t.Errorf("got %g, want %g (gonum)", got, want)
			}
			if got < -1-tolerance || got > 1+tolerance {
				t.Errorf("coefficient %g outside [-1, 1]", got)
			}
		})
	}
}

func TestWindowedCorrelation_DegenerateWindow(t *testing.T) {
	sig := []float64{5, 5, 5, 5, 1, 2, 3, 4}

	_, err := WindowedCorrelation(sig, 0, 4, 4)
	if err == nil {
		t.Fatal("expected error for zero-variance window, got nil")
	}

	var degErr *DegenerateWindowError
	if !errors.As(err, &degErr) {
		t.Fatalf("expected *DegenerateWindowError, got %T: %v", err, err)
	}
	if degErr.OffX != 0 || degErr.OffY != 4 || degErr.WindowLength != 4 {
		t.Errorf("error fields: got %+v", degErr)
	}
}

func TestWindowedCorrelation_Bounds(t *testing.T) {
	sig := []float64{1, 2, 3, 4}

	tests := []struct {
		name       string
		offX, offY int
		n          int
	}{
		{"x past end", 2, 0, 3},
		{"y past end", 0, 2, 3},
		{"negative x", -1, 0, 2},
		{"window longer than signal", 0, 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := WindowedCorrelation(sig, tt.offX, tt.offY, tt.n)
			var boundsErr *BoundsError
			if !errors.As(err, &boundsErr) {
				t.Fatalf("expected *BoundsError, got %T: %v", err, err)
			}
		})
	}
}

func TestWindowedCorrelation_BadWindowLength(t *testing.T) {
	sig := []float64{1, 2, 3, 4}

	if _, err := WindowedCorrelation(sig, 0, 0, 0); err == nil {
		t.Error("expected error for n=0, got nil")
	}
	if _, err := WindowedCorrelation(sig, 0, 0, -3); err == nil {
		t.Error("expected error for negative n, got nil")
	}
}

func TestCorrelation(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2, 4, 6, 8, 10}

	if r := Correlation(x, y); !almostEqual(r, 1.0, 1e-9) {
		t.Errorf("linear pair: got %g, want 1.0", r)
	}
	if r := Correlation(x, []float64{1, 2}); r != 0 {
		t.Errorf("mismatched lengths: got %g, want 0", r)
	}
	if r := Correlation(nil, nil); r != 0 {
		t.Errorf("empty input: got %g, want 0", r)
	}
}
