package stats

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/correlogram/logging"
	"gonum.org/v1/gonum/stat"
)

// DegenerateWindowError reports a window whose samples are constant, so its
// standard deviation is zero and the correlation coefficient is undefined.
// This is a data condition, not a transient fault: retrying with the same
// input cannot succeed.
type DegenerateWindowError struct {
	OffX         int
	OffY         int
	WindowLength int
}

func (e *DegenerateWindowError) Error() string {
	return fmt.Sprintf("degenerate window: zero variance in window pair (off_x=%d, off_y=%d, n=%d)",
		e.OffX, e.OffY, e.WindowLength)
}

// BoundsError reports a window that extends past the end of the signal, or
// an undersized output buffer.
type BoundsError struct {
	Offset       int
	WindowLength int
	SignalLength int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("window out of bounds: offset %d + length %d exceeds signal length %d",
		e.Offset, e.WindowLength, e.SignalLength)
}

// WindowedCorrelation computes the Pearson correlation coefficient between
// the length-n window of sig starting at offX and the length-n window
// starting at offY.
//
// It uses the single-pass sum-of-products form of the Pearson formula:
//
//	r = (Σxy - ΣxΣy/n) / (sqrt(Σx² - (Σx)²/n) · sqrt(Σy² - (Σy)²/n))
//
// which trades some numerical stability for a single pass over the data,
// acceptable for the bounded window sizes used in correlogram analysis.
//
// References:
//   - Pearson, K. (1895). "Notes on regression and inheritance"
//   - Press, W.H. et al. (2007). "Numerical Recipes", 3rd ed., §14.5
//
// A zero-variance window yields a *DegenerateWindowError, an out-of-range
// window a *BoundsError. The result is in [-1, 1] otherwise.
func WindowedCorrelation(sig []float64, offX, offY, n int) (float64, error) {
	if n <= 0 {
		return 0, fmt.Errorf("window length must be positive, got %d", n)
	}
	if offX < 0 || offX+n > len(sig) {
		return 0, &BoundsError{Offset: offX, WindowLength: n, SignalLength: len(sig)}
	}
	if offY < 0 || offY+n > len(sig) {
		return 0, &BoundsError{Offset: offY, WindowLength: n, SignalLength: len(sig)}
	}

	var sumX, sumY, sumXY, sumSqX, sumSqY float64
	for i, j := offX, offY; i < offX+n; i, j = i+1, j+1 {
		xi := sig[i]
		yi := sig[j]

		sumX += xi
		sumY += yi
		sumXY += xi * yi
		sumSqX += xi * xi
		sumSqY += yi * yi
	}

	cov := sumXY - sumX*sumY/float64(n)
	msX := sumX * sumX / float64(n)
	msY := sumY * sumY / float64(n)
	pStd := math.Sqrt(sumSqX-msX) * math.Sqrt(sumSqY-msY)

	if pStd == 0 {
		err := &DegenerateWindowError{OffX: offX, OffY: offY, WindowLength: n}
		logging.Warn("zero variance encountered in windowed correlation", logging.Fields{
			"off_x": offX,
			"off_y": offY,
			"n":     n,
		})
		return 0, err
	}

	return cov / pStd, nil
}

// Correlation computes the Pearson correlation coefficient between two
// equal-length series using gonum. Returns 0 for mismatched or empty input.
func Correlation(x, y []float64) float64 {
	if len(x) != len(y) || len(x) == 0 {
		return 0.0
	}
	return stat.Correlation(x, y, nil)
}
