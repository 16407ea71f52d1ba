package correlogram

import (
	"fmt"

	"github.com/RyanBlaney/correlogram/algorithms/common"
	"github.com/RyanBlaney/correlogram/logging"
	"gonum.org/v1/gonum/floats"
)

// Result holds a computed correlogram matrix
type Result struct {
	// Values is the flat row-major matrix, len(Delays) rows by NumPositions
	// columns.
	Values []float64 `json:"values"`

	// Delays holds the delay, in samples, of each matrix row.
	Delays []int `json:"delays"`

	// NumPositions is the number of window start positions (columns).
	NumPositions int `json:"num_positions"`

	// WindowLength is the sliding window length the matrix was computed with.
	WindowLength int `json:"window_length"`
}

// NumDelays returns the number of matrix rows.
func (r *Result) NumDelays() int {
	return len(r.Delays)
}

// At returns the cell for the given delay row and window position.
func (r *Result) At(delayIndex, position int) float64 {
	return r.Values[delayIndex*r.NumPositions+position]
}

// Row returns the matrix row for the given delay index. The slice aliases
// the underlying matrix.
func (r *Result) Row(delayIndex int) []float64 {
	return r.Values[delayIndex*r.NumPositions : (delayIndex+1)*r.NumPositions]
}

// Total returns the grand mean over all cells, a scalar summary of how much
// self-similarity the signal carries overall.
func (r *Result) Total() float64 {
	return common.Mean(r.Values)
}

// Peak returns the largest cell together with its delay (in samples) and
// window position.
func (r *Result) Peak() (value float64, delay, position int) {
	if len(r.Values) == 0 {
		return 0, 0, 0
	}

	idx := floats.MaxIdx(r.Values)
	return r.Values[idx], r.Delays[idx/r.NumPositions], idx % r.NumPositions
}

// Compute allocates a (maxDelay-1) x numPositions matrix, fills it with
// the contiguous-delay correlogram of sig (delays 1..maxDelay-1) and
// returns it as a Result.
func (c *Correlogram) Compute(sig []float64, maxDelay, numPositions int) (*Result, error) {
	if maxDelay < 2 {
		return nil, fmt.Errorf("max delay must be at least 2, got %d", maxDelay)
	}

	delays := make([]int, maxDelay-1)
	for i := range delays {
		delays[i] = i + 1
	}

	return c.ComputeDelays(sig, delays, numPositions)
}

// ComputeDelays allocates a len(delays) x numPositions matrix, fills it for
// the explicit delay list and returns it as a Result.
func (c *Correlogram) ComputeDelays(sig []float64, delays []int, numPositions int) (*Result, error) {
	if len(delays) == 0 {
		return nil, fmt.Errorf("no delays given")
	}
	if numPositions <= 0 {
		return nil, fmt.Errorf("number of window positions must be positive, got %d", numPositions)
	}

	cgram := make([]float64, len(delays)*numPositions)
	if err := c.FillDelays(sig, delays, numPositions, cgram); err != nil {
		return nil, err
	}

	c.logger.Debug("correlogram computed", logging.Fields{
		"num_delays":    len(delays),
		"num_positions": numPositions,
		"window_length": c.wlen,
	})

	out := make([]int, len(delays))
	copy(out, delays)

	return &Result{
		Values:       cgram,
		Delays:       out,
		NumPositions: numPositions,
		WindowLength: c.wlen,
	}, nil
}
