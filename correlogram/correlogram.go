package correlogram

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/RyanBlaney/correlogram/algorithms/stats"
	"github.com/RyanBlaney/correlogram/logging"
)

// Correlogram computes windowed self-correlation matrices of a signal.
//
// Each call is stateless with respect to previous calls: the signal is
// re-read and every cell recomputed from scratch. Cells are mutually
// independent, so delay rows may be computed on parallel workers.
type Correlogram struct {
	wlen       int
	numWorkers int
	transform  Transform
	logger     logging.Logger
}

// New creates a Correlogram with the given window length, the default
// rectified-quartic transform and sequential execution.
func New(wlen int) *Correlogram {
	cfg := DefaultConfig()
	cfg.WindowLength = wlen

	c, err := NewWithConfig(cfg)
	if err != nil {
		// Reachable only with wlen <= 0; keep the zero-value contract simple
		// for the common constructor and let Fill report the bad window.
		return &Correlogram{
			wlen:       wlen,
			numWorkers: 1,
			transform:  RectifiedQuartic,
			logger:     newLogger(),
		}
	}
	return c
}

// NewWithConfig creates a Correlogram from an explicit Config.
func NewWithConfig(cfg Config) (*Correlogram, error) {
	if cfg.WindowLength <= 0 {
		return nil, fmt.Errorf("window length must be positive, got %d", cfg.WindowLength)
	}

	workers := cfg.NumWorkers
	if workers < 1 {
		workers = 1
	}

	transform := cfg.Transform
	if transform == nil {
		transform = RectifiedQuartic
	}

	return &Correlogram{
		wlen:       cfg.WindowLength,
		numWorkers: workers,
		transform:  transform,
		logger:     newLogger(),
	}, nil
}

func newLogger() logging.Logger {
	return logging.WithFields(logging.Fields{
		"component": "correlogram",
	})
}

// WindowLength returns the configured sliding window length.
func (c *Correlogram) WindowLength() int {
	return c.wlen
}

// FillDelays fills cgram with transformed windowed correlations for an
// explicit list of delays. Row i, column t of the row-major matrix
// (len(delays) rows, numPositions columns) holds the transformed
// correlation between the window starting at t and the window starting at
// t+delays[i]:
//
//	cgram[i*numPositions+t] = transform(r(t, t+delays[i]))
//
// All window pairs are bounds-checked against sig before any cell is
// written. On the first degenerate (zero-variance) window the fill aborts;
// cells written before the failure are left in place, so the buffer
// contents after an error are undefined.
func (c *Correlogram) FillDelays(sig []float64, delays []int, numPositions int, cgram []float64) error {
	if err := c.validate(sig, delays, numPositions, cgram); err != nil {
		return err
	}
	return c.fillRows(sig, delays, numPositions, cgram)
}

// Fill is the contiguous-delay variant of FillDelays: delays run implicitly
// from 1 to maxDelay-1 (delay 0, the trivial self-correlation, is skipped)
// and the matrix has maxDelay-1 rows:
//
//	cgram[(delay-1)*numPositions+t] = transform(r(t, t+delay))
//
// Same bounds checking and abort-on-degenerate behavior as FillDelays.
func (c *Correlogram) Fill(sig []float64, maxDelay, numPositions int, cgram []float64) error {
	if maxDelay < 2 {
		return fmt.Errorf("max delay must be at least 2, got %d", maxDelay)
	}

	delays := make([]int, maxDelay-1)
	for i := range delays {
		delays[i] = i + 1
	}

	return c.FillDelays(sig, delays, numPositions, cgram)
}

// validate checks delays, matrix dimensions and the worst-case window pair
// for every row before any computation starts.
func (c *Correlogram) validate(sig []float64, delays []int, numPositions int, cgram []float64) error {
	if len(delays) == 0 {
		return fmt.Errorf("no delays given")
	}
	if numPositions <= 0 {
		return fmt.Errorf("number of window positions must be positive, got %d", numPositions)
	}
	if need := len(delays) * numPositions; len(cgram) < need {
		return fmt.Errorf("output buffer too small: have %d cells, need %d", len(cgram), need)
	}

	for _, delay := range delays {
		if delay < 0 {
			return fmt.Errorf("delays must be non-negative, got %d", delay)
		}
		worst := numPositions - 1 + delay
		if worst+c.wlen > len(sig) {
			return &stats.BoundsError{
				Offset:       worst,
				WindowLength: c.wlen,
				SignalLength: len(sig),
			}
		}
	}

	return nil
}

// fillRow computes one delay row of the matrix.
func (c *Correlogram) fillRow(sig []float64, delay, numPositions int, row []float64) error {
	for t := 0; t < numPositions; t++ {
		r, err := stats.WindowedCorrelation(sig, t, t+delay, c.wlen)
		if err != nil {
			return fmt.Errorf("correlogram cell (delay=%d, position=%d): %w", delay, t, err)
		}
		row[t] = c.transform(r)
	}
	return nil
}

// fillRows iterates the delay rows, sequentially or on a worker pool.
func (c *Correlogram) fillRows(sig []float64, delays []int, numPositions int, cgram []float64) error {
	workers := c.numWorkers
	if workers > len(delays) {
		workers = len(delays)
	}

	if workers <= 1 {
		for i, delay := range delays {
			row := cgram[i*numPositions : (i+1)*numPositions]
			if err := c.fillRow(sig, delay, numPositions, row); err != nil {
				c.logger.Error(err, "correlogram fill aborted")
				return err
			}
		}
		return nil
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		failed   atomic.Bool
	)

	rows := make(chan int)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range rows {
				if failed.Load() {
					continue
				}
				row := cgram[i*numPositions : (i+1)*numPositions]
				if err := c.fillRow(sig, delays[i], numPositions, row); err != nil {
					failed.Store(true)
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
				}
			}
		}()
	}

	for i := range delays {
		if failed.Load() {
			break
		}
		rows <- i
	}
	close(rows)
	wg.Wait()

	if firstErr != nil {
		c.logger.Error(firstErr, "correlogram fill aborted")
		return firstErr
	}
	return nil
}
