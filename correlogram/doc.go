// Package correlogram computes windowed self-similarity maps of a signal.
//
// A correlogram is a matrix of Pearson correlation coefficients between a
// signal and time-shifted copies of itself, evaluated over sliding windows
// and passed through a rectifying nonlinearity. Rows correspond to delays,
// columns to window start positions; strong positive cells reveal
// periodicity structure in the signal.
//
// The package offers two calling styles: Fill/FillDelays write into a
// caller-allocated flat row-major buffer, while Compute/ComputeDelays
// allocate and return a Result with accessors and summary statistics.
package correlogram
